// Package mail implements the out-of-band delivery channel for second-factor codes.
package mail

import (
	"context"
	"fmt"

	"endura/config"
	"endura/internal/domain/service"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"
)

// smtpCodeSender delivers two-factor codes over SMTP using gomail.
type smtpCodeSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPCodeSender is the constructor for smtpCodeSender.
func NewSMTPCodeSender(cfg *config.Config) (service.CodeSender, error) {
	smtp := cfg.SMTP
	if smtp == nil {
		return nil, errors.New("smtp configuration must be provided")
	}

	return &smtpCodeSender{
		dialer: gomail.NewDialer(smtp.Host, smtp.Port, smtp.Username, smtp.Password),
		from:   smtp.From,
	}, nil
}

// SendCode delivers the code to the given address. The dial-and-send round
// trip is bounded by the dialer's own network timeouts.
func (s *smtpCodeSender) SendCode(_ context.Context, email, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Your Endura verification code")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Your verification code is %s.\n\nIt expires in 10 minutes. If you did not request this code, you can ignore this message.",
		code,
	))

	if err := s.dialer.DialAndSend(msg); err != nil {
		return errors.Wrap(err, "failed to send verification code email")
	}

	return nil
}
