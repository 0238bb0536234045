// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus tracks an order through its lifecycle.
type OrderStatus string

const (
	// OrderStatusPending is the initial state of a newly created order.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusPaid marks an order whose payment has been recorded.
	OrderStatusPaid OrderStatus = "paid"
	// OrderStatusShipped marks an order handed to the carrier.
	OrderStatusShipped OrderStatus = "shipped"
)

// IsValid checks if the OrderStatus is a known value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped:
		return true
	default:
		return false
	}
}

// Order is a placed order. Items carry an immutable price snapshot taken at
// checkout, so later catalog edits never change past orders.
type Order struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Status     OrderStatus
	TotalCents int64
	Items      []OrderItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderItem is one line of an order with the unit price frozen at checkout.
type OrderItem struct {
	ID             uuid.UUID
	OrderID        uuid.UUID
	ProductID      uuid.UUID
	ProductName    string
	UnitPriceCents int64
	Quantity       int
}

// Subtotal returns the line total in cents.
func (oi *OrderItem) Subtotal() int64 {
	return oi.UnitPriceCents * int64(oi.Quantity)
}
