// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"endura/config"
	"endura/internal/delivery/http/middleware"
	"endura/internal/delivery/http/router/handler"
	"endura/internal/domain/entity"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"golang.org/x/time/rate"
)

type RouterParams struct {
	fx.In

	Config         *config.Config
	AuthHandler    *handler.AuthHandler
	CatalogHandler *handler.CatalogHandler
	CartHandler    *handler.CartHandler
	OrderHandler   *handler.OrderHandler
	VaultHandler   *handler.VaultHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg            *config.Config
	authHandler    *handler.AuthHandler
	catalogHandler *handler.CatalogHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	vaultHandler   *handler.VaultHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cfg:            params.Config,
		authHandler:    params.AuthHandler,
		catalogHandler: params.CatalogHandler,
		cartHandler:    params.CartHandler,
		orderHandler:   params.OrderHandler,
		vaultHandler:   params.VaultHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes, rate limited per client IP
	authGroup := e.Group("/auth")
	authGroup.Use(r.authRateLimiter())
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/admin-check", r.authHandler.AdminCheck)
		authGroup.GET("/google", r.authHandler.GoogleLogin)
		authGroup.GET("/google/callback", r.authHandler.GoogleCallback)
		authGroup.POST("/google-verify-2fa", r.authHandler.VerifyGoogleTwoFactor)
		authGroup.POST("/admin-verify-2fa", r.authHandler.VerifyAdminTwoFactor)
		authGroup.POST("/admin-resend-2fa", r.authHandler.ResendAdminTwoFactor)
		authGroup.POST("/toggle-2fa", r.authHandler.ToggleTwoFactor, r.authMiddleware.Authenticate)
	}

	// Public catalog
	e.GET("/products", r.catalogHandler.ListProducts)
	e.GET("/products/:id", r.catalogHandler.GetProduct)

	// Profile
	e.GET("/me", r.authHandler.GetProfile, r.authMiddleware.Authenticate)

	// Cart routes that require authentication
	cartGroup := e.Group("/cart")
	cartGroup.Use(r.authMiddleware.Authenticate)
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.PUT("/items/:productId", r.cartHandler.UpdateItem)
		cartGroup.DELETE("/items/:productId", r.cartHandler.RemoveItem)
	}

	// Order routes that require authentication
	orderGroup := e.Group("/orders")
	orderGroup.Use(r.authMiddleware.Authenticate)
	{
		orderGroup.POST("", r.orderHandler.Checkout)
		orderGroup.GET("", r.orderHandler.ListOrders)
		orderGroup.GET("/:id", r.orderHandler.GetOrder)
	}

	// Vault routes that require authentication
	vaultGroup := e.Group("/vault")
	vaultGroup.Use(r.authMiddleware.Authenticate)
	{
		vaultGroup.GET("", r.vaultHandler.GetVault)
		vaultGroup.POST("/:collectibleId/unlock", r.vaultHandler.Unlock)
		vaultGroup.POST("/:collectibleId/redeem", r.vaultHandler.Redeem)
	}

	// Admin routes that require authentication and the "admin" role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/products", r.catalogHandler.ListAllProducts)
		adminGroup.POST("/products", r.catalogHandler.CreateProduct)
		adminGroup.PUT("/products/:id", r.catalogHandler.UpdateProduct)
		adminGroup.DELETE("/products/:id", r.catalogHandler.DeleteProduct)
		adminGroup.PUT("/orders/:id/status", r.orderHandler.UpdateOrderStatus)
	}
}

// authRateLimiter bounds the /auth group per client IP over the configured
// window. Defaults to 100 requests per 15 minutes.
func (r *router) authRateLimiter() echo.MiddlewareFunc {
	requests := 100
	window := 15 * 60.0
	if r.cfg.RateLimit != nil {
		if r.cfg.RateLimit.Requests > 0 {
			requests = r.cfg.RateLimit.Requests
		}
		if r.cfg.RateLimit.Window > 0 {
			window = r.cfg.RateLimit.Window.Seconds()
		}
	}

	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:  rate.Limit(float64(requests) / window),
		Burst: requests,
	})

	return echomiddleware.RateLimiter(store)
}
