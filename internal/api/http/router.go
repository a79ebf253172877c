package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wellfood-service/internal/api/http/handlers"
	"github.com/spec-kit/wellfood-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Cart           *handlers.CartHandler
	Orders         *handlers.OrdersHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/send-otp", cfg.Auth.SendOTP)
	authGroup.Post("/verify-otp", cfg.Auth.VerifyOTP)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, auth.RequireAnyRole(), cfg.Auth.Me)

	cart := api.Group("/cart", cfg.AuthMiddleware.Handle, auth.RequireUser())
	cart.Post("/items", cfg.Cart.AddItem)
	cart.Get("/", cfg.Cart.Get)
	cart.Put("/items", cfg.Cart.UpdateItem)
	cart.Delete("/items", cfg.Cart.RemoveItem)
	cart.Delete("/", cfg.Cart.Clear)

	orders := api.Group("/orders", cfg.AuthMiddleware.Handle, auth.RequireUser())
	orders.Post("/checkout", cfg.Orders.Checkout)
	orders.Get("/", cfg.Orders.List)

	admin := api.Group("/admin")
	admin.Post("/login", cfg.Admin.Login)

	adminProtected := admin.Group("", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	adminProtected.Post("/logout", cfg.Admin.Logout)
	adminProtected.Get("/orders", cfg.Admin.ListOrders)
	adminProtected.Get("/orders/:id", cfg.Admin.GetOrder)
	adminProtected.Post("/update-order", cfg.Admin.UpdateOrder)
	adminProtected.Get("/summary", cfg.Admin.Summary)
	adminProtected.Get("/users", cfg.Admin.ListUsers)
}
