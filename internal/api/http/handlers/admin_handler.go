package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wellfood-service/internal/api/dto"
	"github.com/spec-kit/wellfood-service/internal/auth"
	"github.com/spec-kit/wellfood-service/internal/domain"
	"github.com/spec-kit/wellfood-service/internal/repository"
	"github.com/spec-kit/wellfood-service/internal/service"
)

// AdminHandler exposes the console endpoints: login plus order and
// user management.
type AdminHandler struct {
	auth   *service.AuthService
	orders *service.OrderService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService, orderService *service.OrderService) *AdminHandler {
	return &AdminHandler{auth: authService, orders: orderService}
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password are required")
	}

	admin, token, exp, err := h.auth.LoginAdmin(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"token":     token,
		"expiresAt": exp,
		"admin": fiber.Map{
			"email": admin.Email,
			"name":  admin.Name,
		},
	})
}

// Logout handles POST /api/admin/logout. Tokens are stateless; the client
// discards its copy and this endpoint exists for symmetry.
func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	if err := h.auth.Logout(c.Context(), ""); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Logged out"})
}

// ListOrders handles GET /api/admin/orders with filter query params.
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	filter, err := parseOrderFilter(c)
	if err != nil {
		return err
	}

	orders, total, err := h.orders.List(c.Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"orders": orders,
			"total":  total,
			"page":   filter.Page,
			"limit":  filter.Limit,
		},
	})
}

// GetOrder handles GET /api/admin/orders/:id.
func (h *AdminHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.orders.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": order})
}

// UpdateOrder handles POST /api/admin/update-order.
func (h *AdminHandler) UpdateOrder(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Authentication required")
	}

	var req dto.UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.OrderID == "" || req.Status == "" {
		return fiber.NewError(http.StatusBadRequest, "orderId and status are required")
	}

	order, err := h.orders.UpdateStatus(c.Context(), principal, req.OrderID, domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": order})
}

// Summary handles GET /api/admin/summary.
func (h *AdminHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.orders.Summary(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": summary})
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	limit, _ := strconv.ParseInt(c.Query("limit", "200"), 10, 64)

	users, err := h.orders.ListUsers(c.Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": users})
}

func parseOrderFilter(c *fiber.Ctx) (repository.OrderFilter, error) {
	filter := repository.OrderFilter{
		SearchTerm: c.Query("q"),
	}

	if raw := c.Query("status"); raw != "" {
		status := domain.OrderStatus(raw)
		if !status.Valid() {
			return filter, fiber.NewError(http.StatusBadRequest, "invalid status")
		}
		filter.Status = &status
	}

	if raw := c.Query("startDate"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, fiber.NewError(http.StatusBadRequest, "invalid startDate")
		}
		filter.PlacedFrom = &from
	}
	if raw := c.Query("endDate"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, fiber.NewError(http.StatusBadRequest, "invalid endDate")
		}
		filter.PlacedTo = &to
	}

	filter.Page = c.QueryInt("page", 1)
	filter.Limit = c.QueryInt("limit", 20)
	return filter, nil
}
