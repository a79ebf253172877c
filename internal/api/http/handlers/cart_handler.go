package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wellfood-service/internal/api/dto"
	"github.com/spec-kit/wellfood-service/internal/auth"
	"github.com/spec-kit/wellfood-service/internal/domain"
	"github.com/spec-kit/wellfood-service/internal/service"
)

// CartHandler exposes the cart endpoints. All routes run behind the auth
// middleware plus RequireUser, so a principal is always present.
type CartHandler struct {
	carts *service.CartService
}

// NewCartHandler constructs handler.
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{carts: cartService}
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Authentication required")
	}

	var req dto.AddCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	cart, err := h.carts.AddItem(c.Context(), principal, domain.CartItem{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Quantity:  req.Quantity,
		Image:     req.Image,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Item added to cart",
		"cart":    dto.NewCartResponse(cart),
	})
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Authentication required")
	}

	cart, err := h.carts.Get(c.Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "cart": dto.NewCartResponse(cart)})
}

// UpdateItem handles PUT /api/cart/items.
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Authentication required")
	}

	var req dto.UpdateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.ProductID == "" {
		return fiber.NewError(http.StatusBadRequest, "productId is required")
	}

	cart, err := h.carts.UpdateQuantity(c.Context(), principal.ID, req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Cart updated",
		"cart":    dto.NewCartResponse(cart),
	})
}

// RemoveItem handles DELETE /api/cart/items.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Authentication required")
	}

	var req dto.RemoveCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.ProductID == "" {
		return fiber.NewError(http.StatusBadRequest, "productId is required")
	}

	cart, err := h.carts.RemoveItem(c.Context(), principal.ID, req.ProductID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Item removed from cart",
		"cart":    dto.NewCartResponse(cart),
	})
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Authentication required")
	}

	cart, err := h.carts.Clear(c.Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Cart cleared",
		"cart":    dto.NewCartResponse(cart),
	})
}
