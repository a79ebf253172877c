package dto

import "github.com/spec-kit/wellfood-service/internal/domain"

// AddCartItemRequest payload for adding a menu line.
type AddCartItemRequest struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

// UpdateCartItemRequest payload for changing a line quantity.
type UpdateCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// RemoveCartItemRequest payload for dropping a line.
type RemoveCartItemRequest struct {
	ProductID string `json:"productId"`
}

// CartResponse is the wire shape of a cart.
type CartResponse struct {
	TotalItems  int               `json:"totalItems"`
	TotalAmount float64           `json:"totalAmount"`
	Items       []domain.CartItem `json:"items"`
}

// NewCartResponse maps a cart to its wire shape.
func NewCartResponse(cart *domain.Cart) CartResponse {
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return CartResponse{
		TotalItems:  cart.TotalItems,
		TotalAmount: cart.TotalAmount,
		Items:       items,
	}
}
