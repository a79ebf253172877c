package dto

// CheckoutRequest payload for placing an order from the current cart.
type CheckoutRequest struct {
	ShippingAddress string `json:"shippingAddress"`
}

// UpdateOrderRequest payload for the admin status change endpoint.
type UpdateOrderRequest struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}
