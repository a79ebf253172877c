package domain

import "time"

// OrderStatus tracks fulfillment progress.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
)

// Valid reports whether the status is a recognized fulfillment state.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

// OrderItem is an immutable snapshot of a cart line at checkout time.
type OrderItem struct {
	ProductID string  `bson:"product_id" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Image     string  `bson:"image,omitempty" json:"image,omitempty"`
}

// Order is a placed order. User identity fields are denormalized so the
// admin console can search orders without joining the users collection.
type Order struct {
	ID              string      `bson:"_id,omitempty" json:"id"`
	UserID          string      `bson:"user_id" json:"userId"`
	UserEmail       string      `bson:"user_email" json:"userEmail"`
	UserName        string      `bson:"user_name" json:"userName"`
	ShippingAddress string      `bson:"shipping_address" json:"shippingAddress"`
	Items           []OrderItem `bson:"items" json:"items"`
	TotalAmount     float64     `bson:"total_amount" json:"totalAmount"`
	Status          OrderStatus `bson:"status" json:"status"`
	PlacedAt        time.Time   `bson:"placed_at" json:"placedAt"`
	UpdatedAt       time.Time   `bson:"updated_at" json:"updatedAt"`
}
