package domain

import "time"

// CartItem is a single menu line inside a cart.
type CartItem struct {
	ProductID string  `bson:"product_id" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Image     string  `bson:"image,omitempty" json:"image,omitempty"`
}

// Cart is the single persistent cart document per user. Totals are derived
// from Items and recomputed on every mutation before the document is saved.
type Cart struct {
	ID          string     `bson:"_id,omitempty" json:"id"`
	UserID      string     `bson:"user_id" json:"userId"`
	UserEmail   string     `bson:"user_email" json:"userEmail"`
	Items       []CartItem `bson:"items" json:"items"`
	TotalItems  int        `bson:"total_items" json:"totalItems"`
	TotalAmount float64    `bson:"total_amount" json:"totalAmount"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updatedAt"`
}

// Recalculate refreshes the derived totals from the item lines.
func (c *Cart) Recalculate() {
	items := 0
	amount := 0.0
	for _, item := range c.Items {
		items += item.Quantity
		amount += item.Price * float64(item.Quantity)
	}
	c.TotalItems = items
	c.TotalAmount = amount
}

// FindItem returns the index of the line with the given product id, or -1.
func (c *Cart) FindItem(productID string) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
