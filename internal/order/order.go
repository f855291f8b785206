package order

import (
	"github.com/noamani/perfume-shop-backend/internal/cart"
)

// Order is a placed checkout: a snapshot of the cart lines plus the price
// breakdown computed server-side at checkout time, all in base currency.
type Order struct {
	ID              int         `json:"id"`
	UserID          int         `json:"userId"`
	Items           []cart.Item `json:"items"`
	Quantity        int         `json:"quantity"`
	Subtotal        float64     `json:"subtotal"`
	Shipping        float64     `json:"shipping"`
	Total           float64     `json:"total"`
	ShippingAddress string      `json:"shippingAddress,omitempty"`
	Status          string      `json:"status"`
	CreatedAt       string      `json:"createdAt"`
	UpdatedAt       string      `json:"updatedAt"`
}

const StatusPlaced = "placed"
