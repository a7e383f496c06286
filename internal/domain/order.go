package domain

import "time"

// Order is an immutable record of a completed cart submission. The ID is
// assigned by the remote endpoint when the order is created; fetched orders
// are read-only.
type Order struct {
	ID          string     `json:"id"`
	Items       []CartItem `json:"cartItems"`
	TotalAmount float64    `json:"totalAmount"`
	Date        time.Time  `json:"date"`
}

// CartItem is one line of a cart or an order: a product reference with the
// quantity and the unit price captured at the time it was added.
type CartItem struct {
	ProductID    string  `json:"productId"`
	ProductTitle string  `json:"productTitle"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
}

// Subtotal returns quantity times unit price for this line.
func (i CartItem) Subtotal() float64 {
	return float64(i.Quantity) * i.Price
}
