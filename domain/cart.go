package domain

import "time"

// CartItem is a line item in the locally held shopping cart.
type CartItem struct {
	ID        string    `json:"id"`
	ProductID int64     `json:"product_id"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

func (i *CartItem) Touch() {
	if i == nil {
		return
	}
	if i.AddedAt.IsZero() {
		i.AddedAt = time.Now()
	}
	if i.Quantity <= 0 {
		i.Quantity = 1
	}
}
