package domain

import (
	"math"
	"time"
)

// LineItem is one product entry in the cart. Qty is at least 1 while the item is present.
type LineItem struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

// Subtotal returns price times quantity, rounded to cents.
func (li LineItem) Subtotal() float64 {
	return RoundCents(li.Price * float64(li.Qty))
}

// Cart is the ordered list of line items; order is first-add order.
type Cart []LineItem

// IndexOf returns the position of the item with id, or -1.
func (c Cart) IndexOf(id string) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

// TotalQuantity sums Qty across all items.
func (c Cart) TotalQuantity() int {
	total := 0
	for _, li := range c {
		total = AddQuantity(total, li.Qty)
	}
	return total
}

// AddQuantity returns qty+delta clamped to [0, math.MaxInt] without wrapping.
func AddQuantity(qty, delta int) int {
	switch {
	case delta > 0 && qty > math.MaxInt-delta:
		return math.MaxInt
	case delta < 0 && qty+delta < 0:
		return 0
	}
	return qty + delta
}

// TotalPrice sums price times quantity across all items, rounded to cents.
func (c Cart) TotalPrice() float64 {
	total := 0.0
	for _, li := range c {
		total += li.Price * float64(li.Qty)
	}
	return RoundCents(total)
}

// Receipt is what checkout reports back for confirmation.
type Receipt struct {
	Items         Cart      `json:"items"`
	TotalQuantity int       `json:"total_quantity"`
	TotalPrice    float64   `json:"total_price"`
	PlacedAt      time.Time `json:"placed_at"`
}

// RoundCents rounds a currency amount to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// SanitizePrice coerces NaN, infinities and negatives to 0.
func SanitizePrice(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0
	}
	return p
}
