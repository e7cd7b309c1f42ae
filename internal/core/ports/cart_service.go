package ports

import (
	"context"

	"github.com/letsfood/storefront/internal/core/domain"
)

// CartService owns the device's cart line items.
type CartService interface {
	AddItem(ctx context.Context, id, title string, price float64) error
	// ChangeQuantity adds delta to the item's quantity; reaching 0 removes it.
	// Unknown ids are a no-op.
	ChangeQuantity(ctx context.Context, id string, delta int) error
	RemoveItem(ctx context.Context, id string) error
	Cart(ctx context.Context) domain.Cart
	TotalQuantity(ctx context.Context) int
	TotalPrice(ctx context.Context) float64
	Checkout(ctx context.Context) (*domain.Receipt, error)
}
