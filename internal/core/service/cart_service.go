package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/letsfood/storefront/internal/core/domain"
	"github.com/letsfood/storefront/internal/core/storage"
)

// CartOption customizes a CartService.
type CartOption func(*CartService)

// WithClearOnCheckout empties the cart once checkout has reported it.
func WithClearOnCheckout(clear bool) CartOption {
	return func(s *CartService) { s.clearOnCheckout = clear }
}

// CartService keeps the cart line items. Every mutation reads the stored
// cart, applies the change and writes the whole cart back before returning.
type CartService struct {
	store           *storage.Adapter
	logger          zerolog.Logger
	clearOnCheckout bool
	now             func() time.Time
}

func NewCartService(store *storage.Adapter, logger zerolog.Logger, opts ...CartOption) *CartService {
	s := &CartService{store: store, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddItem inserts the item with qty 1, or bumps the quantity of an existing
// line with the same id. Bad prices become 0.
func (s *CartService) AddItem(ctx context.Context, id, title string, price float64) error {
	if id == "" {
		return domain.ErrMissingItemID
	}
	cart := s.load(ctx)
	if i := cart.IndexOf(id); i >= 0 {
		cart[i].Qty = domain.AddQuantity(cart[i].Qty, 1)
	} else {
		cart = append(cart, domain.LineItem{ID: id, Title: title, Price: domain.SanitizePrice(price), Qty: 1})
	}
	if err := s.save(ctx, cart); err != nil {
		return fmt.Errorf("add item: %w", err)
	}
	s.logger.Debug().Str("item_id", id).Msg("item added")
	return nil
}

func (s *CartService) ChangeQuantity(ctx context.Context, id string, delta int) error {
	cart := s.load(ctx)
	i := cart.IndexOf(id)
	if i < 0 {
		return nil
	}
	qty := domain.AddQuantity(cart[i].Qty, delta)
	if qty == 0 {
		cart = append(cart[:i], cart[i+1:]...)
	} else {
		cart[i].Qty = qty
	}
	if err := s.save(ctx, cart); err != nil {
		return fmt.Errorf("change quantity: %w", err)
	}
	return nil
}

// RemoveItem deletes the line with id. Absent ids leave the cart untouched.
func (s *CartService) RemoveItem(ctx context.Context, id string) error {
	cart := s.load(ctx)
	i := cart.IndexOf(id)
	if i < 0 {
		return nil
	}
	cart = append(cart[:i], cart[i+1:]...)
	if err := s.save(ctx, cart); err != nil {
		return fmt.Errorf("remove item: %w", err)
	}
	return nil
}

func (s *CartService) Cart(ctx context.Context) domain.Cart {
	return s.load(ctx)
}

func (s *CartService) TotalQuantity(ctx context.Context) int {
	return s.load(ctx).TotalQuantity()
}

func (s *CartService) TotalPrice(ctx context.Context) float64 {
	return s.load(ctx).TotalPrice()
}

// Checkout reports the cart contents. The cart is kept unless the service was
// built WithClearOnCheckout(true).
func (s *CartService) Checkout(ctx context.Context) (*domain.Receipt, error) {
	cart := s.load(ctx)
	if len(cart) == 0 {
		return nil, domain.ErrEmptyCart
	}
	receipt := &domain.Receipt{
		Items:         cart,
		TotalQuantity: cart.TotalQuantity(),
		TotalPrice:    cart.TotalPrice(),
		PlacedAt:      s.now().UTC(),
	}
	if s.clearOnCheckout {
		if err := s.store.Remove(ctx, storage.KeyCart); err != nil {
			return nil, fmt.Errorf("checkout: %w", err)
		}
	}
	s.logger.Info().
		Int("items", len(cart)).
		Float64("total", receipt.TotalPrice).
		Bool("cleared", s.clearOnCheckout).
		Msg("checkout")
	return receipt, nil
}

// load reads the stored cart, dropping id-less entries and treating a
// missing or zero quantity as 1.
func (s *CartService) load(ctx context.Context) domain.Cart {
	stored := storage.Read(ctx, s.store, storage.KeyCart, domain.Cart{})
	cart := make(domain.Cart, 0, len(stored))
	for _, li := range stored {
		if li.ID == "" || cart.IndexOf(li.ID) >= 0 {
			continue
		}
		if li.Qty < 1 {
			li.Qty = 1
		}
		li.Price = domain.SanitizePrice(li.Price)
		cart = append(cart, li)
	}
	return cart
}

func (s *CartService) save(ctx context.Context, cart domain.Cart) error {
	return s.store.Write(ctx, storage.KeyCart, cart)
}
