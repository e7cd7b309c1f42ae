// Package bridge translates UI intents into session and cart manager calls
// and renders the resulting state. It keeps no state of its own: every View
// is rebuilt from the managers after the command has run.
package bridge

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/letsfood/storefront/internal/core/domain"
	"github.com/letsfood/storefront/internal/core/ports"
)

// SignUpForm is the sign-up form as submitted.
type SignUpForm struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// Bridge is the command surface shared by the HTTP and terminal front ends.
type Bridge struct {
	sessions ports.SessionService
	cart     ports.CartService
	log      zerolog.Logger
}

func New(sessions ports.SessionService, cart ports.CartService, log zerolog.Logger) *Bridge {
	return &Bridge{sessions: sessions, cart: cart, log: log}
}

// Render draws the current state without changing it.
func (b *Bridge) Render(ctx context.Context) View {
	cart := b.cart.Cart(ctx)
	v := View{
		Header: b.header(ctx),
		Cart: CartPanel{
			Badge: cart.TotalQuantity(),
			Empty: len(cart) == 0,
			Lines: make([]CartLine, 0, len(cart)),
			Total: cart.TotalPrice(),
		},
	}
	for _, li := range cart {
		v.Cart.Lines = append(v.Cart.Lines, CartLine{
			ID:       li.ID,
			Title:    li.Title,
			Price:    li.Price,
			Qty:      li.Qty,
			Subtotal: li.Subtotal(),
		})
	}
	return v
}

func (b *Bridge) OnSubmitSignup(ctx context.Context, f SignUpForm) (View, error) {
	_, err := b.sessions.SignUp(ctx, ports.SignUpInput{
		Name:                 f.Name,
		Email:                f.Email,
		Password:             f.Password,
		PasswordConfirmation: f.PasswordConfirmation,
	})
	return b.finish(ctx, FormSignUp, err, msgAccountCreated)
}

func (b *Bridge) OnSubmitSignin(ctx context.Context, email, password string) (View, error) {
	_, err := b.sessions.SignIn(ctx, email, password)
	return b.finish(ctx, FormSignIn, err, msgSignedIn)
}

func (b *Bridge) OnSignOut(ctx context.Context) (View, error) {
	err := b.sessions.SignOut(ctx)
	return b.finish(ctx, FormSignIn, err, msgSignedOut)
}

// OnAddClicked adds one unit of a menu item.
func (b *Bridge) OnAddClicked(ctx context.Context, id, title string, price float64) (View, error) {
	return b.finish(ctx, FormCart, b.cart.AddItem(ctx, id, title, price), "")
}

func (b *Bridge) OnIncrement(ctx context.Context, id string) (View, error) {
	return b.OnChangeQuantity(ctx, id, 1)
}

func (b *Bridge) OnDecrement(ctx context.Context, id string) (View, error) {
	return b.OnChangeQuantity(ctx, id, -1)
}

func (b *Bridge) OnChangeQuantity(ctx context.Context, id string, delta int) (View, error) {
	return b.finish(ctx, FormCart, b.cart.ChangeQuantity(ctx, id, delta), "")
}

func (b *Bridge) OnRemove(ctx context.Context, id string) (View, error) {
	return b.finish(ctx, FormCart, b.cart.RemoveItem(ctx, id), "")
}

// OnCheckout reports the cart; the View carries the receipt on success.
func (b *Bridge) OnCheckout(ctx context.Context) (View, error) {
	receipt, err := b.cart.Checkout(ctx)
	v, err := b.finish(ctx, FormCart, err, msgCheckout)
	v.Receipt = receipt
	return v, err
}

func (b *Bridge) finish(ctx context.Context, form Form, err error, success string) (View, error) {
	v := b.Render(ctx)
	switch {
	case err != nil:
		if domain.KindOf(err) == "" {
			b.log.Error().Err(err).Str("form", string(form)).Msg("command failed")
		}
		v.Message = errorMessage(form, err)
	case success != "":
		v.Message = successMessage(form, success)
	}
	return v, err
}

func (b *Bridge) header(ctx context.Context) Header {
	s := b.sessions.Current(ctx)
	if s == nil || s.Name == "" {
		return Header{Label: signInPrompt}
	}
	return Header{
		SignedIn: true,
		Label:    "Hi, " + s.FirstName(),
		Name:     s.Name,
		Email:    s.Email,
	}
}
