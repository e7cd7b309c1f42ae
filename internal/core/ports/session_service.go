package ports

import (
	"context"

	"github.com/letsfood/storefront/internal/core/domain"
)

// SignUpInput carries the sign-up form fields.
type SignUpInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// SessionService owns accounts and the device's single current session.
type SessionService interface {
	SignUp(ctx context.Context, in SignUpInput) (*domain.Session, error)
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)
	SignOut(ctx context.Context) error
	Current(ctx context.Context) *domain.Session
}

// PasswordCodec turns a password into its stored form and checks candidates against it.
type PasswordCodec interface {
	Encode(password string) (string, error)
	Matches(stored, candidate string) bool
}
