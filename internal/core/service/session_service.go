package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/letsfood/storefront/internal/core/domain"
	"github.com/letsfood/storefront/internal/core/ports"
	"github.com/letsfood/storefront/internal/core/storage"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// SessionService implements sign-up, sign-in and sign-out on top of the store adapter.
type SessionService struct {
	store  *storage.Adapter
	codec  ports.PasswordCodec
	logger zerolog.Logger
	now    func() time.Time
}

func NewSessionService(store *storage.Adapter, codec ports.PasswordCodec, logger zerolog.Logger) *SessionService {
	if codec == nil {
		codec = PlainCodec{}
	}
	return &SessionService{store: store, codec: codec, logger: logger, now: time.Now}
}

// ValidEmail reports whether email has the local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// SignUp registers a new account and signs it in. Checks run in a fixed
// order and the first failure is returned. If the session cannot be stored
// the new account is removed again.
func (s *SessionService) SignUp(ctx context.Context, in ports.SignUpInput) (*domain.Session, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)

	if name == "" || email == "" || in.Password == "" || in.PasswordConfirmation == "" {
		return nil, domain.ErrMissingFields
	}
	if !ValidEmail(email) {
		return nil, domain.ErrInvalidEmail
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}
	if in.Password != in.PasswordConfirmation {
		return nil, domain.ErrPasswordMismatch
	}

	users := storage.Read(ctx, s.store, storage.KeyUsers, domain.Directory{})
	if users == nil {
		users = domain.Directory{}
	}
	if _, exists := users[email]; exists {
		return nil, domain.ErrEmailExists
	}

	stored, err := s.codec.Encode(in.Password)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	users[email] = domain.User{Name: name, Password: stored}
	if err := s.store.Write(ctx, storage.KeyUsers, users); err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	session, err := s.establish(ctx, email, name)
	if err != nil {
		// Without a session the caller sees a failed sign-up, so the account
		// must not stay behind to block a retry.
		delete(users, email)
		if rbErr := s.store.Write(ctx, storage.KeyUsers, users); rbErr != nil {
			s.logger.Error().Err(rbErr).Str("email", email).Msg("failed to roll back account after session write error")
		}
		return nil, fmt.Errorf("sign up: %w", err)
	}
	s.logger.Info().Str("email", email).Msg("account created")
	return session, nil
}

// SignIn replaces the current session with one for email. Unknown emails and
// wrong passwords fail identically.
func (s *SessionService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}
	if !ValidEmail(email) {
		return nil, domain.ErrInvalidEmail
	}

	users := storage.Read(ctx, s.store, storage.KeyUsers, domain.Directory{})
	user, ok := users[email]
	if !ok || !s.codec.Matches(user.Password, password) {
		s.logger.Debug().Str("email", email).Msg("sign in rejected")
		return nil, domain.ErrInvalidCredentials
	}

	session, err := s.establish(ctx, email, user.Name)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	s.logger.Info().Str("email", email).Msg("signed in")
	return session, nil
}

// SignOut drops the current session. Signing out twice is fine.
func (s *SessionService) SignOut(ctx context.Context) error {
	if err := s.store.Remove(ctx, storage.KeySession); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// Current returns the active session, or nil.
func (s *SessionService) Current(ctx context.Context) *domain.Session {
	return storage.Read[*domain.Session](ctx, s.store, storage.KeySession, nil)
}

func (s *SessionService) establish(ctx context.Context, email, name string) (*domain.Session, error) {
	session := &domain.Session{Email: email, Name: name, CreatedAt: s.now().UTC()}
	if err := s.store.Write(ctx, storage.KeySession, session); err != nil {
		return nil, err
	}
	return session, nil
}
