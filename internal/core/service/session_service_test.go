package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/letsfood/storefront/internal/core/domain"
	"github.com/letsfood/storefront/internal/core/ports"
	"github.com/letsfood/storefront/internal/core/storage"
	"github.com/letsfood/storefront/internal/infrastructure/db/memory"
)

func newSessionSvc(kv ports.KVStore, codec ports.PasswordCodec) *SessionService {
	svc := NewSessionService(storage.NewAdapter(kv, zerolog.Nop()), codec, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func signUpInput(name, email, pass, confirm string) ports.SignUpInput {
	return ports.SignUpInput{Name: name, Email: email, Password: pass, PasswordConfirmation: confirm}
}

func TestSessionService_SignUp_Success(t *testing.T) {
	kv := memory.NewStore()
	svc := newSessionSvc(kv, nil)

	session, err := svc.SignUp(context.Background(), signUpInput("  Ada Lovelace ", " a@x.com ", "secret1", "secret1"))
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if session.Email != "a@x.com" || session.Name != "Ada Lovelace" {
		t.Fatalf("unexpected session: %+v", session)
	}
	if session.CreatedAt.IsZero() {
		t.Fatalf("expected createdAt to be set")
	}

	current := svc.Current(context.Background())
	if current == nil || current.Email != "a@x.com" {
		t.Fatalf("expected auto sign-in, got %+v", current)
	}

	users := storage.Read(context.Background(), storage.NewAdapter(kv, zerolog.Nop()), storage.KeyUsers, domain.Directory{})
	if users["a@x.com"].Password != "secret1" {
		t.Fatalf("expected plain password to be stored as entered")
	}
}

func TestSessionService_SignUp_ValidationOrder(t *testing.T) {
	cases := []struct {
		name string
		in   ports.SignUpInput
		want error
	}{
		{"missing name", signUpInput("", "a@x.com", "secret1", "secret1"), domain.ErrMissingFields},
		{"missing confirmation", signUpInput("A", "a@x.com", "secret1", ""), domain.ErrMissingFields},
		{"blank name", signUpInput("   ", "bad", "x", "y"), domain.ErrMissingFields},
		{"invalid email before short password", signUpInput("A", "not-an-email", "x", "y"), domain.ErrInvalidEmail},
		{"email without tld", signUpInput("A", "a@x", "secret1", "secret1"), domain.ErrInvalidEmail},
		{"short password before mismatch", signUpInput("A", "a@x.com", "abc", "xyz"), domain.ErrPasswordTooShort},
		{"mismatch", signUpInput("A", "a@x.com", "secret1", "secret2"), domain.ErrPasswordMismatch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newSessionSvc(memory.NewStore(), nil)
			_, err := svc.SignUp(context.Background(), tc.in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if domain.KindOf(err) != domain.KindValidation {
				t.Fatalf("expected validation kind, got %q", domain.KindOf(err))
			}
			if svc.Current(context.Background()) != nil {
				t.Fatalf("failed sign-up must not create a session")
			}
		})
	}
}

func TestSessionService_SignUp_PasswordLengthCountsCharacters(t *testing.T) {
	svc := newSessionSvc(memory.NewStore(), nil)
	if _, err := svc.SignUp(context.Background(), signUpInput("A", "a@x.com", "ñññññ", "ñññññ")); !errors.Is(err, domain.ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort for 5 characters, got %v", err)
	}
	if _, err := svc.SignUp(context.Background(), signUpInput("A", "a@x.com", "ññññññ", "ññññññ")); err != nil {
		t.Fatalf("expected 6 characters to pass, got %v", err)
	}
}

func TestSessionService_SignUp_DuplicateEmail(t *testing.T) {
	svc := newSessionSvc(memory.NewStore(), nil)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, signUpInput("A", "a@x.com", "secret1", "secret1")); err != nil {
		t.Fatalf("first sign-up failed: %v", err)
	}
	_, err := svc.SignUp(ctx, signUpInput("B", "a@x.com", "secret2", "secret2"))
	if !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
	if domain.KindOf(err) != domain.KindConflict {
		t.Fatalf("expected conflict kind, got %q", domain.KindOf(err))
	}

	// Emails are case-sensitive as entered.
	if _, err := svc.SignUp(ctx, signUpInput("C", "A@x.com", "secret3", "secret3")); err != nil {
		t.Fatalf("expected differently cased email to register, got %v", err)
	}
}

func TestSessionService_SignIn_Success(t *testing.T) {
	svc := newSessionSvc(memory.NewStore(), nil)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, signUpInput("Ada Lovelace", "a@x.com", "secret1", "secret1")); err != nil {
		t.Fatalf("sign-up failed: %v", err)
	}
	if err := svc.SignOut(ctx); err != nil {
		t.Fatalf("sign-out failed: %v", err)
	}

	session, err := svc.SignIn(ctx, " a@x.com ", "secret1")
	if err != nil {
		t.Fatalf("sign-in failed: %v", err)
	}
	if session.Name != "Ada Lovelace" {
		t.Fatalf("expected stored name, got %q", session.Name)
	}
	if svc.Current(ctx) == nil {
		t.Fatalf("expected session after sign-in")
	}
}

func TestSessionService_SignIn_Validation(t *testing.T) {
	svc := newSessionSvc(memory.NewStore(), nil)
	ctx := context.Background()

	if _, err := svc.SignIn(ctx, "", "secret1"); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if _, err := svc.SignIn(ctx, "a@x.com", ""); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if _, err := svc.SignIn(ctx, "nope", "secret1"); !errors.Is(err, domain.ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestSessionService_SignIn_FailuresAreIndistinguishable(t *testing.T) {
	svc := newSessionSvc(memory.NewStore(), nil)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, signUpInput("A", "a@x.com", "secret1", "secret1")); err != nil {
		t.Fatalf("sign-up failed: %v", err)
	}
	_ = svc.SignOut(ctx)

	_, unknown := svc.SignIn(ctx, "nouser@x.com", "whatever")
	_, wrong := svc.SignIn(ctx, "a@x.com", "wrongpass")

	if !errors.Is(unknown, domain.ErrInvalidCredentials) || !errors.Is(wrong, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v and %v", unknown, wrong)
	}
	if unknown.Error() != wrong.Error() || domain.KindOf(unknown) != domain.KindOf(wrong) {
		t.Fatalf("failures must be identical: %q/%q", unknown, wrong)
	}
	if svc.Current(ctx) != nil {
		t.Fatalf("failed sign-in must not create a session")
	}
}

func TestSessionService_SignIn_ReplacesSession(t *testing.T) {
	svc := newSessionSvc(memory.NewStore(), nil)
	ctx := context.Background()

	_, _ = svc.SignUp(ctx, signUpInput("A", "a@x.com", "secret1", "secret1"))
	_, _ = svc.SignUp(ctx, signUpInput("B", "b@x.com", "secret2", "secret2"))

	if got := svc.Current(ctx); got == nil || got.Email != "b@x.com" {
		t.Fatalf("expected b@x.com session, got %+v", got)
	}
	if _, err := svc.SignIn(ctx, "a@x.com", "secret1"); err != nil {
		t.Fatalf("sign-in failed: %v", err)
	}
	if got := svc.Current(ctx); got == nil || got.Email != "a@x.com" {
		t.Fatalf("expected a@x.com session, got %+v", got)
	}
}

func TestSessionService_SignOut_Idempotent(t *testing.T) {
	svc := newSessionSvc(memory.NewStore(), nil)
	ctx := context.Background()

	if err := svc.SignOut(ctx); err != nil {
		t.Fatalf("sign-out without session returned error: %v", err)
	}
	if svc.Current(ctx) != nil {
		t.Fatalf("expected no session")
	}
}

func TestSessionService_SessionSurvivesReload(t *testing.T) {
	kv := memory.NewStore()
	ctx := context.Background()

	if _, err := newSessionSvc(kv, nil).SignUp(ctx, signUpInput("A", "a@x.com", "secret1", "secret1")); err != nil {
		t.Fatalf("sign-up failed: %v", err)
	}

	reloaded := newSessionSvc(kv, nil)
	if got := reloaded.Current(ctx); got == nil || got.Email != "a@x.com" {
		t.Fatalf("expected session after reload, got %+v", got)
	}
}

func TestSessionService_CorruptDirectoryDegrades(t *testing.T) {
	kv := memory.NewStore()
	ctx := context.Background()
	_ = kv.Set(ctx, storage.KeyUsers, []byte("{{{"))
	_ = kv.Set(ctx, storage.KeySession, []byte("[1,2]"))

	svc := newSessionSvc(kv, nil)
	if svc.Current(ctx) != nil {
		t.Fatalf("expected malformed session to read as none")
	}
	if _, err := svc.SignUp(ctx, signUpInput("A", "a@x.com", "secret1", "secret1")); err != nil {
		t.Fatalf("expected sign-up over corrupt directory to succeed, got %v", err)
	}
}

func TestSessionService_NullDirectoryDegrades(t *testing.T) {
	kv := memory.NewStore()
	ctx := context.Background()
	_ = kv.Set(ctx, storage.KeyUsers, []byte("null"))

	svc := newSessionSvc(kv, nil)
	if _, err := svc.SignUp(ctx, signUpInput("A", "a@x.com", "secret1", "secret1")); err != nil {
		t.Fatalf("expected sign-up over a null directory to succeed, got %v", err)
	}
	if _, err := svc.SignIn(ctx, "a@x.com", "secret1"); err != nil {
		t.Fatalf("expected the new account to sign in, got %v", err)
	}
}

// sessionWriteFails rejects writes of the session key only.
type sessionWriteFails struct {
	*memory.Store
}

func (s sessionWriteFails) Set(ctx context.Context, key string, value []byte) error {
	if key == storage.KeySession {
		return errors.New("disk full")
	}
	return s.Store.Set(ctx, key, value)
}

func TestSessionService_SignUp_RollsBackAccountWhenSessionFails(t *testing.T) {
	base := memory.NewStore()
	ctx := context.Background()

	failing := newSessionSvc(sessionWriteFails{base}, nil)
	if _, err := failing.SignUp(ctx, signUpInput("A", "a@x.com", "secret1", "secret1")); err == nil {
		t.Fatalf("expected sign-up to fail when the session cannot be stored")
	}
	users := storage.Read(ctx, storage.NewAdapter(base, zerolog.Nop()), storage.KeyUsers, domain.Directory{})
	if _, ok := users["a@x.com"]; ok {
		t.Fatalf("account must not survive a failed sign-up")
	}

	// Once storage recovers the same email can register.
	if _, err := newSessionSvc(base, nil).SignUp(ctx, signUpInput("A", "a@x.com", "secret1", "secret1")); err != nil {
		t.Fatalf("retry should succeed, got %v", err)
	}
}

func TestSessionService_BcryptCodec(t *testing.T) {
	kv := memory.NewStore()
	svc := newSessionSvc(kv, BcryptCodec{Cost: 4})
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, signUpInput("A", "a@x.com", "secret1", "secret1")); err != nil {
		t.Fatalf("sign-up failed: %v", err)
	}
	users := storage.Read(ctx, storage.NewAdapter(kv, zerolog.Nop()), storage.KeyUsers, domain.Directory{})
	if users["a@x.com"].Password == "secret1" {
		t.Fatalf("expected hashed password")
	}

	_ = svc.SignOut(ctx)
	if _, err := svc.SignIn(ctx, "a@x.com", "secret1"); err != nil {
		t.Fatalf("sign-in with hashed password failed: %v", err)
	}
	if _, err := svc.SignIn(ctx, "a@x.com", "secret2"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
