package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/letsfood/storefront/internal/core/ports"
)

// PlainCodec stores passwords as entered. It reproduces the local demo's
// behaviour and protects nothing.
type PlainCodec struct{}

func (PlainCodec) Encode(password string) (string, error) { return password, nil }

func (PlainCodec) Matches(stored, candidate string) bool { return stored == candidate }

// BcryptCodec stores bcrypt hashes.
type BcryptCodec struct {
	Cost int
}

func (c BcryptCodec) Encode(password string) (string, error) {
	cost := c.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (BcryptCodec) Matches(stored, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
}

// CodecFor returns the codec named by PASSWORD_CODEC.
func CodecFor(name string) (ports.PasswordCodec, error) {
	switch name {
	case "", "plain":
		return PlainCodec{}, nil
	case "bcrypt":
		return BcryptCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown password codec %q", name)
	}
}
