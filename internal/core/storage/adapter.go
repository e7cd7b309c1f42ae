// Package storage is the durability boundary shared by the session and cart
// managers. Values are stored as whole JSON documents; writes replace.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/letsfood/storefront/internal/core/ports"
)

// Keys of the three persisted values.
const (
	KeyUsers   = "cf_users"
	KeySession = "cf_session"
	KeyCart    = "cf_cart"
)

// Adapter reads and writes JSON values on a KVStore.
type Adapter struct {
	kv  ports.KVStore
	log zerolog.Logger
}

func NewAdapter(kv ports.KVStore, log zerolog.Logger) *Adapter {
	return &Adapter{kv: kv, log: log}
}

// Read decodes the value under key. It never fails: a missing key, a
// malformed payload, a JSON null or a backend error all yield def.
func Read[T any](ctx context.Context, a *Adapter, key string, def T) T {
	raw, ok, err := a.kv.Get(ctx, key)
	if err != nil {
		a.log.Warn().Err(err).Str("key", key).Msg("store read failed, using default")
		return def
	}
	if !ok || len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		a.log.Warn().Err(err).Str("key", key).Msg("malformed stored value, using default")
		return def
	}
	return v
}

// Write replaces the value under key with v's JSON encoding.
func (a *Adapter) Write(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store write %s: encode: %w", key, err)
	}
	if err := a.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("store write %s: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing a missing key is a no-op.
func (a *Adapter) Remove(ctx context.Context, key string) error {
	if err := a.kv.Delete(ctx, key); err != nil {
		return fmt.Errorf("store remove %s: %w", key, err)
	}
	return nil
}
