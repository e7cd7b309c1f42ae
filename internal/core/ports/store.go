package ports

import "context"

// KVStore is the durable key/value backend behind the store adapter.
// Get reports ok=false for a missing key; Delete of a missing key is not an error.
type KVStore interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Pinger is implemented by backends that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}
