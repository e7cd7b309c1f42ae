package storage

import (
	"context"

	"github.com/letsfood/storefront/internal/core/ports"
)

type namespaced struct {
	kv     ports.KVStore
	prefix string
}

// Namespace scopes every key of kv under prefix, isolating one device's
// users, session and cart from another's.
func Namespace(kv ports.KVStore, prefix string) ports.KVStore {
	return &namespaced{kv: kv, prefix: prefix}
}

// DeviceNamespace returns the key prefix used for a device.
func DeviceNamespace(deviceID string) string {
	return "device:" + deviceID + ":"
}

func (n *namespaced) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return n.kv.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key string, value []byte) error {
	return n.kv.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	return n.kv.Delete(ctx, n.prefix+key)
}
