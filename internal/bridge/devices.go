package bridge

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/letsfood/storefront/internal/core/ports"
	"github.com/letsfood/storefront/internal/core/service"
	"github.com/letsfood/storefront/internal/core/storage"
)

// Serializer runs fn with no other job for the same key in flight.
type Serializer interface {
	Do(ctx context.Context, key string, fn func(context.Context) error) error
}

// Devices hands out a Bridge bound to one device's slice of the store. The
// managers are rebuilt per command; they hold no state beyond the store.
type Devices struct {
	kv         ports.KVStore
	serializer Serializer
	codec      ports.PasswordCodec
	cartOpts   []service.CartOption
	log        zerolog.Logger
}

func NewDevices(kv ports.KVStore, serializer Serializer, codec ports.PasswordCodec, log zerolog.Logger, cartOpts ...service.CartOption) *Devices {
	return &Devices{kv: kv, serializer: serializer, codec: codec, cartOpts: cartOpts, log: log}
}

// Bridge returns the bridge for deviceID without serialisation.
func (d *Devices) Bridge(deviceID string) *Bridge {
	log := d.log.With().Str("device_id", deviceID).Logger()
	store := storage.NewAdapter(storage.Namespace(d.kv, storage.DeviceNamespace(deviceID)), log)
	return New(
		service.NewSessionService(store, d.codec, log),
		service.NewCartService(store, log, d.cartOpts...),
		log,
	)
}

// Run executes cmd against the device's bridge, after every earlier command
// for the same device has finished.
func (d *Devices) Run(ctx context.Context, deviceID string, cmd func(context.Context, *Bridge) error) error {
	b := d.Bridge(deviceID)
	return d.serializer.Do(ctx, deviceID, func(ctx context.Context) error {
		return cmd(ctx, b)
	})
}
