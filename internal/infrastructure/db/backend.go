// Package db selects and opens the key/value backend named by configuration.
package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/letsfood/storefront/internal/core/ports"
	"github.com/letsfood/storefront/internal/infrastructure/db/memory"
	"github.com/letsfood/storefront/internal/infrastructure/db/mongo"
	"github.com/letsfood/storefront/internal/infrastructure/db/redis"
	"github.com/letsfood/storefront/internal/infrastructure/db/sqlite"
	"github.com/letsfood/storefront/internal/pkg/config"
)

// Store is a KVStore that can report its own health.
type Store interface {
	ports.KVStore
	ports.Pinger
}

// Backend is an open store plus the function that releases it.
type Backend struct {
	Name  string
	Store Store
	Close func(context.Context) error
}

// Open connects to cfg.StoreBackend.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Backend, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		log.Warn().Msg("using in-memory store; state is lost on restart")
		return &Backend{
			Name:  cfg.StoreBackend,
			Store: memory.NewStore(),
			Close: func(context.Context) error { return nil },
		}, nil

	case config.BackendRedis:
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
		return &Backend{
			Name:  cfg.StoreBackend,
			Store: redis.NewStore(client, cfg.Redis.Prefix),
			Close: func(context.Context) error { return client.Close() },
		}, nil

	case config.BackendMongo:
		client, database, err := mongo.Connect(ctx, mongo.Config{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
		if err != nil {
			return nil, err
		}
		log.Info().Str("db", cfg.Mongo.Database).Msg("connected to mongodb")
		return &Backend{
			Name:  cfg.StoreBackend,
			Store: mongo.NewStore(database, cfg.Mongo.Collection),
			Close: client.Disconnect,
		}, nil

	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.SQLite.Path).Msg("opened sqlite store")
		return &Backend{
			Name:  cfg.StoreBackend,
			Store: store,
			Close: func(context.Context) error { return store.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
