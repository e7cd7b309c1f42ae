package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendSQLite = "sqlite"
)

type Config struct {
	Port         string `env:"PORT,         default=8080"`
	Env          string `env:"ENV,          default=development"`
	LogLevel     string `env:"LOG_LEVEL,    default=info"`
	DeviceSecret string `env:"DEVICE_SECRET"`
	StoreBackend string `env:"STORE_BACKEND, default=memory"`
	MenuFile     string `env:"MENU_FILE"`
	Workers      int    `env:"WORKERS,      default=8"`

	Mongo    MongoConfig
	Redis    RedisConfig
	SQLite   SQLiteConfig
	Accounts AccountsConfig
	Cart     CartConfig
	TUI      TUIConfig
}

type MongoConfig struct {
	URI        string `env:"MONGO_URI,        default=mongodb://localhost:27017"`
	Database   string `env:"MONGO_DB,         default=storefront"`
	Collection string `env:"MONGO_COLLECTION, default=kv"`
}

type RedisConfig struct {
	Addr   string `env:"REDIS_ADDR,   default=localhost:6379"`
	DB     int    `env:"REDIS_DB,     default=0"`
	Prefix string `env:"REDIS_PREFIX, default=storefront:"`
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH, default=storefront.db"`
}

type AccountsConfig struct {
	// PasswordCodec is "plain" (stored as entered) or "bcrypt".
	PasswordCodec string  `env:"PASSWORD_CODEC,    default=plain"`
	AuthRate      float64 `env:"AUTH_RATE_PER_SEC, default=5"`
	AuthBurst     int     `env:"AUTH_BURST,        default=10"`
}

type CartConfig struct {
	ClearOnCheckout bool `env:"CHECKOUT_CLEARS_CART, default=false"`
}

type TUIConfig struct {
	Device string `env:"TUI_DEVICE, default=local"`
}

// IsDevelopment reports whether ENV selects the development profile.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Validate checks the values envconfig cannot.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory, BackendRedis, BackendMongo, BackendSQLite:
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.StoreBackend)
	}
	switch c.Accounts.PasswordCodec {
	case "plain", "bcrypt":
	default:
		return fmt.Errorf("config: unknown PASSWORD_CODEC %q", c.Accounts.PasswordCodec)
	}
	if c.Accounts.AuthRate <= 0 || c.Accounts.AuthBurst <= 0 {
		return fmt.Errorf("config: AUTH_RATE_PER_SEC and AUTH_BURST must be positive")
	}
	return nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

// LoadFrom reads configuration from l and validates it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
