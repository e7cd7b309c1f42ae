// Command server exposes the storefront over HTTP. Each caller registers a
// device and gets its own accounts, session and cart.
//
//	@title						Storefront API
//	@version					1.0
//	@description				Accounts, session and cart for the restaurant storefront, one namespace per device.
//	@BasePath					/
//	@securityDefinitions.apikey	DeviceToken
//	@in							header
//	@name						Authorization
//	@description				Bearer device token from POST /v1/devices
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/letsfood/storefront/internal/api"
	"github.com/letsfood/storefront/internal/api/metrics"
	"github.com/letsfood/storefront/internal/bridge"
	"github.com/letsfood/storefront/internal/catalog"
	"github.com/letsfood/storefront/internal/core/ports"
	"github.com/letsfood/storefront/internal/core/service"
	"github.com/letsfood/storefront/internal/infrastructure/db"
	"github.com/letsfood/storefront/internal/infrastructure/queue"
	"github.com/letsfood/storefront/internal/pkg/config"
	"github.com/letsfood/storefront/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// openBackend is swapped in tests.
var openBackend = db.Open

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "storefront-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log := logger.Component("main")
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}

// run serves until ctx ends. Every resource it opens is released before it
// returns, including on startup errors.
func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Component("main")

	if cfg.DeviceSecret == "" {
		if !cfg.IsDevelopment() {
			return errors.New("DEVICE_SECRET is required outside development")
		}
		cfg.DeviceSecret = uuid.NewString()
		log.Warn().Msg("DEVICE_SECRET not set; using a random secret, device tokens will not survive a restart")
	}

	backend, err := openBackend(ctx, cfg, logger.Component("store"))
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StoreBackend, err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := backend.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()

	menu, err := catalog.Load(cfg.MenuFile)
	if err != nil {
		return fmt.Errorf("load menu: %w", err)
	}

	codec, err := service.CodecFor(cfg.Accounts.PasswordCodec)
	if err != nil {
		return err
	}

	serializer := queue.NewSerializer(cfg.Workers, logger.Component("serializer"))
	serializer.ObserveDepth(metrics.ObserveQueueDepth)
	// Workers outlive the signal so in-flight requests can finish during shutdown.
	workCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	serializer.Start(workCtx)

	devices := bridge.NewDevices(
		backend.Store,
		serializer,
		codec,
		logger.Component("bridge"),
		service.WithClearOnCheckout(cfg.Cart.ClearOnCheckout),
	)

	e := api.NewRouter(api.Deps{
		Devices:      devices,
		Menu:         menu,
		DeviceSecret: cfg.DeviceSecret,
		AuthRate:     cfg.Accounts.AuthRate,
		AuthBurst:    cfg.Accounts.AuthBurst,
		Probes:       map[string]ports.Pinger{backend.Name: backend.Store},
		Log:          logger.Component("http"),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("backend", backend.Name).Msg("starting storefront api")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down")
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
