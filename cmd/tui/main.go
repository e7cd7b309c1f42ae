// Command tui runs the storefront in the terminal. State lives in a local
// SQLite file unless STORE_BACKEND points elsewhere.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/letsfood/storefront/internal/bridge"
	"github.com/letsfood/storefront/internal/catalog"
	"github.com/letsfood/storefront/internal/core/service"
	"github.com/letsfood/storefront/internal/infrastructure/db"
	"github.com/letsfood/storefront/internal/infrastructure/queue"
	"github.com/letsfood/storefront/internal/pkg/config"
	"github.com/letsfood/storefront/internal/tui"
	"github.com/letsfood/storefront/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg := config.Load()
	if _, set := os.LookupEnv("STORE_BACKEND"); !set {
		cfg.StoreBackend = config.BackendSQLite
	}

	// The terminal belongs to bubbletea; logs go to a file.
	logPath := filepath.Join(os.TempDir(), "storefront-tui.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger.Init(logger.Options{Level: cfg.LogLevel, Output: logFile, Service: "storefront-tui"})
	log := logger.Component("main")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend, err := db.Open(ctx, cfg, logger.Component("store"))
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()

	menu, err := catalog.Load(cfg.MenuFile)
	if err != nil {
		return err
	}
	codec, err := service.CodecFor(cfg.Accounts.PasswordCodec)
	if err != nil {
		return err
	}

	serializer := queue.NewSerializer(1, logger.Component("serializer"))
	serializer.Start(ctx)
	devices := bridge.NewDevices(
		backend.Store,
		serializer,
		codec,
		logger.Component("bridge"),
		service.WithClearOnCheckout(cfg.Cart.ClearOnCheckout),
	)

	log.Info().Str("device", cfg.TUI.Device).Str("backend", backend.Name).Msg("starting tui")
	p := tea.NewProgram(
		tui.NewApp(ctx, devices, cfg.TUI.Device, menu, logger.Component("tui")),
		tea.WithAltScreen(),
	)
	_, err = p.Run()
	return err
}
