package http

import (
	"github.com/labstack/echo/v4"

	"github.com/letsfood/storefront/internal/core/ports"
	"github.com/letsfood/storefront/internal/infrastructure/http/handlers"
)

// RegisterProbes mounts the liveness and readiness probes on e. deps maps a
// dependency name ("store", ...) to its ping.
func RegisterProbes(e *echo.Echo, deps map[string]ports.Pinger) {
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
}
