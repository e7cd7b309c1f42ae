package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/letsfood/storefront/docs"
	"github.com/letsfood/storefront/internal/api/handler"
	"github.com/letsfood/storefront/internal/api/metrics"
	"github.com/letsfood/storefront/internal/api/middleware"
	"github.com/letsfood/storefront/internal/catalog"
	"github.com/letsfood/storefront/internal/core/ports"
	probes "github.com/letsfood/storefront/internal/infrastructure/http"
)

// Deps is everything the router needs from main.
type Deps struct {
	Devices      handler.DeviceRunner
	Menu         *catalog.Catalog
	DeviceSecret string
	AuthRate     float64
	AuthBurst    int
	// Probes maps a dependency name to its readiness ping.
	Probes map[string]ports.Pinger
	// Registry receives the HTTP request metrics. Nil means the default
	// Prometheus registry.
	Registry *prometheus.Registry
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	promCfg := echoprometheus.MiddlewareConfig{Namespace: "storefront"}
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if d.Registry != nil {
		promCfg.Registerer = d.Registry
		gatherer = d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promCfg))

	// --- Dependencies ---
	deviceHandler := handler.NewDeviceHandler(func(id string, now time.Time) (string, error) {
		return middleware.IssueDeviceToken(d.DeviceSecret, id, now)
	})
	sessionHandler := handler.NewSessionHandler(d.Devices)
	cartHandler := handler.NewCartHandler(d.Devices, d.Menu)
	viewHandler := handler.NewViewHandler(d.Devices, d.Menu)
	throttle := middleware.Throttle(d.AuthRate, d.AuthBurst, func() {
		metrics.AuthThrottledTotal.Inc()
	})

	// --- Public routes ---
	e.POST("/v1/devices", deviceHandler.Register)
	e.GET("/v1/menu", viewHandler.Menu)

	// --- Device-scoped routes ---
	v1 := e.Group("/v1", middleware.Device(d.DeviceSecret))
	v1.GET("/view", viewHandler.View)

	auth := v1.Group("/auth")
	auth.POST("/signup", sessionHandler.SignUp, throttle)
	auth.POST("/signin", sessionHandler.SignIn, throttle)
	auth.POST("/signout", sessionHandler.SignOut)

	cart := v1.Group("/cart")
	cart.POST("/items", cartHandler.Add)
	cart.PATCH("/items/:id", cartHandler.ChangeQuantity)
	cart.DELETE("/items/:id", cartHandler.Remove)
	cart.POST("/items/:id/increment", cartHandler.Increment)
	cart.POST("/items/:id/decrement", cartHandler.Decrement)
	cart.POST("/checkout", cartHandler.Checkout)

	// --- Operational routes ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	probes.RegisterProbes(e, d.Probes)

	return e
}
