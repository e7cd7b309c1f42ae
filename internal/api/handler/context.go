package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/letsfood/storefront/internal/api/middleware"
	"github.com/letsfood/storefront/internal/bridge"
)

// DeviceRunner executes a bridge command for one device, after the device's
// earlier commands have finished.
type DeviceRunner interface {
	Run(ctx context.Context, deviceID string, cmd func(context.Context, *bridge.Bridge) error) error
}

// ctxDevice extracts the device id injected by the Device middleware. Its
// presence proves the middleware ran.
func ctxDevice(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.DeviceIDKey).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing device identity")
	}
	return id, nil
}

// itemParam returns the :id path parameter, unescaped.
func itemParam(c echo.Context) string {
	raw := c.Param("id")
	if id, err := url.PathUnescape(raw); err == nil {
		return id
	}
	return raw
}

// runCommand runs cmd for the request's device and returns the rendered view
// alongside the command's error.
func runCommand(c echo.Context, devices DeviceRunner, cmd func(context.Context, *bridge.Bridge) (bridge.View, error)) (bridge.View, error) {
	deviceID, err := ctxDevice(c)
	if err != nil {
		return bridge.View{}, err
	}
	var (
		view   bridge.View
		cmdErr error
	)
	if err := devices.Run(c.Request().Context(), deviceID, func(ctx context.Context, b *bridge.Bridge) error {
		view, cmdErr = cmd(ctx, b)
		return nil
	}); err != nil {
		return bridge.View{}, err
	}
	return view, cmdErr
}
