package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/letsfood/storefront/internal/api/metrics"
	"github.com/letsfood/storefront/internal/bridge"
)

// TokenIssuer signs a device token.
type TokenIssuer func(deviceID string, now time.Time) (string, error)

// DeviceHandler registers new devices, the server-side stand-in for a
// browser with its own local storage.
type DeviceHandler struct {
	issue TokenIssuer
	newID func() string
	now   func() time.Time
}

func NewDeviceHandler(issue TokenIssuer) *DeviceHandler {
	return &DeviceHandler{issue: issue, newID: uuid.NewString, now: time.Now}
}

// Register issues a fresh device id and its token.
//
// @Summary      Register a device
// @Tags         devices
// @Produce      json
// @Success      201  {object}  deviceResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/devices [post]
func (h *DeviceHandler) Register(c echo.Context) error {
	id := h.newID()
	token, err := h.issue(id, h.now())
	if err != nil {
		return err
	}
	metrics.DevicesIssuedTotal.Inc()
	return c.JSON(http.StatusCreated, deviceResponse{
		DeviceID: id,
		Token:    token,
		View: bridge.View{
			Header: bridge.Header{Label: "Sign in"},
			Cart:   bridge.CartPanel{Empty: true, Lines: []bridge.CartLine{}},
		},
	})
}
