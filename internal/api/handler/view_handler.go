package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/letsfood/storefront/internal/bridge"
	"github.com/letsfood/storefront/internal/catalog"
)

// ViewHandler serves read-only renders.
type ViewHandler struct {
	devices DeviceRunner
	menu    *catalog.Catalog
}

func NewViewHandler(devices DeviceRunner, menu *catalog.Catalog) *ViewHandler {
	return &ViewHandler{devices: devices, menu: menu}
}

// View returns the header and cart as currently stored for the device.
//
// @Summary      Current view
// @Tags         view
// @Produce      json
// @Security     DeviceToken
// @Success      200  {object}  bridge.View
// @Router       /v1/view [get]
func (h *ViewHandler) View(c echo.Context) error {
	view, err := runCommand(c, h.devices, func(ctx context.Context, b *bridge.Bridge) (bridge.View, error) {
		return b.Render(ctx), nil
	})
	return respond(c, view, err)
}

// Menu lists the dishes that can be added.
//
// @Summary      Menu
// @Tags         view
// @Produce      json
// @Success      200  {object}  menuResponse
// @Router       /v1/menu [get]
func (h *ViewHandler) Menu(c echo.Context) error {
	return c.JSON(http.StatusOK, menuResponse{Items: h.menu.Items()})
}
