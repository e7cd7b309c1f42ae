package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/letsfood/storefront/internal/api/metrics"
	"github.com/letsfood/storefront/internal/bridge"
	"github.com/letsfood/storefront/internal/catalog"
)

// CartHandler serves the cart badge/panel commands.
type CartHandler struct {
	devices DeviceRunner
	menu    *catalog.Catalog
}

func NewCartHandler(devices DeviceRunner, menu *catalog.Catalog) *CartHandler {
	return &CartHandler{devices: devices, menu: menu}
}

// Add puts one unit of an item in the cart, either a menu item by menu_id
// or a free-form {id, title, price}.
//
// @Summary      Add an item to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     DeviceToken
// @Param        body  body      addItemRequest  true  "Item to add"
// @Success      200   {object}  bridge.View
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/cart/items [post]
func (h *CartHandler) Add(c echo.Context) error {
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	id, title, amount := req.ID, req.Title, float64(req.Price)
	if req.MenuID != "" {
		item, ok := h.menu.Lookup(req.MenuID)
		if !ok {
			return echo.NewHTTPError(http.StatusNotFound, "menu item not found")
		}
		id, title, amount = item.ID, item.Title, item.Price
	}
	if id == "" {
		id = catalog.ItemID(title)
	}

	view, err := runCommand(c, h.devices, func(ctx context.Context, b *bridge.Bridge) (bridge.View, error) {
		return b.OnAddClicked(ctx, id, title, amount)
	})
	metrics.CartMutationsTotal.WithLabelValues("add", resultLabel(err)).Inc()
	return respond(c, view, err)
}

// ChangeQuantity applies a signed delta; reaching zero removes the line.
//
// @Summary      Change an item's quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     DeviceToken
// @Param        id    path      string                 true  "Item id"
// @Param        body  body      changeQuantityRequest  true  "Quantity delta"
// @Success      200   {object}  bridge.View
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/cart/items/{id} [patch]
func (h *CartHandler) ChangeQuantity(c echo.Context) error {
	var req changeQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return h.change(c, req.Delta)
}

// Increment is the panel's "+" button.
//
// @Summary      Increment an item's quantity
// @Tags         cart
// @Produce      json
// @Security     DeviceToken
// @Param        id   path      string  true  "Item id"
// @Success      200  {object}  bridge.View
// @Router       /v1/cart/items/{id}/increment [post]
func (h *CartHandler) Increment(c echo.Context) error {
	return h.change(c, 1)
}

// Decrement is the panel's "-" button.
//
// @Summary      Decrement an item's quantity
// @Tags         cart
// @Produce      json
// @Security     DeviceToken
// @Param        id   path      string  true  "Item id"
// @Success      200  {object}  bridge.View
// @Router       /v1/cart/items/{id}/decrement [post]
func (h *CartHandler) Decrement(c echo.Context) error {
	return h.change(c, -1)
}

// Remove deletes a line; removing an absent line is a no-op.
//
// @Summary      Remove an item from the cart
// @Tags         cart
// @Produce      json
// @Security     DeviceToken
// @Param        id   path      string  true  "Item id"
// @Success      200  {object}  bridge.View
// @Router       /v1/cart/items/{id} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	id := itemParam(c)
	view, err := runCommand(c, h.devices, func(ctx context.Context, b *bridge.Bridge) (bridge.View, error) {
		return b.OnRemove(ctx, id)
	})
	metrics.CartMutationsTotal.WithLabelValues("remove", resultLabel(err)).Inc()
	return respond(c, view, err)
}

// Checkout reports the cart contents as a receipt.
//
// @Summary      Check out
// @Tags         cart
// @Produce      json
// @Security     DeviceToken
// @Success      200  {object}  checkoutResponse
// @Failure      422  {object}  commandErrorResponse
// @Router       /v1/cart/checkout [post]
func (h *CartHandler) Checkout(c echo.Context) error {
	view, err := runCommand(c, h.devices, func(ctx context.Context, b *bridge.Bridge) (bridge.View, error) {
		return b.OnCheckout(ctx)
	})
	if err != nil {
		return respond(c, view, err)
	}
	metrics.CheckoutsTotal.Inc()
	metrics.CheckoutValue.Observe(view.Receipt.TotalPrice)
	return c.JSON(http.StatusOK, checkoutResponse{Receipt: view.Receipt, View: view})
}

func (h *CartHandler) change(c echo.Context, delta int) error {
	id := itemParam(c)
	view, err := runCommand(c, h.devices, func(ctx context.Context, b *bridge.Bridge) (bridge.View, error) {
		return b.OnChangeQuantity(ctx, id, delta)
	})
	metrics.CartMutationsTotal.WithLabelValues("change", resultLabel(err)).Inc()
	return respond(c, view, err)
}
