package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/letsfood/storefront/internal/bridge"
	"github.com/letsfood/storefront/internal/core/domain"
)

// StatusFor maps a domain error kind to its HTTP status.
func StatusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusUnprocessableEntity
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// resultLabel is the metrics label for a command outcome.
func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	if kind := domain.KindOf(err); kind != "" {
		return string(kind)
	}
	return "internal"
}

// respond renders a command outcome. Domain errors become a commandErrorResponse;
// anything else goes to the HTTP error handler.
func respond(c echo.Context, view bridge.View, err error) error {
	if err == nil {
		return c.JSON(http.StatusOK, view)
	}
	kind := domain.KindOf(err)
	if kind == "" {
		return err
	}
	resp := commandErrorResponse{Error: err.Error(), Kind: string(kind), View: view}
	if view.Message != nil {
		resp.Form = view.Message.Form
		resp.Message = view.Message.Text
	}
	return c.JSON(StatusFor(kind), resp)
}
