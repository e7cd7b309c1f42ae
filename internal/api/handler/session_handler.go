package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/letsfood/storefront/internal/api/metrics"
	"github.com/letsfood/storefront/internal/bridge"
)

// SessionHandler serves the sign-up, sign-in and sign-out forms.
type SessionHandler struct {
	devices DeviceRunner
}

func NewSessionHandler(devices DeviceRunner) *SessionHandler {
	return &SessionHandler{devices: devices}
}

// SignUp creates an account and signs it in.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     DeviceToken
// @Param        body  body      signUpRequest  true  "Sign-up form"
// @Success      200   {object}  bridge.View
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  commandErrorResponse
// @Failure      422   {object}  commandErrorResponse
// @Router       /v1/auth/signup [post]
func (h *SessionHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	view, err := runCommand(c, h.devices, func(ctx context.Context, b *bridge.Bridge) (bridge.View, error) {
		return b.OnSubmitSignup(ctx, bridge.SignUpForm{
			Name:                 req.Name,
			Email:                req.Email,
			Password:             req.Password,
			PasswordConfirmation: req.PasswordConfirmation,
		})
	})
	metrics.AuthAttemptsTotal.WithLabelValues("signup", resultLabel(err)).Inc()
	return respond(c, view, err)
}

// SignIn replaces the device session.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     DeviceToken
// @Param        body  body      signInRequest  true  "Sign-in form"
// @Success      200   {object}  bridge.View
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  commandErrorResponse
// @Failure      422   {object}  commandErrorResponse
// @Failure      429   {object}  errorResponse
// @Router       /v1/auth/signin [post]
func (h *SessionHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	view, err := runCommand(c, h.devices, func(ctx context.Context, b *bridge.Bridge) (bridge.View, error) {
		return b.OnSubmitSignin(ctx, req.Email, req.Password)
	})
	metrics.AuthAttemptsTotal.WithLabelValues("signin", resultLabel(err)).Inc()
	return respond(c, view, err)
}

// SignOut drops the device session; it succeeds with no session too.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Security     DeviceToken
// @Success      200  {object}  bridge.View
// @Router       /v1/auth/signout [post]
func (h *SessionHandler) SignOut(c echo.Context) error {
	view, err := runCommand(c, h.devices, func(ctx context.Context, b *bridge.Bridge) (bridge.View, error) {
		return b.OnSignOut(ctx)
	})
	metrics.AuthAttemptsTotal.WithLabelValues("signout", resultLabel(err)).Inc()
	return respond(c, view, err)
}
