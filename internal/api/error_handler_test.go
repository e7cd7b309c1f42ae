package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/letsfood/storefront/internal/core/domain"
	"github.com/letsfood/storefront/internal/infrastructure/queue"
)

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"validation", domain.ErrInvalidEmail, http.StatusUnprocessableEntity, domain.ErrInvalidEmail.Error()},
		{"conflict wrapped", fmt.Errorf("signup: %w", domain.ErrEmailExists), http.StatusConflict, "signup: " + domain.ErrEmailExists.Error()},
		{"auth", domain.ErrInvalidCredentials, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error()},
		{"stopped", queue.ErrStopped, http.StatusServiceUnavailable, "shutting down"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "request timed out"},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError, "internal server error"},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			h(tc.err, c)

			assert.Equal(t, tc.code, rec.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tc.msg), rec.Body.String())
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}
