package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letsfood/storefront/internal/core/ports"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func readiness(t *testing.T, deps map[string]ports.Pinger) (*httptest.ResponseRecorder, readinessResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, NewHealthDependenciesHandler(deps).Readiness(c))

	var resp readinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	require.NoError(t, NewHealthHandler().Liveness(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReadiness_AllHealthy(t *testing.T) {
	rec, resp := readiness(t, map[string]ports.Pinger{
		"store": pingFunc(func(context.Context) error { return nil }),
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Dependencies["store"].Status)
}

func TestReadiness_Degraded(t *testing.T) {
	rec, resp := readiness(t, map[string]ports.Pinger{
		"store": pingFunc(func(context.Context) error { return errors.New("connection refused") }),
	})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "unhealthy", resp.Dependencies["store"].Status)
	assert.Equal(t, "connection refused", resp.Dependencies["store"].Error)
}
