package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func runDevice(t *testing.T, header string) (*httptest.ResponseRecorder, string, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var deviceID string
	called := false
	handler := Device("secret")(func(c echo.Context) error {
		called = true
		deviceID, _ = c.Get(DeviceIDKey).(string)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, deviceID, called
}

func TestDeviceMiddleware_ValidToken(t *testing.T) {
	token, err := IssueDeviceToken("secret", "dev-1", time.Now())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	rec, deviceID, called := runDevice(t, "Bearer "+token)
	if !called {
		t.Fatalf("next not called")
	}
	if deviceID != "dev-1" {
		t.Fatalf("expected device id dev-1, got %q", deviceID)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestDeviceMiddleware_MissingHeader(t *testing.T) {
	rec, _, called := runDevice(t, "")
	if called {
		t.Fatalf("should not reach next")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestDeviceMiddleware_InvalidHeaderFormat(t *testing.T) {
	rec, _, called := runDevice(t, "Token abc")
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without calling next, got %d", rec.Code)
	}
}

func TestDeviceMiddleware_WrongSecret(t *testing.T) {
	token, _ := IssueDeviceToken("other", "dev-1", time.Now())
	rec, _, called := runDevice(t, "Bearer "+token)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without calling next, got %d", rec.Code)
	}
}

func TestDeviceMiddleware_RejectsForeignIssuerAndAlg(t *testing.T) {
	foreign, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:  "someone-else",
		Subject: "dev-1",
	}).SignedString([]byte("secret"))
	if rec, _, called := runDevice(t, "Bearer "+foreign); called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected foreign issuer rejected, got %d", rec.Code)
	}

	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Issuer:  deviceIssuer,
		Subject: "dev-1",
	}).SignedString([]byte("secret"))
	if rec, _, called := runDevice(t, "Bearer "+hs512); called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected HS512 rejected, got %d", rec.Code)
	}
}

func TestIssueDeviceToken_RequiresID(t *testing.T) {
	if _, err := IssueDeviceToken("secret", "", time.Now()); err == nil {
		t.Fatalf("expected error for empty device id")
	}
}
