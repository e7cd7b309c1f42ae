package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// DeviceIDKey is the echo context key holding the authenticated device id.
const DeviceIDKey = "device_id"

const deviceIssuer = "storefront"

// IssueDeviceToken signs a token identifying deviceID. Device tokens do not
// expire: a device keeps its cart and session until they are cleared.
func IssueDeviceToken(secret, deviceID string, now time.Time) (string, error) {
	if deviceID == "" {
		return "", errors.New("device id is required")
	}
	claims := jwt.RegisteredClaims{
		Issuer:   deviceIssuer,
		Subject:  deviceID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Device validates the device token and injects the device id into context.
func Device(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := &jwt.RegisteredClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			},
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
				jwt.WithIssuer(deviceIssuer),
			)
			if err != nil || !tkn.Valid || claims.Subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid device token")
			}

			c.Set(DeviceIDKey, claims.Subject)
			return next(c)
		}
	}
}
