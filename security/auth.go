package security

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

// RequireToken guards a handler with the session token issued at OTP
// verification. The decoded userId lands in the request context via the
// X-User-Id header convention used by the handlers.
func RequireToken(secret string, next func(*core.RequestEvent) error) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		header := e.Request.Header.Get("Authorization")
		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == "" || raw == header {
			return apis.NewUnauthorizedError("Missing bearer token", nil)
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return apis.NewUnauthorizedError("Invalid token", err)
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if userID, _ := claims["userId"].(string); userID != "" {
				e.Request.Header.Set("X-User-Id", userID)
			}
		}

		return next(e)
	}
}
