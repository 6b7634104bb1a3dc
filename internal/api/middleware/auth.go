package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/wavegame-api/internal/api/handler"
	"github.com/sirpyerre/wavegame-api/internal/core/domain"
	"github.com/sirpyerre/wavegame-api/internal/core/ports"
)

// Auth validates the bearer token and injects the user ID into context.
// Failures are returned as domain token errors for the error handler to map.
func Auth(tokens ports.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return domain.ErrTokenMissing
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return domain.ErrTokenMalformed
			}

			userID, err := tokens.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				return err
			}

			c.Set(handler.UserIDKey, userID)
			return next(c)
		}
	}
}
