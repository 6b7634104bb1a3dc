package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/wavegame-api/internal/core/domain"
)

// UserIDKey is the echo.Context key under which the Auth middleware stores
// the verified user ID.
const UserIDKey = "user_id"

// ctxUserID returns the user ID injected by the Auth middleware. An empty
// value means the route was mounted without it.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(UserIDKey).(string)
	if userID == "" {
		return "", domain.ErrTokenMissing
	}
	return userID, nil
}

// queryLimit parses ?limit=. Missing or unparseable values yield 0, which the
// service replaces with its default.
func queryLimit(c echo.Context) int {
	n, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
