package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/wavegame-api/internal/api/handler"
	"github.com/sirpyerre/wavegame-api/internal/core/domain"
	"github.com/sirpyerre/wavegame-api/internal/infrastructure/security"
)

func run(t *testing.T, header string, tokens *security.JWTManager) (echo.Context, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := Auth(tokens)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	err := h(c)
	return c, called, err
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokens := security.NewJWTManager("secret", time.Hour)
	signed, err := tokens.Issue("user-1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, called, err := run(t, "Bearer "+signed, tokens)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if c.Get(handler.UserIDKey) != "user-1" {
		t.Fatalf("user id not set, got %v", c.Get(handler.UserIDKey))
	}
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	tokens := security.NewJWTManager("secret", time.Hour)
	signed, _ := tokens.Issue("user-1")

	if _, called, err := run(t, "bearer "+signed, tokens); err != nil || !called {
		t.Fatalf("expected lower-case scheme to be accepted, got %v", err)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tokens := security.NewJWTManager("secret", time.Hour)
	other, _ := security.NewJWTManager("other-secret", time.Hour).Issue("user-1")
	expired, _ := security.NewJWTManager("secret", time.Hour).
		WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }).
		Issue("user-1")

	cases := map[string]struct {
		header string
		want   error
	}{
		"missing header":    {"", domain.ErrTokenMissing},
		"wrong scheme":      {"Token abc", domain.ErrTokenMalformed},
		"empty token":       {"Bearer ", domain.ErrTokenMalformed},
		"garbage token":     {"Bearer not-a-token", domain.ErrTokenMalformed},
		"foreign signature": {"Bearer " + other, domain.ErrTokenInvalidSignature},
		"expired":           {"Bearer " + expired, domain.ErrTokenExpired},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, called, err := run(t, tc.header, tokens)
			if called {
				t.Fatalf("should not reach next")
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !errors.Is(err, domain.ErrUnauthorized) {
				t.Fatalf("expected error to be an unauthorized kind, got %v", err)
			}
		})
	}
}
