package security

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sirpyerre/wavegame-api/internal/core/domain"
)

func TestJWTManager_IssueAndVerify(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("super-secret", time.Hour)
	tok, err := m.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	got, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if got != "user-123" {
		t.Fatalf("userID mismatch: got %q want %q", got, "user-123")
	}
}

func TestJWTManager_ClaimsCarryExpiry(t *testing.T) {
	t.Parallel()

	issued := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	m := NewJWTManager("k", 0).WithClock(func() time.Time { return issued })
	tok, _ := m.Issue("u1")

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !claims.IssuedAt.Time.Equal(issued) {
		t.Fatalf("unexpected iat: %v", claims.IssuedAt)
	}
	if !claims.ExpiresAt.Time.Equal(issued.Add(DefaultTokenTTL)) {
		t.Fatalf("expected default 7 day TTL, got exp %v", claims.ExpiresAt)
	}
}

func TestJWTManager_Expired(t *testing.T) {
	t.Parallel()

	past := time.Now().Add(-8 * 24 * time.Hour)
	issuer := NewJWTManager("secret", DefaultTokenTTL).WithClock(func() time.Time { return past })
	tok, err := issuer.Issue("u1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = NewJWTManager("secret", DefaultTokenTTL).Verify(tok)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected error to be an auth error, got %v", err)
	}
}

func TestJWTManager_FlippedSignatureBit(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("secret", time.Hour)
	tok, _ := m.Issue("u1")

	parts := strings.Split(tok, ".")
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		t.Fatalf("decode signature: %v", err)
	}
	sig[0] ^= 0x01
	parts[2] = base64.RawURLEncoding.EncodeToString(sig)

	_, err = m.Verify(strings.Join(parts, "."))
	if !errors.Is(err, domain.ErrTokenInvalidSignature) {
		t.Fatalf("expected ErrTokenInvalidSignature, got %v", err)
	}
}

func TestJWTManager_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, _ := NewJWTManager("right-secret", time.Hour).Issue("u2")
	_, err := NewJWTManager("wrong-secret", time.Hour).Verify(tok)
	if !errors.Is(err, domain.ErrTokenInvalidSignature) {
		t.Fatalf("expected ErrTokenInvalidSignature, got %v", err)
	}
}

func TestJWTManager_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		UserID: "u3",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = NewJWTManager("secret", time.Hour).Verify(tok)
	if !errors.Is(err, domain.ErrTokenInvalidSignature) {
		t.Fatalf("expected ErrTokenInvalidSignature, got %v", err)
	}
}

func TestJWTManager_Malformed(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("k", time.Hour)
	for _, tok := range []string{"", "not-a-token", "not.a.jwt"} {
		if _, err := m.Verify(tok); !errors.Is(err, domain.ErrTokenMalformed) {
			t.Fatalf("token %q: expected ErrTokenMalformed, got %v", tok, err)
		}
	}
}

func TestJWTManager_MissingUserID(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("k", time.Hour)
	tok, _ := m.Issue("")
	if _, err := m.Verify(tok); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestJWTManager_EmptySecretRefusesTokens(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("", time.Hour)
	if _, err := m.Issue("u1"); !errors.Is(err, ErrEmptySecret) {
		t.Fatalf("expected ErrEmptySecret, got %v", err)
	}

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte{})
	if err != nil {
		t.Fatalf("sign forged token: %v", err)
	}
	if _, err := m.Verify(forged); !errors.Is(err, domain.ErrTokenInvalidSignature) {
		t.Fatalf("expected token signed with an empty key to be rejected, got %v", err)
	}
}
