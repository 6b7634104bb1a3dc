package ports

// PasswordHasher is a salted, adaptive one-way hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// TokenManager issues and verifies signed claim tokens.
//
// Verify returns domain.ErrTokenInvalidSignature, domain.ErrTokenExpired or
// domain.ErrTokenMalformed on failure.
type TokenManager interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}
