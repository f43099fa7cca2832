package auth

import "planforge/internal/domain/models"

// TokenVerifier validates bearer tokens for the API.
type TokenVerifier interface {
	// VerifyToken validates a JWT and returns its claims.
	// Invalid, expired or unsigned tokens return domain.ErrUnauthorized.
	VerifyToken(tokenString string) (*models.Claims, error)

	// Close releases any resources held by the verifier.
	Close() error
}
