package auth

import "weddingfolio/internal/domain/models"

// JWTVerifier verifies bearer tokens for the auth middleware.
type JWTVerifier interface {
	// VerifyToken validates a token and returns its claims. Any failure
	// (bad signature, expiry, wrong algorithm, anonymous role) is
	// domain.ErrUnauthorized.
	VerifyToken(tokenString string) (*models.SupabaseClaims, error)

	// Close releases resources held by the verifier.
	Close() error
}
