package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddingfolio/internal/domain"
	"weddingfolio/internal/domain/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestVerifier(t *testing.T) (*SupabaseJWTVerifier, *ecdsa.PrivateKey) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	v := NewJWTVerifierWithKeyfunc(func(*jwt.Token) (any, error) {
		return &key.PublicKey, nil
	}, testLogger())
	return v, key
}

func claimsFor(subject, role string, expires time.Time) *models.SupabaseClaims {
	return &models.SupabaseClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Role:  role,
		Email: "studio@example.com",
	}
}

func sign(t *testing.T, key *ecdsa.PrivateKey, claims *models.SupabaseClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodES256, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestVerifyToken_Valid(t *testing.T) {
	v, key := newTestVerifier(t)

	claims, err := v.VerifyToken(sign(t, key, claimsFor("user-1", "authenticated", time.Now().Add(time.Hour))))
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.GetUserID())
	assert.Equal(t, "studio@example.com", claims.Email)
}

func TestVerifyToken_Rejects(t *testing.T) {
	v, key := newTestVerifier(t)
	other, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	hmac, err := jwt.NewWithClaims(jwt.SigningMethodHS256,
		claimsFor("user-1", "authenticated", time.Now().Add(time.Hour))).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":         "not-a-jwt",
		"expired":         sign(t, key, claimsFor("user-1", "authenticated", time.Now().Add(-time.Minute))),
		"anonymous role":  sign(t, key, claimsFor("user-1", "anon", time.Now().Add(time.Hour))),
		"missing subject": sign(t, key, claimsFor("", "authenticated", time.Now().Add(time.Hour))),
		"wrong key":       sign(t, other, claimsFor("user-1", "authenticated", time.Now().Add(time.Hour))),
		"hmac algorithm":  hmac,
		"no expiry":       sign(t, key, &models.SupabaseClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}, Role: "authenticated"}),
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := v.VerifyToken(token)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}
