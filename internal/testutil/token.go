package testutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// MintToken signs a test JWT carrying the sub/email/exp claims the session
// layer reads. The signing key is irrelevant: the client never verifies
// signatures.
func MintToken(t *testing.T, sub, email string, exp time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":   sub,
		"email": email,
		"exp":   exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}
