package cyberark

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenExpiry(t *testing.T) {
	t.Run("jwt with exp claim", func(t *testing.T) {
		wantExpiry := time.Now().Add(20 * time.Minute).Truncate(time.Second)
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(wantExpiry),
		})
		signed, err := token.SignedString([]byte("test-secret-test-secret-test-sec"))
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}

		got, ok := TokenExpiry(signed)
		if !ok {
			t.Fatal("TokenExpiry() ok = false, want true")
		}
		if !got.Equal(wantExpiry) {
			t.Errorf("TokenExpiry() = %v, want %v", got, wantExpiry)
		}
	})

	t.Run("jwt without exp claim", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject: "alice",
		})
		signed, err := token.SignedString([]byte("test-secret-test-secret-test-sec"))
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}

		if _, ok := TokenExpiry(signed); ok {
			t.Error("TokenExpiry() ok = true for token without exp")
		}
	})

	t.Run("opaque token", func(t *testing.T) {
		if _, ok := TokenExpiry("8f254e42c1a04b5a"); ok {
			t.Error("TokenExpiry() ok = true for opaque token")
		}
	})

	t.Run("empty token", func(t *testing.T) {
		if _, ok := TokenExpiry(""); ok {
			t.Error("TokenExpiry() ok = true for empty token")
		}
	})
}
