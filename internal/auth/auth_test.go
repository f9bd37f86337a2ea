package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateJWTRoundTrip(t *testing.T) {
	if err := Configure("test-secret", "1h"); err != nil {
		t.Fatalf("configure failed: %v", err)
	}

	signed, err := GenerateJWT(7, "coord@toolflow.local", "COORDINATOR", 10)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(*jwt.Token) (any, error) {
		return JwtSecret, nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != 7 || claims.Role != "COORDINATOR" || claims.HeadquarterID != 10 {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestConfigureRejectsBadExpiration(t *testing.T) {
	if err := Configure("test-secret", "not-a-duration"); err == nil {
		t.Error("expected error for invalid duration")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !CheckPasswordHash("admin123", hash) {
		t.Error("correct password should verify")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("wrong password must not verify")
	}
}
