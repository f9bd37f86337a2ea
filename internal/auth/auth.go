package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// JWTClaims defines the payload for the JWT.
type JWTClaims struct {
	UserID        int64  `json:"userId"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	HeadquarterID int64  `json:"headquarterId"`
	jwt.RegisteredClaims
}

// JwtSecret is set once at startup from configuration.
var JwtSecret []byte

var tokenTTL = 24 * time.Hour

// Configure installs the signing secret and token lifetime.
func Configure(secret string, expiration string) error {
	JwtSecret = []byte(secret)
	if expiration != "" {
		d, err := time.ParseDuration(expiration)
		if err != nil {
			return err
		}
		tokenTTL = d
	}
	return nil
}

// Hashing
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateJWT issues a signed token for the user.
func GenerateJWT(userID int64, email, role string, headquarterID int64) (string, error) {
	expirationTime := time.Now().Add(tokenTTL)
	claims := &JWTClaims{
		UserID:        userID,
		Email:         email,
		Role:          role,
		HeadquarterID: headquarterID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JwtSecret)
}
