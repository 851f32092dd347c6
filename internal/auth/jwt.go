package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long a freshly issued access token stays valid.
// Expired tokens require a new login; there is no refresh mechanism.
const DefaultTokenTTL = 30 * time.Minute

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

var jwtSecret string

func InitJWTSecret() error {
	jwtSecret = os.Getenv("SECRET_KEY")
	if jwtSecret == "" {
		return fmt.Errorf("SECRET_KEY environment variable is not set")
	}
	return nil
}

// IssueToken signs an HS256 token carrying the username as the subject
// claim and an expiry of now + ttl.
func IssueToken(username string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": username,
		"exp": time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// VerifyToken returns the subject of a valid token. It fails with
// ErrTokenExpired once the expiry has passed and ErrInvalidToken for a bad
// signature, a non-HMAC signing method, a malformed payload, or a missing
// subject claim.
func VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}

	if !token.Valid {
		return "", ErrInvalidToken
	}

	subject, err := token.Claims.GetSubject()

	if err != nil || subject == "" {
		return "", ErrInvalidToken
	}

	return subject, nil
}
