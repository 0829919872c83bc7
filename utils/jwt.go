package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/karmakarsharmila40/idea-publishing-platform/config"
)

// ErrNoSecret is returned when token operations run without a configured
// signing secret. The API surfaces this as a 500, not a 401.
var ErrNoSecret = errors.New("jwt secret not configured")

// Claims defines the identity claims carried by API tokens. UserID is the
// hex form of the user's ObjectID.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateToken issues an HS256 token for the given user identity.
func GenerateToken(userID, username string, duration time.Duration) (string, error) {
	secret := config.Get().JWTSecret
	if secret == "" {
		return "", ErrNoSecret
	}

	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates a token and returns its claims.
func ParseToken(tokenStr string) (*Claims, error) {
	secret := config.Get().JWTSecret
	if secret == "" {
		return nil, ErrNoSecret
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
