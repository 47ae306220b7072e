// Package auth issues and verifies the opaque bearer credentials used by the
// order and user endpoints, and exposes the chi middleware that attaches the
// authenticated identity to the request context.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dviradani/amazon-backend/internal/domain"
)

// User is the authenticated identity carried on the request context.
type User struct {
	ID    int64
	Name  string
	Email string
}

var ErrInvalidToken = errors.New("auth: invalid token")

// GenerateToken issues a signed HS256 access token for the given user.
func GenerateToken(user *domain.User, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"_id":   user.ID,
		"name":  user.Name,
		"email": user.Email,
		"exp":   time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("auth: failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a signed access token and returns the
// identity embedded in its claims.
func VerifyToken(tokenStr, secret string) (*User, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	// JSON numbers decode as float64
	id, ok := claims["_id"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)

	return &User{ID: int64(id), Name: name, Email: email}, nil
}
