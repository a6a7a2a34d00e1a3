package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

const RoleAdmin = "admin"

// TokenClaims are the claims the payment API reads from a bearer token
type TokenClaims struct {
	UserID string
	Role   string
}

// GenerateToken creates an HS256 JWT for userID with the given role
func GenerateToken(secret, userID, role string, ttl time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	if userID != "" {
		claims["user_id"] = userID
	}
	if role != "" {
		claims["role"] = role
	}
	claims["exp"] = time.Now().Add(ttl).Unix()

	return token.SignedString([]byte(secret))
}

// ValidateToken validates an HS256 JWT signed with secret and returns its claims
func ValidateToken(secret, tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	result := &TokenClaims{}
	if userID, ok := claims["user_id"].(string); ok {
		result.UserID = userID
	}
	if role, ok := claims["role"].(string); ok {
		result.Role = role
	}
	return result, nil
}
