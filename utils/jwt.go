package utils

import (
	"errors"
	"time"

	"vibezone/config"

	"github.com/golang-jwt/jwt"
)

// GenerateAdminToken creates a signed JWT token for an admin subject.
// The token expires after the specified duration.
func GenerateAdminToken(subject string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": "admin",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// ValidateAdminToken parses a token string and verifies the admin role claim.
func ValidateAdminToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if role, _ := claims["role"].(string); role != "admin" {
		return nil, errors.New("missing admin role")
	}
	return claims, nil
}
