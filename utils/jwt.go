package utils

import (
	"errors"
	"os"
	"time"

	"consultify/config"
	"consultify/models"

	"github.com/golang-jwt/jwt"
)

// secretKey resolves the signing secret from config, then the environment.
// Fallback to a default (not recommended in production).
func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = os.Getenv("JWT_SECRET")
	}
	if secret == "" {
		secret = "consultify-dev"
	}
	return []byte(secret)
}

// GenerateToken creates a signed JWT token for the given principal.
// The token expires after the specified duration.
func GenerateToken(p models.Principal, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  p.ID,
		"name": p.Name,
		"role": string(p.Role),
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// PrincipalFromToken extracts the acting principal from a valid JWT token
// string. The identity layer issued the token; this only unpacks it.
func PrincipalFromToken(tokenString string) (models.Principal, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return models.Principal{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Principal{}, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return models.Principal{}, errors.New("token does not contain a valid 'sub' claim")
	}
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return models.Principal{}, errors.New("token does not contain a valid 'role' claim")
	}
	name, _ := claims["name"].(string)

	return models.Principal{ID: sub, Name: name, Role: models.Role(role)}, nil
}
