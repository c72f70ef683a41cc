package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"

	"reservo/config"
)

func widgetSecret() []byte {
	secret := config.AppConfig.WidgetSecret
	if secret == "" {
		secret = "reservo-widget"
	}
	return []byte(secret)
}

// GenerateWidgetToken creates a signed token scoping an embedded widget to a
// tenant. The token expires after the specified duration.
func GenerateWidgetToken(tenantID string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": tenantID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(widgetSecret())
}

// ValidateWidgetToken parses and validates a widget token string.
func ValidateWidgetToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return widgetSecret(), nil
	})
}

// ExtractTenantFromToken extracts the tenant id (subject) from a valid widget token.
func ExtractTenantFromToken(tokenString string) (string, error) {
	token, err := ValidateWidgetToken(tokenString)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("token does not contain a valid 'sub' claim")
	}

	return sub, nil
}
