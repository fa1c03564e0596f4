package auth

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shaher200/roeia-est/models"
)

// tokenTTL matches the storefront's 24-hour session window.
const tokenTTL = 24 * time.Hour

// IssueUserToken mints an HS256-signed JWT for a user. The old
// storefront shipped base64 payloads with a fake signature; tokens are
// now real JWTs verified by the middleware.
func IssueUserToken(user *models.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", ErrMisconfigured
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"phone": user.Phone,
		"name":  user.Name,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func issueGuestToken(guestID string) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", ErrMisconfigured
	}

	claims := jwt.MapClaims{
		"sub":  guestID,
		"role": "guest",
		"exp":  time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
