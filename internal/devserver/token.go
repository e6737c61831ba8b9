package devserver

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errInvalidToken = errors.New("invalid token")

// Claims carries the session subject on top of the registered claims.
type Claims struct {
	jwt.RegisteredClaims
	Username string
}

func generateToken(username string, secretKey []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		Username: username,
	})

	return token.SignedString(secretKey)
}

// usernameFromToken verifies the token and returns its subject. An expired
// token yields jwt.ErrTokenExpired so the caller can answer 419 instead
// of 401.
func usernameFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", errInvalidToken
	}

	return claims.Username, nil
}
