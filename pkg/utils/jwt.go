package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidSessionToken = errors.New("invalid session token")

// GenerateSessionToken signs the cookie payload. The token alone is not a
// session: the sid inside must still be live in the session store, so logout
// revokes it server-side.
func GenerateSessionToken(sid string, userID uint, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"id":  userID,
		"exp": time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

// ParseSessionToken validates the signature and returns the sid and user id.
func ParseSessionToken(tokenString string) (string, uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSessionToken
		}
		return secret(), nil
	})
	if err != nil || !token.Valid {
		return "", 0, ErrInvalidSessionToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", 0, ErrInvalidSessionToken
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", 0, ErrInvalidSessionToken
	}
	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return "", 0, ErrInvalidSessionToken
	}

	return sid, uint(id), nil
}

func secret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}
