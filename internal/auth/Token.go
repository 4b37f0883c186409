package auth

import (
	"errors"

	"github.com/golang-jwt/jwt"
)

// ErrInvalidToken is returned when a token is malformed or its signature does not verify.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload carried by a session token.
type Claims struct {
	ID string `json:"id"`
}

// TokenService signs and verifies session tokens. The signing secret is
// handed over at construction, there is no package-level state.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given signing secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue signs a token embedding the given user ID. Tokens deliberately carry
// no expiry claim: a token stays valid until the secret rotates, matching the
// observable behavior the clients rely on.
func (t *TokenService) Issue(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id": userID,
	})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify checks the token signature and decodes the payload.
// Returns ErrInvalidToken for anything that does not verify.
func (t *TokenService) Verify(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	id, ok := claims["id"].(string)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	return Claims{ID: id}, nil
}
