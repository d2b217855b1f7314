// Package auth issues and verifies the per-player room tokens that gate the
// websocket.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims ties a token to one player in one room
type Claims struct {
	RoomCode string `json:"room"`
	PlayerID string `json:"pid"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies room tokens with a shared secret
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens builds a token helper. An empty secret is rejected so a
// misconfigured server fails at startup rather than handing out forgeable
// tokens.
func NewTokens(secret string, ttl time.Duration) (*Tokens, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret is required")
	}
	return &Tokens{secret: []byte(secret), ttl: ttl}, nil
}

// Issue creates a signed token for a player in a room
func (t *Tokens) Issue(roomCode, playerID string) (string, error) {
	now := time.Now()
	claims := Claims{
		RoomCode: roomCode,
		PlayerID: playerID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns its claims
func (t *Tokens) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
