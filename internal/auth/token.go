// Package auth resolves an inbound request's bearer token to a
// viewer identity scoped to one match. Unlike a human-login service,
// there is no account system here: every match mints its own bot
// credentials, and any token that doesn't resolve degrades to the
// observer identity rather than failing the request — bots are
// expected to probe with stale or placeholder tokens between
// restarts.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errInvalidToken = errors.New("invalid or expired token")

// Claims binds a bearer token to one match and player.
type Claims struct {
	MatchID  string `json:"match_id"`
	PlayerID string `json:"player_id"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates match-scoped bot tokens.
type TokenManager struct {
	secret []byte
	expiry time.Duration
}

// NewTokenManager creates a TokenManager with the given HS256 secret.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret), expiry: 30 * 24 * time.Hour}
}

// IssueToken mints a token identifying playerID within matchID.
func (m *TokenManager) IssueToken(matchID, playerID string) (string, error) {
	claims := &Claims{
		MatchID:  matchID,
		PlayerID: playerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   playerID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Resolve validates tokenStr and, if it is scoped to matchID, returns
// the player identity it carries.
func (m *TokenManager) Resolve(matchID, tokenStr string) (string, bool) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return "", false
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", false
	}
	if claims.MatchID != matchID {
		return "", false
	}
	return claims.PlayerID, true
}
