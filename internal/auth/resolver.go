package auth

import (
	"strings"

	"github.com/polite-betrayal/hexmatch/pkg/hexgame"
)

// Resolver turns an Authorization header into a viewer identity
// scoped to one match. It never rejects a request: an absent,
// malformed, or unrecognized token resolves to the observer
// identity, matching the reference server's get_player_from_token
// fallback rather than the usual 401-on-bad-token convention.
type Resolver struct {
	devTokens *DevTokenTable
	tokens    *TokenManager
}

// NewResolver creates a Resolver backed by jwtSecret for issued
// tokens and an empty dev-token table for match manifests to fill in.
func NewResolver(jwtSecret string) *Resolver {
	return &Resolver{
		devTokens: NewDevTokenTable(),
		tokens:    NewTokenManager(jwtSecret),
	}
}

// RegisterDevTokens installs a match's fixed bot-credential table.
func (r *Resolver) RegisterDevTokens(matchID string, tokens map[string]string) {
	r.devTokens.Register(matchID, tokens)
}

// IssueToken mints a JWT for playerID scoped to matchID.
func (r *Resolver) IssueToken(matchID, playerID string) (string, error) {
	return r.tokens.IssueToken(matchID, playerID)
}

// Resolve extracts the bearer token from header and resolves it to a
// viewer identity within matchID.
func (r *Resolver) Resolve(matchID, header string) string {
	token := strings.TrimSpace(header)
	if after, ok := strings.CutPrefix(token, "Bearer "); ok {
		token = after
	}
	if token == "" || token == hexgame.ObserverIdentity {
		return hexgame.ObserverIdentity
	}
	if player, ok := r.tokens.Resolve(matchID, token); ok {
		return player
	}
	if player, ok := r.devTokens.Lookup(matchID, token); ok {
		return player
	}
	return hexgame.ObserverIdentity
}
