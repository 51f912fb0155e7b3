package auth

import (
	"testing"

	"github.com/polite-betrayal/hexmatch/pkg/hexgame"
)

func TestResolveEmptyHeaderIsObserver(t *testing.T) {
	r := NewResolver("secret")
	if got := r.Resolve("m1", ""); got != hexgame.ObserverIdentity {
		t.Errorf("got %q, want observer", got)
	}
}

func TestResolveIssuedTokenRoundtrips(t *testing.T) {
	r := NewResolver("secret")
	tok, err := r.IssueToken("m1", hexgame.PlayerRed)
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Resolve("m1", "Bearer "+tok); got != hexgame.PlayerRed {
		t.Errorf("got %q, want %q", got, hexgame.PlayerRed)
	}
}

func TestResolveTokenScopedToWrongMatchFalls(t *testing.T) {
	r := NewResolver("secret")
	tok, _ := r.IssueToken("m1", hexgame.PlayerRed)
	if got := r.Resolve("m2", "Bearer "+tok); got != hexgame.ObserverIdentity {
		t.Errorf("got %q, want observer", got)
	}
}

func TestResolveDevToken(t *testing.T) {
	r := NewResolver("secret")
	r.RegisterDevTokens("m1", map[string]string{"dev-red": hexgame.PlayerRed})
	if got := r.Resolve("m1", "Bearer dev-red"); got != hexgame.PlayerRed {
		t.Errorf("got %q, want %q", got, hexgame.PlayerRed)
	}
	if got := r.Resolve("m2", "Bearer dev-red"); got != hexgame.ObserverIdentity {
		t.Errorf("dev token leaked across matches: got %q", got)
	}
}

func TestResolveGarbageTokenIsObserver(t *testing.T) {
	r := NewResolver("secret")
	if got := r.Resolve("m1", "Bearer not-a-real-token"); got != hexgame.ObserverIdentity {
		t.Errorf("got %q, want observer", got)
	}
}
