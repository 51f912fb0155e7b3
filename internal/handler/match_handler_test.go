package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/polite-betrayal/hexmatch/internal/auth"
	"github.com/polite-betrayal/hexmatch/internal/scheduler"
	"github.com/polite-betrayal/hexmatch/pkg/hexgame"
)

func newTestHandler() *MatchHandler {
	sched := scheduler.New(time.Second, 10)
	resolver := auth.NewResolver("test-secret")
	return NewMatchHandler(sched, resolver)
}

func withPathValue(req *http.Request, key, value string) *http.Request {
	req.SetPathValue(key, value)
	return req
}

func TestInitAndStartMatch(t *testing.T) {
	h := newTestHandler()

	req := withPathValue(httptest.NewRequest(http.MethodPost, "/matches/m1", bytes.NewBufferString(`{}`)), "id", "m1")
	rec := httptest.NewRecorder()
	h.InitMatch(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("init: status %d, body %s", rec.Code, rec.Body.String())
	}

	startReq := withPathValue(httptest.NewRequest(http.MethodPost, "/matches/m1/start", nil), "id", "m1")
	startRec := httptest.NewRecorder()
	h.StartMatch(startRec, startReq)
	if startRec.Code != http.StatusOK {
		t.Fatalf("start: status %d, body %s", startRec.Code, startRec.Body.String())
	}

	startAgainRec := httptest.NewRecorder()
	h.StartMatch(startAgainRec, withPathValue(httptest.NewRequest(http.MethodPost, "/matches/m1/start", nil), "id", "m1"))
	if startAgainRec.Code != http.StatusConflict {
		t.Errorf("restarting an active match: status %d, want 409", startAgainRec.Code)
	}
}

func TestStartUnknownMatchReturns404(t *testing.T) {
	h := newTestHandler()
	req := withPathValue(httptest.NewRequest(http.MethodPost, "/matches/nope/start", nil), "id", "nope")
	rec := httptest.NewRecorder()
	h.StartMatch(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSubmitOrdersAndGetState(t *testing.T) {
	h := newTestHandler()
	h.sched.InitMatch("m1", hexgame.Resources{I: 500})
	h.sched.StartMatch("m1")
	h.resolver.RegisterDevTokens("m1", map[string]string{"dev-red": hexgame.PlayerRed})

	body := `{"tick":1,"orders":[{"kind":"research","tech_id":"INFANTRY_TIER_1"}]}`
	req := withPathValue(httptest.NewRequest(http.MethodPost, "/matches/m1/orders", bytes.NewBufferString(body)), "id", "m1")
	req.Header.Set("Authorization", "Bearer dev-red")
	rec := httptest.NewRecorder()
	h.SubmitOrders(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("submit: status %d, body %s", rec.Code, rec.Body.String())
	}
	var result map[string]int
	json.Unmarshal(rec.Body.Bytes(), &result)
	if result["accepted"] != 1 {
		t.Errorf("accepted = %d, want 1", result["accepted"])
	}

	getReq := withPathValue(httptest.NewRequest(http.MethodGet, "/matches/m1", nil), "id", "m1")
	getReq.Header.Set("Authorization", "Bearer dev-red")
	getRec := httptest.NewRecorder()
	h.GetState(getRec, getReq)
	if getRec.Code != http.StatusOK {
		t.Fatalf("get_state: status %d, body %s", getRec.Code, getRec.Body.String())
	}
	var view hexgame.View
	if err := json.Unmarshal(getRec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.Viewer != hexgame.PlayerRed {
		t.Errorf("viewer = %s, want %s", view.Viewer, hexgame.PlayerRed)
	}
}

func TestInitMatchRegistersDevTokens(t *testing.T) {
	h := newTestHandler()
	initReq := withPathValue(httptest.NewRequest(http.MethodPost, "/matches/m1", bytes.NewBufferString(`{"initial_resources":{"influence":500}}`)), "id", "m1")
	h.InitMatch(httptest.NewRecorder(), initReq)
	h.sched.StartMatch("m1")

	body := `{"orders":[{"kind":"research","tech_id":"INFANTRY_TIER_1"}]}`
	req := withPathValue(httptest.NewRequest(http.MethodPost, "/matches/m1/orders", bytes.NewBufferString(body)), "id", "m1")
	req.Header.Set("Authorization", "Bearer "+devTokenRed)
	rec := httptest.NewRecorder()
	h.SubmitOrders(rec, req)

	var result map[string]int
	json.Unmarshal(rec.Body.Bytes(), &result)
	if result["accepted"] != 1 {
		t.Errorf("accepted = %d, want 1 — init_match's dev token should resolve to p_red, not the observer", result["accepted"])
	}
}

func TestSubmitOrdersObserverTokenIsObserved(t *testing.T) {
	h := newTestHandler()
	h.sched.InitMatch("m1", hexgame.Resources{})
	h.sched.StartMatch("m1")

	body := `{"orders":[{"kind":"research","tech_id":"INFANTRY_TIER_1"}]}`
	req := withPathValue(httptest.NewRequest(http.MethodPost, "/matches/m1/orders", bytes.NewBufferString(body)), "id", "m1")
	rec := httptest.NewRecorder()
	h.SubmitOrders(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	var result map[string]int
	json.Unmarshal(rec.Body.Bytes(), &result)
	if result["accepted"] != 0 {
		t.Errorf("observer order was accepted: %d", result["accepted"])
	}
}

func TestGetConfig(t *testing.T) {
	h := newTestHandler()
	h.sched.InitMatch("m1", hexgame.Resources{})

	req := withPathValue(httptest.NewRequest(http.MethodGet, "/matches/m1/config", nil), "id", "m1")
	rec := httptest.NewRecorder()
	h.GetConfig(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	var cfg scheduler.MatchConfig
	if err := json.Unmarshal(rec.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if cfg.MapRadius != 10 {
		t.Errorf("map radius = %d, want 10", cfg.MapRadius)
	}
}

func TestInitMatchIdempotentOverHTTP(t *testing.T) {
	h := newTestHandler()
	req1 := withPathValue(httptest.NewRequest(http.MethodPost, "/matches/m1", bytes.NewBufferString(`{"initial_resources":{"metal":100}}`)), "id", "m1")
	h.InitMatch(httptest.NewRecorder(), req1)

	req2 := withPathValue(httptest.NewRequest(http.MethodPost, "/matches/m1", bytes.NewBufferString(`{"initial_resources":{"metal":999}}`)), "id", "m1")
	h.InitMatch(httptest.NewRecorder(), req2)

	view, err := h.sched.GetState("m1", hexgame.ObserverIdentity)
	if err != nil {
		t.Fatal(err)
	}
	if view.Resources.M == 999 {
		t.Errorf("second init_match call mutated an existing match")
	}
}
