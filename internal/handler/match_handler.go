package handler

import (
	"net/http"

	"github.com/polite-betrayal/hexmatch/internal/auth"
	"github.com/polite-betrayal/hexmatch/internal/scheduler"
	"github.com/polite-betrayal/hexmatch/pkg/hexgame"
)

// MatchHandler exposes the five external operations over HTTP.
type MatchHandler struct {
	sched    *scheduler.Scheduler
	resolver *auth.Resolver
}

// NewMatchHandler creates a MatchHandler.
func NewMatchHandler(sched *scheduler.Scheduler, resolver *auth.Resolver) *MatchHandler {
	return &MatchHandler{sched: sched, resolver: resolver}
}

type initMatchRequest struct {
	InitialResources hexgame.Resources `json:"initial_resources"`
}

// Fixed dev bot credentials, registered for every match at init time
// the way the reference server's init_game handler seeds
// match_auth_tables[match_id] with the same two literal tokens
// regardless of match — these are per-match scoped by DevTokenTable,
// not globally unique, since this is a dev/bot auth table rather than
// an account system.
const (
	devTokenRed  = "secret_red_token_123"
	devTokenBlue = "secret_blue_token"
)

func defaultDevTokens() map[string]string {
	return map[string]string{
		devTokenRed:  hexgame.PlayerRed,
		devTokenBlue: hexgame.PlayerBlue,
	}
}

// InitMatch handles POST /matches/{id} — init_match.
func (h *MatchHandler) InitMatch(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	var req initMatchRequest
	if err := decodeJSON(r, &req); err != nil {
		req = initMatchRequest{}
	}
	h.sched.InitMatch(matchID, req.InitialResources)
	h.resolver.RegisterDevTokens(matchID, defaultDevTokens())
	writeJSON(w, http.StatusOK, map[string]string{"match_id": matchID, "status": "waiting"})
}

// StartMatch handles POST /matches/{id}/start — start_match.
func (h *MatchHandler) StartMatch(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	if err := h.sched.StartMatch(matchID); err != nil {
		writeMatchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"match_id": matchID, "status": "active"})
}

type submitOrdersRequest struct {
	Tick   int         `json:"tick"`
	Orders []wireOrder `json:"orders"`
}

// wireOrder is the JSON shape for the discriminated Order union: a
// "kind" discriminator plus the union of every concrete order's
// fields, only some of which are populated per kind.
type wireOrder struct {
	Kind       string           `json:"kind"`
	UnitID     string           `json:"unit_id,omitempty"`
	Dest       hexgame.Hex      `json:"dest,omitzero"`
	FacilityID string           `json:"facility_id,omitempty"`
	UnitKind   hexgame.UnitKind `json:"unit_kind,omitempty"`
	TechID     string           `json:"tech_id,omitempty"`
}

func (o wireOrder) toOrder() (hexgame.Order, bool) {
	switch o.Kind {
	case "move":
		return hexgame.MoveOrder{UnitID: o.UnitID, Dest: o.Dest}, true
	case "build":
		return hexgame.BuildOrder{FacilityID: o.FacilityID, Kind: o.UnitKind}, true
	case "research":
		return hexgame.ResearchOrder{TechID: o.TechID}, true
	default:
		return nil, false
	}
}

// SubmitOrders handles POST /matches/{id}/orders — submit_orders.
func (h *MatchHandler) SubmitOrders(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	viewer := h.resolver.Resolve(matchID, r.Header.Get("Authorization"))

	var req submitOrdersRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	orders := make([]hexgame.Order, 0, len(req.Orders))
	for _, wo := range req.Orders {
		if o, ok := wo.toOrder(); ok {
			orders = append(orders, o)
		}
	}

	accepted, err := h.sched.SubmitOrders(matchID, viewer, orders)
	if err != nil {
		writeMatchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"accepted": accepted})
}

// GetState handles GET /matches/{id} — get_state.
func (h *MatchHandler) GetState(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	viewer := h.resolver.Resolve(matchID, r.Header.Get("Authorization"))

	view, err := h.sched.GetState(matchID, viewer)
	if err != nil {
		writeMatchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GetConfig handles GET /matches/{id}/config — get_match_config.
func (h *MatchHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	viewer := h.resolver.Resolve(matchID, r.Header.Get("Authorization"))

	cfg, err := h.sched.GetConfig(matchID, viewer)
	if err != nil {
		writeMatchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func writeMatchError(w http.ResponseWriter, err error) {
	switch err {
	case scheduler.ErrUnknownMatch:
		writeError(w, http.StatusNotFound, err.Error())
	case scheduler.ErrIllegalTransition:
		writeError(w, http.StatusConflict, err.Error())
	case scheduler.ErrRateLimitExceeded:
		writeError(w, http.StatusTooManyRequests, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
