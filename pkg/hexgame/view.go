package hexgame

import "sort"

// ObserverIdentity is the viewer identity assigned to a caller whose
// token does not resolve to a player. Observers read projections but
// cannot submit orders; the order intake buffer discards orders
// tagged with this identity before they ever reach the engine.
const ObserverIdentity = "observer"

// UnitView is the wire-shaped projection of a Unit.
type UnitView struct {
	ID    string   `json:"id"`
	Owner string   `json:"owner"`
	Kind  UnitKind `json:"kind"`
	Pos   Hex      `json:"pos"`
	HP    float64  `json:"hp"`
	MP    int      `json:"mp"`
}

// View is the per-viewer projection of a MatchState.
type View struct {
	MatchID       string      `json:"match_id"`
	Tick          int         `json:"tick"`
	Status        Status      `json:"status"`
	Viewer        string      `json:"viewer"`
	Resources     Resources   `json:"resources"`
	Upgrades      []string    `json:"upgrades"`
	Units         []UnitView  `json:"units"`          // viewer-owned
	VisibleUnits  []UnitView  `json:"visible_units"`   // every non-owned unit (trivial fog-of-war)
	Events        []Event     `json:"events"`
}

// Project renders s from viewer's perspective. The returned View is
// a structural copy; mutating it can never reach back into s.
func Project(s *MatchState, viewer string) *View {
	v := &View{
		MatchID: s.ID,
		Tick:    s.Tick,
		Status:  s.Status,
		Viewer:  viewer,
		Events:  append([]Event(nil), s.Events...),
	}

	if viewer == ObserverIdentity {
		v.Resources = referenceResources(s)
		for _, u := range sortedUnits(s) {
			v.VisibleUnits = append(v.VisibleUnits, unitView(u))
		}
		return v
	}

	v.Resources = s.ResourcesOf(viewer)
	v.Upgrades = sortedTechs(s.UpgradesOf(viewer))
	for _, u := range sortedUnits(s) {
		uv := unitView(u)
		if u.Owner == viewer {
			v.Units = append(v.Units, uv)
		} else if !sightBlocked(s, viewer, u) {
			v.VisibleUnits = append(v.VisibleUnits, uv)
		}
	}
	return v
}

// sightBlocked is the LOS hook Linedraw exists to support. The core
// release uses trivial fog-of-war (every enemy unit visible), so it
// always returns false; a stricter policy replaces this one function
// without touching the tick engine.
func sightBlocked(s *MatchState, viewer string, u *Unit) bool {
	return false
}

func unitView(u *Unit) UnitView {
	return UnitView{ID: u.ID, Owner: u.Owner, Kind: u.Kind, Pos: u.Pos, HP: u.HP, MP: u.MP}
}

func sortedUnits(s *MatchState) []*Unit {
	out := make([]*Unit, 0, len(s.Units))
	for _, u := range s.Units {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortedTechs(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// referenceResources returns a documented, fixed reference player's
// resources for the observer view: the lexicographically first
// player id with a resource pool.
func referenceResources(s *MatchState) Resources {
	players := make([]string, 0, len(s.Resources))
	for p := range s.Resources {
		players = append(players, p)
	}
	sort.Strings(players)
	if len(players) == 0 {
		return Resources{}
	}
	return s.Resources[players[0]]
}
