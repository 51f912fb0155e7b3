package hexgame

import (
	"sort"
	"strconv"
)

// defConstant is the mitigation-formula constant used by Phase 4.
const defConstant = 25.0

// stackCap is the maximum number of units any hex may hold.
const stackCap = 10

// upkeepInterval is how often (in ticks) unit upkeep is debited.
const upkeepInterval = 10

// Engine runs advance(S, orders) -> S'. It owns a double-buffered
// scratch state and the movement resolver's reusable buffers, so a
// long-running match ticks without allocating steady-state garbage.
type Engine struct {
	scratch  *MatchState
	movement *movementResolver
}

// NewEngine returns a ready-to-use Engine.
func NewEngine() *Engine {
	return &Engine{movement: newMovementResolver()}
}

// Advance computes the next tick of s given orders and returns it.
// The returned state is a different object than s; s is left
// unmodified and becomes the Engine's scratch buffer for the call
// after next, which is the "double-buffered pointer" swap the design
// favors over a deep copy on every tick.
func (e *Engine) Advance(s *MatchState, orders []TaggedOrder) *MatchState {
	if e.scratch == nil {
		e.scratch = &MatchState{}
	}
	s.CloneInto(e.scratch)
	next := e.scratch
	next.Tick = s.Tick + 1
	next.Events = next.Events[:0]

	e.phase0Upkeep(next)
	e.phase1Research(next, orders)
	e.phase2Build(next, orders)
	e.phase3Movement(next, orders)
	e.phase4Combat(next)
	e.phase5Victory(next)

	e.scratch = s
	return next
}

// phase0Upkeep refreshes MP and, every upkeepInterval ticks, debits
// fuel upkeep; units whose owner cannot pay get a starvation MP
// penalty instead of a partial debit. Unit order is sorted by id so
// debits against a shared fuel pool are deterministic.
func (e *Engine) phase0Upkeep(s *MatchState) {
	ids := make([]string, 0, len(s.Units))
	for id := range s.Units {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	due := s.Tick%upkeepInterval == 0
	for _, id := range ids {
		u := s.Units[id]
		st, ok := StatsFor(u.Kind)
		if !ok {
			continue
		}
		if due && st.UpkeepF > 0 {
			res := s.Resources[u.Owner]
			if res.F >= st.UpkeepF {
				res.F -= st.UpkeepF
				s.Resources[u.Owner] = res
				u.MP = st.MaxMP
			} else {
				u.MP = int(float64(st.MaxMP) * 0.75)
			}
			continue
		}
		u.MP = st.MaxMP
	}
}

// phase1Research spends intel on technologies in submission order.
func (e *Engine) phase1Research(s *MatchState, orders []TaggedOrder) {
	for _, to := range orders {
		ro, ok := to.Order.(ResearchOrder)
		if !ok {
			continue
		}
		if s.UpgradesOf(to.Player)[ro.TechID] {
			continue
		}
		res := s.Resources[to.Player]
		if res.I < ResearchCost {
			continue
		}
		res.I -= ResearchCost
		s.Resources[to.Player] = res
		if s.Upgrades[to.Player] == nil {
			s.Upgrades[to.Player] = make(map[string]bool)
		}
		s.Upgrades[to.Player][ro.TechID] = true
		s.Events = append(s.Events, ResearchEvent{TechID: ro.TechID, Owner: to.Player})
	}
}

// phase2Build spends resources to create units at owned facilities
// in submission order. Newly built units do not move this tick but
// are eligible for combat.
func (e *Engine) phase2Build(s *MatchState, orders []TaggedOrder) {
	counts := make(map[Hex]int)
	for _, u := range s.Units {
		counts[u.Pos]++
	}
	seq := 0
	for _, to := range orders {
		bo, ok := to.Order.(BuildOrder)
		if !ok {
			continue
		}
		fac, ok := s.Facilities[bo.FacilityID]
		if !ok || fac.Owner != to.Player {
			continue
		}
		if counts[fac.Pos] >= stackCap {
			continue
		}
		st, ok := StatsFor(bo.Kind)
		if !ok {
			continue
		}
		res := s.Resources[to.Player]
		if res.M < st.Cost.M || res.F < st.Cost.F || res.I < st.Cost.I {
			continue
		}
		res.M -= st.Cost.M
		res.F -= st.Cost.F
		res.I -= st.Cost.I
		s.Resources[to.Player] = res

		seq++
		id := facilityBuildUnitID(bo.FacilityID, s.Tick, seq)
		s.Units[id] = &Unit{
			ID:    id,
			Owner: to.Player,
			Kind:  bo.Kind,
			Pos:   fac.Pos,
			HP:    st.MaxHP,
			MP:    st.MaxMP,
		}
		counts[fac.Pos]++
		s.Events = append(s.Events, BuildEvent{Location: fac.Pos, Kind: bo.Kind, Owner: to.Player})
	}
}

func facilityBuildUnitID(facilityID string, tick, seq int) string {
	return facilityID + "/" + strconv.Itoa(tick) + "/" + strconv.Itoa(seq)
}

// phase5Victory checks Chief survival and, on elimination, finishes
// the match.
func (e *Engine) phase5Victory(s *MatchState) {
	if s.Status != StatusActive {
		return
	}
	alive := s.AlivePlayers()
	switch len(alive) {
	case 0:
		s.Status = StatusFinished
		s.Events = append(s.Events, EliminationEvent{Result: ResultDraw})
	case 1:
		s.Status = StatusFinished
		s.Events = append(s.Events, EliminationEvent{Result: ResultWin, Winner: alive[0]})
	}
}
