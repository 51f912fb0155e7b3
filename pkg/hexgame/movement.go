package hexgame

import "sort"

// moveIntent is one unit's attempt to occupy Target this tick.
type moveIntent struct {
	UnitID string
	Owner  string
	Origin Hex
	Target Hex
	MP     int
}

// movementResolver holds the reusable buffers Phase 3 needs across
// ticks, mirroring the buffer-reuse discipline of a hot-path
// conflict resolver: build once, reset() every call instead of
// reallocating maps and slices each tick.
type movementResolver struct {
	order   []string               // unit ids, first-seen order
	byUnit  map[string]*moveIntent // latest intent per unit
	bounced map[string]bool
}

func newMovementResolver() *movementResolver {
	return &movementResolver{
		byUnit:  make(map[string]*moveIntent),
		bounced: make(map[string]bool),
	}
}

func (m *movementResolver) reset() {
	m.order = m.order[:0]
	clear(m.byUnit)
	clear(m.bounced)
}

// phase3Movement resolves the lock-and-bounce conflict rules and
// applies surviving moves directly to s.
func (e *Engine) phase3Movement(s *MatchState, orders []TaggedOrder) {
	m := e.movement
	m.reset()

	for _, to := range orders {
		mo, ok := to.Order.(MoveOrder)
		if !ok {
			continue
		}
		u, ok := s.Units[mo.UnitID]
		if !ok || u.Owner != to.Player {
			continue
		}
		if Distance(mo.Dest, Hex{}) > s.MapRadius {
			continue
		}
		if Distance(u.Pos, mo.Dest) != 1 {
			continue
		}
		if _, seen := m.byUnit[mo.UnitID]; !seen {
			m.order = append(m.order, mo.UnitID)
		}
		m.byUnit[mo.UnitID] = &moveIntent{
			UnitID: mo.UnitID,
			Owner:  u.Owner,
			Origin: u.Pos,
			Target: mo.Dest,
			MP:     u.MP,
		}
	}

	// Pre-move occupancy snapshot: sub-phases B and C reason about who
	// currently sits on a hex, which does not change until execution.
	occupants := s.HexIndex()

	// Sub-phase A: same-target contention.
	byTarget := make(map[Hex][]*moveIntent, len(m.order))
	for _, id := range m.order {
		in := m.byUnit[id]
		byTarget[in.Target] = append(byTarget[in.Target], in)
	}
	for _, group := range byTarget {
		if len(group) < 2 {
			continue
		}
		sort.Slice(group, func(i, j int) bool {
			if group[i].MP != group[j].MP {
				return group[i].MP > group[j].MP
			}
			return idHash(group[i].UnitID) > idHash(group[j].UnitID)
		})
		for _, loser := range group[1:] {
			m.bounced[loser.UnitID] = true
		}
	}

	// Sub-phase B: head-to-head hostile swap.
	for _, id := range m.order {
		if m.bounced[id] {
			continue
		}
		u := m.byUnit[id]
		for _, occ := range occupants[u.Target] {
			if occ.ID == u.UnitID {
				continue
			}
			v, ok := m.byUnit[occ.ID]
			if !ok || m.bounced[v.UnitID] {
				continue
			}
			if v.Target == u.Origin && v.Origin == u.Target && occ.Owner != u.Owner {
				m.bounced[u.UnitID] = true
				m.bounced[v.UnitID] = true
			}
		}
	}

	// Sub-phase C: chain-dependency fixed point.
	for {
		changed := false
		for _, id := range m.order {
			if m.bounced[id] {
				continue
			}
			u := m.byUnit[id]
			occ := occupants[u.Target]
			count := len(occ)
			blocked := false
			for _, v := range occ {
				if v.Owner != u.Owner {
					blocked = true
					break
				}
				vi, hasIntent := m.byUnit[v.ID]
				if !hasIntent {
					if count >= stackCap {
						blocked = true
						break
					}
					continue
				}
				if m.bounced[vi.UnitID] && count >= stackCap {
					blocked = true
					break
				}
			}
			if blocked {
				m.bounced[id] = true
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	// Execution.
	for _, id := range m.order {
		if m.bounced[id] {
			continue
		}
		in := m.byUnit[id]
		u := s.Units[in.UnitID]
		u.Pos = in.Target
		if u.MP > 0 {
			u.MP--
		}
	}
}
