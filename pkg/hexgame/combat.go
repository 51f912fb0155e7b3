package hexgame

import "sort"

// TerrainDefense is the terrain mitigation bonus hook for a hex. The
// core release always returns 0; a future map overlay can replace
// this without touching the combat phase.
func TerrainDefense(h Hex) float64 { return 0 }

type combatCredit struct {
	unit     *Unit
	damage   float64
	casualty bool
}

// phase4Combat computes incoming raw damage for every occupied hex,
// distributes it EHP-first across the defending stack, and applies
// all credited damage only after every hex's incoming value has been
// computed — no hex sees the effect of another hex's combat this
// tick.
func (e *Engine) phase4Combat(s *MatchState) {
	index := s.HexIndex()

	hexes := make([]Hex, 0, len(index))
	for h := range index {
		hexes = append(hexes, h)
	}
	sortHexes(hexes)

	raw := make(map[Hex]float64, len(hexes))
	for _, h := range hexes {
		stack := index[h]
		if len(stack) == 0 {
			continue
		}
		owner := stack[0].Owner
		var total float64
		for _, n := range Neighbors(h) {
			for _, a := range index[n] {
				if a.Owner == owner {
					continue
				}
				st, ok := StatsFor(a.Kind)
				if !ok || st.MaxHP <= 0 {
					continue
				}
				atk := effectiveATK(a.Kind, s.UpgradesOf(a.Owner))
				total += atk * (a.HP / st.MaxHP)
			}
		}
		raw[h] = total
	}

	var credits []combatCredit
	for _, h := range hexes {
		remaining := raw[h]
		if remaining <= 0 {
			continue
		}
		owner := index[h][0].Owner
		stack := append([]*Unit(nil), index[h]...)
		sort.Slice(stack, func(i, j int) bool {
			if stack[i].HP != stack[j].HP {
				return stack[i].HP < stack[j].HP
			}
			return stack[i].ID < stack[j].ID
		})
		for _, u := range stack {
			if remaining <= 0 {
				break
			}
			def := effectiveDEF(u.Kind, s.UpgradesOf(owner)) + TerrainDefense(h)
			mitigation := def / (def + defConstant)
			ehp := u.HP / (1 - mitigation)
			if remaining >= ehp {
				credits = append(credits, combatCredit{unit: u, damage: u.HP, casualty: true})
				remaining -= ehp
			} else {
				credits = append(credits, combatCredit{unit: u, damage: remaining * (1 - mitigation), casualty: false})
				remaining = 0
			}
		}
	}

	for _, c := range credits {
		c.unit.HP -= c.damage
		s.Events = append(s.Events, CombatEvent{
			Location: c.unit.Pos,
			Defender: c.unit.ID,
			DamageIn: c.damage,
			Casualty: c.casualty,
		})
	}

	for id, u := range s.Units {
		if u.HP <= 0.5 {
			delete(s.Units, id)
		}
	}
}

func sortHexes(hs []Hex) {
	sort.Slice(hs, func(i, j int) bool {
		if hs[i].Q != hs[j].Q {
			return hs[i].Q < hs[j].Q
		}
		return hs[i].R < hs[j].R
	})
}
