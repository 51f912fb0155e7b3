package hexgame

// Default two-player seed positions, matching the reference engine's
// opposing-corner layout.
var (
	RedHome  = Hex{Q: -3, R: -3}
	BlueHome = Hex{Q: 3, R: 3}
)

const (
	PlayerRed  = "p_red"
	PlayerBlue = "p_blue"
)

// NewTwoPlayerMatch returns a WAITING match seeded with one Chief and
// one Facility per side at fixed opposing coordinates, and the given
// starting resources granted to both players.
func NewTwoPlayerMatch(id string, mapRadius int, starting Resources) *MatchState {
	s := NewMatchState(id, mapRadius)
	seedSide(s, PlayerRed, RedHome, starting)
	seedSide(s, PlayerBlue, BlueHome, starting)
	return s
}

func seedSide(s *MatchState, player string, home Hex, starting Resources) {
	chiefStats := catalog[Chief]
	s.Units[player+"/chief"] = &Unit{
		ID:    player + "/chief",
		Owner: player,
		Kind:  Chief,
		Pos:   home,
		HP:    chiefStats.MaxHP,
		MP:    chiefStats.MaxMP,
	}
	s.Facilities[player+"/hq"] = &Facility{
		ID:    player + "/hq",
		Owner: player,
		Pos:   home,
	}
	s.Resources[player] = starting
	s.Upgrades[player] = make(map[string]bool)
}
