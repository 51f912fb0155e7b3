package hexgame

// UnitKind enumerates the unit archetypes. The catalog below is the
// sole place stats live; nothing else in the package hardcodes them.
type UnitKind string

const (
	Chief          UnitKind = "Chief"
	LightInfantry  UnitKind = "LightInfantry"
	Scout          UnitKind = "Scout"
	Armored        UnitKind = "Armored"
	Mechanized     UnitKind = "Mechanized"
	SpecialForces  UnitKind = "SpecialForces"
)

// Cost is the resource price of building a unit.
type Cost struct {
	M, F, I int
}

// Stats holds one unit kind's balance data.
type Stats struct {
	MaxHP     float64
	MaxMP     int
	BaseATK   float64
	BaseDEF   float64
	Cost      Cost
	UpkeepF   int // fuel debited every 10th tick
}

// catalog is keyed by kind; treated as read-only after package init.
var catalog = map[UnitKind]Stats{
	Chief:         {MaxHP: 150, MaxMP: 1, BaseATK: 12, BaseDEF: 12, Cost: Cost{}, UpkeepF: 0},
	LightInfantry: {MaxHP: 60, MaxMP: 2, BaseATK: 10, BaseDEF: 6, Cost: Cost{M: 40}, UpkeepF: 0},
	Scout:         {MaxHP: 40, MaxMP: 3, BaseATK: 6, BaseDEF: 4, Cost: Cost{M: 60}, UpkeepF: 0},
	Armored:       {MaxHP: 120, MaxMP: 1, BaseATK: 20, BaseDEF: 16, Cost: Cost{M: 120, F: 40}, UpkeepF: 4},
	Mechanized:    {MaxHP: 90, MaxMP: 2, BaseATK: 18, BaseDEF: 12, Cost: Cost{M: 140, F: 60}, UpkeepF: 6},
	SpecialForces: {MaxHP: 80, MaxMP: 2, BaseATK: 14, BaseDEF: 10, Cost: Cost{M: 80, I: 30}, UpkeepF: 0},
}

// StatsFor returns the catalog entry for kind and whether it exists.
func StatsFor(kind UnitKind) (Stats, bool) {
	s, ok := catalog[kind]
	return s, ok
}

// ResearchCost is the intel price of any technology; research is
// instant and permanent once paid.
const ResearchCost = 200

// TechInfantryTier1 multiplies LightInfantry ATK and DEF by 1.10.
const TechInfantryTier1 = "INFANTRY_TIER_1"

// infantryTier1Mult is the multiplier TechInfantryTier1 applies.
const infantryTier1Mult = 1.10

// effectiveATK returns a unit's attack after the owner's researched
// upgrades are applied.
func effectiveATK(kind UnitKind, upgrades map[string]bool) float64 {
	st := catalog[kind]
	atk := st.BaseATK
	if kind == LightInfantry && upgrades[TechInfantryTier1] {
		atk *= infantryTier1Mult
	}
	return atk
}

// effectiveDEF returns a unit's defense after the owner's researched
// upgrades are applied.
func effectiveDEF(kind UnitKind, upgrades map[string]bool) float64 {
	st := catalog[kind]
	def := st.BaseDEF
	if kind == LightInfantry && upgrades[TechInfantryTier1] {
		def *= infantryTier1Mult
	}
	return def
}
