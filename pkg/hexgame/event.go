package hexgame

import "encoding/json"

// Event is a tagged variant emitted by a tick: CombatEvent,
// BuildEvent, ResearchEvent, or EliminationEvent. Events accumulate
// into a local slice during the tick and are assigned to the
// returned state only once the tick completes, so a failure partway
// through cannot leak event fragments to readers.
type Event interface {
	eventKind() string
}

// CombatEvent records damage applied to a defending unit.
type CombatEvent struct {
	Location Hex
	Defender string
	DamageIn float64
	Casualty bool
}

func (CombatEvent) eventKind() string { return "COMBAT" }

// MarshalJSON adds the "kind" discriminator the wire format needs
// since Event is carried around as an interface slice. The embedded
// field is named EventKind, not Kind, so it never shadows a concrete
// event's own "Kind" field (BuildEvent's unit kind).
func (e CombatEvent) MarshalJSON() ([]byte, error) {
	type wire CombatEvent
	return json.Marshal(struct {
		EventKind string `json:"kind"`
		wire
	}{EventKind: e.eventKind(), wire: wire(e)})
}

// BuildEvent records a unit produced by a facility.
type BuildEvent struct {
	Location Hex
	Kind     UnitKind
	Owner    string
}

func (BuildEvent) eventKind() string { return "BUILD" }

func (e BuildEvent) MarshalJSON() ([]byte, error) {
	type wire BuildEvent
	return json.Marshal(struct {
		EventKind string `json:"kind"`
		wire
	}{EventKind: e.eventKind(), wire: wire(e)})
}

// ResearchEvent records a technology purchase.
type ResearchEvent struct {
	TechID string
	Owner  string
}

func (ResearchEvent) eventKind() string { return "RESEARCH" }

func (e ResearchEvent) MarshalJSON() ([]byte, error) {
	type wire ResearchEvent
	return json.Marshal(struct {
		EventKind string `json:"kind"`
		wire
	}{EventKind: e.eventKind(), wire: wire(e)})
}

// EliminationResult is WIN or DRAW.
type EliminationResult string

const (
	ResultWin  EliminationResult = "WIN"
	ResultDraw EliminationResult = "DRAW"
)

// EliminationEvent records the end of a match.
type EliminationEvent struct {
	Result EliminationResult
	Winner string // empty unless Result == ResultWin
}

func (EliminationEvent) eventKind() string { return "ELIMINATION" }

func (e EliminationEvent) MarshalJSON() ([]byte, error) {
	type wire EliminationEvent
	return json.Marshal(struct {
		EventKind string `json:"kind"`
		wire
	}{EventKind: e.eventKind(), wire: wire(e)})
}
