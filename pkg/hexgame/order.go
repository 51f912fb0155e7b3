package hexgame

// Order is a tagged variant: MoveOrder, BuildOrder, or ResearchOrder.
// Each carries only the fields its kind needs — there is no single
// struct with optional fields and a runtime validator switching on a
// type tag.
type Order interface {
	orderKind() string
}

// MoveOrder requests that UnitID attempt to occupy Dest this tick.
type MoveOrder struct {
	UnitID string
	Dest   Hex
}

func (MoveOrder) orderKind() string { return "MOVE" }

// BuildOrder requests that FacilityID spend resources to produce a
// unit of Kind at its hex.
type BuildOrder struct {
	FacilityID string
	Kind       UnitKind
}

func (BuildOrder) orderKind() string { return "BUILD" }

// ResearchOrder requests that the submitting player purchase TechID.
type ResearchOrder struct {
	TechID string
}

func (ResearchOrder) orderKind() string { return "RESEARCH" }

// TaggedOrder is an order paired with the identity of the player who
// submitted it. The order intake buffer (B) stores these.
type TaggedOrder struct {
	Player string
	Order  Order
}
