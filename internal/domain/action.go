package domain

// Action is one timeline action variant. The concrete type is selected by the
// spec document's "do" field.
type Action interface {
	// Kind returns the action name as it appears in spec documents.
	Kind() string
	// Positions returns every world coordinate the action references, used
	// for cleanup-region containment validation.
	Positions() []Vec3
}

// Place sets a single block.
type Place struct {
	Pos   Vec3
	Block string
}

// Placement is one entry of a PlaceEach action.
type Placement struct {
	Pos   Vec3
	Block string
}

// PlaceEach sets several blocks on the same tick, with a small stagger
// between placements.
type PlaceEach struct {
	Blocks []Placement
}

// Fill fills a box with one block type.
type Fill struct {
	Region Region
	With   string
}

// Remove clears a single block back to air.
type Remove struct {
	Pos Vec3
}

// Check is one expected block of an Assert action.
type Check struct {
	Pos Vec3
	Is  string
}

// Assert verifies that blocks equal their expected identifiers.
type Assert struct {
	Checks []Check
}

// AssertState verifies a named block-state property. Values holds one
// expected value per tick of the entry's tick list; the i-th scheduled tick
// consumes the i-th value.
type AssertState struct {
	Pos    Vec3
	State  string
	Values []string
}

func (Place) Kind() string       { return "place" }
func (PlaceEach) Kind() string   { return "placeEach" }
func (Fill) Kind() string        { return "fill" }
func (Remove) Kind() string      { return "remove" }
func (Assert) Kind() string      { return "assert" }
func (AssertState) Kind() string { return "assertState" }

func (a Place) Positions() []Vec3 { return []Vec3{a.Pos} }

func (a PlaceEach) Positions() []Vec3 {
	ps := make([]Vec3, 0, len(a.Blocks))
	for _, b := range a.Blocks {
		ps = append(ps, b.Pos)
	}
	return ps
}

func (a Fill) Positions() []Vec3 { return []Vec3{a.Region[0], a.Region[1]} }

func (a Remove) Positions() []Vec3 { return []Vec3{a.Pos} }

func (a Assert) Positions() []Vec3 {
	ps := make([]Vec3, 0, len(a.Checks))
	for _, c := range a.Checks {
		ps = append(ps, c.Pos)
	}
	return ps
}

func (a AssertState) Positions() []Vec3 { return []Vec3{a.Pos} }
