// path: internal/game/types.go
package game

import "fmt"

type Side uint8

const (
	Red Side = iota
	Blue
)

func (s Side) Opposite() Side {
	if s == Red {
		return Blue
	}
	return Red
}

func (s Side) Index() int { return int(s) }

func (s Side) String() string {
	if s == Red {
		return "red"
	}
	return "blue"
}

func ParseSide(s string) (Side, bool) {
	switch s {
	case "red", "r":
		return Red, true
	case "blue", "b":
		return Blue, true
	default:
		return 0, false
	}
}

type PieceKind uint8

const (
	Laser PieceKind = iota
	Queen
	Switch
	Defender
	Deflector
)

func (k PieceKind) String() string {
	switch k {
	case Laser:
		return "laser"
	case Queen:
		return "queen"
	case Switch:
		return "switch"
	case Defender:
		return "defender"
	case Deflector:
		return "deflector"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

func ParsePieceKind(s string) (PieceKind, bool) {
	switch s {
	case "laser":
		return Laser, true
	case "queen":
		return Queen, true
	case "switch":
		return Switch, true
	case "defender":
		return Defender, true
	case "deflector":
		return Deflector, true
	default:
		return 0, false
	}
}

// Direction is a beam travel direction. Row 0 is the top row, so DirS
// increases the row index. The clockwise ordering makes rotation a
// modular shift.
type Direction uint8

const (
	DirN Direction = iota
	DirE
	DirS
	DirW
)

func (d Direction) Opposite() Direction { return d.Turned(2) }

// Turned rotates the direction by the given number of clockwise quarter
// turns. Negative counts turn counterclockwise.
func (d Direction) Turned(quarters int) Direction {
	return Direction((int(d) + quarters%4 + 4) % 4)
}

func (d Direction) String() string {
	switch d {
	case DirN:
		return "N"
	case DirE:
		return "E"
	case DirS:
		return "S"
	case DirW:
		return "W"
	default:
		return "?"
	}
}

func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "N":
		return DirN, true
	case "E":
		return DirE, true
	case "S":
		return DirS, true
	case "W":
		return DirW, true
	default:
		return 0, false
	}
}

// Orientation is a piece facing in clockwise quarter turns from north.
// It shares the Direction ordering, so converting between the two is a
// plain cast.
type Orientation uint8

const (
	FacingN Orientation = iota
	FacingE
	FacingS
	FacingW
)

// CW returns the orientation after a single 90 degree clockwise step.
func (o Orientation) CW() Orientation { return o.Turned(1) }

func (o Orientation) Turned(quarters int) Orientation {
	return Orientation((int(o) + quarters%4 + 4) % 4)
}

// Direction is the beam direction a piece facing this way emits toward.
func (o Orientation) Direction() Direction { return Direction(o) }

func (o Orientation) String() string { return Direction(o).String() }

func ParseOrientation(s string) (Orientation, bool) {
	d, ok := ParseDirection(s)
	return Orientation(d), ok
}

// Position addresses a board cell. Row 0, col 0 is the top-left corner.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.Row, p.Col) }

// Step returns the neighboring position one cell away in d. The result
// may be out of bounds; callers check against the board.
func (p Position) Step(d Direction) Position {
	switch d {
	case DirN:
		return Position{Row: p.Row - 1, Col: p.Col}
	case DirE:
		return Position{Row: p.Row, Col: p.Col + 1}
	case DirS:
		return Position{Row: p.Row + 1, Col: p.Col}
	default:
		return Position{Row: p.Row, Col: p.Col - 1}
	}
}

// Restriction is the static per-cell color limit set at board construction.
type Restriction uint8

const (
	RestrictNone Restriction = iota
	RestrictRed
	RestrictBlue
)

func (r Restriction) Allows(s Side) bool {
	switch r {
	case RestrictRed:
		return s == Red
	case RestrictBlue:
		return s == Blue
	default:
		return true
	}
}

func (r Restriction) String() string {
	switch r {
	case RestrictRed:
		return "red"
	case RestrictBlue:
		return "blue"
	default:
		return "none"
	}
}

// Piece is a single piece on the board. Facing and Pos mutate only
// through validated moves; destroyed pieces are removed permanently.
type Piece struct {
	ID     int
	Side   Side
	Kind   PieceKind
	Facing Orientation
	Pos    Position
}

type ActionType uint8

const (
	ActionRotate ActionType = iota
	ActionRelocate
)

func (t ActionType) String() string {
	if t == ActionRotate {
		return "rotate"
	}
	return "relocate"
}

func ParseActionType(s string) (ActionType, bool) {
	switch s {
	case "rotate":
		return ActionRotate, true
	case "relocate", "move":
		return ActionRelocate, true
	default:
		return 0, false
	}
}

func (t ActionType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *ActionType) UnmarshalText(text []byte) error {
	parsed, ok := ParseActionType(string(text))
	if !ok {
		return fmt.Errorf("invalid action type %q", string(text))
	}
	*t = parsed
	return nil
}

// Action is a proposed turn for the active side: rotate a piece 90
// degrees clockwise, or relocate it to an empty legal cell. To is only
// meaningful for relocations.
type Action struct {
	Type    ActionType `json:"type"`
	PieceID int        `json:"piece"`
	To      Position   `json:"to,omitempty"`
}

func (a Action) String() string {
	if a.Type == ActionRotate {
		return fmt.Sprintf("rotate piece %d", a.PieceID)
	}
	return fmt.Sprintf("relocate piece %d to %s", a.PieceID, a.To)
}
