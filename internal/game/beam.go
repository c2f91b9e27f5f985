// path: internal/game/beam.go
package game

import "fmt"

// BeamOutcome is the terminal result of a fired beam.
type BeamOutcome uint8

const (
	// BeamExited: the beam left the board without hitting anything fatal.
	BeamExited BeamOutcome = iota
	// BeamDestroyed: the beam was absorbed by a destructible piece.
	BeamDestroyed
	// BeamBlockedByLaser: the beam reached a laser piece of either side.
	// Lasers are invulnerable, so the beam stops with nothing removed.
	BeamBlockedByLaser
)

func (o BeamOutcome) String() string {
	switch o {
	case BeamExited:
		return "exited"
	case BeamDestroyed:
		return "destroyed"
	case BeamBlockedByLaser:
		return "blocked"
	default:
		return "?"
	}
}

func (o BeamOutcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *BeamOutcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "exited":
		*o = BeamExited
	case "destroyed":
		*o = BeamDestroyed
	case "blocked":
		*o = BeamBlockedByLaser
	default:
		return fmt.Errorf("invalid beam outcome %q", string(text))
	}
	return nil
}

// BeamStep is one cell the beam entered, with its direction of travel
// on entry.
type BeamStep struct {
	Pos Position  `json:"pos"`
	Dir Direction `json:"dir"`
}

// BeamResult is the full trace of one fired beam. Path lists every cell
// the beam entered in order, excluding the emitting laser's own cell.
// PieceID identifies the destroyed or blocking piece for the
// BeamDestroyed and BeamBlockedByLaser outcomes.
type BeamResult struct {
	Path    []BeamStep  `json:"path"`
	Outcome BeamOutcome `json:"outcome"`
	PieceID int         `json:"piece,omitempty"`
}

// fireBeam traces the beam emitted by side's laser across the board.
// The simulation does not mutate anything; the caller applies the
// destruction.
//
// Each step advances exactly one cell, so the walk terminates once the
// beam exits or is absorbed; the step bound is a defensive guard whose
// breach means a corrupted reflection table, reported as
// ErrSimulationOverrun rather than a user error.
func fireBeam(b *Board, side Side) (BeamResult, error) {
	var laser *Piece
	b.eachCell(func(_ Position, c Cell) {
		if c.Piece != nil && c.Piece.Kind == Laser && c.Piece.Side == side {
			laser = c.Piece
		}
	})
	if laser == nil {
		return BeamResult{}, fmt.Errorf("%w: no %s laser on the board", ErrSimulationOverrun, side)
	}

	dir := laser.Facing.Direction()
	pos := laser.Pos
	maxSteps := 4 * b.Rows() * b.Cols()
	res := BeamResult{}

	for step := 0; ; step++ {
		if step > maxSteps {
			return BeamResult{}, fmt.Errorf("%w: beam exceeded %d steps", ErrSimulationOverrun, maxSteps)
		}
		pos = pos.Step(dir)
		if !b.InBounds(pos) {
			res.Outcome = BeamExited
			return res, nil
		}
		res.Path = append(res.Path, BeamStep{Pos: pos, Dir: dir})
		occupant := b.PieceAt(pos)
		if occupant == nil {
			continue
		}
		if occupant.Kind == Laser {
			res.Outcome = BeamBlockedByLaser
			res.PieceID = occupant.ID
			return res, nil
		}
		out := Resolve(occupant.Kind, occupant.Facing, dir)
		if out.Kind == Absorb {
			res.Outcome = BeamDestroyed
			res.PieceID = occupant.ID
			return res, nil
		}
		dir = out.Dir
	}
}
