// path: internal/game/validate.go
package game

import "fmt"

// validatedMove describes the board delta an accepted action will
// produce. Validation never mutates; applying the delta is the
// engine's separate, explicit step.
type validatedMove struct {
	piece     *Piece
	rotate    bool
	newFacing Orientation
	from      Position
	to        Position
}

// validate checks a proposed action against the current state.
//
// Ownership first, then per-kind immutability, then the target cell
// rules for relocations. Lasers never move or rotate; queens may move
// but not rotate (a queen "rotation" would be an invisible pass).
// Relocation range is unrestricted: any empty cell whose restriction
// admits the piece's side is a legal destination.
func (e *Engine) validate(a Action) (validatedMove, error) {
	pc, ok := e.pieces[a.PieceID]
	if !ok {
		return validatedMove{}, fmt.Errorf("%w: id %d", ErrUnknownPiece, a.PieceID)
	}
	if pc.Side != e.turn {
		return validatedMove{}, fmt.Errorf("%w: %s %d is %s's piece", ErrWrongSide, pc.Kind, pc.ID, pc.Side)
	}
	if pc.Kind == Laser {
		return validatedMove{}, fmt.Errorf("%w: the laser is fixed", ErrImmutablePiece)
	}

	switch a.Type {
	case ActionRotate:
		if pc.Kind == Queen {
			return validatedMove{}, fmt.Errorf("%w: the queen cannot rotate", ErrImmutablePiece)
		}
		return validatedMove{
			piece:     pc,
			rotate:    true,
			newFacing: pc.Facing.CW(),
		}, nil

	case ActionRelocate:
		if !e.board.InBounds(a.To) {
			return validatedMove{}, fmt.Errorf("%w: %s", ErrOutOfBounds, a.To)
		}
		cell, err := e.board.CellAt(a.To)
		if err != nil {
			return validatedMove{}, err
		}
		if cell.Piece != nil {
			return validatedMove{}, fmt.Errorf("%w: %s", ErrOccupiedCell, a.To)
		}
		if !cell.Restriction.Allows(pc.Side) {
			return validatedMove{}, fmt.Errorf("%w: %s is %s-only", ErrColorMismatch, a.To, cell.Restriction)
		}
		return validatedMove{
			piece: pc,
			from:  pc.Pos,
			to:    a.To,
		}, nil

	default:
		return validatedMove{}, fmt.Errorf("unknown action type %d", a.Type)
	}
}

// LegalActions enumerates every action the active side may play right
// now. Returns nil once the game is over.
func (e *Engine) LegalActions() []Action {
	if e.status != InProgress {
		return nil
	}
	var actions []Action
	for _, pc := range e.sortedSidePieces(e.turn) {
		if pc.Kind == Laser {
			continue
		}
		if pc.Kind != Queen {
			actions = append(actions, Action{Type: ActionRotate, PieceID: pc.ID})
		}
		e.board.eachCell(func(p Position, c Cell) {
			if c.Piece == nil && c.Restriction.Allows(pc.Side) {
				actions = append(actions, Action{Type: ActionRelocate, PieceID: pc.ID, To: p})
			}
		})
	}
	return actions
}
