// path: internal/game/engine.go
// Package game implements the laser chess rules engine: board model,
// move validation, beam simulation and the turn state machine.
package game

import (
	"fmt"
	"sort"
)

// Status is the game lifecycle state.
type Status uint8

const (
	InProgress Status = iota
	Won
)

func (s Status) String() string {
	if s == Won {
		return "won"
	}
	return "in progress"
}

// Engine owns the single mutable game state and drives each turn
// through the validate -> apply -> fire -> resolve pipeline. It is not
// safe for concurrent use; callers serialize access.
type Engine struct {
	layout      Layout
	board       *Board
	pieces      map[int]*Piece // live pieces by ID
	turn        Side
	turnCount   int
	status      Status
	winner      Side
	nextPieceID int
	history     []*turnDelta
	lastNote    string
}

// NewEngine validates the layout and builds a ready game with Red to
// move. Fails with ErrInvalidLayout on any uniqueness, restriction or
// laser/queen-count violation.
func NewEngine(layout Layout) (*Engine, error) {
	e := &Engine{layout: layout}
	if err := e.Reset(); err != nil {
		return nil, err
	}
	return e, nil
}

// Reset discards all progress and rebuilds the initial position from
// the engine's layout.
func (e *Engine) Reset() error {
	board, pieces, err := e.layout.build()
	if err != nil {
		return err
	}
	e.board = board
	e.pieces = pieces
	e.turn = Red
	e.turnCount = 0
	e.status = InProgress
	e.winner = Red
	e.nextPieceID = len(pieces) + 1
	e.history = e.history[:0]
	e.lastNote = "new game"
	return nil
}

// Status reports whether the game is still running or has been won.
func (e *Engine) Status() Status { return e.status }

// Winner returns the winning side; ok is false while the game runs.
func (e *Engine) Winner() (Side, bool) {
	if e.status != Won {
		return 0, false
	}
	return e.winner, true
}

// ActiveSide is the side whose turn it is.
func (e *Engine) ActiveSide() Side { return e.turn }

// TurnCount is the number of applied turns.
func (e *Engine) TurnCount() int { return e.turnCount }

// Board exposes the board for read-only inspection.
func (e *Engine) Board() *Board { return e.board }

// ApplyTurn is the sole mutating entry point. It validates the action,
// applies it, fires the active side's laser, removes a destroyed piece
// and either ends the game or hands the turn to the opponent. On any
// error the game state is left exactly as it was.
func (e *Engine) ApplyTurn(a Action) (BeamResult, error) {
	if e.status != InProgress {
		return BeamResult{}, fmt.Errorf("%w: %s already won", ErrGameOver, e.winner)
	}
	mv, err := e.validate(a)
	if err != nil {
		return BeamResult{}, err
	}

	d := &turnDelta{
		action:     a,
		pieceID:    mv.piece.ID,
		prevPos:    mv.piece.Pos,
		prevFacing: mv.piece.Facing,
		prevTurn:   e.turn,
		prevStatus: e.status,
		prevWinner: e.winner,
		prevNote:   e.lastNote,
	}

	if mv.rotate {
		mv.piece.Facing = mv.newFacing
		e.lastNote = fmt.Sprintf("%s rotated %s %d to %s", e.turn, mv.piece.Kind, mv.piece.ID, mv.newFacing)
	} else {
		if err := e.board.MovePiece(mv.from, mv.to); err != nil {
			return BeamResult{}, err
		}
		e.lastNote = fmt.Sprintf("%s relocated %s %d to %s", e.turn, mv.piece.Kind, mv.piece.ID, mv.to)
	}

	res, err := fireBeam(e.board, e.turn)
	if err != nil {
		e.revert(d)
		return BeamResult{}, err
	}

	if res.Outcome == BeamDestroyed {
		victim := e.pieces[res.PieceID]
		d.destroyed = victim
		e.board.RemovePiece(victim.Pos)
		delete(e.pieces, victim.ID)
		e.lastNote += fmt.Sprintf("; beam destroyed %s %s %d", victim.Side, victim.Kind, victim.ID)
		if victim.Kind == Queen {
			e.status = Won
			e.winner = victim.Side.Opposite()
			e.lastNote += fmt.Sprintf("; %s wins", e.winner)
		}
	}

	e.turnCount++
	if e.status == InProgress {
		e.turn = e.turn.Opposite()
	}
	e.history = append(e.history, d)
	return res, nil
}

// Undo reverts the most recent applied turn: the destroyed piece (if
// any) is restored, the moved piece returns to its prior cell and
// facing, and the turn goes back to the side that played it.
func (e *Engine) Undo() error {
	if len(e.history) == 0 {
		return ErrNothingToUndo
	}
	d := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]

	if d.destroyed != nil {
		// The destroyed piece still carries the position it was removed
		// from; its cell is necessarily empty now.
		if err := e.board.PlacePiece(d.destroyed, d.destroyed.Pos); err != nil {
			return fmt.Errorf("restore destroyed piece %d: %w", d.destroyed.ID, err)
		}
		e.pieces[d.destroyed.ID] = d.destroyed
	}

	if pc, ok := e.pieces[d.pieceID]; ok {
		if pc.Pos != d.prevPos {
			if err := e.board.MovePiece(pc.Pos, d.prevPos); err != nil {
				return fmt.Errorf("restore piece %d: %w", pc.ID, err)
			}
		}
		pc.Facing = d.prevFacing
	}

	e.turn = d.prevTurn
	e.status = d.prevStatus
	e.winner = d.prevWinner
	e.lastNote = d.prevNote
	e.turnCount--
	return nil
}

// revert rolls back a half-applied turn after an internal simulation
// failure. Only the move itself can have happened at that point.
func (e *Engine) revert(d *turnDelta) {
	if pc, ok := e.pieces[d.pieceID]; ok {
		if pc.Pos != d.prevPos {
			_ = e.board.MovePiece(pc.Pos, d.prevPos)
		}
		pc.Facing = d.prevFacing
	}
	e.turn = d.prevTurn
	e.status = d.prevStatus
	e.winner = d.prevWinner
	e.lastNote = d.prevNote
}

// sortedSidePieces returns the active side's live pieces in ID order so
// LegalActions is deterministic.
func (e *Engine) sortedSidePieces(side Side) []*Piece {
	out := make([]*Piece, 0, len(e.pieces))
	for _, pc := range e.pieces {
		if pc.Side == side {
			out = append(out, pc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
