// path: internal/game/errors.go
package game

import "errors"

var (
	ErrOutOfBounds       = errors.New("position out of bounds")
	ErrOccupiedCell      = errors.New("cell already occupied")
	ErrColorMismatch     = errors.New("cell restricted to the other side")
	ErrWrongSide         = errors.New("piece does not belong to the active side")
	ErrImmutablePiece    = errors.New("piece cannot be moved or rotated")
	ErrUnknownPiece      = errors.New("no such piece")
	ErrInvalidLayout     = errors.New("invalid layout")
	ErrGameOver          = errors.New("game already decided")
	ErrSimulationOverrun = errors.New("beam simulation overrun")
	ErrNothingToUndo     = errors.New("nothing to undo")
)
