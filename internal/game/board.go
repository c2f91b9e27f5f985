// path: internal/game/board.go
package game

import "fmt"

// Cell is one board square: an immutable color restriction plus at most
// one occupying piece.
type Cell struct {
	Restriction Restriction
	Piece       *Piece
}

// Board is a fixed-size grid of cells. It owns piece placement but not
// the turn order; the Engine drives all mutation through validated
// moves, so the color-restriction invariant can never be violated after
// construction.
type Board struct {
	rows  int
	cols  int
	cells []Cell // row-major
}

func NewBoard(rows, cols int) (*Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: board dimensions %dx%d", ErrInvalidLayout, rows, cols)
	}
	return &Board{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}, nil
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

func (b *Board) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < b.rows && p.Col >= 0 && p.Col < b.cols
}

func (b *Board) index(p Position) int { return p.Row*b.cols + p.Col }

// CellAt returns the cell at p.
func (b *Board) CellAt(p Position) (Cell, error) {
	if !b.InBounds(p) {
		return Cell{}, fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	return b.cells[b.index(p)], nil
}

// PieceAt returns the occupying piece, or nil for an empty or
// out-of-bounds position.
func (b *Board) PieceAt(p Position) *Piece {
	if !b.InBounds(p) {
		return nil
	}
	return b.cells[b.index(p)].Piece
}

// setRestriction is only called during board construction; restrictions
// are immutable afterwards.
func (b *Board) setRestriction(p Position, r Restriction) error {
	if !b.InBounds(p) {
		return fmt.Errorf("%w: restriction at %s", ErrOutOfBounds, p)
	}
	b.cells[b.index(p)].Restriction = r
	return nil
}

// PlacePiece puts pc on the cell at p. All checks run before any
// mutation: range first, then occupancy, then the color restriction.
func (b *Board) PlacePiece(pc *Piece, p Position) error {
	if !b.InBounds(p) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	cell := &b.cells[b.index(p)]
	if cell.Piece != nil {
		return fmt.Errorf("%w: %s", ErrOccupiedCell, p)
	}
	if !cell.Restriction.Allows(pc.Side) {
		return fmt.Errorf("%w: %s side piece on %s-only cell %s", ErrColorMismatch, pc.Side, cell.Restriction, p)
	}
	cell.Piece = pc
	pc.Pos = p
	return nil
}

// RemovePiece clears the cell at p and returns the piece that occupied
// it, or nil if the cell was empty or out of bounds.
func (b *Board) RemovePiece(p Position) *Piece {
	if !b.InBounds(p) {
		return nil
	}
	cell := &b.cells[b.index(p)]
	pc := cell.Piece
	cell.Piece = nil
	return pc
}

// MovePiece relocates the piece at from to to. It is atomic: every
// failure mode is checked before either cell is touched, so no partial
// state is ever observable.
func (b *Board) MovePiece(from, to Position) error {
	if !b.InBounds(from) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, from)
	}
	if !b.InBounds(to) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, to)
	}
	pc := b.cells[b.index(from)].Piece
	if pc == nil {
		return fmt.Errorf("%w: empty cell %s", ErrUnknownPiece, from)
	}
	dst := &b.cells[b.index(to)]
	if dst.Piece != nil {
		return fmt.Errorf("%w: %s", ErrOccupiedCell, to)
	}
	if !dst.Restriction.Allows(pc.Side) {
		return fmt.Errorf("%w: %s side piece on %s-only cell %s", ErrColorMismatch, pc.Side, dst.Restriction, to)
	}
	b.cells[b.index(from)].Piece = nil
	dst.Piece = pc
	pc.Pos = to
	return nil
}

// eachCell visits every position in row-major order.
func (b *Board) eachCell(fn func(p Position, c Cell)) {
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			p := Position{Row: r, Col: c}
			fn(p, b.cells[b.index(p)])
		}
	}
}
