// path: internal/game/layout.go
package game

import "fmt"

// PiecePlacement is one initial piece in a layout.
type PiecePlacement struct {
	Side   Side
	Kind   PieceKind
	Facing Orientation
	Pos    Position
}

// RestrictedCell marks a cell reserved for one side's pieces.
type RestrictedCell struct {
	Pos         Position
	Restriction Restriction
}

// Layout enumerates board dimensions, per-cell color restrictions and
// initial piece placements. It is static configuration data: the
// classic layout below encodes the reference board, and tests build
// smaller ones.
type Layout struct {
	Rows         int
	Cols         int
	Restrictions []RestrictedCell
	Pieces       []PiecePlacement
}

// ClassicLayout is the standard 8x10 opening position. The leftmost
// column is reserved for red and the rightmost for blue, with one extra
// reserved cell next to each corner on the opposing flank.
func ClassicLayout() Layout {
	l := Layout{Rows: 8, Cols: 10}

	for row := 0; row < l.Rows; row++ {
		l.Restrictions = append(l.Restrictions,
			RestrictedCell{Pos: Position{Row: row, Col: 0}, Restriction: RestrictRed},
			RestrictedCell{Pos: Position{Row: row, Col: 9}, Restriction: RestrictBlue},
		)
	}
	for _, row := range []int{0, 7} {
		l.Restrictions = append(l.Restrictions,
			RestrictedCell{Pos: Position{Row: row, Col: 8}, Restriction: RestrictRed},
			RestrictedCell{Pos: Position{Row: row, Col: 1}, Restriction: RestrictBlue},
		)
	}

	place := func(side Side, kind PieceKind, row, col int, facing Orientation) {
		l.Pieces = append(l.Pieces, PiecePlacement{
			Side: side, Kind: kind, Facing: facing,
			Pos: Position{Row: row, Col: col},
		})
	}

	place(Red, Laser, 0, 0, FacingS)
	place(Red, Queen, 0, 5, FacingN)
	place(Red, Defender, 0, 4, FacingS)
	place(Red, Defender, 0, 6, FacingS)
	place(Red, Deflector, 0, 7, FacingS)
	place(Red, Deflector, 1, 2, FacingW)
	place(Red, Deflector, 3, 0, FacingE)
	place(Red, Deflector, 3, 7, FacingS)
	place(Red, Deflector, 4, 0, FacingS)
	place(Red, Deflector, 4, 7, FacingE)
	place(Red, Deflector, 5, 6, FacingS)
	place(Red, Switch, 3, 4, FacingE)
	place(Red, Switch, 3, 5, FacingS)

	place(Blue, Laser, 7, 9, FacingN)
	place(Blue, Queen, 7, 4, FacingN)
	place(Blue, Defender, 7, 3, FacingN)
	place(Blue, Defender, 7, 5, FacingN)
	place(Blue, Deflector, 7, 2, FacingN)
	place(Blue, Deflector, 6, 7, FacingE)
	place(Blue, Deflector, 4, 2, FacingN)
	place(Blue, Deflector, 4, 9, FacingW)
	place(Blue, Deflector, 3, 2, FacingW)
	place(Blue, Deflector, 3, 9, FacingN)
	place(Blue, Deflector, 2, 3, FacingN)
	place(Blue, Switch, 4, 4, FacingN)
	place(Blue, Switch, 4, 5, FacingW)

	return l
}

// build validates the layout and constructs the board plus its pieces.
// Piece IDs are assigned in placement order starting at 1.
func (l Layout) build() (*Board, map[int]*Piece, error) {
	board, err := NewBoard(l.Rows, l.Cols)
	if err != nil {
		return nil, nil, err
	}
	for _, rc := range l.Restrictions {
		if err := board.setRestriction(rc.Pos, rc.Restriction); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
		}
	}

	pieces := make(map[int]*Piece, len(l.Pieces))
	var lasers, queens [2]int
	nextID := 1
	for _, pp := range l.Pieces {
		pc := &Piece{
			ID:     nextID,
			Side:   pp.Side,
			Kind:   pp.Kind,
			Facing: pp.Facing,
		}
		if err := board.PlacePiece(pc, pp.Pos); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
		}
		pieces[pc.ID] = pc
		nextID++
		switch pp.Kind {
		case Laser:
			lasers[pp.Side.Index()]++
		case Queen:
			queens[pp.Side.Index()]++
		}
	}

	for _, side := range []Side{Red, Blue} {
		if lasers[side.Index()] != 1 {
			return nil, nil, fmt.Errorf("%w: %s has %d lasers, want 1", ErrInvalidLayout, side, lasers[side.Index()])
		}
		if queens[side.Index()] != 1 {
			return nil, nil, fmt.Errorf("%w: %s has %d queens, want 1", ErrInvalidLayout, side, queens[side.Index()])
		}
	}
	return board, pieces, nil
}
