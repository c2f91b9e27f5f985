// path: internal/game/state.go
package game

import "fmt"

// PieceState is a serializable representation of a Piece.
type PieceState struct {
	ID         int         `json:"id"`
	Side       Side        `json:"side"`
	SideName   string      `json:"sideName"`
	Kind       PieceKind   `json:"kind"`
	KindName   string      `json:"kindName"`
	Facing     Orientation `json:"facing"`
	FacingName string      `json:"facingName"`
	Pos        Position    `json:"pos"`
}

// RestrictionState is a serializable per-cell color restriction.
type RestrictionState struct {
	Pos         Position    `json:"pos"`
	Restriction Restriction `json:"restriction"`
	SideName    string      `json:"sideName"`
}

// BoardState is a serializable snapshot of the full game state. It
// round-trips every field of the model: RestoreEngine rebuilds an
// equivalent engine from it.
type BoardState struct {
	Rows       int                `json:"rows"`
	Cols       int                `json:"cols"`
	Restricted []RestrictionState `json:"restricted"`
	Pieces     []PieceState       `json:"pieces"`
	Turn       Side               `json:"turn"`
	TurnName   string             `json:"turnName"`
	TurnCount  int                `json:"turnCount"`
	Status     string             `json:"status"`
	GameOver   bool               `json:"gameOver"`
	HasWinner  bool               `json:"hasWinner"`
	Winner     Side               `json:"winner"`
	WinnerName string             `json:"winnerName"`
	LastNote   string             `json:"lastNote"`
}

// State returns a serializable snapshot of the current game.
func (e *Engine) State() BoardState {
	s := BoardState{
		Rows:      e.board.Rows(),
		Cols:      e.board.Cols(),
		Turn:      e.turn,
		TurnName:  e.turn.String(),
		TurnCount: e.turnCount,
		Status:    e.status.String(),
		GameOver:  e.status == Won,
		LastNote:  e.lastNote,
	}
	if e.status == Won {
		s.HasWinner = true
		s.Winner = e.winner
		s.WinnerName = e.winner.String()
	}

	e.board.eachCell(func(p Position, c Cell) {
		if c.Restriction != RestrictNone {
			s.Restricted = append(s.Restricted, RestrictionState{
				Pos:         p,
				Restriction: c.Restriction,
				SideName:    c.Restriction.String(),
			})
		}
		if c.Piece != nil {
			pc := c.Piece
			s.Pieces = append(s.Pieces, PieceState{
				ID:         pc.ID,
				Side:       pc.Side,
				SideName:   pc.Side.String(),
				Kind:       pc.Kind,
				KindName:   pc.Kind.String(),
				Facing:     pc.Facing,
				FacingName: pc.Facing.String(),
				Pos:        p,
			})
		}
	})
	return s
}

// RestoreEngine rebuilds an engine from a snapshot, preserving piece
// IDs, the active side, the turn counter and a decided result. The
// snapshot is validated like any layout; undo history does not survive
// a round trip.
func RestoreEngine(s BoardState) (*Engine, error) {
	board, err := NewBoard(s.Rows, s.Cols)
	if err != nil {
		return nil, err
	}
	layout := Layout{Rows: s.Rows, Cols: s.Cols}
	for _, rc := range s.Restricted {
		layout.Restrictions = append(layout.Restrictions, RestrictedCell{Pos: rc.Pos, Restriction: rc.Restriction})
		if err := board.setRestriction(rc.Pos, rc.Restriction); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
		}
	}

	pieces := make(map[int]*Piece, len(s.Pieces))
	var lasers, queens [2]int
	nextID := 1
	for _, ps := range s.Pieces {
		if _, dup := pieces[ps.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate piece id %d", ErrInvalidLayout, ps.ID)
		}
		pc := &Piece{ID: ps.ID, Side: ps.Side, Kind: ps.Kind, Facing: ps.Facing}
		if err := board.PlacePiece(pc, ps.Pos); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
		}
		pieces[pc.ID] = pc
		if pc.ID >= nextID {
			nextID = pc.ID + 1
		}
		switch ps.Kind {
		case Laser:
			lasers[ps.Side.Index()]++
		case Queen:
			queens[ps.Side.Index()]++
		}
		layout.Pieces = append(layout.Pieces, PiecePlacement{Side: ps.Side, Kind: ps.Kind, Facing: ps.Facing, Pos: ps.Pos})
	}

	for _, side := range []Side{Red, Blue} {
		if lasers[side.Index()] != 1 {
			return nil, fmt.Errorf("%w: %s has %d lasers, want 1", ErrInvalidLayout, side, lasers[side.Index()])
		}
		// A won game has exactly one queen missing.
		wantQueens := 1
		if s.GameOver && s.HasWinner && side == s.Winner.Opposite() {
			wantQueens = 0
		}
		if queens[side.Index()] != wantQueens {
			return nil, fmt.Errorf("%w: %s has %d queens, want %d", ErrInvalidLayout, side, queens[side.Index()], wantQueens)
		}
	}

	e := &Engine{
		layout:      layout,
		board:       board,
		pieces:      pieces,
		turn:        s.Turn,
		turnCount:   s.TurnCount,
		nextPieceID: nextID,
		lastNote:    s.LastNote,
	}
	if s.GameOver {
		e.status = Won
		e.winner = s.Winner
	}
	return e, nil
}
