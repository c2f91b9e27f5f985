package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// beamBoard places the given pieces on a fresh board, assigning IDs in
// order starting at 1.
func beamBoard(t *testing.T, rows, cols int, placements []PiecePlacement) *Board {
	t.Helper()
	b, err := NewBoard(rows, cols)
	if err != nil {
		t.Fatalf("new board: %v", err)
	}
	for i, pp := range placements {
		pc := &Piece{ID: i + 1, Side: pp.Side, Kind: pp.Kind, Facing: pp.Facing}
		if err := b.PlacePiece(pc, pp.Pos); err != nil {
			t.Fatalf("place piece %d: %v", i+1, err)
		}
	}
	return b
}

func TestBeamClearLaneExitsAtBoundary(t *testing.T) {
	// A laser facing an obstruction-free lane: the path covers every
	// cell to the edge and the beam exits.
	b := beamBoard(t, 3, 5, []PiecePlacement{
		{Side: Red, Kind: Laser, Facing: FacingE, Pos: Position{Row: 1, Col: 0}},
	})
	res, err := fireBeam(b, Red)
	if err != nil {
		t.Fatalf("fire: %v", err)
	}
	if res.Outcome != BeamExited {
		t.Fatalf("outcome = %s, want exited", res.Outcome)
	}
	if len(res.Path) != 4 {
		t.Fatalf("path length = %d, want 4", len(res.Path))
	}
	for i, step := range res.Path {
		want := Position{Row: 1, Col: i + 1}
		if step.Pos != want || step.Dir != DirE {
			t.Fatalf("step %d = %v, want %v going E", i, step, want)
		}
	}
}

func TestBeamLaserOnEdgeFacingOutExitsImmediately(t *testing.T) {
	b := beamBoard(t, 3, 3, []PiecePlacement{
		{Side: Blue, Kind: Laser, Facing: FacingW, Pos: Position{Row: 2, Col: 0}},
	})
	res, err := fireBeam(b, Blue)
	if err != nil {
		t.Fatalf("fire: %v", err)
	}
	if res.Outcome != BeamExited || len(res.Path) != 0 {
		t.Fatalf("got %s with %d steps, want immediate exit", res.Outcome, len(res.Path))
	}
}

func TestBeamDeflectedIntoQueen(t *testing.T) {
	// Laser at (0,0) firing east, a deflector at (0,2) bending the beam
	// south, queen at (2,2): four cells, queen destroyed.
	b := beamBoard(t, 3, 3, []PiecePlacement{
		{Side: Red, Kind: Laser, Facing: FacingE, Pos: Position{Row: 0, Col: 0}},
		{Side: Blue, Kind: Deflector, Facing: FacingW, Pos: Position{Row: 0, Col: 2}},
		{Side: Blue, Kind: Queen, Pos: Position{Row: 2, Col: 2}},
	})

	res, err := fireBeam(b, Red)
	require.NoError(t, err)
	require.Equal(t, BeamDestroyed, res.Outcome)
	require.Equal(t, 3, res.PieceID, "queen was placed third")

	wantPath := []BeamStep{
		{Pos: Position{Row: 0, Col: 1}, Dir: DirE},
		{Pos: Position{Row: 0, Col: 2}, Dir: DirE},
		{Pos: Position{Row: 1, Col: 2}, Dir: DirS},
		{Pos: Position{Row: 2, Col: 2}, Dir: DirS},
	}
	require.Equal(t, wantPath, res.Path)
}

func TestBeamBouncedByDefenderStopsAtOwnLaser(t *testing.T) {
	// A defender shield facing the beam bounces it straight back down
	// the lane; the emitting laser swallows it with nothing destroyed.
	b := beamBoard(t, 1, 4, []PiecePlacement{
		{Side: Red, Kind: Laser, Facing: FacingE, Pos: Position{Row: 0, Col: 0}},
		{Side: Blue, Kind: Defender, Facing: FacingW, Pos: Position{Row: 0, Col: 3}},
	})
	res, err := fireBeam(b, Red)
	require.NoError(t, err)
	require.Equal(t, BeamBlockedByLaser, res.Outcome)
	require.Equal(t, 1, res.PieceID)

	wantPath := []BeamStep{
		{Pos: Position{Row: 0, Col: 1}, Dir: DirE},
		{Pos: Position{Row: 0, Col: 2}, Dir: DirE},
		{Pos: Position{Row: 0, Col: 3}, Dir: DirE},
		{Pos: Position{Row: 0, Col: 2}, Dir: DirW},
		{Pos: Position{Row: 0, Col: 1}, Dir: DirW},
		{Pos: Position{Row: 0, Col: 0}, Dir: DirW},
	}
	require.Equal(t, wantPath, res.Path)
}

func TestBeamBlockedByOpposingLaser(t *testing.T) {
	b := beamBoard(t, 1, 3, []PiecePlacement{
		{Side: Red, Kind: Laser, Facing: FacingE, Pos: Position{Row: 0, Col: 0}},
		{Side: Blue, Kind: Laser, Facing: FacingW, Pos: Position{Row: 0, Col: 2}},
	})
	res, err := fireBeam(b, Red)
	require.NoError(t, err)
	require.Equal(t, BeamBlockedByLaser, res.Outcome)
	require.Equal(t, 2, res.PieceID)
	require.Len(t, res.Path, 2)
}

func TestBeamThroughSwitchPairExits(t *testing.T) {
	// Two '\' switches route the beam south then east again.
	b := beamBoard(t, 3, 4, []PiecePlacement{
		{Side: Red, Kind: Laser, Facing: FacingE, Pos: Position{Row: 0, Col: 0}},
		{Side: Blue, Kind: Switch, Facing: FacingE, Pos: Position{Row: 0, Col: 2}},
		{Side: Blue, Kind: Switch, Facing: FacingE, Pos: Position{Row: 2, Col: 2}},
	})
	res, err := fireBeam(b, Red)
	require.NoError(t, err)
	require.Equal(t, BeamExited, res.Outcome)

	wantPath := []BeamStep{
		{Pos: Position{Row: 0, Col: 1}, Dir: DirE},
		{Pos: Position{Row: 0, Col: 2}, Dir: DirE},
		{Pos: Position{Row: 1, Col: 2}, Dir: DirS},
		{Pos: Position{Row: 2, Col: 2}, Dir: DirS},
		{Pos: Position{Row: 2, Col: 3}, Dir: DirE},
	}
	require.Equal(t, wantPath, res.Path)
}

func TestBeamMissingLaserIsInternalError(t *testing.T) {
	b := beamBoard(t, 2, 2, nil)
	if _, err := fireBeam(b, Red); !errors.Is(err, ErrSimulationOverrun) {
		t.Fatalf("fire without laser = %v, want ErrSimulationOverrun", err)
	}
}
