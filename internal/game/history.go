// path: internal/game/history.go
package game

// turnDelta captures the minimal state needed to undo one applied turn.
// A turn touches at most one moved piece and one destroyed piece, so a
// flat snapshot is enough; the destroyed *Piece keeps the position and
// facing it held when the beam removed it.
type turnDelta struct {
	action     Action
	pieceID    int
	prevPos    Position
	prevFacing Orientation
	destroyed  *Piece
	prevTurn   Side
	prevStatus Status
	prevWinner Side
	prevNote   string
}

// History returns the actions applied so far, oldest first.
func (e *Engine) History() []Action {
	out := make([]Action, len(e.history))
	for i, d := range e.history {
		out[i] = d.action
	}
	return out
}
