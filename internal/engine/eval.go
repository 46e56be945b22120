package engine

import "github.com/hailam/chesscore/internal/board"

// Evaluator scores a position from the point of view of the side to move:
// positive values favor the mover. It must not modify the position.
type Evaluator func(pos *board.Position) int

// Evaluate is the default Evaluator: the material balance in centipawns,
// using board.PieceValue.
func Evaluate(pos *board.Position) int {
	score := pos.Material()
	if pos.SideToMove == board.Black {
		return -score
	}
	return score
}
