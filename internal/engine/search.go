package engine

import (
	"context"

	"github.com/hailam/chesscore/internal/board"
)

// Search constants
const (
	Infinity  = 1_000_000
	MateScore = 100_000
	DrawScore = 0
	MaxDepth  = 64
)

// Searcher runs a fixed-depth negamax search with alpha-beta pruning.
// A Searcher is not safe for concurrent use.
type Searcher struct {
	eval  Evaluator
	nodes uint64
}

// NewSearcher creates a searcher that scores leaves with eval.
// A nil eval selects Evaluate.
func NewSearcher(eval Evaluator) *Searcher {
	if eval == nil {
		eval = Evaluate
	}
	return &Searcher{eval: eval}
}

// Nodes returns the number of nodes visited by the last search.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// Search returns the best move for the side to move and its score, searching
// depth plies. It returns board.NoMove when there is no legal move. pos is
// restored before Search returns.
func (s *Searcher) Search(pos *board.Position, depth int) (board.Move, int) {
	move, score, _ := s.SearchContext(context.Background(), pos, depth)
	return move, score
}

// SearchContext is Search with cancellation. ctx is checked between root
// moves only; when it is done the best move found so far is returned together
// with ctx.Err().
func (s *Searcher) SearchContext(ctx context.Context, pos *board.Position, depth int) (board.Move, int, error) {
	s.nodes = 0
	depth = clampDepth(depth)

	moves := pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		s.nodes++
		return board.NoMove, s.terminalScore(pos, depth), nil
	}

	bestMove := board.NoMove
	bestScore := -Infinity
	alpha := -Infinity

	for _, m := range moves.Slice() {
		if err := ctx.Err(); err != nil {
			return bestMove, bestScore, err
		}

		undo := pos.MakeMove(m)
		score := -s.negamax(pos, depth-1, -Infinity, -alpha)
		pos.UnmakeMove(m, undo)

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}
	}

	return bestMove, bestScore, nil
}

func (s *Searcher) negamax(pos *board.Position, depth, alpha, beta int) int {
	s.nodes++
	if depth == 0 {
		return s.eval(pos)
	}

	moves := pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		return s.terminalScore(pos, depth)
	}

	best := -Infinity
	for _, m := range moves.Slice() {
		undo := pos.MakeMove(m)
		score := -s.negamax(pos, depth-1, -beta, -alpha)
		pos.UnmakeMove(m, undo)

		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// terminalScore scores a position without legal moves. A mate found with more
// depth remaining is closer to the root and scores further from zero.
func (s *Searcher) terminalScore(pos *board.Position, depth int) int {
	if pos.InCheck(pos.SideToMove) {
		return -(MateScore + depth)
	}
	return DrawScore
}

func clampDepth(depth int) int {
	if depth < 1 {
		return 1
	}
	if depth > MaxDepth {
		return MaxDepth
	}
	return depth
}

// IsMateScore returns true if score reports a forced mate.
func IsMateScore(score int) bool {
	return score > MateScore || score < -MateScore
}

// MateIn converts a mate score from a search of the given depth into moves
// until mate: positive when the side to move mates, negative when it is mated.
// ok is false for scores that are not mate scores.
func MateIn(score, depth int) (moves int, ok bool) {
	if !IsMateScore(score) {
		return 0, false
	}
	depth = clampDepth(depth)
	if score > 0 {
		ply := depth - (score - MateScore)
		return (ply + 1) / 2, true
	}
	ply := depth - (-score - MateScore)
	return -ply / 2, true
}
