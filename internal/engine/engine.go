package engine

import (
	"context"
	"strconv"
	"time"

	"github.com/hailam/chesscore/internal/board"
)

// DefaultDepth is the search depth used when no depth is requested.
const DefaultDepth = 4

// SearchInfo contains information about a finished search.
type SearchInfo struct {
	Depth int
	Score int
	Nodes uint64
	Time  time.Duration
	PV    []board.Move
}

// SearchLimits specifies constraints on the search.
type SearchLimits struct {
	Depth    int           // Search depth (0 = engine default)
	MoveTime time.Duration // Stop between root moves after this long (0 = no limit)
}

// SearchResult is the outcome of Engine.SearchWithLimits.
type SearchResult struct {
	Move        board.Move // board.NoMove if the side to move has no legal move
	Score       int
	Depth       int
	Nodes       uint64
	Time        time.Duration
	Interrupted bool // the search was cut short by cancellation or MoveTime
}

// Engine wraps a Searcher with default settings and reporting.
type Engine struct {
	searcher     *Searcher
	eval         Evaluator
	defaultDepth int

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine that evaluates leaves with eval.
// A nil eval selects Evaluate.
func NewEngine(eval Evaluator) *Engine {
	if eval == nil {
		eval = Evaluate
	}
	return &Engine{
		searcher:     NewSearcher(eval),
		eval:         eval,
		defaultDepth: DefaultDepth,
	}
}

// SetDefaultDepth sets the depth used when SearchLimits.Depth is zero. It
// must not be called while SearchWithLimits runs with a zero depth.
func (e *Engine) SetDefaultDepth(depth int) {
	e.defaultDepth = clampDepth(depth)
}

// DefaultDepth returns the depth used when SearchLimits.Depth is zero.
func (e *Engine) DefaultDepth() int {
	return e.defaultDepth
}

// Search finds the best move for the given position at the default depth.
func (e *Engine) Search(pos *board.Position) board.Move {
	return e.SearchWithLimits(context.Background(), pos, SearchLimits{}).Move
}

// SearchWithLimits searches pos under limits. The search runs on pos itself,
// which is restored on return; callers that share pos must pass a copy.
func (e *Engine) SearchWithLimits(ctx context.Context, pos *board.Position, limits SearchLimits) SearchResult {
	depth := clampDepth(limits.Depth)
	if limits.Depth <= 0 {
		depth = e.defaultDepth
	}
	if limits.MoveTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, limits.MoveTime)
		defer cancel()
	}

	start := time.Now()
	move, score, err := e.searcher.SearchContext(ctx, pos, depth)
	result := SearchResult{
		Move:        move,
		Score:       score,
		Depth:       depth,
		Nodes:       e.searcher.Nodes(),
		Time:        time.Since(start),
		Interrupted: err != nil,
	}

	if e.OnInfo != nil {
		info := SearchInfo{
			Depth: result.Depth,
			Score: result.Score,
			Nodes: result.Nodes,
			Time:  result.Time,
		}
		if move != board.NoMove {
			info.PV = []board.Move{move}
		}
		e.OnInfo(info)
	}

	return result
}

// Evaluate returns the static evaluation of pos from the side to move's view.
func (e *Engine) Evaluate(pos *board.Position) int {
	return e.eval(pos)
}

// ScoreToString converts a score from a search of the given depth to a
// human-readable string.
func ScoreToString(score, depth int) string {
	if n, ok := MateIn(score, depth); ok {
		if n > 0 {
			return "Mate in " + strconv.Itoa(n)
		}
		return "Mated in " + strconv.Itoa(-n)
	}

	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	pawns := score / 100
	centipawns := score % 100
	cp := strconv.Itoa(centipawns)
	if centipawns < 10 {
		cp = "0" + cp
	}
	return sign + strconv.Itoa(pawns) + "." + cp
}
