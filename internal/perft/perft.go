// Package perft runs perft over a worker pool and compares results with
// published reference counts.
package perft

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/chesscore/internal/board"
)

// Entry is the node count below one root move.
type Entry struct {
	Move  board.Move
	Nodes uint64
}

// Total sums the node counts of entries.
func Total(entries []Entry) uint64 {
	var total uint64
	for _, e := range entries {
		total += e.Nodes
	}
	return total
}

// Divide counts the nodes below each legal root move of pos at depth,
// spreading root moves over up to workers goroutines. Each goroutine works on
// its own copy of pos, so pos is never modified. Entries are sorted by move
// string. A workers value below 1 means one per CPU.
func Divide(ctx context.Context, pos *board.Position, depth, workers int) ([]Entry, error) {
	if depth < 1 {
		return nil, fmt.Errorf("perft: depth %d: must be at least 1", depth)
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	moves := pos.GenerateLegalMoves().Slice()
	entries := make([]Entry, len(moves))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, m := range moves {
		i, m := i, m
		root := pos.Copy()
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			root.MakeMove(m)
			entries[i] = Entry{Move: m, Nodes: board.Perft(root, depth-1)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Move.String() < entries[j].Move.String()
	})
	return entries, nil
}

// Count is the parallel form of board.Perft.
func Count(ctx context.Context, pos *board.Position, depth, workers int) (uint64, error) {
	if depth == 0 {
		return 1, nil
	}
	entries, err := Divide(ctx, pos, depth, workers)
	if err != nil {
		return 0, err
	}
	return Total(entries), nil
}
