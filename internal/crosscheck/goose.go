package crosscheck

import (
	"fmt"

	"github.com/Oliverans/GooseEngineMG/goosemg"
)

type goose struct {
	b      *goosemg.Board
	played []goosemg.Move
	states []goosemg.MoveState
}

// NewGoose returns a Reference backed by the GooseEngine move generator.
func NewGoose() (Reference, error) {
	b, err := goosemg.ParseFEN(goosemg.FENStartPos)
	if err != nil {
		return nil, fmt.Errorf("goosemg: %w", err)
	}
	return &goose{b: b}, nil
}

func (g *goose) Name() string { return "goosemg" }

// legal filters the pseudo-legal list by trial application.
func (g *goose) legal() []goosemg.Move {
	var out []goosemg.Move
	for _, m := range g.b.GenerateMoves() {
		if ok, st := g.b.MakeMove(m); ok {
			g.b.UnmakeMove(m, st)
			out = append(out, m)
		}
	}
	return out
}

func (g *goose) LegalMoves() []string {
	moves := g.legal()
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	return out
}

func (g *goose) Push(move string) error {
	for _, m := range g.legal() {
		if m.String() == move {
			_, st := g.b.MakeMove(m)
			g.played = append(g.played, m)
			g.states = append(g.states, st)
			return nil
		}
	}
	return fmt.Errorf("move %s not legal", move)
}

func (g *goose) Pop() {
	n := len(g.played) - 1
	g.b.UnmakeMove(g.played[n], g.states[n])
	g.played = g.played[:n]
	g.states = g.states[:n]
}
