package crosscheck

import (
	"fmt"

	"github.com/notnil/chess"
)

type notnil struct {
	stack []*chess.Position
}

// NewNotnil returns a Reference backed by github.com/notnil/chess.
func NewNotnil() Reference {
	return &notnil{stack: []*chess.Position{chess.StartingPosition()}}
}

func (n *notnil) Name() string { return "notnil/chess" }

func (n *notnil) top() *chess.Position { return n.stack[len(n.stack)-1] }

func (n *notnil) LegalMoves() []string {
	pos := n.top()
	moves := pos.ValidMoves()
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, chess.UCINotation{}.Encode(pos, m))
	}
	return out
}

func (n *notnil) find(move string) (*chess.Move, error) {
	pos := n.top()
	for _, m := range pos.ValidMoves() {
		if (chess.UCINotation{}).Encode(pos, m) == move {
			return m, nil
		}
	}
	return nil, fmt.Errorf("move %s not legal", move)
}

func (n *notnil) Push(move string) error {
	m, err := n.find(move)
	if err != nil {
		return err
	}
	n.stack = append(n.stack, n.top().Update(m))
	return nil
}

// SAN implements Notation.
func (n *notnil) SAN(move string) (string, error) {
	m, err := n.find(move)
	if err != nil {
		return "", err
	}
	return chess.AlgebraicNotation{}.Encode(n.top(), m), nil
}

func (n *notnil) Pop() {
	n.stack = n.stack[:len(n.stack)-1]
}
