package crosscheck

import (
	"fmt"

	"github.com/dylhunn/dragontoothmg"
)

type dragontooth struct {
	b     dragontoothmg.Board
	undos []func()
}

// NewDragontooth returns a Reference backed by github.com/dylhunn/dragontoothmg.
func NewDragontooth() Reference {
	return &dragontooth{b: dragontoothmg.ParseFen(dragontoothmg.Startpos)}
}

func (d *dragontooth) Name() string { return "dragontoothmg" }

func (d *dragontooth) LegalMoves() []string {
	moves := d.b.GenerateLegalMoves()
	out := make([]string, 0, len(moves))
	for i := range moves {
		out = append(out, moves[i].String())
	}
	return out
}

func (d *dragontooth) Push(move string) error {
	moves := d.b.GenerateLegalMoves()
	for i := range moves {
		if moves[i].String() == move {
			d.undos = append(d.undos, d.b.Apply(moves[i]))
			return nil
		}
	}
	return fmt.Errorf("move %s not legal", move)
}

func (d *dragontooth) Pop() {
	n := len(d.undos) - 1
	d.undos[n]()
	d.undos = d.undos[:n]
}
