// Package crosscheck compares the board package's legal move generator with
// independent chess libraries, position by position.
package crosscheck

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/hailam/chesscore/internal/board"
)

// ErrMismatch is wrapped by every *Mismatch.
var ErrMismatch = errors.New("crosscheck: move generators disagree")

// Reference is an independent move generator that starts from the standard
// starting position and is driven with coordinate move strings.
type Reference interface {
	Name() string
	// LegalMoves returns the legal moves of the current position as
	// coordinate strings such as "e2e4" or "e7e8q".
	LegalMoves() []string
	// Push plays a legal move.
	Push(move string) error
	// Pop takes back the last pushed move.
	Pop()
}

// Notation is implemented by references that can also write a move of the
// current position in Standard Algebraic Notation. Check compares it with
// Position.SAN.
type Notation interface {
	SAN(move string) (string, error)
}

// Mismatch describes the first position where a reference disagreed.
type Mismatch struct {
	Reference string
	Line      []string // moves from the starting position
	Extra     []string // generated by us only
	Missing   []string // generated by the reference only
}

func (m *Mismatch) Error() string {
	line := strings.Join(m.Line, " ")
	if line == "" {
		line = "(start)"
	}
	return fmt.Sprintf("%v: %s after %s: extra %v, missing %v", ErrMismatch, m.Reference, line, m.Extra, m.Missing)
}

func (m *Mismatch) Unwrap() error { return ErrMismatch }

// NotationMismatch describes a move written differently by a reference.
type NotationMismatch struct {
	Reference string
	Line      []string
	Move      string
	Got       string // our SAN
	Want      string // the reference's SAN
}

func (m *NotationMismatch) Error() string {
	return fmt.Sprintf("%v: %s writes %s after %v as %q, we write %q", ErrMismatch, m.Reference, m.Move, m.Line, m.Want, m.Got)
}

func (m *NotationMismatch) Unwrap() error { return ErrMismatch }

// Report summarizes a successful check.
type Report struct {
	Depth      int
	Nodes      uint64 // leaf positions, equal to perft(depth)
	Positions  uint64 // positions whose move lists were compared
	References []string
}

// Check walks every line of play from the starting position to depth and
// compares the legal moves at each interior position with every reference.
// It stops at the first disagreement and returns it as a *Mismatch.
func Check(ctx context.Context, depth int, refs ...Reference) (Report, error) {
	report := Report{Depth: depth}
	for _, r := range refs {
		report.References = append(report.References, r.Name())
	}

	c := checker{ctx: ctx, refs: refs, report: &report}
	err := c.walk(board.NewPosition(), depth)
	return report, err
}

type checker struct {
	ctx    context.Context
	refs   []Reference
	line   []string
	report *Report
}

func (c *checker) walk(pos *board.Position, depth int) error {
	if depth == 0 {
		c.report.Nodes++
		return nil
	}
	if err := c.ctx.Err(); err != nil {
		return err
	}

	moves := pos.GenerateLegalMoves()
	ours := make([]string, 0, moves.Len())
	for _, m := range moves.Slice() {
		ours = append(ours, m.String())
	}
	for _, r := range c.refs {
		extra, missing := difference(ours, r.LegalMoves())
		if len(extra) > 0 || len(missing) > 0 {
			return &Mismatch{
				Reference: r.Name(),
				Line:      slices.Clone(c.line),
				Extra:     extra,
				Missing:   missing,
			}
		}
	}
	if err := c.compareSAN(pos, moves.Slice(), ours); err != nil {
		return err
	}
	c.report.Positions++

	for i, m := range moves.Slice() {
		s := ours[i]
		for j, r := range c.refs {
			if err := r.Push(s); err != nil {
				for _, done := range c.refs[:j] {
					done.Pop()
				}
				return fmt.Errorf("%s: push %s after %v: %w", r.Name(), s, c.line, err)
			}
		}
		undo := pos.MakeMove(m)
		c.line = append(c.line, s)

		err := c.walk(pos, depth-1)

		c.line = c.line[:len(c.line)-1]
		pos.UnmakeMove(m, undo)
		for _, r := range c.refs {
			r.Pop()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) compareSAN(pos *board.Position, moves []board.Move, ours []string) error {
	for _, r := range c.refs {
		n, ok := r.(Notation)
		if !ok {
			continue
		}
		for i, m := range moves {
			want, err := n.SAN(ours[i])
			if err != nil {
				return fmt.Errorf("%s: SAN of %s after %v: %w", r.Name(), ours[i], c.line, err)
			}
			if got := pos.SAN(m); got != want {
				return &NotationMismatch{
					Reference: r.Name(),
					Line:      slices.Clone(c.line),
					Move:      ours[i],
					Got:       got,
					Want:      want,
				}
			}
		}
	}
	return nil
}

// difference returns the sorted strings found more often in a than in b, and
// those found more often in b than in a. A duplicated move counts as extra.
func difference(a, b []string) (onlyA, onlyB []string) {
	count := make(map[string]int, len(a))
	for _, s := range a {
		count[s]++
	}
	for _, s := range b {
		count[s]--
	}
	extra, missing := map[string]bool{}, map[string]bool{}
	for s, n := range count {
		switch {
		case n > 0:
			extra[s] = true
		case n < 0:
			missing[s] = true
		}
	}
	return sortedKeys(extra), sortedKeys(missing)
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := maps.Keys(set)
	slices.Sort(keys)
	return keys
}
