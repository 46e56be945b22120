package board

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSAN(t *testing.T) {
	tests := []struct {
		name string
		pos  func(t *testing.T) *Position
		move string
		want string
	}{
		{"pawn push", func(t *testing.T) *Position { return NewPosition() }, "e2e4", "e4"},
		{"knight", func(t *testing.T) *Position { return NewPosition() }, "g1f3", "Nf3"},
		{"castle king side", kiwi, "e1g1", "O-O"},
		{"castle queen side", kiwi, "e1c1", "O-O-O"},
		{"pawn capture", kiwi, "d5e6", "dxe6"},
		{"piece capture", kiwi, "e5f7", "Nxf7"},
		{"file disambiguation", func(t *testing.T) *Position {
			return setup(t, White, NoCastling, NoSquare, "Ke1", "ke8", "Nb1", "Nf3")
		}, "b1d2", "Nbd2"},
		{"rank disambiguation", func(t *testing.T) *Position {
			return setup(t, White, NoCastling, NoSquare, "Kh1", "kh8", "Ra1", "Ra5")
		}, "a1a3", "R1a3"},
		{"square disambiguation", func(t *testing.T) *Position {
			return setup(t, White, NoCastling, NoSquare, "Kh1", "kh7", "Qa1", "Qa3", "Qc1")
		}, "a1b2", "Qa1b2"},
		{"promotion with check", func(t *testing.T) *Position {
			return setup(t, White, NoCastling, NoSquare, "Ka1", "kh8", "Pb7")
		}, "b7b8q", "b8=Q+"},
		{"under promotion", func(t *testing.T) *Position {
			return setup(t, White, NoCastling, NoSquare, "Ka1", "kh8", "Pb7")
		}, "b7b8n", "b8=N"},
		{"en passant", func(t *testing.T) *Position {
			p := NewPosition()
			applyMoves(t, p, "e2e4", "a7a6", "e4e5", "d7d5")
			return p
		}, "e5d6", "exd6"},
		{"mate", func(t *testing.T) *Position {
			p := NewPosition()
			applyMoves(t, p, "e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6")
			return p
		}, "h5f7", "Qxf7#"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.pos(t)
			before := *p
			m, ok := p.GenerateLegalMoves().Find(tt.move)
			if !ok {
				t.Fatalf("%s is not legal", tt.move)
			}
			if got := p.SAN(m); got != tt.want {
				t.Errorf("SAN(%s) = %q, want %q", tt.move, got, tt.want)
			}
			if *p != before {
				t.Errorf("SAN modified the position")
			}

			parsed, err := p.ParseSAN(tt.want)
			if err != nil {
				t.Fatalf("ParseSAN(%q): %v", tt.want, err)
			}
			if parsed != m {
				t.Errorf("ParseSAN(%q) = %s, want %s", tt.want, parsed, m)
			}
		})
	}
}

func kiwi(t *testing.T) *Position { return kiwipete(t) }

func TestParseSANErrors(t *testing.T) {
	p := NewPosition()
	for _, s := range []string{"", "e5", "Nf4", "Ke2", "O-O", "e8=Q", "Zf3", "N", "Nz3"} {
		if m, err := p.ParseSAN(s); err == nil {
			t.Errorf("ParseSAN(%q) = %s, want error", s, m)
		}
	}

	amb := setup(t, White, NoCastling, NoSquare, "Ke1", "ke8", "Nb1", "Nf3")
	if _, err := amb.ParseSAN("Nd2"); err == nil {
		t.Error("ParseSAN accepted an ambiguous move")
	}
	if _, err := NewPosition().ParseSAN("Nf3+"); err != nil {
		t.Errorf("check marker should be ignored: %v", err)
	}
}

func TestMovesToSAN(t *testing.T) {
	p := NewPosition()
	before := *p
	var line []Move
	for _, s := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		m, ok := p.GenerateLegalMoves().Find(s)
		if !ok {
			t.Fatalf("%s is not legal", s)
		}
		line = append(line, m)
		p.MakeMove(m)
	}
	p = NewPosition()

	got := p.MovesToSAN(line)
	if diff := cmp.Diff([]string{"f3", "e5", "g4", "Qh4#"}, got); diff != "" {
		t.Errorf("MovesToSAN mismatch (-want +got):\n%s", diff)
	}
	if *p != before {
		t.Error("MovesToSAN modified the position")
	}
}
