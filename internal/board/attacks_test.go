package board

import "testing"

func TestLeaperAttacks(t *testing.T) {
	tests := []struct {
		name string
		bb   Bitboard
		want int
	}{
		{"knight e4", KnightAttacks(E4), 8},
		{"knight a1", KnightAttacks(A1), 2},
		{"knight h8", KnightAttacks(H8), 2},
		{"knight b1", KnightAttacks(B1), 3},
		{"king e4", KingAttacks(E4), 8},
		{"king a1", KingAttacks(A1), 3},
		{"king h5", KingAttacks(H5), 5},
		{"white pawn e4", PawnAttacks(E4, White), 2},
		{"black pawn e5", PawnAttacks(E5, Black), 2},
		{"white pawn a2", PawnAttacks(A2, White), 1},
		{"black pawn h7", PawnAttacks(H7, Black), 1},
		{"white pawn h8", PawnAttacks(H8, White), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bb.PopCount(); got != tt.want {
				t.Errorf("popcount = %d, want %d\n%s", got, tt.want, tt.bb)
			}
		})
	}

	if PawnAttacks(A2, White) != SquareBB(B3) {
		t.Errorf("white pawn on a2 wraps:\n%s", PawnAttacks(A2, White))
	}
	if PawnAttacks(H7, Black) != SquareBB(G6) {
		t.Errorf("black pawn on h7 wraps:\n%s", PawnAttacks(H7, Black))
	}
}

func TestSlidingAttacks(t *testing.T) {
	t.Run("rook blocked", func(t *testing.T) {
		attacks := RookAttacks(D4, SquareBB(D6))
		if !attacks.IsSet(D5) || !attacks.IsSet(D6) || attacks.IsSet(D7) {
			t.Errorf("rook d4 with blocker d6:\n%s", attacks)
		}
		if attacks.PopCount() != 12 {
			t.Errorf("rook d4 popcount = %d, want 12", attacks.PopCount())
		}
	})

	t.Run("bishop empty board", func(t *testing.T) {
		if got := BishopAttacks(D4, Empty).PopCount(); got != 13 {
			t.Errorf("bishop d4 popcount = %d, want 13", got)
		}
	})

	t.Run("bishop blocked north-east", func(t *testing.T) {
		attacks := BishopAttacks(D4, SquareBB(F6))
		if !attacks.IsSet(E5) || !attacks.IsSet(F6) || attacks.IsSet(G7) {
			t.Errorf("bishop d4 with blocker f6:\n%s", attacks)
		}
	})

	t.Run("bishop blocked adjacent", func(t *testing.T) {
		attacks := BishopAttacks(D4, SquareBB(C5))
		if !attacks.IsSet(C5) || attacks.IsSet(B6) {
			t.Errorf("bishop d4 with blocker c5:\n%s", attacks)
		}
	})

	t.Run("queen mixed blockers", func(t *testing.T) {
		attacks := QueenAttacks(D4, SquareBB(D6)|SquareBB(F6))
		for _, sq := range []Square{D5, D6, E5, F6} {
			if !attacks.IsSet(sq) {
				t.Errorf("queen d4 should reach %v", sq)
			}
		}
		for _, sq := range []Square{D7, G7} {
			if attacks.IsSet(sq) {
				t.Errorf("queen d4 should not reach %v", sq)
			}
		}
	})

	t.Run("queen corner", func(t *testing.T) {
		attacks := QueenAttacks(A1, Empty)
		if attacks.PopCount() != 21 {
			t.Errorf("queen a1 popcount = %d, want 21", attacks.PopCount())
		}
		if !attacks.IsSet(A8) || !attacks.IsSet(H1) || !attacks.IsSet(H8) || attacks.IsSet(H2) {
			t.Errorf("queen a1:\n%s", attacks)
		}
	})

	t.Run("no wrap from h-file", func(t *testing.T) {
		attacks := RookAttacks(H4, Empty) | BishopAttacks(H4, Empty)
		if attacks&FileA != 0 {
			t.Errorf("slider on h4 wrapped to the a-file:\n%s", attacks)
		}
	})

	t.Run("no wrap from a-file", func(t *testing.T) {
		attacks := RookAttacks(A5, Empty) | BishopAttacks(A5, Empty)
		if attacks&FileH != 0 {
			t.Errorf("slider on a5 wrapped to the h-file:\n%s", attacks)
		}
	})
}

func TestInCheck(t *testing.T) {
	tests := []struct {
		name   string
		pieces []string
		want   bool
	}{
		{"knight check", []string{"Ke4", "nf6"}, true},
		{"bishop blocked by pawn", []string{"Ke4", "ba8", "Pc6"}, false},
		{"bishop open diagonal", []string{"Ke4", "ba8"}, true},
		{"rook on file", []string{"Ke4", "re8"}, true},
		{"pawn check", []string{"Ke4", "pd5"}, true},
		{"pawn behind", []string{"Ke4", "pd3"}, false},
		{"queen far", []string{"Ke4", "qh7"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewEmptyPosition()
			for _, pl := range tt.pieces {
				sq, _ := ParseSquare(pl[1:])
				piece := NoPiece
				for i := Piece(0); i < NoPiece; i++ {
					if i.String()[0] == pl[0] {
						piece = i
					}
				}
				p.Put(piece, sq)
			}
			if got := p.InCheck(White); got != tt.want {
				t.Errorf("InCheck(White) = %v, want %v\n%s", got, tt.want, p)
			}
		})
	}
}

func TestInCheckWithoutKingPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("InCheck on a board without a white king did not panic")
		}
	}()
	NewEmptyPosition().InCheck(White)
}

func TestAttackersByColor(t *testing.T) {
	p := setup(t, White, NoCastling, NoSquare, "Ke1", "ke8", "Nc3", "Bb2", "Rd1", "Pe4")
	got := p.AttackersByColor(D5, White)
	want := SquareBB(C3) | SquareBB(E4) | SquareBB(D1)
	if got != want {
		t.Errorf("attackers of d5:\n%s\nwant:\n%s", got, want)
	}
}
