package board

import "testing"

// setup builds a position from piece placements such as "Ke1" or "pd7":
// an uppercase letter is a white piece, a lowercase letter a black one.
func setup(t testing.TB, side Color, rights CastlingRights, ep Square, placements ...string) *Position {
	t.Helper()
	p := NewEmptyPosition()
	for _, pl := range placements {
		if len(pl) != 3 {
			t.Fatalf("bad placement %q", pl)
		}
		var piece Piece = NoPiece
		for i := Piece(0); i < NoPiece; i++ {
			if i.String()[0] == pl[0] {
				piece = i
			}
		}
		sq, ok := ParseSquare(pl[1:])
		if piece == NoPiece || !ok {
			t.Fatalf("bad placement %q", pl)
		}
		p.Put(piece, sq)
	}
	p.SideToMove = side
	p.CastlingRights = rights
	p.EnPassant = ep
	if err := p.Validate(); err != nil {
		t.Fatalf("invalid test position: %v\n%s", err, p)
	}
	return p
}

// kiwipete is the well-known perft position exercising castling, en passant
// and promotions: r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -
func kiwipete(t testing.TB) *Position {
	return setup(t, White, AllCastling, NoSquare,
		"ra8", "ke8", "rh8",
		"pa7", "pc7", "pd7", "qe7", "pf7", "bg7",
		"ba6", "nb6", "pe6", "nf6", "pg6",
		"Pd5", "Ne5",
		"pb4", "Pe4",
		"Nc3", "Qf3", "ph3",
		"Pa2", "Pb2", "Pc2", "Bd2", "Be2", "Pf2", "Pg2", "Ph2",
		"Ra1", "Ke1", "Rh1",
	)
}

// endgame is 8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -
func endgame(t testing.TB) *Position {
	return setup(t, White, NoCastling, NoSquare,
		"pc7", "pd6", "Ka5", "Pb5", "rh5", "Rb4", "pf4", "kh4", "Pe2", "Pg2",
	)
}

// applyMoves plays coordinate moves, failing the test on any that is not legal.
func applyMoves(t testing.TB, p *Position, moves ...string) {
	t.Helper()
	for _, s := range moves {
		m, ok := p.GenerateLegalMoves().Find(s)
		if !ok {
			t.Fatalf("move %s is not legal in\n%s", s, p)
		}
		p.MakeMove(m)
	}
}

func moveStrings(ml *MoveList) map[string]bool {
	set := make(map[string]bool, ml.Len())
	for _, m := range ml.Slice() {
		set[m.String()] = true
	}
	return set
}
