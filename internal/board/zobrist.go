package board

// Zobrist keys, generated from a fixed seed so a position hashes the same in
// every run. Stored perft records are keyed on this value.
var (
	zobristPiece      [2][6][64]uint64 // [Color][PieceType][Square]
	zobristEnPassant  [8]uint64        // One per file
	zobristCastling   [16]uint64       // One per castling rights mask
	zobristSideToMove uint64           // XOR when black to move
)

func init() {
	initZobrist()
}

// xorshift64* generator for the key tables.
type prng struct {
	state uint64
}

func (r *prng) next() uint64 {
	r.state ^= r.state >> 12
	r.state ^= r.state << 25
	r.state ^= r.state >> 27
	return r.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := &prng{state: 0x98F107A2BEEF1234}

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}
	for file := range zobristEnPassant {
		zobristEnPassant[file] = rng.next()
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// Hash returns the Zobrist key of the position, computed from scratch.
// Two positions with equal placement, side to move, castling rights and
// en-passant square have equal keys.
func (p *Position) Hash() uint64 {
	var h uint64
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := p.Pieces[c][pt]
			for bb != 0 {
				h ^= zobristPiece[c][pt][bb.PopLSB()]
			}
		}
	}
	if p.EnPassant != NoSquare {
		h ^= zobristEnPassant[p.EnPassant.File()]
	}
	h ^= zobristCastling[p.CastlingRights&AllCastling]
	if p.SideToMove == Black {
		h ^= zobristSideToMove
	}
	return h
}
