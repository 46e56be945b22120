package board

// Leaper attack tables. They are filled by init before any other code in the
// program can run and are read-only afterwards.
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard // [Color][Square]
)

func init() {
	initKnightAttacks()
	initKingAttacks()
	initPawnAttacks()
}

func initKnightAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)
		attacks := Empty

		attacks |= (bb << 17) & NotFileA  // NNE
		attacks |= (bb << 15) & NotFileH  // NNW
		attacks |= (bb >> 17) & NotFileH  // SSW
		attacks |= (bb >> 15) & NotFileA  // SSE
		attacks |= (bb << 10) & NotFileAB // ENE
		attacks |= (bb << 6) & NotFileGH  // WNW
		attacks |= (bb >> 10) & NotFileGH // WSW
		attacks |= (bb >> 6) & NotFileAB  // ESE

		knightAttacks[sq] = attacks
	}
}

func initKingAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)
		attacks := bb.North() | bb.South()
		attacks |= bb.East() | bb.West()
		attacks |= bb.NorthEast() | bb.NorthWest()
		attacks |= bb.SouthEast() | bb.SouthWest()
		kingAttacks[sq] = attacks
	}
}

func initPawnAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)
		pawnAttacks[White][sq] = bb.NorthEast() | bb.NorthWest()
		pawnAttacks[Black][sq] = bb.SouthEast() | bb.SouthWest()
	}
}

// ray is one sliding direction. A step is never taken from a square in edge,
// which is how rays avoid wrapping from the h-file to the a-file and back.
type ray struct {
	delta int
	edge  Bitboard
}

var (
	rookRays = [4]ray{
		{8, Empty},  // north
		{-8, Empty}, // south
		{1, FileH},  // east
		{-1, FileA}, // west
	}
	bishopRays = [4]ray{
		{9, FileH},  // north-east
		{7, FileA},  // north-west
		{-7, FileH}, // south-east
		{-9, FileA}, // south-west
	}
)

// slide walks one ray from sq. The first occupied square is included and ends
// the ray.
func slide(sq Square, occupied Bitboard, r ray) Bitboard {
	var attacks Bitboard
	s := int(sq)
	for {
		if r.edge.IsSet(Square(s)) {
			break
		}
		s += r.delta
		if s < 0 || s > 63 {
			break
		}
		bb := SquareBB(Square(s))
		attacks |= bb
		if occupied&bb != 0 {
			break
		}
	}
	return attacks
}

// KnightAttacks returns the knight attack bitboard for a square.
func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the king attack bitboard for a square.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// PawnAttacks returns the squares a pawn of color c on sq attacks.
func PawnAttacks(sq Square, c Color) Bitboard {
	return pawnAttacks[c][sq]
}

// BishopAttacks returns the bishop attack bitboard for a square with given occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return slide(sq, occupied, bishopRays[0]) |
		slide(sq, occupied, bishopRays[1]) |
		slide(sq, occupied, bishopRays[2]) |
		slide(sq, occupied, bishopRays[3])
}

// RookAttacks returns the rook attack bitboard for a square with given occupancy.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return slide(sq, occupied, rookRays[0]) |
		slide(sq, occupied, rookRays[1]) |
		slide(sq, occupied, rookRays[2]) |
		slide(sq, occupied, rookRays[3])
}

// QueenAttacks returns the queen attack bitboard for a square with given occupancy.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

// IsSquareAttacked returns true if any piece of color by attacks sq.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	them := &p.Pieces[by]
	if pawnAttacks[by.Other()][sq]&them[Pawn] != 0 {
		return true
	}
	if knightAttacks[sq]&them[Knight] != 0 {
		return true
	}
	if kingAttacks[sq]&them[King] != 0 {
		return true
	}
	if BishopAttacks(sq, p.AllOccupied)&(them[Bishop]|them[Queen]) != 0 {
		return true
	}
	return RookAttacks(sq, p.AllOccupied)&(them[Rook]|them[Queen]) != 0
}

// AttackersByColor returns the pieces of color c attacking sq.
func (p *Position) AttackersByColor(sq Square, c Color) Bitboard {
	them := &p.Pieces[c]
	return (pawnAttacks[c.Other()][sq] & them[Pawn]) |
		(knightAttacks[sq] & them[Knight]) |
		(kingAttacks[sq] & them[King]) |
		(BishopAttacks(sq, p.AllOccupied) & (them[Bishop] | them[Queen])) |
		(RookAttacks(sq, p.AllOccupied) & (them[Rook] | them[Queen]))
}

// InCheck returns true if the king of color c is attacked.
// Every reachable position has exactly one king per side; a missing king is a bug.
func (p *Position) InCheck(c Color) bool {
	kingBB := p.Pieces[c][King]
	if kingBB == 0 {
		panic("board: InCheck: no " + c.String() + " king on the board")
	}
	return p.IsSquareAttacked(kingBB.LSB(), c.Other())
}
