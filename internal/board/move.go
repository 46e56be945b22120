package board

import "fmt"

// Move encodes a chess move in 16 bits:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// bits 12-14: promotion piece type + 1 (0 = no promotion)
//
// Two moves are equal exactly when from, to and promotion are equal.
type Move uint16

// NoMove represents an absent move. It is a1a1, which is never legal.
const NoMove Move = 0

// NewMove creates a non-promoting move.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotion creates a pawn move that promotes to promo.
func NewPromotion(from, to Square, promo PieceType) Move {
	return NewMove(from, to) | Move(promo+1)<<12
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Promotion returns the promotion piece type, or NoPieceType.
func (m Move) Promotion() PieceType {
	promo := (m >> 12) & 7
	if promo == 0 {
		return NoPieceType
	}
	return PieceType(promo - 1)
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m>>12 != 0
}

// String returns the coordinate form of the move (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(m.Promotion().Char())
	}
	return s
}

// ParseMove parses the coordinate form <from><to>[n|b|r|q]. Malformed input
// returns NoMove and false; it does not check the move against any position.
func ParseMove(s string) (Move, bool) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, false
	}
	from, ok := ParseSquare(s[0:2])
	if !ok {
		return NoMove, false
	}
	to, ok := ParseSquare(s[2:4])
	if !ok {
		return NoMove, false
	}
	if len(s) == 4 {
		return NewMove(from, to), true
	}

	var promo PieceType
	switch s[4] {
	case 'n':
		promo = Knight
	case 'b':
		promo = Bishop
	case 'r':
		promo = Rook
	case 'q':
		promo = Queen
	default:
		return NoMove, false
	}
	return NewPromotion(from, to, promo), true
}

// MaxMoves is the capacity of a MoveList. Positions reachable from the
// starting position have at most 218 legal moves; boards built by hand with
// Put can exceed it.
const MaxMoves = 256

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [MaxMoves]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list. It panics when the list already holds
// MaxMoves moves.
func (ml *MoveList) Add(m Move) {
	if ml.count == len(ml.moves) {
		panic(fmt.Sprintf("board: move list full (%d moves), cannot add %v", MaxMoves, m))
	}
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Clear empties the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice backed by the list.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// Find returns the move in the list whose string form is s.
func (ml *MoveList) Find(s string) (Move, bool) {
	want, ok := ParseMove(s)
	if !ok {
		return NoMove, false
	}
	if ml.Contains(want) {
		return want, true
	}
	return NoMove, false
}
