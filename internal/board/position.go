package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the rights in KQkq form, or "-" when none are left.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side still holds the right to castle in
// the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr&WhiteKingSideCastle != 0
		}
		return cr&WhiteQueenSideCastle != 0
	}
	if kingSide {
		return cr&BlackKingSideCastle != 0
	}
	return cr&BlackQueenSideCastle != 0
}

// Position is a complete chess position.
//
// Occupied and AllOccupied are derived from Pieces and are recomputed after
// every mutation; code that writes Pieces directly must call UpdateOccupied.
type Position struct {
	// Piece bitboards: [Color][PieceType]
	Pieces [2][6]Bitboard

	Occupied    [2]Bitboard // All pieces of each color
	AllOccupied Bitboard    // All pieces on the board

	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // Square passed over by the last double push, NoSquare if none
}

// NewEmptyPosition returns a position with no pieces, white to move and no
// castling rights.
func NewEmptyPosition() *Position {
	return &Position{EnPassant: NoSquare}
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	p := NewEmptyPosition()

	p.Pieces[White][Pawn] = Rank2
	p.Pieces[Black][Pawn] = Rank7
	p.Pieces[White][Knight] = SquareBB(B1) | SquareBB(G1)
	p.Pieces[Black][Knight] = SquareBB(B8) | SquareBB(G8)
	p.Pieces[White][Bishop] = SquareBB(C1) | SquareBB(F1)
	p.Pieces[Black][Bishop] = SquareBB(C8) | SquareBB(F8)
	p.Pieces[White][Rook] = SquareBB(A1) | SquareBB(H1)
	p.Pieces[Black][Rook] = SquareBB(A8) | SquareBB(H8)
	p.Pieces[White][Queen] = SquareBB(D1)
	p.Pieces[Black][Queen] = SquareBB(D8)
	p.Pieces[White][King] = SquareBB(E1)
	p.Pieces[Black][King] = SquareBB(E8)

	p.CastlingRights = AllCastling
	p.UpdateOccupied()
	return p
}

// Copy creates a deep copy of the position.
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// UpdateOccupied recalculates occupancy bitboards from piece bitboards.
func (p *Position) UpdateOccupied() {
	p.Occupied[White] = Empty
	p.Occupied[Black] = Empty

	for pt := Pawn; pt <= King; pt++ {
		p.Occupied[White] |= p.Pieces[White][pt]
		p.Occupied[Black] |= p.Pieces[Black][pt]
	}

	p.AllOccupied = p.Occupied[White] | p.Occupied[Black]
}

// pieceTypeOn returns the type of c's piece on the square in bb, or NoPieceType.
func (p *Position) pieceTypeOn(c Color, bb Bitboard) PieceType {
	for pt := Pawn; pt <= King; pt++ {
		if p.Pieces[c][pt]&bb != 0 {
			return pt
		}
	}
	return NoPieceType
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	for _, c := range [2]Color{White, Black} {
		if pt := p.pieceTypeOn(c, bb); pt != NoPieceType {
			return NewPiece(pt, c)
		}
	}
	return NoPiece
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.AllOccupied&SquareBB(sq) == 0
}

// Put places piece on sq, replacing whatever stood there.
func (p *Position) Put(piece Piece, sq Square) {
	p.Remove(sq)
	if piece == NoPiece {
		return
	}
	p.Pieces[piece.Color()][piece.Type()] |= SquareBB(sq)
	p.UpdateOccupied()
}

// Remove clears sq and returns the piece that was there.
func (p *Position) Remove(sq Square) Piece {
	piece := p.PieceAt(sq)
	if piece == NoPiece {
		return NoPiece
	}
	p.Pieces[piece.Color()][piece.Type()] &^= SquareBB(sq)
	p.UpdateOccupied()
	return piece
}

// KingSquare returns the square of c's king, or NoSquare if there is none.
func (p *Position) KingSquare(c Color) Square {
	return p.Pieces[c][King].LSB()
}

// Validate checks the structural invariants of the position.
func (p *Position) Validate() error {
	if p.Pieces[White][King].PopCount() != 1 {
		return fmt.Errorf("white must have exactly one king")
	}
	if p.Pieces[Black][King].PopCount() != 1 {
		return fmt.Errorf("black must have exactly one king")
	}
	if (p.Pieces[White][Pawn]|p.Pieces[Black][Pawn])&(Rank1|Rank8) != 0 {
		return fmt.Errorf("pawns cannot be on rank 1 or 8")
	}

	var seen, union Bitboard
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			if seen&p.Pieces[c][pt] != 0 {
				return fmt.Errorf("%v %v overlaps another piece", c, pt)
			}
			seen |= p.Pieces[c][pt]
		}
		union |= p.Occupied[c]
	}
	if seen != p.AllOccupied || union != p.AllOccupied {
		return fmt.Errorf("occupancy out of date: pieces %016x, occupied %016x", uint64(seen), uint64(p.AllOccupied))
	}
	if p.InCheck(p.SideToMove.Other()) {
		return fmt.Errorf("%v to move but %v is in check", p.SideToMove, p.SideToMove.Other())
	}
	return nil
}

// String returns a diagram of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sb.WriteString(p.PieceAt(NewSquare(file, rank)).String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.CastlingRights)
	fmt.Fprintf(&sb, "En passant: %s\n", p.EnPassant)
	fmt.Fprintf(&sb, "Key: %016x\n", p.Hash())
	return sb.String()
}

// Material returns the material balance from white's point of view.
func (p *Position) Material() int {
	score := 0
	for pt := Pawn; pt < King; pt++ {
		score += p.Pieces[White][pt].PopCount() * PieceValue[pt]
		score -= p.Pieces[Black][pt].PopCount() * PieceValue[pt]
	}
	return score
}
