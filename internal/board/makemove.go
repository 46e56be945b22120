package board

// Undo holds the state MakeMove cannot recover from the move itself.
// Piece placement is restored by replaying the move backwards.
type Undo struct {
	Captured       Piece // NoPiece if the move captured nothing
	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square
}

// castlingRook returns the rook's origin and destination for a king landing
// on kingTo after castling.
func castlingRook(kingTo Square) (from, to Square) {
	switch kingTo {
	case G1:
		return H1, F1
	case C1:
		return A1, D1
	case G8:
		return H8, F8
	case C8:
		return A8, D8
	}
	panic("board: castlingRook: " + kingTo.String() + " is not a castling destination")
}

// enPassantVictim returns the square of the pawn taken when a pawn of color us
// captures en passant onto to.
func enPassantVictim(to Square, us Color) Square {
	if us == White {
		return to - 8
	}
	return to + 8
}

// cornerRights maps each rook corner to the castling right tied to it.
var cornerRights = [64]CastlingRights{
	A1: WhiteQueenSideCastle,
	H1: WhiteKingSideCastle,
	A8: BlackQueenSideCastle,
	H8: BlackKingSideCastle,
}

func isCastle(pt PieceType, from, to Square) bool {
	return pt == King && abs(from.File()-to.File()) == 2
}

// MakeMove applies m to the position and returns what UnmakeMove needs to take
// it back. m must be pseudo-legal for the side to move; a move whose from
// square holds no piece of that side panics.
func (p *Position) MakeMove(m Move) Undo {
	us := p.SideToMove
	them := us.Other()
	from, to := m.From(), m.To()
	fromBB, toBB := SquareBB(from), SquareBB(to)

	pt := p.pieceTypeOn(us, fromBB)
	if pt == NoPieceType {
		panic("board: MakeMove " + m.String() + ": no " + us.String() + " piece on " + from.String())
	}

	undo := Undo{
		Captured:       NoPiece,
		SideToMove:     us,
		CastlingRights: p.CastlingRights,
		EnPassant:      p.EnPassant,
	}

	p.Pieces[us][pt] ^= fromBB | toBB

	if victim := p.pieceTypeOn(them, toBB); victim != NoPieceType {
		p.Pieces[them][victim] &^= toBB
		undo.Captured = NewPiece(victim, them)
	} else if pt == Pawn && to == p.EnPassant {
		capSq := enPassantVictim(to, us)
		p.Pieces[them][Pawn] &^= SquareBB(capSq)
		undo.Captured = NewPiece(Pawn, them)
	}

	if promo := m.Promotion(); promo != NoPieceType {
		p.Pieces[us][Pawn] &^= toBB
		p.Pieces[us][promo] |= toBB
	}

	p.EnPassant = NoSquare
	if pt == Pawn && abs(int(to)-int(from)) == 16 {
		p.EnPassant = Square((int(from) + int(to)) / 2)
	}

	if isCastle(pt, from, to) {
		rookFrom, rookTo := castlingRook(to)
		p.Pieces[us][Rook] ^= SquareBB(rookFrom) | SquareBB(rookTo)
	}

	if pt == King {
		if us == White {
			p.CastlingRights &^= WhiteKingSideCastle | WhiteQueenSideCastle
		} else {
			p.CastlingRights &^= BlackKingSideCastle | BlackQueenSideCastle
		}
	}
	if pt == Rook {
		p.CastlingRights &^= cornerRights[from]
	}
	if undo.Captured != NoPiece {
		p.CastlingRights &^= cornerRights[to]
	}

	p.UpdateOccupied()
	p.SideToMove = them
	return undo
}

// UnmakeMove takes back m, which must be the last move made, using the Undo
// MakeMove returned for it. The position ends up identical to what it was
// before MakeMove.
func (p *Position) UnmakeMove(m Move, undo Undo) {
	p.SideToMove = undo.SideToMove
	p.CastlingRights = undo.CastlingRights
	p.EnPassant = undo.EnPassant

	us := p.SideToMove
	from, to := m.From(), m.To()
	fromBB, toBB := SquareBB(from), SquareBB(to)

	pt := p.pieceTypeOn(us, toBB)
	switch {
	case isCastle(pt, from, to):
		rookFrom, rookTo := castlingRook(to)
		p.Pieces[us][King] ^= fromBB | toBB
		p.Pieces[us][Rook] ^= SquareBB(rookFrom) | SquareBB(rookTo)
	case m.IsPromotion():
		p.Pieces[us][pt] &^= toBB
		p.Pieces[us][Pawn] |= fromBB
		pt = Pawn
	default:
		p.Pieces[us][pt] ^= fromBB | toBB
	}

	if undo.Captured != NoPiece {
		capSq := to
		if pt == Pawn && undo.Captured.Type() == Pawn && to == undo.EnPassant {
			capSq = enPassantVictim(to, us)
		}
		p.Pieces[undo.Captured.Color()][undo.Captured.Type()] |= SquareBB(capSq)
	}

	p.UpdateOccupied()
}
