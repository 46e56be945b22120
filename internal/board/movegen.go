package board

// GenerateLegalMoves generates all legal moves for the position.
// The position is used for trial moves and is unchanged on return.
func (p *Position) GenerateLegalMoves() *MoveList {
	var pseudo MoveList
	p.generateAllMoves(&pseudo)

	us := p.SideToMove
	result := NewMoveList()
	for _, m := range pseudo.Slice() {
		undo := p.MakeMove(m)
		if !p.InCheck(us) {
			result.Add(m)
		}
		p.UnmakeMove(m, undo)
	}
	return result
}

// GeneratePseudoLegalMoves generates all pseudo-legal moves (may leave king in check).
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateAllMoves(ml)
	return ml
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func (p *Position) HasLegalMoves() bool {
	return p.GenerateLegalMoves().Len() > 0
}

// IsCheckmate returns true if the side to move is checkmated.
func (p *Position) IsCheckmate() bool {
	return p.InCheck(p.SideToMove) && !p.HasLegalMoves()
}

// IsStalemate returns true if the side to move has no legal moves and is not in check.
func (p *Position) IsStalemate() bool {
	return !p.InCheck(p.SideToMove) && !p.HasLegalMoves()
}

// generateAllMoves generates all pseudo-legal moves.
func (p *Position) generateAllMoves(ml *MoveList) {
	us := p.SideToMove
	occupied := p.AllOccupied
	targets := ^p.Occupied[us]

	p.generatePawnMoves(ml, us, p.Occupied[us.Other()], occupied)

	knights := p.Pieces[us][Knight]
	for knights != 0 {
		from := knights.PopLSB()
		addMoves(ml, from, KnightAttacks(from)&targets)
	}

	bishops := p.Pieces[us][Bishop]
	for bishops != 0 {
		from := bishops.PopLSB()
		addMoves(ml, from, BishopAttacks(from, occupied)&targets)
	}

	rooks := p.Pieces[us][Rook]
	for rooks != 0 {
		from := rooks.PopLSB()
		addMoves(ml, from, RookAttacks(from, occupied)&targets)
	}

	queens := p.Pieces[us][Queen]
	for queens != 0 {
		from := queens.PopLSB()
		addMoves(ml, from, QueenAttacks(from, occupied)&targets)
	}

	kings := p.Pieces[us][King]
	for kings != 0 {
		from := kings.PopLSB()
		addMoves(ml, from, KingAttacks(from)&targets)
	}

	p.generateCastlingMoves(ml, us)
}

func addMoves(ml *MoveList, from Square, targets Bitboard) {
	for targets != 0 {
		ml.Add(NewMove(from, targets.PopLSB()))
	}
}

// generatePawnMoves generates all pawn moves.
func (p *Position) generatePawnMoves(ml *MoveList, us Color, enemies, occupied Bitboard) {
	pawns := p.Pieces[us][Pawn]
	empty := ^occupied

	var push1, push2, attackL, attackR Bitboard
	var promotionRank Bitboard
	var pushDir int

	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		attackL = pawns.NorthWest() & enemies
		attackR = pawns.NorthEast() & enemies
		promotionRank = Rank8
		pushDir = 8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		attackL = pawns.SouthWest() & enemies
		attackR = pawns.SouthEast() & enemies
		promotionRank = Rank1
		pushDir = -8
	}

	// Pushes
	for b := push1; b != 0; {
		to := b.PopLSB()
		addPawnMove(ml, Square(int(to)-pushDir), to, promotionRank)
	}
	for push2 != 0 {
		to := push2.PopLSB()
		ml.Add(NewMove(Square(int(to)-2*pushDir), to))
	}

	// Captures toward the a-file come from one file east, and vice versa.
	for attackL != 0 {
		to := attackL.PopLSB()
		addPawnMove(ml, Square(int(to)-pushDir+1), to, promotionRank)
	}
	for attackR != 0 {
		to := attackR.PopLSB()
		addPawnMove(ml, Square(int(to)-pushDir-1), to, promotionRank)
	}

	// En passant
	if p.EnPassant != NoSquare {
		epBB := SquareBB(p.EnPassant)
		var epAttackers Bitboard
		if us == White {
			epAttackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
		} else {
			epAttackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
		}
		for epAttackers != 0 {
			ml.Add(NewMove(epAttackers.PopLSB(), p.EnPassant))
		}
	}
}

// addPawnMove adds a pawn move, expanded into all four promotions when it
// reaches the last rank.
func addPawnMove(ml *MoveList, from, to Square, promotionRank Bitboard) {
	if !promotionRank.IsSet(to) {
		ml.Add(NewMove(from, to))
		return
	}
	for _, pt := range promotionTypes {
		ml.Add(NewPromotion(from, to, pt))
	}
}

// castle describes one castling option.
type castle struct {
	kingSide bool
	king     Square
	to       Square
	between  Bitboard // must be empty
	transit  Square   // square the king crosses, must not be attacked
}

var castles = [2][2]castle{
	White: {
		{true, E1, G1, SquareBB(F1) | SquareBB(G1), F1},
		{false, E1, C1, SquareBB(B1) | SquareBB(C1) | SquareBB(D1), D1},
	},
	Black: {
		{true, E8, G8, SquareBB(F8) | SquareBB(G8), F8},
		{false, E8, C8, SquareBB(B8) | SquareBB(C8) | SquareBB(D8), D8},
	},
}

// generateCastlingMoves generates castling moves.
func (p *Position) generateCastlingMoves(ml *MoveList, us Color) {
	rights := p.CastlingRights
	if !rights.CanCastle(us, true) && !rights.CanCastle(us, false) {
		return
	}
	them := us.Other()
	if p.InCheck(us) {
		return
	}
	for _, c := range castles[us] {
		if !rights.CanCastle(us, c.kingSide) || p.AllOccupied&c.between != 0 {
			continue
		}
		rookFrom, _ := castlingRook(c.to)
		if !p.Pieces[us][King].IsSet(c.king) || !p.Pieces[us][Rook].IsSet(rookFrom) {
			continue
		}
		if p.IsSquareAttacked(c.transit, them) || p.IsSquareAttacked(c.to, them) {
			continue
		}
		ml.Add(NewMove(c.king, c.to))
	}
}
