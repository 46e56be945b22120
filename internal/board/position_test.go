package board

import (
	"strings"
	"testing"
)

func TestNewPosition(t *testing.T) {
	pos := NewPosition()
	if err := pos.Validate(); err != nil {
		t.Fatal(err)
	}
	if pos.AllOccupied.PopCount() != 32 {
		t.Errorf("occupied squares = %d, want 32", pos.AllOccupied.PopCount())
	}
	if pos.Occupied[White] != Rank1|Rank2 || pos.Occupied[Black] != Rank7|Rank8 {
		t.Error("wrong color occupancy")
	}

	tests := []struct {
		sq   Square
		want Piece
	}{
		{A1, WhiteRook}, {B1, WhiteKnight}, {C1, WhiteBishop}, {D1, WhiteQueen},
		{E1, WhiteKing}, {E2, WhitePawn}, {E4, NoPiece}, {D8, BlackQueen},
		{E8, BlackKing}, {H7, BlackPawn}, {G8, BlackKnight},
	}
	for _, tt := range tests {
		if got := pos.PieceAt(tt.sq); got != tt.want {
			t.Errorf("PieceAt(%v) = %v, want %v", tt.sq, got, tt.want)
		}
	}
	if pos.SideToMove != White || pos.CastlingRights != AllCastling || pos.EnPassant != NoSquare {
		t.Errorf("bad state: %v %v %v", pos.SideToMove, pos.CastlingRights, pos.EnPassant)
	}
	if pos.Material() != 0 {
		t.Errorf("material = %d, want 0", pos.Material())
	}
}

func TestEmptyPosition(t *testing.T) {
	pos := NewEmptyPosition()
	if pos.AllOccupied != Empty || pos.CastlingRights != NoCastling || pos.EnPassant != NoSquare {
		t.Errorf("empty position not empty:\n%s", pos.AllOccupied)
	}
	if pos.KingSquare(White) != NoSquare {
		t.Error("KingSquare on empty board")
	}
	if pos.Validate() == nil {
		t.Error("Validate accepted a board without kings")
	}
}

func TestPutRemove(t *testing.T) {
	pos := NewEmptyPosition()
	pos.Put(WhiteQueen, D4)
	pos.Put(BlackKnight, D4)

	if pos.PieceAt(D4) != BlackKnight || pos.Pieces[White][Queen] != 0 {
		t.Errorf("Put did not replace the queen:\n%s", pos)
	}
	if pos.Occupied[Black] != SquareBB(D4) || pos.Occupied[White] != 0 {
		t.Error("occupancy not updated by Put")
	}
	if got := pos.Remove(D4); got != BlackKnight {
		t.Errorf("Remove = %v", got)
	}
	if pos.AllOccupied != 0 {
		t.Error("occupancy not updated by Remove")
	}
	if got := pos.Remove(D4); got != NoPiece {
		t.Errorf("Remove of empty square = %v", got)
	}
}

func TestValidateRejects(t *testing.T) {
	pos := NewPosition()
	pos.Pieces[White][Pawn] |= SquareBB(E8)
	pos.UpdateOccupied()
	if err := pos.Validate(); err == nil {
		t.Error("Validate accepted overlapping pieces")
	}

	pos = NewPosition()
	pos.Pieces[White][Pawn] |= SquareBB(E4)
	if err := pos.Validate(); err == nil || !strings.Contains(err.Error(), "occupancy") {
		t.Errorf("Validate = %v, want stale occupancy error", err)
	}
}

func TestPositionString(t *testing.T) {
	s := NewPosition().String()
	for _, want := range []string{"r n b q k b n r", "P P P P P P P P", "Castling: KQkq", "En passant: -"} {
		if !strings.Contains(s, want) {
			t.Errorf("diagram missing %q:\n%s", want, s)
		}
	}
}

func TestCopyIsIndependent(t *testing.T) {
	pos := NewPosition()
	cp := pos.Copy()
	applyMoves(t, cp, "e2e4")
	if *pos != *NewPosition() {
		t.Error("moving on a copy changed the original")
	}
}

func TestSquareParsing(t *testing.T) {
	for sq := A1; sq <= H8; sq++ {
		got, ok := ParseSquare(sq.String())
		if !ok || got != sq {
			t.Errorf("ParseSquare(%q) = %v, %v", sq.String(), got, ok)
		}
	}
	if NoSquare.String() != "-" {
		t.Errorf("NoSquare.String() = %q", NoSquare.String())
	}
}

func TestCanCastle(t *testing.T) {
	tests := []struct {
		rights   CastlingRights
		color    Color
		kingSide bool
		want     bool
	}{
		{AllCastling, White, true, true},
		{AllCastling, Black, false, true},
		{NoCastling, White, true, false},
		{WhiteQueenSideCastle, White, true, false},
		{WhiteQueenSideCastle, White, false, true},
		{WhiteQueenSideCastle, Black, false, false},
		{BlackKingSideCastle, Black, true, true},
		{BlackKingSideCastle, White, true, false},
	}

	for _, tc := range tests {
		if got := tc.rights.CanCastle(tc.color, tc.kingSide); got != tc.want {
			t.Errorf("%q.CanCastle(%v, kingSide=%v) = %v, want %v", tc.rights, tc.color, tc.kingSide, got, tc.want)
		}
	}
}
