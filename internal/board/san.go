package board

import (
	"fmt"
	"strings"
)

// isCapture reports whether m takes a piece, en passant included.
func (p *Position) isCapture(m Move) bool {
	if p.Occupied[p.SideToMove.Other()].IsSet(m.To()) {
		return true
	}
	return m.To() == p.EnPassant && p.Pieces[p.SideToMove][Pawn].IsSet(m.From())
}

// SAN returns m in Standard Algebraic Notation. m must be legal in p.
func (p *Position) SAN(m Move) string {
	if m == NoMove {
		return "-"
	}

	from, to := m.From(), m.To()
	piece := p.PieceAt(from)
	if piece == NoPiece {
		return m.String() // Fallback to coordinates
	}
	pt := piece.Type()

	var sb strings.Builder
	switch {
	case isCastle(pt, from, to):
		if to > from {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	default:
		if pt != Pawn {
			sb.WriteByte("PNBRQK"[pt])
			sb.WriteString(p.disambiguation(m, pt))
		}
		if p.isCapture(m) {
			if pt == Pawn {
				// Pawn captures include the file of origin
				sb.WriteByte('a' + byte(from.File()))
			}
			sb.WriteByte('x')
		}
		sb.WriteString(to.String())
		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte("PNBRQK"[m.Promotion()])
		}
	}

	undo := p.MakeMove(m)
	if p.InCheck(p.SideToMove) {
		if p.HasLegalMoves() {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('#')
		}
	}
	p.UnmakeMove(m, undo)

	return sb.String()
}

// disambiguation returns the origin file, rank or square needed to tell m
// apart from other legal moves of the same piece type to the same square.
func (p *Position) disambiguation(m Move, pt PieceType) string {
	from, to := m.From(), m.To()
	pieces := p.Pieces[p.SideToMove][pt]

	ambiguous, sameFile, sameRank := false, false, false
	for _, other := range p.GenerateLegalMoves().Slice() {
		of := other.From()
		if other.To() != to || of == from || !pieces.IsSet(of) {
			continue
		}
		ambiguous = true
		if of.File() == from.File() {
			sameFile = true
		}
		if of.Rank() == from.Rank() {
			sameRank = true
		}
	}

	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return string(rune('a' + from.File()))
	case !sameRank:
		return string(rune('1' + from.Rank()))
	}
	return from.String()
}

// ParseSAN returns the legal move of p written as s in Standard Algebraic
// Notation. Check and mate markers are optional.
func (p *Position) ParseSAN(s string) (Move, error) {
	orig := s
	s = strings.TrimRight(strings.TrimSpace(s), "+#!?")

	legal := p.GenerateLegalMoves()

	// Castling
	switch s {
	case "O-O", "0-0", "O-O-O", "0-0-0":
		king := p.KingSquare(p.SideToMove)
		to := king + 2
		if len(s) == 5 {
			to = king - 2
		}
		if king != NoSquare && legal.Contains(NewMove(king, to)) {
			return NewMove(king, to), nil
		}
		return NoMove, fmt.Errorf("illegal castling %q", orig)
	}

	promo := NoPieceType
	if idx := strings.IndexByte(s, '='); idx >= 0 {
		if idx+1 >= len(s) {
			return NoMove, fmt.Errorf("bad promotion in %q", orig)
		}
		promo = pieceTypeFromChar(s[idx+1])
		if promo == NoPieceType || promo == Pawn || promo == King {
			return NoMove, fmt.Errorf("bad promotion in %q", orig)
		}
		s = s[:idx]
	}

	capture := strings.Contains(s, "x")
	s = strings.ReplaceAll(s, "x", "")

	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		pt = pieceTypeFromChar(s[0])
		if pt == NoPieceType || pt == Pawn {
			return NoMove, fmt.Errorf("bad piece in %q", orig)
		}
		s = s[1:]
	}

	if len(s) < 2 {
		return NoMove, fmt.Errorf("no destination in %q", orig)
	}
	dest, ok := ParseSquare(s[len(s)-2:])
	if !ok {
		return NoMove, fmt.Errorf("bad destination in %q", orig)
	}

	file, rank := -1, -1
	for _, c := range s[:len(s)-2] {
		switch {
		case c >= 'a' && c <= 'h':
			file = int(c - 'a')
		case c >= '1' && c <= '8':
			rank = int(c - '1')
		default:
			return NoMove, fmt.Errorf("bad disambiguation in %q", orig)
		}
	}

	found := NoMove
	for _, m := range legal.Slice() {
		from := m.From()
		switch {
		case m.To() != dest,
			!p.Pieces[p.SideToMove][pt].IsSet(from),
			file >= 0 && from.File() != file,
			rank >= 0 && from.Rank() != rank,
			capture && !p.isCapture(m),
			m.Promotion() != promo:
			continue
		}
		if found != NoMove {
			return NoMove, fmt.Errorf("ambiguous move %q", orig)
		}
		found = m
	}
	if found == NoMove {
		return NoMove, fmt.Errorf("illegal move %q", orig)
	}
	return found, nil
}

// MovesToSAN writes a line of moves starting from p in SAN. p is unchanged.
func (p *Position) MovesToSAN(moves []Move) []string {
	result := make([]string, len(moves))
	undos := make([]Undo, len(moves))
	for i, m := range moves {
		result[i] = p.SAN(m)
		undos[i] = p.MakeMove(m)
	}
	for i := len(moves) - 1; i >= 0; i-- {
		p.UnmakeMove(moves[i], undos[i])
	}
	return result
}

// pieceTypeFromChar maps an upper-case SAN piece letter to its type.
func pieceTypeFromChar(c byte) PieceType {
	switch c {
	case 'P':
		return Pawn
	case 'N':
		return Knight
	case 'B':
		return Bishop
	case 'R':
		return Rook
	case 'Q':
		return Queen
	case 'K':
		return King
	}
	return NoPieceType
}
