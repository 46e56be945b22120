package board

// Perft counts the leaf nodes of the legal move tree to the given depth.
// Depth 0 counts the position itself, as does any negative depth.
func Perft(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}

	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for _, m := range moves.Slice() {
		undo := p.MakeMove(m)
		nodes += Perft(p, depth-1)
		p.UnmakeMove(m, undo)
	}
	return nodes
}

// PerftDivide returns the perft count below each legal root move. The values
// sum to Perft(p, depth). It returns an empty map for depth < 1.
func PerftDivide(p *Position, depth int) map[Move]uint64 {
	divide := make(map[Move]uint64)
	if depth < 1 {
		return divide
	}
	for _, m := range p.GenerateLegalMoves().Slice() {
		undo := p.MakeMove(m)
		divide[m] = Perft(p, depth-1)
		p.UnmakeMove(m, undo)
	}
	return divide
}
