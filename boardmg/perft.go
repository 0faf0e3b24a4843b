package boardmg

// Perft counts the leaf nodes of the pseudo-legal move tree to the given
// depth. Only the move kinds the generator produces are explored, so from
// the initial position this is a pawn-only tree.
func Perft(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := p.MoveList()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		s := p.Snapshot()
		p.ApplyMove(m)
		nodes += Perft(p, depth-1)
		p.Restore(s)
	}
	return nodes
}

// PerftDivide returns, for each root move, the number of leaf nodes below it
// at the given depth. Useful for debugging.
func PerftDivide(p *Position, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range p.MoveList() {
		s := p.Snapshot()
		p.ApplyMove(m)
		result[m] = Perft(p, depth-1)
		p.Restore(s)
	}
	return result
}
