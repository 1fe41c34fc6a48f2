package board

// manDirections returns the diagonals a Man of color c may move or
// capture along: forward only.
func manDirections(c Color) [2]Direction {
	if c == Black {
		return [2]Direction{DownLeft, DownRight}
	}
	return [2]Direction{UpLeft, UpRight}
}

// Generate returns every legal move for p.Turn, honoring the mandatory
// capture rule: if any capture is available, only captures are returned
// (§4.3). Order is deterministic (increasing source square, then
// enumeration order of directions) but otherwise unspecified.
func Generate(p Position) []Move {
	mover := p.mask(p.Turn)
	opp := p.mask(p.Turn.Opponent())
	empty := p.Empty()

	var captures []Move
	mover.ForEach(func(src Square) {
		_, kind, _ := p.PieceAt(src)
		captures = append(captures, captureSequencesFrom(p, src, p.Turn, kind, opp, empty)...)
	})
	if len(captures) > 0 {
		return captures
	}

	var slides []Move
	mover.ForEach(func(src Square) {
		_, kind, _ := p.PieceAt(src)
		for _, d := range allowedDirections(p.Turn, kind) {
			if n, ok := Step(src, d); ok && empty.Has(n) {
				slides = append(slides, NewSimpleMove(src, n))
			}
		}
	})
	return slides
}

func allowedDirections(c Color, k Kind) []Direction {
	if k == King {
		return directions[:]
	}
	d := manDirections(c)
	return d[:]
}

// captureSequencesFrom enumerates every maximal capture chain starting at
// src, via the recursive DFS described in §4.3: a chain is only emitted
// once no further jump is available from its landing square (mandatory
// continuation), or immediately upon promotion of a Man mid-chain.
func captureSequencesFrom(p Position, src Square, mover Color, kind Kind, opp, empty Bitboard) []Move {
	var out []Move
	var walk func(cur Square, kind Kind, captured Bitboard, path []Direction)
	walk = func(cur Square, kind Kind, captured Bitboard, path []Direction) {
		if len(path) >= maxJumps {
			out = append(out, NewCaptureMove(src, append([]Direction(nil), path...)))
			return
		}
		extended := false
		for _, d := range allowedDirections(mover, kind) {
			victim, ok := Step(cur, d)
			if !ok || !opp.Has(victim) || captured.Has(victim) {
				continue
			}
			landing, ok := Step(victim, d)
			if !ok {
				continue
			}
			if !empty.Has(landing) && landing != src {
				// landing must be empty; the only square that can look
				// "occupied" mid-chain but is actually free is src itself,
				// which captureSequencesFrom has already vacated logically.
				continue
			}
			nextCaptured := captured.Set(victim)
			nextKind := kind
			row, _ := landing.rowCol()
			promoted := kind == Man && backRank(mover, row)
			if promoted {
				nextKind = King
			}
			nextPath := append(append([]Direction(nil), path...), d)
			if promoted {
				out = append(out, NewCaptureMove(src, nextPath))
				extended = true
				continue
			}
			extended = true
			walk(landing, nextKind, nextCaptured, nextPath)
		}
		if !extended && len(path) > 0 {
			out = append(out, NewCaptureMove(src, append([]Direction(nil), path...)))
		}
	}
	walk(src, kind, 0, nil)
	return out
}
