package board

// Position is the complete, immutable snapshot needed to decide legality
// of the next move: three 32-bit occupancy masks plus the side to move.
// Deliberately a small value type (13 bytes of semantic state) so that
// Apply can return a fresh Position by value instead of the
// mutate-in-place-plus-undo-stack style chess engines use when a position
// is large enough that copying it is the expensive operation.
type Position struct {
	Black Bitboard
	White Bitboard
	Kings Bitboard
	Turn  Color
}

// Occupied returns the union of both sides' pieces.
func (p Position) Occupied() Bitboard { return p.Black | p.White }

// Empty returns the complement of Occupied over the 32 playable squares.
func (p Position) Empty() Bitboard { return ^p.Occupied() }

// PieceAt reports the color and kind of the piece on s, if any.
func (p Position) PieceAt(s Square) (c Color, k Kind, ok bool) {
	switch {
	case p.Black.Has(s):
		c = Black
	case p.White.Has(s):
		c = White
	default:
		return 0, 0, false
	}
	if p.Kings.Has(s) {
		k = King
	}
	return c, k, true
}

func (p Position) mask(c Color) Bitboard {
	if c == Black {
		return p.Black
	}
	return p.White
}

func (p Position) withMask(c Color, b Bitboard) Position {
	if c == Black {
		p.Black = b
	} else {
		p.White = b
	}
	return p
}

// Initial returns the standard starting layout: Black occupies squares
// 1..12 (display), White occupies 21..32, Black to move.
func Initial() Position {
	var black, white Bitboard
	for i := 0; i < 12; i++ {
		black = black.Set(Square(i))
		white = white.Set(Square(20 + i))
	}
	return Position{Black: black, White: white, Turn: Black}
}

// Apply returns the successor position after playing m, which the caller
// guarantees is a member of Generate(p). The receiver is never mutated.
func (p Position) Apply(m Move) Position {
	mover := p.Turn
	src, dst := m.Source(), m.Dest()
	_, kind, ok := p.PieceAt(src)
	if !ok {
		panic("board: Apply: no piece on source square")
	}

	moverMask := p.mask(mover).Clear(src).Set(dst)
	p = p.withMask(mover, moverMask)

	wasKing := kind == King
	if wasKing {
		p.Kings = p.Kings.Clear(src).Set(dst)
	}

	if m.IsCapture() {
		opp := mover.Opponent()
		oppMask := p.mask(opp)
		for _, cap := range m.CapturedSquares() {
			oppMask = oppMask.Clear(cap)
			p.Kings = p.Kings.Clear(cap)
		}
		p = p.withMask(opp, oppMask)
	}

	if !wasKing {
		row, _ := dst.rowCol()
		if backRank(mover, row) {
			p.Kings = p.Kings.Set(dst)
		}
	}

	p.Turn = mover.Opponent()
	return p
}

// StateKind classifies the outcome of a position, independent of the
// no-progress draw rule (tracked by the game package, not here).
type StateKind uint8

const (
	InProgress StateKind = iota
	Win
)

// Result is the derived game outcome of a Position.
type Result struct {
	Kind   StateKind
	Winner Color // valid when Kind == Win
}

func (r Result) String() string {
	if r.Kind == InProgress {
		return "InProgress"
	}
	return "Win(" + r.Winner.String() + ")"
}

// GameState reports whether the side to move has already lost (no legal
// moves). It does not know about the no-progress draw rule; see
// internal/game for that.
func GameState(p Position) Result {
	if len(Generate(p)) == 0 {
		return Result{Kind: Win, Winner: p.Turn.Opponent()}
	}
	return Result{Kind: InProgress}
}

// String renders the position as ASCII: lowercase b/w are men, uppercase
// B/W are kings, '.' is an empty dark square, spaces are light squares —
// the §6.2 print format.
func (p Position) String() string {
	buf := make([]byte, 0, 8*9)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			s, ok := squareAt(row, col)
			if !ok {
				buf = append(buf, ' ')
				continue
			}
			c, k, has := p.PieceAt(s)
			if !has {
				buf = append(buf, '.')
				continue
			}
			ch := byte('b')
			if c == White {
				ch = 'w'
			}
			if k == King {
				ch -= 'a' - 'A'
			}
			buf = append(buf, ch)
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
