// Package eval scores checkers positions for the search package. It is
// deliberately small: an Evaluator interface plus one material
// implementation, mirroring how the teacher engine keeps Evaluate(pos) int
// as a narrow seam so a more sophisticated scorer (PST, or eventually a
// learned network) can be dropped in without touching search.
package eval

import "github.com/jatayl/checkers/internal/board"

// Evaluator scores a position from Black's perspective: positive favors
// Black, negative favors White, zero is balanced. Search negates the
// result for White to move.
type Evaluator interface {
	Evaluate(p board.Position) int32
}

// KingWeight is the default multiplier applied to a king relative to a
// man. Configurable via internal/config; 2 is a conservative value that
// avoids the engine overvaluing kings enough to neglect back-rank
// defense.
const KingWeight = 2

// Material counts men and kings for both sides.
type Material struct {
	KingWeight int32
}

// NewMaterial returns a Material evaluator using the default king weight.
func NewMaterial() Material { return Material{KingWeight: KingWeight} }

func (m Material) Evaluate(p board.Position) int32 {
	w := m.KingWeight
	if w == 0 {
		w = KingWeight
	}
	blackMen := (p.Black &^ p.Kings).PopCount()
	blackKings := (p.Black & p.Kings).PopCount()
	whiteMen := (p.White &^ p.Kings).PopCount()
	whiteKings := (p.White & p.Kings).PopCount()
	return int32(blackMen) + w*int32(blackKings) - int32(whiteMen) - w*int32(whiteKings)
}
