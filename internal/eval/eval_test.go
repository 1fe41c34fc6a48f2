package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jatayl/checkers/internal/board"
)

func TestMaterialBalancedAtStart(t *testing.T) {
	m := NewMaterial()
	assert.Equal(t, int32(0), m.Evaluate(board.Initial()))
}

func TestMaterialFavorsExtraKing(t *testing.T) {
	m := NewMaterial()
	p, err := board.ParseFEN("B:W:BK1")
	if err != nil {
		t.Fatalf("fen: %v", err)
	}
	assert.Equal(t, int32(KingWeight), m.Evaluate(p))
}
