package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jatayl/checkers/internal/board"
)

func TestDrawAfterNoProgress(t *testing.T) {
	g := New(2)
	pos, err := board.ParseFEN("W:WK1:BK32")
	require.NoError(t, err)
	g.Pos = pos

	moves := board.Generate(g.Pos)
	require.NotEmpty(t, moves)
	g.Apply(moves[0])
	assert.Equal(t, InProgress, g.GameStateWithDrawRule().State)

	moves = board.Generate(g.Pos)
	require.NotEmpty(t, moves)
	g.Apply(moves[0])
	assert.Equal(t, Draw, g.GameStateWithDrawRule().State)
}

func TestCaptureResetsClock(t *testing.T) {
	g := New(1)
	src := board.Square(13)
	victim, _ := board.Step(src, board.DownRight)
	pos := board.Position{
		Black: board.Bitboard(0).Set(src),
		White: board.Bitboard(0).Set(victim),
		Turn:  board.Black,
	}
	g.Pos = pos
	g.HalfmoveClock = 1
	moves := board.Generate(pos)
	require.Len(t, moves, 1)
	g.Apply(moves[0])
	assert.Equal(t, 0, g.HalfmoveClock)
}

func TestResetRestoresInitial(t *testing.T) {
	g := New(0)
	assert.Equal(t, DefaultDrawPlyLimit, g.DrawPlyLimit)
	g.HalfmoveClock = 5
	g.Reset()
	assert.Equal(t, board.Initial(), g.Pos)
	assert.Equal(t, 0, g.HalfmoveClock)
}
