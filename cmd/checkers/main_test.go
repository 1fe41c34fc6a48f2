package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jatayl/checkers/internal/board"
	"github.com/jatayl/checkers/internal/game"
)

func newTestRepl(t *testing.T) *repl {
	t.Helper()
	return &repl{game: game.New(0)}
}

func TestTakeAppliesALegalMove(t *testing.T) {
	r := newTestRepl(t)
	legal := board.Generate(r.game.Pos)
	require.NotEmpty(t, legal)
	before := r.game.Pos
	err := r.take(legal[0].String())
	require.NoError(t, err)
	assert.NotEqual(t, before, r.game.Pos)
}

// A syntactically well-formed move that is not in the legal move list
// must surface as a *board.InvalidMoveError, not a generic error.
func TestTakeRejectsIllegalMoveWithInvalidMoveError(t *testing.T) {
	r := newTestRepl(t)
	// In the initial position square 5 is occupied by one of Black's own
	// men, so the forward slide 1-5 is well-formed notation but illegal.
	m := board.NewSimpleMove(board.Square(0), board.Square(4))
	err := r.take(m.String())
	require.Error(t, err)
	var invalid *board.InvalidMoveError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, m, invalid.Move)
}

func TestTakeRejectsMalformedNotation(t *testing.T) {
	r := newTestRepl(t)
	err := r.take("not-a-move")
	require.Error(t, err)
	var parseErr *board.ParseError
	assert.True(t, errors.As(err, &parseErr))
}
