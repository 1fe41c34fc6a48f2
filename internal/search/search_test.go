package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jatayl/checkers/internal/board"
	"github.com/jatayl/checkers/internal/eval"
	"github.com/jatayl/checkers/internal/ttable"
)

func newSearcher(t *testing.T) *Searcher {
	t.Helper()
	table, err := ttable.New(1024)
	require.NoError(t, err)
	t.Cleanup(table.Close)
	return New(eval.NewMaterial(), table)
}

func TestBestMoveIsLegal(t *testing.T) {
	s := newSearcher(t)
	pos := board.Initial()
	move, err := s.BestMove(pos, Depth(3))
	require.NoError(t, err)
	legal := board.Generate(pos)
	found := false
	for _, m := range legal {
		if m == move {
			found = true
		}
	}
	assert.True(t, found, "search returned a move not in the legal move list")
}

func TestNoLegalMovesReturnsErrNoLegalMoves(t *testing.T) {
	s := newSearcher(t)
	pos := board.Position{White: board.Bitboard(0).Set(0), Turn: board.Black}
	_, err := s.BestMove(pos, Depth(4))
	assert.ErrorIs(t, err, ErrNoLegalMoves)
}

func TestFixedDepthIsDeterministic(t *testing.T) {
	pos := board.Initial()
	s1 := newSearcher(t)
	m1, score1, err := s1.run(pos, Depth(3))
	require.NoError(t, err)
	s2 := newSearcher(t)
	m2, score2, err := s2.run(pos, Depth(3))
	require.NoError(t, err)
	assert.Equal(t, m1, m2)
	assert.Equal(t, score1, score2)
}

// Alpha-beta (with its own Searcher's fresh table) must agree with plain
// minimax at the same depth and evaluator (property 8).
func TestAlphaBetaMatchesPlainMinimax(t *testing.T) {
	e := eval.NewMaterial()
	positions := []board.Position{
		board.Initial(),
	}
	if mid, err := board.ParseFEN("B:W17,18,21,22,23:B9,10,14,K30"); err == nil {
		positions = append(positions, mid)
	}
	for _, pos := range positions {
		for depth := 1; depth <= 3; depth++ {
			s := newSearcher(t)
			_, abScore, err := s.run(pos, Depth(depth))
			require.NoError(t, err)
			wantScore := plainMinimax(pos, depth, e)
			assert.Equal(t, wantScore, abScore, "pos=%v depth=%d", pos, depth)
		}
	}
}

func TestTimeLimitedSearchReturnsAMove(t *testing.T) {
	s := newSearcher(t)
	move, err := s.BestMove(board.Initial(), Time(200*time.Millisecond))
	require.NoError(t, err)
	assert.NotZero(t, move)
}

func TestEngineParallelSearchReturnsLegalMove(t *testing.T) {
	en, err := NewEngine(eval.NewMaterial(), 1024)
	require.NoError(t, err)
	defer en.Close()
	pos := board.Initial()
	move, err := en.BestMove(pos, Time(200*time.Millisecond))
	require.NoError(t, err)
	legal := board.Generate(pos)
	found := false
	for _, m := range legal {
		if m == move {
			found = true
		}
	}
	assert.True(t, found)
}

// A deadline that has effectively already passed before depth 1 can
// complete must surface as SearchCancelled (§7), not silently substitute
// some untimed fallback move.
func TestAlreadyExpiredDeadlineIsCancelled(t *testing.T) {
	s := newSearcher(t)
	_, err := s.BestMove(board.Initial(), Time(1*time.Nanosecond))
	var cancelled *SearchCancelled
	require.ErrorAs(t, err, &cancelled)
}

// plainMinimax is an unoptimized, un-memoized reference implementation
// used only to check alpha-beta's correctness.
func plainMinimax(pos board.Position, depth int, e eval.Evaluator) int32 {
	sign := int32(1)
	if pos.Turn == board.White {
		sign = -1
	}
	if depth == 0 {
		return sign * e.Evaluate(pos)
	}
	moves := board.Generate(pos)
	if len(moves) == 0 {
		return -MateScore
	}
	best := -MateScore - 1
	for _, m := range moves {
		score := -plainMinimax(pos.Apply(m), depth-1, e)
		if score > best {
			best = score
		}
	}
	return best
}
