// Package search implements the engine's alpha-beta minimax over
// board.Position, grounded on the teacher's internal/engine/search.go
// negamax shape and internal/engine/timeman.go iterative-deepening loop,
// pared down to what the checkers core needs: no quiescence search, no
// NNUE bridge, no null-move pruning — those are chess-specific or
// out-of-scope refinements the spec's search (§4.6) does not call for.
package search

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jatayl/checkers/internal/board"
	"github.com/jatayl/checkers/internal/eval"
	"github.com/jatayl/checkers/internal/ttable"
)

// MateScore is a terminal-score magnitude larger than any material
// evaluation can reach, so mate always dominates comparisons.
const MateScore int32 = 1_000_000

// mateThreshold separates "this is a mate score that needs ply
// adjustment" from an ordinary evaluation.
const mateThreshold = MateScore - 1000

// nodeCheckInterval is how often a timed search samples the stop flag,
// matching the teacher's 1024-node sampling cadence.
const nodeCheckInterval = 1024

// Limit bounds a search: exactly one of Plies or Time should be set.
type Limit struct {
	Plies int
	Time  time.Duration
}

// Depth returns a fixed-ply search limit.
func Depth(d int) Limit { return Limit{Plies: d} }

// Time returns a wall-clock search limit.
func Time(d time.Duration) Limit { return Limit{Time: d} }

// ErrNoLegalMoves reports that the position has no legal moves for the
// side to move — board.GameState already reports this position as a
// loss, so nothing to search for it.
var ErrNoLegalMoves = errors.New("search: position has no legal moves")

// SearchCancelled reports that a time-limited search was stopped before
// completing even depth 1, so there is no committed result to return
// (§7). This can only happen if the deadline was already exhausted, or
// essentially exhausted, at the moment the search started.
type SearchCancelled struct {
	Limit Limit
}

func (e *SearchCancelled) Error() string {
	return fmt.Sprintf("search: cancelled before completing depth 1 under limit %+v", e.Limit)
}

// Searcher runs a single-threaded alpha-beta search against a shared
// transposition table.
type Searcher struct {
	Eval  eval.Evaluator
	Table *ttable.Table

	nodes     int64
	stop      *atomic.Bool
	lastDepth int
}

// New returns a Searcher using the given evaluator and transposition
// table (which may be shared across Searchers, as Engine does).
func New(e eval.Evaluator, t *ttable.Table) *Searcher {
	return &Searcher{Eval: e, Table: t, stop: &atomic.Bool{}}
}

// BestMove returns the search's recommended move. It returns
// ErrNoLegalMoves if the side to move has already lost, or a
// *SearchCancelled if a Time limit expired before depth 1 completed.
func (s *Searcher) BestMove(pos board.Position, limit Limit) (board.Move, error) {
	if len(board.Generate(pos)) == 0 {
		return 0, ErrNoLegalMoves
	}
	move, _, err := s.run(pos, limit)
	return move, err
}

// Evaluate returns the search's score estimate from Black's perspective
// (positive favors Black), matching eval.Evaluator's sign convention.
// Errors are as for BestMove.
func (s *Searcher) Evaluate(pos board.Position, limit Limit) (int32, error) {
	if len(board.Generate(pos)) == 0 {
		return 0, ErrNoLegalMoves
	}
	_, score, err := s.run(pos, limit)
	if err != nil {
		return 0, err
	}
	sign := int32(1)
	if pos.Turn == board.White {
		sign = -1
	}
	return sign * score, nil
}

// run drives iterative deepening (Time mode) or a single fixed-depth
// search (Plies mode) and returns the best move with its score from the
// side-to-move's perspective. A depth that is cut off partway through is
// abandoned entirely (§4.6): run only ever commits a depth whose whole
// root move loop finished before the deadline, never a partial one, even
// if that partial pass scored one or more moves.
func (s *Searcher) run(pos board.Position, limit Limit) (board.Move, int32, error) {
	s.stop.Store(false)
	var deadline time.Time
	timed := limit.Time > 0
	if timed {
		deadline = time.Now().Add(limit.Time)
	}
	maxDepth := limit.Plies
	if maxDepth <= 0 {
		maxDepth = 64
	}

	var bestMove board.Move
	var bestScore int32
	haveResult := false

	for d := 1; d <= maxDepth; d++ {
		if timed && time.Now().After(deadline) {
			break
		}
		move, score, completed := s.searchRoot(pos, d, deadline, timed)
		if !completed {
			break
		}
		bestMove, bestScore, haveResult = move, score, true
		s.lastDepth = d
	}
	if !haveResult {
		return 0, 0, &SearchCancelled{Limit: limit}
	}
	return bestMove, bestScore, nil
}

// searchRoot performs one full-depth alpha-beta pass from pos. completed
// is false if the deadline was reached before every root move was
// scored, in which case the partial best/bestScore must not be used —
// the caller keeps whatever depth it last fully completed instead.
func (s *Searcher) searchRoot(pos board.Position, depth int, deadline time.Time, timed bool) (board.Move, int32, bool) {
	moves := s.ordered(pos, board.Generate(pos))
	if len(moves) == 0 {
		return 0, 0, false
	}
	var best board.Move
	bestScore := -MateScore - 1
	alpha, beta := -MateScore-1, MateScore+1
	for _, m := range moves {
		if timed && s.shouldStop(deadline) {
			return 0, 0, false
		}
		child := pos.Apply(m)
		score := -s.negamax(child, depth-1, -beta, -alpha, 1, deadline, timed)
		if s.stop.Load() {
			return 0, 0, false
		}
		if score > bestScore {
			bestScore, best = score, m
		}
		if score > alpha {
			alpha = score
		}
	}
	s.Table.Store(ttable.Key(pos), ttable.Entry{Depth: depth, Score: adjustToTT(bestScore, 0), Bound: ttable.Exact, Best: best})
	return best, bestScore, true
}

func (s *Searcher) shouldStop(deadline time.Time) bool {
	s.nodes++
	if s.nodes%nodeCheckInterval != 0 {
		return false
	}
	return time.Now().After(deadline)
}

// negamax returns the score of pos at the given depth from pos.Turn's
// perspective.
func (s *Searcher) negamax(pos board.Position, depth int, alpha, beta int32, ply int, deadline time.Time, timed bool) int32 {
	if timed && s.shouldStop(deadline) {
		s.stop.Store(true)
	}
	if s.stop.Load() {
		return 0
	}

	key := ttable.Key(pos)
	if _, _, usable, score := s.Table.Probe(key, depth, alpha, beta); usable {
		return adjustFromTT(score, ply)
	}

	// Game state must be checked before falling back to the evaluator at
	// the horizon: a position can be both "depth exhausted" and "the side
	// to move has already lost" (a blocked piece is a common checkers
	// endgame shape), and the mate score must win that case, not Evaluate.
	moves := board.Generate(pos)
	if len(moves) == 0 {
		return -MateScore + int32(ply)
	}
	if depth == 0 {
		return s.evalLeaf(pos)
	}

	origAlpha := alpha
	var best board.Move
	bestScore := -MateScore - 1
	for _, m := range s.ordered(pos, moves) {
		child := pos.Apply(m)
		score := -s.negamax(child, depth-1, -beta, -alpha, ply+1, deadline, timed)
		if s.stop.Load() {
			return 0
		}
		if score > bestScore {
			bestScore, best = score, m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}

	bound := ttable.Exact
	switch {
	case bestScore <= origAlpha:
		bound = ttable.Upper
	case bestScore >= beta:
		bound = ttable.Lower
	}
	s.Table.Store(key, ttable.Entry{Depth: depth, Score: adjustToTT(bestScore, ply), Bound: bound, Best: best})
	return bestScore
}

func (s *Searcher) evalLeaf(pos board.Position) int32 {
	sign := int32(1)
	if pos.Turn == board.White {
		sign = -1
	}
	return sign * s.Eval.Evaluate(pos)
}

// ordered puts the transposition table's recorded best move (if any)
// first; no other ordering heuristic is required for correctness (§4.6).
func (s *Searcher) ordered(pos board.Position, moves []board.Move) []board.Move {
	entry, found, _, _ := s.Table.Probe(ttable.Key(pos), 0, -MateScore-1, MateScore+1)
	if !found || entry.Best == 0 {
		return moves
	}
	for i, m := range moves {
		if m == entry.Best {
			moves[0], moves[i] = moves[i], moves[0]
			break
		}
	}
	return moves
}

// adjustToTT/adjustFromTT translate mate scores between "plies from the
// current node" and "plies from the TT entry's own root", the standard
// transposition-table mate-score idiom (grounded on the teacher's
// AdjustScoreFromTT/AdjustScoreToTT in internal/engine/transposition.go).
func adjustToTT(score int32, ply int) int32 {
	p := int32(ply)
	switch {
	case score >= mateThreshold:
		return score + p
	case score <= -mateThreshold:
		return score - p
	default:
		return score
	}
}

func adjustFromTT(score int32, ply int) int32 {
	p := int32(ply)
	switch {
	case score >= mateThreshold:
		return score - p
	case score <= -mateThreshold:
		return score + p
	default:
		return score
	}
}
