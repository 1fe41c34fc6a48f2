package search

import (
	"runtime"
	"sync"
	"time"

	"github.com/jatayl/checkers/internal/board"
	"github.com/jatayl/checkers/internal/eval"
	"github.com/jatayl/checkers/internal/ttable"
)

// Engine is a Lazy-SMP-style parallel root search: a pool of Searchers
// sharing one transposition table, grounded on the teacher's
// internal/engine/engine.go SearchWithLimits / internal/engine/worker.go
// worker pool. Each worker searches the whole root move list to
// completed depths; the deepest completed result wins.
type Engine struct {
	Table   *ttable.Table
	Workers int
	evalFn  eval.Evaluator
}

// NewEngine builds an Engine with workers sized to GOMAXPROCS (at least
// 1) sharing a fresh transposition table of the given size.
func NewEngine(e eval.Evaluator, maxEntries int64) (*Engine, error) {
	table, err := ttable.New(maxEntries)
	if err != nil {
		return nil, err
	}
	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	return &Engine{Table: table, Workers: workers, evalFn: e}, nil
}

// Close releases the shared transposition table.
func (en *Engine) Close() { en.Table.Close() }

type rootResult struct {
	depth int
	move  board.Move
	score int32
}

// BestMove runs Engine.Workers searchers concurrently against the shared
// table under a Time budget and returns the move from whichever worker
// completed the greatest depth, ties broken by score. It returns
// ErrNoLegalMoves if the position has none, or a *SearchCancelled if
// every worker was stopped before any of them completed depth 1.
func (en *Engine) BestMove(pos board.Position, limit Limit) (board.Move, error) {
	if len(board.Generate(pos)) == 0 {
		return 0, ErrNoLegalMoves
	}
	if limit.Time <= 0 || en.Workers == 1 {
		s := New(en.evalFn, en.Table)
		return s.BestMove(pos, limit)
	}

	results := make(chan rootResult, en.Workers)
	var wg sync.WaitGroup
	deadline := time.Now().Add(limit.Time)
	for i := 0; i < en.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := New(en.evalFn, en.Table)
			move, score, err := s.run(pos, Time(time.Until(deadline)))
			if err != nil {
				return
			}
			results <- rootResult{depth: maxCompletedDepth(s), move: move, score: score}
		}()
	}
	go func() { wg.Wait(); close(results) }()

	var best rootResult
	first := true
	for r := range results {
		if first || r.depth > best.depth || (r.depth == best.depth && r.score > best.score) {
			best, first = r, false
		}
	}
	if first {
		return 0, &SearchCancelled{Limit: limit}
	}
	return best.move, nil
}

// maxCompletedDepth reports how deep s's last run() reached. Each worker
// tracks its own progress via Searcher.lastDepth rather than a shared
// counter, so the only contention between workers is on the table itself.
func maxCompletedDepth(s *Searcher) int { return s.lastDepth }
