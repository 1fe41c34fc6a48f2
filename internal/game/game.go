// Package game wraps a board.Position with the no-progress counter needed
// for draw detection, kept outside board.Position itself so that type
// stays the spec's plain 13-byte value object (see SPEC_FULL.md §9's
// resolution of the draw-rule Open Question).
package game

import "github.com/jatayl/checkers/internal/board"

// DefaultDrawPlyLimit is 40 full moves (80 plies) without a capture or a
// Man advance, the spec's own suggested default.
const DefaultDrawPlyLimit = 80

// Game pairs a Position with the halfmove-since-progress counter.
type Game struct {
	Pos          board.Position
	HalfmoveClock int
	DrawPlyLimit int
}

// New starts a Game at the standard initial position.
func New(drawPlyLimit int) *Game {
	if drawPlyLimit <= 0 {
		drawPlyLimit = DefaultDrawPlyLimit
	}
	return &Game{Pos: board.Initial(), DrawPlyLimit: drawPlyLimit}
}

// FromPosition starts a Game at an arbitrary position with a fresh clock.
func FromPosition(p board.Position, drawPlyLimit int) *Game {
	g := New(drawPlyLimit)
	g.Pos = p
	return g
}

// Reset restores the initial position and clears the draw clock.
func (g *Game) Reset() {
	g.Pos = board.Initial()
	g.HalfmoveClock = 0
}

// Apply plays m, updating the draw clock: a capture or a Man's advance
// resets progress, anything else (a King's quiet slide) increments it.
func (g *Game) Apply(m board.Move) {
	_, kind, _ := g.Pos.PieceAt(m.Source())
	progressed := m.IsCapture() || kind == board.Man
	g.Pos = g.Pos.Apply(m)
	if progressed {
		g.HalfmoveClock = 0
	} else {
		g.HalfmoveClock++
	}
}

// State is the draw-aware game outcome.
type State uint8

const (
	InProgress State = iota
	Win
	Draw
)

// Result reports the current outcome: InProgress, a Win for the side
// board.GameState already names, or Draw once the no-progress clock
// reaches the configured limit.
type Result struct {
	State  State
	Winner board.Color // valid when State == Win
}

// GameStateWithDrawRule is the draw-aware variant of board.GameState.
func (g *Game) GameStateWithDrawRule() Result {
	if g.HalfmoveClock >= g.DrawPlyLimit {
		return Result{State: Draw}
	}
	r := board.GameState(g.Pos)
	if r.Kind == board.Win {
		return Result{State: Win, Winner: r.Winner}
	}
	return Result{State: InProgress}
}

func (r Result) String() string {
	switch r.State {
	case Win:
		return "Win(" + r.Winner.String() + ")"
	case Draw:
		return "Draw"
	default:
		return "InProgress"
	}
}
