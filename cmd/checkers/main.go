// Command checkers is a line-oriented REPL over the engine core,
// grounded on the teacher's internal/uci/uci.go scanner-based dispatch
// loop: read a line, split into a command and arguments, dispatch, print
// a response. It owns all I/O and formatting; internal/board,
// internal/game and internal/search never print or read stdin.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/jatayl/checkers/internal/board"
	"github.com/jatayl/checkers/internal/config"
	"github.com/jatayl/checkers/internal/eval"
	"github.com/jatayl/checkers/internal/game"
	"github.com/jatayl/checkers/internal/search"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("checkers: %v", err)
		}
		cfg = loaded
	}

	engine, err := search.NewEngine(eval.Material{KingWeight: cfg.KingWeight}, cfg.TranspositionEntries())
	if err != nil {
		log.Fatalf("checkers: creating engine: %v", err)
	}
	defer engine.Close()

	r := &repl{
		game:   game.New(cfg.DrawPlyLimit),
		engine: engine,
		defaultLimit: search.Depth(cfg.DefaultDepth),
		out:    os.Stdout,
	}
	r.run(os.Stdin)
}

type repl struct {
	game         *game.Game
	engine       *search.Engine
	defaultLimit search.Limit
	out          *os.File
}

func (r *repl) run(in *os.File) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]
		if cmd == "exit" {
			return
		}
		if err := r.dispatch(cmd, args); err != nil {
			color.New(color.FgRed).Fprintf(r.out, "error: %v\n", err)
		}
	}
}

func (r *repl) dispatch(cmd string, args []string) error {
	switch cmd {
	case "print":
		r.printBoard()
	case "generate":
		for _, m := range board.Generate(r.game.Pos) {
			fmt.Fprintln(r.out, m)
		}
	case "take":
		if len(args) != 1 {
			return fmt.Errorf("usage: take <move>")
		}
		return r.take(args[0])
	case "best":
		limit, err := parseLimit(args, r.defaultLimit)
		if err != nil {
			return err
		}
		move, err := r.engine.BestMove(r.game.Pos, limit)
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, move)
	case "evaluate":
		limit, err := parseLimit(args, r.defaultLimit)
		if err != nil {
			return err
		}
		s := search.New(eval.NewMaterial(), r.engine.Table)
		score, err := s.Evaluate(r.game.Pos, limit)
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, score)
	case "fen":
		if len(args) != 1 {
			return fmt.Errorf("usage: fen <fen-string>")
		}
		pos, err := board.ParseFEN(args[0])
		if err != nil {
			return err
		}
		r.game.Pos = pos
		r.game.HalfmoveClock = 0
	case "gamestate":
		fmt.Fprintln(r.out, r.game.GameStateWithDrawRule())
	case "turn":
		fmt.Fprintln(r.out, r.game.Pos.Turn)
	case "reset":
		r.game.Reset()
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func (r *repl) take(spec string) error {
	m, err := board.ParseMoveNotation(spec)
	if err != nil {
		return err
	}
	for _, legal := range board.Generate(r.game.Pos) {
		if legal == m {
			r.game.Apply(legal)
			return nil
		}
	}
	return &board.InvalidMoveError{Move: m}
}

func (r *repl) printBoard() {
	blackBanner := color.New(color.FgBlack, color.Bold)
	whiteBanner := color.New(color.FgWhite, color.Bold)
	for _, line := range strings.Split(strings.TrimRight(r.game.Pos.String(), "\n"), "\n") {
		for _, ch := range line {
			switch ch {
			case 'b', 'B':
				blackBanner.Fprint(r.out, string(ch))
			case 'w', 'W':
				whiteBanner.Fprint(r.out, string(ch))
			default:
				fmt.Fprint(r.out, string(ch))
			}
		}
		fmt.Fprintln(r.out)
	}
}

// parseLimit accepts "timed <ms>" or "depth <d>"; an empty args list
// falls back to def.
func parseLimit(args []string, def search.Limit) (search.Limit, error) {
	if len(args) == 0 {
		return def, nil
	}
	if len(args) != 2 {
		return search.Limit{}, fmt.Errorf("usage: (timed <ms> | depth <d>)")
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return search.Limit{}, fmt.Errorf("bad numeric argument %q: %w", args[1], err)
	}
	switch args[0] {
	case "timed":
		return search.Time(time.Duration(n) * time.Millisecond), nil
	case "depth":
		return search.Depth(n), nil
	default:
		return search.Limit{}, fmt.Errorf("unknown limit kind %q", args[0])
	}
}
