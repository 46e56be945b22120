package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/perft"
	"github.com/hailam/chesscore/internal/storage"
)

// ErrUnknownMove is reported for a move string that does not match any legal
// move of the current position.
var ErrUnknownMove = errors.New("uci: unknown move")

// Option configures a UCI handler.
type Option func(*UCI)

// WithStorage persists the Depth option and records finished searches.
func WithStorage(s *storage.Storage) Option {
	return func(u *UCI) { u.store = s }
}

// WithWorkers sets how many goroutines the perft command uses.
func WithWorkers(n int) Option {
	return func(u *UCI) { u.workers = n }
}

// UCI implements the Universal Chess Interface protocol.
type UCI struct {
	engine  *engine.Engine
	store   *storage.Storage
	workers int

	in     io.Reader
	out    io.Writer
	errOut io.Writer
	outMu  sync.Mutex

	position *board.Position
	line     []string     // moves played from the starting position
	moves    []board.Move // the same moves, decoded

	// Search state
	cancel     context.CancelFunc
	searchDone chan struct{}
	infinite   bool
}

// New creates a UCI protocol handler that reads commands from in, writes
// protocol output to out and diagnostics to errOut.
func New(eng *engine.Engine, in io.Reader, out, errOut io.Writer, opts ...Option) *UCI {
	u := &UCI{
		engine:   eng,
		in:       in,
		out:      out,
		errOut:   errOut,
		position: board.NewPosition(),
	}
	for _, opt := range opts {
		opt(u)
	}
	eng.OnInfo = u.sendInfo
	return u
}

// Run reads commands until quit or end of input. At end of input a running
// search is allowed to finish, except an infinite one, which is stopped.
func (u *UCI) Run() error {
	scanner := bufio.NewScanner(u.in)
	for scanner.Scan() {
		if !u.Execute(scanner.Text()) {
			return nil
		}
	}
	if u.infinite {
		u.handleStop()
	}
	u.Wait()
	return scanner.Err()
}

// Execute handles one command line. It returns false after quit.
func (u *UCI) Execute(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "uci":
		u.handleUCI()
	case "isready":
		u.println("readyok")
	case "ucinewgame":
		u.handleStop()
		u.position = board.NewPosition()
		u.line, u.moves = nil, nil
	case "position":
		u.handleStop()
		u.handlePosition(args)
	case "go":
		u.handleGo(args)
	case "stop":
		u.handleStop()
	case "quit":
		u.handleStop()
		return false
	case "setoption":
		u.handleSetOption(args)
	// Debug commands
	case "d":
		u.handleDisplay()
	case "perft":
		u.handlePerft(args)
	default:
		u.infoString("unknown command: %s", cmd)
	}
	return true
}

// Wait blocks until the current search, if any, has reported its best move.
func (u *UCI) Wait() {
	if u.searchDone != nil {
		<-u.searchDone
	}
}

func (u *UCI) println(a ...any) {
	u.outMu.Lock()
	defer u.outMu.Unlock()
	fmt.Fprintln(u.out, a...)
}

func (u *UCI) printf(format string, a ...any) {
	u.outMu.Lock()
	defer u.outMu.Unlock()
	fmt.Fprintf(u.out, format, a...)
}

func (u *UCI) infoString(format string, a ...any) {
	u.outMu.Lock()
	defer u.outMu.Unlock()
	fmt.Fprintf(u.errOut, "info string "+format+"\n", a...)
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	u.println("id name ChessCore")
	u.println("id author ChessCore Team")
	u.println()
	u.printf("option name Depth type spin default %d min 1 max %d\n", u.engine.DefaultDepth(), engine.MaxDepth)
	u.println("uciok")
}

// handlePosition sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}
	if args[0] == "fen" {
		u.infoString("fen not supported")
		return
	}
	if args[0] != "startpos" {
		u.infoString("unknown position type: %s", args[0])
		return
	}

	u.position = board.NewPosition()
	u.line, u.moves = nil, nil

	moveStart := len(args)
	for i, arg := range args {
		if arg == "moves" {
			moveStart = i + 1
			break
		}
	}
	for _, s := range args[moveStart:] {
		if err := u.playMove(s); err != nil {
			u.infoString("%v", err)
		}
	}
}

// playMove plays s if it names a legal move of the current position.
func (u *UCI) playMove(s string) error {
	m, ok := u.position.GenerateLegalMoves().Find(s)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMove, s)
	}
	u.position.MakeMove(m)
	u.line = append(u.line, s)
	u.moves = append(u.moves, m)
	return nil
}

// handleDisplay prints the board, its static evaluation and the moves that
// led to it in SAN.
func (u *UCI) handleDisplay() {
	u.println(u.position.String())
	u.printf("Eval: %d\n", u.engine.Evaluate(u.position))
	if len(u.moves) > 0 {
		u.printf("Moves: %s\n", strings.Join(board.NewPosition().MovesToSAN(u.moves), " "))
	}
}

// goOptions holds parsed "go" command options.
type goOptions struct {
	limits   engine.SearchLimits
	infinite bool
}

func parseGoOptions(args []string) goOptions {
	var opts goOptions
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				opts.limits.Depth, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "movetime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				opts.limits.MoveTime = time.Duration(ms) * time.Millisecond
				i++
			}
		case "infinite":
			opts.infinite = true
		}
	}
	return opts
}

// handleGo starts a search on a copy of the current position. With infinite
// the best move is held back until stop.
func (u *UCI) handleGo(args []string) {
	u.handleStop()
	opts := parseGoOptions(args)
	if opts.limits.Depth <= 0 {
		// setoption may change the default while the search runs.
		opts.limits.Depth = u.engine.DefaultDepth()
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	u.cancel = cancel
	u.searchDone = done
	u.infinite = opts.infinite

	pos := u.position.Copy()
	line := strings.Join(u.line, " ")

	go func() {
		defer close(done)

		result := u.engine.SearchWithLimits(ctx, pos, opts.limits)
		if opts.infinite {
			<-ctx.Done()
		}

		best := result.Move
		if best == board.NoMove {
			// Interrupted before any root move finished.
			if legal := pos.GenerateLegalMoves(); legal.Len() > 0 {
				best = legal.Get(0)
			}
		}
		u.printf("bestmove %s\n", best)
		u.recordSearch(line, result, best)
	}()
}

// handleStop cancels the current search and waits for its best move.
func (u *UCI) handleStop() {
	if u.cancel == nil {
		return
	}
	u.cancel()
	<-u.searchDone
	u.cancel = nil
	u.searchDone = nil
	u.infinite = false
}

// sendInfo outputs search info in UCI format.
func (u *UCI) sendInfo(info engine.SearchInfo) {
	parts := []string{fmt.Sprintf("depth %d", info.Depth)}

	if n, ok := engine.MateIn(info.Score, info.Depth); ok {
		parts = append(parts, fmt.Sprintf("score mate %d", n))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %d", info.Score))
	}

	parts = append(parts, fmt.Sprintf("nodes %d", info.Nodes))
	parts = append(parts, fmt.Sprintf("time %d", info.Time.Milliseconds()))

	if len(info.PV) > 0 {
		pv := make([]string, len(info.PV))
		for i, m := range info.PV {
			pv[i] = m.String()
		}
		parts = append(parts, "pv "+strings.Join(pv, " "))
	}

	u.printf("info %s\n", strings.Join(parts, " "))
}

func (u *UCI) recordSearch(line string, result engine.SearchResult, best board.Move) {
	if u.store == nil {
		return
	}
	err := u.store.RecordSearch(storage.SearchRecord{
		Line:     line,
		Depth:    result.Depth,
		BestMove: best.String(),
		Score:    result.Score,
		Nodes:    result.Nodes,
		Elapsed:  result.Time,
	})
	if err != nil {
		u.infoString("failed to record search: %v", err)
	}
}

// handleSetOption processes "setoption name <name> value <value>".
func (u *UCI) handleSetOption(args []string) {
	var name, value []string
	var target *[]string
	for _, arg := range args {
		switch arg {
		case "name":
			target = &name
		case "value":
			target = &value
		default:
			if target != nil {
				*target = append(*target, arg)
			}
		}
	}

	switch strings.ToLower(strings.Join(name, " ")) {
	case "depth":
		depth, err := strconv.Atoi(strings.Join(value, " "))
		if err != nil || depth < 1 {
			u.infoString("invalid depth: %s", strings.Join(value, " "))
			return
		}
		u.engine.SetDefaultDepth(depth)
		u.saveDepth()
	default:
		u.infoString("unknown option: %s", strings.Join(name, " "))
	}
}

func (u *UCI) saveDepth() {
	if u.store == nil {
		return
	}
	prefs, err := u.store.LoadPreferences()
	if err != nil {
		u.infoString("failed to load preferences: %v", err)
		return
	}
	prefs.DefaultDepth = u.engine.DefaultDepth()
	if err := u.store.SavePreferences(prefs); err != nil {
		u.infoString("failed to save preferences: %v", err)
	}
}

// handlePerft prints the node count below each legal move and the total.
func (u *UCI) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 1 {
			u.infoString("invalid perft depth: %s", args[0])
			return
		}
		depth = d
	}

	start := time.Now()
	entries, err := perft.Divide(context.Background(), u.position, depth, u.workers)
	if err != nil {
		u.infoString("perft: %v", err)
		return
	}
	elapsed := time.Since(start)

	for _, e := range entries {
		u.printf("%s: %d\n", e.Move, e.Nodes)
	}
	nodes := perft.Total(entries)
	u.println()
	u.printf("Nodes: %d\n", nodes)
	u.printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		u.printf("NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}
