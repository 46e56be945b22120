package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/crosscheck"
	"github.com/hailam/chesscore/internal/perft"
	"github.com/hailam/chesscore/internal/storage"
)

var (
	depth      = flag.Int("depth", 5, "perft depth")
	moves      = flag.String("moves", "", "moves played from the starting position, e.g. \"e2e4 e7e5\"")
	divide     = flag.Bool("divide", false, "print per-move node counts at root")
	workers    = flag.Int("workers", 0, "goroutines for root moves (0 = stored preference or one per CPU)")
	compare    = flag.Bool("compare", false, "compare the depth 5 divide of the starting position with the published table")
	check      = flag.Bool("check", false, "check depths 1..depth of the starting position against published totals")
	crossCheck = flag.Bool("crosscheck", false, "compare legal moves with reference generators at every node up to depth")
	dbDir      = flag.String("db", "", "storage directory (default $"+storage.EnvDatabaseDir+" or the user data dir)")
	noDB       = flag.Bool("nodb", false, "do not record or compare with stored results")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

// errFailed marks a run whose numbers are wrong; details are already logged.
var errFailed = errors.New("perft check failed")

func main() {
	flag.Parse()
	log.SetFlags(0)
	os.Exit(exitCode())
}

// exitCode runs the command: 0 on success, 1 when the counts are wrong and
// 2 on any other error.
func exitCode() int {
	if *depth < 1 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		return 2
	}

	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Printf("could not create CPU profile: %v", err)
			return 2
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Printf("could not start CPU profile: %v", err)
			return 2
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx)
	switch {
	case errors.Is(err, errFailed):
		return 1
	case err != nil:
		log.Printf("error: %v", err)
		return 2
	}
	return 0
}

func run(ctx context.Context) error {
	pos, err := playLine(*moves)
	if err != nil {
		return err
	}

	var store *storage.Storage
	if !*noDB {
		store, err = openStorage()
		if err != nil {
			log.Printf("Warning: storage disabled: %v", err)
		} else {
			defer store.Close()
			if *workers == 0 {
				if prefs, err := store.LoadPreferences(); err == nil {
					*workers = prefs.Workers
				}
			}
		}
	}

	switch {
	case *crossCheck:
		return runCrosscheck(ctx)
	case *check:
		return runCheck(ctx, pos)
	case *compare:
		return runCompare(ctx, pos)
	}

	start := time.Now()
	entries, err := perft.Divide(ctx, pos, *depth, *workers)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	nodes := perft.Total(entries)

	if *divide {
		for _, e := range entries {
			fmt.Printf("%s: %d\n", e.Move, e.Nodes)
		}
		fmt.Printf("Total: %d\n", nodes)
	}
	fmt.Printf("depth %d\tnodes %d\ttime %s\tnps %.0f\n", *depth, nodes, elapsed, float64(nodes)/elapsed.Seconds())

	if store == nil {
		return nil
	}
	return compareRecord(store, storage.PerftRecord{
		Key:     pos.Hash(),
		Line:    *moves,
		Depth:   *depth,
		Nodes:   nodes,
		Elapsed: elapsed,
	})
}

// compareRecord fails when an earlier run of the same position and depth
// counted a different number of nodes, and stores rec otherwise.
func compareRecord(store *storage.Storage, rec storage.PerftRecord) error {
	prev, err := store.LookupPerft(rec.Key, rec.Depth)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return err
	case prev.Nodes != rec.Nodes:
		log.Printf("regression: %d nodes, recorded %d on %s", rec.Nodes, prev.Nodes, prev.RecordedAt.Format(time.RFC3339))
		return errFailed
	default:
		log.Printf("matches record from %s (%s, now %s)", prev.RecordedAt.Format(time.RFC3339), prev.Elapsed, rec.Elapsed)
	}
	return store.RecordPerft(rec)
}

func runCheck(ctx context.Context, pos *board.Position) error {
	if *moves != "" {
		return errors.New("-check needs the starting position")
	}
	failed := false
	for d := 1; d <= *depth; d++ {
		want, ok := perft.ExpectedStart[d]
		if !ok {
			return fmt.Errorf("no published total for depth %d", d)
		}
		start := time.Now()
		got, err := perft.Count(ctx, pos, d, *workers)
		if err != nil {
			return err
		}
		status := "ok"
		if got != want {
			status = fmt.Sprintf("FAIL (want %d)", want)
			failed = true
		}
		fmt.Printf("depth %d\tnodes %d\ttime %s\t%s\n", d, got, time.Since(start), status)
	}
	if failed {
		return errFailed
	}
	return nil
}

func runCompare(ctx context.Context, pos *board.Position) error {
	if *moves != "" {
		return errors.New("-compare needs the starting position")
	}
	entries, err := perft.Divide(ctx, pos, 5, *workers)
	if err != nil {
		return err
	}
	diffs := perft.Compare(entries, perft.ExpectedStartDivide5)
	for _, d := range diffs {
		fmt.Println(d)
	}
	fmt.Printf("Total: %d (want %d)\n", perft.Total(entries), perft.ExpectedStart[5])
	if len(diffs) > 0 {
		return errFailed
	}
	fmt.Println("divide matches")
	return nil
}

func runCrosscheck(ctx context.Context) error {
	goose, err := crosscheck.NewGoose()
	if err != nil {
		return err
	}
	refs := []crosscheck.Reference{crosscheck.NewDragontooth(), crosscheck.NewNotnil(), goose}

	start := time.Now()
	report, err := crosscheck.Check(ctx, *depth, refs...)
	if errors.Is(err, crosscheck.ErrMismatch) {
		log.Print(err)
		return errFailed
	}
	if err != nil {
		return err
	}
	fmt.Printf("depth %d: %d positions, %d leaves agree with %s (%s)\n",
		report.Depth, report.Positions, report.Nodes, strings.Join(report.References, ", "), time.Since(start))
	return nil
}

// playLine returns the starting position after the space separated moves,
// written in coordinate form or SAN.
func playLine(line string) (*board.Position, error) {
	pos := board.NewPosition()
	for _, s := range strings.Fields(line) {
		m, ok := pos.GenerateLegalMoves().Find(s)
		if !ok {
			var err error
			if m, err = pos.ParseSAN(s); err != nil {
				return nil, fmt.Errorf("-moves: %s is not legal here", s)
			}
		}
		pos.MakeMove(m)
	}
	return pos, nil
}

func openStorage() (*storage.Storage, error) {
	dir, err := storage.ResolveDatabaseDir(*dbDir)
	if err != nil {
		return nil, err
	}
	return storage.Open(dir)
}
