package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/storage"
	"github.com/hailam/chesscore/internal/uci"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	dbDir      = flag.String("db", "", "storage directory (default $"+storage.EnvDatabaseDir+" or the user data dir)")
	noDB       = flag.Bool("nodb", false, "run without persistent storage")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	eng := engine.NewEngine(engine.Evaluate)
	var opts []uci.Option

	if !*noDB {
		store, err := openStorage()
		if err != nil {
			log.Printf("Warning: storage disabled: %v", err)
		} else {
			defer store.Close()
			prefs, err := store.LoadPreferences()
			if err != nil {
				log.Printf("Warning: preferences not loaded: %v", err)
			} else {
				eng.SetDefaultDepth(prefs.DefaultDepth)
				opts = append(opts, uci.WithWorkers(prefs.Workers))
			}
			opts = append(opts, uci.WithStorage(store))
		}
	}

	protocol := uci.New(eng, os.Stdin, os.Stdout, os.Stderr, opts...)
	if err := protocol.Run(); err != nil {
		log.Printf("reading commands: %v", err)
	}
}

func openStorage() (*storage.Storage, error) {
	dir, err := storage.ResolveDatabaseDir(*dbDir)
	if err != nil {
		return nil, err
	}
	return storage.Open(dir)
}
