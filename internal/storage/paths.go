// Package storage persists engine preferences, perft results and search
// history in a BadgerDB database.
package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// EnvDatabaseDir names the environment variable that overrides the database directory.
const EnvDatabaseDir = "CHESSCORE_DB"

// ResolveDatabaseDir picks the database directory: dir if non-empty, then
// $CHESSCORE_DB, then chesscore/db under $XDG_DATA_HOME or the user config
// directory. Only the last is created here; Open creates the others.
func ResolveDatabaseDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	if env := os.Getenv(EnvDatabaseDir); env != "" {
		return env, nil
	}

	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		var err error
		if base, err = os.UserConfigDir(); err != nil {
			return "", fmt.Errorf("no database directory: %w", err)
		}
	}
	dbDir := filepath.Join(base, "chesscore", "db")
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return "", err
	}
	log.Printf("Database directory: %s", dbDir)
	return dbDir, nil
}
