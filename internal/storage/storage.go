package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyPreferences = "preferences"
	prefixPerft    = "perft/"
	prefixSearch   = "search/"
)

// defaultSearchDepth mirrors the engine's default search depth.
const defaultSearchDepth = 4

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("storage: not found")

// Preferences stores engine settings that persist across runs.
type Preferences struct {
	DefaultDepth int       `json:"default_depth"`
	Workers      int       `json:"workers"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DefaultPreferences returns default preferences
func DefaultPreferences() *Preferences {
	return &Preferences{
		DefaultDepth: defaultSearchDepth,
		Workers:      runtime.NumCPU(),
	}
}

// PerftRecord is the result of one perft run.
type PerftRecord struct {
	Key        uint64        `json:"key"` // Zobrist key of the root position
	Line       string        `json:"line"`
	Depth      int           `json:"depth"`
	Nodes      uint64        `json:"nodes"`
	Elapsed    time.Duration `json:"elapsed"`
	RecordedAt time.Time     `json:"recorded_at"`
}

// SearchRecord is the result of one engine search.
type SearchRecord struct {
	Line       string        `json:"line"`
	Depth      int           `json:"depth"`
	BestMove   string        `json:"best_move"`
	Score      int           `json:"score"`
	Nodes      uint64        `json:"nodes"`
	Elapsed    time.Duration `json:"elapsed"`
	RecordedAt time.Time     `json:"recorded_at"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens (creating if needed) the database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dir, err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get decodes the value under key into v, returning ErrNotFound if absent.
func (s *Storage) get(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}

// SavePreferences saves preferences
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.UpdatedAt = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences loads preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()
	err := s.get(keyPreferences, prefs)
	if errors.Is(err, ErrNotFound) {
		return prefs, nil // Use defaults
	}
	return prefs, err
}

func perftKey(key uint64, depth int) string {
	return fmt.Sprintf("%s%016x/%02d", prefixPerft, key, depth)
}

// RecordPerft stores rec, replacing any earlier record for the same position
// and depth.
func (s *Storage) RecordPerft(rec PerftRecord) error {
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now()
	}
	if err := s.put(perftKey(rec.Key, rec.Depth), rec); err != nil {
		return fmt.Errorf("record perft %016x depth %d: %w", rec.Key, rec.Depth, err)
	}
	return nil
}

// LookupPerft returns the stored record for a position and depth.
func (s *Storage) LookupPerft(key uint64, depth int) (*PerftRecord, error) {
	var rec PerftRecord
	if err := s.get(perftKey(key, depth), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// PerftHistory returns every stored perft record, ordered by position key and depth.
func (s *Storage) PerftHistory() ([]PerftRecord, error) {
	var records []PerftRecord
	err := s.scan(prefixPerft, false, 0, func(val []byte) error {
		var rec PerftRecord
		if err := json.Unmarshal(val, &rec); err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	return records, err
}

// RecordSearch appends rec to the search history.
func (s *Storage) RecordSearch(rec SearchRecord) error {
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now()
	}
	key := fmt.Sprintf("%s%020d", prefixSearch, rec.RecordedAt.UnixNano())
	if err := s.put(key, rec); err != nil {
		return fmt.Errorf("record search: %w", err)
	}
	return nil
}

// SearchHistory returns up to limit search records, newest first.
// A limit of zero or less returns all of them.
func (s *Storage) SearchHistory(limit int) ([]SearchRecord, error) {
	var records []SearchRecord
	err := s.scan(prefixSearch, true, limit, func(val []byte) error {
		var rec SearchRecord
		if err := json.Unmarshal(val, &rec); err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	return records, err
}

// scan calls fn with the value of each key under prefix, stopping after limit
// values when limit is positive.
func (s *Storage) scan(prefix string, reverse bool, limit int, fn func(val []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		opts.Reverse = reverse
		it := txn.NewIterator(opts)
		defer it.Close()

		seek := []byte(prefix)
		if reverse {
			seek = append(seek, 0xFF)
		}

		n := 0
		for it.Seek(seek); it.ValidForPrefix(opts.Prefix); it.Next() {
			if limit > 0 && n >= limit {
				break
			}
			if err := it.Item().Value(fn); err != nil {
				return err
			}
			n++
		}
		return nil
	})
}
