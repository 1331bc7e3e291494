// Package store persists solve runs in SQLite.
//
// Each run is one row keyed by a UUID v7, so ids sort by creation time.
// The taken vector is stored as a portable roaring bitmap of selected item
// indices together with the item count needed to rebuild it.
package store

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/lvpack/knapsack"
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("store: run not found")
	ErrClosed   = errors.New("store: closed")
)

// timeLayout has fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Record is one persisted solve.
type Record struct {
	ID        string
	Instance  string
	Algorithm string
	Capacity  int
	Value     float64
	Weight    int
	Optimal   bool
	Taken     []int
	Stats     knapsack.Stats // Expanded, Pruned and MaxQueue are persisted
	Duration  time.Duration
	Err       string
	CreatedAt time.Time
}

// NewRecord fills a Record from a solve outcome. err may be nil.
func NewRecord(name string, capacity int, res knapsack.Result, d time.Duration, err error) Record {
	rec := Record{
		Instance:  name,
		Algorithm: res.Algo.String(),
		Capacity:  capacity,
		Value:     res.Value,
		Weight:    res.Weight,
		Optimal:   res.Optimal,
		Taken:     res.Taken,
		Stats:     res.Stats,
		Duration:  d,
	}
	if err != nil {
		rec.Err = err.Error()
	}

	return rec
}

// Store wraps a SQLite database. Methods are safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	closed bool
}

// Open creates or opens the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: create dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	var stmt string
	for _, stmt = range schemaStatements {
		if _, err = db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: apply schema: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// Close releases the database. Further calls return ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.closed = true

	return s.db.Close()
}

// Save inserts rec and returns its generated id. rec.ID and rec.CreatedAt
// are ignored.
func (s *Store) Save(ctx context.Context, rec Record) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", ErrClosed
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("store: generate id: %w", err)
	}
	blob, err := encodeTaken(rec.Taken)
	if err != nil {
		return "", err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, instance, algorithm, item_count, capacity, value, weight, optimal,
			taken, expanded, pruned, queue_peak, duration_ns, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(), rec.Instance, rec.Algorithm, len(rec.Taken), rec.Capacity, rec.Value, rec.Weight,
		boolToInt(rec.Optimal), blob, rec.Stats.Expanded, rec.Stats.Pruned, rec.Stats.MaxQueue,
		int64(rec.Duration), rec.Err, time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("store: insert run: %w", err)
	}

	return id.String(), nil
}

const selectRun = `SELECT run_id, instance, algorithm, item_count, capacity, value, weight, optimal,
	taken, expanded, pruned, queue_peak, duration_ns, error, created_at FROM runs`

// Get returns the run with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Record{}, ErrClosed
	}

	row := s.db.QueryRowContext(ctx, selectRun+` WHERE run_id = ?`, id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return Record{}, fmt.Errorf("store: get %s: %w", id, err)
	}

	return rec, nil
}

// List returns the runs of one instance, oldest first. An empty name lists
// every run.
func (s *Store) List(ctx context.Context, instance string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}

	var (
		rows *sql.Rows
		err  error
	)
	if instance == "" {
		rows, err = s.db.QueryContext(ctx, selectRun+` ORDER BY created_at, run_id`)
	} else {
		rows, err = s.db.QueryContext(ctx, selectRun+` WHERE instance = ? ORDER BY created_at, run_id`, instance)
	}
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("store: list: %w", err)
		}
		out = append(out, rec)
	}

	return out, rows.Err()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		rec       Record
		count     int
		optimal   int
		blob      []byte
		durNs     int64
		createdAt string
	)
	err := sc.Scan(&rec.ID, &rec.Instance, &rec.Algorithm, &count, &rec.Capacity, &rec.Value, &rec.Weight,
		&optimal, &blob, &rec.Stats.Expanded, &rec.Stats.Pruned, &rec.Stats.MaxQueue, &durNs, &rec.Err, &createdAt)
	if err != nil {
		return Record{}, err
	}
	rec.Optimal = optimal != 0
	rec.Duration = time.Duration(durNs)
	if rec.Taken, err = decodeTaken(blob, count); err != nil {
		return Record{}, err
	}
	if rec.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return Record{}, fmt.Errorf("parse created_at: %w", err)
	}

	return rec, nil
}

// encodeTaken serializes the indices with taken[i]==1.
func encodeTaken(taken []int) ([]byte, error) {
	bm := roaring.New()
	var i int
	for i = range taken {
		if taken[i] == 1 {
			bm.Add(uint32(i))
		}
	}
	bm.RunOptimize()

	var buf bytes.Buffer
	if _, err := bm.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("store: encode taken: %w", err)
	}

	return buf.Bytes(), nil
}

// decodeTaken rebuilds a 0/1 vector of length n.
func decodeTaken(blob []byte, n int) ([]int, error) {
	bm := roaring.New()
	if _, err := bm.ReadFrom(bytes.NewReader(blob)); err != nil {
		return nil, fmt.Errorf("decode taken: %w", err)
	}
	taken := make([]int, n)
	it := bm.Iterator()
	var idx uint32
	for it.HasNext() {
		idx = it.Next()
		if int(idx) >= n {
			return nil, fmt.Errorf("decode taken: index %d outside %d items", idx, n)
		}
		taken[idx] = 1
	}

	return taken, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}
