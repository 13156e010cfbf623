// NetraGPT - conversational chatbot backend
// License: MIT
//
// Copyright (c) 2026 NetraGPT contributors

// Package telemetry records request metrics in a local SQLite database.
// Session state itself is never persisted here, only counters and timings.
package telemetry

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

type Metric struct {
	ID        string
	Name      string
	Value     float64
	Tags      map[string]string
	CreatedAt time.Time
}

// NewStore creates/opens the telemetry database at path.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create telemetry db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Single-process service. One shared connection avoids writer lock
	// contention with SQLite under concurrent goroutines.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &Store{db: db}
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) init() error {
	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA synchronous=NORMAL;`,
		`PRAGMA temp_store=MEMORY;`,
		`PRAGMA busy_timeout=5000;`,
		`CREATE TABLE IF NOT EXISTS metrics (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			value REAL NOT NULL,
			tags_json TEXT NOT NULL DEFAULT '{}',
			created_at_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS metrics_name_idx ON metrics(name, created_at_ms DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("init telemetry schema: %w", err)
		}
	}
	return nil
}

// Record stores one metric sample. Errors are returned, not fatal; callers
// log and continue so a broken telemetry db never blocks a chat turn.
func (s *Store) Record(name string, value float64, tags map[string]string) error {
	if s == nil || s.db == nil {
		return nil
	}
	tagsJSON := "{}"
	if len(tags) > 0 {
		if b, err := json.Marshal(tags); err == nil {
			tagsJSON = string(b)
		}
	}
	_, err := s.db.Exec(
		`INSERT INTO metrics (id, name, value, tags_json, created_at_ms) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), name, value, tagsJSON, time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("record metric %s: %w", name, err)
	}
	return nil
}

// Increment is Record with a value of 1, for counter-style metrics.
func (s *Store) Increment(name string, tags map[string]string) error {
	return s.Record(name, 1, tags)
}

// Recent returns the most recent samples for a metric, newest first.
func (s *Store) Recent(name string, limit int) ([]Metric, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, name, value, tags_json, created_at_ms FROM metrics WHERE name = ? ORDER BY created_at_ms DESC LIMIT ?`,
		name, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query metrics: %w", err)
	}
	defer rows.Close()

	var out []Metric
	for rows.Next() {
		var m Metric
		var tagsJSON string
		var createdMs int64
		if err := rows.Scan(&m.ID, &m.Name, &m.Value, &tagsJSON, &createdMs); err != nil {
			return nil, fmt.Errorf("scan metric: %w", err)
		}
		m.CreatedAt = time.UnixMilli(createdMs)
		if tagsJSON != "" && tagsJSON != "{}" {
			_ = json.Unmarshal([]byte(tagsJSON), &m.Tags)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Sum totals all samples recorded for a metric name.
func (s *Store) Sum(name string) (float64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total sql.NullFloat64
	err := s.db.QueryRow(`SELECT SUM(value) FROM metrics WHERE name = ?`, name).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum metric %s: %w", name, err)
	}
	return total.Float64, nil
}
