// ============================================================================
// nestedencoder (nenc) - Verschachtelte Zeichenketten-Kodierung
// ============================================================================
//
// Package:     store
// Description: Encode history persistence (SQLite and in-memory)
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// MemoryPath opens a private in-memory SQLite database
const MemoryPath = ":memory:"

// Entry is one recorded encode call. The input text and the result are
// never stored, only their lengths.
type Entry struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Pattern      string    `json:"pattern"`
	InputLength  int       `json:"input_length"`
	OutputLength int       `json:"output_length"`
	RequestID    string    `json:"request_id,omitempty"`
	ErrorCode    string    `json:"error_code,omitempty"`
}

// Succeeded reports whether the call produced a result
func (e *Entry) Succeeded() bool {
	return e.ErrorCode == ""
}

// HistoryStore defines the interface for history persistence
type HistoryStore interface {
	Record(ctx context.Context, entry *Entry) error
	Recent(ctx context.Context, limit int) ([]*Entry, error)
	Stats(ctx context.Context) (map[string]interface{}, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	PingContext(ctx context.Context) error
	Close() error
}

// SQLiteHistoryStore implements HistoryStore using SQLite
type SQLiteHistoryStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// SQLiteConfig holds configuration for the SQLite store
type SQLiteConfig struct {
	Path string
}

// DefaultConfig returns default configuration
func DefaultConfig() SQLiteConfig {
	return SQLiteConfig{
		Path: "./data/history.db",
	}
}

// NewSQLiteHistoryStore creates a new SQLite-based history store
func NewSQLiteHistoryStore(cfg SQLiteConfig) (*SQLiteHistoryStore, error) {
	dsn := MemoryPath
	if cfg.Path != MemoryPath {
		dir := filepath.Dir(cfg.Path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		dsn = cfg.Path + "?_journal_mode=WAL&_synchronous=NORMAL"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// every connection to :memory: is its own database
	db.SetMaxOpenConns(1)

	store := &SQLiteHistoryStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteHistoryStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS encodings (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		pattern TEXT NOT NULL,
		input_length INTEGER NOT NULL,
		output_length INTEGER NOT NULL,
		request_id TEXT,
		error_code TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_encodings_timestamp ON encodings(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_encodings_pattern ON encodings(pattern);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record stores a new history entry
func (s *SQLiteHistoryStore) Record(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(entry)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO encodings (id, timestamp, pattern, input_length, output_length, request_id, error_code)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Timestamp, entry.Pattern, entry.InputLength, entry.OutputLength,
		nullString(entry.RequestID), nullString(entry.ErrorCode))
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	return nil
}

// Recent returns the newest entries first
func (s *SQLiteHistoryStore) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, timestamp, pattern, input_length, output_length, request_id, error_code
		FROM encodings ORDER BY timestamp DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var entry Entry
		var requestID, errorCode sql.NullString

		if err := rows.Scan(&entry.ID, &entry.Timestamp, &entry.Pattern, &entry.InputLength,
			&entry.OutputLength, &requestID, &errorCode); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entry.RequestID = requestID.String
		entry.ErrorCode = errorCode.String

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// Stats returns history statistics
func (s *SQLiteHistoryStore) Stats(ctx context.Context) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make(map[string]interface{})

	var total, failed int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM encodings`).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count entries: %w", err)
	}
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM encodings WHERE error_code IS NOT NULL`).Scan(&failed); err != nil {
		return nil, fmt.Errorf("failed to count failures: %w", err)
	}
	stats["total_entries"] = total
	stats["failed_entries"] = failed

	patternCounts := make(map[string]int64)
	rows, err := s.db.QueryContext(ctx,
		`SELECT pattern, COUNT(*) FROM encodings GROUP BY pattern ORDER BY COUNT(*) DESC LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("failed to group patterns: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pattern string
		var count int64
		if err := rows.Scan(&pattern, &count); err != nil {
			return nil, fmt.Errorf("failed to scan pattern count: %w", err)
		}
		patternCounts[pattern] = count
	}
	stats["top_patterns"] = patternCounts

	var lastEntry sql.NullString
	s.db.QueryRowContext(ctx, `SELECT MAX(timestamp) FROM encodings`).Scan(&lastEntry)
	if lastEntry.Valid {
		stats["last_entry"] = lastEntry.String
	}

	return stats, nil
}

// Prune removes entries older than the specified duration
func (s *SQLiteHistoryStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().UTC().Add(-olderThan)

	result, err := s.db.ExecContext(ctx, `DELETE FROM encodings WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune history: %w", err)
	}
	deleted, _ := result.RowsAffected()

	return deleted, nil
}

// PingContext checks that the database is reachable
func (s *SQLiteHistoryStore) PingContext(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection
func (s *SQLiteHistoryStore) Close() error {
	return s.db.Close()
}

// MemoryHistoryStore is an in-memory implementation for testing
type MemoryHistoryStore struct {
	mu      sync.RWMutex
	entries []*Entry
}

// NewMemoryHistoryStore creates a new in-memory history store
func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{
		entries: make([]*Entry, 0),
	}
}

// Record stores a new history entry
func (s *MemoryHistoryStore) Record(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(entry)
	copied := *entry
	s.entries = append(s.entries, &copied)
	return nil
}

// Recent returns the newest entries first
func (s *MemoryHistoryStore) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Entry, len(s.entries))
	copy(result, s.entries)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Stats returns history statistics
func (s *MemoryHistoryStore) Stats(ctx context.Context) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var failed int64
	patternCounts := make(map[string]int64)
	for _, entry := range s.entries {
		patternCounts[entry.Pattern]++
		if !entry.Succeeded() {
			failed++
		}
	}

	return map[string]interface{}{
		"total_entries":  int64(len(s.entries)),
		"failed_entries": failed,
		"top_patterns":   patternCounts,
	}, nil
}

// Prune removes old entries
func (s *MemoryHistoryStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().UTC().Add(-olderThan)
	var deleted int64

	kept := make([]*Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		if entry.Timestamp.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, entry)
	}
	s.entries = kept

	return deleted, nil
}

// PingContext always succeeds for the memory store
func (s *MemoryHistoryStore) PingContext(ctx context.Context) error {
	return nil
}

// Close is a no-op for memory store
func (s *MemoryHistoryStore) Close() error {
	return nil
}

func prepare(entry *Entry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	entry.Timestamp = entry.Timestamp.UTC()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
