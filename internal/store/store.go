// Package store persists project snapshots, generated artifacts, and
// alignment results to SQLite. Every write appends a new row; history is
// never rewritten.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"aligntrack/internal/alignment"
	"aligntrack/internal/artifacts"
	"aligntrack/internal/impact"
	"aligntrack/internal/logging"
	"aligntrack/internal/snapshot"
)

// Store wraps the SQLite database holding version history.
type Store struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string
}

// Open initializes the SQLite database at the given path, creating parent
// directories and tables as needed.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreDebug("failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.StoreDebug("failed to set sqlite journal_mode=WAL: %v", err)
	}

	s := &Store{db: db, path: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	projectsTable := `
	CREATE TABLE IF NOT EXISTS projects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		content TEXT NOT NULL,
		description TEXT,
		internal_messaging TEXT,
		external_messaging TEXT,
		improvements TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_projects_created ON projects(created_at);
	`

	versionsTable := `
	CREATE TABLE IF NOT EXISTS versions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		content TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	alignmentsTable := `
	CREATE TABLE IF NOT EXISTS alignments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		suggestions TEXT NOT NULL,
		impact_analysis TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	for _, table := range []string{projectsTable, versionsTable, alignmentsTable} {
		if _, err := s.db.Exec(table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ArtifactSet bundles the artifacts generated for one snapshot. Objections
// travel inside each artifact.
type ArtifactSet struct {
	Description artifacts.Description       `json:"description"`
	Internal    artifacts.InternalMessaging `json:"internal_messaging"`
	External    artifacts.ExternalMessaging `json:"external_messaging"`
}

// ProjectRecord is one stored project version with its artifacts.
type ProjectRecord struct {
	ID           int64
	Snapshot     *snapshot.ProjectSnapshot
	Artifacts    ArtifactSet
	Improvements []artifacts.Improvement
	CreatedAt    time.Time
}

// AppendProject stores a snapshot together with its generated artifacts and
// returns the new row id. The raw snapshot is also appended to the versions
// table for history queries.
func (s *Store) AppendProject(snap *snapshot.ProjectSnapshot, set ArtifactSet, improvements []artifacts.Improvement) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, err := json.Marshal(snap)
	if err != nil {
		return 0, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	desc, _ := json.Marshal(set.Description)
	internal, _ := json.Marshal(set.Internal)
	external, _ := json.Marshal(set.External)
	imps, _ := json.Marshal(improvements)

	res, err := s.db.Exec(
		`INSERT INTO projects (content, description, internal_messaging, external_messaging, improvements)
		 VALUES (?, ?, ?, ?, ?)`,
		string(content), string(desc), string(internal), string(external), string(imps),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to store project: %w", err)
	}
	if _, err := s.db.Exec("INSERT INTO versions (content) VALUES (?)", string(content)); err != nil {
		return 0, fmt.Errorf("failed to store version: %w", err)
	}

	id, _ := res.LastInsertId()
	logging.StoreDebug("appended project version id=%d", id)
	return id, nil
}

// LatestSnapshot returns the most recently stored snapshot, or nil when the
// store is empty. A row whose content no longer parses is treated as absent
// so the caller takes the first-snapshot path instead of failing.
func (s *Store) LatestSnapshot() (*snapshot.ProjectSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var content string
	err := s.db.QueryRow("SELECT content FROM projects ORDER BY id DESC LIMIT 1").Scan(&content)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest snapshot: %w", err)
	}

	var snap snapshot.ProjectSnapshot
	if err := json.Unmarshal([]byte(content), &snap); err != nil {
		logging.Store("stored snapshot is unreadable, treating as empty history: %v", err)
		return nil, nil
	}
	return &snap, nil
}

// LatestProject returns the most recent project record with its artifacts,
// or nil when the store is empty.
func (s *Store) LatestProject() (*ProjectRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		rec                            ProjectRecord
		content                        string
		desc, internal, external, imps sql.NullString
	)
	err := s.db.QueryRow(
		`SELECT id, content, description, internal_messaging, external_messaging, improvements, created_at
		 FROM projects ORDER BY id DESC LIMIT 1`,
	).Scan(&rec.ID, &content, &desc, &internal, &external, &imps, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest project: %w", err)
	}

	var snap snapshot.ProjectSnapshot
	if err := json.Unmarshal([]byte(content), &snap); err == nil {
		rec.Snapshot = &snap
	}
	if desc.Valid {
		json.Unmarshal([]byte(desc.String), &rec.Artifacts.Description)
	}
	if internal.Valid {
		json.Unmarshal([]byte(internal.String), &rec.Artifacts.Internal)
	}
	if external.Valid {
		json.Unmarshal([]byte(external.String), &rec.Artifacts.External)
	}
	if imps.Valid {
		json.Unmarshal([]byte(imps.String), &rec.Improvements)
	}
	return &rec, nil
}

// AppendAlignment stores alignment suggestions alongside the impact report
// that accompanied them.
func (s *Store) AppendAlignment(suggestions []alignment.Suggestion, report *impact.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if suggestions == nil {
		suggestions = []alignment.Suggestion{}
	}
	sugs, err := json.Marshal(suggestions)
	if err != nil {
		return fmt.Errorf("failed to encode suggestions: %w", err)
	}
	var analysis any
	if report != nil {
		encoded, err := json.Marshal(report)
		if err != nil {
			return fmt.Errorf("failed to encode impact report: %w", err)
		}
		analysis = string(encoded)
	}

	_, err = s.db.Exec(
		"INSERT INTO alignments (suggestions, impact_analysis) VALUES (?, ?)",
		string(sugs), analysis,
	)
	if err != nil {
		return fmt.Errorf("failed to store alignment: %w", err)
	}
	return nil
}

// LatestSuggestions returns the most recently stored suggestions, empty when
// none exist.
func (s *Store) LatestSuggestions() ([]alignment.Suggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw string
	err := s.db.QueryRow("SELECT suggestions FROM alignments ORDER BY id DESC LIMIT 1").Scan(&raw)
	if err == sql.ErrNoRows {
		return []alignment.Suggestion{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load suggestions: %w", err)
	}

	var out []alignment.Suggestion
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		logging.Store("stored suggestions are unreadable: %v", err)
		return []alignment.Suggestion{}, nil
	}
	return out, nil
}

// LatestImpact returns the most recent impact report, or nil when none has
// been stored.
func (s *Store) LatestImpact() (*impact.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw sql.NullString
	err := s.db.QueryRow("SELECT impact_analysis FROM alignments ORDER BY id DESC LIMIT 1").Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load impact report: %w", err)
	}
	if !raw.Valid {
		return nil, nil
	}

	var report impact.Report
	if err := json.Unmarshal([]byte(raw.String), &report); err != nil {
		logging.Store("stored impact report is unreadable: %v", err)
		return nil, nil
	}
	return &report, nil
}

// VersionInfo identifies one stored version without its content.
type VersionInfo struct {
	ID        int64
	CreatedAt time.Time
}

// Versions lists stored versions, newest first.
func (s *Store) Versions(limit int) ([]VersionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query("SELECT id, created_at FROM versions ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	defer rows.Close()

	var out []VersionInfo
	for rows.Next() {
		var v VersionInfo
		if err := rows.Scan(&v.ID, &v.CreatedAt); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Version returns the snapshot stored under a specific version id.
func (s *Store) Version(id int64) (*snapshot.ProjectSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var content string
	err := s.db.QueryRow("SELECT content FROM versions WHERE id = ?", id).Scan(&content)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("version %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load version %d: %w", id, err)
	}

	var snap snapshot.ProjectSnapshot
	if err := json.Unmarshal([]byte(content), &snap); err != nil {
		return nil, fmt.Errorf("version %d is unreadable: %w", id, err)
	}
	return &snap, nil
}

// Stats reports row counts per table.
func (s *Store) Stats() (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make(map[string]int64)
	for _, table := range []string{"projects", "versions", "alignments"} {
		var count int64
		if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		stats[table] = count
	}
	return stats, nil
}
