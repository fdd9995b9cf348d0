// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists analysis results and voice transcripts across
// sessions in a local SQLite database.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/antononils/strava-assistant-tui/internal/model"
)

// ErrNotFound indicates the requested row does not exist.
var ErrNotFound = errors.New("not found")

const schema = `
CREATE TABLE IF NOT EXISTS analyses (
	route_id   TEXT PRIMARY KEY,
	name       TEXT NOT NULL DEFAULT '',
	analysis   TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS transcripts (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	text       TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
`

// Store wraps the local SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite handles one writer; a larger pool just trades errors for locks.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// =============================================================================
// ANALYSES
// =============================================================================

// Analysis is one stored analysis row.
type Analysis struct {
	RouteID   string
	Name      string
	Analysis  string
	CreatedAt time.Time
}

// SaveAnalysis upserts the analysis for a route.
func (s *Store) SaveAnalysis(ctx context.Context, routeID, name, analysis string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO analyses (route_id, name, analysis, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(route_id) DO UPDATE SET
			name = excluded.name,
			analysis = excluded.analysis,
			created_at = excluded.created_at`,
		routeID, name, analysis, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// GetAnalysis returns the stored analysis for routeID.
func (s *Store) GetAnalysis(ctx context.Context, routeID string) (*Analysis, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT route_id, name, analysis, created_at
		FROM analyses WHERE route_id = ?`, routeID)

	var a Analysis
	if err := row.Scan(&a.RouteID, &a.Name, &a.Analysis, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load analysis: %w", err)
	}
	return &a, nil
}

// ListAnalyses returns all stored analyses, newest first.
func (s *Store) ListAnalyses(ctx context.Context) ([]*Analysis, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT route_id, name, analysis, created_at
		FROM analyses ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var out []*Analysis
	for rows.Next() {
		var a Analysis
		if err := rows.Scan(&a.RouteID, &a.Name, &a.Analysis, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// SeedRegistry loads analyses from previous sessions into the registry as
// placeholder entries. When the backend later returns the same route, the
// registry carries the cached analysis over, so its card renders analyzed
// immediately.
func (s *Store) SeedRegistry(ctx context.Context, reg *model.Registry) error {
	analyses, err := s.ListAnalyses(ctx)
	if err != nil {
		return err
	}
	for _, a := range analyses {
		reg.Register(&model.Route{
			RouteID:  a.RouteID,
			Name:     a.Name,
			Analyzed: true,
			Analysis: a.Analysis,
		})
	}
	return nil
}

// =============================================================================
// TRANSCRIPTS
// =============================================================================

// Transcript is one stored voice transcription.
type Transcript struct {
	ID        int64
	Text      string
	CreatedAt time.Time
}

// SaveTranscript records a voice transcription.
func (s *Store) SaveTranscript(ctx context.Context, text string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transcripts (text, created_at) VALUES (?, ?)`,
		text, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save transcript: %w", err)
	}
	return nil
}

// RecentTranscripts returns up to limit transcripts, newest first.
func (s *Store) RecentTranscripts(ctx context.Context, limit int) ([]*Transcript, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, created_at
		FROM transcripts ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transcripts: %w", err)
	}
	defer rows.Close()

	var out []*Transcript
	for rows.Next() {
		var t Transcript
		if err := rows.Scan(&t.ID, &t.Text, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transcript: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}
