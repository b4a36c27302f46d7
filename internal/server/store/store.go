// Package store persists a history record per completed analysis in
// PostgreSQL. Writes are best effort: a failed insert is logged by the
// caller and never fails the request.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/textlens/textlens/pkg/postgres"
)

// Record is a single row of analysis history.
type Record struct {
	ID             int64     `json:"id"`
	Kind           string    `json:"kind"`
	TextSHA        string    `json:"text_sha"`
	TextChars      int       `json:"text_chars"`
	TokenCount     int       `json:"token_count"`
	Score          *float64  `json:"score,omitempty"`
	Label          *string   `json:"label,omitempty"`
	PercentOverlap *float64  `json:"percent_overlap,omitempty"`
	LatencyMs      int64     `json:"latency_ms"`
	CreatedAt      time.Time `json:"created_at"`
}

// Store wraps the analyses table.
type Store struct {
	client *postgres.Client
}

func New(client *postgres.Client) *Store {
	return &Store{client: client}
}

// EnsureSchema creates the analyses table when it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS analyses (
	id              BIGSERIAL PRIMARY KEY,
	kind            TEXT        NOT NULL,
	text_sha        TEXT        NOT NULL,
	text_chars      INTEGER     NOT NULL,
	token_count     INTEGER     NOT NULL,
	score           DOUBLE PRECISION,
	label           TEXT,
	percent_overlap DOUBLE PRECISION,
	latency_ms      BIGINT      NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS analyses_created_at_idx ON analyses (created_at DESC);`
	if _, err := s.client.DB.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("creating analyses schema: %w", err)
	}
	return nil
}

// Insert appends one history record.
func (s *Store) Insert(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO analyses (kind, text_sha, text_chars, token_count, score, label, percent_overlap, latency_ms)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.client.DB.ExecContext(ctx, query,
		rec.Kind, rec.TextSHA, rec.TextChars, rec.TokenCount,
		rec.Score, rec.Label, rec.PercentOverlap, rec.LatencyMs,
	)
	if err != nil {
		return fmt.Errorf("inserting analysis record: %w", err)
	}
	return nil
}

// Recent returns the most recent history records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
SELECT id, kind, text_sha, text_chars, token_count, score, label, percent_overlap, latency_ms, created_at
FROM analyses
ORDER BY created_at DESC
LIMIT $1`
	rows, err := s.client.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying analysis history: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0, limit)
	for rows.Next() {
		var rec Record
		var score, percentOverlap sql.NullFloat64
		var label sql.NullString
		if err := rows.Scan(
			&rec.ID, &rec.Kind, &rec.TextSHA, &rec.TextChars, &rec.TokenCount,
			&score, &label, &percentOverlap, &rec.LatencyMs, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning analysis record: %w", err)
		}
		if score.Valid {
			rec.Score = &score.Float64
		}
		if label.Valid {
			rec.Label = &label.String
		}
		if percentOverlap.Valid {
			rec.PercentOverlap = &percentOverlap.Float64
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating analysis records: %w", err)
	}
	return records, nil
}
