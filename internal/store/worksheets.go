package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/mathsheet/internal/worksheet"
)

// ErrNotFound is returned when a worksheet id does not exist.
var ErrNotFound = errors.New("worksheet not found")

// WorksheetSummary is one row of the history listing.
type WorksheetSummary struct {
	ID        string
	CreatedAt time.Time
	Seed      uint64
	Questions int
}

// SaveWorksheet stores a generated worksheet. The full worksheet is kept
// as its JSON payload so GetWorksheet round-trips exactly.
func (s *Store) SaveWorksheet(ctx context.Context, ws *worksheet.Worksheet) error {
	payload, err := json.Marshal(ws)
	if err != nil {
		return fmt.Errorf("encode worksheet: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO worksheets (id, created_at, seed, questions, payload)
		VALUES (?, ?, ?, ?, ?)`,
		ws.ID, ws.CreatedAt.UTC().Format(time.RFC3339Nano), int64(ws.Seed), len(ws.Questions), payload)
	if err != nil {
		return fmt.Errorf("insert worksheet %s: %w", ws.ID, err)
	}
	return nil
}

// GetWorksheet loads a worksheet by id.
func (s *Store) GetWorksheet(ctx context.Context, id string) (*worksheet.Worksheet, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM worksheets WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load worksheet %s: %w", id, err)
	}
	var ws worksheet.Worksheet
	if err := json.Unmarshal(payload, &ws); err != nil {
		return nil, fmt.Errorf("decode worksheet %s: %w", id, err)
	}
	return &ws, nil
}

// ListWorksheets returns history summaries, newest first.
func (s *Store) ListWorksheets(ctx context.Context, limit int) ([]WorksheetSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, seed, questions
		FROM worksheets ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list worksheets: %w", err)
	}
	defer rows.Close()

	var out []WorksheetSummary
	for rows.Next() {
		var (
			sum     WorksheetSummary
			created string
			seed    int64
		)
		if err := rows.Scan(&sum.ID, &created, &seed, &sum.Questions); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("worksheet %s: bad created_at: %w", sum.ID, err)
		}
		sum.CreatedAt = t
		sum.Seed = uint64(seed)
		out = append(out, sum)
	}
	return out, rows.Err()
}
