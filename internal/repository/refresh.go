package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RefreshEvent is one audit record of a fetch cycle, successful or not.
type RefreshEvent struct {
	At        time.Time `json:"at"`
	Trigger   string    `json:"trigger"`
	ItemCount int       `json:"itemCount"`
	Sections  int       `json:"sections"`
	Error     string    `json:"error,omitempty"`
}

// RefreshRepository records fetch cycles so "when did the menu last update"
// support questions can be answered without spreadsheet access.
type RefreshRepository interface {
	Record(ctx context.Context, event RefreshEvent) error
	Recent(ctx context.Context, limit int) ([]RefreshEvent, error)
}

type refreshRepository struct {
	db *pgxpool.Pool
}

func NewRefreshRepository(ctx context.Context, db *pgxpool.Pool) (RefreshRepository, error) {
	r := &refreshRepository{db: db}
	if err := r.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *refreshRepository) ensureSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS menu_refreshes (
		id         BIGSERIAL PRIMARY KEY,
		at         TIMESTAMPTZ NOT NULL,
		triggered_by TEXT NOT NULL,
		item_count INT NOT NULL,
		sections   INT NOT NULL,
		error      TEXT NOT NULL DEFAULT ''
	)`
	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create menu_refreshes table: %w", err)
	}
	return nil
}

func (r *refreshRepository) Record(ctx context.Context, event RefreshEvent) error {
	query := `
	INSERT INTO menu_refreshes (at, triggered_by, item_count, sections, error)
	VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, query, event.At, event.Trigger, event.ItemCount, event.Sections, event.Error)
	if err != nil {
		return fmt.Errorf("failed to record refresh event: %w", err)
	}
	return nil
}

func (r *refreshRepository) Recent(ctx context.Context, limit int) ([]RefreshEvent, error) {
	query := `
	SELECT at, triggered_by, item_count, sections, error
	FROM menu_refreshes
	ORDER BY at DESC
	LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list refresh events: %w", err)
	}
	defer rows.Close()

	events := make([]RefreshEvent, 0, limit)
	for rows.Next() {
		var event RefreshEvent
		if err := rows.Scan(&event.At, &event.Trigger, &event.ItemCount, &event.Sections, &event.Error); err != nil {
			return nil, fmt.Errorf("failed to scan refresh event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read refresh events: %w", err)
	}

	return events, nil
}
