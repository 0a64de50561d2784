package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"nytviewer/internal/domain"
)

type FetchLogStore struct {
	db *sqlx.DB
}

func NewFetchLogStore(db *sqlx.DB) *FetchLogStore {
	return &FetchLogStore{db: db}
}

// Get returns the log of listID, or an empty one for a list never archived.
func (s *FetchLogStore) Get(ctx context.Context, listID string) (*domain.FetchLog, error) {
	var log domain.FetchLog
	query := `
		SELECT id, list_id, last_fetched_at, last_batch_size, total_fetched
		FROM fetch_log
		WHERE list_id = $1`

	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &log, query, listID)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.FetchLog{ListID: listID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// Record adds one fetched batch of size articles to the log of listID.
func (s *FetchLogStore) Record(ctx context.Context, listID string, size int, at time.Time) error {
	query := `
		INSERT INTO fetch_log (list_id, last_fetched_at, last_batch_size, total_fetched)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (list_id) DO UPDATE SET
			last_fetched_at = EXCLUDED.last_fetched_at,
			last_batch_size = EXCLUDED.last_batch_size,
			total_fetched = fetch_log.total_fetched + EXCLUDED.total_fetched`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, listID, at, size)
	return err
}
