package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

// ListEntryStore keeps the ordered membership of archived lists.
type ListEntryStore struct {
	db *sqlx.DB
}

func NewListEntryStore(db *sqlx.DB) *ListEntryStore {
	return &ListEntryStore{db: db}
}

// Store writes uris at positions offset, offset+1, ... of listID. An offset
// of zero replaces the whole list.
func (s *ListEntryStore) Store(ctx context.Context, listID string, offset int, uris []string) error {
	exec := GetExecutor(ctx, s.db)

	if offset == 0 {
		if _, err := exec.ExecContext(ctx, "DELETE FROM list_entries WHERE list_id = $1", listID); err != nil {
			return err
		}
	}

	if len(uris) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO list_entries (list_id, position, uri) VALUES ")
	valueArgs := make([]interface{}, 0, len(uris)*2+1)
	valueArgs = append(valueArgs, listID)

	for i, uri := range uris {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("($1, $")
		sb.WriteString(strconv.Itoa(i*2 + 2))
		sb.WriteString(", $")
		sb.WriteString(strconv.Itoa(i*2 + 3))
		sb.WriteString(")")
		valueArgs = append(valueArgs, offset+i, uri)
	}
	sb.WriteString(" ON CONFLICT (list_id, position) DO UPDATE SET uri = EXCLUDED.uri")

	_, err := exec.ExecContext(ctx, sb.String(), valueArgs...)
	return err
}

// GetURIs returns the uris of listID in list order.
func (s *ListEntryStore) GetURIs(ctx context.Context, listID string) ([]string, error) {
	query := `SELECT uri FROM list_entries WHERE list_id = $1 ORDER BY position`

	var uris []string
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &uris, query, listID)
	return uris, err
}
