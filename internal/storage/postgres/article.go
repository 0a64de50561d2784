package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"nytviewer/internal/domain"
)

type ArticleStore struct {
	db *sqlx.DB
}

func NewArticleStore(db *sqlx.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

type mediaDoc struct {
	Media      []domain.MediaItem  `json:"media,omitempty"`
	MultiMedia []domain.MultiMedia `json:"multimedia,omitempty"`
}

// Upsert inserts or refreshes an article by uri.
func (s *ArticleStore) Upsert(ctx context.Context, article domain.Article) error {
	media, err := json.Marshal(mediaDoc{Media: article.Media, MultiMedia: article.MultiMedia})
	if err != nil {
		return fmt.Errorf("marshal media: %w", err)
	}

	query := `
		INSERT INTO articles (
			uri, url, section, subsection, title, byline, abstract,
			thumbnail_url, image_url, media, published_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
		ON CONFLICT (uri) DO UPDATE SET
			url = EXCLUDED.url,
			section = EXCLUDED.section,
			subsection = EXCLUDED.subsection,
			title = EXCLUDED.title,
			byline = EXCLUDED.byline,
			abstract = EXCLUDED.abstract,
			thumbnail_url = EXCLUDED.thumbnail_url,
			image_url = EXCLUDED.image_url,
			media = EXCLUDED.media,
			published_at = EXCLUDED.published_at,
			last_seen_at = NOW()`

	_, err = GetExecutor(ctx, s.db).ExecContext(ctx, query,
		article.URI,
		article.URL,
		article.Section,
		article.Subsection,
		article.Title,
		article.Byline,
		article.Abstract,
		domain.SmallImageURL(article),
		domain.LargeImageURL(article),
		string(media),
		sql.NullTime{Time: article.PublishedDate, Valid: !article.PublishedDate.IsZero()},
	)
	return err
}

// GetLastSeen returns the last time each of the known uris was archived.
func (s *ArticleStore) GetLastSeen(ctx context.Context, uris []string) (map[string]time.Time, error) {
	if len(uris) == 0 {
		return make(map[string]time.Time), nil
	}

	query := `SELECT uri, last_seen_at FROM articles WHERE uri = ANY($1)`

	rows, err := GetExecutor(ctx, s.db).QueryxContext(ctx, query, pq.Array(uris))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]time.Time)
	for rows.Next() {
		var uri string
		var lastSeen time.Time
		if err := rows.Scan(&uri, &lastSeen); err != nil {
			return nil, err
		}
		result[uri] = lastSeen
	}

	return result, rows.Err()
}
