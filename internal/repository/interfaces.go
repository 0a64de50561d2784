package repository

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"nytviewer/internal/domain"
)

// Transport is the content API the repository reads from.
type Transport interface {
	GetSectionList(ctx context.Context) ([]domain.Section, error)
	GetSectionArticles(ctx context.Context, section string, limit, offset int) ([]domain.Article, error)
	GetPopularEmailed(ctx context.Context, period domain.Period) ([]domain.Article, error)
	GetPopularShared(ctx context.Context, period domain.Period) ([]domain.Article, error)
	GetPopularViewed(ctx context.Context, period domain.Period) ([]domain.Article, error)
}

// ArticleArchive keeps fetched batches. offset is the position of the first
// article within the list; zero means the list was fetched afresh.
type ArticleArchive interface {
	Save(ctx context.Context, listID string, offset int, articles []domain.Article) error
}

type Publisher interface {
	Publish(ctx context.Context, listID string, articles []domain.Article) error
	Close() error
}
