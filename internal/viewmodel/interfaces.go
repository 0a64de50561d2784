package viewmodel

import (
	"context"

	"nytviewer/internal/domain"
	"nytviewer/internal/observable"
	"nytviewer/internal/repository"
)

// Repository is the part of the article repository the view-models use.
type Repository interface {
	Execute(ctx context.Context, action repository.Action) error
	State() *observable.Value[domain.RepositoryState]
	Errors() *observable.Value[string]
	GetArticleDetail(ctx context.Context, uri string) (domain.ArticleDetail, bool)
}
