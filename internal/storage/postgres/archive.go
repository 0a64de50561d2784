package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"nytviewer/internal/domain"
)

// Archive persists every fetched batch: the articles themselves, the list
// positions they were fetched at, and a per-list fetch log.
type Archive struct {
	articles  *ArticleStore
	entries   *ListEntryStore
	fetchLog  *FetchLogStore
	txManager *TransactionManager
	logger    *slog.Logger
}

func NewArchive(db *sqlx.DB, logger *slog.Logger) *Archive {
	return &Archive{
		articles:  NewArticleStore(db),
		entries:   NewListEntryStore(db),
		fetchLog:  NewFetchLogStore(db),
		txManager: NewTransactionManager(db),
		logger:    logger.With("component", "archive"),
	}
}

func (a *Archive) Save(ctx context.Context, listID string, offset int, articles []domain.Article) error {
	stats, err := a.save(ctx, listID, offset, articles)
	if err != nil {
		return err
	}

	a.logger.Info("batch archived",
		"list", stats.ListID,
		"offset", offset,
		"new", stats.New,
		"updated", stats.Updated,
	)
	return nil
}

func (a *Archive) save(ctx context.Context, listID string, offset int, articles []domain.Article) (domain.ArchiveStats, error) {
	stats := domain.ArchiveStats{ListID: listID}

	err := a.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		uris := make([]string, 0, len(articles))
		for _, article := range articles {
			uris = append(uris, article.URI)
		}

		seen, err := a.articles.GetLastSeen(txCtx, uris)
		if err != nil {
			return fmt.Errorf("get last seen: %w", err)
		}

		for _, article := range articles {
			if err := a.articles.Upsert(txCtx, article); err != nil {
				return fmt.Errorf("upsert article %s: %w", article.URI, err)
			}
			if _, ok := seen[article.URI]; ok {
				stats.Updated++
			} else {
				stats.New++
			}
		}

		if err := a.entries.Store(txCtx, listID, offset, uris); err != nil {
			return fmt.Errorf("store list entries: %w", err)
		}

		if err := a.fetchLog.Record(txCtx, listID, len(articles), time.Now()); err != nil {
			return fmt.Errorf("record fetch: %w", err)
		}

		return nil
	})

	return stats, err
}

// History returns the fetch log of listID and the archived list order.
func (a *Archive) History(ctx context.Context, listID string) (*domain.ListHistory, error) {
	log, err := a.fetchLog.Get(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("get fetch log: %w", err)
	}

	uris, err := a.entries.GetURIs(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("get list entries: %w", err)
	}
	if uris == nil {
		uris = []string{}
	}

	return &domain.ListHistory{FetchLog: *log, URIs: uris}, nil
}
