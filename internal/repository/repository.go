package repository

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"nytviewer/internal/cache"
	"nytviewer/internal/domain"
	"nytviewer/internal/observable"
)

const (
	// PageSize is the section pagination unit. A list whose length is not a
	// multiple of it has reached its end.
	PageSize = 100
	CacheTTL = time.Hour

	popularPeriod = domain.PeriodMonth
)

// Option configures a Repository.
type Option func(*options)

type options struct {
	clock     func() time.Time
	archive   ArticleArchive
	publisher Publisher
}

// WithClock overrides the time source used for cache expiry.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithArchive stores every fetched batch in archive.
func WithArchive(archive ArticleArchive) Option {
	return func(o *options) {
		o.archive = archive
	}
}

// WithPublisher announces every fetched batch through publisher.
func WithPublisher(publisher Publisher) Option {
	return func(o *options) {
		o.publisher = publisher
	}
}

// Repository owns the article state, the per-list cache and the article index.
// Actions may run concurrently; state and error writes are linearized by their
// observable containers.
type Repository struct {
	transport Transport
	archive   ArticleArchive
	publisher Publisher
	logger    *slog.Logger

	cache *cache.Memory[[]domain.Article]

	indexMu sync.RWMutex
	index   map[string]domain.Article

	state *observable.Value[domain.RepositoryState]
	errs  *observable.Value[string]

	wg sync.WaitGroup
}

func New(transport Transport, logger *slog.Logger, opts ...Option) *Repository {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return &Repository{
		transport: transport,
		archive:   o.archive,
		publisher: o.publisher,
		logger:    logger.With("component", "repository"),
		cache:     cache.NewMemory[[]domain.Article](CacheTTL, cache.WithClock(o.clock)),
		index:     make(map[string]domain.Article),
		state:     observable.NewValue(domain.InitialState()),
		errs:      observable.NewValue(""),
	}
}

// Start loads the initial articles and sections in the background.
func (r *Repository) Start() {
	r.Submit(RefreshArticles{})
	r.Submit(RefreshSections{})
}

// State is the repository state stream.
func (r *Repository) State() *observable.Value[domain.RepositoryState] {
	return r.state
}

// Errors carries the message of the last failed fetch, or "" when the most
// recent action has not failed.
func (r *Repository) Errors() *observable.Value[string] {
	return r.errs
}

// Submit runs action on its own goroutine and returns immediately.
func (r *Repository) Submit(action Action) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		_ = r.Execute(context.Background(), action)
	}()
}

// Wait blocks until every submitted action has finished.
func (r *Repository) Wait() {
	r.wg.Wait()
}

// Execute runs action to completion. A failed fetch is published on the error
// stream and returned.
func (r *Repository) Execute(ctx context.Context, action Action) error {
	if action == nil {
		return fmt.Errorf("unhandled action: %v", action)
	}

	logger := r.logger.With(
		"action", action.name(),
		"action_id", uuid.NewString(),
	)
	start := time.Now()

	r.errs.Set("")

	var err error
	switch a := action.(type) {
	case RefreshSections:
		err = r.refreshSections(ctx)
	case RefreshArticles:
		err = r.refreshArticles(ctx, logger)
	case LoadMoreArticles:
		err = r.loadMoreArticles(ctx, logger)
	case SelectList:
		err = r.selectList(ctx, a.List, logger)
	default:
		return fmt.Errorf("unhandled action: %T", action)
	}

	if err != nil {
		msg := domain.ErrorMessage(err)
		r.errs.Set(msg)
		logger.Error("action failed",
			"error", msg,
			"duration", time.Since(start),
		)
		return fmt.Errorf("%s: %w", action.name(), err)
	}

	logger.Debug("action completed", "duration", time.Since(start))
	return nil
}

// GetArticleDetail looks uri up in the article index. It never fetches.
func (r *Repository) GetArticleDetail(_ context.Context, uri string) (domain.ArticleDetail, bool) {
	r.indexMu.RLock()
	defer r.indexMu.RUnlock()

	article, ok := r.index[uri]
	if !ok {
		return domain.ArticleDetail{}, false
	}
	return article.Detail(), true
}

func (r *Repository) refreshSections(ctx context.Context) error {
	sections, err := r.transport.GetSectionList(ctx)
	if err != nil {
		return err
	}

	refs := make([]domain.SectionRef, 0, len(sections))
	for _, s := range sections {
		refs = append(refs, domain.SectionRef{ID: s.Section, Label: s.DisplayName})
	}

	r.state.Update(func(s domain.RepositoryState) domain.RepositoryState {
		s.Sections = refs
		return s
	})
	return nil
}

func (r *Repository) refreshArticles(ctx context.Context, logger *slog.Logger) error {
	list := r.state.Get().List

	articles, err := r.fetchList(ctx, list, 0)
	if err != nil {
		return err
	}

	r.cache.Set(list.ID(), articles)
	r.mergeIndex(articles)

	briefs := domain.Briefs(articles)
	r.state.Update(func(s domain.RepositoryState) domain.RepositoryState {
		// the user moved on while the fetch was in flight
		if s.List != list {
			return s
		}
		s.Articles = briefs
		return s
	})

	r.sink(ctx, logger, list, 0, articles)
	return nil
}

func (r *Repository) selectList(ctx context.Context, target domain.ListDef, logger *slog.Logger) error {
	if cached, ok := r.cache.Fresh(target.ID()); ok {
		logger.Debug("cache hit", "list", target.String())
		briefs := domain.Briefs(cached)
		r.state.Update(func(s domain.RepositoryState) domain.RepositoryState {
			s.List = target
			s.Articles = briefs
			return s
		})
		return nil
	}

	articles, err := r.fetchList(ctx, target, 0)
	if err != nil {
		return err
	}

	r.cache.Set(target.ID(), articles)
	r.mergeIndex(articles)

	briefs := domain.Briefs(articles)
	r.state.Update(func(s domain.RepositoryState) domain.RepositoryState {
		s.List = target
		s.Articles = briefs
		return s
	})

	r.sink(ctx, logger, target, 0, articles)
	return nil
}

func (r *Repository) loadMoreArticles(ctx context.Context, logger *slog.Logger) error {
	current := r.state.Get()
	list := current.List
	if !list.CanLoadMore() {
		return nil
	}

	count := len(current.Articles)
	if count%PageSize != 0 {
		logger.Debug("end of list reached", "list", list.String(), "count", count)
		return nil
	}

	page, err := r.fetchList(ctx, list, count)
	if err != nil {
		return err
	}

	merged := r.cache.Update(list.ID(), func(cached []domain.Article, present bool) []domain.Article {
		if !present {
			return page
		}
		out := make([]domain.Article, 0, len(cached)+len(page))
		out = append(out, cached...)
		return append(out, page...)
	})
	r.mergeIndex(page)

	briefs := domain.Briefs(merged)
	r.state.Update(func(s domain.RepositoryState) domain.RepositoryState {
		if s.List != list {
			return s
		}
		s.Articles = briefs
		return s
	})

	r.sink(ctx, logger, list, count, page)
	return nil
}

func (r *Repository) fetchList(ctx context.Context, list domain.ListDef, offset int) ([]domain.Article, error) {
	switch list.Kind {
	case domain.KindPopularEmailed:
		return r.transport.GetPopularEmailed(ctx, popularPeriod)
	case domain.KindPopularShared:
		return r.transport.GetPopularShared(ctx, popularPeriod)
	case domain.KindPopularViewed:
		return r.transport.GetPopularViewed(ctx, popularPeriod)
	case domain.KindSection:
		return r.transport.GetSectionArticles(ctx, list.Section.ID, PageSize, offset)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownList, list)
	}
}

func (r *Repository) mergeIndex(articles []domain.Article) {
	r.indexMu.Lock()
	defer r.indexMu.Unlock()

	for _, a := range articles {
		r.index[a.URI] = a
	}
}

// sink hands a fetched batch to the archive and publisher. Their failures are
// logged only.
func (r *Repository) sink(ctx context.Context, logger *slog.Logger, list domain.ListDef, offset int, articles []domain.Article) {
	if len(articles) == 0 {
		return
	}

	if r.archive != nil {
		if err := r.archive.Save(ctx, list.ID(), offset, articles); err != nil {
			logger.Warn("failed to archive articles",
				"list", list.String(),
				"error", err,
			)
		}
	}

	if r.publisher != nil {
		if err := r.publisher.Publish(ctx, list.ID(), articles); err != nil {
			logger.Warn("failed to publish articles",
				"list", list.String(),
				"error", err,
			)
		}
	}
}
