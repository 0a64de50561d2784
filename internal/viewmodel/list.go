package viewmodel

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"nytviewer/internal/domain"
	"nytviewer/internal/observable"
	"nytviewer/internal/repository"
)

const listDateLayout = "Jan 02, 2006"

type SectionData struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// BriefDisplay is an article brief ready for display.
type BriefDisplay struct {
	URI          string  `json:"uri"`
	Date         string  `json:"date"`
	Title        string  `json:"title"`
	Byline       string  `json:"byline"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
}

type ListState struct {
	Sections []SectionData  `json:"sections"`
	Articles []BriefDisplay `json:"articles"`
	List     domain.ListDef `json:"-"`
	ListID   string         `json:"list_id"`
	Title    string         `json:"title"`
}

// ListViewModel projects repository state for the article list screen and
// forwards its intents.
type ListViewModel struct {
	repo   Repository
	nav    *Navigator
	theme  *ThemeProvider
	logger *slog.Logger

	state      *observable.Value[ListState]
	refreshing *observable.Value[bool]

	mu            sync.Mutex
	inFlight      int
	loadRequested bool

	wg sync.WaitGroup
}

func NewListViewModel(repo Repository, nav *Navigator, theme *ThemeProvider, logger *slog.Logger) *ListViewModel {
	return &ListViewModel{
		repo:       repo,
		nav:        nav,
		theme:      theme,
		logger:     logger.With("component", "list_viewmodel"),
		state:      observable.NewValue(projectList(repo.State().Get())),
		refreshing: observable.NewValue(false),
	}
}

// Run mirrors repository state until ctx is done.
func (vm *ListViewModel) Run(ctx context.Context) {
	for st := range vm.repo.State().Subscribe(ctx) {
		vm.mu.Lock()
		vm.state.Set(projectList(st))
		vm.loadRequested = false
		vm.mu.Unlock()
	}
}

func (vm *ListViewModel) State() *observable.Value[ListState] {
	return vm.state
}

// Errors passes the repository error through.
func (vm *ListViewModel) Errors() *observable.Value[string] {
	return vm.repo.Errors()
}

// Refreshing is true while a refresh, load-more or list switch runs.
func (vm *ListViewModel) Refreshing() *observable.Value[bool] {
	return vm.refreshing
}

func (vm *ListViewModel) RefreshSections() {
	vm.dispatch(repository.RefreshSections{})
}

func (vm *ListViewModel) RefreshArticles() {
	vm.dispatch(repository.RefreshArticles{})
}

func (vm *ListViewModel) LoadMoreArticles() {
	vm.dispatch(repository.LoadMoreArticles{})
}

func (vm *ListViewModel) SelectList(list domain.ListDef) {
	vm.dispatch(repository.SelectList{List: list})
}

// SelectBrief opens the detail screen for brief.
func (vm *ListViewModel) SelectBrief(brief BriefDisplay) {
	vm.nav.Handle(ArticleSelected{URI: brief.URI, Title: brief.Title})
}

func (vm *ListViewModel) SetTheme(theme ColorTheme) {
	vm.theme.Set(theme)
}

// ScrollChange reports the last visible index. Crossing 90% of the list
// requests the next page once per repository state; it reports whether it did.
func (vm *ListViewModel) ScrollChange(index int) bool {
	vm.mu.Lock()
	count := len(vm.state.Get().Articles)
	if vm.loadRequested || count == 0 || index*10 < count*9 {
		vm.mu.Unlock()
		return false
	}
	vm.loadRequested = true
	vm.mu.Unlock()

	vm.LoadMoreArticles()
	return true
}

// Wait blocks until every dispatched action has finished.
func (vm *ListViewModel) Wait() {
	vm.wg.Wait()
}

func (vm *ListViewModel) dispatch(action repository.Action) {
	vm.setRefreshing(1)
	vm.wg.Add(1)
	go func() {
		defer vm.wg.Done()
		defer vm.setRefreshing(-1)

		if err := vm.repo.Execute(context.Background(), action); err != nil {
			vm.logger.Debug("action failed", "error", err)
		}
	}()
}

func (vm *ListViewModel) setRefreshing(delta int) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.inFlight += delta
	vm.refreshing.Set(vm.inFlight > 0)
}

func projectList(st domain.RepositoryState) ListState {
	sections := make([]SectionData, 0, len(st.Sections))
	for _, s := range st.Sections {
		sections = append(sections, SectionData{
			ID:       s.ID,
			Label:    s.Label,
			Selected: st.List.Kind == domain.KindSection && st.List.Section.ID == s.ID,
		})
	}

	articles := make([]BriefDisplay, 0, len(st.Articles))
	for _, a := range st.Articles {
		articles = append(articles, BriefDisplay{
			URI:          a.URI,
			Date:         formatDate(a.PublishedDate, listDateLayout),
			Title:        a.Title,
			Byline:       a.Byline,
			ThumbnailURL: a.ThumbnailURL,
		})
	}

	return ListState{
		Sections: sections,
		Articles: articles,
		List:     st.List,
		ListID:   st.List.ID(),
		Title:    st.List.Title(),
	}
}

func formatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layout)
}
