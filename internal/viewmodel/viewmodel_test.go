package viewmodel

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	"nytviewer/internal/domain"
	"nytviewer/internal/repository"
	"nytviewer/internal/repository/mocks"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	published = time.Date(2024, 1, 15, 15, 4, 0, 0, time.UTC)
	world     = domain.SectionList(domain.SectionRef{ID: "world", Label: "World"})
)

func makeArticles(prefix string, from, n int) []domain.Article {
	out := make([]domain.Article, 0, n)
	for i := from; i < from+n; i++ {
		out = append(out, domain.Article{
			URI:           fmt.Sprintf("%s%d", prefix, i),
			URL:           fmt.Sprintf("https://example.com/%s%d", prefix, i),
			PublishedDate: published,
			Title:         fmt.Sprintf("Title %d", i),
			Byline:        "By Someone",
			Abstract:      "Abstract",
		})
	}
	return out
}

type ViewModelTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	transport *mocks.MockTransport

	repo  *repository.Repository
	nav   *Navigator
	theme *ThemeProvider
	vm    *ListViewModel
	ctx   context.Context
}

func (s *ViewModelTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.transport = mocks.NewMockTransport(s.ctrl)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.repo = repository.New(s.transport, logger)
	s.nav = NewNavigator(logger)
	s.theme = NewThemeProvider(ThemeSystem)
	s.vm = NewListViewModel(s.repo, s.nav, s.theme, logger)
	s.ctx = context.Background()
}

func (s *ViewModelTestSuite) TearDownTest() {
	s.vm.Wait()
	s.repo.Wait()
	s.ctrl.Finish()
}

func TestViewModelTestSuite(t *testing.T) {
	suite.Run(t, new(ViewModelTestSuite))
}

// run starts the list view-model and returns a func that stops it.
func (s *ViewModelTestSuite) run() func() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.vm.Run(ctx)
	}()
	return func() {
		cancel()
		<-done
	}
}

func (s *ViewModelTestSuite) TestListState_Projection() {
	stop := s.run()
	defer stop()

	s.transport.EXPECT().GetSectionList(gomock.Any()).Return([]domain.Section{
		{Section: "arts", DisplayName: "Arts"},
		{Section: "world", DisplayName: "World"},
	}, nil)
	s.transport.EXPECT().GetSectionArticles(gomock.Any(), "world", repository.PageSize, 0).Return(makeArticles("w", 0, 2), nil)

	s.Require().NoError(s.repo.Execute(s.ctx, repository.RefreshSections{}))
	s.Require().NoError(s.repo.Execute(s.ctx, repository.SelectList{List: world}))

	s.Eventually(func() bool {
		return len(s.vm.State().Get().Articles) == 2
	}, time.Second, 5*time.Millisecond)

	state := s.vm.State().Get()
	s.Equal("World", state.Title)
	s.Equal("world", state.ListID)
	s.Equal(world, state.List)
	s.Equal([]SectionData{
		{ID: "arts", Label: "Arts"},
		{ID: "world", Label: "World", Selected: true},
	}, state.Sections)
	s.Equal(BriefDisplay{
		URI:    "w0",
		Date:   "Jan 15, 2024",
		Title:  "Title 0",
		Byline: "By Someone",
	}, state.Articles[0])
}

func (s *ViewModelTestSuite) TestInitialState() {
	state := s.vm.State().Get()

	s.Equal("Popular Viewed", state.Title)
	s.Empty(state.Articles)
	s.Empty(state.Sections)
	s.False(s.vm.Refreshing().Get())
}

func (s *ViewModelTestSuite) TestScrollChange_FiresOnceAndRearms() {
	s.transport.EXPECT().GetSectionArticles(gomock.Any(), "world", repository.PageSize, 0).Return(makeArticles("w", 0, 100), nil)
	s.Require().NoError(s.repo.Execute(s.ctx, repository.SelectList{List: world}))
	s.vm = NewListViewModel(s.repo, s.nav, s.theme, slog.Default())

	s.transport.EXPECT().GetSectionArticles(gomock.Any(), "world", repository.PageSize, 100).Return(makeArticles("w", 100, 100), nil)

	s.False(s.vm.ScrollChange(89))
	s.True(s.vm.ScrollChange(90))
	s.False(s.vm.ScrollChange(99))
	s.vm.Wait()
	s.Len(s.repo.State().Get().Articles, 200)

	stop := s.run()
	defer stop()
	s.Eventually(func() bool {
		return len(s.vm.State().Get().Articles) == 200
	}, time.Second, 5*time.Millisecond)

	s.transport.EXPECT().GetSectionArticles(gomock.Any(), "world", repository.PageSize, 200).Return(makeArticles("w", 200, 10), nil)

	s.False(s.vm.ScrollChange(179))
	s.True(s.vm.ScrollChange(180))
	s.vm.Wait()

	s.Eventually(func() bool {
		return len(s.vm.State().Get().Articles) == 210
	}, time.Second, 5*time.Millisecond)
}

func (s *ViewModelTestSuite) TestScrollChange_EmptyList() {
	s.False(s.vm.ScrollChange(0))
}

func (s *ViewModelTestSuite) TestRefreshing() {
	release := make(chan struct{})
	s.transport.EXPECT().GetPopularViewed(gomock.Any(), domain.PeriodMonth).DoAndReturn(
		func(context.Context, domain.Period) ([]domain.Article, error) {
			<-release
			return makeArticles("v", 0, 1), nil
		},
	)

	s.vm.RefreshArticles()
	s.True(s.vm.Refreshing().Get())

	close(release)
	s.vm.Wait()
	s.False(s.vm.Refreshing().Get())
}

func (s *ViewModelTestSuite) TestErrorsPassThrough() {
	s.transport.EXPECT().GetSectionList(gomock.Any()).Return(nil, &domain.TransportError{Code: 400, Message: "Not Found"})

	s.vm.RefreshSections()
	s.vm.Wait()

	s.Equal("(400) Not Found", s.vm.Errors().Get())
}

func (s *ViewModelTestSuite) TestSelectListAndLoadMore() {
	s.transport.EXPECT().GetPopularShared(gomock.Any(), domain.PeriodMonth).Return(makeArticles("s", 0, 3), nil)

	s.vm.SelectList(domain.PopularShared)
	s.vm.Wait()
	s.Equal(domain.PopularShared, s.repo.State().Get().List)

	// popular lists never paginate
	s.vm.LoadMoreArticles()
	s.vm.Wait()
	s.Len(s.repo.State().Get().Articles, 3)
}

func (s *ViewModelTestSuite) TestSelectBrief_Navigates() {
	s.vm.SelectBrief(BriefDisplay{URI: "nyt://article/1", Title: "First"})

	s.Equal(ArticleSelected{URI: "nyt://article/1", Title: "First"}, <-s.nav.Actions())
}

func (s *ViewModelTestSuite) TestSetTheme() {
	s.vm.SetTheme(ThemeDark)

	s.Equal(ThemeDark, s.theme.Theme().Get())
}

func (s *ViewModelTestSuite) TestDetail_UnknownArticle() {
	detail := NewDetailViewModel("nonexistent", s.repo, s.nav)

	detail.Reload(s.ctx)

	s.Equal("Unable to load Article", detail.Errors().Get())
	s.Nil(detail.Data().Get())
}

func (s *ViewModelTestSuite) TestDetail_Reload() {
	articles := makeArticles("v", 0, 2)
	articles[1].Media = []domain.MediaItem{{
		Type: "image",
		Metadata: []domain.MediaMetadata{
			{URL: "https://img/small.jpg", Height: 10, Width: 10},
			{URL: "https://img/large.jpg", Height: 20, Width: 20},
		},
	}}
	s.transport.EXPECT().GetPopularViewed(gomock.Any(), domain.PeriodMonth).Return(articles, nil)
	s.Require().NoError(s.repo.Execute(s.ctx, repository.RefreshArticles{}))

	detail := NewDetailViewModel("v1", s.repo, s.nav)
	detail.Reload(s.ctx)

	s.Equal("", detail.Errors().Get())
	data := detail.Data().Get()
	s.Require().NotNil(data)
	s.Equal("v1", data.URI)
	s.Equal("https://example.com/v1", data.URL)
	s.Equal("Jan 15, 2024 03:04PM", data.Date)
	s.Require().NotNil(data.ImageURL)
	s.Equal("https://img/large.jpg", *data.ImageURL)
}

func (s *ViewModelTestSuite) TestDetail_Navigation() {
	detail := NewDetailViewModel("v1", s.repo, s.nav)

	detail.BackPress()
	s.Equal(Back{}, <-s.nav.Actions())

	detail.VisitArticle("https://example.com/v1")
	s.Equal(OpenURL{URL: "https://example.com/v1"}, <-s.nav.Actions())
}

func TestNavigator_DropsWhenFull(t *testing.T) {
	nav := NewNavigator(slog.Default())

	if !nav.Handle(Home{}) {
		t.Fatal("first action should be accepted")
	}
	if nav.Handle(Back{}) {
		t.Fatal("second action should be dropped while one is pending")
	}
	if got := <-nav.Actions(); got != (Home{}) {
		t.Fatalf("got %v, want Home", got)
	}
}

func TestParseColorTheme(t *testing.T) {
	for _, tc := range []struct {
		in      string
		want    ColorTheme
		wantErr bool
	}{
		{in: "system", want: ThemeSystem},
		{in: "light", want: ThemeLight},
		{in: "dark", want: ThemeDark},
		{in: "sepia", wantErr: true},
	} {
		got, err := ParseColorTheme(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseColorTheme(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseColorTheme(%q) = %q, %v", tc.in, got, err)
		}
	}
}
