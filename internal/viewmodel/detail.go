package viewmodel

import (
	"context"

	"nytviewer/internal/observable"
)

const (
	detailDateLayout = "Jan 02, 2006 03:04PM"

	errArticleNotFound = "Unable to load Article"
)

// DetailData is an article ready for the detail screen.
type DetailData struct {
	URI      string  `json:"uri"`
	URL      string  `json:"url"`
	Date     string  `json:"date"`
	Title    string  `json:"title"`
	Byline   string  `json:"byline"`
	Abstract string  `json:"abstract"`
	ImageURL *string `json:"image_url,omitempty"`
}

// DetailViewModel serves the detail screen of one article. Data stays nil
// until a Reload finds the article.
type DetailViewModel struct {
	uri  string
	repo Repository
	nav  *Navigator

	data *observable.Value[*DetailData]
	errs *observable.Value[string]
}

func NewDetailViewModel(uri string, repo Repository, nav *Navigator) *DetailViewModel {
	return &DetailViewModel{
		uri:  uri,
		repo: repo,
		nav:  nav,
		data: observable.NewValue[*DetailData](nil),
		errs: observable.NewValue(""),
	}
}

func (vm *DetailViewModel) Data() *observable.Value[*DetailData] {
	return vm.data
}

func (vm *DetailViewModel) Errors() *observable.Value[string] {
	return vm.errs
}

// Reload looks the article up again. It never fetches.
func (vm *DetailViewModel) Reload(ctx context.Context) {
	vm.errs.Set("")

	detail, ok := vm.repo.GetArticleDetail(ctx, vm.uri)
	if !ok {
		vm.errs.Set(errArticleNotFound)
		return
	}

	vm.data.Set(&DetailData{
		URI:      detail.URI,
		URL:      detail.URL,
		Date:     formatDate(detail.PublishedDate, detailDateLayout),
		Title:    detail.Title,
		Byline:   detail.Byline,
		Abstract: detail.Abstract,
		ImageURL: detail.ImageURL,
	})
}

func (vm *DetailViewModel) BackPress() {
	vm.nav.Handle(Back{})
}

// VisitArticle asks the host to open the full article.
func (vm *DetailViewModel) VisitArticle(url string) {
	vm.nav.Handle(OpenURL{URL: url})
}
