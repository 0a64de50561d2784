package domain

import "time"

const imageType = "image"

// ArticleBrief is the list projection of an Article.
type ArticleBrief struct {
	URI           string
	PublishedDate time.Time
	Title         string
	Byline        string
	ThumbnailURL  *string
}

// ArticleDetail is the detail projection of an Article.
type ArticleDetail struct {
	URI           string
	URL           string
	PublishedDate time.Time
	Title         string
	Byline        string
	Abstract      string
	ImageURL      *string
}

func (a Article) Brief() ArticleBrief {
	return ArticleBrief{
		URI:           a.URI,
		PublishedDate: a.PublishedDate,
		Title:         a.Title,
		Byline:        a.Byline,
		ThumbnailURL:  SmallImageURL(a),
	}
}

func (a Article) Detail() ArticleDetail {
	return ArticleDetail{
		URI:           a.URI,
		URL:           a.URL,
		PublishedDate: a.PublishedDate,
		Title:         a.Title,
		Byline:        a.Byline,
		Abstract:      a.Abstract,
		ImageURL:      LargeImageURL(a),
	}
}

// Briefs projects articles in order.
func Briefs(articles []Article) []ArticleBrief {
	briefs := make([]ArticleBrief, 0, len(articles))
	for _, a := range articles {
		briefs = append(briefs, a.Brief())
	}
	return briefs
}

// SmallImageURL returns the smallest image of the article, if any.
func SmallImageURL(a Article) *string {
	return pickImage(a, func(area, best int) bool { return area < best })
}

// LargeImageURL returns the largest image of the article, if any.
func LargeImageURL(a Article) *string {
	return pickImage(a, func(area, best int) bool { return area > best })
}

type rendition struct {
	url  string
	area int
}

// pickImage searches the first image item of the structured media, then the
// image entries of the flat multimedia list. better decides whether an area
// replaces the current best; the first extremal rendition wins ties.
func pickImage(a Article, better func(area, best int) bool) *string {
	for _, item := range a.Media {
		if item.Type != imageType {
			continue
		}
		candidates := make([]rendition, 0, len(item.Metadata))
		for _, m := range item.Metadata {
			candidates = append(candidates, rendition{url: m.URL, area: m.Height * m.Width})
		}
		if url, ok := extremal(candidates, better); ok {
			return &url
		}
		break
	}

	candidates := make([]rendition, 0, len(a.MultiMedia))
	for _, m := range a.MultiMedia {
		if m.Type == imageType {
			candidates = append(candidates, rendition{url: m.URL, area: m.Height * m.Width})
		}
	}
	if url, ok := extremal(candidates, better); ok {
		return &url
	}
	return nil
}

func extremal(candidates []rendition, better func(area, best int) bool) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if better(c.area, best.area) {
			best = c
		}
	}
	return best.url, true
}
