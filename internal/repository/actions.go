package repository

import "nytviewer/internal/domain"

// Action is a request to the repository. The set is closed: RefreshSections,
// RefreshArticles, LoadMoreArticles and SelectList.
type Action interface {
	name() string
}

// RefreshSections refetches the section list.
type RefreshSections struct{}

// RefreshArticles refetches the selected list, ignoring the cache.
type RefreshArticles struct{}

// LoadMoreArticles appends the next page of the selected section list.
type LoadMoreArticles struct{}

// SelectList switches to List, from cache when fresh.
type SelectList struct {
	List domain.ListDef
}

func (RefreshSections) name() string  { return "refresh_sections" }
func (RefreshArticles) name() string  { return "refresh_articles" }
func (LoadMoreArticles) name() string { return "load_more_articles" }
func (SelectList) name() string       { return "select_list" }
