package domain

import "time"

// Article is a full record as returned by the content API.
// URI is the identity key; two records with the same URI are the same article.
type Article struct {
	URI           string
	URL           string
	PublishedDate time.Time
	Section       string
	Subsection    string
	Title         string
	Byline        string
	Abstract      string
	Media         []MediaItem
	MultiMedia    []MultiMedia
}

// MediaItem is a structured media entry holding every rendition in Metadata.
type MediaItem struct {
	Type     string
	Subtype  string
	Caption  string
	Metadata []MediaMetadata
}

type MediaMetadata struct {
	URL    string
	Format string
	Height int
	Width  int
}

// MultiMedia is the flat media representation used by the newswire API.
type MultiMedia struct {
	URL     string
	Format  string
	Type    string
	Subtype string
	Caption string
	Height  int
	Width   int
}

// Section is a section record from the section-list endpoint.
type Section struct {
	Section     string
	DisplayName string
}

// Period is the window the popular endpoints aggregate over, in days.
type Period int

const (
	PeriodDay   Period = 1
	PeriodWeek  Period = 7
	PeriodMonth Period = 30
)
