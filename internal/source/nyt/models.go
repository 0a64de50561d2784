package nyt

// APIResponse is the envelope shared by every NYT endpoint.
type APIResponse[T any] struct {
	Status     string `json:"status"`
	Copyright  string `json:"copyright"`
	NumResults int    `json:"num_results"`
	Results    []T    `json:"results"`
}

type APISection struct {
	Section     string `json:"section"`
	DisplayName string `json:"display_name"`
}

type APIArticle struct {
	URI           string          `json:"uri"`
	URL           string          `json:"url"`
	PublishedDate string          `json:"published_date"`
	Section       string          `json:"section"`
	Subsection    string          `json:"subsection"`
	Title         string          `json:"title"`
	Byline        string          `json:"byline"`
	Abstract      string          `json:"abstract"`
	Media         []APIMediaItem  `json:"media"`
	MultiMedia    []APIMultiMedia `json:"multimedia"`
}

type APIMediaItem struct {
	Type     string             `json:"type"`
	Subtype  string             `json:"subtype"`
	Caption  string             `json:"caption"`
	Metadata []APIMediaMetadata `json:"media-metadata"`
}

type APIMediaMetadata struct {
	URL    string `json:"url"`
	Format string `json:"format"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type APIMultiMedia struct {
	URL     string `json:"url"`
	Format  string `json:"format"`
	Type    string `json:"type"`
	Subtype string `json:"subtype"`
	Caption string `json:"caption"`
	Height  int    `json:"height"`
	Width   int    `json:"width"`
}
