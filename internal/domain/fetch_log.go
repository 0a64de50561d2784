package domain

import "time"

// FetchLog records how often a list has been fetched into the archive.
type FetchLog struct {
	ID            int64     `db:"id" json:"-"`
	ListID        string    `db:"list_id" json:"list_id"`
	LastFetchedAt time.Time `db:"last_fetched_at" json:"last_fetched_at"`
	LastBatchSize int       `db:"last_batch_size" json:"last_batch_size"`
	TotalFetched  int64     `db:"total_fetched" json:"total_fetched"`
}

// ArchiveStats summarizes one archived batch.
type ArchiveStats struct {
	ListID  string
	New     int
	Updated int
}

// ListHistory is what the archive knows about one list.
type ListHistory struct {
	FetchLog
	URIs []string `json:"uris"`
}
