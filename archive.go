package fetcher

import (
	"context"
	"time"
)

// Archive records one successful archiving run.
type Archive struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"sourceUrl"`
	Authority   string    `json:"authority"`
	Title       string    `json:"title"`
	ArticlePath string    `json:"articlePath"`
	ContentHash string    `json:"contentHash"`
	Images      int       `json:"images"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the archive contains invalid fields.
func (a *Archive) Validate() error {
	if a.SourceURL == "" {
		return Errorf(EINVALID, "archive source URL required")
	}
	if a.ArticlePath == "" {
		return Errorf(EINVALID, "archive article path required")
	}
	return nil
}

// ArchiveService represents a service for the index of archived articles.
type ArchiveService interface {
	// CreateArchive records a new archive. ID and FetchedAt are assigned
	// when empty.
	CreateArchive(ctx context.Context, archive *Archive) error

	// FindArchives retrieves archives matching the filter, newest first.
	FindArchives(ctx context.Context, filter ArchiveFilter) ([]*Archive, error)
}

// ArchiveFilter represents a filter for FindArchives.
type ArchiveFilter struct {
	Authority *string `json:"authority"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
