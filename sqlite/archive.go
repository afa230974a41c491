package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/fetcher"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ fetcher.ArchiveService = (*ArchiveService)(nil)

// ArchiveService implements fetcher.ArchiveService using SQLite.
// The database is opened on first use.
type ArchiveService struct {
	db *DB
}

// NewArchiveService creates a new ArchiveService.
func NewArchiveService(db *DB) *ArchiveService {
	return &ArchiveService{db: db}
}

// CreateArchive records a new archive.
func (s *ArchiveService) CreateArchive(ctx context.Context, archive *fetcher.Archive) error {
	if err := archive.Validate(); err != nil {
		return err
	}
	if err := s.db.Open(); err != nil {
		return err
	}
	if archive.ID == "" {
		archive.ID = uuid.New().String()
	}
	if archive.FetchedAt.IsZero() {
		archive.FetchedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO archives (id, source_url, authority, title, article_path, content_hash, images, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, archive.ID, archive.SourceURL, archive.Authority, archive.Title, archive.ArticlePath,
		archive.ContentHash, archive.Images, archive.FetchedAt.UTC().Format(timeLayout))

	return err
}

// FindArchives retrieves archives matching the filter, newest first.
func (s *ArchiveService) FindArchives(ctx context.Context, filter fetcher.ArchiveFilter) ([]*fetcher.Archive, error) {
	if err := s.db.Open(); err != nil {
		return nil, err
	}

	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, authority, title, article_path, content_hash, images, fetched_at FROM archives WHERE 1=1")

	if filter.Authority != nil {
		query.WriteString(" AND authority = ?")
		args = append(args, *filter.Authority)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY fetched_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var archives []*fetcher.Archive
	for rows.Next() {
		var a fetcher.Archive
		var fetchedAt string

		if err := rows.Scan(&a.ID, &a.SourceURL, &a.Authority, &a.Title, &a.ArticlePath,
			&a.ContentHash, &a.Images, &fetchedAt); err != nil {
			return nil, err
		}

		if a.FetchedAt, err = parseTime(fetchedAt, "fetched_at"); err != nil {
			return nil, err
		}

		archives = append(archives, &a)
	}

	return archives, rows.Err()
}
