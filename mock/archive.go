package mock

import (
	"context"

	"github.com/fwojciec/fetcher"
)

var _ fetcher.ArchiveService = (*ArchiveService)(nil)

// ArchiveService is a mock implementation of fetcher.ArchiveService.
type ArchiveService struct {
	CreateArchiveFn func(ctx context.Context, archive *fetcher.Archive) error
	FindArchivesFn  func(ctx context.Context, filter fetcher.ArchiveFilter) ([]*fetcher.Archive, error)
}

func (s *ArchiveService) CreateArchive(ctx context.Context, archive *fetcher.Archive) error {
	return s.CreateArchiveFn(ctx, archive)
}

func (s *ArchiveService) FindArchives(ctx context.Context, filter fetcher.ArchiveFilter) ([]*fetcher.Archive, error) {
	return s.FindArchivesFn(ctx, filter)
}
