package mock

import (
	"context"

	"github.com/fwojciec/fetcher"
)

// Compile-time interface verification.
var (
	_ fetcher.ImageStore   = (*ImageStore)(nil)
	_ fetcher.ArticleStore = (*ArticleStore)(nil)
)

// ImageStore is a mock implementation of fetcher.ImageStore.
type ImageStore struct {
	SaveImageFn func(ctx context.Context, path string, data []byte) error
}

func (s *ImageStore) SaveImage(ctx context.Context, path string, data []byte) error {
	return s.SaveImageFn(ctx, path, data)
}

// ArticleStore is a mock implementation of fetcher.ArticleStore.
type ArticleStore struct {
	EnsureWorkspaceFn func(ctx context.Context, ws *fetcher.Workspace) error
	WriteArticleFn    func(ctx context.Context, ws *fetcher.Workspace, content string) (string, error)
}

func (s *ArticleStore) EnsureWorkspace(ctx context.Context, ws *fetcher.Workspace) error {
	return s.EnsureWorkspaceFn(ctx, ws)
}

func (s *ArticleStore) WriteArticle(ctx context.Context, ws *fetcher.Workspace, content string) (string, error) {
	return s.WriteArticleFn(ctx, ws, content)
}
