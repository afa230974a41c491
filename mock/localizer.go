package mock

import (
	"context"

	"github.com/fwojciec/fetcher"
)

var _ fetcher.ImageLocalizer = (*ImageLocalizer)(nil)

// ImageLocalizer is a mock implementation of fetcher.ImageLocalizer.
type ImageLocalizer struct {
	LocalizeFn func(ctx context.Context, pageURL string, ws *fetcher.Workspace, fragments []string) (*fetcher.Localization, error)
}

func (l *ImageLocalizer) Localize(ctx context.Context, pageURL string, ws *fetcher.Workspace, fragments []string) (*fetcher.Localization, error) {
	return l.LocalizeFn(ctx, pageURL, ws, fragments)
}
