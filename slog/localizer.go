package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/fetcher"
)

// Ensure LoggingLocalizer implements fetcher.ImageLocalizer.
var _ fetcher.ImageLocalizer = (*LoggingLocalizer)(nil)

// LoggingLocalizer wraps an ImageLocalizer with logging.
type LoggingLocalizer struct {
	next   fetcher.ImageLocalizer
	logger *slog.Logger
}

// NewLoggingLocalizer creates a new LoggingLocalizer.
func NewLoggingLocalizer(next fetcher.ImageLocalizer, logger *slog.Logger) *LoggingLocalizer {
	return &LoggingLocalizer{next: next, logger: logger}
}

// Localize delegates to the wrapped localizer and logs how many images
// were downloaded.
func (l *LoggingLocalizer) Localize(ctx context.Context, pageURL string, ws *fetcher.Workspace, fragments []string) (result *fetcher.Localization, err error) {
	defer func(begin time.Time) {
		var images, downloaded int
		if result != nil {
			images = len(result.Images)
			for _, img := range result.Images {
				if img.Downloaded {
					downloaded++
				}
			}
		}
		l.logger.Info("localize",
			"url", pageURL,
			"images", images,
			"downloaded", downloaded,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Localize(ctx, pageURL, ws, fragments)
}
