package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/fetcher"
)

// Ensure LoggingExtractor implements fetcher.Extractor.
var _ fetcher.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   fetcher.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next fetcher.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the selection size.
func (e *LoggingExtractor) Extract(html string) (result *fetcher.Extraction, err error) {
	defer func(begin time.Time) {
		var selected, fragments int
		if result != nil {
			selected, fragments = result.Selected, len(result.Fragments)
		}
		e.logger.Debug("extract",
			"bytes", len(html),
			"selected", selected,
			"visible", fragments,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}
