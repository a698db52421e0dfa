package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/noticeharvest"
)

// Ensure LoggingDownloader implements noticeharvest.Downloader.
var _ noticeharvest.Downloader = (*LoggingDownloader)(nil)

// LoggingDownloader wraps a Downloader with logging.
type LoggingDownloader struct {
	next   noticeharvest.Downloader
	logger *slog.Logger
}

// NewLoggingDownloader creates a new LoggingDownloader.
func NewLoggingDownloader(next noticeharvest.Downloader, logger *slog.Logger) *LoggingDownloader {
	return &LoggingDownloader{next: next, logger: logger}
}

// Download logs the URL and outcome and delegates to the wrapped downloader.
func (d *LoggingDownloader) Download(ctx context.Context, url string) (dl *noticeharvest.Download, err error) {
	defer func(begin time.Time) {
		var size int
		var contentType string
		if dl != nil {
			size, contentType = len(dl.Body), dl.ContentType
		}
		d.logger.Info("download",
			"url", url,
			"content_type", contentType,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Download(ctx, url)
}

// Ensure LoggingTextRecoverer implements noticeharvest.TextRecoverer.
var _ noticeharvest.TextRecoverer = (*LoggingTextRecoverer)(nil)

// LoggingTextRecoverer wraps a TextRecoverer with logging.
type LoggingTextRecoverer struct {
	next   noticeharvest.TextRecoverer
	logger *slog.Logger
}

// NewLoggingTextRecoverer creates a new LoggingTextRecoverer.
func NewLoggingTextRecoverer(next noticeharvest.TextRecoverer, logger *slog.Logger) *LoggingTextRecoverer {
	return &LoggingTextRecoverer{next: next, logger: logger}
}

// RecoverText logs the artifact and recovered length and delegates to the
// wrapped recoverer.
func (r *LoggingTextRecoverer) RecoverText(ctx context.Context, path string) (text string) {
	defer func(begin time.Time) {
		r.logger.Info("recover text",
			"path", path,
			"chars", len([]rune(text)),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return r.next.RecoverText(ctx, path)
}
