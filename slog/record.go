// Package slog provides logging decorators for noticeharvest services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/noticeharvest"
)

// Ensure LoggingRecordService implements noticeharvest.RecordService.
var _ noticeharvest.RecordService = (*LoggingRecordService)(nil)

// LoggingRecordService wraps a RecordService with logging.
type LoggingRecordService struct {
	next   noticeharvest.RecordService
	logger *slog.Logger
}

// NewLoggingRecordService creates a new LoggingRecordService.
func NewLoggingRecordService(next noticeharvest.RecordService, logger *slog.Logger) *LoggingRecordService {
	return &LoggingRecordService{next: next, logger: logger}
}

// CreateRecord logs the insert and delegates to the wrapped service.
func (s *LoggingRecordService) CreateRecord(ctx context.Context, rec *noticeharvest.Record) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create record",
			"type", rec.Type,
			"title", rec.Title(),
			"id", rec.ID,
			"artifact", rec.ArtifactPath,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateRecord(ctx, rec)
}

// FindRecords logs the query and delegates to the wrapped service.
func (s *LoggingRecordService) FindRecords(ctx context.Context, filter noticeharvest.RecordFilter) (recs []*noticeharvest.Record, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find records",
			"records", len(recs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRecords(ctx, filter)
}

// DeleteRecords logs the deletion and delegates to the wrapped service.
func (s *LoggingRecordService) DeleteRecords(ctx context.Context, filter noticeharvest.RecordFilter) (n int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete records",
			"records", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteRecords(ctx, filter)
}
