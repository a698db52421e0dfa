package mock

import (
	"context"

	"github.com/fwojciec/noticeharvest"
)

var _ noticeharvest.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of noticeharvest.RecordService.
type RecordService struct {
	CreateRecordFn  func(ctx context.Context, rec *noticeharvest.Record) error
	FindRecordsFn   func(ctx context.Context, filter noticeharvest.RecordFilter) ([]*noticeharvest.Record, error)
	DeleteRecordsFn func(ctx context.Context, filter noticeharvest.RecordFilter) (int, error)
}

func (s *RecordService) CreateRecord(ctx context.Context, rec *noticeharvest.Record) error {
	return s.CreateRecordFn(ctx, rec)
}

func (s *RecordService) FindRecords(ctx context.Context, filter noticeharvest.RecordFilter) ([]*noticeharvest.Record, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *RecordService) DeleteRecords(ctx context.Context, filter noticeharvest.RecordFilter) (int, error) {
	return s.DeleteRecordsFn(ctx, filter)
}
