package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/noticeharvest"
	"github.com/fwojciec/noticeharvest/mock"
	nhslog "github.com/fwojciec/noticeharvest/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingRecordService_CreateRecord(t *testing.T) {
	t.Parallel()

	t.Run("logs record identity after insert", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.RecordService{
			CreateRecordFn: func(_ context.Context, rec *noticeharvest.Record) error {
				rec.ID = 42
				return nil
			},
		}
		title := "Paracetamol Syrup"
		rec := &noticeharvest.Record{
			Type:         noticeharvest.EntryRecall,
			Recall:       &noticeharvest.Recall{ProductName: &title},
			ArtifactPath: "recall.pdf",
		}

		err := nhslog.NewLoggingRecordService(inner, logger).CreateRecord(context.Background(), rec)
		require.NoError(t, err)

		output := buf.String()
		assert.Contains(t, output, "create record")
		assert.Contains(t, output, "type=recall")
		assert.Contains(t, output, `title="Paracetamol Syrup"`)
		assert.Contains(t, output, "id=42")
	})

	t.Run("logs and returns errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.RecordService{
			CreateRecordFn: func(context.Context, *noticeharvest.Record) error {
				return errors.New("disk full")
			},
		}

		err := nhslog.NewLoggingRecordService(inner, logger).CreateRecord(context.Background(), &noticeharvest.Record{})
		require.EqualError(t, err, "disk full")
		assert.Contains(t, buf.String(), `err="disk full"`)
	})
}

func TestLoggingRecordService_DeleteRecords(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.RecordService{
		DeleteRecordsFn: func(context.Context, noticeharvest.RecordFilter) (int, error) {
			return 3, nil
		},
	}

	n, err := nhslog.NewLoggingRecordService(inner, logger).DeleteRecords(context.Background(), noticeharvest.RecordFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Contains(t, buf.String(), "records=3")
}

func TestLoggingRecordService_FindRecords(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	inner := &mock.RecordService{
		FindRecordsFn: func(context.Context, noticeharvest.RecordFilter) ([]*noticeharvest.Record, error) {
			return []*noticeharvest.Record{{}, {}}, nil
		},
	}

	recs, err := nhslog.NewLoggingRecordService(inner, logger).FindRecords(context.Background(), noticeharvest.RecordFilter{})
	require.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.Contains(t, buf.String(), "find records")
	assert.Contains(t, buf.String(), "records=2")
}
