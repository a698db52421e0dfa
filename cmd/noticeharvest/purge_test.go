package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/noticeharvest"
	main "github.com/fwojciec/noticeharvest/cmd/noticeharvest"
	"github.com/fwojciec/noticeharvest/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurgeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires force", func(t *testing.T) {
		t.Parallel()

		called := false
		records := &mock.RecordService{
			DeleteRecordsFn: func(_ context.Context, _ noticeharvest.RecordFilter) (int, error) {
				called = true
				return 0, nil
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Records: records,
		}

		err := (&main.PurgeCmd{}).Run(deps)
		require.Error(t, err)
		assert.Equal(t, noticeharvest.EINVALID, noticeharvest.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
		assert.False(t, called)
	})

	t.Run("deletes matching records", func(t *testing.T) {
		t.Parallel()

		var got noticeharvest.RecordFilter
		records := &mock.RecordService{
			DeleteRecordsFn: func(_ context.Context, f noticeharvest.RecordFilter) (int, error) {
				got = f
				return 4, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Records: records,
		}

		err := (&main.PurgeCmd{Type: "alert", Force: true}).Run(deps)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "Deleted 4 records")
		require.NotNil(t, got.Type)
		assert.Equal(t, noticeharvest.EntryAlert, *got.Type)
		assert.Nil(t, got.RunID)
		assert.Nil(t, got.Query)
	})
}
