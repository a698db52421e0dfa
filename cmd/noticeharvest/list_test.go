package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/noticeharvest"
	main "github.com/fwojciec/noticeharvest/cmd/noticeharvest"
	"github.com/fwojciec/noticeharvest/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists records with id, type, date, title and artifact", func(t *testing.T) {
		t.Parallel()

		records := &mock.RecordService{
			FindRecordsFn: func(_ context.Context, _ noticeharvest.RecordFilter) ([]*noticeharvest.Record, error) {
				return []*noticeharvest.Record{
					{
						ID:           2,
						Type:         noticeharvest.EntryRecall,
						Recall:       &noticeharvest.Recall{ProductName: strPtr("Paracetamol Syrup"), DateIssued: strPtr("2024-03-12")},
						ArtifactPath: "recalls/Paracetamol_Syrup/Recall_Summary_Paracetamol_Syrup_20240312.pdf",
					},
					{
						ID:           1,
						Type:         noticeharvest.EntryAlert,
						Alert:        &noticeharvest.Alert{Title: strPtr("Fake Insulin Alert")},
						ArtifactPath: "alerts/Fake_Insulin_Alert/alert.pdf",
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Records: records,
		}

		err := (&main.ListCmd{Limit: 20}).Run(deps)
		require.NoError(t, err)

		out := stdout.String()
		assert.Contains(t, out, "2  recall  2024-03-12  Paracetamol Syrup  recalls/Paracetamol_Syrup/")
		assert.Contains(t, out, "1  alert  -  Fake Insulin Alert  alerts/Fake_Insulin_Alert/alert.pdf")
	})

	t.Run("passes filter flags through", func(t *testing.T) {
		t.Parallel()

		var got noticeharvest.RecordFilter
		records := &mock.RecordService{
			FindRecordsFn: func(_ context.Context, f noticeharvest.RecordFilter) ([]*noticeharvest.Record, error) {
				got = f
				return nil, nil
			},
		}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  &bytes.Buffer{},
			Records: records,
		}

		err := (&main.ListCmd{Type: "press_release", Query: "cosmetics", RunID: "run-1", Limit: 5}).Run(deps)
		require.NoError(t, err)

		require.NotNil(t, got.Type)
		assert.Equal(t, noticeharvest.EntryPressRelease, *got.Type)
		require.NotNil(t, got.Query)
		assert.Equal(t, "cosmetics", *got.Query)
		require.NotNil(t, got.RunID)
		assert.Equal(t, "run-1", *got.RunID)
		assert.Equal(t, 5, got.Limit)
	})

	t.Run("shows helpful message when no records exist", func(t *testing.T) {
		t.Parallel()

		records := &mock.RecordService{
			FindRecordsFn: func(_ context.Context, _ noticeharvest.RecordFilter) ([]*noticeharvest.Record, error) {
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Records: records,
		}

		err := (&main.ListCmd{}).Run(deps)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "noticeharvest run")
	})

	t.Run("rejects unknown entry type", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Records: &mock.RecordService{},
		}

		err := (&main.ListCmd{Type: "bulletin"}).Run(deps)
		require.Error(t, err)
		assert.Equal(t, noticeharvest.EINVALID, noticeharvest.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("reports storage errors", func(t *testing.T) {
		t.Parallel()

		records := &mock.RecordService{
			FindRecordsFn: func(_ context.Context, _ noticeharvest.RecordFilter) ([]*noticeharvest.Record, error) {
				return nil, errors.New("disk I/O error")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Records: records,
		}

		err := (&main.ListCmd{}).Run(deps)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: Internal error")
	})
}
