package noticeharvest_test

import (
	"testing"

	"github.com/fwojciec/noticeharvest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestRecord_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rec  noticeharvest.Record
		ok   bool
	}{
		{
			name: "valid recall",
			rec:  noticeharvest.Record{Type: noticeharvest.EntryRecall, Recall: &noticeharvest.Recall{}, ArtifactPath: "/a.pdf"},
			ok:   true,
		},
		{
			name: "missing discriminant",
			rec:  noticeharvest.Record{Recall: &noticeharvest.Recall{}, ArtifactPath: "/a.pdf"},
		},
		{
			name: "variant disagrees with discriminant",
			rec:  noticeharvest.Record{Type: noticeharvest.EntryAlert, Recall: &noticeharvest.Recall{}, ArtifactPath: "/a.pdf"},
		},
		{
			name: "two variants",
			rec: noticeharvest.Record{
				Type:         noticeharvest.EntryAlert,
				Alert:        &noticeharvest.Alert{},
				PressRelease: &noticeharvest.PressRelease{},
				ArtifactPath: "/a.pdf",
			},
		},
		{
			name: "missing artifact path",
			rec:  noticeharvest.Record{Type: noticeharvest.EntryPressRelease, PressRelease: &noticeharvest.PressRelease{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.rec.Validate()
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, noticeharvest.EINVALID, noticeharvest.ErrorCode(err))
		})
	}
}

func TestNewRecord(t *testing.T) {
	t.Parallel()

	t.Run("maps recall fields and keeps absent reason nil", func(t *testing.T) {
		t.Parallel()

		fields := noticeharvest.NewFieldMap(
			noticeharvest.FieldDateRecallIssued, "05/03/2023",
			noticeharvest.FieldProductName, "Amoxil 500mg",
			noticeharvest.FieldBatches, "",
			noticeharvest.FieldError, noticeharvest.ErrorNoDetailLink,
		)
		art := noticeharvest.Artifact{Path: "/out/recalls/Amoxil/Recall_Summary_Amoxil.pdf", Generated: true}

		rec, err := noticeharvest.NewRecord(noticeharvest.RecallsTemplate, fields, art, fields.String())
		require.NoError(t, err)

		assert.Equal(t, noticeharvest.EntryRecall, rec.Type)
		require.NotNil(t, rec.Recall)
		assert.Nil(t, rec.Alert)
		assert.Nil(t, rec.PressRelease)
		assert.Equal(t, ptr("2023-03-05"), rec.Recall.DateIssued)
		assert.Equal(t, ptr("Amoxil 500mg"), rec.Recall.ProductName)
		assert.Equal(t, ptr(""), rec.Recall.BatchNumbers, "scraped-empty stays empty string")
		assert.Nil(t, rec.Recall.ProductType, "absent field stays nil")
		assert.Nil(t, rec.Recall.Reason)
		assert.Nil(t, rec.Recall.SourceURL)
		require.NotNil(t, rec.Text)
		assert.Contains(t, *rec.Text, "Error: No detail link found.")
	})

	t.Run("unparseable date becomes nil", func(t *testing.T) {
		t.Parallel()

		fields := noticeharvest.NewFieldMap(noticeharvest.FieldDateIssued, "sometime", noticeharvest.FieldAlertTitle, "Fake syrup alert")
		art := noticeharvest.Artifact{Path: "/out/alerts/x/alert.pdf", SourceURL: "https://example.com/a.pdf"}

		rec, err := noticeharvest.NewRecord(noticeharvest.AlertsTemplate, fields, art, "")
		require.NoError(t, err)

		assert.Nil(t, rec.Alert.DateIssued)
		assert.Equal(t, ptr("Fake syrup alert"), rec.Alert.Title)
		assert.Equal(t, ptr("alert.pdf"), rec.Alert.Filename)
		assert.Nil(t, rec.Text, "blank text is stored as null")
	})

	t.Run("press release links downloaded documents only", func(t *testing.T) {
		t.Parallel()

		fields := noticeharvest.NewFieldMap(noticeharvest.FieldDate, "2021", noticeharvest.FieldTitle, "FDA warns public")

		downloaded, err := noticeharvest.NewRecord(noticeharvest.PressReleasesTemplate, fields,
			noticeharvest.Artifact{Path: "/p.pdf", SourceURL: "https://example.com/p.pdf"}, "body")
		require.NoError(t, err)
		assert.Equal(t, ptr("https://example.com/p.pdf"), downloaded.PressRelease.DocumentURL)
		assert.Equal(t, ptr("2021-01-01"), downloaded.PressRelease.Date)

		generated, err := noticeharvest.NewRecord(noticeharvest.PressReleasesTemplate, fields,
			noticeharvest.Artifact{Path: "/p.pdf", SourceURL: "https://example.com/page", Generated: true}, "body")
		require.NoError(t, err)
		assert.Nil(t, generated.PressRelease.DocumentURL)
	})

	t.Run("rejects missing artifact", func(t *testing.T) {
		t.Parallel()

		_, err := noticeharvest.NewRecord(noticeharvest.AlertsTemplate, noticeharvest.NewFieldMap(), noticeharvest.Artifact{}, "")
		require.Error(t, err)
		assert.Equal(t, noticeharvest.EINVALID, noticeharvest.ErrorCode(err))
	})
}

func TestRecord_Title(t *testing.T) {
	t.Parallel()

	rec := &noticeharvest.Record{Type: noticeharvest.EntryAlert, Alert: &noticeharvest.Alert{Title: ptr("Alert")}}
	assert.Equal(t, "Alert", rec.Title())

	rec = &noticeharvest.Record{Type: noticeharvest.EntryRecall, Recall: &noticeharvest.Recall{}}
	assert.Empty(t, rec.Title())
}
