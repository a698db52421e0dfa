package pdf_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/noticeharvest"
	"github.com/fwojciec/noticeharvest/gofpdf"
	"github.com/fwojciec/noticeharvest/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_Open(t *testing.T) {
	t.Parallel()

	t.Run("reads the text layer of a rendered summary", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "summary.pdf")
		fields := noticeharvest.NewFieldMap(noticeharvest.FieldProductName, "Paracetamol Syrup")
		require.NoError(t, gofpdf.NewRenderer().Render("Recall Summary", fields, "", path))

		doc, err := pdf.NewReader().Open(path)
		require.NoError(t, err)
		defer doc.Close()

		require.Equal(t, 1, doc.NumPages())
		text, err := doc.PageText(0)
		require.NoError(t, err)
		assert.Contains(t, strings.Join(strings.Fields(text), ""), "ParacetamolSyrup")
	})

	t.Run("rejects files that are not pdf", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "notice.doc")
		require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0644))

		_, err := pdf.NewReader().Open(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := pdf.NewReader().Open(filepath.Join(t.TempDir(), "missing.pdf"))
		assert.Error(t, err)
	})
}
