package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/noticeharvest"
	"github.com/fwojciec/noticeharvest/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailExtractor_Reason(t *testing.T) {
	t.Parallel()

	e := goquery.NewDetailExtractor()

	t.Run("takes the cell next to the reason header", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><table><tr><th>Reason for Recall</th><td>Contaminated batch</td></tr></table></body></html>`

		assert.Equal(t, "Contaminated batch", e.Reason(html))
	})

	t.Run("takes the text after the label in a paragraph", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Recall reason: Out of specification dissolution results.</p></body></html>`

		assert.Equal(t, "Out of specification dissolution results.", e.Reason(html))
	})

	t.Run("falls back to any text node containing the label", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><section><span>Reason - Mislabelled strength</span></section></body></html>`

		assert.Equal(t, "Mislabelled strength", e.Reason(html))
	})

	t.Run("rejects boilerplate and keeps looking", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<table><tr><td>Reason</td><td>Read our privacy policy</td></tr></table>
			<p>Reason for recall: Presence of foreign particles</p>
		</body></html>`

		assert.Equal(t, "Presence of foreign particles", e.Reason(html))
	})

	t.Run("rejects overlong candidates", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("word ", 120)
		html := `<html><body><p>Reason for recall: ` + long + `</p></body></html>`

		assert.Empty(t, e.Reason(html))
	})

	t.Run("returns empty when no label exists", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, e.Reason(`<html><body><p>Product withdrawn.</p></body></html>`))
	})
}

func TestDetailExtractor_Expand(t *testing.T) {
	t.Parallel()

	e := goquery.NewDetailExtractor()

	summary := func() *noticeharvest.FieldMap {
		return noticeharvest.NewFieldMap(
			noticeharvest.FieldDateRecallIssued, "05/03/2023",
			noticeharvest.FieldProductName, "Amoxil range",
			noticeharvest.FieldManufacturer, "Acme Pharma",
		)
	}

	t.Run("expands each product sub-row with canonical headers", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<p>Reason for Recall: Failed assay test</p>
			<table>
				<tr><th>Product Description</th><th>Batch Numbers</th><th>Expiry Dates</th><th>Pack Size</th></tr>
				<tr><td>Amoxil 250mg</td><td>A1</td><td>2025-01</td><td>10x10</td></tr>
				<tr><td>Amoxil 500mg</td><td>A2</td><td>2025-06</td><td>20x10</td></tr>
				<tr><td></td><td></td><td></td><td></td></tr>
			</table>
		</body></html>`
		in := summary()

		out, err := e.Expand(html, in)
		require.NoError(t, err)
		require.Len(t, out, 2)

		assert.Equal(t, "Amoxil 250mg", out[0].Get(noticeharvest.FieldProductName))
		assert.Equal(t, "A1", out[0].Get(noticeharvest.FieldBatches))
		assert.Equal(t, "2025-01", out[0].Get(noticeharvest.FieldExpiryDate))
		assert.Equal(t, "10x10", out[0].Get("Pack Size"), "unknown headers are kept verbatim")
		assert.Equal(t, "Acme Pharma", out[0].Get(noticeharvest.FieldManufacturer), "summary fields carry over")
		assert.Equal(t, "Failed assay test", out[0].Get(noticeharvest.FieldReason))

		assert.Equal(t, "Amoxil 500mg", out[1].Get(noticeharvest.FieldProductName))
		assert.Equal(t, "Failed assay test", out[1].Get(noticeharvest.FieldReason))

		assert.Equal(t, "Amoxil range", in.Get(noticeharvest.FieldProductName), "input is not mutated")
	})

	t.Run("returns the summary with reason when there is no product table", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><table><tr><th>Reason for Recall</th><td>Contaminated batch</td></tr></table></body></html>`

		out, err := e.Expand(html, summary())
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "Contaminated batch", out[0].Get(noticeharvest.FieldReason))
		assert.Equal(t, "Amoxil range", out[0].Get(noticeharvest.FieldProductName))
	})

	t.Run("leaves reason absent when none is found", func(t *testing.T) {
		t.Parallel()

		out, err := e.Expand(`<html><body><p>Nothing to see.</p></body></html>`, summary())
		require.NoError(t, err)
		require.Len(t, out, 1)
		_, ok := out[0].Lookup(noticeharvest.FieldReason)
		assert.False(t, ok)
	})
}

func TestDetailExtractor_DocumentLinks(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/uploads/notice.pdf">Download</a>
		<a href="/uploads/notice.pdf#page=2">Again</a>
		<a href="/about/">About</a>
		<a href="https://cdn.example.com/letter.DOCX">Letter</a>
		<a href="mailto:info@example.com">Mail</a>
	</body></html>`

	links := goquery.NewDetailExtractor().DocumentLinks(html, "https://example.com/press/item/")

	assert.Equal(t, []string{
		"https://example.com/uploads/notice.pdf",
		"https://cdn.example.com/letter.DOCX",
	}, links)
}
