// Package gofpdf renders summary documents with github.com/jung-kurt/gofpdf.
package gofpdf

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/noticeharvest"
	"github.com/jung-kurt/gofpdf"
)

// Ensure Renderer implements noticeharvest.DocumentRenderer at compile time.
var _ noticeharvest.DocumentRenderer = (*Renderer)(nil)

// Renderer writes single-column A4 summary PDFs in a core font.
type Renderer struct {
	font     string
	fontSize float64
}

// NewRenderer creates a new Renderer using Helvetica 12.
func NewRenderer() *Renderer {
	return &Renderer{font: "Helvetica", fontSize: 12}
}

// Render writes the title, the fields as "key: value" paragraphs, and the
// optional body to path. All text is reduced to Latin-1 first so that
// unsupported characters show up as '?'.
func (r *Renderer) Render(title string, fields *noticeharvest.FieldMap, body string, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(noticeharvest.ToLatin1(s)) }

	pdf.SetTitle(text(title), false)
	pdf.AddPage()
	pdf.SetFont(r.font, "B", r.fontSize+2)
	pdf.CellFormat(0, 10, text(title), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont(r.font, "", r.fontSize)
	for _, k := range fields.Keys() {
		pdf.MultiCell(0, 6, text(fmt.Sprintf("%s: %s", k, fields.Get(k))), "", "L", false)
		pdf.Ln(2)
	}

	if strings.TrimSpace(body) != "" {
		pdf.Ln(6)
		scanner := bufio.NewScanner(strings.NewReader(body))
		scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				pdf.Ln(4)
				continue
			}
			pdf.MultiCell(0, 5, text(line), "", "L", false)
		}
	}

	return pdf.OutputFileAndClose(path)
}
