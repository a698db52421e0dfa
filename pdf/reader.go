// Package pdf reads the embedded text layer of PDF documents using
// github.com/ledongthuc/pdf.
package pdf

import (
	"fmt"
	"os"

	"github.com/fwojciec/noticeharvest"
	"github.com/ledongthuc/pdf"
)

// Ensure Reader implements noticeharvest.TextLayerReader at compile time.
var _ noticeharvest.TextLayerReader = (*Reader)(nil)

// Reader opens PDF files for text extraction.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Open parses the PDF at path.
func (r *Reader) Open(path string) (noticeharvest.PagedText, error) {
	f, doc, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	return &Document{file: f, doc: doc}, nil
}

// Document is an open PDF.
type Document struct {
	file *os.File
	doc  *pdf.Reader
}

// NumPages returns the page count.
func (d *Document) NumPages() int {
	return d.doc.NumPage()
}

// PageText returns the plain text of page i, counting from 0. Malformed
// content streams make the parser panic; that is reported as an error.
func (d *Document) PageText(i int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: malformed content: %v", i+1, r)
		}
	}()

	page := d.doc.Page(i + 1)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d: missing", i+1)
	}
	return page.GetPlainText(nil)
}

// Close closes the underlying file.
func (d *Document) Close() error {
	return d.file.Close()
}
