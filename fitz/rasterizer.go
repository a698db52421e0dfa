// Package fitz rasterizes document pages with MuPDF via
// github.com/gen2brain/go-fitz.
package fitz

import (
	"fmt"

	"github.com/fwojciec/noticeharvest"
	"github.com/gen2brain/go-fitz"
)

// Ensure Rasterizer implements noticeharvest.Rasterizer at compile time.
var _ noticeharvest.Rasterizer = (*Rasterizer)(nil)

// Rasterizer opens documents for page rendering.
type Rasterizer struct{}

// NewRasterizer creates a new Rasterizer.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{}
}

// Open loads the document at path.
func (r *Rasterizer) Open(path string) (noticeharvest.PagedImages, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	return &Document{doc: doc}, nil
}

// Document is an open MuPDF document.
type Document struct {
	doc *fitz.Document
}

// NumPages returns the page count.
func (d *Document) NumPages() int {
	return d.doc.NumPage()
}

// RenderPNG renders page i, counting from 0, as a PNG at dpi.
func (d *Document) RenderPNG(i int, dpi float64) ([]byte, error) {
	return d.doc.ImagePNG(i, dpi)
}

// Close releases the document.
func (d *Document) Close() error {
	return d.doc.Close()
}
