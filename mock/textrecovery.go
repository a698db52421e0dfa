package mock

import (
	"context"

	"github.com/fwojciec/noticeharvest"
)

var _ noticeharvest.TextLayerReader = (*TextLayerReader)(nil)

// TextLayerReader is a mock implementation of noticeharvest.TextLayerReader.
type TextLayerReader struct {
	OpenFn func(path string) (noticeharvest.PagedText, error)
}

func (r *TextLayerReader) Open(path string) (noticeharvest.PagedText, error) {
	return r.OpenFn(path)
}

var _ noticeharvest.PagedText = (*PagedText)(nil)

// PagedText is a mock implementation of noticeharvest.PagedText.
type PagedText struct {
	NumPagesFn func() int
	PageTextFn func(i int) (string, error)
	CloseFn    func() error
}

func (p *PagedText) NumPages() int {
	return p.NumPagesFn()
}

func (p *PagedText) PageText(i int) (string, error) {
	return p.PageTextFn(i)
}

func (p *PagedText) Close() error {
	return p.CloseFn()
}

var _ noticeharvest.Rasterizer = (*Rasterizer)(nil)

// Rasterizer is a mock implementation of noticeharvest.Rasterizer.
type Rasterizer struct {
	OpenFn func(path string) (noticeharvest.PagedImages, error)
}

func (r *Rasterizer) Open(path string) (noticeharvest.PagedImages, error) {
	return r.OpenFn(path)
}

var _ noticeharvest.PagedImages = (*PagedImages)(nil)

// PagedImages is a mock implementation of noticeharvest.PagedImages.
type PagedImages struct {
	NumPagesFn  func() int
	RenderPNGFn func(i int, dpi float64) ([]byte, error)
	CloseFn     func() error
}

func (p *PagedImages) NumPages() int {
	return p.NumPagesFn()
}

func (p *PagedImages) RenderPNG(i int, dpi float64) ([]byte, error) {
	return p.RenderPNGFn(i, dpi)
}

func (p *PagedImages) Close() error {
	return p.CloseFn()
}

var _ noticeharvest.Recognizer = (*Recognizer)(nil)

// Recognizer is a mock implementation of noticeharvest.Recognizer.
type Recognizer struct {
	RecognizeFn func(ctx context.Context, png []byte) (string, error)
}

func (r *Recognizer) Recognize(ctx context.Context, png []byte) (string, error) {
	return r.RecognizeFn(ctx, png)
}

var _ noticeharvest.TextRecoverer = (*TextRecoverer)(nil)

// TextRecoverer is a mock implementation of noticeharvest.TextRecoverer.
type TextRecoverer struct {
	RecoverTextFn func(ctx context.Context, path string) string
}

func (r *TextRecoverer) RecoverText(ctx context.Context, path string) string {
	return r.RecoverTextFn(ctx, path)
}
