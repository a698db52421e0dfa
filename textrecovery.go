package noticeharvest

import "context"

// PagedText is an opened document's embedded text layer.
type PagedText interface {
	NumPages() int
	// PageText returns the text of page i, counting from 0.
	PageText(i int) (string, error)
	Close() error
}

// TextLayerReader opens documents for text-layer extraction.
type TextLayerReader interface {
	Open(path string) (PagedText, error)
}

// PagedImages is an opened document that can be rasterized.
type PagedImages interface {
	NumPages() int
	// RenderPNG rasterizes page i, counting from 0, at dpi.
	RenderPNG(i int, dpi float64) ([]byte, error)
	Close() error
}

// Rasterizer opens documents for rasterization.
type Rasterizer interface {
	Open(path string) (PagedImages, error)
}

// Recognizer runs optical character recognition on an image.
type Recognizer interface {
	Recognize(ctx context.Context, png []byte) (string, error)
}

// TextRecoverer extracts the text of an artifact.
type TextRecoverer interface {
	// RecoverText never fails: extraction errors degrade to partial or
	// empty text.
	RecoverText(ctx context.Context, path string) string
}
