// Package textract recovers the text of artifacts: the embedded text layer
// first, and optical recognition of rasterized pages when the text layer
// is too thin to be the real content.
package textract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/noticeharvest"
)

// Defaults for the two-stage policy.
const (
	// MinTextLength is the shortest text-layer output accepted without
	// running OCR.
	MinTextLength = 100

	// MaxOCRPages caps how many leading pages are rasterized.
	MaxOCRPages = 10

	// OCRDPI is the rasterization resolution.
	OCRDPI = 300
)

// Ensure Engine implements noticeharvest.TextRecoverer at compile time.
var _ noticeharvest.TextRecoverer = (*Engine)(nil)

// Engine extracts artifact text in two stages.
type Engine struct {
	TextLayer  noticeharvest.TextLayerReader
	Rasterizer noticeharvest.Rasterizer
	Recognizer noticeharvest.Recognizer
	Logger     *slog.Logger

	// MinTextLength, MaxOCRPages and DPI override the package defaults
	// when positive.
	MinTextLength int
	MaxOCRPages   int
	DPI           float64
}

// RecoverText returns the longer of the text-layer and OCR outputs. OCR
// only runs when the text layer yields fewer than MinTextLength characters.
func (e *Engine) RecoverText(ctx context.Context, path string) string {
	layer := e.textLayer(path)
	if utf8.RuneCountInString(strings.TrimSpace(layer)) >= e.minTextLength() {
		return layer
	}
	if e.Rasterizer == nil || e.Recognizer == nil {
		return layer
	}

	ocr := e.ocr(ctx, path)
	if utf8.RuneCountInString(ocr) > utf8.RuneCountInString(layer) {
		return ocr
	}
	return layer
}

// textLayer joins the text of every readable page with newlines.
func (e *Engine) textLayer(path string) string {
	if e.TextLayer == nil {
		return ""
	}
	doc, err := e.TextLayer.Open(path)
	if err != nil {
		e.logger().Warn("text layer unavailable", "path", path, "err", err)
		return ""
	}
	defer doc.Close()

	var pages []string
	for i := 0; i < doc.NumPages(); i++ {
		text, err := doc.PageText(i)
		if err != nil {
			e.logger().Warn("text layer page failed", "path", path, "page", i+1, "err", err)
			continue
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n")
}

// ocr rasterizes the leading pages and recognizes each, marking where
// every page starts.
func (e *Engine) ocr(ctx context.Context, path string) string {
	doc, err := e.Rasterizer.Open(path)
	if err != nil {
		e.logger().Warn("rasterization unavailable", "path", path, "err", err)
		return ""
	}
	defer doc.Close()

	n := min(doc.NumPages(), e.maxOCRPages())
	var b strings.Builder
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			e.logger().Warn("ocr interrupted", "path", path, "page", i+1, "err", err)
			break
		}
		img, err := doc.RenderPNG(i, e.dpi())
		if err != nil {
			e.logger().Warn("rasterize page failed", "path", path, "page", i+1, "err", err)
			continue
		}
		text, err := e.Recognizer.Recognize(ctx, img)
		if err != nil {
			e.logger().Warn("ocr page failed", "path", path, "page", i+1, "err", err)
			continue
		}
		fmt.Fprintf(&b, "--- Page %d ---\n%s\n", i+1, strings.TrimSpace(text))
	}
	return b.String()
}

func (e *Engine) minTextLength() int {
	if e.MinTextLength > 0 {
		return e.MinTextLength
	}
	return MinTextLength
}

func (e *Engine) maxOCRPages() int {
	if e.MaxOCRPages > 0 {
		return e.MaxOCRPages
	}
	return MaxOCRPages
}

func (e *Engine) dpi() float64 {
	if e.DPI > 0 {
		return e.DPI
	}
	return OCRDPI
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.DiscardHandler)
}
