// Package tesseract performs optical character recognition with
// github.com/otiai10/gosseract.
package tesseract

import (
	"context"
	"fmt"

	"github.com/fwojciec/noticeharvest"
	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguage is the tesseract language used when none is configured.
const DefaultLanguage = "eng"

// Ensure Recognizer implements noticeharvest.Recognizer at compile time.
var _ noticeharvest.Recognizer = (*Recognizer)(nil)

// Recognizer runs tesseract on PNG images. Each call uses its own client,
// so Recognizer holds no engine state between pages.
type Recognizer struct {
	languages []string
}

// Option configures a Recognizer.
type Option func(*Recognizer)

// WithLanguages sets the tesseract languages, e.g. "eng", "fra".
func WithLanguages(langs ...string) Option {
	return func(r *Recognizer) {
		r.languages = langs
	}
}

// NewRecognizer creates a new Recognizer.
func NewRecognizer(opts ...Option) *Recognizer {
	r := &Recognizer{languages: []string{DefaultLanguage}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recognize returns the text tesseract reads from png.
func (r *Recognizer) Recognize(ctx context.Context, png []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(r.languages...); err != nil {
		return "", fmt.Errorf("setting language: %w", err)
	}
	if err := client.SetImageFromBytes(png); err != nil {
		return "", fmt.Errorf("loading image: %w", err)
	}
	return client.Text()
}
