// Package readability provides a second-chance main-content extractor for
// pages trafilatura cannot make sense of.
package readability

import (
	"strings"

	"github.com/fwojciec/noticeharvest"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements noticeharvest.Extractor at compile time.
var _ noticeharvest.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page's main content, or ENOTFOUND when readability
// finds no article text.
func (e *Extractor) Extract(rawHTML string) (*noticeharvest.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, noticeharvest.Errorf(noticeharvest.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, noticeharvest.Errorf(noticeharvest.ENOTFOUND, "no main content: %v", err)
	}
	if strings.TrimSpace(article.TextContent) == "" {
		return nil, noticeharvest.Errorf(noticeharvest.ENOTFOUND, "no main content")
	}

	return &noticeharvest.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
