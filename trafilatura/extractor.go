// Package trafilatura extracts the main content of notice detail pages.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/noticeharvest"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements noticeharvest.Extractor at compile time.
var _ noticeharvest.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
		},
	}
}

// Extract returns the page's main content. It returns ENOTFOUND when the
// page has no recognizable content body so callers can try another extractor.
func (e *Extractor) Extract(rawHTML string) (*noticeharvest.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, noticeharvest.Errorf(noticeharvest.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, noticeharvest.Errorf(noticeharvest.ENOTFOUND, "no main content: %v", err)
	}
	if result.ContentNode == nil || strings.TrimSpace(result.ContentText) == "" {
		return nil, noticeharvest.Errorf(noticeharvest.ENOTFOUND, "no main content")
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, err
	}

	return &noticeharvest.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
