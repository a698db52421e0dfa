// Package htmltomarkdown turns extracted notice content into text for the
// summary document body.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/noticeharvest"
)

// Ensure Converter implements noticeharvest.Converter at compile time.
var _ noticeharvest.Converter = (*Converter)(nil)

var (
	blankRuns = regexp.MustCompile(`\n{3,}`)
	images    = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	links     = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]+)(?:\s+"[^"]*")?\)`)
	strong    = regexp.MustCompile(`(\*\*|__)(.+?)(\*\*|__)`)
	emphasis  = regexp.MustCompile(`\*([^*\n]+)\*`)
	headings  = regexp.MustCompile(`(?m)^#{1,6}[ \t]+`)
	escapes   = regexp.MustCompile("\\\\([\\\\`*_{}\\[\\]()#+\\-.!|>~])")
)

// Converter wraps html-to-markdown to convert HTML to Markdown, or to
// plain text for documents that cannot show Markdown.
type Converter struct {
	conv  *converter.Converter
	plain bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithPlainText strips Markdown markup from the output: headings and
// emphasis lose their markers, images are dropped, and links read as
// "text (url)". Tables stay pipe-delimited.
func WithPlainText() Option {
	return func(c *Converter) {
		c.plain = true
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	c := &Converter{conv: conv}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms HTML content into Markdown with at most one blank line
// between blocks.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", noticeharvest.Errorf(noticeharvest.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	if c.plain {
		result = plainText(result)
	}
	return strings.TrimSpace(blankRuns.ReplaceAllString(result, "\n\n")), nil
}

func plainText(md string) string {
	md = images.ReplaceAllString(md, "")
	md = links.ReplaceAllStringFunc(md, func(m string) string {
		sub := links.FindStringSubmatch(m)
		text, href := strings.TrimSpace(sub[1]), sub[2]
		if text == "" || text == href {
			return href
		}
		return text + " (" + href + ")"
	})
	md = strong.ReplaceAllString(md, "$2")
	md = emphasis.ReplaceAllString(md, "$1")
	md = headings.ReplaceAllString(md, "")
	return escapes.ReplaceAllString(md, "$1")
}
