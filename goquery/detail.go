package goquery

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/noticeharvest"
)

// Ensure DetailExtractor implements noticeharvest.DetailExtractor at compile time.
var _ noticeharvest.DetailExtractor = (*DetailExtractor)(nil)

// ReasonLabels are the labels introducing a reason narrative, most
// specific first.
var ReasonLabels = []string{"reason for recall", "recall reason", "reason"}

// MaxReasonLength bounds an accepted reason; longer text is page content
// swept up around the label.
const MaxReasonLength = 500

var reasonExclusion = regexp.MustCompile(`(?i)privacy|policy|footer|copyright`)

// headerSynonyms maps lowercased sub-table headers onto canonical fields.
var headerSynonyms = map[string]string{
	"product description": noticeharvest.FieldProductName,
	"product name":        noticeharvest.FieldProductName,
	"batch(es)":           noticeharvest.FieldBatches,
	"batch numbers":       noticeharvest.FieldBatches,
	"batch number":        noticeharvest.FieldBatches,
	"batch no.":           noticeharvest.FieldBatches,
	"batch no":            noticeharvest.FieldBatches,
	"manufacturing date":  noticeharvest.FieldManufacturingDate,
	"manufacturing dates": noticeharvest.FieldManufacturingDate,
	"expiry date":         noticeharvest.FieldExpiryDate,
	"expiry dates":        noticeharvest.FieldExpiryDate,
}

// reasonTier finds candidate reason texts for one label. Tiers are tried
// in order; within a tier candidates are checked in document order.
type reasonTier struct {
	name       string
	candidates func(doc *goquery.Document, label *regexp.Regexp) []string
}

var reasonTiers = []reasonTier{
	{"adjacent-cell", adjacentCellCandidates},
	{"labelled-block", labelledBlockCandidates},
	{"text-node", textNodeCandidates},
}

// DetailExtractor reads recall detail pages.
type DetailExtractor struct {
	labels []*regexp.Regexp
}

// NewDetailExtractor creates a new DetailExtractor.
func NewDetailExtractor() *DetailExtractor {
	e := &DetailExtractor{}
	for _, l := range ReasonLabels {
		e.labels = append(e.labels, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(l)))
	}
	return e
}

// Reason returns the first acceptable reason narrative on the page.
func (e *DetailExtractor) Reason(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return e.reason(doc)
}

func (e *DetailExtractor) reason(doc *goquery.Document) string {
	for _, tier := range reasonTiers {
		for _, label := range e.labels {
			for _, c := range tier.candidates(doc, label) {
				if acceptReason(c) {
					return c
				}
			}
		}
	}
	return ""
}

// acceptReason rejects empty, overlong and boilerplate candidates.
func acceptReason(s string) bool {
	return s != "" &&
		utf8.RuneCountInString(s) < MaxReasonLength &&
		!reasonExclusion.MatchString(s)
}

// adjacentCellCandidates returns the cell after each th or td whose text
// contains the label.
func adjacentCellCandidates(doc *goquery.Document, label *regexp.Regexp) []string {
	var out []string
	doc.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		if !label.MatchString(cellText(cell)) {
			return
		}
		next := cell.NextAllFiltered("td, th").First()
		if next.Length() == 0 {
			return
		}
		out = append(out, joinedText(next))
	})
	return out
}

// labelledBlockCandidates returns the text after the label inside each
// paragraph or div containing it.
func labelledBlockCandidates(doc *goquery.Document, label *regexp.Regexp) []string {
	var out []string
	doc.Find("p, div").Each(func(_ int, block *goquery.Selection) {
		if c, ok := afterLabel(joinedText(block), label); ok {
			out = append(out, c)
		}
	})
	return out
}

// textNodeCandidates returns the text after the label in the first text
// node containing it.
func textNodeCandidates(doc *goquery.Document, label *regexp.Regexp) []string {
	for _, s := range textNodes(doc) {
		if c, ok := afterLabel(s, label); ok {
			return []string{c}
		}
	}
	return nil
}

func afterLabel(text string, label *regexp.Regexp) (string, bool) {
	loc := label.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	return strings.Trim(text[loc[1]:], " :-"), true
}

// Expand applies the reason narrative and expands product sub-tables.
func (e *DetailExtractor) Expand(html string, fields *noticeharvest.FieldMap) ([]*noticeharvest.FieldMap, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, noticeharvest.Errorf(noticeharvest.EINVALID, "failed to parse HTML: %v", err)
	}

	reason := e.reason(doc)

	var out []*noticeharvest.FieldMap
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		out = append(out, expandTable(table, fields, reason)...)
	})
	if len(out) > 0 {
		return out, nil
	}

	summary := fields.Clone()
	if reason != "" {
		summary.Set(noticeharvest.FieldReason, reason)
	}
	return []*noticeharvest.FieldMap{summary}, nil
}

// expandTable turns each body row of a product table into a field map.
// Key/value layouts (a th label followed by its value on every row) carry
// no product rows and yield nothing.
func expandTable(table *goquery.Selection, summary *noticeharvest.FieldMap, reason string) []*noticeharvest.FieldMap {
	if isKeyValueTable(table) {
		return nil
	}
	headers := cellTexts(headerRow(table))
	if len(headers) < 2 {
		return nil
	}

	var out []*noticeharvest.FieldMap
	bodyRows(table).Each(func(_ int, tr *goquery.Selection) {
		cells := cellTexts(tr)
		if blank(cells) {
			return
		}
		fields := summary.Clone()
		for i, v := range cells {
			if i >= len(headers) {
				break
			}
			fields.Set(canonicalHeader(headers[i]), v)
		}
		if reason != "" {
			fields.Set(noticeharvest.FieldReason, reason)
		}
		out = append(out, fields)
	})
	return out
}

func canonicalHeader(h string) string {
	if name, ok := headerSynonyms[strings.ToLower(strings.TrimSpace(h))]; ok {
		return name
	}
	return h
}

func isKeyValueTable(table *goquery.Selection) bool {
	rows := ownRows(table)
	if rows.Length() == 0 {
		return false
	}
	keyValue := true
	rows.EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		cells := tr.ChildrenFiltered("td, th")
		if cells.Length() != 2 || goquery.NodeName(cells.First()) != "th" || goquery.NodeName(cells.Last()) != "td" {
			keyValue = false
		}
		return keyValue
	})
	return keyValue
}

func blank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

// DocumentLinks returns the absolute URLs of linked documents, without
// duplicates, in document order.
func (e *DetailExtractor) DocumentLinks(html string, baseURL string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	base, _ := url.Parse(baseURL)

	seen := make(map[string]bool)
	var links []string
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] || !noticeharvest.IsDocumentURL(resolved) {
			return
		}
		seen[resolved] = true
		links = append(links, resolved)
	})
	return links
}
