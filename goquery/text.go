// Package goquery implements the HTML heuristics of noticeharvest on top of
// goquery: locating the listing table, resolving its rows, and reading
// recall detail pages.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// cellText returns the text of sel with whitespace runs collapsed.
func cellText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}

// joinedText returns the trimmed text nodes under sel joined by a single
// space, so adjacent block elements do not run together.
func joinedText(sel *goquery.Selection) string {
	var parts []string
	for _, n := range sel.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(parts, " ")
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if s := strings.Join(strings.Fields(n.Data), " "); s != "" {
			*parts = append(*parts, s)
		}
		return
	}
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// textNodes returns every non-blank text node of the document in order,
// skipping script and style content.
func textNodes(doc *goquery.Document) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				out = append(out, s)
			}
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return out
}

// resolveURL resolves href against base. Returns "" for unparseable or
// non-HTTP links. Fragments are stripped.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || isNonHTTPLink(href) {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := ref
	if base != nil {
		resolved = base.ResolveReference(ref)
	}
	resolved.Fragment = ""
	return resolved.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

// ownRows returns the rows of table, excluding rows of nested tables.
func ownRows(table *goquery.Selection) *goquery.Selection {
	return table.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.Closest("table").IsSelection(table)
	})
}

// headerRow returns the table's header row: its first thead row when it
// has one, else its first row.
func headerRow(table *goquery.Selection) *goquery.Selection {
	rows := ownRows(table)
	if head := rows.FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.ParentFiltered("thead").Length() > 0
	}); head.Length() > 0 {
		return head.First()
	}
	return rows.First()
}

// bodyRows returns the table's rows after the header row.
func bodyRows(table *goquery.Selection) *goquery.Selection {
	header := headerRow(table)
	return ownRows(table).FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return !tr.IsSelection(header) && tr.ParentFiltered("thead").Length() == 0
	})
}

// cellTexts returns the text of each td and th directly under tr.
func cellTexts(tr *goquery.Selection) []string {
	var out []string
	tr.ChildrenFiltered("td, th").Each(func(_ int, cell *goquery.Selection) {
		out = append(out, cellText(cell))
	})
	return out
}
