package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/noticeharvest"
)

// Ensure TableLocator implements noticeharvest.TableLocator at compile time.
var _ noticeharvest.TableLocator = (*TableLocator)(nil)

// DynamicTableMarkers are id fragments of tables rendered by the site's
// table plugins.
var DynamicTableMarkers = []string{"tablepress", "wpdatatable", "datatable"}

// tableStrategy is one locator heuristic. Strategies are tried in order
// and the first table found wins.
type tableStrategy struct {
	name string
	find func(doc *goquery.Document) *goquery.Selection
}

// TableLocator finds the listing table of a rendered page.
type TableLocator struct{}

// NewTableLocator creates a new TableLocator.
func NewTableLocator() *TableLocator {
	return &TableLocator{}
}

// Locate returns the table selected by the template's strategies.
func (l *TableLocator) Locate(html string, tmpl noticeharvest.Template) (*noticeharvest.Table, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, noticeharvest.Errorf(noticeharvest.EINVALID, "failed to parse HTML: %v", err)
	}

	for _, s := range strategiesFor(tmpl) {
		table := s.find(doc)
		if table == nil || table.Length() == 0 {
			continue
		}
		return buildTable(table.First(), s.name, tmpl), nil
	}
	return nil, noticeharvest.Errorf(noticeharvest.ENOTFOUND, "no %s table found", tmpl.Name)
}

func strategiesFor(tmpl noticeharvest.Template) []tableStrategy {
	if tmpl.Entry == noticeharvest.EntryRecall {
		return []tableStrategy{
			{"header-signature", headerSignature(isProductNameLabel, isDateIssuedLabel)},
		}
	}
	return []tableStrategy{
		{"dynamic-table-id", dynamicTableByID},
		{"header-signature", headerSignature(isDateLabel, isTitleLabel)},
		{"first-table", func(doc *goquery.Document) *goquery.Selection { return doc.Find("table").First() }},
	}
}

// headerSignature matches the first table whose headers satisfy both
// label predicates.
func headerSignature(a, b func(string) bool) func(*goquery.Document) *goquery.Selection {
	return func(doc *goquery.Document) *goquery.Selection {
		var found *goquery.Selection
		doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
			headers := tableHeaders(table)
			if anyLabel(headers, a) && anyLabel(headers, b) {
				found = table
				return false
			}
			return true
		})
		return found
	}
}

// dynamicTableByID matches the first element whose id carries a dynamic
// table marker: the element itself when it is a table, else the first
// table inside it.
func dynamicTableByID(doc *goquery.Document) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("[id]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		id, _ := sel.Attr("id")
		if !hasMarker(id) {
			return true
		}
		if goquery.NodeName(sel) == "table" {
			found = sel
			return false
		}
		if inner := sel.Find("table").First(); inner.Length() > 0 {
			found = inner
			return false
		}
		return true
	})
	return found
}

func hasMarker(id string) bool {
	id = strings.ToLower(id)
	for _, m := range DynamicTableMarkers {
		if strings.Contains(id, m) {
			return true
		}
	}
	return false
}

// tableHeaders returns the lowercased header labels of table. All th
// cells count, so tables whose headers sit outside the first row still
// match.
func tableHeaders(table *goquery.Selection) []string {
	var out []string
	table.Find("th").Each(func(_ int, th *goquery.Selection) {
		if th.Closest("table").IsSelection(table) {
			out = append(out, strings.ToLower(cellText(th)))
		}
	})
	if len(out) == 0 {
		for _, h := range cellTexts(headerRow(table)) {
			out = append(out, strings.ToLower(h))
		}
	}
	return out
}

func anyLabel(headers []string, pred func(string) bool) bool {
	for _, h := range headers {
		if pred(h) {
			return true
		}
	}
	return false
}

func isProductNameLabel(h string) bool {
	return strings.Contains(h, "product name") || strings.Contains(h, "product description")
}

func isDateIssuedLabel(h string) bool {
	return strings.Contains(h, "date") && (strings.Contains(h, "issued") || strings.Contains(h, "recall"))
}

func isDateLabel(h string) bool {
	return strings.Contains(h, "date")
}

func isTitleLabel(h string) bool {
	return strings.Contains(h, "title") || strings.Contains(h, "press") || strings.Contains(h, "alert")
}

// buildTable extracts headers and body rows. Each row's detail link is
// taken from the template's link column, resolved against the page URL.
func buildTable(table *goquery.Selection, strategy string, tmpl noticeharvest.Template) *noticeharvest.Table {
	base, _ := url.Parse(tmpl.URL)

	t := &noticeharvest.Table{
		Strategy: strategy,
		Headers:  cellTexts(headerRow(table)),
	}
	bodyRows(table).Each(func(_ int, tr *goquery.Selection) {
		cells := tr.ChildrenFiltered("td, th")
		row := noticeharvest.SourceRow{Cells: cellTexts(tr)}

		scope := cells
		if tmpl.LinkColumn != noticeharvest.AnyColumn {
			scope = cells.Eq(tmpl.LinkColumn)
		}
		scope.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			href, _ := a.Attr("href")
			row.Link = resolveURL(base, href)
			return row.Link == ""
		})
		t.Rows = append(t.Rows, row)
	})
	return t
}
