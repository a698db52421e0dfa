package noticeharvest

// SourceRow is one table row: its cell texts in order and the detail
// link found in it, if any. Rows are never persisted.
type SourceRow struct {
	Cells []string
	Link  string
}

// Table is the listing table picked out of a rendered page.
type Table struct {
	// Strategy names the heuristic that selected the table.
	Strategy string
	Headers  []string
	Rows     []SourceRow
}

// TableLocator finds the listing table in rendered HTML.
type TableLocator interface {
	// Locate returns the first table matching the template's signature.
	// Returns ENOTFOUND when no table qualifies.
	Locate(html string, tmpl Template) (*Table, error)
}

// RowResolver maps a table row onto named fields.
type RowResolver interface {
	// Resolve returns the row's fields and detail link. ok is false for
	// rows that must be skipped: fewer than two cells, or a primary field
	// shorter than MinPrimaryLength.
	Resolve(row SourceRow, tmpl Template) (fields *FieldMap, link string, ok bool)
}

// DetailExtractor reads recall detail pages.
type DetailExtractor interface {
	// Expand recovers the reason narrative and expands any product
	// sub-tables into one field map per sub-row, each starting from a
	// copy of fields. Without sub-tables the result is fields alone with
	// the reason applied.
	Expand(html string, fields *FieldMap) ([]*FieldMap, error)

	// Reason returns the reason narrative, or "" if none qualifies.
	Reason(html string) string

	// DocumentLinks returns absolute URLs of linked documents in
	// document order.
	DocumentLinks(html string, baseURL string) []string
}
