package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/noticeharvest"
)

// Ensure RowResolver implements noticeharvest.RowResolver at compile time.
var _ noticeharvest.RowResolver = (*RowResolver)(nil)

// RowResolver maps listing rows onto template fields by position.
type RowResolver struct{}

// NewRowResolver creates a new RowResolver.
func NewRowResolver() *RowResolver {
	return &RowResolver{}
}

// Resolve maps cells to the template's columns. Missing cells become "".
func (r *RowResolver) Resolve(row noticeharvest.SourceRow, tmpl noticeharvest.Template) (*noticeharvest.FieldMap, string, bool) {
	if len(row.Cells) < 2 {
		return nil, "", false
	}

	fields := &noticeharvest.FieldMap{}
	for i, name := range tmpl.Columns {
		var v string
		if i < len(row.Cells) {
			v = strings.TrimSpace(row.Cells[i])
		}
		fields.Set(name, v)
	}

	if utf8.RuneCountInString(fields.Get(tmpl.PrimaryField)) < noticeharvest.MinPrimaryLength {
		return nil, "", false
	}
	return fields, row.Link, true
}
