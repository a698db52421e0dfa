package mock

import "github.com/fwojciec/noticeharvest"

var _ noticeharvest.TableLocator = (*TableLocator)(nil)

// TableLocator is a mock implementation of noticeharvest.TableLocator.
type TableLocator struct {
	LocateFn func(html string, tmpl noticeharvest.Template) (*noticeharvest.Table, error)
}

func (l *TableLocator) Locate(html string, tmpl noticeharvest.Template) (*noticeharvest.Table, error) {
	return l.LocateFn(html, tmpl)
}

var _ noticeharvest.RowResolver = (*RowResolver)(nil)

// RowResolver is a mock implementation of noticeharvest.RowResolver.
type RowResolver struct {
	ResolveFn func(row noticeharvest.SourceRow, tmpl noticeharvest.Template) (*noticeharvest.FieldMap, string, bool)
}

func (r *RowResolver) Resolve(row noticeharvest.SourceRow, tmpl noticeharvest.Template) (*noticeharvest.FieldMap, string, bool) {
	return r.ResolveFn(row, tmpl)
}

var _ noticeharvest.DetailExtractor = (*DetailExtractor)(nil)

// DetailExtractor is a mock implementation of noticeharvest.DetailExtractor.
type DetailExtractor struct {
	ExpandFn        func(html string, fields *noticeharvest.FieldMap) ([]*noticeharvest.FieldMap, error)
	ReasonFn        func(html string) string
	DocumentLinksFn func(html string, baseURL string) []string
}

func (e *DetailExtractor) Expand(html string, fields *noticeharvest.FieldMap) ([]*noticeharvest.FieldMap, error) {
	return e.ExpandFn(html, fields)
}

func (e *DetailExtractor) Reason(html string) string {
	return e.ReasonFn(html)
}

func (e *DetailExtractor) DocumentLinks(html string, baseURL string) []string {
	return e.DocumentLinksFn(html, baseURL)
}
