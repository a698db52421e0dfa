package harvest

// State is a step in one produced record's path through the pipeline.
type State string

// Row states. A row starts Resolved (or Skipped) and, unless skipped, ends
// Persisted exactly once per produced field map.
const (
	StateSkipped        State = "skipped"
	StateResolved       State = "resolved"
	StateNoLink         State = "no_link"
	StateLinkFound      State = "link_found"
	StateDirectDocument State = "direct_document"
	StateDetailPage     State = "detail_page"
	StateFallback       State = "fallback"
	StateTextRecovered  State = "text_recovered"
	StateNormalized     State = "normalized"
	StatePersisted      State = "persisted"
)

// RowOutcome records how one field map of a source row was processed.
// Sub-table expansion gives a row one outcome per product.
type RowOutcome struct {
	// Row is the zero-based index of the source row in the listing table.
	Row int

	Title       string
	Artifact    string
	RecordID    int64
	Transitions []State

	// Err is set when the artifact could not be written or the record
	// could not be stored.
	Err error
}

// Terminal returns the last state reached.
func (o RowOutcome) Terminal() State {
	if len(o.Transitions) == 0 {
		return ""
	}
	return o.Transitions[len(o.Transitions)-1]
}

// Fallback reports whether the outcome went down the fallback path.
func (o RowOutcome) Fallback() bool {
	for _, s := range o.Transitions {
		if s == StateFallback {
			return true
		}
	}
	return false
}

// path accumulates transitions for one row. Branches copy it so sibling
// sub-rows do not share a backing array.
type path []State

func (p path) then(s ...State) path {
	out := make(path, 0, len(p)+len(s))
	out = append(out, p...)
	return append(out, s...)
}
