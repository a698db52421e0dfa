package noticeharvest

import "strings"

// Canonical field names. Table headers that match none of these are kept
// verbatim as FieldMap keys.
const (
	FieldDateRecallIssued  = "Date Recall was Issued"
	FieldProductName       = "Product Name"
	FieldProductType       = "Product Type"
	FieldManufacturer      = "Manufacturer"
	FieldRecallingFirm     = "Recalling Firm"
	FieldBatches           = "Batch(es)"
	FieldManufacturingDate = "Manufacturing Date"
	FieldExpiryDate        = "Expiry Date"
	FieldReason            = "Reason for Recall"

	FieldDateIssued = "Date Issued"
	FieldAlertTitle = "Alert Title"

	FieldDate  = "Date"
	FieldTitle = "Title"

	FieldError     = "Error"
	FieldSourceURL = "Source URL"
)

// Marker values written to FieldError on the fallback path.
const (
	ErrorNoDetailLink = "No detail link found."
	ErrorNotFound     = "404 Not Found"
)

// FieldMap is an insertion-ordered mapping of field name to scraped value.
// The zero value is ready to use.
type FieldMap struct {
	keys   []string
	values map[string]string
}

// NewFieldMap returns a FieldMap populated from alternating key/value pairs.
// A trailing key without a value is ignored.
func NewFieldMap(pairs ...string) *FieldMap {
	m := &FieldMap{}
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return m
}

// Set assigns value to key. Existing keys keep their original position.
func (m *FieldMap) Set(key, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key, or "" when the key is absent.
func (m *FieldMap) Get(key string) string {
	return m.values[key]
}

// Lookup returns the value for key and whether the key is present.
func (m *FieldMap) Lookup(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Delete removes key if present.
func (m *FieldMap) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (m *FieldMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of fields.
func (m *FieldMap) Len() int {
	return len(m.keys)
}

// Clone returns an independent copy of m.
func (m *FieldMap) Clone() *FieldMap {
	c := &FieldMap{
		keys:   make([]string, len(m.keys)),
		values: make(map[string]string, len(m.values)),
	}
	copy(c.keys, m.keys)
	for k, v := range m.values {
		c.values[k] = v
	}
	return c
}

// String serializes the fields as "key: value" lines in insertion order.
// This is the text stored for records backed by a generated summary.
func (m *FieldMap) String() string {
	var b strings.Builder
	for i, k := range m.keys {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(m.values[k])
	}
	return b.String()
}
