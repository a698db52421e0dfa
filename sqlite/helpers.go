package sqlite

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/noticeharvest"
)

// parseRFC3339 parses an RFC3339 formatted timestamp string.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// hashText computes xxHash of the record text and returns a hex string.
// Records without text hash to "".
func hashText(text *string) string {
	if text == nil {
		return ""
	}
	var b [8]byte
	h := xxhash.Sum64String(*text)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b[:])
}

// nullable converts an optional string to a driver value, keeping nil as NULL.
func nullable(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// ptr converts a scanned nullable column back to an optional string.
func ptr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// appendFilter appends WHERE conditions for the filter's Type, RunID and
// Query fields.
func appendFilter(query *strings.Builder, args *[]any, filter noticeharvest.RecordFilter) {
	query.WriteString(" WHERE 1=1")
	if filter.Type != nil {
		query.WriteString(" AND entry_type = ?")
		*args = append(*args, string(*filter.Type))
	}
	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		*args = append(*args, *filter.RunID)
	}
	if filter.Query != nil {
		query.WriteString(` AND (product_name LIKE ? OR alert_title LIKE ? OR press_release_title LIKE ? OR all_text LIKE ?)`)
		like := "%" + *filter.Query + "%"
		*args = append(*args, like, like, like, like)
	}
}

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		if limit <= 0 {
			query.WriteString(" LIMIT -1")
		}
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
