package noticeharvest

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var unsafeFilenameChars = regexp.MustCompile(`[^\p{L}\p{N}_\- ]`)

// SanitizeFilename strips everything except letters, digits, underscores,
// hyphens and spaces, trims the result, and turns spaces into underscores.
// Example: "Amoxicillin 500mg (Batch #2)" → "Amoxicillin_500mg_Batch_2"
func SanitizeFilename(name string) string {
	s := unsafeFilenameChars.ReplaceAllString(name, "")
	s = strings.TrimSpace(s)
	return strings.ReplaceAll(s, " ", "_")
}

// ToLatin1 restricts s to characters representable in ISO-8859-1.
// Runes outside that set, and invalid UTF-8, are replaced with '?'.
func ToLatin1(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if r == utf8.RuneError && size <= 1 {
			b.WriteByte('?')
			continue
		}
		c, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			b.WriteByte('?')
			continue
		}
		b.WriteRune(charmap.ISO8859_1.DecodeByte(c))
	}
	return b.String()
}

// dateLayouts lists the date formats seen on the notice tables, most
// specific first. Day-first layouts win over month-first ones.
var dateLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2006-1-2",
	"2006/1/2",
	"2 January 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01",
	"2006",
}

// ParseDate parses a scraped date and returns it as YYYY-MM-DD.
// Partial dates are anchored to the first day ("2021" → "2021-01-01").
// Returns ok=false when no known layout matches.
func ParseDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(time.DateOnly), true
		}
	}
	return "", false
}
