package noticeharvest

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Artifact is the document file backing one record.
type Artifact struct {
	// Path is the artifact location on disk.
	Path string

	// SourceURL is where a downloaded artifact came from, or the detail
	// page a generated artifact summarizes. Empty when no link existed.
	SourceURL string

	// Generated is true for summary documents rendered from a FieldMap
	// and false for documents downloaded from the site.
	Generated bool
}

// ArtifactStore decides where artifacts live and writes downloaded ones.
type ArtifactStore interface {
	// Locate returns the path for an artifact of the template, creating
	// its parent directory. Group names the per-product or per-entry
	// subdirectory. Existing files at that path are overwritten by later
	// writes.
	Locate(tmpl Template, group, filename string) (string, error)

	// Save writes data to path.
	Save(path string, data []byte) error
}

// DocumentRenderer writes a summary document for rows that have no richer
// downloadable artifact.
type DocumentRenderer interface {
	// Render writes title, then every field as a "key: value" line, then
	// body if non-empty, to path. Text outside the renderer's character
	// set is substituted, never dropped.
	Render(title string, fields *FieldMap, body string, path string) error
}

// DocumentExtensions are the link suffixes treated as direct documents.
var DocumentExtensions = []string{".pdf", ".doc", ".docx"}

// IsDocumentURL reports whether the URL path ends in a document extension.
// Query strings and fragments are ignored.
func IsDocumentURL(rawURL string) bool {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	p = strings.ToLower(p)
	for _, ext := range DocumentExtensions {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	return false
}

// UnknownGroup names the directory of rows whose group name sanitizes to
// nothing.
const UnknownGroup = "Unknown_Product"

// SummaryFilename returns the filename of a generated artifact:
// <prefix>_<sanitized name>_<stamp>.pdf. Names that sanitize alike map to
// the same file.
func SummaryFilename(tmpl Template, name, stamp string) string {
	s := SanitizeFilename(name)
	if s == "" {
		s = UnknownGroup
	}
	return fmt.Sprintf("%s_%s_%s.pdf", tmpl.ArtifactPrefix, s, stamp)
}

// DownloadFilename returns the filename for a downloaded document: the
// sanitized last path segment of its URL with the extension kept.
// Example: https://example.com/uploads/Recall%20Notice.PDF → Recall_Notice.pdf
func DownloadFilename(rawURL string) string {
	base := ""
	if u, err := url.Parse(rawURL); err == nil {
		base = path.Base(u.Path)
	}
	ext := strings.ToLower(path.Ext(base))
	stem := SanitizeFilename(strings.TrimSuffix(base, path.Ext(base)))
	if stem == "" {
		stem = "document"
	}
	if ext == "" {
		ext = ".pdf"
	}
	return stem + ext
}
