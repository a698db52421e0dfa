// Package fs provides the on-disk layout for artifacts.
package fs

import (
	"os"
	"path/filepath"

	"github.com/fwojciec/noticeharvest"
)

// Ensure Store implements noticeharvest.ArtifactStore at compile time.
var _ noticeharvest.ArtifactStore = (*Store)(nil)

// Store lays artifacts out as <baseDir>/<template dir>/<group>/<filename>.
type Store struct {
	baseDir string
}

// NewStore creates a new Store rooted at baseDir.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Locate returns the artifact path and creates its directory.
func (s *Store) Locate(tmpl noticeharvest.Template, group, filename string) (string, error) {
	g := noticeharvest.SanitizeFilename(group)
	if g == "" {
		g = noticeharvest.UnknownGroup
	}
	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) {
		return "", noticeharvest.Errorf(noticeharvest.EINVALID, "artifact filename required")
	}

	dir := filepath.Join(s.baseDir, tmpl.Dir, g)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// Save writes data to path, replacing any existing file.
func (s *Store) Save(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
