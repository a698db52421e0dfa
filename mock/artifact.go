package mock

import "github.com/fwojciec/noticeharvest"

var _ noticeharvest.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore is a mock implementation of noticeharvest.ArtifactStore.
type ArtifactStore struct {
	LocateFn func(tmpl noticeharvest.Template, group, filename string) (string, error)
	SaveFn   func(path string, data []byte) error
}

func (s *ArtifactStore) Locate(tmpl noticeharvest.Template, group, filename string) (string, error) {
	return s.LocateFn(tmpl, group, filename)
}

func (s *ArtifactStore) Save(path string, data []byte) error {
	return s.SaveFn(path, data)
}

var _ noticeharvest.DocumentRenderer = (*DocumentRenderer)(nil)

// DocumentRenderer is a mock implementation of noticeharvest.DocumentRenderer.
type DocumentRenderer struct {
	RenderFn func(title string, fields *noticeharvest.FieldMap, body string, path string) error
}

func (r *DocumentRenderer) Render(title string, fields *noticeharvest.FieldMap, body string, path string) error {
	return r.RenderFn(title, fields, body, path)
}
