package mock

import "github.com/fwojciec/noticeharvest"

var _ noticeharvest.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of noticeharvest.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*noticeharvest.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*noticeharvest.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ noticeharvest.Converter = (*Converter)(nil)

// Converter is a mock implementation of noticeharvest.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
