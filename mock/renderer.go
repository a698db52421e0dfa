package mock

import (
	"context"

	"github.com/fwojciec/noticeharvest"
)

var _ noticeharvest.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of noticeharvest.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, url string, opts noticeharvest.RenderOptions) (string, error)
}

func (r *Renderer) Render(ctx context.Context, url string, opts noticeharvest.RenderOptions) (string, error) {
	return r.RenderFn(ctx, url, opts)
}

var _ noticeharvest.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of noticeharvest.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, url string) (*noticeharvest.Download, error)
}

func (d *Downloader) Download(ctx context.Context, url string) (*noticeharvest.Download, error) {
	return d.DownloadFn(ctx, url)
}
