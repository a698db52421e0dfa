package noticeharvest

import (
	"context"
	"time"
)

// Fixed timeouts for network and browser calls.
const (
	PageLoadTimeout    = 60 * time.Second
	ElementWaitTimeout = 10 * time.Second
	DownloadTimeout    = 30 * time.Second
)

// RenderOptions controls how a listing page is rendered.
type RenderOptions struct {
	// ShowAll asks the renderer to switch a "Show N entries" control to
	// its largest setting. A page without such a control is not an error.
	ShowAll bool

	// RowSelector matches table body rows; the renderer waits briefly for
	// more rows to appear after changing the entries control.
	RowSelector string
}

// Renderer retrieves fully rendered HTML from JavaScript-driven pages.
type Renderer interface {
	// Render navigates to the URL, waits for network activity to settle,
	// applies opts, and returns the rendered HTML. The browser session is
	// released before Render returns.
	Render(ctx context.Context, url string, opts RenderOptions) (html string, err error)
}

// Download is the body of a fetched URL.
type Download struct {
	URL         string
	ContentType string
	Body        []byte
}

// Downloader fetches detail pages and documents without a browser.
type Downloader interface {
	// Download fetches the URL. A 404 response returns ENOTFOUND; any
	// other non-2xx response returns EUNAVAILABLE. Transport errors and
	// timeouts are returned as-is.
	Download(ctx context.Context, url string) (*Download, error)
}
