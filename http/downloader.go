// Package http provides an HTTP-based implementation of
// noticeharvest.Downloader for detail pages and documents, which need no
// JavaScript rendering.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/noticeharvest"
	"golang.org/x/time/rate"
)

// DefaultUserAgent identifies the harvester to the site.
const DefaultUserAgent = "noticeharvest/1.0 (+https://github.com/fwojciec/noticeharvest)"

// MaxBodySize caps a single download.
const MaxBodySize = 64 << 20

// Ensure Downloader implements noticeharvest.Downloader at compile time.
var _ noticeharvest.Downloader = (*Downloader)(nil)

// Downloader fetches URLs with a fixed timeout and no retries.
type Downloader struct {
	client    *http.Client
	timeout   time.Duration
	limiter   *rate.Limiter
	userAgent string
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithTimeout sets the per-request timeout.
// Defaults to noticeharvest.DownloadTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(dl *Downloader) {
		dl.timeout = d
	}
}

// WithRateLimit paces requests to rps per second with no bursting.
// A non-positive rps disables pacing.
func WithRateLimit(rps float64) Option {
	return func(dl *Downloader) {
		if rps <= 0 {
			dl.limiter = nil
			return
		}
		dl.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(dl *Downloader) {
		dl.userAgent = ua
	}
}

// NewDownloader creates a new Downloader.
func NewDownloader(opts ...Option) *Downloader {
	dl := &Downloader{
		timeout:   noticeharvest.DownloadTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(dl)
	}

	dl.client = &http.Client{
		Timeout: dl.timeout,
	}

	return dl
}

// Download retrieves the URL body. 404 maps to ENOTFOUND and any other
// non-2xx status to EUNAVAILABLE.
func (dl *Downloader) Download(ctx context.Context, url string) (*noticeharvest.Download, error) {
	if dl.limiter != nil {
		if err := dl.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, noticeharvest.Errorf(noticeharvest.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", dl.userAgent)

	resp, err := dl.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, noticeharvest.Errorf(noticeharvest.ENOTFOUND, "HTTP 404 for %s", url)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, noticeharvest.Errorf(noticeharvest.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > MaxBodySize {
		return nil, noticeharvest.Errorf(noticeharvest.EUNAVAILABLE, "body of %s exceeds %d bytes", url, MaxBodySize)
	}

	return &noticeharvest.Download{
		URL:         resp.Request.URL.String(),
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// String describes the downloader configuration for logs.
func (dl *Downloader) String() string {
	limit := "unlimited"
	if dl.limiter != nil {
		limit = fmt.Sprintf("%.2f/s", float64(dl.limiter.Limit()))
	}
	return fmt.Sprintf("http.Downloader(timeout=%s rate=%s)", dl.timeout, limit)
}
