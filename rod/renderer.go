// Package rod renders JavaScript-driven listing pages with a headless
// Chrome browser.
package rod

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/noticeharvest"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// MinExpandedRows is the body-row count that signals the table grew past
// its default page size after choosing "show all".
const MinExpandedRows = 11

// requestIdle is how long the network must stay quiet before the page is
// considered settled.
const requestIdle = 500 * time.Millisecond

// Ensure Renderer implements noticeharvest.Renderer at compile time.
var _ noticeharvest.Renderer = (*Renderer)(nil)

// Renderer returns fully rendered HTML. Each call launches its own browser
// and closes it before returning, so no session outlives a render.
type Renderer struct {
	headless       bool
	bin            string
	pageTimeout    time.Duration
	elementTimeout time.Duration
	logger         *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithHeadless controls whether the browser window is hidden.
func WithHeadless(headless bool) Option {
	return func(r *Renderer) {
		r.headless = headless
	}
}

// WithBrowserBin points the launcher at a specific Chrome binary instead of
// letting rod find or download one.
func WithBrowserBin(path string) Option {
	return func(r *Renderer) {
		r.bin = path
	}
}

// WithPageTimeout sets the navigation and load timeout.
func WithPageTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.pageTimeout = d
	}
}

// WithElementTimeout sets how long to wait for rows after expanding the table.
func WithElementTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.elementTimeout = d
	}
}

// WithLogger reports page-size controls that could not be expanded.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// NewRenderer creates a new Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		headless:       true,
		pageTimeout:    noticeharvest.PageLoadTimeout,
		elementTimeout: noticeharvest.ElementWaitTimeout,
		logger:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render navigates to url, waits for the network to go idle, optionally
// switches the table's page-size control to show every entry, and returns
// the resulting HTML.
func (r *Renderer) Render(ctx context.Context, url string, opts noticeharvest.RenderOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s, err := openSession(r.headless, r.bin)
	if err != nil {
		return "", err
	}
	defer s.close()

	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	loading := page.Context(ctx).Timeout(r.pageTimeout)
	wait := loading.WaitRequestIdle(requestIdle, nil, nil, nil)
	if err := loading.Navigate(url); err != nil {
		return "", err
	}
	if err := loading.WaitLoad(); err != nil {
		return "", err
	}
	wait()

	if opts.ShowAll {
		r.showAll(page.Context(ctx), opts.RowSelector)
	}

	return page.Context(ctx).HTML()
}

// showAll picks the widest option of a "Show N entries" control if the page
// has one. Missing controls are ignored; a control that cannot be expanded
// is logged and the page is returned as it stands.
func (r *Renderer) showAll(page *rod.Page, rowSelector string) {
	p := page.Timeout(r.elementTimeout)

	selects, err := p.Elements("select")
	if err != nil {
		return
	}
	for _, sel := range selects {
		parent, err := sel.Parent()
		if err != nil {
			continue
		}
		label, err := parent.Text()
		if err != nil || !IsEntriesControl(label) {
			continue
		}

		options, err := sel.Elements("option")
		if err != nil {
			continue
		}
		texts := make([]string, 0, len(options))
		for _, o := range options {
			text, err := o.Text()
			if err != nil {
				continue
			}
			texts = append(texts, text)
		}

		choice, ok := ShowAllOption(texts)
		if !ok {
			continue
		}
		if err := sel.Select([]string{choice}, true, rod.SelectorTypeText); err != nil {
			r.logger.Warn("could not show all entries", "option", choice, "err", err)
			continue
		}

		if rowSelector == "" {
			rowSelector = "table tbody tr"
		}
		if err := p.Wait(rod.Eval(`(sel, min) => document.querySelectorAll(sel).length > min`, rowSelector, MinExpandedRows)); err != nil {
			r.logger.Warn("could not show all entries", "option", choice, "rows_over", MinExpandedRows, "err", err)
		}
		return
	}
}

// IsEntriesControl reports whether a select's surrounding label reads like
// a "Show N entries" page-size control.
func IsEntriesControl(label string) bool {
	l := strings.ToLower(label)
	return strings.Contains(l, "show") && strings.Contains(l, "entries")
}

// ShowAllOption chooses the option that displays the most rows: one labelled
// "All" if present, otherwise the largest number.
func ShowAllOption(options []string) (string, bool) {
	best, bestN := "", -1
	for _, o := range options {
		text := strings.TrimSpace(o)
		if strings.EqualFold(text, "all") {
			return text, true
		}
		if n, err := strconv.Atoi(text); err == nil && n > bestN {
			best, bestN = text, n
		}
	}
	return best, bestN >= 0
}
