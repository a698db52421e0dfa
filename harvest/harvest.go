// Package harvest drives the notice pipeline for each listing template:
// render, locate the table, then resolve, extract or fall back, recover
// text, normalize and persist every row in order.
package harvest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/noticeharvest"
	"github.com/google/uuid"
)

// RowSelector matches listing body rows while waiting for "show all".
const RowSelector = "table tbody tr"

// Harvester orchestrates one harvest run. Rows are processed one at a time.
type Harvester struct {
	Renderer   noticeharvest.Renderer
	Locator    noticeharvest.TableLocator
	Resolver   noticeharvest.RowResolver
	Details    noticeharvest.DetailExtractor
	Downloader noticeharvest.Downloader
	Documents  noticeharvest.DocumentRenderer
	Artifacts  noticeharvest.ArtifactStore
	Text       noticeharvest.TextRecoverer
	Records    noticeharvest.RecordWriter

	// Extractors are tried in order for the main content of alert and
	// press release pages that link no document.
	Extractors []noticeharvest.Extractor
	Converter  noticeharvest.Converter

	Logger   *slog.Logger
	Progress ProgressFunc

	// RunID tags every record of the run. A new one is generated when empty.
	RunID string

	// Now returns the run date used to stamp artifacts of undated rows.
	Now func() time.Time
}

// Result holds the outcome of one template run.
type Result struct {
	Template string
	RunID    string

	// Rows counts listing table body rows.
	Rows    int
	Skipped int

	// Persisted counts stored records; Fallbacks counts those whose
	// artifact is a fallback summary.
	Persisted     int
	Fallbacks     int
	PersistFailed int

	// Failed counts field maps whose artifact could not be written.
	Failed int

	Outcomes []RowOutcome

	// Err is the structural failure that ended the template early, if any.
	Err error
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Template  string
	Completed int
	Total     int
	Title     string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressRowDone
	ProgressRowSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// RunAll runs each template in order under one run id. A structural
// failure in one template is recorded in its Result and does not stop the
// others.
func (h *Harvester) RunAll(ctx context.Context, tmpls []noticeharvest.Template) []*Result {
	runID := h.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	results := make([]*Result, 0, len(tmpls))
	for _, tmpl := range tmpls {
		res, err := h.run(ctx, tmpl, runID)
		if err != nil {
			h.logger().Error("template failed", "template", tmpl.Name, "err", err)
		}
		results = append(results, res)
	}
	return results
}

// Run harvests a single template. The returned error is a structural
// failure (page unrenderable or no table); row failures never surface here.
func (h *Harvester) Run(ctx context.Context, tmpl noticeharvest.Template) (*Result, error) {
	runID := h.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	return h.run(ctx, tmpl, runID)
}

func (h *Harvester) run(ctx context.Context, tmpl noticeharvest.Template, runID string) (*Result, error) {
	res := &Result{Template: tmpl.Name, RunID: runID}
	log := h.logger().With("template", tmpl.Name)

	html, err := h.Renderer.Render(ctx, tmpl.URL, noticeharvest.RenderOptions{
		ShowAll:     true,
		RowSelector: RowSelector,
	})
	if err != nil {
		res.Err = fmt.Errorf("render %s: %w", tmpl.URL, err)
		return res, res.Err
	}

	table, err := h.Locator.Locate(html, tmpl)
	if err != nil {
		res.Err = fmt.Errorf("locate table: %w", err)
		return res, res.Err
	}
	res.Rows = len(table.Rows)
	log.Info("table located", "strategy", table.Strategy, "rows", res.Rows)
	h.progress(ProgressEvent{Type: ProgressStarted, Template: tmpl.Name, Total: res.Rows})

	r := &rowRun{h: h, tmpl: tmpl, runID: runID, res: res, log: log}
	for i, row := range table.Rows {
		if err := ctx.Err(); err != nil {
			res.Err = err
			return res, err
		}
		r.index = i
		r.process(ctx, row)
	}

	log.Info("template finished",
		"rows", res.Rows,
		"persisted", res.Persisted,
		"fallbacks", res.Fallbacks,
		"skipped", res.Skipped,
		"persist_failed", res.PersistFailed,
		"failed", res.Failed,
	)
	h.progress(ProgressEvent{Type: ProgressFinished, Template: tmpl.Name, Completed: res.Rows, Total: res.Rows})
	return res, nil
}

// rowRun carries per-template state while rows are processed.
type rowRun struct {
	h     *Harvester
	tmpl  noticeharvest.Template
	runID string
	res   *Result
	log   *slog.Logger
	index int
}

// process drives one source row to its terminal state(s).
func (r *rowRun) process(ctx context.Context, row noticeharvest.SourceRow) {
	fields, link, ok := r.h.Resolver.Resolve(row, r.tmpl)
	if !ok {
		r.res.Skipped++
		r.res.Outcomes = append(r.res.Outcomes, RowOutcome{Row: r.index, Transitions: []State{StateSkipped}})
		r.log.Debug("row skipped", "row", r.index, "cells", len(row.Cells))
		r.h.progress(ProgressEvent{Type: ProgressRowSkipped, Template: r.tmpl.Name, Completed: r.index + 1, Total: r.res.Rows})
		return
	}

	group := fields.Get(r.tmpl.PrimaryField)
	p := path{StateResolved}

	if link == "" {
		f := fields.Clone()
		f.Set(noticeharvest.FieldError, noticeharvest.ErrorNoDetailLink)
		r.fallback(ctx, group, f, "", p.then(StateNoLink, StateFallback))
		return
	}
	p = p.then(StateLinkFound)

	if noticeharvest.IsDocumentURL(link) {
		p = p.then(StateDirectDocument)
		if err := r.document(ctx, group, fields, link, p); err != nil {
			r.log.Warn("document download failed", "row", r.index, "url", link, "err", err)
			r.fallback(ctx, group, failureFields(fields, err), link, p.then(StateFallback))
		}
		return
	}

	p = p.then(StateDetailPage)
	page, err := r.h.Downloader.Download(ctx, link)
	if err != nil {
		r.log.Warn("detail page fetch failed", "row", r.index, "url", link, "err", err)
		r.fallback(ctx, group, failureFields(fields, err), link, p.then(StateFallback))
		return
	}
	pageURL := page.URL
	if pageURL == "" {
		pageURL = link
	}

	if r.tmpl.Entry == noticeharvest.EntryRecall {
		r.recallDetail(ctx, group, fields, string(page.Body), link, p)
		return
	}
	r.noticeDetail(ctx, group, fields, string(page.Body), pageURL, p)
}

// recallDetail expands a recall detail page into one summary per product.
func (r *rowRun) recallDetail(ctx context.Context, group string, fields *noticeharvest.FieldMap, page, link string, p path) {
	maps, err := r.h.Details.Expand(page, fields)
	if err != nil {
		r.log.Warn("detail page unreadable", "row", r.index, "url", link, "err", err)
		r.fallback(ctx, group, failureFields(fields, err), link, p.then(StateFallback))
		return
	}
	for _, m := range maps {
		m.Delete(noticeharvest.FieldError)
		r.summary(ctx, group, m, "", link, p)
	}
}

// noticeDetail stores the first document an alert or press release page
// links to, or a summary of the page's main content when it links none.
func (r *rowRun) noticeDetail(ctx context.Context, group string, fields *noticeharvest.FieldMap, page, pageURL string, p path) {
	if docs := r.h.Details.DocumentLinks(page, pageURL); len(docs) > 0 {
		dp := p.then(StateDirectDocument)
		err := r.document(ctx, group, fields, docs[0], dp)
		if err == nil {
			return
		}
		r.log.Warn("linked document download failed", "row", r.index, "url", docs[0], "err", err)
		r.fallback(ctx, group, failureFields(fields, err), pageURL, dp.then(StateFallback))
		return
	}

	f := fields.Clone()
	f.Set(noticeharvest.FieldSourceURL, pageURL)
	r.summary(ctx, group, f, r.h.mainContent(page), pageURL, p)
}

// document downloads a linked document, recovers its text and persists it.
// A returned error means no artifact was written and the caller must fall
// back.
func (r *rowRun) document(ctx context.Context, group string, fields *noticeharvest.FieldMap, link string, p path) error {
	dl, err := r.h.Downloader.Download(ctx, link)
	if err != nil {
		return err
	}

	artPath, err := r.h.Artifacts.Locate(r.tmpl, group, noticeharvest.DownloadFilename(link))
	if err != nil {
		return err
	}
	if err := r.h.Artifacts.Save(artPath, dl.Body); err != nil {
		return err
	}

	text := r.h.Text.RecoverText(ctx, artPath)
	art := noticeharvest.Artifact{Path: artPath, SourceURL: link}
	r.persist(ctx, fields, art, text, p.then(StateTextRecovered))
	return nil
}

// fallback renders a summary artifact for a row whose link was missing or
// failed.
func (r *rowRun) fallback(ctx context.Context, group string, fields *noticeharvest.FieldMap, link string, p path) {
	r.summary(ctx, group, fields, "", link, p)
}

// summary renders fields (and an optional body) into a generated artifact
// and persists it with the serialized fields as its text.
func (r *rowRun) summary(ctx context.Context, group string, fields *noticeharvest.FieldMap, body, link string, p path) {
	name := fields.Get(r.tmpl.PrimaryField)
	if strings.TrimSpace(name) == "" {
		name = group
	}
	filename := noticeharvest.SummaryFilename(r.tmpl, name, r.stamp(fields))

	artPath, err := r.h.Artifacts.Locate(r.tmpl, group, filename)
	if err == nil {
		err = r.h.Documents.Render(r.tmpl.Title(name), fields, body, artPath)
	}
	if err != nil {
		r.fail(name, artPath, p, fmt.Errorf("write summary: %w", err))
		return
	}

	text := fields.String()
	if body != "" {
		text += "\n\n" + body
	}
	art := noticeharvest.Artifact{Path: artPath, SourceURL: link, Generated: true}
	r.persist(ctx, fields, art, text, p)
}

// persist normalizes the field map and makes the single write attempt for
// it. Storage errors are logged and counted; the artifact stays on disk.
func (r *rowRun) persist(ctx context.Context, fields *noticeharvest.FieldMap, art noticeharvest.Artifact, text string, p path) {
	rec, err := noticeharvest.NewRecord(r.tmpl, fields, art, text)
	if err != nil {
		r.fail(fields.Get(r.tmpl.PrimaryField), art.Path, p, fmt.Errorf("normalize: %w", err))
		return
	}
	rec.RunID = r.runID
	p = p.then(StateNormalized, StatePersisted)

	out := RowOutcome{Row: r.index, Title: rec.Title(), Artifact: art.Path, Transitions: p}
	if err := r.h.Records.CreateRecord(ctx, rec); err != nil {
		r.res.PersistFailed++
		out.Err = err
		r.log.Error("persist failed", "row", r.index, "artifact", art.Path, "err", err)
	} else {
		r.res.Persisted++
		out.RecordID = rec.ID
		if out.Fallback() {
			r.res.Fallbacks++
		}
	}
	r.log.Debug("row done", "row", r.index, "title", out.Title, "transitions", p)

	r.res.Outcomes = append(r.res.Outcomes, out)
	r.h.progress(ProgressEvent{
		Type:      ProgressRowDone,
		Template:  r.tmpl.Name,
		Completed: r.index + 1,
		Total:     r.res.Rows,
		Title:     out.Title,
		Error:     out.Err,
	})
}

// fail records a field map that could not be given an artifact.
func (r *rowRun) fail(title, artPath string, p path, err error) {
	r.res.Failed++
	r.log.Error("row failed", "row", r.index, "title", title, "err", err)
	r.res.Outcomes = append(r.res.Outcomes, RowOutcome{
		Row:         r.index,
		Title:       title,
		Artifact:    artPath,
		Transitions: p,
		Err:         err,
	})
	r.h.progress(ProgressEvent{
		Type:      ProgressRowDone,
		Template:  r.tmpl.Name,
		Completed: r.index + 1,
		Total:     r.res.Rows,
		Title:     title,
		Error:     err,
	})
}

// stamp returns the artifact date stamp: the row's issue date when it
// parses, else the run date.
func (r *rowRun) stamp(fields *noticeharvest.FieldMap) string {
	if iso, ok := noticeharvest.ParseDate(fields.Get(r.tmpl.DateField)); ok {
		return strings.ReplaceAll(iso, "-", "")
	}
	return r.h.now().Format("20060102")
}

// failureFields copies fields for the fallback summary. Only a confirmed
// not-found earns the Error marker; any earlier marker is dropped.
func failureFields(fields *noticeharvest.FieldMap, err error) *noticeharvest.FieldMap {
	f := fields.Clone()
	if noticeharvest.ErrorCode(err) == noticeharvest.ENOTFOUND {
		f.Set(noticeharvest.FieldError, noticeharvest.ErrorNotFound)
	} else {
		f.Delete(noticeharvest.FieldError)
	}
	return f
}

// mainContent returns the page's main content as text, trying each
// extractor in turn. Returns "" when none finds anything.
func (h *Harvester) mainContent(page string) string {
	for _, e := range h.Extractors {
		res, err := e.Extract(page)
		if err != nil || res == nil || strings.TrimSpace(res.ContentHTML) == "" {
			h.logger().Debug("extractor found no content", "err", err)
			continue
		}
		if h.Converter == nil {
			return strings.TrimSpace(res.ContentHTML)
		}
		md, err := h.Converter.Convert(res.ContentHTML)
		if err != nil {
			h.logger().Debug("content conversion failed", "err", err)
			continue
		}
		return md
	}
	return ""
}

func (h *Harvester) progress(e ProgressEvent) {
	if h.Progress != nil {
		h.Progress(e)
	}
}

func (h *Harvester) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return h.Logger
}

func (h *Harvester) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}
