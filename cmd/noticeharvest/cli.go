package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/noticeharvest"
	"github.com/fwojciec/noticeharvest/harvest"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Records   noticeharvest.RecordService
	Harvester *harvest.Harvester
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB          string `name:"db" env:"NOTICEHARVEST_DB" help:"SQLite database path (default ~/.noticeharvest/noticeharvest.db)"`
	PostgresDSN string `name:"postgres-dsn" env:"NOTICEHARVEST_POSTGRES_DSN" help:"Store records in Postgres instead of SQLite"`
	Verbose     bool   `short:"v" env:"NOTICEHARVEST_VERBOSE" help:"Log at debug level"`

	Run   RunCmd   `cmd:"" help:"Harvest the notice listings"`
	List  ListCmd  `cmd:"" help:"List stored records, newest first"`
	Purge PurgeCmd `cmd:"" help:"Delete stored records"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Template   []string `short:"t" name:"template" help:"Template to run: recalls, alerts or press-releases (repeatable; default all)"`
	OutputDir  string   `short:"o" name:"output-dir" env:"NOTICEHARVEST_OUTPUT_DIR" default:"./recalls" help:"Artifact root directory"`
	RecallsURL string   `name:"recalls-url" env:"NOTICEHARVEST_RECALLS_URL" help:"Override the recall listing URL"`
	AlertsURL  string   `name:"alerts-url" env:"NOTICEHARVEST_ALERTS_URL" help:"Override the public alert listing URL"`
	PressURL   string   `name:"press-url" env:"NOTICEHARVEST_PRESS_URL" help:"Override the press release listing URL"`
	Headless   bool     `env:"NOTICEHARVEST_HEADLESS" default:"true" negatable:"" help:"Run the browser headless"`
	Rate       float64  `env:"NOTICEHARVEST_RATE" default:"2" help:"Detail page and document requests per second (0 disables pacing)"`
	OCRLang    string   `name:"ocr-lang" env:"NOTICEHARVEST_OCR_LANG" default:"eng" help:"Tesseract language(s), joined with '+'"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Type  string `help:"Only records of this entry type (recall, alert, press_release)"`
	Query string `short:"q" help:"Match titles, product names and text"`
	RunID string `name:"run-id" help:"Only records of this run"`
	Limit int    `short:"n" default:"20" help:"Maximum records to show (0 for all)"`
}

// PurgeCmd is the "purge" subcommand.
type PurgeCmd struct {
	Type  string `help:"Only records of this entry type (recall, alert, press_release)"`
	RunID string `name:"run-id" help:"Only records of this run"`
	Force bool   `help:"Confirm deletion"`
}

// recordFilter builds a filter from optional command flags.
func recordFilter(typ, runID, query string) (noticeharvest.RecordFilter, error) {
	var filter noticeharvest.RecordFilter
	if typ != "" {
		t := noticeharvest.EntryType(typ)
		if !t.Valid() {
			return filter, noticeharvest.Errorf(noticeharvest.EINVALID, "unknown entry type %q", typ)
		}
		filter.Type = &t
	}
	if runID != "" {
		filter.RunID = &runID
	}
	if query != "" {
		filter.Query = &query
	}
	return filter, nil
}
