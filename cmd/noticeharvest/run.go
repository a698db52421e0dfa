package main

import (
	"fmt"

	"github.com/fwojciec/noticeharvest"
	"github.com/fwojciec/noticeharvest/harvest"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	tmpls, err := c.templates()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", noticeharvest.ErrorMessage(err))
		return err
	}

	h := deps.Harvester
	h.Progress = func(event harvest.ProgressEvent) {
		switch event.Type {
		case harvest.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "%s: found %d rows\n", event.Template, event.Total)
		case harvest.ProgressRowDone:
			if event.Error != nil {
				fmt.Fprintf(deps.Stderr, "  row %d/%d %q: %v\n", event.Completed, event.Total, event.Title, event.Error)
			}
		}
	}

	results := h.RunAll(deps.Ctx, tmpls)

	var failed int
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "%s: %v\n", res.Template, res.Err)
		}
		fmt.Fprintf(deps.Stdout, "%s: %d rows, %d records (%d fallback), %d skipped, %d not stored, %d failed\n",
			res.Template, res.Rows, res.Persisted, res.Fallbacks, res.Skipped, res.PersistFailed, res.Failed)
	}
	if len(results) > 0 {
		fmt.Fprintf(deps.Stdout, "run %s finished", results[0].RunID)
		if failed > 0 {
			fmt.Fprintf(deps.Stdout, " (%d of %d templates incomplete)", failed, len(results))
		}
		fmt.Fprintln(deps.Stdout)
	}

	return deps.Ctx.Err()
}

// templates returns the selected templates in run order with any URL
// overrides applied.
func (c *RunCmd) templates() ([]noticeharvest.Template, error) {
	selected := noticeharvest.Templates()
	if len(c.Template) > 0 {
		selected = selected[:0:0]
		seen := make(map[string]bool)
		for _, name := range c.Template {
			tmpl, err := noticeharvest.FindTemplate(name)
			if err != nil {
				return nil, err
			}
			if !seen[tmpl.Name] {
				seen[tmpl.Name] = true
				selected = append(selected, tmpl)
			}
		}
	}

	overrides := map[noticeharvest.EntryType]string{
		noticeharvest.EntryRecall:       c.RecallsURL,
		noticeharvest.EntryAlert:        c.AlertsURL,
		noticeharvest.EntryPressRelease: c.PressURL,
	}
	for i := range selected {
		if u := overrides[selected[i].Entry]; u != "" {
			selected[i].URL = u
		}
	}
	return selected, nil
}
