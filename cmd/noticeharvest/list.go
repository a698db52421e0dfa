package main

import (
	"fmt"

	"github.com/fwojciec/noticeharvest"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter, err := recordFilter(c.Type, c.RunID, c.Query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", noticeharvest.ErrorMessage(err))
		return err
	}
	filter.Limit = c.Limit

	records, err := deps.Records.FindRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", noticeharvest.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No records found. Use 'noticeharvest run' to harvest notices.")
		return nil
	}

	for _, r := range records {
		fmt.Fprintf(deps.Stdout, "%d  %s  %s  %s  %s\n", r.ID, r.Type, issueDate(r), r.Title(), r.ArtifactPath)
	}
	return nil
}

// issueDate returns the record's normalized issue date, or "-".
func issueDate(r *noticeharvest.Record) string {
	var d *string
	switch {
	case r.Recall != nil:
		d = r.Recall.DateIssued
	case r.Alert != nil:
		d = r.Alert.DateIssued
	case r.PressRelease != nil:
		d = r.PressRelease.Date
	}
	if d == nil {
		return "-"
	}
	return *d
}
