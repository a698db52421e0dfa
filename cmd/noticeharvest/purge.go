package main

import (
	"fmt"

	"github.com/fwojciec/noticeharvest"
)

// Run executes the purge command. Artifacts on disk are left alone.
func (c *PurgeCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return noticeharvest.Errorf(noticeharvest.EINVALID, "use --force to confirm deletion")
	}

	filter, err := recordFilter(c.Type, c.RunID, "")
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", noticeharvest.ErrorMessage(err))
		return err
	}

	n, err := deps.Records.DeleteRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", noticeharvest.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted %d records\n", n)
	return nil
}
