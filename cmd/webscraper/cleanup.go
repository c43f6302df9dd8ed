package main

import (
	"fmt"

	"github.com/dartisan/webscraper"
)

// Run executes the cleanup command.
func (c *CleanupCmd) Run(deps *Dependencies) error {
	n := c.Days
	if n == 0 {
		n = deps.Globals.RetentionDays
	}
	if n <= 0 {
		fmt.Fprintln(deps.Stderr, "error: retention must be at least one day")
		return webscraper.Errorf(webscraper.EINVALID, "retention must be at least one day")
	}

	removed, err := deps.Store.Sweep(deps.Ctx, days(n))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Removed %d documents older than %d days\n", removed, n)
	return nil
}
