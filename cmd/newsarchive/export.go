package main

import (
	"fmt"

	"github.com/fwojciec/newsarchive"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	req := newsarchive.ExportRequest{
		Date:           c.Date,
		IncludeContent: c.Content,
		IncludeImages:  c.Images,
	}

	path, err := deps.Exporter.Run(deps.Ctx, req, func(ev newsarchive.ProgressEvent) {
		if ev.Status == newsarchive.JobError {
			return
		}
		fmt.Fprintf(deps.Stdout, "[%3d%%] %s\n", ev.Percentage, ev.Message)
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsarchive.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %s\n", path)
	return nil
}
