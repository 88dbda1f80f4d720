package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/fwojciec/newsarchive"
	"github.com/fwojciec/newsarchive/fs"
	"github.com/fwojciec/newsarchive/mhtml"
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.Capture)
	if err != nil {
		return err
	}
	defer f.Close()

	html, err := deps.Decoder.Decode(f)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsarchive.ErrorMessage(err))
		return err
	}
	if err := os.WriteFile(c.Out, []byte(html), 0o644); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %s (%d bytes)\n", c.Out, len(html))
	return nil
}

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.In)
	if err != nil {
		return err
	}

	html := string(data)
	if mhtml.LooksLikeCapture(data) {
		if html, err = deps.Decoder.Decode(bytes.NewReader(data)); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", newsarchive.ErrorMessage(err))
			return err
		}
	}

	articles, err := deps.Extractor.ExtractArticles(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsarchive.ErrorMessage(err))
		return err
	}
	if err := fs.SaveArticles(c.Out, articles); err != nil {
		return err
	}

	summary := newsarchive.Summarize(articles)
	fmt.Fprintf(deps.Stdout, "Extracted %d articles (%d without date) to %s\n", summary.Total, summary.MissingDates, c.Out)
	if summary.DateRange != nil {
		fmt.Fprintf(deps.Stdout, "Dates: %s to %s\n", summary.DateRange.Start, summary.DateRange.End)
	}
	return nil
}
