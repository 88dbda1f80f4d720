package main

import (
	"fmt"
	"slices"

	"github.com/fwojciec/newsarchive"
	"github.com/fwojciec/newsarchive/fs"
)

// Run executes the merge command.
func (c *MergeCmd) Run(deps *Dependencies) error {
	batches := make([][]*newsarchive.Article, 0, len(c.Inputs))
	for _, path := range c.Inputs {
		articles, err := fs.LoadArticles(path)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", newsarchive.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Loaded %d articles from %s\n", len(articles), path)
		batches = append(batches, articles)
	}

	merged, summary := newsarchive.Merge(batches...)
	if err := fs.SaveArticles(c.Out, merged); err != nil {
		return err
	}
	if c.Summary != "" {
		if err := fs.SaveJSON(c.Summary, summary); err != nil {
			return err
		}
	}

	printSummary(deps, summary)
	return nil
}

func printSummary(deps *Dependencies, s *newsarchive.MergeSummary) {
	w := deps.Stdout
	fmt.Fprintf(w, "Total articles: %d\n", s.Total)
	fmt.Fprintf(w, "Duplicates removed: %d\n", s.Duplicates)
	if s.DateRange != nil {
		fmt.Fprintf(w, "Date range: %s to %s\n", s.DateRange.Start, s.DateRange.End)
	}
	for _, t := range newsarchive.ArticleTypes {
		if n := s.TypeCounts[t]; n > 0 {
			fmt.Fprintf(w, "  %s: %d\n", t, n)
		}
	}
	years := make([]string, 0, len(s.YearCounts))
	for y := range s.YearCounts {
		years = append(years, y)
	}
	slices.Sort(years)
	for _, y := range years {
		fmt.Fprintf(w, "  %s: %d\n", y, s.YearCounts[y])
	}
	fmt.Fprintf(w, "Missing dates: %d, excerpts: %d, images: %d\n", s.MissingDates, s.MissingExcerpts, s.MissingImages)
}
