package main

import (
	"fmt"

	"github.com/fwojciec/newsarchive"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	ctx, w := deps.Ctx, deps.Stdout

	stats, err := deps.Articles.Statistics(ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsarchive.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(w, "Total articles: %d\n", stats.Total)
	if stats.DateRange != nil {
		fmt.Fprintf(w, "Date range: %s to %s\n", stats.DateRange.Start, stats.DateRange.End)
	}
	fmt.Fprintf(w, "With images: %d\n", stats.WithImages)
	fmt.Fprintf(w, "Undated: %d\n", stats.UndatedCount)
	fmt.Fprintln(w, "Types:")
	for _, t := range newsarchive.ArticleTypes {
		if n := stats.TypeCounts[t]; n > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", t, n)
		}
	}
	if len(stats.CommonWords) > 0 {
		fmt.Fprintln(w, "Common title words:")
		for _, wc := range stats.CommonWords {
			fmt.Fprintf(w, "  %s %d\n", wc.Word, wc.Count)
		}
	}

	if c.Timeline {
		months, err := deps.Articles.Timeline(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "Timeline:")
		for _, m := range months {
			fmt.Fprintf(w, "  %s %d\n", m.Date, m.Count)
		}
	}

	if len(c.Keywords) > 0 {
		counts, err := deps.Articles.KeywordCounts(ctx, c.Keywords)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", newsarchive.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(w, "Keywords:")
		for _, wc := range counts {
			fmt.Fprintf(w, "  %s %d\n", wc.Word, wc.Count)
		}
	}

	if c.Days > 0 {
		days, err := deps.Articles.MostActiveDays(ctx, c.Days)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "Most active days:")
		for _, d := range days {
			fmt.Fprintf(w, "  %s %d\n", d.Date, d.Count)
		}
	}
	return nil
}
