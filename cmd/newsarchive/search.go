package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/newsarchive"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	filter := newsarchive.ArticleFilter{
		Query:    c.Query,
		Field:    newsarchive.SearchField(c.Field),
		Type:     c.Type,
		DateFrom: c.From,
		DateTo:   c.To,
	}

	if c.XLSX != "" {
		return c.writeTable(deps, filter)
	}

	page := newsarchive.Page{Number: c.Page, PerPage: c.PerPage}.Normalize(20)
	filter.Offset, filter.Limit = page.Offset(), page.PerPage

	articles, total, err := deps.Articles.FindArticles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsarchive.ErrorMessage(err))
		return err
	}

	if total == 0 {
		fmt.Fprintln(deps.Stdout, "No articles found.")
		return nil
	}
	for _, a := range articles {
		fmt.Fprintf(deps.Stdout, "%d  %s  %s  %s\n", a.ID, a.DateOr("----------"), a.Type, a.Title)
		if a.Link != "" {
			fmt.Fprintf(deps.Stdout, "    %s\n", a.Link)
		}
	}
	fmt.Fprintf(deps.Stdout, "Page %d of %d (%d results)\n", page.Number, newsarchive.TotalPages(total, page.PerPage), total)
	return nil
}

func (c *SearchCmd) writeTable(deps *Dependencies, filter newsarchive.ArticleFilter) error {
	articles, total, err := deps.Articles.FindArticles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsarchive.ErrorMessage(err))
		return err
	}

	f, err := os.Create(c.XLSX)
	if err != nil {
		return err
	}
	if err := deps.Tables.WriteTable(f, articles); err != nil {
		f.Close()
		_ = os.Remove(c.XLSX)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d results to %s\n", total, c.XLSX)
	return nil
}
