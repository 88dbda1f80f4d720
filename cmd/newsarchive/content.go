package main

import (
	"fmt"

	"github.com/fwojciec/newsarchive"
)

// Run executes the content command.
func (c *ContentCmd) Run(deps *Dependencies) error {
	a, err := deps.Articles.FindArticleByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsarchive.ErrorMessage(err))
		return err
	}

	var body string
	if c.Markdown {
		if body, err = deps.Markdown.Render(deps.Ctx, a.Link); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", newsarchive.ErrorMessage(err))
			return err
		}
	} else {
		body = deps.Content.FetchContent(deps.Ctx, a.Link)
	}

	fmt.Fprintln(deps.Stdout, a.Title)
	fmt.Fprintln(deps.Stdout, a.DateOr(""))
	fmt.Fprintln(deps.Stdout)
	fmt.Fprintln(deps.Stdout, body)
	return nil
}
