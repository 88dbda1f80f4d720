package main

import (
	"fmt"
	"sync/atomic"

	"github.com/fwojciec/newsarchive"
	"golang.org/x/sync/errgroup"
)

// Run executes the images command. Individual download failures are
// logged and counted; they do not stop the run.
func (c *ImagesCmd) Run(deps *Dependencies) error {
	articles, _, err := deps.Articles.FindArticles(deps.Ctx, newsarchive.ArticleFilter{
		DateFrom: c.Date,
		DateTo:   c.Date,
		HasImage: true,
		Limit:    c.Limit,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsarchive.ErrorMessage(err))
		return err
	}
	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No articles with images found.")
		return nil
	}

	var downloaded, skipped, failed atomic.Int64
	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(deps.Config.Images.Concurrency)
	for _, a := range articles {
		g.Go(func() error {
			path, ok, err := deps.Images.Download(ctx, a, c.Force)
			switch {
			case err != nil:
				failed.Add(1)
				deps.Logger.Warn("image download failed", "id", a.ID, "url", a.ImageURL, "err", err)
			case ok:
				downloaded.Add(1)
				deps.Logger.Debug("image saved", "id", a.ID, "path", path)
			default:
				skipped.Add(1)
			}
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Downloaded %d, skipped %d, failed %d of %d images\n",
		downloaded.Load(), skipped.Load(), failed.Load(), len(articles))
	return nil
}
