package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/newsarchive"
	main "github.com/fwojciec/newsarchive/cmd/newsarchive"
	"github.com/fwojciec/newsarchive/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run(t *testing.T) {
	t.Run("requires a command", func(t *testing.T) {
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), nil, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("prints help", func(t *testing.T) {
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "merge")
		assert.Contains(t, stdout.String(), "export")
	})

	t.Run("merges datasets end to end", func(t *testing.T) {
		t.Setenv(main.EnvConfig, "")
		t.Setenv(main.EnvLogLevel, "")
		dir := t.TempDir()
		a := filepath.Join(dir, "a.json")
		b := filepath.Join(dir, "b.json")
		out := filepath.Join(dir, "out.json")
		require.NoError(t, fs.SaveArticles(a, []*newsarchive.Article{
			{ID: 1, Title: "one", Link: "https://example.com/1"},
		}))
		require.NoError(t, fs.SaveArticles(b, []*newsarchive.Article{
			{ID: 1, Title: "one", Link: "https://example.com/1", Excerpt: "longer"},
			{ID: 2, Title: "two", Link: "https://example.com/2"},
		}))
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"merge", out, a, b}, stdout, stderr)

		require.NoError(t, err)
		merged, err := fs.LoadArticles(out)
		require.NoError(t, err)
		require.Len(t, merged, 2)
		assert.Equal(t, "longer", merged[0].Excerpt)
		assert.Contains(t, stdout.String(), "Duplicates removed: 1")
	})

	t.Run("reports a missing dataset", func(t *testing.T) {
		t.Setenv(main.EnvConfig, "")
		t.Setenv(main.EnvLogLevel, "")
		t.Setenv(main.EnvDataset, filepath.Join(t.TempDir(), "missing.json"))
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"stats"}, stdout, stderr)

		assert.Equal(t, newsarchive.ENOTFOUND, newsarchive.ErrorCode(err))
		assert.Contains(t, stderr.String(), main.EnvDataset)
	})

	t.Run("runs stats over the configured dataset", func(t *testing.T) {
		t.Setenv(main.EnvConfig, "")
		t.Setenv(main.EnvLogLevel, "")
		path := filepath.Join(t.TempDir(), "news.json")
		date := "2024-07-16"
		require.NoError(t, fs.SaveArticles(path, []*newsarchive.Article{
			{ID: 1, Title: "غزة", Link: "https://example.com/1", Date: &date, Type: newsarchive.ArticleTypePost},
		}))
		t.Setenv(main.EnvDataset, path)
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"stats"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Total articles: 1")
	})
}
