package main_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/newsarchive"
	main "github.com/fwojciec/newsarchive/cmd/newsarchive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("uses defaults without a file", func(t *testing.T) {
		t.Setenv(main.EnvConfig, "")
		t.Setenv(main.EnvDataset, "")
		t.Setenv(main.EnvAddr, "")
		t.Setenv(main.EnvLogLevel, "")

		cfg, err := main.LoadConfig("")

		require.NoError(t, err)
		assert.Equal(t, main.DefaultConfig(), cfg)
		assert.Equal(t, "group", cfg.Content.InteractiveRule)
		assert.Equal(t, "flush", cfg.Content.ExportRule)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		t.Setenv(main.EnvDataset, "")
		t.Setenv(main.EnvAddr, "")
		t.Setenv(main.EnvLogLevel, "")
		path := writeConfig(t, `
dataset: data/news.json
server:
  addr: ":8080"
  stream_interval: 250ms
fetch:
  timeout: 5s
  browser: true
export:
  format: md
  workers: 4
`)

		cfg, err := main.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, "data/news.json", cfg.Dataset)
		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, 250*time.Millisecond, cfg.Server.StreamInterval)
		assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
		assert.True(t, cfg.Fetch.Browser)
		assert.Equal(t, "md", cfg.Export.Format)
		assert.Equal(t, 4, cfg.Export.Workers)
		assert.Equal(t, main.DefaultConfig().Export.QueueSize, cfg.Export.QueueSize)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "dataset: from-file.json\nlog:\n  level: warn\n")
		t.Setenv(main.EnvConfig, path)
		t.Setenv(main.EnvDataset, "from-env.json")
		t.Setenv(main.EnvAddr, "0.0.0.0:9000")
		t.Setenv(main.EnvLogLevel, "debug")

		cfg, err := main.LoadConfig("")

		require.NoError(t, err)
		assert.Equal(t, "from-env.json", cfg.Dataset)
		assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		t.Setenv(main.EnvLogLevel, "")
		for _, body := range []string{
			"log:\n  level: loud\n",
			"export:\n  format: pdf\n",
			"content:\n  export_rule: nope\n",
			"images:\n  concurrency: 0\n",
		} {
			_, err := main.LoadConfig(writeConfig(t, body))
			assert.Equal(t, newsarchive.EINVALID, newsarchive.ErrorCode(err), body)
		}
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		_, err := main.LoadConfig(writeConfig(t, "dataset: [unclosed\n"))

		assert.Equal(t, newsarchive.EINVALID, newsarchive.ErrorCode(err))
	})

	t.Run("fails on a missing file", func(t *testing.T) {
		_, err := main.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.Error(t, err)
	})
}
