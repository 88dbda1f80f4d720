package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/newsarchive"
	"github.com/fwojciec/newsarchive/content"
	"github.com/fwojciec/newsarchive/excelize"
	"github.com/fwojciec/newsarchive/export"
	"github.com/fwojciec/newsarchive/fs"
	"github.com/fwojciec/newsarchive/goquery"
	"github.com/fwojciec/newsarchive/htmltomarkdown"
	nahttp "github.com/fwojciec/newsarchive/http"
	"github.com/fwojciec/newsarchive/inmem"
	"github.com/fwojciec/newsarchive/mhtml"
	"github.com/fwojciec/newsarchive/readability"
	"github.com/fwojciec/newsarchive/rod"
	naslog "github.com/fwojciec/newsarchive/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher used for article pages, closed by Close.
	Fetcher newsarchive.Fetcher
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Fetcher != nil {
		return m.Fetcher.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("newsarchive"),
		kong.Description("Collect, search and export news article archives."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'newsarchive --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := LoadConfig(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set %s to use a different config file\n", EnvConfig)
		return err
	}
	level, _ := ParseLevel(cfg.Log.Level)
	deps.Config = cfg
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cmd := strings.Fields(kongCtx.Command())[0]
	if err := m.wire(cmd, deps); err != nil {
		return err
	}
	defer m.Close()

	return kongCtx.Run(deps)
}

// wire builds the services cmd needs into deps.
func (m *Main) wire(cmd string, deps *Dependencies) error {
	cfg, logger := deps.Config, deps.Logger

	deps.Decoder = mhtml.NewDecoder()
	deps.Extractor = naslog.NewLoggingArticleExtractor(goquery.NewCardExtractor(goquery.WithLogger(logger)), logger)

	switch cmd {
	case "convert", "extract", "merge":
		return nil
	}

	articles, err := fs.LoadArticles(cfg.Dataset)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Hint: Set %s or dataset in the config file to choose the dataset\n", EnvDataset)
		return err
	}
	deps.Articles = inmem.NewArticleService(articles)
	logger.Debug("dataset loaded", "path", cfg.Dataset, "articles", len(articles))

	if cmd == "stats" {
		return nil
	}
	deps.Tables = excelize.NewTableWriter(logger)
	if cmd == "search" {
		return nil
	}

	var limiter *nahttp.DomainLimiter
	if cfg.Fetch.RatePerDomain > 0 {
		limiter = nahttp.NewDomainLimiter(cfg.Fetch.RatePerDomain)
	}

	var images newsarchive.ImageFetcher = nahttp.NewImageFetcher(
		nahttp.WithUserAgent(cfg.Fetch.UserAgent),
		nahttp.WithAcceptLanguage(cfg.Fetch.AcceptLanguage),
	)
	if limiter != nil {
		images = nahttp.NewLimitedImageFetcher(images, limiter)
	}
	images = naslog.NewLoggingImageFetcher(images, logger)

	if cmd == "images" {
		deps.Images = fs.NewImageCache(cfg.Images.Dir, images)
		return nil
	}

	fetcher, err := m.newFetcher(cfg, deps.Stderr)
	if err != nil {
		return err
	}
	if limiter != nil {
		fetcher = nahttp.NewLimitedFetcher(fetcher, limiter)
	}
	fetcher = naslog.NewLoggingFetcher(fetcher, logger)
	if cfg.Fetch.Retries > 0 {
		fetcher = nahttp.NewRetryFetcher(fetcher, retryDelays(cfg.Fetch.Retries), logger)
	}

	selector := newSelector(cfg)
	interactive, _ := newsarchive.LookupParagraphRule(cfg.Content.InteractiveRule)
	deps.Content = naslog.NewLoggingContentService(content.NewService(fetcher, selector, interactive, content.NewCache(), logger), logger)
	deps.Markdown = content.NewMarkdownRenderer(fetcher, selector, htmltomarkdown.NewConverter())

	if cmd == "content" {
		return nil
	}

	exportRule, _ := newsarchive.LookupParagraphRule(cfg.Content.ExportRule)
	exportContent := naslog.NewLoggingContentService(content.NewService(fetcher, selector, exportRule, content.NewCache(), logger), logger)

	pool := export.NewPool(
		export.WithWorkers(cfg.Export.Workers),
		export.WithQueueSize(cfg.Export.QueueSize),
		export.WithPoolLogger(logger),
	)
	exporter := export.NewExporter(deps.Articles, exportContent, documentFormat(cfg.Export.Format), export.NewRegistry(cfg.Export.CleanupDelay), pool,
		export.WithImageFetcher(images),
		export.WithArtifactDir(cfg.Export.ArtifactDir),
		export.WithLogger(logger),
	)
	deps.Exporter = exporter
	deps.Shutdown = pool.Shutdown

	if cmd == "serve" {
		deps.Handler = nahttp.NewServer(deps.Articles, deps.Content, exporter,
			nahttp.WithLogger(logger),
			nahttp.WithStreamInterval(cfg.Server.StreamInterval),
			nahttp.WithMarkdownRenderer(deps.Markdown),
			nahttp.WithTableWriter(deps.Tables),
		)
	}
	return nil
}

// newFetcher returns the page fetcher selected by fetch.browser and records
// it for Close.
func (m *Main) newFetcher(cfg *Config, stderr io.Writer) (newsarchive.Fetcher, error) {
	if !cfg.Fetch.Browser {
		m.Fetcher = nahttp.NewFetcher(
			nahttp.WithTimeout(cfg.Fetch.Timeout),
			nahttp.WithUserAgent(cfg.Fetch.UserAgent),
			nahttp.WithAcceptLanguage(cfg.Fetch.AcceptLanguage),
		)
		return m.Fetcher, nil
	}

	fetcher, err := rod.NewFetcher(
		rod.WithTimeout(cfg.Fetch.Timeout),
		rod.WithUserAgent(cfg.Fetch.UserAgent),
		rod.WithAcceptLanguage(cfg.Fetch.AcceptLanguage),
	)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed when fetch.browser is set")
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	m.Fetcher = fetcher
	return fetcher, nil
}

func newSelector(cfg *Config) *goquery.ContentSelector {
	opts := []goquery.ContentOption{
		goquery.WithSelectors(cfg.Content.Selectors),
		goquery.WithFallback(cfg.Content.FallbackSelector, cfg.Content.FallbackMinChars),
	}
	if cfg.Content.ReadabilityFallback {
		opts = append(opts, goquery.WithExtractor(readability.NewExtractor()))
	}
	return goquery.NewContentSelector(opts...)
}

// retryDelays returns n delays doubling from one second.
func retryDelays(n int) []time.Duration {
	delays := make([]time.Duration, n)
	d := time.Second
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return delays
}

func documentFormat(name string) newsarchive.DocumentFormat {
	if name == "md" {
		return fs.MarkdownFormat{}
	}
	return excelize.Format{}
}
