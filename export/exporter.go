// Package export builds downloadable documents of a day's articles in the
// background and tracks their progress.
package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/newsarchive"
	"github.com/google/uuid"
)

// Ensure Exporter implements newsarchive.Exporter at compile time.
var _ newsarchive.Exporter = (*Exporter)(nil)

// Exporter builds export documents on a worker pool and records their
// progress in a registry.
type Exporter struct {
	articles newsarchive.ArticleService
	content  newsarchive.ContentService
	images   newsarchive.ImageFetcher
	format   newsarchive.DocumentFormat
	registry newsarchive.JobRegistry
	pool     *Pool
	dir      string
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithImageFetcher enables image embedding.
func WithImageFetcher(f newsarchive.ImageFetcher) Option {
	return func(e *Exporter) {
		e.images = f
	}
}

// WithArtifactDir sets the directory documents are saved to.
// Defaults to a directory under os.TempDir().
func WithArtifactDir(dir string) Option {
	return func(e *Exporter) {
		e.dir = dir
	}
}

// WithLogger sets the exporter's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// WithClock sets the time source used for the report footer.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		e.now = now
	}
}

// NewExporter creates an Exporter.
func NewExporter(articles newsarchive.ArticleService, content newsarchive.ContentService, format newsarchive.DocumentFormat, registry newsarchive.JobRegistry, pool *Pool, opts ...Option) *Exporter {
	e := &Exporter{
		articles: articles,
		content:  content,
		format:   format,
		registry: registry,
		pool:     pool,
		dir:      filepath.Join(os.TempDir(), "newsarchive"),
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartExport registers a job and queues it on the pool.
func (e *Exporter) StartExport(ctx context.Context, req newsarchive.ExportRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	id := uuid.NewString()
	if _, err := e.registry.Create(id); err != nil {
		return "", err
	}

	progress := func(ev newsarchive.ProgressEvent) {
		if err := e.registry.Apply(id, ev); err != nil {
			e.logger.Warn("export progress dropped", "job_id", id, "err", err)
		}
	}

	if err := e.pool.Submit(func(ctx context.Context) {
		_, _ = e.Run(ctx, req, progress)
	}); err != nil {
		progress(newsarchive.ProgressEvent{Status: newsarchive.JobError, Err: errorText(err)})
		return "", err
	}

	e.logger.Info("export queued", "job_id", id, "date", req.Date, "content", req.IncludeContent, "images", req.IncludeImages)
	return id, nil
}

// Progress returns the job's current state.
func (e *Exporter) Progress(ctx context.Context, id string) (newsarchive.Job, error) {
	return e.registry.Get(id)
}

// OpenArtifact opens the saved document of a completed job.
func (e *Exporter) OpenArtifact(ctx context.Context, id string) (io.ReadCloser, newsarchive.Job, error) {
	job, err := e.registry.Get(id)
	if err != nil {
		return nil, job, err
	}
	if job.Status != newsarchive.JobCompleted {
		return nil, job, newsarchive.Errorf(newsarchive.ECONFLICT, "export %s is %s", id, job.Status)
	}
	f, err := os.Open(job.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, job, newsarchive.Errorf(newsarchive.ENOTFOUND, "export file %s no longer exists", job.FileName)
		}
		return nil, job, err
	}
	return f, job, nil
}

// Run builds the document for req synchronously, reporting every step to
// progress, and returns the saved file's path.
//
// The step count is fixed up front: one step to start the document, one or
// two per article depending on IncludeContent, and the final save. A day
// without articles fails before any step is reported. A panic while
// building the document is reported as an error event.
func (e *Exporter) Run(ctx context.Context, req newsarchive.ExportRequest, progress newsarchive.ProgressFunc) (path string, err error) {
	begin := time.Now()
	defer func() {
		if r := recover(); r != nil {
			path, err = "", newsarchive.Errorf(newsarchive.EINTERNAL, "export panicked: %v", r)
		}
		if err != nil {
			progress(newsarchive.ProgressEvent{Status: newsarchive.JobError, Err: errorText(err)})
			e.logger.Error("export failed", "date", req.Date, "duration", time.Since(begin), "err", err)
			return
		}
		e.logger.Info("export completed", "date", req.Date, "path", path, "duration", time.Since(begin))
	}()

	if err := req.Validate(); err != nil {
		return "", err
	}

	articles, err := e.articles.FindArticlesByDate(ctx, req.Date)
	if err != nil {
		return "", err
	}
	if len(articles) == 0 {
		return "", newsarchive.Errorf(newsarchive.ENOTFOUND, "no articles found for %s", req.Date)
	}
	e.logger.Info("export started", "date", req.Date, "articles", len(articles))

	perArticle := 1
	if req.IncludeContent {
		perArticle = 2
	}
	total := 1 + len(articles)*perArticle + 1
	step := 0
	advance := func(format string, args ...any) {
		step++
		progress(newsarchive.ProgressEvent{
			Step:       step,
			Total:      total,
			Percentage: newsarchive.Percent(step, total),
			Message:    fmt.Sprintf(format, args...),
			Status:     newsarchive.JobProcessing,
		})
	}

	r := &report{doc: e.format.NewDocument()}
	r.header(req.Date, len(articles))
	advance("initialized document for %d articles", len(articles))

	n := len(articles)
	for i, a := range articles {
		r.article(i+1, a)
		if req.IncludeImages && a.ImageURL != "" && e.images != nil {
			img, err := e.images.FetchImage(ctx, a.ImageURL)
			if err != nil {
				e.logger.Warn("image fetch failed", "url", a.ImageURL, "err", err)
				img = nil
			}
			r.image(img)
		}
		advance("processing article %d of %d", i+1, n)

		if req.IncludeContent {
			r.content(e.content.FetchContent(ctx, a.Link))
			advance("fetched content for article %d of %d", i+1, n)
		} else {
			r.link(a)
		}

		if i+1 < n {
			r.separator()
		}
	}
	r.footer(e.now())

	name := req.FileName(e.format.Ext())
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", err
	}
	path = filepath.Join(e.dir, name)
	if err := r.doc.Save(path); err != nil {
		_ = os.Remove(path)
		return "", err
	}

	progress(newsarchive.ProgressEvent{
		Step:       total,
		Total:      total,
		Percentage: 100,
		Message:    fmt.Sprintf("export of %d articles completed", n),
		Status:     newsarchive.JobCompleted,
		FilePath:   path,
		FileName:   name,
	})
	return path, nil
}

// errorText returns the message of an application error, or the text of
// any other error.
func errorText(err error) string {
	if newsarchive.ErrorCode(err) == newsarchive.EINTERNAL {
		return err.Error()
	}
	return newsarchive.ErrorMessage(err)
}
