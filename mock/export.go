package mock

import (
	"context"
	"io"

	"github.com/fwojciec/newsarchive"
)

var _ newsarchive.JobRegistry = (*JobRegistry)(nil)

// JobRegistry is a mock implementation of newsarchive.JobRegistry.
type JobRegistry struct {
	CreateFn func(id string) (newsarchive.Job, error)
	ApplyFn  func(id string, event newsarchive.ProgressEvent) error
	GetFn    func(id string) (newsarchive.Job, error)
}

func (r *JobRegistry) Create(id string) (newsarchive.Job, error) {
	return r.CreateFn(id)
}

func (r *JobRegistry) Apply(id string, event newsarchive.ProgressEvent) error {
	return r.ApplyFn(id, event)
}

func (r *JobRegistry) Get(id string) (newsarchive.Job, error) {
	return r.GetFn(id)
}

var _ newsarchive.Exporter = (*Exporter)(nil)

// Exporter is a mock implementation of newsarchive.Exporter.
type Exporter struct {
	StartExportFn  func(ctx context.Context, req newsarchive.ExportRequest) (string, error)
	ProgressFn     func(ctx context.Context, id string) (newsarchive.Job, error)
	OpenArtifactFn func(ctx context.Context, id string) (io.ReadCloser, newsarchive.Job, error)
}

func (e *Exporter) StartExport(ctx context.Context, req newsarchive.ExportRequest) (string, error) {
	return e.StartExportFn(ctx, req)
}

func (e *Exporter) Progress(ctx context.Context, id string) (newsarchive.Job, error) {
	return e.ProgressFn(ctx, id)
}

func (e *Exporter) OpenArtifact(ctx context.Context, id string) (io.ReadCloser, newsarchive.Job, error) {
	return e.OpenArtifactFn(ctx, id)
}
