package newsarchive

import (
	"context"
	"io"
	"strings"
)

// JobStatus is the lifecycle state of an export job.
type JobStatus string

// Job statuses. Completed and error are terminal.
const (
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobError      JobStatus = "error"
)

// Terminal reports whether no further transitions can happen.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobError
}

// Job is the progress record of one export.
type Job struct {
	ID         string    `json:"job_id"`
	Percentage int       `json:"percentage"`
	Message    string    `json:"message"`
	Status     JobStatus `json:"status"`
	FilePath   string    `json:"filepath,omitempty"`
	FileName   string    `json:"filename,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// ExportRequest describes the document to build.
type ExportRequest struct {
	// Date selects the articles to export (YYYY-MM-DD).
	Date string

	// IncludeContent fetches the full text of every article.
	IncludeContent bool

	// IncludeImages fetches each article's image.
	IncludeImages bool
}

// Validate returns an error if the request is malformed.
func (r ExportRequest) Validate() error {
	if r.Date == "" {
		return Errorf(EINVALID, "date required")
	}
	if !IsISODate(r.Date) {
		return Errorf(EINVALID, "invalid date %q, expected YYYY-MM-DD", r.Date)
	}
	return nil
}

// FileName returns the artifact name for the request. Equal requests yield
// equal names.
func (r ExportRequest) FileName(ext string) string {
	variant := "palestine_news_"
	if r.IncludeContent {
		variant += "full_"
	}
	return variant + strings.ReplaceAll(r.Date, "-", "_") + ext
}

// ProgressEvent reports one state change of a running job.
type ProgressEvent struct {
	Step       int
	Total      int
	Percentage int
	Message    string
	Status     JobStatus
	Err        string
	FilePath   string
	FileName   string
}

// ProgressFunc receives progress events in order.
type ProgressFunc func(ProgressEvent)

// Percent returns floor(step*100/total).
func Percent(step, total int) int {
	if total <= 0 {
		return 0
	}
	return step * 100 / total
}

// JobRegistry tracks the progress of export jobs.
type JobRegistry interface {
	// Create registers a new job in the processing state at 0%.
	// Returns ECONFLICT if a job with the id is registered.
	Create(id string) (Job, error)

	// Apply records an event for the job. Returns ENOTFOUND if the job is
	// unknown or already removed.
	Apply(id string, event ProgressEvent) error

	// Get returns a snapshot of the job. Returns ENOTFOUND if the job was
	// never created or has been removed after finishing.
	Get(id string) (Job, error)
}

// Exporter runs export jobs in the background.
type Exporter interface {
	// StartExport validates the request, registers a job and schedules it.
	// Returns the job id.
	StartExport(ctx context.Context, req ExportRequest) (string, error)

	// Progress returns the current state of a job.
	Progress(ctx context.Context, id string) (Job, error)

	// OpenArtifact opens the document of a completed job.
	// Returns ECONFLICT while the job is still running or failed.
	OpenArtifact(ctx context.Context, id string) (io.ReadCloser, Job, error)
}
