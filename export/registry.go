package export

import (
	"sync"
	"time"

	"github.com/fwojciec/newsarchive"
)

// DefaultCleanupDelay is how long a finished job stays visible to pollers.
const DefaultCleanupDelay = 2 * time.Second

// Ensure Registry implements newsarchive.JobRegistry at compile time.
var _ newsarchive.JobRegistry = (*Registry)(nil)

// Registry is an in-memory JobRegistry. A single mutex guards every read
// and write, so readers always see a whole event applied or none of it.
type Registry struct {
	mu    sync.Mutex
	jobs  map[string]*newsarchive.Job
	delay time.Duration
}

// NewRegistry creates a Registry that forgets finished jobs after delay.
// A non-positive delay uses DefaultCleanupDelay.
func NewRegistry(delay time.Duration) *Registry {
	if delay <= 0 {
		delay = DefaultCleanupDelay
	}
	return &Registry{
		jobs:  make(map[string]*newsarchive.Job),
		delay: delay,
	}
}

// Create registers a job at 0% with the message "starting".
func (r *Registry) Create(id string) (newsarchive.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[id]; ok {
		return newsarchive.Job{}, newsarchive.Errorf(newsarchive.ECONFLICT, "export %s already exists", id)
	}
	job := &newsarchive.Job{
		ID:      id,
		Message: "starting",
		Status:  newsarchive.JobProcessing,
	}
	r.jobs[id] = job
	return *job, nil
}

// Apply records event on the job. Percentages never go backwards and a
// finished job accepts no further events.
func (r *Registry) Apply(id string, event newsarchive.ProgressEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return newsarchive.Errorf(newsarchive.ENOTFOUND, "export %s not found", id)
	}
	if job.Status.Terminal() {
		return newsarchive.Errorf(newsarchive.ECONFLICT, "export %s already finished", id)
	}

	switch event.Status {
	case newsarchive.JobCompleted:
		job.Percentage = 100
		job.Message = event.Message
		job.FilePath = event.FilePath
		job.FileName = event.FileName
	case newsarchive.JobError:
		job.Message = event.Err
		job.Error = event.Err
	default:
		job.Percentage = max(job.Percentage, min(event.Percentage, 100))
		job.Message = event.Message
	}
	if event.Status != "" {
		job.Status = event.Status
	}

	if job.Status.Terminal() {
		time.AfterFunc(r.delay, func() { r.remove(id) })
	}
	return nil
}

// Get returns a copy of the job.
func (r *Registry) Get(id string) (newsarchive.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return newsarchive.Job{}, newsarchive.Errorf(newsarchive.ENOTFOUND, "export %s not found", id)
	}
	return *job, nil
}

// Len returns the number of registered jobs.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.jobs)
}

func (r *Registry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.jobs, id)
}
