package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fwojciec/newsarchive"
)

// artifactTypes maps artifact extensions to media types.
var artifactTypes = map[string]string{
	".xlsx": xlsxContentType,
	".md":   "text/markdown; charset=utf-8",
}

type exportRequest struct {
	Date           string `json:"date"`
	IncludeContent bool   `json:"include_content"`
	IncludeImages  bool   `json:"include_images"`
}

func (s *Server) handleStartExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
			s.Error(w, r, newsarchive.Errorf(newsarchive.EINVALID, "invalid JSON body"))
			return
		}
	}
	if req.Date == "" {
		req.Date = r.URL.Query().Get("date")
		req.IncludeContent = req.IncludeContent || boolParam(r, "include_content")
		req.IncludeImages = req.IncludeImages || boolParam(r, "include_images")
	}

	id, err := s.exporter.StartExport(r.Context(), newsarchive.ExportRequest{
		Date:           req.Date,
		IncludeContent: req.IncludeContent,
		IncludeImages:  req.IncludeImages,
	})
	if err != nil {
		s.Error(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/export/"+id)
	writeJSON(w, http.StatusAccepted, map[string]string{"job_id": id})
}

func (s *Server) handleExportProgress(w http.ResponseWriter, r *http.Request) {
	job, err := s.exporter.Progress(r.Context(), r.PathValue("id"))
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// handleExportStream pushes the job state as server-sent events. The job is
// rechecked every stream interval and an event is sent only when the
// percentage or status changed. The stream ends after a terminal state or
// when the job disappears.
func (s *Server) handleExportStream(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ctx := r.Context()

	job, err := s.exporter.Progress(ctx, id)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	flusher, _ := w.(http.Flusher)
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	send := func(v any) {
		data, _ := json.Marshal(v)
		fmt.Fprintf(w, "data: %s\n\n", data)
		if flusher != nil {
			flusher.Flush()
		}
	}

	send(job)
	if job.Status.Terminal() {
		return
	}

	ticker := time.NewTicker(s.streamInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		next, err := s.exporter.Progress(ctx, id)
		if err != nil {
			send(map[string]string{"job_id": id, "status": string(newsarchive.JobError), "error": newsarchive.ErrorMessage(err)})
			return
		}
		if next.Percentage != job.Percentage || next.Status != job.Status {
			send(next)
			job = next
		}
		if job.Status.Terminal() {
			return
		}
	}
}

func (s *Server) handleExportDownload(w http.ResponseWriter, r *http.Request) {
	rc, job, err := s.exporter.OpenArtifact(r.Context(), r.PathValue("id"))
	if err != nil {
		s.Error(w, r, err)
		return
	}
	defer rc.Close()

	contentType, ok := artifactTypes[filepath.Ext(job.FileName)]
	if !ok {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", job.FileName))
	if _, err := io.Copy(w, rc); err != nil {
		s.logger.Warn("artifact download interrupted", "job_id", job.ID, "err", err)
	}
}
