package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/newsarchive"
)

// Server defaults.
const (
	DefaultStreamInterval  = 500 * time.Millisecond
	DefaultSearchPerPage   = 20
	DefaultHeadlinePerPage = 50
	MaxPerPage             = 500
)

// Server serves the JSON API over the article dataset and export jobs.
type Server struct {
	mux *http.ServeMux

	articles newsarchive.ArticleService
	content  newsarchive.ContentService
	exporter newsarchive.Exporter
	markdown newsarchive.MarkdownRenderer
	tables   newsarchive.TableWriter

	logger         *slog.Logger
	streamInterval time.Duration
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the server's logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithStreamInterval sets how often export progress streams recheck the
// job. Defaults to DefaultStreamInterval.
func WithStreamInterval(d time.Duration) ServerOption {
	return func(s *Server) {
		if d > 0 {
			s.streamInterval = d
		}
	}
}

// WithMarkdownRenderer enables ?format=markdown on article content.
func WithMarkdownRenderer(r newsarchive.MarkdownRenderer) ServerOption {
	return func(s *Server) {
		s.markdown = r
	}
}

// WithTableWriter enables ?format=xlsx on search.
func WithTableWriter(w newsarchive.TableWriter) ServerOption {
	return func(s *Server) {
		s.tables = w
	}
}

// NewServer creates a Server and registers its routes.
func NewServer(articles newsarchive.ArticleService, content newsarchive.ContentService, exporter newsarchive.Exporter, opts ...ServerOption) *Server {
	s := &Server{
		mux:            http.NewServeMux(),
		articles:       articles,
		content:        content,
		exporter:       exporter,
		logger:         slog.New(slog.DiscardHandler),
		streamInterval: DefaultStreamInterval,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mux.HandleFunc("GET /api/search", s.handleSearch)
	s.mux.HandleFunc("GET /api/statistics", s.handleStatistics)
	s.mux.HandleFunc("GET /api/timeline", s.handleTimeline)
	s.mux.HandleFunc("GET /api/keywords", s.handleKeywords)
	s.mux.HandleFunc("GET /api/active-days", s.handleActiveDays)
	s.mux.HandleFunc("GET /api/headlines", s.handleHeadlines)
	s.mux.HandleFunc("GET /api/gallery", s.handleGallery)
	s.mux.HandleFunc("GET /api/articles/{id}", s.handleArticle)
	s.mux.HandleFunc("GET /api/articles/{id}/content", s.handleArticleContent)
	s.mux.HandleFunc("POST /api/export", s.handleStartExport)
	s.mux.HandleFunc("GET /api/export/{id}", s.handleExportProgress)
	s.mux.HandleFunc("GET /api/export/{id}/stream", s.handleExportStream)
	s.mux.HandleFunc("GET /api/export/{id}/download", s.handleExportDownload)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)
	s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start))
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush lets streaming handlers flush through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	newsarchive.ECONFLICT:    http.StatusConflict,
	newsarchive.EINVALID:     http.StatusBadRequest,
	newsarchive.ENOTFOUND:    http.StatusNotFound,
	newsarchive.EUNAVAILABLE: http.StatusServiceUnavailable,
	newsarchive.EINTERNAL:    http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// Error writes err as a JSON error response. Internal errors are logged and
// reported without detail.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := newsarchive.ErrorCode(err), newsarchive.ErrorMessage(err)
	if code == newsarchive.EINTERNAL {
		s.logger.Error("http error", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeJSON(w, ErrorStatusCode(code), map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// intParam parses an optional integer query parameter.
func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, newsarchive.Errorf(newsarchive.EINVALID, "%s must be an integer", name)
	}
	return n, nil
}

// boolParam parses an optional boolean query parameter.
func boolParam(r *http.Request, name string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return b
}

// pageParams reads page and per_page.
func pageParams(r *http.Request, perPage int) (newsarchive.Page, error) {
	number, err := intParam(r, "page", 1)
	if err != nil {
		return newsarchive.Page{}, err
	}
	size, err := intParam(r, "per_page", perPage)
	if err != nil {
		return newsarchive.Page{}, err
	}
	page := newsarchive.Page{Number: number, PerPage: min(size, MaxPerPage)}.Normalize(perPage)
	return page, nil
}
