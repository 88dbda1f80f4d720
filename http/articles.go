package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/newsarchive"
)

// xlsxContentType is the media type of XLSX downloads.
const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DefaultActiveDays is how many days /api/active-days returns by default.
const DefaultActiveDays = 20

type pageResponse struct {
	Articles   any `json:"articles"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
}

func newPageResponse(articles any, total int, page newsarchive.Page) pageResponse {
	return pageResponse{
		Articles:   articles,
		Total:      total,
		Page:       page.Number,
		PerPage:    page.PerPage,
		TotalPages: newsarchive.TotalPages(total, page.PerPage),
	}
}

// searchFilter reads the search query parameters.
func searchFilter(r *http.Request) newsarchive.ArticleFilter {
	q := r.URL.Query()
	field := newsarchive.SearchField(q.Get("type"))
	if field == "" {
		field = newsarchive.SearchAll
	}
	return newsarchive.ArticleFilter{
		Query:    q.Get("q"),
		Field:    field,
		Type:     q.Get("content_type"),
		DateFrom: q.Get("date_from"),
		DateTo:   q.Get("date_to"),
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	filter := searchFilter(r)

	if r.URL.Query().Get("format") == "xlsx" {
		s.writeSearchTable(w, r, filter)
		return
	}

	page, err := pageParams(r, DefaultSearchPerPage)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	filter.Offset, filter.Limit = page.Offset(), page.PerPage

	articles, total, err := s.articles.FindArticles(r.Context(), filter)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPageResponse(nonNil(articles), total, page))
}

func (s *Server) writeSearchTable(w http.ResponseWriter, r *http.Request, filter newsarchive.ArticleFilter) {
	if s.tables == nil {
		s.Error(w, r, newsarchive.Errorf(newsarchive.EINVALID, "xlsx output is not enabled"))
		return
	}
	articles, _, err := s.articles.FindArticles(r.Context(), filter)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := s.tables.WriteTable(&buf, articles); err != nil {
		s.Error(w, r, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="search_results.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.articles.Statistics(r.Context())
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	months, err := s.articles.Timeline(r.Context())
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"timeline": months})
}

func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	var keywords []string
	for _, k := range strings.Split(r.URL.Query().Get("keywords"), ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	if len(keywords) == 0 {
		writeJSON(w, http.StatusOK, map[string]any{"keywords": []newsarchive.WordCount{}})
		return
	}

	counts, err := s.articles.KeywordCounts(r.Context(), keywords)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"keywords": counts})
}

func (s *Server) handleActiveDays(w http.ResponseWriter, r *http.Request) {
	n, err := intParam(r, "limit", DefaultActiveDays)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	days, err := s.articles.MostActiveDays(r.Context(), n)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": days})
}

// headline is the reduced record listed by /api/headlines.
type headline struct {
	ID    int                     `json:"id"`
	Title string                  `json:"title"`
	Link  string                  `json:"link"`
	Type  newsarchive.ArticleType `json:"type"`
	Date  *string                 `json:"date"`
}

func (s *Server) handleHeadlines(w http.ResponseWriter, r *http.Request) {
	page, err := pageParams(r, DefaultHeadlinePerPage)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		s.Error(w, r, newsarchive.Errorf(newsarchive.EINVALID, "date required"))
		return
	}

	articles, err := s.articles.FindArticlesByDate(r.Context(), date)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	start := min(page.Offset(), len(articles))
	end := min(start+page.PerPage, len(articles))
	headlines := make([]headline, 0, end-start)
	for _, a := range articles[start:end] {
		headlines = append(headlines, headline{ID: a.ID, Title: a.Title, Link: a.Link, Type: a.Type, Date: a.Date})
	}
	writeJSON(w, http.StatusOK, newPageResponse(headlines, len(articles), page))
}

func (s *Server) handleGallery(w http.ResponseWriter, r *http.Request) {
	page, err := pageParams(r, DefaultSearchPerPage)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	filter := searchFilter(r)
	filter.HasImage = true
	filter.Offset, filter.Limit = page.Offset(), page.PerPage

	articles, total, err := s.articles.FindArticles(r.Context(), filter)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPageResponse(nonNil(articles), total, page))
}

func (s *Server) findArticle(r *http.Request) (*newsarchive.Article, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return nil, newsarchive.Errorf(newsarchive.EINVALID, "invalid article id %q", r.PathValue("id"))
	}
	return s.articles.FindArticleByID(r.Context(), id)
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	a, err := s.findArticle(r)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleArticleContent(w http.ResponseWriter, r *http.Request) {
	a, err := s.findArticle(r)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	if a.Link == "" {
		s.Error(w, r, newsarchive.Errorf(newsarchive.ENOTFOUND, "article URL not found"))
		return
	}

	var body string
	switch r.URL.Query().Get("format") {
	case "markdown":
		if s.markdown == nil {
			s.Error(w, r, newsarchive.Errorf(newsarchive.EINVALID, "markdown output is not enabled"))
			return
		}
		if body, err = s.markdown.Render(r.Context(), a.Link); err != nil {
			s.Error(w, r, err)
			return
		}
	default:
		body = s.content.FetchContent(r.Context(), a.Link)
	}

	etag := ETag(body)
	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"content":     body,
		"placeholder": newsarchive.IsPlaceholder(body),
	})
}

// ETag returns a strong entity tag for body.
func ETag(body string) string {
	return fmt.Sprintf(`"%016x"`, xxhash.Sum64String(body))
}

func nonNil(articles []*newsarchive.Article) []*newsarchive.Article {
	if articles == nil {
		return []*newsarchive.Article{}
	}
	return articles
}
