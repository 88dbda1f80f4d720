package newsarchive

import (
	"context"
	"strings"
)

// Source is the origin label stamped on every extracted record.
const Source = "Al Jazeera"

// ArticleType classifies a listing card.
type ArticleType string

// Article types. Gallery is never derived from card markup.
const (
	ArticleTypePost     ArticleType = "post"
	ArticleTypeVideo    ArticleType = "video"
	ArticleTypeLiveblog ArticleType = "liveblog"
	ArticleTypeEpisode  ArticleType = "episode"
	ArticleTypeGallery  ArticleType = "gallery"
)

// ArticleTypes lists every known type in display order.
var ArticleTypes = []ArticleType{
	ArticleTypePost,
	ArticleTypeVideo,
	ArticleTypeLiveblog,
	ArticleTypeEpisode,
	ArticleTypeGallery,
}

// ParseArticleType returns the type named by s, or post for anything unknown.
func ParseArticleType(s string) ArticleType {
	for _, t := range ArticleTypes {
		if string(t) == s {
			return t
		}
	}
	return ArticleTypePost
}

// Article is one record of the dataset.
// Records are created by the offline extraction pipeline and never mutated
// by the serving path.
type Article struct {
	ID       int         `json:"id"`
	Title    string      `json:"title"`
	Excerpt  string      `json:"excerpt"`
	Link     string      `json:"link"`
	Date     *string     `json:"date"`
	DateText string      `json:"date_text,omitempty"`
	ImageURL string      `json:"image_url"`
	Type     ArticleType `json:"type"`
	Source   string      `json:"source"`
}

// Key returns the dedup identity of the article: title and link joined by
// an underscore.
func (a *Article) Key() string {
	return a.Title + "_" + a.Link
}

// HasDate reports whether the article carries a normalized date.
func (a *Article) HasDate() bool {
	return a.Date != nil && *a.Date != ""
}

// DateOr returns the normalized date or def when the article is undated.
func (a *Article) DateOr(def string) string {
	if a.HasDate() {
		return *a.Date
	}
	return def
}

// Validate returns an error if the article lacks its identity fields.
func (a *Article) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return Errorf(EINVALID, "article title required")
	}
	if strings.TrimSpace(a.Link) == "" {
		return Errorf(EINVALID, "article link required")
	}
	return nil
}

// Clone returns a copy that shares no pointers with a.
func (a *Article) Clone() *Article {
	c := *a
	if a.Date != nil {
		d := *a.Date
		c.Date = &d
	}
	return &c
}

// SearchField selects which text fields a query matches against.
type SearchField string

// Search fields.
const (
	SearchAll     SearchField = "all"
	SearchTitle   SearchField = "title"
	SearchExcerpt SearchField = "excerpt"
)

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	// Query is matched case-insensitively as a substring.
	Query string
	Field SearchField

	// Type restricts results to one type. Empty or "all" matches every type.
	Type string

	// DateFrom and DateTo are inclusive YYYY-MM-DD bounds. Undated articles
	// never match when either bound is set.
	DateFrom string
	DateTo   string

	// HasImage restricts results to articles with an image URL.
	HasImage bool

	Offset int
	Limit  int
}

// Matches reports whether a satisfies every criterion of the filter except
// pagination.
func (f ArticleFilter) Matches(a *Article) bool {
	if f.Type != "" && f.Type != "all" && string(a.Type) != f.Type {
		return false
	}
	if f.HasImage && a.ImageURL == "" {
		return false
	}
	if f.DateFrom != "" || f.DateTo != "" {
		if !a.HasDate() {
			return false
		}
		if f.DateFrom != "" && *a.Date < f.DateFrom {
			return false
		}
		if f.DateTo != "" && *a.Date > f.DateTo {
			return false
		}
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		title := strings.Contains(strings.ToLower(a.Title), q)
		excerpt := strings.Contains(strings.ToLower(a.Excerpt), q)
		switch f.Field {
		case SearchTitle:
			return title
		case SearchExcerpt:
			return excerpt
		default:
			return title || excerpt
		}
	}
	return true
}

// DateRange holds the oldest and newest dates of a set of articles.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Statistics summarizes the dataset.
type Statistics struct {
	Total        int                 `json:"total_articles"`
	DateRange    *DateRange          `json:"date_range"`
	TypeCounts   map[ArticleType]int `json:"article_types"`
	WithImages   int                 `json:"articles_with_images"`
	CommonWords  []WordCount         `json:"most_common_words,omitempty"`
	UndatedCount int                 `json:"undated_articles"`
}

// WordCount pairs a word or keyword with its number of occurrences.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// DayCount pairs a date (YYYY-MM-DD) or month (YYYY-MM) with an article count.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ArticleService represents a service for querying the article dataset.
type ArticleService interface {
	// FindArticleByID retrieves an article by ID.
	// Returns ENOTFOUND if the article does not exist.
	FindArticleByID(ctx context.Context, id int) (*Article, error)

	// FindArticles retrieves articles matching the filter along with the
	// total number of matches before pagination.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, int, error)

	// FindArticlesByDate returns every article published on date, in
	// dataset order.
	FindArticlesByDate(ctx context.Context, date string) ([]*Article, error)

	// Statistics summarizes the whole dataset.
	Statistics(ctx context.Context) (*Statistics, error)

	// Timeline returns monthly article counts in ascending month order.
	Timeline(ctx context.Context) ([]DayCount, error)

	// KeywordCounts counts articles whose title or excerpt contains each keyword.
	KeywordCounts(ctx context.Context, keywords []string) ([]WordCount, error)

	// MostActiveDays returns the n dates with the most articles.
	MostActiveDays(ctx context.Context, n int) ([]DayCount, error)
}

// Page describes a 1-based page request.
type Page struct {
	Number  int
	PerPage int
}

// Normalize clamps the page to sane values, using perPage when unset.
func (p Page) Normalize(perPage int) Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.PerPage < 1 {
		p.PerPage = perPage
	}
	return p
}

// Offset returns the number of records before the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

// TotalPages returns the number of pages needed to hold total records.
func TotalPages(total, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
