// Package inmem implements the article query surface over a dataset held in
// memory.
package inmem

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/fwojciec/newsarchive"
)

// CommonWordsLimit is how many title words Statistics reports.
const CommonWordsLimit = 20

// arabicWord matches runs of characters in the Arabic block.
var arabicWord = regexp.MustCompile(`[\x{0600}-\x{06FF}]+`)

// Ensure ArticleService implements newsarchive.ArticleService at compile time.
var _ newsarchive.ArticleService = (*ArticleService)(nil)

// ArticleService answers queries over an immutable slice of articles.
// Returned records are shared and must not be modified.
type ArticleService struct {
	articles []*newsarchive.Article
	byID     map[int]*newsarchive.Article
	byDate   map[string][]*newsarchive.Article
}

// NewArticleService indexes articles. The slice is not copied.
func NewArticleService(articles []*newsarchive.Article) *ArticleService {
	s := &ArticleService{
		articles: articles,
		byID:     make(map[int]*newsarchive.Article, len(articles)),
		byDate:   make(map[string][]*newsarchive.Article),
	}
	for _, a := range articles {
		if _, ok := s.byID[a.ID]; !ok {
			s.byID[a.ID] = a
		}
		if a.HasDate() {
			s.byDate[*a.Date] = append(s.byDate[*a.Date], a)
		}
	}
	return s
}

// Len returns the number of articles.
func (s *ArticleService) Len() int {
	return len(s.articles)
}

func (s *ArticleService) FindArticleByID(ctx context.Context, id int) (*newsarchive.Article, error) {
	a, ok := s.byID[id]
	if !ok {
		return nil, newsarchive.Errorf(newsarchive.ENOTFOUND, "article %d not found", id)
	}
	return a, nil
}

func (s *ArticleService) FindArticles(ctx context.Context, filter newsarchive.ArticleFilter) ([]*newsarchive.Article, int, error) {
	if filter.Offset < 0 || filter.Limit < 0 {
		return nil, 0, newsarchive.Errorf(newsarchive.EINVALID, "offset and limit must not be negative")
	}
	for _, d := range []string{filter.DateFrom, filter.DateTo} {
		if d != "" && !newsarchive.IsISODate(d) {
			return nil, 0, newsarchive.Errorf(newsarchive.EINVALID, "invalid date %q, expected YYYY-MM-DD", d)
		}
	}

	var matched []*newsarchive.Article
	for _, a := range s.articles {
		if filter.Matches(a) {
			matched = append(matched, a)
		}
	}

	total := len(matched)
	start := min(filter.Offset, total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}
	return matched[start:end], total, nil
}

func (s *ArticleService) FindArticlesByDate(ctx context.Context, date string) ([]*newsarchive.Article, error) {
	if !newsarchive.IsISODate(date) {
		return nil, newsarchive.Errorf(newsarchive.EINVALID, "invalid date %q, expected YYYY-MM-DD", date)
	}
	return s.byDate[date], nil
}

func (s *ArticleService) Statistics(ctx context.Context) (*newsarchive.Statistics, error) {
	stats := &newsarchive.Statistics{
		Total:      len(s.articles),
		TypeCounts: make(map[newsarchive.ArticleType]int),
	}
	for _, a := range s.articles {
		stats.TypeCounts[a.Type]++
		if a.ImageURL != "" {
			stats.WithImages++
		}
		if !a.HasDate() {
			stats.UndatedCount++
			continue
		}
		d := *a.Date
		if stats.DateRange == nil {
			stats.DateRange = &newsarchive.DateRange{Start: d, End: d}
			continue
		}
		if d < stats.DateRange.Start {
			stats.DateRange.Start = d
		}
		if d > stats.DateRange.End {
			stats.DateRange.End = d
		}
	}
	stats.CommonWords = s.commonWords(CommonWordsLimit)
	return stats, nil
}

// commonWords returns the n most frequent Arabic words across titles.
func (s *ArticleService) commonWords(n int) []newsarchive.WordCount {
	counts := make(map[string]int)
	for _, a := range s.articles {
		for _, w := range arabicWord.FindAllString(a.Title, -1) {
			counts[w]++
		}
	}
	words := make([]newsarchive.WordCount, 0, len(counts))
	for w, c := range counts {
		words = append(words, newsarchive.WordCount{Word: w, Count: c})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})
	return words[:min(n, len(words))]
}

func (s *ArticleService) Timeline(ctx context.Context) ([]newsarchive.DayCount, error) {
	counts := make(map[string]int)
	for _, a := range s.articles {
		if a.HasDate() && len(*a.Date) >= 7 {
			counts[(*a.Date)[:7]]++
		}
	}
	months := make([]newsarchive.DayCount, 0, len(counts))
	for m, c := range counts {
		months = append(months, newsarchive.DayCount{Date: m, Count: c})
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Date < months[j].Date })
	return months, nil
}

func (s *ArticleService) KeywordCounts(ctx context.Context, keywords []string) ([]newsarchive.WordCount, error) {
	var out []newsarchive.WordCount
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		count := 0
		for _, a := range s.articles {
			if strings.Contains(a.Title, kw) || strings.Contains(a.Excerpt, kw) {
				count++
			}
		}
		out = append(out, newsarchive.WordCount{Word: kw, Count: count})
	}
	if len(out) == 0 {
		return nil, newsarchive.Errorf(newsarchive.EINVALID, "at least one keyword required")
	}
	return out, nil
}

func (s *ArticleService) MostActiveDays(ctx context.Context, n int) ([]newsarchive.DayCount, error) {
	if n <= 0 {
		return nil, newsarchive.Errorf(newsarchive.EINVALID, "n must be positive")
	}
	days := make([]newsarchive.DayCount, 0, len(s.byDate))
	for d, articles := range s.byDate {
		days = append(days, newsarchive.DayCount{Date: d, Count: len(articles)})
	}
	sort.Slice(days, func(i, j int) bool {
		if days[i].Count != days[j].Count {
			return days[i].Count > days[j].Count
		}
		return days[i].Date > days[j].Date
	})
	return days[:min(n, len(days))], nil
}
