package newsarchive

import (
	"sort"
	"unicode/utf8"
)

// MergeSummary describes a merged dataset. It is informational only.
type MergeSummary struct {
	Total           int                 `json:"total_articles"`
	Duplicates      int                 `json:"duplicates_removed"`
	TypeCounts      map[ArticleType]int `json:"type_counts"`
	DateRange       *DateRange          `json:"date_range"`
	YearCounts      map[string]int      `json:"year_counts"`
	MissingDates    int                 `json:"missing_dates"`
	MissingExcerpts int                 `json:"missing_excerpts"`
	MissingImages   int                 `json:"missing_images"`
}

// Merge concatenates batches, removes duplicates by Key and reassigns ids
// densely from 1 in the resulting order.
//
// When two records share a key, the candidate replaces the kept record if
// it has a date and the kept one does not, or if its excerpt is strictly
// longer. The replacement takes the kept record's position. Inputs are not
// modified.
func Merge(batches ...[]*Article) ([]*Article, *MergeSummary) {
	index := make(map[string]int)
	var merged []*Article
	duplicates := 0

	for _, batch := range batches {
		for _, a := range batch {
			key := a.Key()
			i, ok := index[key]
			if !ok {
				index[key] = len(merged)
				merged = append(merged, a.Clone())
				continue
			}
			duplicates++
			if preferCandidate(merged[i], a) {
				merged[i] = a.Clone()
			}
		}
	}

	for i, a := range merged {
		a.ID = i + 1
	}

	summary := Summarize(merged)
	summary.Duplicates = duplicates
	return merged, summary
}

func preferCandidate(kept, candidate *Article) bool {
	if candidate.HasDate() && !kept.HasDate() {
		return true
	}
	return utf8.RuneCountInString(candidate.Excerpt) > utf8.RuneCountInString(kept.Excerpt)
}

// Summarize computes type, year and completeness counts for articles.
func Summarize(articles []*Article) *MergeSummary {
	s := &MergeSummary{
		Total:      len(articles),
		TypeCounts: make(map[ArticleType]int),
		YearCounts: make(map[string]int),
	}

	var dates []string
	for _, a := range articles {
		s.TypeCounts[a.Type]++
		if a.HasDate() {
			dates = append(dates, *a.Date)
			if len(*a.Date) >= 4 {
				s.YearCounts[(*a.Date)[:4]]++
			}
		} else {
			s.MissingDates++
		}
		if a.Excerpt == "" {
			s.MissingExcerpts++
		}
		if a.ImageURL == "" {
			s.MissingImages++
		}
	}

	if len(dates) > 0 {
		sort.Strings(dates)
		s.DateRange = &DateRange{Start: dates[0], End: dates[len(dates)-1]}
	}
	return s
}
