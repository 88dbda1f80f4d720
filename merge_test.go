package newsarchive_test

import (
	"testing"

	"github.com/fwojciec/newsarchive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func article(title, link, excerpt string, date *string) *newsarchive.Article {
	return &newsarchive.Article{
		Title:   title,
		Link:    link,
		Excerpt: excerpt,
		Date:    date,
		Type:    newsarchive.ArticleTypePost,
		Source:  newsarchive.Source,
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	t.Run("prefers the dated duplicate", func(t *testing.T) {
		t.Parallel()

		a := []*newsarchive.Article{article("غزة", "https://x/1", "نص", nil)}
		b := []*newsarchive.Article{article("غزة", "https://x/1", "نص", strPtr("2024-01-01"))}

		merged, summary := newsarchive.Merge(a, b)

		require.Len(t, merged, 1)
		require.NotNil(t, merged[0].Date)
		assert.Equal(t, "2024-01-01", *merged[0].Date)
		assert.Equal(t, 1, summary.Duplicates)
		assert.Equal(t, 0, summary.MissingDates)
	})

	t.Run("prefers the longer excerpt", func(t *testing.T) {
		t.Parallel()

		a := []*newsarchive.Article{article("t", "l", "قصير", strPtr("2024-01-01"))}
		b := []*newsarchive.Article{article("t", "l", "أطول بكثير", nil)}

		merged, _ := newsarchive.Merge(a, b)

		require.Len(t, merged, 1)
		assert.Equal(t, "أطول بكثير", merged[0].Excerpt)
	})

	t.Run("keeps the first record on a tie", func(t *testing.T) {
		t.Parallel()

		a := []*newsarchive.Article{article("t", "l", "same", strPtr("2024-01-01"))}
		b := []*newsarchive.Article{article("t", "l", "same", strPtr("2024-02-02"))}

		merged, _ := newsarchive.Merge(a, b)

		require.Len(t, merged, 1)
		assert.Equal(t, "2024-01-01", *merged[0].Date)
	})

	t.Run("reassigns dense ids in order", func(t *testing.T) {
		t.Parallel()

		a := []*newsarchive.Article{article("a", "1", "", nil), article("b", "2", "", nil)}
		b := []*newsarchive.Article{article("a", "1", "", nil), article("c", "3", "", nil)}
		a[0].ID, a[1].ID, b[0].ID, b[1].ID = 7, 9, 1, 2

		merged, _ := newsarchive.Merge(a, b)

		require.Len(t, merged, 3)
		for i, m := range merged {
			assert.Equal(t, i+1, m.ID)
		}
		assert.Equal(t, []string{"a", "b", "c"}, []string{merged[0].Title, merged[1].Title, merged[2].Title})
		assert.Equal(t, 7, a[0].ID, "inputs are not modified")
	})

	t.Run("is idempotent on deduplicated input", func(t *testing.T) {
		t.Parallel()

		a := []*newsarchive.Article{
			article("a", "1", "x", strPtr("2024-01-02")),
			article("b", "2", "", nil),
		}
		b := []*newsarchive.Article{
			article("a", "1", "xyz", nil),
			article("c", "3", "", strPtr("2023-05-05")),
		}

		once, _ := newsarchive.Merge(a, b)
		twice, summary := newsarchive.Merge(once)

		assert.Equal(t, once, twice)
		assert.Equal(t, 0, summary.Duplicates)
	})

	t.Run("distinguishes records by both title and link", func(t *testing.T) {
		t.Parallel()

		merged, _ := newsarchive.Merge([]*newsarchive.Article{
			article("a", "1", "", nil),
			article("a", "2", "", nil),
			article("b", "1", "", nil),
		})

		assert.Len(t, merged, 3)
	})
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	articles := []*newsarchive.Article{
		article("a", "1", "x", strPtr("2023-10-07")),
		article("b", "2", "", strPtr("2024-01-01")),
		article("c", "3", "y", nil),
	}
	articles[1].Type = newsarchive.ArticleTypeVideo
	articles[2].ImageURL = "https://img/1.jpg"

	s := newsarchive.Summarize(articles)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.TypeCounts[newsarchive.ArticleTypePost])
	assert.Equal(t, 1, s.TypeCounts[newsarchive.ArticleTypeVideo])
	assert.Equal(t, map[string]int{"2023": 1, "2024": 1}, s.YearCounts)
	require.NotNil(t, s.DateRange)
	assert.Equal(t, "2023-10-07", s.DateRange.Start)
	assert.Equal(t, "2024-01-01", s.DateRange.End)
	assert.Equal(t, 1, s.MissingDates)
	assert.Equal(t, 1, s.MissingExcerpts)
	assert.Equal(t, 2, s.MissingImages)
}
