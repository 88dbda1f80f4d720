package newsarchive_test

import (
	"testing"

	"github.com/fwojciec/newsarchive"
	"github.com/stretchr/testify/assert"
)

func TestArticle_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, article("t", "l", "", nil).Validate())
	assert.Equal(t, newsarchive.EINVALID, newsarchive.ErrorCode(article("", "l", "", nil).Validate()))
	assert.Equal(t, newsarchive.EINVALID, newsarchive.ErrorCode(article("t", " ", "", nil).Validate()))
}

func TestArticleFilter_Matches(t *testing.T) {
	t.Parallel()

	a := article("غزة اليوم", "l", "Excerpt about Rafah", strPtr("2024-03-10"))
	a.Type = newsarchive.ArticleTypeVideo
	undated := article("x", "y", "", nil)

	tests := []struct {
		name   string
		filter newsarchive.ArticleFilter
		want   bool
	}{
		{"empty filter", newsarchive.ArticleFilter{}, true},
		{"query in title", newsarchive.ArticleFilter{Query: "غزة"}, true},
		{"query case insensitive", newsarchive.ArticleFilter{Query: "rafah"}, true},
		{"query limited to title", newsarchive.ArticleFilter{Query: "rafah", Field: newsarchive.SearchTitle}, false},
		{"query limited to excerpt", newsarchive.ArticleFilter{Query: "rafah", Field: newsarchive.SearchExcerpt}, true},
		{"type all", newsarchive.ArticleFilter{Type: "all"}, true},
		{"type mismatch", newsarchive.ArticleFilter{Type: "post"}, false},
		{"inclusive range", newsarchive.ArticleFilter{DateFrom: "2024-03-10", DateTo: "2024-03-10"}, true},
		{"before range", newsarchive.ArticleFilter{DateFrom: "2024-03-11"}, false},
		{"image required", newsarchive.ArticleFilter{HasImage: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.filter.Matches(a))
		})
	}

	t.Run("undated never matches a date bound", func(t *testing.T) {
		t.Parallel()
		assert.False(t, newsarchive.ArticleFilter{DateTo: "2030-01-01"}.Matches(undated))
	})
}

func TestPage(t *testing.T) {
	t.Parallel()

	p := newsarchive.Page{}.Normalize(20)
	assert.Equal(t, newsarchive.Page{Number: 1, PerPage: 20}, p)
	assert.Equal(t, 40, newsarchive.Page{Number: 3, PerPage: 20}.Offset())
	assert.Equal(t, 3, newsarchive.TotalPages(41, 20))
	assert.Equal(t, 0, newsarchive.TotalPages(0, 20))
}

func TestParseArticleType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, newsarchive.ArticleTypeEpisode, newsarchive.ParseArticleType("episode"))
	assert.Equal(t, newsarchive.ArticleTypePost, newsarchive.ParseArticleType("unknown"))
}
