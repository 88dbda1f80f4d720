package fs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/newsarchive"
	"github.com/fwojciec/newsarchive/fs"
	"github.com/fwojciec/newsarchive/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestSaveArticles(t *testing.T) {
	t.Parallel()

	t.Run("round trips a dataset", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "articles.json")
		articles := []*newsarchive.Article{
			{ID: 1, Title: "غزة", Link: "https://x/1", Date: strPtr("2024-07-16"), Type: newsarchive.ArticleTypeVideo, Source: newsarchive.Source},
			{ID: 2, Title: "رفح", Link: "https://x/2", Type: newsarchive.ArticleTypePost, Source: newsarchive.Source},
		}

		require.NoError(t, fs.SaveArticles(path, articles))
		got, err := fs.LoadArticles(path)

		require.NoError(t, err)
		assert.Equal(t, articles, got)
	})

	t.Run("writes arabic text unescaped", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "articles.json")

		require.NoError(t, fs.SaveArticles(path, []*newsarchive.Article{{ID: 1, Title: "غزة", Link: "https://x/?a=1&b=2"}}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "غزة")
		assert.Contains(t, string(data), "a=1&b=2")
		assert.Contains(t, string(data), `"date": null`)
		assert.NoFileExists(t, path+".tmp")
	})

	t.Run("writes an empty array for no articles", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "articles.json")

		require.NoError(t, fs.SaveArticles(path, nil))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[]", strings.TrimSpace(string(data)))
	})
}

func TestLoadArticles(t *testing.T) {
	t.Parallel()

	t.Run("returns not found for a missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fs.LoadArticles(filepath.Join(t.TempDir(), "missing.json"))

		assert.Equal(t, newsarchive.ENOTFOUND, newsarchive.ErrorCode(err))
	})

	t.Run("returns invalid for malformed JSON", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0644))

		_, err := fs.LoadArticles(path)

		assert.Equal(t, newsarchive.EINVALID, newsarchive.ErrorCode(err))
	})

	t.Run("defaults missing types to post", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"id":1,"title":"t","link":"l"}]`), 0644))

		got, err := fs.LoadArticles(path)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, newsarchive.ArticleTypePost, got[0].Type)
		assert.Nil(t, got[0].Date)
	})
}

func TestMarkdownDocument(t *testing.T) {
	t.Parallel()

	t.Run("renders frontmatter and blocks", func(t *testing.T) {
		t.Parallel()

		format := fs.MarkdownFormat{Now: func() time.Time { return time.Date(2024, 7, 17, 0, 0, 0, 0, time.UTC) }}
		doc := format.NewDocument()
		doc.AddHeading("أخبار فلسطين - 16 يوليو 2024", 0)
		doc.AddParagraph("عدد المقالات: 1 مقال")
		doc.AddHeading("1. عنوان", 1)
		require.NoError(t, doc.AddImage(&newsarchive.Image{URL: "https://x/a.jpg"}))

		path := filepath.Join(t.TempDir(), "report"+format.Ext())
		require.NoError(t, doc.Save(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		want := "---\n" +
			"title: أخبار فلسطين - 16 يوليو 2024\n" +
			"generated: \"2024-07-17\"\n" +
			"---\n\n" +
			"# أخبار فلسطين - 16 يوليو 2024\n\n" +
			"عدد المقالات: 1 مقال\n\n" +
			"## 1. عنوان\n\n" +
			"![](https://x/a.jpg)\n"
		assert.Equal(t, want, string(data))
	})

	t.Run("rejects images without a source", func(t *testing.T) {
		t.Parallel()

		doc := fs.MarkdownFormat{}.NewDocument()

		err := doc.AddImage(&newsarchive.Image{Data: []byte{1}})

		assert.Equal(t, newsarchive.EINVALID, newsarchive.ErrorCode(err))
	})
}

func TestImageCache_Path(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		article *newsarchive.Article
		want    string
	}{
		{
			name:    "dated image",
			article: &newsarchive.Article{ID: 7, ImageURL: "https://x/wp-content/photo.png?w=300", Date: strPtr("2024-07-16")},
			want:    filepath.Join("cache", "2024-07-16", "7_photo.png"),
		},
		{
			name:    "undated image",
			article: &newsarchive.Article{ID: 3, ImageURL: "https://x/a/photo.webp"},
			want:    filepath.Join("cache", "unknown_date", "3_photo.webp"),
		},
		{
			name:    "missing extension defaults to jpg",
			article: &newsarchive.Article{ID: 1, ImageURL: "https://x/a/photo"},
			want:    filepath.Join("cache", "unknown_date", "1_photo.jpg"),
		},
		{
			name:    "missing file name uses the id",
			article: &newsarchive.Article{ID: 9, ImageURL: "https://x/"},
			want:    filepath.Join("cache", "unknown_date", "9_article_9.jpg"),
		},
		{
			name:    "percent-encoded names are decoded",
			article: &newsarchive.Article{ID: 2, ImageURL: "https://x/%D8%BA%D8%B2%D8%A9.jpg"},
			want:    filepath.Join("cache", "unknown_date", "2_غزة.jpg"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := fs.NewImageCache("cache", nil)

			assert.Equal(t, tt.want, c.Path(tt.article))
		})
	}
}

func TestImageCache_Download(t *testing.T) {
	t.Parallel()

	article := &newsarchive.Article{ID: 1, ImageURL: "https://x/a.jpg", Date: strPtr("2024-07-16")}

	t.Run("writes the fetched image", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.ImageFetcher{
			FetchImageFn: func(ctx context.Context, url string) (*newsarchive.Image, error) {
				return &newsarchive.Image{URL: url, Data: []byte("img"), Ext: ".jpg"}, nil
			},
		}
		c := fs.NewImageCache(t.TempDir(), fetcher)

		path, downloaded, err := c.Download(context.Background(), article, false)

		require.NoError(t, err)
		assert.True(t, downloaded)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "img", string(data))
	})

	t.Run("skips existing files unless forced", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetcher := &mock.ImageFetcher{
			FetchImageFn: func(ctx context.Context, url string) (*newsarchive.Image, error) {
				calls++
				return &newsarchive.Image{URL: url, Data: []byte("img"), Ext: ".jpg"}, nil
			},
		}
		c := fs.NewImageCache(t.TempDir(), fetcher)
		_, _, err := c.Download(context.Background(), article, false)
		require.NoError(t, err)

		_, downloaded, err := c.Download(context.Background(), article, false)
		require.NoError(t, err)
		assert.False(t, downloaded)
		assert.Equal(t, 1, calls)

		_, downloaded, err = c.Download(context.Background(), article, true)
		require.NoError(t, err)
		assert.True(t, downloaded)
		assert.Equal(t, 2, calls)
	})

	t.Run("returns fetch errors", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.ImageFetcher{
			FetchImageFn: func(ctx context.Context, url string) (*newsarchive.Image, error) {
				return nil, errors.New("HTTP 404")
			},
		}
		c := fs.NewImageCache(t.TempDir(), fetcher)

		path, downloaded, err := c.Download(context.Background(), article, false)

		require.Error(t, err)
		assert.False(t, downloaded)
		assert.NoFileExists(t, path)
	})

	t.Run("rejects articles without images", func(t *testing.T) {
		t.Parallel()

		c := fs.NewImageCache(t.TempDir(), nil)

		_, _, err := c.Download(context.Background(), &newsarchive.Article{ID: 1}, false)

		assert.Equal(t, newsarchive.EINVALID, newsarchive.ErrorCode(err))
	})
}
