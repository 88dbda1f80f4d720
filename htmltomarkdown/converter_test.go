package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/newsarchive"
	"github.com/fwojciec/newsarchive/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts paragraphs", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<div><p>الفقرة الأولى.</p><p>الفقرة الثانية.</p></div>`)

		require.NoError(t, err)
		assert.Equal(t, "الفقرة الأولى.\n\nالفقرة الثانية.", md)
	})

	t.Run("converts headings", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<h2>عنوان فرعي</h2><p>نص</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "## عنوان فرعي")
	})

	t.Run("resolves relative links against the domain", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter(htmltomarkdown.WithDomain("https://example.com"))

		md, err := conv.Convert(`<p>انظر <a href="/news/1">الخبر</a></p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[الخبر](https://example.com/news/1)")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<table><tr><th>المدينة</th></tr><tr><td>غزة</td></tr></table>`)

		require.NoError(t, err)
		assert.Contains(t, md, "| المدينة |")
		assert.Contains(t, md, "| غزة")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().Convert("   ")

		assert.Equal(t, newsarchive.EINVALID, newsarchive.ErrorCode(err))
	})
}
