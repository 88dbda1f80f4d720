package readability_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/newsarchive"
	"github.com/fwojciec/newsarchive/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var longParagraph = strings.Repeat("قالت مصادر محلية إن القصف استهدف منازل المدنيين في المدينة. ", 10)

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := readability.NewExtractor().Extract("  ")

	assert.Equal(t, newsarchive.EINVALID, newsarchive.ErrorCode(err))
}

func TestExtractor_ExtractsMainContent(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html dir="rtl">
<head><title>عنوان المقال</title></head>
<body>
<nav><a href="/home">الرئيسية</a><a href="/news">أخبار</a></nav>
<main><div class="story"><p>` + longParagraph + `</p><p>` + longParagraph + `</p></div></main>
<footer>جميع الحقوق محفوظة</footer>
</body>
</html>`

	result, err := readability.NewExtractor().Extract(html)

	require.NoError(t, err)
	assert.Equal(t, "عنوان المقال", result.Title)
	assert.Contains(t, result.ContentHTML, "قالت مصادر محلية")
	assert.NotContains(t, result.ContentHTML, "جميع الحقوق محفوظة")
}

func TestExtractor_RejectsShortContent(t *testing.T) {
	t.Parallel()

	html := `<html><head><title>t</title></head><body><article><p>نص قصير.</p></article></body></html>`

	_, err := readability.NewExtractor().Extract(html)

	assert.Equal(t, newsarchive.ENOTFOUND, newsarchive.ErrorCode(err))
}

func TestExtractor_MinTextLengthIsConfigurable(t *testing.T) {
	t.Parallel()

	html := `<html><head><title>t</title></head><body><article><p>نص قصير.</p></article></body></html>`

	result, err := readability.NewExtractor(readability.WithMinTextLength(1)).Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "نص قصير.")
}
