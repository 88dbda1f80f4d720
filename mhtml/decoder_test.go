package mhtml_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/newsarchive"
	"github.com/fwojciec/newsarchive/mhtml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const capture = "From: <Saved by Blink>\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: multipart/related; boundary=\"----MultipartBoundary--abc----\"\r\n" +
	"\r\n" +
	"------MultipartBoundary--abc----\r\n" +
	"Content-Type: text/html\r\n" +
	"Content-ID: <frame-1>\r\n" +
	"Content-Transfer-Encoding: quoted-printable\r\n" +
	"Content-Location: https://www.aljazeera.net/where/mideast/palestine/\r\n" +
	"\r\n" +
	"<!DOCTYPE html><html><body class=3D\"rtl\"><p>=D8=BA=D8=B2=D8=A9</p>=\r\n" +
	"<p>long line</p></body></html>\r\n" +
	"------MultipartBoundary--abc----\r\n" +
	"Content-Type: text/css\r\n" +
	"\r\n" +
	"body { color: red; }\r\n"

func TestDecoder_Decode(t *testing.T) {
	t.Parallel()

	t.Run("decodes the matching HTML part", func(t *testing.T) {
		t.Parallel()

		html, err := mhtml.NewDecoder().Decode(strings.NewReader(capture))

		require.NoError(t, err)
		assert.Equal(t, `<!DOCTYPE html><html><body class="rtl"><p>غزة</p><p>long line</p></body></html>`, html)
		assert.NotContains(t, html, "color: red")
	})

	t.Run("returns not found without a matching part", func(t *testing.T) {
		t.Parallel()

		other := strings.ReplaceAll(capture, "palestine", "sport")

		_, err := mhtml.NewDecoder().Decode(strings.NewReader(other))

		assert.Equal(t, newsarchive.ENOTFOUND, newsarchive.ErrorCode(err))
	})

	t.Run("honors a custom location pattern", func(t *testing.T) {
		t.Parallel()

		other := strings.ReplaceAll(capture, "palestine", "sport")

		html, err := mhtml.NewDecoder(mhtml.WithLocationPattern(`https://www\.aljazeera\.net/.*?sport`)).
			Decode(strings.NewReader(other))

		require.NoError(t, err)
		assert.Contains(t, html, "غزة")
	})

	t.Run("stops at the line limit", func(t *testing.T) {
		t.Parallel()

		html, err := mhtml.NewDecoder(mhtml.WithMaxLines(1)).Decode(strings.NewReader(capture))

		require.NoError(t, err)
		assert.Contains(t, html, "غزة")
		assert.NotContains(t, html, "long line")
	})

	t.Run("keeps malformed escapes", func(t *testing.T) {
		t.Parallel()

		input := strings.Replace(capture, "<p>long line</p>", "<p>a=ZZb</p>", 1)

		html, err := mhtml.NewDecoder().Decode(strings.NewReader(input))

		require.NoError(t, err)
		assert.Contains(t, html, "a=ZZb")
	})
}

func TestLooksLikeCapture(t *testing.T) {
	t.Parallel()

	assert.True(t, mhtml.LooksLikeCapture([]byte(capture)))
	assert.False(t, mhtml.LooksLikeCapture([]byte("<!DOCTYPE html><html></html>")))
}
