package excelize_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/fwojciec/newsarchive"
	nexcelize "github.com/fwojciec/newsarchive/excelize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// onePixelPNG is a valid 1x1 transparent PNG.
var onePixelPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func TestDocument(t *testing.T) {
	t.Parallel()

	t.Run("writes blocks in order on a right-to-left sheet", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "report.xlsx")
		doc := nexcelize.NewDocument()
		doc.AddHeading("أخبار فلسطين", 0)
		doc.AddParagraph("عدد المقالات: 1 مقال")
		doc.AddHeading("1. عنوان", 1)

		require.NoError(t, doc.Save(path))

		f, err := excelize.OpenFile(path)
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows(nexcelize.ReportSheet)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "أخبار فلسطين", rows[0][0])
		assert.Equal(t, "عدد المقالات: 1 مقال", rows[1][0])
		assert.Equal(t, "1. عنوان", rows[2][0])

		view, err := f.GetSheetView(nexcelize.ReportSheet, 0)
		require.NoError(t, err)
		require.NotNil(t, view.RightToLeft)
		assert.True(t, *view.RightToLeft)
	})

	t.Run("embeds supported images", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "report.xlsx")
		doc := nexcelize.NewDocument()
		doc.AddParagraph("before")

		err := doc.AddImage(&newsarchive.Image{URL: "https://x/a.png", Data: onePixelPNG, Ext: ".png"})

		require.NoError(t, err)
		assert.Equal(t, 2, doc.Rows())
		require.NoError(t, doc.Save(path))
	})

	t.Run("rejects unsupported images without taking a row", func(t *testing.T) {
		t.Parallel()

		doc := nexcelize.NewDocument()
		doc.AddParagraph("before")

		err := doc.AddImage(&newsarchive.Image{URL: "https://x/a.bin", Data: []byte("nope"), Ext: ".bin"})

		require.Error(t, err)
		assert.Equal(t, 1, doc.Rows())
	})

	t.Run("rejects empty images", func(t *testing.T) {
		t.Parallel()

		doc := nexcelize.NewDocument()

		err := doc.AddImage(&newsarchive.Image{})

		assert.Equal(t, newsarchive.EINVALID, newsarchive.ErrorCode(err))
	})

	t.Run("format reports its extension", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, ".xlsx", nexcelize.Format{}.Ext())
		assert.NotNil(t, nexcelize.Format{}.NewDocument())
	})
}

func TestTableWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes a header and one row per article", func(t *testing.T) {
		t.Parallel()

		date := "2024-07-16"
		articles := []*newsarchive.Article{
			{ID: 1, Title: "أول", Date: &date, Link: "https://x/%D8%A3", Type: newsarchive.ArticleTypeVideo},
			{ID: 2, Title: "ثاني", Type: newsarchive.ArticleTypePost},
		}
		var buf bytes.Buffer

		err := nexcelize.NewTableWriter(nil).WriteTable(&buf, articles)
		require.NoError(t, err)

		f, err := excelize.OpenReader(&buf)
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows(nexcelize.TableSheet)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, nexcelize.TableHeaders, rows[0])
		assert.Equal(t, "أول", rows[1][1])
		assert.Equal(t, "2024-07-16", rows[1][2])
		assert.Equal(t, "فيديو", rows[1][3])
		assert.Equal(t, "https://x/أ", rows[1][5])
		assert.Equal(t, "2", rows[2][0])
	})

	t.Run("writes only the header for no articles", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		require.NoError(t, nexcelize.NewTableWriter(nil).WriteTable(&buf, nil))

		f, err := excelize.OpenReader(&buf)
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows(nexcelize.TableSheet)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})
}
