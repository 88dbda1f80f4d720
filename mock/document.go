package mock

import (
	"io"

	"github.com/fwojciec/newsarchive"
)

var _ newsarchive.Document = (*Document)(nil)

// Document is a mock implementation of newsarchive.Document.
type Document struct {
	AddHeadingFn   func(text string, level int)
	AddParagraphFn func(text string)
	AddImageFn     func(img *newsarchive.Image) error
	SaveFn         func(path string) error
}

func (d *Document) AddHeading(text string, level int) {
	d.AddHeadingFn(text, level)
}

func (d *Document) AddParagraph(text string) {
	d.AddParagraphFn(text)
}

func (d *Document) AddImage(img *newsarchive.Image) error {
	return d.AddImageFn(img)
}

func (d *Document) Save(path string) error {
	return d.SaveFn(path)
}

var _ newsarchive.DocumentFormat = (*DocumentFormat)(nil)

// DocumentFormat is a mock implementation of newsarchive.DocumentFormat.
type DocumentFormat struct {
	ExtFn         func() string
	NewDocumentFn func() newsarchive.Document
}

func (f *DocumentFormat) Ext() string {
	return f.ExtFn()
}

func (f *DocumentFormat) NewDocument() newsarchive.Document {
	return f.NewDocumentFn()
}

var _ newsarchive.TableWriter = (*TableWriter)(nil)

// TableWriter is a mock implementation of newsarchive.TableWriter.
type TableWriter struct {
	WriteTableFn func(w io.Writer, articles []*newsarchive.Article) error
}

func (t *TableWriter) WriteTable(w io.Writer, articles []*newsarchive.Article) error {
	return t.WriteTableFn(w, articles)
}
