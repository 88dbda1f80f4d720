package newsarchive

import "io"

// Document is an export artifact under construction. Content is appended in
// reading order.
type Document interface {
	// AddHeading appends a heading. Level 0 is the document title.
	AddHeading(text string, level int)

	// AddParagraph appends a body paragraph.
	AddParagraph(text string)

	// AddImage appends a picture.
	AddImage(img *Image) error

	// Save writes the document to path.
	Save(path string) error
}

// DocumentFormat creates documents of one file format.
type DocumentFormat interface {
	// Ext returns the file extension including the leading dot.
	Ext() string

	NewDocument() Document
}

// TableWriter writes an article listing as a spreadsheet.
type TableWriter interface {
	// WriteTable writes one row per article to w.
	WriteTable(w io.Writer, articles []*Article) error
}
