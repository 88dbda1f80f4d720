// Package excelize renders export documents and article tables as XLSX
// workbooks.
package excelize

import (
	"fmt"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/fwojciec/newsarchive"
	"github.com/xuri/excelize/v2"
)

// ReportSheet is the name of the single sheet of an export document.
const ReportSheet = "التقرير"

const (
	reportColumn    = "A"
	reportWidth     = 100
	imageRowHeight  = 160
	defaultFontSize = 11
)

// headingSizes holds the font size per heading level.
var headingSizes = []float64{18, 14, 12}

// Ensure Format implements newsarchive.DocumentFormat at compile time.
var _ newsarchive.DocumentFormat = Format{}

// Format creates XLSX documents.
type Format struct{}

// Ext returns ".xlsx".
func (Format) Ext() string { return ".xlsx" }

// NewDocument returns an empty right-to-left workbook.
func (Format) NewDocument() newsarchive.Document {
	return NewDocument()
}

// Ensure Document implements newsarchive.Document at compile time.
var _ newsarchive.Document = (*Document)(nil)

// Document writes one block per row of a single right-to-left sheet.
// Errors from the workbook are held until Save.
type Document struct {
	f         *excelize.File
	row       int
	headings  []int
	paragraph int
	err       error
}

// NewDocument creates an empty Document.
func NewDocument() *Document {
	f := excelize.NewFile()
	d := &Document{f: f}

	d.setErr(f.SetSheetName(f.GetSheetName(0), ReportSheet))
	rtl := true
	d.setErr(f.SetSheetView(ReportSheet, 0, &excelize.ViewOptions{RightToLeft: &rtl}))
	d.setErr(f.SetColWidth(ReportSheet, reportColumn, reportColumn, reportWidth))

	for _, size := range headingSizes {
		id, err := f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: size},
			Alignment: &excelize.Alignment{Horizontal: "right", WrapText: true, ReadingOrder: 2},
		})
		d.setErr(err)
		d.headings = append(d.headings, id)
	}
	id, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: defaultFontSize},
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "top", WrapText: true, ReadingOrder: 2},
	})
	d.setErr(err)
	d.paragraph = id

	return d
}

// AddHeading appends a bold row. Levels beyond the known sizes use the
// smallest heading size.
func (d *Document) AddHeading(text string, level int) {
	level = max(0, min(level, len(d.headings)-1))
	d.write(text, d.headings[level])
}

// AddParagraph appends a wrapped text row.
func (d *Document) AddParagraph(text string) {
	d.write(text, d.paragraph)
}

// AddImage embeds the picture in its own row. Unsupported formats return
// an error and leave the document unchanged.
func (d *Document) AddImage(img *newsarchive.Image) error {
	if img == nil || len(img.Data) == 0 {
		return newsarchive.Errorf(newsarchive.EINVALID, "empty image")
	}
	cell := d.next()
	err := d.f.AddPictureFromBytes(ReportSheet, cell, &excelize.Picture{
		Extension: img.Ext,
		File:      img.Data,
		Format: &excelize.GraphicOptions{
			AutoFit:         true,
			LockAspectRatio: true,
			AltText:         img.URL,
		},
	})
	if err != nil {
		d.row--
		return fmt.Errorf("embed image %s: %w", img.URL, err)
	}
	d.setErr(d.f.SetRowHeight(ReportSheet, d.row, imageRowHeight))
	return nil
}

// Save writes the workbook to path.
func (d *Document) Save(path string) error {
	if d.err != nil {
		return d.err
	}
	if err := d.f.SaveAs(path); err != nil {
		return err
	}
	return d.f.Close()
}

// Rows returns the number of rows written.
func (d *Document) Rows() int {
	return d.row
}

func (d *Document) write(text string, style int) {
	cell := d.next()
	d.setErr(d.f.SetCellValue(ReportSheet, cell, text))
	d.setErr(d.f.SetCellStyle(ReportSheet, cell, cell, style))
}

func (d *Document) next() string {
	d.row++
	cell, err := excelize.CoordinatesToCellName(1, d.row)
	d.setErr(err)
	return cell
}

func (d *Document) setErr(err error) {
	if d.err == nil && err != nil {
		d.err = err
	}
}
