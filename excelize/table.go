package excelize

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/newsarchive"
	"github.com/xuri/excelize/v2"
)

// TableSheet is the name of the sheet written by TableWriter.
const TableSheet = "المقالات"

// TableHeaders are the column titles of an article table.
var TableHeaders = []string{
	"الرقم",
	"العنوان",
	"التاريخ",
	"نوع المحتوى",
	"الملخص",
	"الرابط",
	"الصورة",
}

// excerptLimit bounds excerpt cells, in runes.
const excerptLimit = 300

// Ensure TableWriter implements newsarchive.TableWriter at compile time.
var _ newsarchive.TableWriter = (*TableWriter)(nil)

// TableWriter writes article listings as a single-sheet workbook.
type TableWriter struct {
	logger *slog.Logger
}

// NewTableWriter creates a TableWriter.
func NewTableWriter(logger *slog.Logger) *TableWriter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TableWriter{logger: logger}
}

// WriteTable writes a header row followed by one row per article.
func (t *TableWriter) WriteTable(w io.Writer, articles []*newsarchive.Article) error {
	start := time.Now()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), TableSheet); err != nil {
		return err
	}
	rtl := true
	if err := f.SetSheetView(TableSheet, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	for i, h := range TableHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(TableSheet, cell, h); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(TableHeaders), 1)
	if err := f.SetCellStyle(TableSheet, "A1", last, bold); err != nil {
		return err
	}

	for i, a := range articles {
		row := i + 2
		write := func(col int, v any) error {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			return f.SetCellValue(TableSheet, cell, v)
		}
		values := []any{
			a.ID,
			a.Title,
			a.DateOr(""),
			newsarchive.TypeLabel(a.Type),
			truncate(a.Excerpt, excerptLimit),
			newsarchive.DecodeURL(a.Link),
			a.ImageURL,
		}
		for col, v := range values {
			if err := write(col+1, v); err != nil {
				return err
			}
		}
	}

	_ = f.SetColWidth(TableSheet, "A", "A", 8)
	_ = f.SetColWidth(TableSheet, "B", "B", 60)
	_ = f.SetColWidth(TableSheet, "C", "D", 14)
	_ = f.SetColWidth(TableSheet, "E", "E", 80)
	_ = f.SetColWidth(TableSheet, "F", "G", 50)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}

	t.logger.Info("article table written", "rows", len(articles), "elapsed_ms", time.Since(start).Milliseconds())
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
