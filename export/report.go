package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/newsarchive"
)

// Fixed report text.
const (
	reportTitle        = "أخبار فلسطين - %s"
	reportCount        = "عدد المقالات: %d مقال"
	reportMetadata     = "نوع المحتوى: %s | تاريخ النشر: %s | المصدر: %s"
	reportExcerpt      = "ملخص المقال:"
	reportContent      = "المحتوى الكامل:"
	reportNoContent    = "لم يتم العثور على المحتوى الكامل"
	reportNoImage      = "تعذر تحميل الصورة"
	reportLink         = "رابط المقال الأصلي: %s"
	reportFooter       = "تم إنشاء هذا التقرير في: %s"
	reportUnknownDate  = "غير محدد"
	reportDefaultSrc   = "الجزيرة نت"
	reportUntitled     = "بدون عنوان"
	reportHeaderRule   = 50
	reportArticleRule  = 50
	reportFooterLayout = "2006-01-02 15:04"
)

// report writes the fixed layout of an export document.
type report struct {
	doc newsarchive.Document
}

func (r *report) header(date string, count int) {
	r.doc.AddHeading(fmt.Sprintf(reportTitle, newsarchive.FormatArabicDate(date)), 0)
	r.doc.AddParagraph(fmt.Sprintf(reportCount, count))
	r.doc.AddParagraph(strings.Repeat("=", reportHeaderRule))
}

func (r *report) article(i int, a *newsarchive.Article) {
	title := a.Title
	if title == "" {
		title = reportUntitled
	}
	source := a.Source
	if source == "" {
		source = reportDefaultSrc
	}

	r.doc.AddHeading(fmt.Sprintf("%d. %s", i, title), 1)
	r.doc.AddParagraph(fmt.Sprintf(reportMetadata, newsarchive.TypeLabel(a.Type), a.DateOr(reportUnknownDate), source))

	if a.Excerpt != "" {
		r.doc.AddHeading(reportExcerpt, 2)
		r.doc.AddParagraph(a.Excerpt)
	}
}

// image appends img, or a notice when it could not be fetched or embedded.
// It reports whether the picture was embedded.
func (r *report) image(img *newsarchive.Image) bool {
	if img == nil || r.doc.AddImage(img) != nil {
		r.doc.AddParagraph(reportNoImage)
		return false
	}
	return true
}

func (r *report) content(text string) {
	r.doc.AddHeading(reportContent, 2)
	if newsarchive.IsPlaceholder(text) {
		r.doc.AddParagraph(reportNoContent)
		return
	}
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			r.doc.AddParagraph(p)
		}
	}
}

func (r *report) link(a *newsarchive.Article) {
	r.doc.AddParagraph(fmt.Sprintf(reportLink, newsarchive.DecodeURL(a.Link)))
}

func (r *report) separator() {
	r.doc.AddParagraph(strings.Repeat("-", reportArticleRule))
}

func (r *report) footer(now time.Time) {
	r.doc.AddParagraph(fmt.Sprintf(reportFooter, now.Format(reportFooterLayout)))
}
