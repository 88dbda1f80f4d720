package newsarchive

import (
	"fmt"
	"net/url"
	"time"
)

var arabicMonths = [12]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

var typeLabels = map[ArticleType]string{
	ArticleTypePost:     "مقال",
	ArticleTypeVideo:    "فيديو",
	ArticleTypeLiveblog: "بث مباشر",
	ArticleTypeEpisode:  "حلقة",
	ArticleTypeGallery:  "معرض صور",
}

// TypeLabel returns the Arabic display label for t, or t itself when the
// type has no label.
func TypeLabel(t ArticleType) string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return string(t)
}

// FormatArabicDate formats a YYYY-MM-DD date as "16 يوليو 2024".
// Unparsable input is returned unchanged.
func FormatArabicDate(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%d %s %d", t.Day(), arabicMonths[t.Month()-1], t.Year())
}

// DecodeURL percent-decodes link for display. Links that fail to decode are
// returned unchanged.
func DecodeURL(link string) string {
	decoded, err := url.PathUnescape(link)
	if err != nil {
		return link
	}
	return decoded
}
