package newsarchive

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DateLayout recognizes one textual date layout. Year, Month and Day are the
// submatch indexes of each component in Pattern.
type DateLayout struct {
	Name    string
	Pattern *regexp.Regexp
	Year    int
	Month   int
	Day     int
}

// DateLayouts are tried in order by ParseDate.
var DateLayouts = []DateLayout{
	{Name: "D/M/YYYY", Pattern: regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`), Year: 3, Month: 2, Day: 1},
	{Name: "YYYY-M-D", Pattern: regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`), Year: 1, Month: 2, Day: 3},
	{Name: "D-M-YYYY", Pattern: regexp.MustCompile(`(\d{1,2})-(\d{1,2})-(\d{4})`), Year: 3, Month: 2, Day: 1},
	{Name: "YYYY/M/D", Pattern: regexp.MustCompile(`(\d{4})/(\d{1,2})/(\d{1,2})`), Year: 1, Month: 2, Day: 3},
}

// ParseDate finds the first recognizable date in text and normalizes it to
// YYYY-MM-DD. A layout that matches but names an impossible calendar date
// falls through to the next layout. Returns nil when nothing usable is found.
func ParseDate(text string) *string {
	if text == "" {
		return nil
	}
	for _, layout := range DateLayouts {
		m := layout.Pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if date, ok := calendarDate(m[layout.Year], m[layout.Month], m[layout.Day]); ok {
			return &date
		}
	}
	return nil
}

// IsISODate reports whether s is a valid YYYY-MM-DD calendar date.
func IsISODate(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

func calendarDate(year, month, day string) (string, bool) {
	y, err := strconv.Atoi(year)
	if err != nil || y < 1 {
		return "", false
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return "", false
	}
	d, err := strconv.Atoi(day)
	if err != nil || d < 1 {
		return "", false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d), true
}
