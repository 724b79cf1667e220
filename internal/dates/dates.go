// Package dates expands advdate week macros in schedule documents.
//
// Both the inline R-code form `r advdate(wed, N)` and the bare form
// advdate(wed, N) are supported; each expands to the Nth Wednesday after
// the configured start date, rendered as "Week N (Wednesday, Month D, YYYY)".
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	inlineRe = regexp.MustCompile("(?i)`r\\s+advdate\\s*\\(\\s*wed\\s*,\\s*(\\d+)\\s*\\)`")
	bareRe   = regexp.MustCompile(`(?i)\badvdate\s*\(\s*wed\s*,\s*(\d+)\s*\)`)
)

// ParseStart parses an ISO start date in the given IANA timezone. The
// timezone affects only wall-clock interpretation of the reference date.
func ParseStart(start, tz string) (time.Time, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	t, err := time.ParseInLocation("2006-01-02", start, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start date %q; use YYYY-MM-DD: %w", start, err)
	}
	return t, nil
}

// Expand replaces all date macros in the document, anchoring week 1 at the
// start date. Inline code macros are expanded before bare ones so the
// backticked form never leaves stray backticks behind.
func Expand(text string, start time.Time) string {
	text = inlineRe.ReplaceAllStringFunc(text, func(m string) string {
		n, _ := strconv.Atoi(inlineRe.FindStringSubmatch(m)[1])
		return weekLabel(n, start)
	})
	text = bareRe.ReplaceAllStringFunc(text, func(m string) string {
		n, _ := strconv.Atoi(bareRe.FindStringSubmatch(m)[1])
		return weekLabel(n, start)
	})
	return text
}

// weekLabel renders "Week N (Wednesday, September 10, 2025)".
func weekLabel(n int, start time.Time) string {
	d := start.AddDate(0, 0, 7*(n-1))
	return fmt.Sprintf("Week %d (%s)", n, d.Format("Monday, January 2, 2006"))
}
