package apa

import (
	"regexp"
	"strings"

	"github.com/schedkit/syllabib/internal/bib"
)

var (
	// leadingYearRe matches "2023", "2023-05", "2023/05/12", "2023 spring".
	leadingYearRe = regexp.MustCompile(`^(\d{4})(?:[-/ ].*)?$`)
	inPressRe     = regexp.MustCompile(`(?i)\b(in\s+press|forthcoming)\b`)
	anyYearRe     = regexp.MustCompile(`\d{4}`)
)

// FormatYear resolves an entry's citation year. Preference order: the year
// or date field (leading 4-digit year extracted from ISO-like dates, "in
// press"/"forthcoming" preserved verbatim, otherwise the first embedded
// 4-digit run), then an "in press"/"forthcoming" phrase in the note field,
// then the literal "n.d.".
func FormatYear(e bib.Entry) string {
	y := strings.TrimSpace(e.FirstField("year", "date"))
	if y != "" {
		y = strings.NewReplacer("{", "", "}", "").Replace(y)
		y = strings.TrimSpace(y)
		if m := leadingYearRe.FindStringSubmatch(y); m != nil {
			return m[1]
		}
		if inPressRe.MatchString(y) {
			return y
		}
		if m := anyYearRe.FindString(y); m != "" {
			return m
		}
		return y
	}

	note := strings.NewReplacer("{", "", "}", "").Replace(e.Field("note"))
	if m := inPressRe.FindStringSubmatch(note); m != nil {
		return m[1]
	}
	return "n.d."
}
