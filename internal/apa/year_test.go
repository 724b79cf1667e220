package apa

import (
	"testing"

	"github.com/schedkit/syllabib/internal/bib"
)

func entryWith(fields map[string]string) bib.Entry {
	return bib.Entry{Key: "k", Type: "article", Fields: fields}
}

func TestFormatYear(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		want   string
	}{
		{"plain year", map[string]string{"year": "2020"}, "2020"},
		{"iso year-month", map[string]string{"year": "2023-05"}, "2023"},
		{"iso full date", map[string]string{"date": "2023-05-12"}, "2023"},
		{"slash date", map[string]string{"year": "2023/05/12"}, "2023"},
		{"year with season", map[string]string{"year": "2023 spring"}, "2023"},
		{"in press preserved", map[string]string{"year": "in press"}, "in press"},
		{"forthcoming preserved", map[string]string{"year": "Forthcoming"}, "Forthcoming"},
		{"embedded year", map[string]string{"year": "circa 1998 reprint"}, "1998"},
		{"braces stripped", map[string]string{"year": "{2020}"}, "2020"},
		{"unrecognized value passes through", map[string]string{"year": "soon"}, "soon"},
		{"year field preferred over date", map[string]string{"year": "2019", "date": "2021-01-01"}, "2019"},
		{"note in press fallback keeps case", map[string]string{"note": "Accepted, In Press"}, "In Press"},
		{"note forthcoming fallback", map[string]string{"note": "forthcoming at JoE"}, "forthcoming"},
		{"no year anywhere", map[string]string{"title": "T"}, "n.d."},
		{"note without phrase", map[string]string{"note": "under review"}, "n.d."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatYear(entryWith(tt.fields)); got != tt.want {
				t.Errorf("FormatYear() = %q, want %q", got, tt.want)
			}
		})
	}
}
