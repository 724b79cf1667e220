package dates

import (
	"testing"
	"time"
)

func mustStart(t *testing.T, s string) time.Time {
	t.Helper()
	start, err := ParseStart(s, "UTC")
	if err != nil {
		t.Fatalf("ParseStart(%q) error: %v", s, err)
	}
	return start
}

func TestExpand_InlineMacro(t *testing.T) {
	start := mustStart(t, "2025-09-03")
	got := Expand("Class meets `r advdate(wed, 2)` as usual.", start)
	want := "Class meets Week 2 (Wednesday, September 10, 2025) as usual."
	if got != want {
		t.Errorf("Expand() = %q, want %q", got, want)
	}
}

func TestExpand_BareMacro(t *testing.T) {
	start := mustStart(t, "2025-09-03")
	got := Expand("Due advdate(wed, 1).", start)
	want := "Due Week 1 (Wednesday, September 3, 2025)."
	if got != want {
		t.Errorf("Expand() = %q, want %q", got, want)
	}
}

func TestExpand_CaseAndSpacing(t *testing.T) {
	start := mustStart(t, "2025-09-03")
	tests := []struct {
		text string
		want string
	}{
		{"ADVDATE( WED , 3 )", "Week 3 (Wednesday, September 17, 2025)"},
		{"`r  advdate ( wed, 4 )`", "Week 4 (Wednesday, September 24, 2025)"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := Expand(tt.text, start); got != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExpand_MultipleMacros(t *testing.T) {
	start := mustStart(t, "2025-09-03")
	got := Expand("advdate(wed, 1) ... advdate(wed, 10)", start)
	want := "Week 1 (Wednesday, September 3, 2025) ... Week 10 (Wednesday, November 5, 2025)"
	if got != want {
		t.Errorf("Expand() = %q, want %q", got, want)
	}
}

func TestExpand_NoMacrosUnchanged(t *testing.T) {
	start := mustStart(t, "2025-09-03")
	text := "advance the date() but no macro here"
	if got := Expand(text, start); got != text {
		t.Errorf("Expand() changed text without macros: %q", got)
	}
}

func TestParseStart(t *testing.T) {
	if _, err := ParseStart("2025-09-03", "America/Chicago"); err != nil {
		t.Errorf("ParseStart() valid input error: %v", err)
	}
	if _, err := ParseStart("09/03/2025", "UTC"); err == nil {
		t.Error("ParseStart() should reject non-ISO dates")
	}
	if _, err := ParseStart("2025-09-03", "Not/AZone"); err == nil {
		t.Error("ParseStart() should reject unknown timezones")
	}
}
