package cite

import (
	"reflect"
	"sort"
	"testing"
)

func sortedKeys(m map[string]bool) []string {
	var out []string
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestCollectKeys(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "bare keys",
			text: "Prior work @doe2020 and @smith2019 showed...",
			want: []string{"doe2020", "smith2019"},
		},
		{
			name: "key at start of text",
			text: "@doe2020 opened the field.",
			want: []string{"doe2020"},
		},
		{
			name: "emails are not citations",
			text: "Mail jane@example.edu or staff@dept.school.edu.",
			want: nil,
		},
		{
			name: "double at is not a citation",
			text: "The handle @@notakey stays.",
			want: nil,
		},
		{
			name: "key preceded by letter is not a citation",
			text: "weird@key here",
			want: nil,
		},
		{
			name: "punctuation before key is fine",
			text: "(see @doe2020)",
			want: []string{"doe2020"},
		},
		{
			name: "permissive key characters",
			text: "see @van_der:2020+rev.1/a end",
			want: []string{"van_der:2020+rev.1/a"},
		},
		{
			name: "cite macro single key",
			text: `as shown \cite{doe2020}`,
			want: []string{"doe2020"},
		},
		{
			name: "citep macro with multiple keys",
			text: `\citep{doe2020, smith2019,jones2021}`,
			want: []string{"doe2020", "jones2021", "smith2019"},
		},
		{
			name: "both syntaxes deduplicated",
			text: `@doe2020 and \citet{doe2020}`,
			want: []string{"doe2020"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sortedKeys(CollectKeys(tt.text))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CollectKeys(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractKeys_StripsTrailingPunctuation(t *testing.T) {
	text := "As in @doe2020. Also @smith2019; and @jones2021)]"
	got := sortedKeys(ExtractKeys(text))
	want := []string{"doe2020", "jones2021", "smith2019"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractKeys() = %v, want %v", got, want)
	}
}
