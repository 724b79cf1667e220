package bib

import (
	"reflect"
	"testing"
)

func TestScanBlocks_BasicEntries(t *testing.T) {
	text := `@article{doe2020,
  author = {Doe, John},
  title = {A Study},
}

@book{smith2019,
  title = {A Book},
}`

	blocks := ScanBlocks(text)
	if len(blocks) != 2 {
		t.Fatalf("ScanBlocks() returned %d blocks, want 2", len(blocks))
	}

	if blocks[0].Key != "doe2020" || blocks[0].Type != "article" || blocks[0].Special {
		t.Errorf("first block = %+v, want article doe2020", blocks[0])
	}
	if blocks[1].Key != "smith2019" || blocks[1].Type != "book" {
		t.Errorf("second block = %+v, want book smith2019", blocks[1])
	}
}

func TestScanBlocks_NestedBraces(t *testing.T) {
	text := `@article{key1, title = {The {DNA} of {Nested {Deep}} Titles}, year = {2020}}
@article{key2, title = {Second}}`

	blocks := ScanBlocks(text)
	if len(blocks) != 2 {
		t.Fatalf("ScanBlocks() returned %d blocks, want 2", len(blocks))
	}
	if blocks[0].Key != "key1" {
		t.Errorf("first key = %q, want key1", blocks[0].Key)
	}
	want := `@article{key1, title = {The {DNA} of {Nested {Deep}} Titles}, year = {2020}}`
	if blocks[0].Raw != want {
		t.Errorf("first raw block = %q, want %q", blocks[0].Raw, want)
	}
}

func TestScanBlocks_SpecialBlocks(t *testing.T) {
	text := `@string{jex = {Journal of Examples}}
@preamble{"\newcommand{\x}{y}"}
@comment{nothing to see}
@article{doe2020, title = {T}}`

	blocks := ScanBlocks(text)
	if len(blocks) != 4 {
		t.Fatalf("ScanBlocks() returned %d blocks, want 4", len(blocks))
	}
	for i, typ := range []string{"string", "preamble", "comment"} {
		if !blocks[i].Special || blocks[i].Type != typ {
			t.Errorf("block %d = %+v, want special %s", i, blocks[i], typ)
		}
	}
	if blocks[3].Special || blocks[3].Key != "doe2020" {
		t.Errorf("block 3 = %+v, want entry doe2020", blocks[3])
	}
}

func TestScanBlocks_MalformedKeyIsSpecial(t *testing.T) {
	// No comma between key and body: key cannot be delimited.
	text := `@misc{nokeyhere}
@article{good2020, title = {T}}`

	blocks := ScanBlocks(text)
	if len(blocks) != 2 {
		t.Fatalf("ScanBlocks() returned %d blocks, want 2", len(blocks))
	}
	if !blocks[0].Special {
		t.Errorf("malformed block should be special, got %+v", blocks[0])
	}
	if blocks[1].Key != "good2020" {
		t.Errorf("scan should recover after malformed block, got %+v", blocks[1])
	}
}

func TestScanBlocks_IgnoresEmails(t *testing.T) {
	text := `Contact jane@example.edu for details.
@article{real2020, title = {T}}`

	blocks := ScanBlocks(text)
	if len(blocks) != 1 || blocks[0].Key != "real2020" {
		t.Fatalf("ScanBlocks() = %+v, want only real2020", blocks)
	}
}

func TestScanBlocks_KeyMatchesFirstTopLevelComma(t *testing.T) {
	// The key must be exactly the text between the first '{' and the
	// first comma, whitespace-trimmed.
	tests := []struct {
		raw  string
		want string
	}{
		{"@article{plain2020, title = {T}}", "plain2020"},
		{"@article{ spaced2020 , title = {T}}", "spaced2020"},
		{"@article{key:with/chars-2020.a, title = {T}}", "key:with/chars-2020.a"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			blocks := ScanBlocks(tt.raw)
			if len(blocks) != 1 || blocks[0].Key != tt.want {
				t.Errorf("ScanBlocks(%q) key = %+v, want %q", tt.raw, blocks, tt.want)
			}
		})
	}
}

func TestSplitTopLevel(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "flat",
			text: "a, b, c",
			want: []string{"a", " b", " c"},
		},
		{
			name: "braces are opaque",
			text: "title = {a, b}, year = 2020",
			want: []string{"title = {a, b}", " year = 2020"},
		},
		{
			name: "nested braces",
			text: "x = {a {b, c} d}, y = 1",
			want: []string{"x = {a {b, c} d}", " y = 1"},
		},
		{
			name: "no separator",
			text: "just text",
			want: []string{"just text"},
		},
		{
			name: "unbalanced closing brace is tolerated",
			text: "a}, b",
			want: []string{"a}", " b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitTopLevel(tt.text, ',')
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitTopLevel(%q) = %#v, want %#v", tt.text, got, tt.want)
			}
		})
	}
}
