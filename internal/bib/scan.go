package bib

import "strings"

// Block is one raw @-record scanned out of a bibliography file.
type Block struct {
	Type string // lowercased entry type
	Key  string // citation key; empty for special blocks
	Raw  string // the full "@type{...}" source text, braces included

	// Special marks blocks that are not citable entries: @string,
	// @preamble, @comment, and records whose key cannot be delimited.
	Special bool
}

// specialTypes are top-level records preserved verbatim, never parsed.
var specialTypes = map[string]bool{
	"string":   true,
	"preamble": true,
	"comment":  true,
}

// ScanBlocks splits raw bibliography text into records by brace matching.
// Starting at each '@' it reads the alphabetic entry type, skips to the
// first '{', and scans until brace depth returns to zero. Records with no
// opening brace are abandoned; records whose key cannot be extracted are
// returned with Special set so callers can decide whether to skip or keep
// them.
func ScanBlocks(text string) []Block {
	var blocks []Block
	i, n := 0, len(text)

	for i < n {
		at := strings.IndexByte(text[i:], '@')
		if at == -1 {
			break
		}
		at += i

		j := at + 1
		for j < n && isAlpha(text[j]) {
			j++
		}
		entryType := strings.ToLower(text[at+1 : j])

		for j < n && text[j] != '{' && isSpace(text[j]) {
			j++
		}
		if j >= n || text[j] != '{' {
			i = at + 1
			continue
		}

		depth := 0
		k := j
		for k < n {
			switch text[k] {
			case '{':
				depth++
			case '}':
				depth--
			}
			k++
			if depth == 0 {
				break
			}
		}
		raw := text[at:k]
		i = k

		if specialTypes[entryType] {
			blocks = append(blocks, Block{Type: entryType, Raw: raw, Special: true})
			continue
		}

		key, ok := extractKey(raw)
		if !ok {
			blocks = append(blocks, Block{Type: entryType, Raw: raw, Special: true})
			continue
		}
		blocks = append(blocks, Block{Type: entryType, Key: key, Raw: raw})
	}

	return blocks
}

// extractKey pulls the citation key from between the first '{' and the
// first comma after it.
func extractKey(raw string) (string, bool) {
	brace := strings.IndexByte(raw, '{')
	if brace == -1 {
		return "", false
	}
	comma := strings.IndexByte(raw[brace+1:], ',')
	if comma == -1 {
		return "", false
	}
	key := strings.TrimSpace(raw[brace+1 : brace+1+comma])
	if key == "" {
		return "", false
	}
	return key, true
}

// SplitTopLevel splits text at sep, treating brace pairs as opaque: a sep
// inside {...} does not split. Used for record fields, field values, and
// structured author attributes alike.
func SplitTopLevel(text string, sep byte) []string {
	var parts []string
	var buf strings.Builder
	depth := 0

	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch ch {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		}
		if ch == sep && depth == 0 {
			parts = append(parts, buf.String())
			buf.Reset()
			continue
		}
		buf.WriteByte(ch)
	}
	parts = append(parts, buf.String())
	return parts
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
