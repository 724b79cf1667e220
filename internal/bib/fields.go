package bib

import "strings"

// DecodeFields parses a record body (the text after the key's trailing
// comma, final closing brace stripped) into a field map. Splitting happens
// at top-level commas only; pairs without '=' are dropped. One wrapping
// layer of {...} or "..." is stripped from each value, never recursively.
func DecodeFields(body string) map[string]string {
	fields := make(map[string]string)
	for _, pair := range SplitTopLevel(body, ',') {
		eq := strings.IndexByte(pair, '=')
		if eq == -1 {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(pair[:eq]))
		if name == "" {
			continue
		}
		fields[name] = decodeValue(pair[eq+1:])
	}
	return fields
}

// decodeValue trims a raw field value and strips exactly one wrapping
// layer of braces or double quotes.
func decodeValue(val string) string {
	val = strings.TrimSpace(val)
	val = strings.TrimSuffix(val, ",")
	val = strings.TrimSpace(val)
	if len(val) >= 2 {
		if (val[0] == '{' && val[len(val)-1] == '}') ||
			(val[0] == '"' && val[len(val)-1] == '"') {
			val = strings.TrimSpace(val[1 : len(val)-1])
		}
	}
	return val
}

// Parse decodes bibliography text into citable entries keyed by citation
// key. Special blocks and records without a delimitable key are skipped:
// one bad record must not take down a build. Callers that cannot afford to
// drop content (the pruner) work from ScanBlocks directly.
func Parse(text string) map[string]Entry {
	entries := make(map[string]Entry)
	for _, b := range ScanBlocks(text) {
		if b.Special {
			continue
		}
		entries[b.Key] = decodeBlock(b)
	}
	return entries
}

// decodeBlock turns a scanned block into an Entry.
func decodeBlock(b Block) Entry {
	brace := strings.IndexByte(b.Raw, '{')
	comma := strings.IndexByte(b.Raw[brace+1:], ',') + brace + 1
	body := strings.TrimSpace(b.Raw[comma+1:])
	body = strings.TrimSuffix(body, "}")
	return Entry{
		Key:    b.Key,
		Type:   b.Type,
		Fields: DecodeFields(body),
	}
}
