// Package bib parses BibTeX-style bibliography databases.
//
// The parser is deliberately not a full BibTeX grammar: it tracks brace
// depth to find record boundaries and top-level field separators, which is
// enough for real-world .bib files with nested braces in titles. @string
// concatenation and macro expansion are out of scope.
package bib

// Entry is one bibliographic record, keyed by its citation key.
// Entries are immutable after parsing.
type Entry struct {
	Key    string            // citation key, case-sensitive
	Type   string            // lowercased entry type, e.g. "article"
	Fields map[string]string // lowercased field name -> decoded value
}

// Field returns the named field, or "" if absent.
func (e Entry) Field(name string) string {
	return e.Fields[name]
}

// FirstField returns the first non-empty value among the named fields.
func (e Entry) FirstField(names ...string) string {
	for _, n := range names {
		if v := e.Fields[n]; v != "" {
			return v
		}
	}
	return ""
}
