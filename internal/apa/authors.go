// Package apa renders bibliography entries as APA-style references: an
// in-text author-year label, an HTML reference with clickable links, and a
// plain-text equivalent suitable for copying.
package apa

import (
	"strings"

	"github.com/schedkit/syllabib/internal/bib"
)

// Authors holds the two renderings of an author list.
type Authors struct {
	InText string // short form: "Doe", "Doe & Smith", "Doe et al."
	Full   string // APA list: "Doe, J., Smith, A., & Jones, B."
}

// FormatAuthors converts a raw BibTeX author field into its in-text and
// full APA forms. Authors are separated by the literal " and "; each token
// is either a plain "Last, First" name or a structured
// "family=..., given=..." descriptor.
func FormatAuthors(field string) Authors {
	var lastNames, fullList []string
	for _, tok := range strings.Split(field, " and ") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		last, full := parsePerson(tok)
		lastNames = append(lastNames, last)
		fullList = append(fullList, full)
	}

	var inText string
	switch len(lastNames) {
	case 0:
	case 1:
		inText = lastNames[0]
	case 2:
		inText = lastNames[0] + " & " + lastNames[1]
	default:
		inText = lastNames[0] + " et al."
	}

	var full string
	switch len(fullList) {
	case 0:
	case 1:
		full = fullList[0]
	case 2:
		full = fullList[0] + " & " + fullList[1]
	default:
		full = strings.Join(fullList[:len(fullList)-1], ", ") + ", & " + fullList[len(fullList)-1]
	}

	return Authors{InText: inText, Full: full}
}

// parsePerson returns (inTextLastName, fullAPAForm) for one author token.
func parsePerson(tok string) (string, string) {
	if strings.Contains(tok, "family=") && strings.Contains(tok, "given=") {
		return parseStructured(tok)
	}

	var last, firsts string
	if i := strings.IndexByte(tok, ','); i != -1 {
		last = strings.TrimSpace(tok[:i])
		firsts = strings.TrimSpace(tok[i+1:])
	} else {
		parts := strings.Fields(tok)
		last = parts[len(parts)-1]
		firsts = strings.Join(parts[:len(parts)-1], " ")
	}

	full := last
	if ini := initials(firsts); ini != "" {
		full = last + ", " + ini
	}
	return last, full
}

// parseStructured handles BibLaTeX extended name format, e.g.
// "family=Maas, given=Han L. J., prefix=van der, useprefix=true".
// The prefix joins the in-text last name only when useprefix is set, but
// always appears in the full APA form.
func parseStructured(tok string) (string, string) {
	attrs := make(map[string]string)
	for _, piece := range bib.SplitTopLevel(tok, ',') {
		eq := strings.IndexByte(piece, '=')
		if eq == -1 {
			continue
		}
		attrs[strings.ToLower(strings.TrimSpace(piece[:eq]))] = strings.TrimSpace(piece[eq+1:])
	}

	family := attrs["family"]
	given := attrs["given"]
	prefix := attrs["prefix"]
	usePrefix := isTruthy(attrs["useprefix"])

	last := family
	if last == "" {
		last = prefix
	} else if usePrefix && prefix != "" {
		last = prefix + " " + family
	}

	full := family
	if ini := initials(given); ini != "" {
		full = family + ", " + ini
	}
	if prefix != "" {
		full = prefix + " " + full
	}
	return strings.TrimSpace(last), strings.TrimSpace(full)
}

// initials abbreviates given names: "Han L. J." -> "H. L. J."
func initials(given string) string {
	var parts []string
	for _, p := range strings.Fields(given) {
		parts = append(parts, string([]rune(p)[0])+".")
	}
	return strings.Join(parts, " ")
}

func isTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		return true
	}
	return false
}
