// Package cite finds citation macros in document text and rewrites them
// into interactive reference markup.
//
// Two syntaxes are recognized: bare @key references and \cite{...}-family
// macros with comma-separated keys. Key characters are permissive
// (letters, digits, _:+./-), so the bare form is guarded against matching
// inside emails and @@handles.
package cite

import (
	"regexp"
	"strings"
)

// bareKeyRe matches @key when not preceded by a key character or another
// '@'. Go's regexp has no lookbehind, so the preceding character (or start
// of text) is captured and re-emitted on replacement.
var bareKeyRe = regexp.MustCompile(`(^|[^A-Za-z0-9_@])@([A-Za-z0-9_:+./-]+)`)

// citeMacroRe matches \cite, \citet, \citep, \citeauthor, \citeyear and
// the like, with comma-separated keys inside the braces.
var citeMacroRe = regexp.MustCompile(`\\cite[a-z]*\s*\{([^}]+)\}`)

// CollectKeys returns the set of distinct citation keys referenced in a
// document, from both the bare and the macro syntax. Keys are reported as
// written; resolution against the bibliography happens later.
func CollectKeys(text string) map[string]bool {
	keys := make(map[string]bool)
	for _, m := range bareKeyRe.FindAllStringSubmatch(text, -1) {
		keys[m[2]] = true
	}
	for _, m := range citeMacroRe.FindAllStringSubmatch(text, -1) {
		for _, k := range strings.Split(m[1], ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys[k] = true
			}
		}
	}
	return keys
}

// ExtractKeys is the pruning-path variant of CollectKeys: trailing
// sentence punctuation is stripped from each key so that "@doe2020." in
// running text still selects doe2020.
func ExtractKeys(text string) map[string]bool {
	keys := make(map[string]bool)
	for k := range CollectKeys(text) {
		k = strings.TrimRight(k, ".,;:)]}")
		if k != "" {
			keys[k] = true
		}
	}
	return keys
}
