package cite

import (
	"fmt"
	"html"
	"strings"

	"github.com/schedkit/syllabib/internal/apa"
)

// Inject replaces citation macros in a document with popover reference
// markup. Both substitutions are single-pass: the engine never re-scans
// its own output, so already-injected markup is left alone within a run.
// Keys absent from citations pass through unchanged (bare form) or render
// as plain key text (macro form).
func Inject(text string, citations map[string]apa.Citation) string {
	text = bareKeyRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := bareKeyRe.FindStringSubmatch(m)
		prefix, key := sub[1], sub[2]
		c, ok := citations[key]
		if !ok {
			return m
		}
		return prefix + popover(c)
	})

	text = citeMacroRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := citeMacroRe.FindStringSubmatch(m)
		var pieces []string
		for _, k := range strings.Split(sub[1], ",") {
			k = strings.TrimSpace(k)
			if c, ok := citations[k]; ok {
				pieces = append(pieces, popover(c))
			} else {
				pieces = append(pieces, k)
			}
		}
		return "(" + strings.Join(pieces, "; ") + ")"
	})

	return text
}

// popover renders one citation as an anchor carrying the full references
// in attribute-escaped data attributes for hover/copy use.
func popover(c apa.Citation) string {
	return fmt.Sprintf(
		`<a href="javascript:void(0)" class="cite-pop" role="button" tabindex="0" data-ref="%s" data-plain="%s">%s</a>`,
		html.EscapeString(c.HTML), html.EscapeString(c.Plain), html.EscapeString(c.InText))
}
