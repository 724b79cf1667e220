// Package prune filters a bibliography down to the entries a document set
// actually cites, plus their crossref parents.
package prune

import (
	"regexp"
	"sort"
	"strings"

	"github.com/schedkit/syllabib/internal/bib"
)

// crossrefRe matches a crossref field line inside a raw entry block.
var crossrefRe = regexp.MustCompile(`(?im)^\s*crossref\s*=\s*[{"]\s*([^}"]+)\s*[}"']\s*,?\s*$`)

// Stats summarizes one pruning run.
type Stats struct {
	Cited    int      // distinct keys found in the scanned documents
	Written  int      // entries written to the pruned bibliography
	Specials int      // special blocks carried over
	Missing  []string // cited keys with no matching entry, sorted
}

// Prune selects the cited entries (and their crossref closure) from raw
// bibliography text and serializes them as a new bibliography: special
// blocks first, deduplicated by exact text, then the selected entries in
// their original source order, blocks separated by blank lines.
//
// Unlike the build path, malformed records are preserved as specials here:
// pruning a human-curated database must not silently lose content.
func Prune(bibText string, cited map[string]bool) (string, Stats) {
	blocks := bib.ScanBlocks(bibText)

	raw := make(map[string]string)
	var order []string
	var specials []string
	for _, b := range blocks {
		if b.Special {
			specials = append(specials, b.Raw)
			continue
		}
		if _, dup := raw[b.Key]; !dup {
			order = append(order, b.Key)
		}
		raw[b.Key] = b.Raw
	}

	need := closure(cited, raw)

	var out strings.Builder
	seen := make(map[string]bool)
	specialCount := 0
	for _, s := range specials {
		trimmed := strings.TrimSpace(s)
		if seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		specialCount++
		out.WriteString(strings.TrimRight(s, " \t\r\n"))
		out.WriteString("\n\n")
	}

	written := 0
	for _, k := range order {
		if !need[k] {
			continue
		}
		written++
		out.WriteString(strings.TrimRight(raw[k], " \t\r\n"))
		out.WriteString("\n\n")
	}

	var missing []string
	for k := range need {
		if _, ok := raw[k]; !ok {
			missing = append(missing, k)
		}
	}
	sort.Strings(missing)

	return out.String(), Stats{
		Cited:    len(cited),
		Written:  written,
		Specials: specialCount,
		Missing:  missing,
	}
}

// closure expands a cited key set with crossref parents until no new
// parents appear. Only parents that exist in the bibliography are added;
// dangling crossrefs stay dangling.
func closure(cited map[string]bool, raw map[string]string) map[string]bool {
	need := make(map[string]bool, len(cited))
	for k := range cited {
		need[k] = true
	}

	for added := true; added; {
		added = false
		for k := range need {
			block, ok := raw[k]
			if !ok {
				continue
			}
			for _, m := range crossrefRe.FindAllStringSubmatch(block, -1) {
				parent := strings.TrimSpace(m[1])
				if parent != "" && !need[parent] {
					if _, exists := raw[parent]; exists {
						need[parent] = true
						added = true
					}
				}
			}
		}
	}
	return need
}
