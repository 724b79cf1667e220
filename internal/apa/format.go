package apa

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/schedkit/syllabib/internal/bib"
)

// Citation is the formatted reference triple for one cited entry, built
// once per run and reused for every occurrence of the key.
type Citation struct {
	InText string // "Doe (2020)"
	HTML   string // full APA reference with <em> and anchor markup
	Plain  string // full APA reference with all markup stripped
}

// articleTypes get the journal/volume/pages container treatment.
var articleTypes = map[string]bool{
	"article":        true,
	"articleinpress": true,
	"incollection":   true,
	"inproceedings":  true,
	"conference":     true,
}

var tagRe = regexp.MustCompile(`<[^>]+>`)

// Format renders one entry as an APA-style citation. All user-supplied
// text is HTML-escaped; the <em> wrapping and anchor markup are the only
// structural tags in the output.
func Format(e bib.Entry) Citation {
	var authors Authors
	if a := e.Field("author"); a != "" {
		authors = FormatAuthors(a)
	}
	year := FormatYear(e)
	title := stripBraces(strings.TrimSuffix(e.Field("title"), "."))

	var htmlParts, plainParts []string
	if authors.Full != "" {
		htmlParts = append(htmlParts, fmt.Sprintf("%s (%s).", html.EscapeString(authors.Full), html.EscapeString(year)))
		plainParts = append(plainParts, fmt.Sprintf("%s (%s).", authors.Full, year))
	} else {
		htmlParts = append(htmlParts, fmt.Sprintf("(%s).", html.EscapeString(year)))
		plainParts = append(plainParts, fmt.Sprintf("(%s).", year))
	}
	if title != "" {
		htmlParts = append(htmlParts, html.EscapeString(title)+".")
		plainParts = append(plainParts, title+".")
	}
	if container := formatContainer(e, html.EscapeString); container != "" {
		plain := formatContainer(e, func(s string) string { return s })
		htmlParts = append(htmlParts, container)
		plainParts = append(plainParts, tagRe.ReplaceAllString(plain, ""))
	}

	doi := strings.TrimSpace(e.Field("doi"))
	rawURL := strings.TrimSpace(e.Field("url"))
	if doi != "" {
		doiURL := DOIURL(doi)
		htmlParts = append(htmlParts, anchor(doiURL, doiURL))
		plainParts = append(plainParts, doiURL)
	} else if rawURL != "" {
		htmlParts = append(htmlParts, anchor(rawURL, rawURL))
		plainParts = append(plainParts, rawURL)
	}

	inText := fmt.Sprintf("(%s)", year)
	if authors.InText != "" {
		inText = fmt.Sprintf("%s (%s)", authors.InText, year)
	}

	return Citation{
		InText: inText,
		HTML:   joinNonEmpty(htmlParts),
		Plain:  joinNonEmpty(plainParts),
	}
}

// formatContainer renders the publication venue for an entry, passing all
// user-supplied text through esc. The HTML rendering escapes; the plain
// rendering uses the identity and strips the structural tags afterwards.
// Returns "" when the entry has no usable venue data.
func formatContainer(e bib.Entry, esc func(string) string) string {
	journal := e.FirstField("journal", "journaltitle", "shortjournal", "booktitle")
	pages := strings.ReplaceAll(e.Field("pages"), "--", "–")
	volume := e.Field("volume")
	number := e.FirstField("number", "issue")

	switch {
	case articleTypes[e.Type]:
		switch {
		case journal != "" && volume != "" && number != "" && pages != "":
			return fmt.Sprintf("<em>%s</em>, <em>%s</em>(%s), %s.",
				esc(journal), esc(volume),
				esc(number), esc(pages))
		case journal != "" && volume != "" && pages != "":
			return fmt.Sprintf("<em>%s</em>, <em>%s</em>, %s.",
				esc(journal), esc(volume), esc(pages))
		case journal != "" && pages != "":
			return fmt.Sprintf("<em>%s</em>, %s.", esc(journal), esc(pages))
		case journal != "":
			return fmt.Sprintf("<em>%s</em>.", esc(journal))
		}
		return ""

	case e.Type == "book" || e.Type == "inbook":
		if pub := e.Field("publisher"); pub != "" {
			return esc(pub) + "."
		}
		return ""
	}

	if v := e.FirstField("journal", "journaltitle", "shortjournal", "booktitle",
		"howpublished", "institution", "organization", "school", "series"); v != "" {
		return fmt.Sprintf("<em>%s</em>.", esc(v))
	}

	if eprintType := strings.TrimSpace(e.FirstField("eprinttype", "archiveprefix")); eprintType != "" {
		eprint := strings.TrimSpace(e.Field("eprint"))
		if strings.EqualFold(eprintType, "arxiv") && eprint != "" {
			return fmt.Sprintf("<em>arXiv</em> %s.", esc(eprint))
		}
		return fmt.Sprintf("<em>%s</em>.", esc(titleCase(eprintType)))
	}

	if host := urlHost(e.Field("url")); host != "" {
		return fmt.Sprintf("<em>%s</em>.", esc(titleCase(host)))
	}
	return ""
}

// urlHost extracts the first DNS label of a URL's host, port and "www."
// prefix stripped.
func urlHost(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Host)
	if i := strings.IndexByte(host, ':'); i != -1 {
		host = host[:i]
	}
	host = strings.TrimPrefix(host, "www.")
	if i := strings.IndexByte(host, '.'); i != -1 {
		host = host[:i]
	}
	return host
}

// DOIURL builds the canonical resolver link for a raw DOI value. Any
// pre-existing resolver prefix is stripped once so the emitted link
// carries it exactly once.
func DOIURL(doi string) string {
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	return "https://doi.org/" + doi
}

func anchor(href, text string) string {
	return fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener">%s</a>`,
		html.EscapeString(href), html.EscapeString(text))
}

// joinNonEmpty joins parts with single spaces, dropping empties so the
// assembled reference never carries double spaces.
func joinNonEmpty(parts []string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func stripBraces(s string) string {
	return strings.NewReplacer("{", "", "}", "").Replace(s)
}

// titleCase uppercases the first letter and lowercases the rest, matching
// how venue labels like "ARXIV" or a bare host name are displayed.
func titleCase(s string) string {
	if s == "" {
		return ""
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
