// Package docscan reads documents for citation scanning. Markdown and
// other text formats are read as-is; PDF documents (rendered schedules,
// handouts) are reduced to plain text first.
package docscan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ReadDocument returns the scannable text of a document. The format is
// chosen by file extension; anything that is not a PDF is treated as text.
func ReadDocument(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return extractPDFText(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// extractPDFText extracts plain text from every page of a PDF. Pages that
// fail to decode are skipped rather than failing the whole document.
func extractPDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}
