package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/schedkit/syllabib/internal/cite"
	"github.com/schedkit/syllabib/internal/docscan"
	"github.com/schedkit/syllabib/internal/prune"
)

var (
	pruneDoc  string
	pruneAlso []string
	pruneBib  string
	pruneOut  string
)

func init() {
	pruneCmd.Flags().StringVar(&pruneDoc, "doc", "", "Document to scan for citations (required)")
	pruneCmd.Flags().StringSliceVar(&pruneAlso, "also", nil, "Additional documents to scan")
	pruneCmd.Flags().StringVar(&pruneBib, "bib", "", "Source bibliography to prune (required)")
	pruneCmd.Flags().StringVar(&pruneOut, "out", "", "Path for the pruned bibliography (required)")
	pruneCmd.MarkFlagRequired("doc")
	pruneCmd.MarkFlagRequired("bib")
	pruneCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(pruneCmd)
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Prune a bibliography to the entries a document set cites",
	Long: `Scan documents for @key and \cite{...} citations and write a new .bib
containing only the cited entries, their crossref parents, and the
verbatim @string/@preamble/@comment blocks.

Documents may be Markdown/text or PDF. Additional documents given with
--also are scanned too; missing ones are skipped with a warning.

Examples:
  syllabib prune --doc schedule_bib.md --bib library.bib --out refs.bib
  syllabib prune --doc schedule_bib.md --also handout.pdf --bib library.bib --out refs.bib`,
	RunE: runPrune,
}

// PruneResult is the response for the prune command.
type PruneResult struct {
	Status         string   `json:"status"`
	Output         string   `json:"output"`
	Cited          int      `json:"cited"`
	Written        int      `json:"written"`
	Specials       int      `json:"specials"`
	Missing        int      `json:"missing"`
	MissingPreview []string `json:"missing_preview,omitempty"`
}

func runPrune(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(pruneDoc); err != nil {
		exitWithError(ExitConfigError, "document not found: %s", pruneDoc)
	}
	if _, err := os.Stat(pruneBib); err != nil {
		exitWithError(ExitConfigError, "bibliography not found: %s", pruneBib)
	}

	cited := make(map[string]bool)
	for _, path := range append([]string{pruneDoc}, pruneAlso...) {
		if _, err := os.Stat(path); err != nil {
			warn("missing file (skipped): %s", path)
			continue
		}
		text, err := docscan.ReadDocument(path)
		if err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
		for k := range cite.ExtractKeys(text) {
			cited[k] = true
		}
	}
	if len(cited) == 0 {
		warn("no citation keys detected; writing an empty pruned bib (specials preserved)")
	}

	bibText, err := os.ReadFile(pruneBib)
	if err != nil {
		exitWithError(ExitError, "reading %s: %v", pruneBib, err)
	}

	out, stats := prune.Prune(string(bibText), cited)

	if err := os.WriteFile(pruneOut, []byte(out), 0644); err != nil {
		exitWithError(ExitError, "writing %s: %v", pruneOut, err)
	}

	result := PruneResult{
		Status:         "ok",
		Output:         pruneOut,
		Cited:          stats.Cited,
		Written:        stats.Written,
		Specials:       stats.Specials,
		Missing:        len(stats.Missing),
		MissingPreview: capPreview(stats.Missing),
	}
	if humanOutput {
		outputHuman("cited keys: %d | written entries: %d | specials: %d\n",
			result.Cited, result.Written, result.Specials)
		if result.Missing > 0 {
			warn("%d keys not found in %s (first %d): %v",
				result.Missing, pruneBib, len(result.MissingPreview), result.MissingPreview)
		}
		return nil
	}
	return outputJSON(result)
}
