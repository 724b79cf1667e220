package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/schedkit/syllabib/internal/bib"
	"github.com/schedkit/syllabib/internal/bibindex"
)

var (
	indexBib   string
	indexDB    string
	indexQuery string
	indexLimit int
)

func init() {
	indexCmd.Flags().StringVar(&indexBib, "bib", "", "Bibliography to index (required)")
	indexCmd.Flags().StringVar(&indexDB, "db", filepath.Join(".syllabib", "index.db"), "Index database path")
	indexCmd.Flags().StringVar(&indexQuery, "query", "", "Full-text query to run after rebuilding")
	indexCmd.Flags().IntVar(&indexLimit, "limit", 50, "Maximum query results")
	indexCmd.MarkFlagRequired("bib")
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the bibliography search index",
	Long: `Rebuild the ephemeral SQLite index from the bibliography. The .bib
file stays the source of truth; the index only serves fast lookups.

Examples:
  syllabib index --bib library.bib
  syllabib index --bib library.bib --query "van der Maas"`,
	RunE: runIndex,
}

// IndexResult is the response for the index command.
type IndexResult struct {
	Status  string         `json:"status"`
	DB      string         `json:"db"`
	Indexed int            `json:"indexed"`
	Results []bibindex.Row `json:"results,omitempty"`
}

func runIndex(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(indexBib); err != nil {
		exitWithError(ExitConfigError, "bibliography not found: %s", indexBib)
	}
	bibText, err := os.ReadFile(indexBib)
	if err != nil {
		exitWithError(ExitError, "reading %s: %v", indexBib, err)
	}
	entries := bib.Parse(string(bibText))

	if err := os.MkdirAll(filepath.Dir(indexDB), 0755); err != nil {
		exitWithError(ExitError, "creating %s: %v", filepath.Dir(indexDB), err)
	}
	db, err := bibindex.Open(indexDB)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer db.Close()

	indexed, err := db.Rebuild(entries)
	if err != nil {
		exitWithError(ExitDataError, "rebuilding index: %v", err)
	}

	result := IndexResult{Status: "ok", DB: indexDB, Indexed: indexed}
	if indexQuery != "" {
		rows, err := db.Search(indexQuery, indexLimit)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		result.Results = rows
	}

	if humanOutput {
		outputHuman("indexed %d entries into %s\n", result.Indexed, result.DB)
		for _, r := range result.Results {
			outputHuman("  %s: %s (%s) %s\n", r.Key, r.Title, r.Year, r.Authors)
		}
		return nil
	}
	return outputJSON(result)
}
