package main

import (
	"context"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/schedkit/syllabib/internal/bib"
	"github.com/schedkit/syllabib/internal/cite"
	"github.com/schedkit/syllabib/internal/docscan"
	"github.com/schedkit/syllabib/internal/linkcheck"
)

var (
	checkBib   string
	checkDocs  []string
	checkLinks bool
	checkRate  float64
)

func init() {
	checkCmd.Flags().StringVar(&checkBib, "bib", "", "Bibliography to check (required)")
	checkCmd.Flags().StringSliceVar(&checkDocs, "doc", nil, "Documents whose citations should resolve")
	checkCmd.Flags().BoolVar(&checkLinks, "links", false, "Verify that DOI/URL links resolve")
	checkCmd.Flags().Float64Var(&checkRate, "rate", linkcheck.DefaultRateLimit, "Link requests per second")
	checkCmd.MarkFlagRequired("bib")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify bibliography integrity",
	Long: `Verify bibliography integrity: duplicate citation keys, crossref
fields naming entries that don't exist, and (with --doc) citation keys
used in documents but missing from the bibliography. With --links, DOI
and URL links are checked for liveness, rate-limited.`,
	RunE: runCheck,
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Status   string             `json:"status"`
	Entries  int                `json:"entries"`
	Specials int                `json:"specials"`
	Issues   []CheckIssue       `json:"issues"`
	Links    []linkcheck.Result `json:"links,omitempty"`
}

// CheckIssue represents a single issue found during check.
type CheckIssue struct {
	Type   string `json:"type"`
	Key    string `json:"key,omitempty"`
	Target string `json:"target,omitempty"`
	Doc    string `json:"doc,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(checkBib); err != nil {
		exitWithError(ExitConfigError, "bibliography not found: %s", checkBib)
	}
	bibText, err := os.ReadFile(checkBib)
	if err != nil {
		exitWithError(ExitError, "reading %s: %v", checkBib, err)
	}

	blocks := bib.ScanBlocks(string(bibText))
	entries := bib.Parse(string(bibText))

	var issues []CheckIssue

	// Duplicate keys: later records silently shadow earlier ones in the
	// build path, which is worth surfacing.
	seen := make(map[string]int)
	specials := 0
	for _, b := range blocks {
		if b.Special {
			specials++
			continue
		}
		seen[b.Key]++
	}
	dupKeys := make([]string, 0)
	for k, n := range seen {
		if n > 1 {
			dupKeys = append(dupKeys, k)
		}
	}
	sort.Strings(dupKeys)
	for _, k := range dupKeys {
		issues = append(issues, CheckIssue{Type: "duplicate_key", Key: k})
	}

	// Dangling crossrefs break the pruning closure.
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parent := entries[k].Field("crossref")
		if parent == "" {
			continue
		}
		if _, ok := entries[parent]; !ok {
			issues = append(issues, CheckIssue{Type: "dangling_crossref", Key: k, Target: parent})
		}
	}

	// Citations in the given documents must resolve.
	for _, doc := range checkDocs {
		if _, err := os.Stat(doc); err != nil {
			warn("missing file (skipped): %s", doc)
			continue
		}
		text, err := docscan.ReadDocument(doc)
		if err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
		var unresolved []string
		for k := range cite.ExtractKeys(text) {
			if _, ok := entries[k]; !ok {
				unresolved = append(unresolved, k)
			}
		}
		sort.Strings(unresolved)
		for _, k := range capPreview(unresolved) {
			issues = append(issues, CheckIssue{Type: "unresolved_citation", Key: k, Doc: doc})
		}
	}

	result := CheckResult{
		Status:   "ok",
		Entries:  len(entries),
		Specials: specials,
		Issues:   issues,
	}
	if len(issues) > 0 {
		result.Status = "issues"
	}

	if checkLinks {
		checker := linkcheck.New(linkcheck.WithRateLimit(checkRate))
		result.Links = checker.Check(context.Background(), linkcheck.EntryLinks(entries))
		for _, l := range result.Links {
			if !l.OK {
				result.Status = "issues"
			}
		}
	}

	if humanOutput {
		outputHuman("entries: %d | specials: %d | issues: %d\n", result.Entries, result.Specials, len(result.Issues))
		for _, issue := range result.Issues {
			outputHuman("  %s: %s %s %s\n", issue.Type, issue.Key, issue.Target, issue.Doc)
		}
		for _, l := range result.Links {
			if !l.OK {
				outputHuman("  dead link: %s %s (%d %s)\n", l.Key, l.URL, l.Status, l.Error)
			}
		}
		return nil
	}
	return outputJSON(result)
}
