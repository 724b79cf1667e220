package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/schedkit/syllabib/internal/apa"
	"github.com/schedkit/syllabib/internal/bib"
	"github.com/schedkit/syllabib/internal/cite"
	"github.com/schedkit/syllabib/internal/config"
	"github.com/schedkit/syllabib/internal/dates"
)

var (
	buildIn    string
	buildOut   string
	buildBib   string
	buildTZ    string
	buildStart string
)

func init() {
	buildCmd.Flags().StringVar(&buildIn, "in", "", "Input document path")
	buildCmd.Flags().StringVar(&buildOut, "out", "", "Output document path")
	buildCmd.Flags().StringVar(&buildBib, "bib", "", "Bibliography (.bib) path")
	buildCmd.Flags().StringVar(&buildTZ, "tz", "", "IANA timezone for the start date")
	buildCmd.Flags().StringVar(&buildStart, "start", "", "Week 1 anchor date (YYYY-MM-DD)")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Expand date and citation macros into a rendered document",
	Long: `Expand advdate(wed, N) date macros and @key / \cite{...} citation
macros in a schedule document, writing the result to a new file.

Defaults for every flag may come from syllabib.yml or SYLLABIB_* variables
(a .env file is loaded if present). Flags override both.

Examples:
  syllabib build --in schedule_bib.md --out schedule.md --bib refs.bib --start 2025-09-03
  syllabib build --in schedule_bib.md --out schedule.md`,
	RunE: runBuild,
}

// BuildResult is the response for the build command.
type BuildResult struct {
	Status     string `json:"status"`
	Output     string `json:"output"`
	References int    `json:"references"`
}

func runBuild(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load(config.ConfigFile)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	cfg.ApplyEnv()

	if buildBib == "" {
		buildBib = cfg.Bib
	}
	if buildOut == "" {
		buildOut = cfg.Out
	}
	if buildTZ == "" {
		buildTZ = cfg.TimezoneOrDefault()
	}
	if buildStart == "" {
		buildStart = cfg.Start
	}

	if buildIn == "" || buildOut == "" || buildBib == "" || buildStart == "" {
		exitWithError(ExitError, "build requires --in, --out, --bib, and --start (or syllabib.yml defaults)")
	}

	// Required inputs are checked before anything is written.
	if _, err := os.Stat(buildIn); err != nil {
		exitWithError(ExitConfigError, "input not found: %s", buildIn)
	}
	if _, err := os.Stat(buildBib); err != nil {
		exitWithError(ExitConfigError, "bibliography not found: %s", buildBib)
	}

	doc, err := os.ReadFile(buildIn)
	if err != nil {
		exitWithError(ExitError, "reading %s: %v", buildIn, err)
	}
	bibText, err := os.ReadFile(buildBib)
	if err != nil {
		exitWithError(ExitError, "reading %s: %v", buildBib, err)
	}

	start, err := dates.ParseStart(buildStart, buildTZ)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	// Dates expand first: expansion can change which spans are scanned
	// for citation keys, and the order keeps runs deterministic.
	text := dates.Expand(string(doc), start)

	entries := bib.Parse(string(bibText))
	citations := make(map[string]apa.Citation)
	for key := range cite.CollectKeys(text) {
		entry, ok := entries[key]
		if !ok {
			continue
		}
		citations[key] = apa.Format(entry)
	}

	text = cite.Inject(text, citations)

	if err := os.WriteFile(buildOut, []byte(text), 0644); err != nil {
		exitWithError(ExitError, "writing %s: %v", buildOut, err)
	}

	result := BuildResult{Status: "ok", Output: buildOut, References: len(citations)}
	if humanOutput {
		outputHuman("wrote %s with %d popover references\n", result.Output, result.References)
		return nil
	}
	return outputJSON(result)
}
