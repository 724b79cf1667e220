// Package main provides the syllabib CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "syllabib",
	Short: "Course-schedule citation and bibliography tool",
	Long: `syllabib expands citation and date macros in schedule documents and
keeps their bibliographies tidy.

The build command replaces @key and \cite{...} macros with hoverable
APA-style popover references and advdate(wed, N) macros with week labels.
The prune command shrinks a large .bib down to the entries a document set
actually cites. All commands output JSON by default for easy scripting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
