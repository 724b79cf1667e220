package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// MissingPreviewMax bounds how many unresolved keys a report lists.
const MissingPreviewMax = 20

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// warn writes a warning to stderr; warnings never affect the exit code.
func warn(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// capPreview truncates a key list for display, keeping reports bounded no
// matter how mangled the bibliography is.
func capPreview(keys []string) []string {
	if len(keys) <= MissingPreviewMax {
		return keys
	}
	return keys[:MissingPreviewMax]
}
