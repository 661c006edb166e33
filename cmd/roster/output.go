package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/matsen/roster/internal/record"
)

// errorLabel styles the "Error:" prefix; lipgloss renders it plain when stdout is not a terminal.
var errorLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

// reportError writes a per-line session error.
func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %s\n", errorLabel.Render("Error:"), err)
}

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
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

// RecordResponse is the JSON form of a record.
type RecordResponse struct {
	ID      uint32 `json:"id"`
	Name    string `json:"name"`
	Date    string `json:"date"`
	Address string `json:"address"`
	Note    string `json:"note"`
}

// IndexResponse is the response for the index command.
type IndexResponse struct {
	Status  string `json:"status"`
	Path    string `json:"path"`
	Records int    `json:"records"`
	Bytes   int64  `json:"bytes"`
}

// toRecordResponses converts records for JSON output. Never returns nil so
// an empty result encodes as [].
func toRecordResponses(recs []record.Record) []RecordResponse {
	out := make([]RecordResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, RecordResponse{
			ID:      r.ID,
			Name:    r.Name,
			Date:    r.DateString(),
			Address: r.Address,
			Note:    r.Note,
		})
	}
	return out
}
