// Package cli provides output rendering for the Jiten CLI.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/jiten/internal/models"
)

// OutputFormat is the format for CLI output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteSearchResults writes search results to w in the given format.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	}

	fmt.Fprintf(w, "\nFound %d results in %dms\n\n", response.Total, response.QueryTime)
	for _, result := range response.Results {
		fmt.Fprintf(w, "%6.2f  %s (%s)\n", result.Score, result.Word, result.POS)
		if result.Preview != "" {
			fmt.Fprintf(w, "        %s\n", result.Preview)
		}
	}
	return nil
}

// WriteFullDefinition writes a complete dictionary entry to w in the
// given format.
func WriteFullDefinition(w io.Writer, def *models.FullDefinition, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(def)
	}

	fmt.Fprintf(w, "\n%s (%s, %s)\n", def.Word, def.POS, def.Language)
	for _, p := range def.Pronunciations {
		if p.IPA != "" {
			accent := ""
			if p.Accent != "" {
				accent = " [" + p.Accent + "]"
			}
			fmt.Fprintf(w, "  %s%s\n", p.IPA, accent)
		}
	}
	for i, d := range def.Definitions {
		fmt.Fprintf(w, "  %d. %s\n", i+1, d.Text)
		if len(d.Tags) > 0 {
			fmt.Fprintf(w, "     (%s)\n", strings.Join(d.Tags, ", "))
		}
		for _, ex := range d.Examples {
			fmt.Fprintf(w, "     “%s”\n", ex)
		}
	}
	if def.Etymology != "" {
		fmt.Fprintf(w, "  Etymology: %s\n", def.Etymology)
	}
	for _, tr := range def.Translations {
		fmt.Fprintf(w, "  %s: %s\n", tr.TargetLanguage, tr.Translation)
	}
	return nil
}
