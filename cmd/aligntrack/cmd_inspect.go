package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"aligntrack/internal/extraction"
	"aligntrack/internal/snapshot"
	"aligntrack/internal/validation"
)

var inspectType string

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Extract and validate a document without syncing",
	Long: `Runs structure extraction on a markdown file and validates the result
against the template for its document type. The type is inferred from the
file name (prd/prfaq/strategy) unless --type is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectType, "type", "t", "", "Document type (prd|prfaq|strategy)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	kind := snapshot.DocKind(inspectType)
	if kind == "" {
		lower := strings.ToLower(path)
		switch {
		case strings.Contains(lower, "prfaq"):
			kind = snapshot.KindPRFAQ
		case strings.Contains(lower, "strategy"):
			kind = snapshot.KindStrategy
		default:
			kind = snapshot.KindPRD
		}
	}

	doc := extraction.Extract(string(data), kind)
	result := validation.Validate(&doc, kind)
	improvements := validation.SuggestImprovements(result, &doc, kind)

	fmt.Printf("Extracted %d sections as %s:\n", doc.Len(), kind)
	for _, key := range doc.Keys() {
		fmt.Printf("  %s\n", key)
	}

	fmt.Printf("\n%s\n", result.OverallSuggestion)
	if len(improvements) > 0 {
		out, err := json.MarshalIndent(improvements, "", "  ")
		if err != nil {
			return err
		}
		fmt.Printf("\nSuggestions:\n%s\n", out)
	}
	return nil
}
