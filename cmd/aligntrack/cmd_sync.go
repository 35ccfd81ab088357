package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"aligntrack/internal/diff"
	"aligntrack/internal/snapshot"
	"aligntrack/internal/syncer"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Collect all sources, detect changes, and store a new version",
	Long: `Runs the full pipeline once: collects content from every configured
source, extracts document structure, diffs against the last stored version,
classifies the impact, generates artifacts and alignment suggestions, and
appends the result to version history.`,
	RunE: runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, cleanup, err := buildSyncer(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := commandContext()
	defer cancel()

	res, err := s.Update(ctx)
	if err != nil {
		return err
	}
	printUpdate(res)
	return nil
}

func printUpdate(res *syncer.UpdateResult) {
	fmt.Printf("Stored version %d\n\n", res.VersionID)

	fmt.Printf("Impact: %s\n", res.Impact.ImpactLevel)
	fmt.Printf("Focus maintained: %v\n", res.Impact.FocusMaintained)
	fmt.Printf("Analysis: %s\n\n", res.Impact.Analysis)

	fmt.Println("Changes:")
	for _, kind := range snapshot.DocKinds {
		printChange(string(kind), res.Changes.Doc(kind))
	}
	printChange("tickets", res.Changes.Tickets)

	if len(res.Suggestions) > 0 {
		fmt.Println("\nSuggestions:")
		for _, sug := range res.Suggestions {
			fmt.Printf("  [%s] %s\n", sug.Action, sug.Description)
		}
	}

	fmt.Printf("\nArtifacts generated: description, internal messaging, external messaging (%d improvements)\n",
		len(res.Improvements))
	fmt.Println("Run 'aligntrack artifacts' to view them.")
}

func printChange(name string, ch diff.Change) {
	if ch.Empty() {
		return
	}
	var parts []string
	if len(ch.Added) > 0 {
		parts = append(parts, fmt.Sprintf("added %s", strings.Join(ch.Added, ", ")))
	}
	if len(ch.Modified) > 0 {
		parts = append(parts, fmt.Sprintf("modified %s", strings.Join(ch.Modified, ", ")))
	}
	if len(ch.Removed) > 0 {
		parts = append(parts, fmt.Sprintf("removed %s", strings.Join(ch.Removed, ", ")))
	}
	fmt.Printf("  %s: %s\n", name, strings.Join(parts, "; "))
}
