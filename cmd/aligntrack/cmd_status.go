package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aligntrack/internal/snapshot"
	"aligntrack/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show version history and the latest sync result",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.Store.DatabasePath)
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := st.Stats()
	if err != nil {
		return err
	}
	fmt.Printf("Versions stored: %d\n", stats["versions"])

	snap, err := st.LatestSnapshot()
	if err != nil {
		return err
	}
	if snap == nil {
		fmt.Println("No versions yet. Run 'aligntrack sync' first.")
		return nil
	}

	fmt.Printf("\nLatest snapshot:\n")
	for _, kind := range snapshot.DocKinds {
		doc := snap.Doc(kind)
		fmt.Printf("  %-8s %d sections", kind, doc.Len())
		if name := doc.Text(snapshot.KeyName); name != "" {
			fmt.Printf("  (%s)", name)
		}
		fmt.Println()
	}
	fmt.Printf("  %-8s %d items\n", "tickets", len(snap.Tickets))

	report, err := st.LatestImpact()
	if err != nil {
		return err
	}
	if report != nil {
		fmt.Printf("\nLast sync impact: %s (focus maintained: %v)\n", report.ImpactLevel, report.FocusMaintained)
		fmt.Printf("  %s\n", report.Analysis)
	}

	suggestions, err := st.LatestSuggestions()
	if err != nil {
		return err
	}
	if len(suggestions) > 0 {
		fmt.Println("\nOpen suggestions:")
		for _, sug := range suggestions {
			fmt.Printf("  [%s] %s\n", sug.Action, sug.Description)
		}
	}

	versions, err := st.Versions(5)
	if err != nil {
		return err
	}
	if len(versions) > 0 {
		fmt.Println("\nRecent versions:")
		for _, v := range versions {
			fmt.Printf("  #%d  %s\n", v.ID, v.CreatedAt.Format("2006-01-02 15:04:05"))
		}
	}
	return nil
}
