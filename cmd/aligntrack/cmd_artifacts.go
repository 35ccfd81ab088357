package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"aligntrack/internal/store"
)

var artifactKind string

var artifactsCmd = &cobra.Command{
	Use:   "artifacts",
	Short: "Show the artifacts generated by the last sync",
	Long: `Prints the generated artifacts from the latest stored version as JSON.
Use --kind to select one of: description, internal, external, improvements.`,
	RunE: runArtifacts,
}

func init() {
	artifactsCmd.Flags().StringVarP(&artifactKind, "kind", "k", "", "Artifact to show (description|internal|external|improvements)")
}

func runArtifacts(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.Store.DatabasePath)
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := st.LatestProject()
	if err != nil {
		return err
	}
	if rec == nil {
		fmt.Println("No versions yet. Run 'aligntrack sync' first.")
		return nil
	}

	var out any
	switch artifactKind {
	case "description":
		out = rec.Artifacts.Description
	case "internal":
		out = rec.Artifacts.Internal
	case "external":
		out = rec.Artifacts.External
	case "improvements":
		out = rec.Improvements
	case "":
		out = map[string]any{
			"description":        rec.Artifacts.Description,
			"internal_messaging": rec.Artifacts.Internal,
			"external_messaging": rec.Artifacts.External,
			"improvements":       rec.Improvements,
		}
	default:
		return fmt.Errorf("unknown artifact kind %q", artifactKind)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
