package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"aligntrack/internal/config"
	"aligntrack/internal/sources"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize an aligntrack workspace",
	Long: `Creates .aligntrack/config.yaml with default settings and a docs/
directory with starter files for the local source (prd.md, prfaq.md,
strategy.md, tickets.json). Existing files are left untouched.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultPath(workspace)
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config already exists: %s\n", path)
	} else {
		cfg := config.DefaultConfig()
		cfg.Sources.DocsDir = filepath.Join(workspace, "docs")
		cfg.Store.DatabasePath = filepath.Join(workspace, ".aligntrack", "aligntrack.db")
		if err := cfg.Save(path); err != nil {
			return err
		}
		fmt.Printf("Created %s\n", path)
	}

	docsDir := filepath.Join(workspace, "docs")
	if err := os.MkdirAll(docsDir, 0755); err != nil {
		return fmt.Errorf("failed to create docs directory: %w", err)
	}

	starters := map[string]string{
		sources.LocalPRDFile:      "# Project Name\n\n## Overview\nWhat this project is.\n\n## Problem Statement\nWhat problem it solves.\n\n## Solution\nHow it solves it.\n",
		sources.LocalPRFAQFile:    "# Project Name - Press Release\n\n## Frequently Asked Questions\n\nQ: What problem does this solve?\nA: Describe the problem.\n",
		sources.LocalStrategyFile: "# Project Strategy\n\n## Vision\nWhere this is going.\n\n## Approach\nHow to get there.\n\n## Business Value\nWhy it matters.\n",
		sources.LocalTicketsFile:  "[]\n",
	}
	for name, content := range starters {
		target := filepath.Join(docsDir, name)
		if _, err := os.Stat(target); err == nil {
			continue
		}
		if err := os.WriteFile(target, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		fmt.Printf("Created %s\n", target)
	}

	fmt.Println("\nWorkspace ready. Edit the files in docs/ and run 'aligntrack sync'.")
	return nil
}
