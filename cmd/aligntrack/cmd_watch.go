package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"aligntrack/internal/sources"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the local docs directory and sync on change",
	Long: `Watches the configured docs directory (prd.md, prfaq.md, strategy.md,
tickets.json) and runs the sync pipeline whenever a file change settles.
Runs until interrupted.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Sources.DocsDir == "" {
		return fmt.Errorf("no docs_dir configured; run 'aligntrack init' first")
	}

	s, cleanup, err := buildSyncer(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher, err := sources.NewWatcher(cfg.Sources.DocsDir, func(ctx context.Context, changed []string) {
		logger.Info("change detected", zap.Strings("files", changed))
		res, err := s.Update(ctx)
		if err != nil {
			logger.Error("sync failed", zap.Error(err))
			return
		}
		fmt.Printf("\n--- sync at version %d ---\n", res.VersionID)
		printUpdate(res)
	})
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer watcher.Stop()

	// Initial sync so the watcher diffs against fresh history.
	if res, err := s.Update(ctx); err != nil {
		logger.Warn("initial sync failed", zap.Error(err))
	} else {
		printUpdate(res)
	}

	fmt.Printf("\nWatching %s (ctrl-c to stop)\n", cfg.Sources.DocsDir)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	fmt.Println("\nStopping.")
	return nil
}
