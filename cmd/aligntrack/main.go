package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"aligntrack/internal/alignment"
	"aligntrack/internal/artifacts"
	"aligntrack/internal/config"
	"aligntrack/internal/impact"
	"aligntrack/internal/llm"
	"aligntrack/internal/logging"
	"aligntrack/internal/sources"
	"aligntrack/internal/store"
	"aligntrack/internal/syncer"
)

var (
	// Global flags
	verbose   bool
	workspace string
	timeout   time.Duration

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "aligntrack",
	Short: "aligntrack - keep project documents aligned",
	Long: `aligntrack tracks a project's PRD, PRFAQ, strategy document, and tickets
across their sources, detects when they drift apart, and generates the
artifacts that keep everyone telling the same story: descriptions, internal
briefs, external messaging, and concrete alignment suggestions.

Changes are classified by impact (none/minor/moderate/major) and every sync
appends an immutable version to the local history.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if verbose {
			os.Setenv("ALIGNTRACK_DEBUG", "1")
		}
		if err := logging.Initialize(workspace); err != nil {
			logger.Warn("file logging unavailable", zap.Error(err))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", ".", "Workspace directory")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Operation timeout")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(artifactsCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(watchCmd)
}

// loadConfig reads the workspace config.
func loadConfig() (*config.Config, error) {
	return config.Load(config.DefaultPath(workspace))
}

// buildSyncer wires the full pipeline from config. The returned cleanup
// closes the store.
func buildSyncer(cfg *config.Config) (*syncer.Syncer, func(), error) {
	client, err := llm.New(cfg.LLM)
	if errors.Is(err, llm.ErrNotConfigured) {
		logger.Info("no model configured, using rule-based generation only")
		client = nil
	} else if err != nil {
		return nil, nil, err
	}

	st, err := store.Open(cfg.Store.DatabasePath)
	if err != nil {
		return nil, nil, err
	}

	s := syncer.New(st,
		impact.NewClassifier(client),
		alignment.NewAdvisor(client),
		artifacts.NewGenerator(client),
	)

	if cfg.Sources.DocsDir != "" {
		if _, statErr := os.Stat(cfg.Sources.DocsDir); statErr == nil {
			s.Register(sources.NewLocalDir(cfg.Sources.DocsDir))
		}
	}
	if cfg.Sources.UseDemoFixtures {
		docs := sources.NewGoogleDocs()
		docs.Connect("doc-prd")
		docs.Connect("doc-prfaq")
		docs.Connect("doc-strategy")
		s.Register(docs)
		s.Register(sources.NewJira())
		s.Register(sources.NewLinear())
		s.Register(sources.NewConfluence())
	}

	return s, func() { st.Close() }, nil
}

// commandContext returns the context commands run under.
func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
