package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"codectx/config"
	"codectx/internal/adapter/cache"
	"codectx/internal/adapter/fs"
	"codectx/internal/adapter/gather"
	"codectx/internal/adapter/intent"
	"codectx/internal/adapter/scorer"
	"codectx/internal/adapter/store"
	"codectx/internal/port"
	"codectx/internal/usecase"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "codectx",
	Short: "Context retrieval engine - rank and budget workspace files for LLM prompts",
	Long: `codectx classifies a free-text request, gathers candidate files from the
workspace, scores their relevance, and selects the best set within a token
budget.

Example usage:
  codectx retrieve -q "why is login throwing a null reference error"
  codectx classify -q "rename this variable"
  codectx warm .`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./codectx.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "workspace root (default is current directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func newLogger() *slog.Logger {
	level := cfg.LogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// buildEngine wires the full pipeline for the configured workspace root.
// The returned closer releases the persistent cache, if one was opened.
func buildEngine(log *slog.Logger) (*usecase.Engine, func(), error) {
	ws, err := fs.NewWorkspace(rootDir, cfg.Workspace.MaxFileSize)
	if err != nil {
		return nil, nil, err
	}

	analysisCache, closer, err := buildCache()
	if err != nil {
		return nil, nil, err
	}

	g := gather.NewGatherer(ws, analysisCache, log, gather.Options{
		ReadConcurrency: cfg.Workspace.ReadConcurrency,
		ExtraExcludes:   cfg.Workspace.Excludes,
	})

	engine := usecase.NewEngine(
		intent.NewClassifier(),
		g,
		scorer.NewScorer(cfg.Retrieve.PreferredLanguages),
		g.Excludes(),
		usecase.Defaults{
			MaxTokens:       cfg.Retrieve.MaxTokens,
			RelevanceWeight: cfg.Retrieve.RelevanceWeight,
			RecencyWeight:   cfg.Retrieve.RecencyWeight,
			SizeWeight:      cfg.Retrieve.SizeWeight,
		},
		log,
	)
	return engine, closer, nil
}

func buildCache() (port.AnalysisCache, func(), error) {
	if !cfg.Cache.Enabled {
		return nil, func() {}, nil
	}

	if cfg.Cache.Persistent {
		if err := config.EnsureStateDir(rootDir); err != nil {
			return nil, nil, fmt.Errorf("failed to create state directory: %w", err)
		}
		path := cfg.Cache.Path
		if path == "" {
			path = config.CacheDBPath(rootDir)
		}
		bc, err := store.NewBoltCache(path)
		if err != nil {
			return nil, nil, err
		}
		return bc, func() { bc.Close() }, nil
	}

	mem := cache.NewAnalysisCache(cfg.Cache.MaxEntries, ttlMinutes(cfg.Cache.TTLMinutes))
	return mem, func() {}, nil
}
