package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"codectx/config"
	"codectx/internal/adapter/analyzer"
	"codectx/internal/adapter/fs"
	"codectx/internal/adapter/store"
)

var warmCmd = &cobra.Command{
	Use:   "warm [path]",
	Short: "Pre-analyze workspace files into the persistent cache",
	Long: `Walk the workspace, run structural analysis on every source file, and
store the results in the persistent cache so later retrievals skip
re-analysis of unchanged files.

Examples:
  codectx warm .
  codectx warm /path/to/project`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWarm,
}

func init() {
	rootCmd.AddCommand(warmCmd)
}

func runWarm(cmd *cobra.Command, args []string) error {
	path := rootDir
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	if err := config.EnsureStateDir(path); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	dbPath := cfg.Cache.Path
	if dbPath == "" {
		dbPath = config.CacheDBPath(path)
	}
	bc, err := store.NewBoltCache(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open analysis cache: %w", err)
	}
	defer bc.Close()

	ws, err := fs.NewWorkspace(path, cfg.Workspace.MaxFileSize)
	if err != nil {
		return err
	}

	fmt.Printf("Scanning %s...\n", path)
	infos, err := ws.ListCandidateFiles(nil, cfg.Workspace.Excludes, 0)
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}

	bar := progressbar.NewOptions(len(infos),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Analyzing"),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	analyzed := 0
	skipped := 0
	for _, fi := range infos {
		bar.Add(1)

		if _, ok := bc.Get(fi.Path, fi.Size, fi.ModTime.Unix()); ok {
			skipped++
			continue
		}

		data, err := ws.ReadFile(fi.Path)
		if err != nil {
			skipped++
			continue
		}
		structure := analyzer.AnalyzeStructure(data.Content, data.Language)
		if err := bc.Put(fi.Path, data.Size, data.ModTime.Unix(), structure); err != nil {
			skipped++
			continue
		}
		analyzed++
	}

	count, _ := bc.Count()
	fmt.Printf("\nWarm complete:\n")
	fmt.Printf("  Files analyzed: %d\n", analyzed)
	fmt.Printf("  Files skipped:  %d (cached or unreadable)\n", skipped)
	fmt.Printf("  Cache entries:  %d\n", count)
	fmt.Printf("\nCache stored at: %s\n", dbPath)
	return nil
}

func ttlMinutes(m int) time.Duration {
	if m <= 0 {
		return 0
	}
	return time.Duration(m) * time.Minute
}
