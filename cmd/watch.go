package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/satish1373/automation-pipeline-demo/constants/lipgloss"
	"github.com/satish1373/automation-pipeline-demo/utils"
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Re-analyze the project whenever its files change",
	Long: `The 'watch' command analyzes the project once, then keeps the snapshot up to date:
after every batch of file changes (excluded directories ignored) the project is analyzed
again and the output file rewritten. Press Ctrl-C to stop.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd, false)
		if err != nil {
			return err
		}
		return handleWatchCommand(cmd.Context(), rootDependencies, projectRoot(args, rootDependencies.Cwd))
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func handleWatchCommand(ctx context.Context, rootDependencies *RootDependencies, root string) error {
	cfg := rootDependencies.Config
	logger := rootDependencies.Logger

	if cfg.Output == utils.StdoutPath {
		return fmt.Errorf("watch needs an output file, not stdout")
	}

	if err := handleAnalyzeCommand(ctx, rootDependencies, root); err != nil {
		return err
	}

	watcher, err := utils.NewProjectWatcher(root, utils.WatcherOptions{
		Debounce:        cfg.WatchDebounce,
		ExcludedNames:   cfg.Rules.ExcludedDirs,
		AllowedDotfiles: cfg.Rules.AllowedDotfiles,
		IgnorePaths:     []string{absOutputPath(rootDependencies.Cwd, cfg.Output)},
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}
	defer watcher.Close()

	fmt.Fprintln(os.Stderr, lipgloss.Info.Render(fmt.Sprintf("Watching %s for changes (Ctrl-C to stop)", root)))

	err = watcher.Run(ctx, func(changed []string) {
		logger.Info("Change detected, re-analyzing", logger.Args("files", strings.Join(changed, ", ")))
		if err := handleAnalyzeCommand(ctx, rootDependencies, root); err != nil && ctx.Err() == nil {
			logger.Error("Re-analysis failed", logger.Args("error", err))
		}
	})

	fmt.Fprintln(os.Stderr, lipgloss.Yellow.Render("Stopped watching."))
	return err
}

func absOutputPath(cwd string, output string) string {
	if filepath.IsAbs(output) {
		return filepath.Clean(output)
	}
	return filepath.Join(cwd, output)
}
