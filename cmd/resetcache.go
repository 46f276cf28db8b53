package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/satish1373/automation-pipeline-demo/constants/lipgloss"
	"github.com/satish1373/automation-pipeline-demo/context_analyzer/contracts"
	"github.com/satish1373/automation-pipeline-demo/utils"
	"github.com/spf13/cobra"
)

// resetCacheCmd represents the reset-cache command
var resetCacheCmd = &cobra.Command{
	Use:   "reset-cache",
	Short: "Reset the per-file analysis cache",
	Long: `The 'reset-cache' command removes every cached per-file analysis from the cache directory.
Use this command to clear a corrupted cache or to reclaim disk space.
With --expired only entries older than the given age are removed, e.g. --expired 168h.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		stats, _ := cmd.Flags().GetBool("stats")
		expired, _ := cmd.Flags().GetDuration("expired")

		rootDependencies, err := handleRootCommand(cmd, true)
		if err != nil {
			return err
		}
		return handleResetCacheCommand(rootDependencies.Analyzer, resetCacheOptions{
			force:     force,
			showStats: stats,
			expired:   expired,
		}, bufio.NewReader(os.Stdin), os.Stdout)
	},
}

func init() {
	// Define command-specific flags
	resetCacheCmd.Flags().BoolP("force", "f", false, "Force cache reset without confirmation")
	resetCacheCmd.Flags().BoolP("stats", "s", false, "Show cache statistics instead of resetting")
	resetCacheCmd.Flags().Duration("expired", 0, "Only remove entries older than this age (e.g. 168h)")

	// Add the reset-cache command to the root command
	rootCmd.AddCommand(resetCacheCmd)
}

// resetCacheOptions mirrors the reset-cache flags. A positive expired
// prunes old entries instead of clearing everything.
type resetCacheOptions struct {
	force     bool
	showStats bool
	expired   time.Duration
}

func handleResetCacheCommand(analyzer contracts.IContextAnalyzer, opts resetCacheOptions, in *bufio.Reader, out io.Writer) error {
	cacheStats, err := analyzer.GetCacheStats()
	if err != nil {
		return fmt.Errorf("could not read cache statistics: %w", err)
	}
	if enabled, ok := cacheStats["cache_enabled"].(bool); !ok || !enabled {
		fmt.Fprintln(out, lipgloss.Yellow.Render("Cache is unavailable. No cache to reset."))
		return nil
	}

	// Only show stats, skip the actual reset
	if opts.showStats {
		printCacheStats(out, cacheStats)
		return nil
	}

	if opts.expired > 0 {
		removed, err := analyzer.CleanExpiredCache(opts.expired)
		if err != nil {
			return fmt.Errorf("error pruning cache: %w", err)
		}
		fmt.Fprintln(out, lipgloss.Green.Render(fmt.Sprintf("✓ Removed %d cache entries older than %s", removed, opts.expired)))
		return nil
	}

	if !opts.force {
		confirmed, err := utils.ConfirmPrompt(out, in, "Are you sure you want to reset the analysis cache?")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(out, lipgloss.Yellow.Render("Cache reset cancelled."))
			return nil
		}
	}

	spinnerInstance, _ := newSpinner().Start("Resetting analysis cache...")
	err = analyzer.ClearCache()
	spinnerInstance.Stop()
	fmt.Fprint(os.Stderr, "\r")

	if err != nil {
		return fmt.Errorf("error resetting cache: %w", err)
	}

	fmt.Fprintln(out, lipgloss.Green.Render("✓ Analysis cache has been successfully reset!"))
	return nil
}

func printCacheStats(out io.Writer, cacheStats map[string]interface{}) {
	fmt.Fprintln(out, lipgloss.Info.Render("Cache Statistics:"))
	if dir, ok := cacheStats["cache_dir"].(string); ok {
		fmt.Fprintf(out, "  Cache Directory: %s\n", dir)
	}
	if files, ok := cacheStats["cache_files"].(int); ok {
		fmt.Fprintf(out, "  Cached Files: %d\n", files)
	}
	if size, ok := cacheStats["total_size"].(int64); ok {
		fmt.Fprintf(out, "  Total Size: %.2f MB\n", float64(size)/(1024*1024))
	}
	if hitRate, ok := cacheStats["hit_rate"].(float64); ok {
		fmt.Fprintf(out, "  Hit Rate: %.1f%%\n", hitRate)
	}
}
