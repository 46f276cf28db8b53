package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/satish1373/automation-pipeline-demo/constants/lipgloss"
	"github.com/satish1373/automation-pipeline-demo/context_analyzer/models"
	"github.com/satish1373/automation-pipeline-demo/utils"
	"github.com/spf13/cobra"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyze a project and save its context snapshot",
	Long: `The 'analyze' command scans the project at [path] (default: the working directory)
and writes the resulting snapshot to the configured output file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd, false)
		if err != nil {
			return err
		}
		return handleAnalyzeCommand(cmd.Context(), rootDependencies, projectRoot(args, rootDependencies.Cwd))
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func newSpinner() *pterm.SpinnerPrinter {
	return pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100).WithRemoveWhenDone(true).WithWriter(os.Stderr)
}

func handleAnalyzeCommand(ctx context.Context, rootDependencies *RootDependencies, root string) error {
	snapshot, err := runAnalysis(ctx, rootDependencies, root)
	if err != nil {
		return err
	}

	cfg := rootDependencies.Config
	if err := utils.SaveSnapshot(cfg.Output, snapshot, cfg.Format, cfg.Theme); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	printSummary(os.Stderr, snapshot, cfg.Output)
	return nil
}

// runAnalysis analyzes root behind a spinner. An interrupted run is an
// error: a partial snapshot is never saved.
func runAnalysis(ctx context.Context, rootDependencies *RootDependencies, root string) (*models.ProjectContext, error) {
	spinnerInstance, _ := newSpinner().Start("Analyzing application context...")

	snapshot, err := rootDependencies.Analyzer.Analyze(ctx, root)

	spinnerInstance.Stop()
	fmt.Fprint(os.Stderr, "\r")

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("analysis interrupted: %w", err)
		}
		return nil, err
	}
	return snapshot, nil
}

func printSummary(out io.Writer, snapshot *models.ProjectContext, output string) {
	state := "none"
	if len(snapshot.StateManagement) > 0 {
		state = strings.Join(snapshot.StateManagement, ", ")
	}

	lines := []string{
		lipgloss.Green.Render(fmt.Sprintf("✓ Analysis complete! Found %d components", len(snapshot.Components))),
		fmt.Sprintf("Framework: %s (%s)", snapshot.Framework, snapshot.Language),
		fmt.Sprintf("Source files: %d of %d project files", len(snapshot.FileAnalyses), snapshot.FileTree.CountFiles()),
		fmt.Sprintf("Dependencies: %d", len(snapshot.Dependencies)),
		fmt.Sprintf("State management: %s", state),
	}
	if output != utils.StdoutPath {
		lines = append(lines, lipgloss.Muted.Render(fmt.Sprintf("Context saved to %s", output)))
	}

	fmt.Fprintln(out, lipgloss.BoxStyle.Render(strings.Join(lines, "\n")))
}
