package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/satish1373/automation-pipeline-demo/config"
	"github.com/satish1373/automation-pipeline-demo/constants/lipgloss"
	"github.com/satish1373/automation-pipeline-demo/context_analyzer"
	"github.com/satish1373/automation-pipeline-demo/context_analyzer/contracts"
	"github.com/spf13/cobra"
)

// RootDependencies is everything a subcommand needs, built once from the
// resolved configuration.
type RootDependencies struct {
	Cwd      string
	Config   *config.Config
	Logger   *pterm.Logger
	Analyzer contracts.IContextAnalyzer
}

var rootCmd = &cobra.Command{
	Use:   "appctx",
	Short: "Snapshot the structure of a front-end project for downstream tooling.",
	Long: `appctx statically scans a React/TypeScript project and writes a JSON snapshot
describing its source files, UI components, dependencies, directory tree, API call
styles and state-management patterns. Nothing is executed or type-checked.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
			cfg, err := config.LoadConfigs(cmd, ".")
			if err != nil {
				return err
			}
			fmt.Println(lipgloss.BlueSky.Render(fmt.Sprintf("appctx version %s", cfg.Version)))
			return nil
		}
		return cmd.Help()
	},
}

func init() {
	config.InitFlags(rootCmd)
}

// Execute runs the root command until it finishes or the process receives
// SIGINT/SIGTERM.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, lipgloss.Red.Render(fmt.Sprintf("Error: %v", err)))
		return err
	}
	return nil
}

// handleRootCommand loads the configuration and wires the analyzer. With
// forceCache the cache is opened even when enable_cache is off, so that
// reset-cache can reach it.
func handleRootCommand(cmd *cobra.Command, forceCache bool) (*RootDependencies, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve working directory: %w", err)
	}

	cfg, err := config.LoadConfigs(cmd, cwd)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	extractor, err := context_analyzer.NewExtractor(cfg.Extractor, cfg.Rules)
	if err != nil {
		return nil, err
	}

	var cacheManager *context_analyzer.CacheManager
	if cfg.EnableCache || forceCache {
		fingerprint := context_analyzer.RulesFingerprint(cfg.Rules, extractor.Name())
		cacheManager, err = context_analyzer.NewCacheManager(cfg.CacheDir, fingerprint)
		if err != nil {
			// Fall back to analyzing without a cache.
			logger.Warn("Cache unavailable, continuing without it", logger.Args("error", err))
			cacheManager = nil
		}
	}

	return &RootDependencies{
		Cwd:    cwd,
		Config: cfg,
		Logger: logger,
		Analyzer: context_analyzer.NewContextAnalyzer(context_analyzer.Options{
			Rules:     cfg.Rules,
			Extractor: extractor,
			Workers:   cfg.Workers,
			Logger:    logger,
			Cache:     cacheManager,
		}),
	}, nil
}

// newLogger returns a pterm logger writing to w at the named level.
func newLogger(level string, w io.Writer) (*pterm.Logger, error) {
	var logLevel pterm.LogLevel
	switch strings.ToLower(level) {
	case "trace":
		logLevel = pterm.LogLevelTrace
	case "debug":
		logLevel = pterm.LogLevelDebug
	case "", "info":
		logLevel = pterm.LogLevelInfo
	case "warn", "warning":
		logLevel = pterm.LogLevelWarn
	case "error":
		logLevel = pterm.LogLevelError
	case "off", "disabled":
		logLevel = pterm.LogLevelDisabled
	default:
		return nil, fmt.Errorf("invalid log_level %q", level)
	}
	return pterm.DefaultLogger.WithLevel(logLevel).WithWriter(w), nil
}

// projectRoot returns the path argument, or the working directory.
func projectRoot(args []string, cwd string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return cwd
}
