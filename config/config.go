package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/satish1373/automation-pipeline-demo/context_analyzer/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configName = "appctx-config"
	envPrefix  = "APPCTX"
)

// Config represents the structure of the configuration file
type Config struct {
	Version       string        `mapstructure:"version"`
	Output        string        `mapstructure:"output"`
	Format        string        `mapstructure:"format"`
	Extractor     string        `mapstructure:"extractor"`
	Workers       int           `mapstructure:"workers"`
	EnableCache   bool          `mapstructure:"enable_cache"`
	CacheDir      string        `mapstructure:"cache_dir"`
	Theme         string        `mapstructure:"theme"`
	LogLevel      string        `mapstructure:"log_level"`
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
	Rules         models.Rules  `mapstructure:"rules"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:       "0.1.0",
	Output:        "application_context.json",
	Format:        "",
	Extractor:     "lexical",
	Workers:       0,
	EnableCache:   false,
	CacheDir:      "",
	Theme:         "dracula",
	LogLevel:      "info",
	WatchDebounce: 500 * time.Millisecond,
	Rules:         models.DefaultRules(),
}

// LoadConfigs resolves the configuration from defaults, the config file,
// APPCTX_* environment variables and the command's flags, in increasing
// priority.
func LoadConfigs(cmd *cobra.Command, cwd string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfgFile := ""
	if flag := cmd.Flags().Lookup("config"); flag != nil {
		cfgFile = flag.Value.String()
	}

	if cfgFile != "" {
		configType := GetConfigFileType(cfgFile)
		if configType == "" {
			return nil, fmt.Errorf("unsupported config file %s: expected .json, .yaml or .yml", cfgFile)
		}
		v.SetConfigFile(cfgFile)
		v.SetConfigType(configType)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(cwd)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	bindFlags(v, cmd)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects values no command can run with.
func (c *Config) Validate() error {
	switch c.Format {
	case "", "json", "yaml":
	default:
		return fmt.Errorf("invalid format %q (expected json or yaml)", c.Format)
	}
	switch c.Extractor {
	case "lexical", "syntax":
	default:
		return fmt.Errorf("invalid extractor %q (expected lexical or syntax)", c.Extractor)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.WatchDebounce <= 0 {
		return fmt.Errorf("watch_debounce must be positive, got %s", c.WatchDebounce)
	}
	if c.Rules.SourceDir == "" || filepath.IsAbs(c.Rules.SourceDir) {
		return fmt.Errorf("rules.source_dir must be a relative path, got %q", c.Rules.SourceDir)
	}
	return nil
}

// setDefaults sets all default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", DefaultConfig.Version)
	v.SetDefault("output", DefaultConfig.Output)
	v.SetDefault("format", DefaultConfig.Format)
	v.SetDefault("extractor", DefaultConfig.Extractor)
	v.SetDefault("workers", DefaultConfig.Workers)
	v.SetDefault("enable_cache", DefaultConfig.EnableCache)
	v.SetDefault("cache_dir", DefaultConfig.CacheDir)
	v.SetDefault("theme", DefaultConfig.Theme)
	v.SetDefault("log_level", DefaultConfig.LogLevel)
	v.SetDefault("watch_debounce", DefaultConfig.WatchDebounce)

	rules := DefaultConfig.Rules
	v.SetDefault("rules.source_dir", rules.SourceDir)
	v.SetDefault("rules.source_extensions", rules.SourceExtensions)
	v.SetDefault("rules.component_extensions", rules.ComponentExtensions)
	v.SetDefault("rules.manifest_file", rules.ManifestFile)
	v.SetDefault("rules.framework_dependency", rules.FrameworkDependency)
	v.SetDefault("rules.framework_label", rules.FrameworkLabel)
	v.SetDefault("rules.unknown_framework", rules.UnknownFramework)
	v.SetDefault("rules.language", rules.Language)
	v.SetDefault("rules.hook_names", rules.HookNames)
	v.SetDefault("rules.state_hook", rules.StateHook)
	v.SetDefault("rules.effect_hook", rules.EffectHook)
	v.SetDefault("rules.endpoint_rules", tagRulesAsMaps(rules.EndpointRules))
	v.SetDefault("rules.state_rules", tagRulesAsMaps(rules.StateRules))
	v.SetDefault("rules.excluded_dirs", rules.ExcludedDirs)
	v.SetDefault("rules.allowed_dotfiles", rules.AllowedDotfiles)
	v.SetDefault("rules.max_tree_depth", rules.MaxTreeDepth)
}

// tagRulesAsMaps gives tag rules the same shape they have when read from a
// config file, so a file value replaces the default list as a whole.
func tagRulesAsMaps(rules []models.TagRule) []interface{} {
	out := make([]interface{}, 0, len(rules))
	for _, rule := range rules {
		entry := map[string]interface{}{
			"tag":         rule.Tag,
			"ignore_case": rule.IgnoreCase,
		}
		if len(rule.AnyOf) > 0 {
			entry["any_of"] = rule.AnyOf
		}
		if len(rule.AllOf) > 0 {
			entry["all_of"] = rule.AllOf
		}
		out = append(out, entry)
	}
	return out
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	flags := cmd.Flags()
	for _, key := range []string{"output", "format", "extractor", "workers", "enable_cache", "cache_dir", "theme", "log_level", "watch_debounce"} {
		if flag := flags.Lookup(key); flag != nil {
			_ = v.BindPFlag(key, flag)
		}
	}
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a configuration file (JSON or YAML). Defaults to appctx-config.{yml,yaml,json} in the working directory.")

	rootCmd.PersistentFlags().StringP("output", "o", DefaultConfig.Output, "Where to write the snapshot. Use '-' for stdout.")
	rootCmd.PersistentFlags().String("format", DefaultConfig.Format, "Snapshot format: 'json' or 'yaml'. Empty picks it from the output file extension.")
	rootCmd.PersistentFlags().String("extractor", DefaultConfig.Extractor, "Per-file extractor: 'lexical' (line heuristics) or 'syntax' (tree-sitter).")
	rootCmd.PersistentFlags().Int("workers", DefaultConfig.Workers, "Number of files analyzed in parallel (0 uses one per CPU).")

	// Cache configuration
	rootCmd.PersistentFlags().Bool("enable_cache", DefaultConfig.EnableCache, "Cache per-file analysis results between runs.")
	rootCmd.PersistentFlags().String("cache_dir", DefaultConfig.CacheDir, "Cache directory (defaults to the user cache directory).")

	rootCmd.PersistentFlags().String("theme", DefaultConfig.Theme, "Highlight theme used when printing the snapshot to a terminal (e.g., 'dracula', 'monokai').")
	rootCmd.PersistentFlags().String("log_level", DefaultConfig.LogLevel, "Log level: 'debug', 'info', 'warn' or 'error'.")
	rootCmd.PersistentFlags().Duration("watch_debounce", DefaultConfig.WatchDebounce, "Quiet period before 'watch' re-analyzes after a change.")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")
}

// GetConfigFileType returns the type of the configuration file based on its extension
func GetConfigFileType(filename string) string {
	if strings.HasSuffix(filename, ".json") {
		return "json"
	} else if strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml") {
		return "yaml"
	}
	return ""
}
