package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/deadfiles/internal/config"
	"github.com/dbsmedya/deadfiles/internal/logger"
	"github.com/dbsmedya/deadfiles/internal/reporter"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// ErrUnusedFiles is returned when a check is configured to fail on unused files.
var ErrUnusedFiles = errors.New("unused files found")

// Exit codes
const (
	exitFailure = 1
	exitUnused  = 2
)

// CLI flags that override config file values
var (
	cfgFile      string
	logLevel     string
	logFormat    string
	workDir      string
	outputFormat string
	summary      bool
)

var rootCmd = &cobra.Command{
	Use:   "deadfiles",
	Short: "Find project files a bundler build never used",
	Long: `deadfiles compares the files in a project tree against the files a
bundling build actually consumed and lists the ones nothing referenced.

Sources of "used" files:
  - report:       a webpack stats report (webpack --json) read from stdin
  - compilation:  a recorded compilation replayed through the plugin check
  - watch:        a stats report re-checked every time it is rewritten`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var unused *reporter.UnusedFilesError
	if errors.Is(err, ErrUnusedFiles) || errors.As(err, &unused) {
		return exitUnused
	}
	return exitFailure
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.DefaultConfigFile,
		"Path to configuration file (optional unless set explicitly)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Check overrides
	rootCmd.PersistentFlags().StringVar(&workDir, "cwd", "",
		"Project directory (default: $CWD, then the current directory)")

	// Output overrides
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "o", "",
		"Override output format (text, json)")
	rootCmd.PersistentFlags().BoolVar(&summary, "summary", false,
		"Print a summary with file sizes to stderr")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel         string
	LogFormat        string
	WorkingDirectory string
	OutputFormat     string
	Summary          bool
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:         logLevel,
		LogFormat:        logFormat,
		WorkingDirectory: workDir,
		OutputFormat:     outputFormat,
		Summary:          summary,
	}
}

// runtimeEnv holds what every subcommand needs after startup.
type runtimeEnv struct {
	cfg *config.Config
	log *logger.Logger
	cwd string
}

// loadRuntime loads configuration, applies flag overrides, validates the
// result and builds the logger. A config file is required only when the
// --config flag was given explicitly.
func loadRuntime(cmd *cobra.Command) (*runtimeEnv, error) {
	configFile := GetConfigFile()

	var (
		cfg *config.Config
		err error
	)
	if flag := cmd.Flags().Lookup("config"); flag != nil && flag.Changed {
		cfg, err = config.Load(configFile)
	} else {
		cfg, err = config.LoadOptional(configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Apply CLI overrides
	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.WorkingDirectory, overrides.OutputFormat, overrides.Summary)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize logger
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	cwd, err := cfg.ResolveWorkingDirectory()
	if err != nil {
		return nil, err
	}

	return &runtimeEnv{cfg: cfg, log: log, cwd: cwd}, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
