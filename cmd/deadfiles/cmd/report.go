package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/deadfiles/internal/logger"
	"github.com/dbsmedya/deadfiles/internal/reporter"
)

var (
	reportInput        string
	reportPatterns     []string
	reportFailOnUnused bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "List project files a build report never references",
	Long: `Report reads a webpack stats report from stdin and prints every file
in the working directory that no module in the report refers to, one path
per line, relative to the working directory.

Modules count as used when their name starts with "./" and no path segment
is a vendor directory (node_modules by default).

Example:
  webpack --json | deadfiles report
  CWD=./app deadfiles report --input stats.json --pattern 'src/**/*.ts'`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportInput, "input", "i", "",
		"Read the report from a file instead of stdin")
	reportCmd.Flags().StringSliceVarP(&reportPatterns, "pattern", "p", nil,
		"Glob pattern of files to check (default \"*\", repeatable)")
	reportCmd.Flags().BoolVar(&reportFailOnUnused, "fail-on-unused", false,
		"Exit with status 2 when unused files are found")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	env, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	log := env.log.WithCommand("report")
	defer func() { _ = log.Sync() }()

	in, closeInput, err := openInput(cmd, reportInput)
	if err != nil {
		return err
	}
	defer closeInput()

	fs := afero.NewOsFs()
	unused, err := reporter.CheckReport(commandContext(cmd), fs, in, reportOptions(env, log, reportPatterns))
	if err != nil {
		return fmt.Errorf("failed to check report: %w", err)
	}

	log.Debugw("Report checked",
		"cwd", env.cwd,
		"unused", len(unused),
	)

	if err := printUnused(cmd, env, fs, unused); err != nil {
		return err
	}

	if reportFailOnUnused && len(unused) > 0 {
		return fmt.Errorf("%w: %d file(s)", ErrUnusedFiles, len(unused))
	}
	return nil
}

func reportOptions(env *runtimeEnv, log *logger.Logger, patterns []string) reporter.ReportOptions {
	return reporter.ReportOptions{
		Cwd:           env.cwd,
		Patterns:      patterns,
		Ignore:        env.cfg.Check.Ignore,
		VendorMarkers: env.cfg.Check.VendorMarkers,
		Dot:           env.cfg.Check.Dot,
		OnSkip: func(path string, err error) {
			log.Warnw("Skipping unreadable directory", "path", path, "error", err)
		},
	}
}

// openInput returns stdin, or the named file when path is set and not "-".
func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
