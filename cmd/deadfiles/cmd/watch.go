package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/deadfiles/internal/reporter"
	"github.com/dbsmedya/deadfiles/internal/watch"
)

var (
	watchInput    string
	watchPatterns []string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-check a stats report every time it is rewritten",
	Long: `Watch runs the report check against a stats file and runs it again
whenever the file changes, e.g. while webpack --watch keeps rewriting it.
Stop with Ctrl+C.

Example:
  deadfiles watch --input dist/stats.json`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchInput, "input", "i", "",
		"Stats report to watch (required)")
	watchCmd.MarkFlagRequired("input")
	watchCmd.Flags().StringSliceVarP(&watchPatterns, "pattern", "p", nil,
		"Glob pattern of files to check (default \"*\", repeatable)")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	env, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	log := env.log.WithCommand("watch")
	defer func() { _ = log.Sync() }()

	ctx, stop := watch.WithShutdown(commandContext(cmd), func(sig os.Signal) {
		log.Infow("Stopping watch", "signal", sig.String())
	})
	defer stop()

	fs := afero.NewOsFs()
	opts := reportOptions(env, log, watchPatterns)

	return watch.Run(ctx, watchInput, watch.Options{Log: log}, func(ctx context.Context) error {
		f, err := os.Open(watchInput)
		if err != nil {
			return fmt.Errorf("failed to open report: %w", err)
		}
		defer f.Close()

		unused, err := reporter.CheckReport(ctx, fs, f, opts)
		if err != nil {
			return err
		}
		log.Infow("Report checked", "unused", len(unused))
		return printUnused(cmd, env, fs, unused)
	})
}
