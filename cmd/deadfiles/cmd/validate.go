package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/deadfiles/internal/pattern"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and preview matched files",
	Long: `Validate checks the configuration file and expands the configured
patterns against the working directory.

Checks performed:
  - Configuration syntax and allowed values
  - Glob syntax of every pattern and ignore rule
  - Working directory accessibility

Example:
  deadfiles validate --config deadfiles.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	env, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	log := env.log.WithCommand("validate")
	defer func() { _ = log.Sync() }()

	check := env.cfg.Check
	matched, err := pattern.Expand(commandContext(cmd), afero.NewOsFs(), check.Patterns, pattern.Options{
		Cwd:    env.cwd,
		Ignore: check.Ignore,
		Dot:    check.Dot,
		NoDir:  check.NoDir,
	})
	if err != nil {
		return fmt.Errorf("failed to expand patterns: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "=== Configuration Validation ===\n")
	fmt.Fprintf(out, "Working directory: %s\n", env.cwd)
	fmt.Fprintf(out, "Patterns:          %s\n", strings.Join(check.Patterns, ", "))
	fmt.Fprintf(out, "Ignore:            %s\n", strings.Join(check.Ignore, ", "))
	fmt.Fprintf(out, "Fail on unused:    %v\n", check.FailOnUnused)
	fmt.Fprintf(out, "Matched files:     %d\n", len(matched))

	log.Debugw("Validation complete", "matched", len(matched))
	return nil
}
