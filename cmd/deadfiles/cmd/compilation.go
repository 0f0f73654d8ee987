package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/deadfiles/internal/build"
	"github.com/dbsmedya/deadfiles/internal/host"
	"github.com/dbsmedya/deadfiles/internal/pattern"
	"github.com/dbsmedya/deadfiles/internal/plugin"
	"github.com/dbsmedya/deadfiles/internal/types"
)

var compilationInput string

var compilationCmd = &cobra.Command{
	Use:   "compilation",
	Short: "Run the plugin check against a recorded compilation",
	Long: `Compilation replays a recorded build through the unused-files plugin,
exactly as a bundler would after emitting its output.

The record is JSON with these fields:
  context            directory the build ran in (default: working directory)
  bail               stop at the first error
  fileDependencies   absolute paths the build read
  assets             output name -> {"existsAt": "/abs/source/path"}

Unused files become a build error (check.fail_on_unused: true) or a warning.
In bail mode with fail_on_unused the build step is aborted instead.

Example:
  deadfiles compilation --input compilation.json`,
	RunE: runCompilation,
}

func init() {
	compilationCmd.Flags().StringVarP(&compilationInput, "input", "i", "",
		"Read the compilation record from a file instead of stdin")

	rootCmd.AddCommand(compilationCmd)
}

func runCompilation(cmd *cobra.Command, args []string) error {
	env, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	log := env.log.WithCommand("compilation")
	defer func() { _ = log.Sync() }()

	in, closeInput, err := openInput(cmd, compilationInput)
	if err != nil {
		return err
	}
	defer closeInput()

	rec, err := build.DecodeCompilation(in)
	if err != nil {
		return fmt.Errorf("failed to read compilation: %w", err)
	}
	if rec.Context == "" {
		rec.Context = env.cwd
	}
	// A relative context is taken relative to the working directory.
	rec.Context = types.AbsPath(env.cwd, rec.Context)

	check := env.cfg.Check
	failOnUnused := check.FailOnUnused
	compiler := host.NewCompiler(afero.NewOsFs())
	plugin.New(plugin.Options{
		Patterns:     check.Patterns,
		FailOnUnused: &failOnUnused,
		GlobOptions: pattern.Options{
			Ignore: check.Ignore,
			Dot:    check.Dot,
			NoDir:  check.NoDir,
		},
	}, log).Apply(compiler)

	comp, err := compiler.Emit(commandContext(cmd), rec)
	if err != nil {
		return fmt.Errorf("build aborted: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, w := range comp.Warnings() {
		fmt.Fprintf(out, "WARNING in %s\n%v\n\n", plugin.Name, w)
	}
	for _, e := range comp.Errors() {
		fmt.Fprintf(out, "ERROR in %s\n%v\n\n", plugin.Name, e)
	}

	log.Infow("Compilation checked",
		"context", rec.Context,
		"errors", len(comp.Errors()),
		"warnings", len(comp.Warnings()),
	)

	if len(comp.Errors()) > 0 {
		return fmt.Errorf("%w: build finished with %d error(s)", ErrUnusedFiles, len(comp.Errors()))
	}
	return nil
}
