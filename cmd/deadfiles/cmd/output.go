package cmd

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/deadfiles/internal/reporter"
)

// printUnused writes the unused files to stdout in the configured format and,
// when enabled, a size summary to stderr.
func printUnused(cmd *cobra.Command, env *runtimeEnv, fs afero.Fs, unused []string) error {
	format, err := reporter.ParseFormat(env.cfg.Output.Format)
	if err != nil {
		return err
	}
	if err := reporter.Write(cmd.OutOrStdout(), unused, format); err != nil {
		return err
	}

	if !env.cfg.Output.Summary {
		return nil
	}
	errOut := cmd.ErrOrStderr()
	entries := reporter.Summarize(fs, env.cwd, unused)
	return reporter.WriteSummary(errOut, entries, colorEnabled(env.cfg.Output.Color, errOut))
}

// colorEnabled resolves the color setting for w. "auto" enables color only
// when w is a terminal.
func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
