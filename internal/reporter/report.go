package reporter

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/dbsmedya/deadfiles/internal/build"
	"github.com/dbsmedya/deadfiles/internal/pattern"
	"github.com/dbsmedya/deadfiles/internal/resolver"
	"github.com/dbsmedya/deadfiles/internal/types"
)

// ReportPattern is the pattern the report check uses when none is given: the
// entries directly inside the working directory.
const ReportPattern = "*"

// ReportOptions configures CheckReport.
type ReportOptions struct {
	Cwd           string
	Patterns      []string // defaults to ReportPattern
	Ignore        []string // defaults to pattern.DefaultIgnore
	VendorMarkers []string // defaults to resolver.DefaultVendorMarkers
	Dot           bool

	// OnSkip is passed through to pattern.Options.OnSkip.
	OnSkip func(path string, err error)
}

func (o ReportOptions) withDefaults() ReportOptions {
	if len(o.Patterns) == 0 {
		o.Patterns = []string{ReportPattern}
	}
	if o.Ignore == nil {
		o.Ignore = pattern.DefaultIgnore
	}
	if o.VendorMarkers == nil {
		o.VendorMarkers = resolver.DefaultVendorMarkers
	}
	return o
}

// CheckReport reads a build report from in and returns the matched files it
// does not reference, relative to opts.Cwd. Only files are considered.
func CheckReport(ctx context.Context, fs afero.Fs, in io.Reader, opts ReportOptions) ([]string, error) {
	opts = opts.withDefaults()

	report, err := build.DecodeReport(in)
	if err != nil {
		return nil, err
	}
	used := resolver.FromReport(report, opts.Cwd, opts.VendorMarkers)

	matched, err := pattern.Expand(ctx, fs, opts.Patterns, pattern.Options{
		Cwd:    opts.Cwd,
		Ignore: opts.Ignore,
		NoDir:  true,
		Dot:    opts.Dot,
		OnSkip: opts.OnSkip,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to expand patterns: %w", err)
	}

	unused := Unused(matched, used, opts.Cwd)
	out := make([]string, len(unused))
	for i, f := range unused {
		out[i] = types.RelPath(opts.Cwd, f)
	}
	return out, nil
}
