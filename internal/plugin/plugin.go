// Package plugin implements the unused-files check as a build-tool plugin that
// runs after the build has emitted its output.
package plugin

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/dbsmedya/deadfiles/internal/build"
	"github.com/dbsmedya/deadfiles/internal/logger"
	"github.com/dbsmedya/deadfiles/internal/pattern"
	"github.com/dbsmedya/deadfiles/internal/reporter"
	"github.com/dbsmedya/deadfiles/internal/resolver"
	"github.com/dbsmedya/deadfiles/internal/types"
)

// Name identifies the plugin's hook registration.
const Name = "UnusedFilesPlugin"

// DefaultPatterns matches every file with an extension.
var DefaultPatterns = []string{"**/*.*"}

// Compilation is the host's view of a finished build. The plugin only reads
// it, apart from appending to the error and warning collections.
type Compilation interface {
	// Context is the directory the build ran in.
	Context() string
	// Bail reports whether the host stops at its first error.
	Bail() bool
	FileDependencies() []string
	Assets() map[string]build.Asset
	// Fs is the filesystem the project lives on.
	Fs() afero.Fs
	AddError(err error)
	AddWarning(err error)
}

// AfterEmitFunc is called once the build has written its output. The host
// waits for it to return before moving on; a non-nil error aborts the step.
type AfterEmitFunc func(ctx context.Context, c Compilation) error

// Compiler is the registration surface a host exposes to plugins.
type Compiler interface {
	AfterEmit(name string, fn AfterEmitFunc)
}

// Options configures the plugin. Zero values take the defaults.
type Options struct {
	Patterns     []string
	FailOnUnused *bool
	// GlobOptions controls pattern matching. An empty Cwd means the
	// compilation context; a nil Ignore means pattern.DefaultIgnore.
	GlobOptions pattern.Options
}

// UnusedFilesPlugin reports project files the build never read.
type UnusedFilesPlugin struct {
	patterns     []string
	failOnUnused bool
	globOptions  pattern.Options
	log          *logger.Logger
}

// New creates the plugin. A nil logger discards log output.
func New(opts Options, log *logger.Logger) *UnusedFilesPlugin {
	p := &UnusedFilesPlugin{
		patterns:     opts.Patterns,
		failOnUnused: true,
		globOptions:  opts.GlobOptions,
		log:          log,
	}
	if len(p.patterns) == 0 {
		p.patterns = DefaultPatterns
	}
	if opts.FailOnUnused != nil {
		p.failOnUnused = *opts.FailOnUnused
	}
	if p.globOptions.Ignore == nil {
		p.globOptions.Ignore = pattern.DefaultIgnore
	}
	if p.log == nil {
		p.log = logger.NewNop()
	}
	p.log = p.log.WithPlugin(Name)
	return p
}

// Apply registers the plugin with the compiler.
func (p *UnusedFilesPlugin) Apply(c Compiler) {
	c.AfterEmit(Name, p.afterEmit)
}

func (p *UnusedFilesPlugin) afterEmit(ctx context.Context, c Compilation) error {
	opts := p.globOptions
	if opts.Cwd == "" {
		opts.Cwd = c.Context()
	}
	opts.Cwd = types.AbsDir(opts.Cwd)
	if opts.OnSkip == nil {
		opts.OnSkip = func(path string, err error) {
			p.log.Warnw("Skipping unreadable directory", "path", path, "error", err)
		}
	}

	used := resolver.FromCompilation(&build.Compilation{
		FileDependencies: c.FileDependencies(),
		Assets:           c.Assets(),
	})

	matched, err := pattern.Expand(ctx, c.Fs(), p.patterns, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", Name, err)
	}

	found := reporter.Check(matched, used, opts.Cwd)
	outcome := reporter.Decide(found, p.failOnUnused, c.Bail())

	p.log.Debugw("Unused files check finished",
		"matched", len(matched),
		"used", used.Len(),
		"outcome", outcome.String(),
	)

	switch outcome {
	case reporter.OutcomeAbort:
		return found
	case reporter.OutcomeError:
		c.AddError(found)
	case reporter.OutcomeWarning:
		c.AddWarning(found)
	}
	return nil
}
