// Package host is a minimal in-process build host. It replays a recorded
// compilation through the plugins registered on it, which lets the plugin
// check run outside a real bundler.
package host

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/dbsmedya/deadfiles/internal/build"
	"github.com/dbsmedya/deadfiles/internal/plugin"
)

type afterEmitHook struct {
	name string
	fn   plugin.AfterEmitFunc
}

// Compiler collects plugin hooks and runs them against compilations.
type Compiler struct {
	fs    afero.Fs
	hooks []afterEmitHook
}

// NewCompiler returns a compiler whose compilations read from fs.
func NewCompiler(fs afero.Fs) *Compiler {
	return &Compiler{fs: fs}
}

// AfterEmit registers fn to run after every emit, in registration order.
func (c *Compiler) AfterEmit(name string, fn plugin.AfterEmitFunc) {
	c.hooks = append(c.hooks, afterEmitHook{name: name, fn: fn})
}

// Hooks returns the names of the registered after-emit hooks.
func (c *Compiler) Hooks() []string {
	names := make([]string, len(c.hooks))
	for i, h := range c.hooks {
		names[i] = h.name
	}
	return names
}

// Emit runs the after-emit hooks against rec one at a time. The first hook
// error stops the run and is returned; the compilation is returned either way
// so collected errors and warnings stay inspectable.
func (c *Compiler) Emit(ctx context.Context, rec *build.Compilation) (*Compilation, error) {
	comp := &Compilation{record: rec, fs: c.fs}
	for _, h := range c.hooks {
		if err := h.fn(ctx, comp); err != nil {
			return comp, fmt.Errorf("after-emit hook %s: %w", h.name, err)
		}
	}
	return comp, nil
}

// Compilation adapts a recorded build to plugin.Compilation.
type Compilation struct {
	record   *build.Compilation
	fs       afero.Fs
	errors   []error
	warnings []error
}

var _ plugin.Compilation = (*Compilation)(nil)

func (c *Compilation) Context() string { return c.record.Context }

func (c *Compilation) Bail() bool { return c.record.Bail }

func (c *Compilation) FileDependencies() []string { return c.record.FileDependencies }

func (c *Compilation) Assets() map[string]build.Asset { return c.record.Assets }

func (c *Compilation) Fs() afero.Fs { return c.fs }

func (c *Compilation) AddError(err error) { c.errors = append(c.errors, err) }

func (c *Compilation) AddWarning(err error) { c.warnings = append(c.warnings, err) }

// Errors returns the errors plugins added.
func (c *Compilation) Errors() []error { return c.errors }

// Warnings returns the warnings plugins added.
func (c *Compilation) Warnings() []error { return c.warnings }

var _ plugin.Compiler = (*Compiler)(nil)
