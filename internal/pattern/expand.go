// Package pattern expands glob patterns into the files they match under a
// working directory.
package pattern

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// DefaultIgnore excludes the third-party dependency tree.
var DefaultIgnore = []string{"node_modules/**/*"}

// Options controls how patterns are expanded.
type Options struct {
	Cwd      string   // working directory; patterns are relative to it
	Ignore   []string // glob rules for paths to leave out
	Absolute bool     // return absolute paths instead of cwd-relative ones
	NoDir    bool     // match files only
	Dot      bool     // let wildcards match names starting with "."

	// OnSkip, when set, is told about each directory below the walk root
	// that was left out because it could not be read.
	OnSkip func(path string, err error)
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions(cwd string) Options {
	return Options{
		Cwd:    cwd,
		Ignore: append([]string(nil), DefaultIgnore...),
	}
}

// Expander matches patterns against a filesystem.
type Expander struct {
	fs     afero.Fs
	opts   Options
	ignore []*matcher
	prune  map[string]bool
}

// NewExpander compiles the ignore rules in opts.
func NewExpander(fs afero.Fs, opts Options) (*Expander, error) {
	e := &Expander{
		fs:    fs,
		opts:  opts,
		prune: make(map[string]bool),
	}
	for _, rule := range opts.Ignore {
		m, err := compile(filepath.ToSlash(rule))
		if err != nil {
			return nil, fmt.Errorf("ignore rule: %w", err)
		}
		e.ignore = append(e.ignore, m)
		if dir := pruneDir(filepath.ToSlash(rule)); dir != "" {
			e.prune[dir] = true
		}
	}
	return e, nil
}

// Expand returns the paths matching any of the patterns, in pattern order.
// A path matched by more than one pattern appears once per pattern.
func (e *Expander) Expand(ctx context.Context, patterns []string) ([]string, error) {
	info, err := e.fs.Stat(e.opts.Cwd)
	if err != nil {
		return nil, fmt.Errorf("failed to access working directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to access working directory: %s is not a directory", e.opts.Cwd)
	}

	var out []string
	for _, p := range patterns {
		matches, err := e.expandOne(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, matches...)
	}
	return out, nil
}

func (e *Expander) expandOne(ctx context.Context, pattern string) ([]string, error) {
	if filepath.IsAbs(pattern) {
		rel, err := filepath.Rel(e.opts.Cwd, pattern)
		if err != nil || strings.HasPrefix(rel, "..") {
			return nil, fmt.Errorf("%w: %q is outside the working directory", ErrInvalidPattern, pattern)
		}
		pattern = rel
	}

	m, err := compile(filepath.ToSlash(pattern))
	if err != nil {
		return nil, err
	}

	root := filepath.Join(e.opts.Cwd, filepath.FromSlash(m.base))
	if _, err := e.fs.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to access %s: %w", root, err)
	}

	var out []string
	err = afero.Walk(e.fs, root, func(p string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			if p == root || !skippable(walkErr) {
				return walkErr
			}
			if e.opts.OnSkip != nil {
				e.opts.OnSkip(p, walkErr)
			}
			if info != nil && !info.IsDir() {
				return nil
			}
			return filepath.SkipDir
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(e.opts.Cwd, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		hidden := strings.HasPrefix(info.Name(), ".") && !e.opts.Dot && !m.dot
		if info.IsDir() {
			if e.prune[rel] || hidden {
				return filepath.SkipDir
			}
			if !e.opts.NoDir && m.Match(rel) && !e.ignored(rel) {
				out = append(out, e.result(p, rel))
			}
			// Nothing below full depth can match a pattern without "**".
			if m.depth >= 0 && strings.Count(rel, "/")+1 >= m.depth {
				return filepath.SkipDir
			}
			return nil
		}
		if !hidden && m.Match(rel) && !e.ignored(rel) {
			out = append(out, e.result(p, rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to expand %q: %w", pattern, err)
	}
	return out, nil
}

// skippable reports whether a walk error only hides part of the tree.
func skippable(err error) bool {
	return errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist)
}

func (e *Expander) result(abs, rel string) string {
	if e.opts.Absolute {
		return abs
	}
	return filepath.FromSlash(rel)
}

func (e *Expander) ignored(rel string) bool {
	for _, ig := range e.ignore {
		if ig.Match(rel) {
			return true
		}
	}
	return false
}

// Expand is a convenience wrapper around NewExpander and Expander.Expand.
func Expand(ctx context.Context, fs afero.Fs, patterns []string, opts Options) ([]string, error) {
	e, err := NewExpander(fs, opts)
	if err != nil {
		return nil, err
	}
	return e.Expand(ctx, patterns)
}

// Validate reports the first pattern that does not compile.
func Validate(patterns []string) error {
	for _, p := range patterns {
		if _, err := compile(filepath.ToSlash(p)); err != nil {
			return err
		}
	}
	return nil
}
