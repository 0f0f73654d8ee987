package pattern

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/gobwas/glob"
)

// ErrInvalidPattern is returned when a pattern or ignore rule cannot be compiled.
var ErrInvalidPattern = errors.New("invalid glob pattern")

// maxGlobstars bounds the number of "**" segments expanded per pattern.
const maxGlobstars = 8

// matcher matches slash-separated relative paths against one pattern.
type matcher struct {
	source   string
	variants []glob.Glob
	dot      bool // pattern explicitly names dot entries
	base     string
	depth    int // number of segments; -1 when unbounded
}

// compile builds a matcher. A "**" path segment matches zero or more
// directories, so every such segment produces two variants: one with the
// segment and one without it.
func compile(pattern string) (*matcher, error) {
	pattern = strings.TrimPrefix(path.Clean(pattern), "./")
	if pattern == "" || pattern == "." {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}

	segments := strings.Split(pattern, "/")
	var stars []int
	for i, seg := range segments {
		if seg == "**" && i < len(segments)-1 {
			stars = append(stars, i)
		}
	}
	if len(stars) > maxGlobstars {
		return nil, fmt.Errorf("%w: %q has more than %d globstar segments", ErrInvalidPattern, pattern, maxGlobstars)
	}

	m := &matcher{
		source: pattern,
		dot:    mentionsDot(segments),
		base:   literalBase(segments),
		depth:  len(segments),
	}
	if strings.Contains(pattern, "**") {
		m.depth = -1
	}

	seen := make(map[string]bool)
	for mask := 0; mask < 1<<len(stars); mask++ {
		drop := make(map[int]bool, len(stars))
		for bit, idx := range stars {
			if mask&(1<<bit) != 0 {
				drop[idx] = true
			}
		}
		kept := make([]string, 0, len(segments))
		for i, seg := range segments {
			if !drop[i] {
				kept = append(kept, seg)
			}
		}
		variant := strings.Join(kept, "/")
		if seen[variant] {
			continue
		}
		seen[variant] = true

		g, err := glob.Compile(variant, '/')
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
		}
		m.variants = append(m.variants, g)
	}
	return m, nil
}

// Match reports whether the slash-separated relative path rel matches.
func (m *matcher) Match(rel string) bool {
	for _, g := range m.variants {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// pruneDir returns the directory a rule of the form "<dir>/**" or
// "<dir>/**/*" excludes wholesale, or "" if the rule is not of that form.
func pruneDir(rule string) string {
	rule = strings.TrimPrefix(path.Clean(rule), "./")
	for _, suffix := range []string{"/**/*", "/**"} {
		if dir, ok := strings.CutSuffix(rule, suffix); ok && dir != "" && !hasMeta(dir) {
			return dir
		}
	}
	return ""
}

// literalBase returns the leading directory segments that contain no glob
// syntax. The final segment is never part of the base.
func literalBase(segments []string) string {
	var base []string
	for _, seg := range segments[:len(segments)-1] {
		if hasMeta(seg) {
			break
		}
		base = append(base, seg)
	}
	return strings.Join(base, "/")
}

func mentionsDot(segments []string) bool {
	for _, seg := range segments {
		if strings.HasPrefix(seg, ".") && seg != "." && seg != ".." {
			return true
		}
	}
	return false
}

func hasMeta(s string) bool {
	return strings.ContainsAny(s, `*?[]{}\`)
}
