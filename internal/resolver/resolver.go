// Package resolver builds the set of files a build actually consumed.
package resolver

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/dbsmedya/deadfiles/internal/build"
	"github.com/dbsmedya/deadfiles/internal/types"
)

// DefaultVendorMarkers are the directory names that hold third-party code.
// "~" is how older webpack versions abbreviated node_modules in module names.
var DefaultVendorMarkers = []string{"node_modules", "~"}

// concatSuffix matches the " + 3 modules" tail webpack appends to the name of
// a concatenated module.
var concatSuffix = regexp.MustCompile(`\s\+\s\d+\s+modules?$`)

// FromCompilation returns every recorded file dependency plus the source path
// of every asset that records one. Paths are returned as the build gave them.
func FromCompilation(c *build.Compilation) *types.PathSet {
	used := types.NewPathSet(c.FileDependencies...)

	names := make([]string, 0, len(c.Assets))
	for name := range c.Assets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if src, ok := c.Assets[name].SourcePath(); ok {
			used.Add(src)
		}
	}
	return used
}

// FromReport returns the absolute paths of the project modules named in the
// report. A module counts when its name starts with "./" and none of its path
// segments is a vendor marker.
func FromReport(r *build.Report, cwd string, vendorMarkers []string) *types.PathSet {
	used := types.NewPathSet()
	for _, m := range r.AllModules() {
		if m.Name == nil {
			continue
		}
		name := concatSuffix.ReplaceAllString(*m.Name, "")
		if !strings.HasPrefix(name, "./") {
			continue
		}
		if HasVendorSegment(name, vendorMarkers) {
			continue
		}
		used.Add(filepath.Join(cwd, filepath.FromSlash(name)))
	}
	return used
}

// HasVendorSegment reports whether any "/"- or "\"-separated segment of name
// equals one of the markers. Substrings of a segment do not count, so
// "./src/my-node_modules-helper.ts" is not vendored.
func HasVendorSegment(name string, markers []string) bool {
	segments := strings.FieldsFunc(name, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	for _, seg := range segments {
		for _, marker := range markers {
			if seg == marker {
				return true
			}
		}
	}
	return false
}
