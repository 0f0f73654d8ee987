package types

import (
	"path/filepath"
)

// AbsDir returns dir as an absolute path, resolved against the process
// working directory when relative. dir is returned cleaned if that fails.
func AbsDir(dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return filepath.Clean(dir)
	}
	return abs
}

// AbsPath returns p as a cleaned absolute path. Relative paths are joined
// against cwd, which is itself made absolute first; absolute paths are only
// cleaned.
func AbsPath(cwd, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(AbsDir(cwd), p)
}

// RelPath returns p relative to cwd. If no relative form exists (different
// volumes on Windows) the cleaned absolute path is returned instead.
func RelPath(cwd, p string) string {
	base := AbsDir(cwd)
	abs := AbsPath(base, p)
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return abs
	}
	return rel
}
