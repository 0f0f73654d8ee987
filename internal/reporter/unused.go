// Package reporter computes which matched files a build left unused and
// decides how the result is surfaced.
package reporter

import (
	"fmt"
	"strings"

	"github.com/dbsmedya/deadfiles/internal/types"
)

// UnusedFilesError reports files that no build step consumed.
type UnusedFilesError struct {
	Files []string
}

func (e *UnusedFilesError) Error() string {
	return fmt.Sprintf("found some unused files:\n%s", strings.Join(e.Files, "\n"))
}

// Unused returns the entries of matched whose absolute form is not in used.
// Both sides are resolved against cwd before comparing, so a relative path on
// one side never mismatches its absolute twin on the other. Entries keep the
// form and order they had in matched; repeated entries are reported once.
func Unused(matched []string, used *types.PathSet, cwd string) []string {
	usedAbs := used.Map(func(p string) string {
		return types.AbsPath(cwd, p)
	})

	seen := types.NewPathSet()
	var out []string
	for _, m := range matched {
		abs := types.AbsPath(cwd, m)
		if usedAbs.Has(abs) || !seen.Add(abs) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Check returns an *UnusedFilesError when any matched file is unused, and nil
// otherwise.
func Check(matched []string, used *types.PathSet, cwd string) *UnusedFilesError {
	unused := Unused(matched, used, cwd)
	if len(unused) == 0 {
		return nil
	}
	return &UnusedFilesError{Files: unused}
}

// Outcome is what the host build should do with a check result.
type Outcome int

const (
	// OutcomeNone means every matched file was used.
	OutcomeNone Outcome = iota
	// OutcomeAbort means the build step must fail with the error.
	OutcomeAbort
	// OutcomeError means the error goes to the build's error list.
	OutcomeError
	// OutcomeWarning means the error goes to the build's warning list.
	OutcomeWarning
)

// String returns a human-readable representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeAbort:
		return "abort"
	case OutcomeError:
		return "error"
	case OutcomeWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Decide maps a check result onto an outcome. A failing check aborts only
// when failOnUnused is set and the host halts on its first error.
func Decide(found *UnusedFilesError, failOnUnused, bail bool) Outcome {
	switch {
	case found == nil:
		return OutcomeNone
	case failOnUnused && bail:
		return OutcomeAbort
	case failOnUnused:
		return OutcomeError
	default:
		return OutcomeWarning
	}
}
