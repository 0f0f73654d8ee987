// Package build describes the data a bundling build hands to deadfiles: the
// serialized stats report and the in-memory compilation record.
package build

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrMalformedReport is returned when a report or compilation cannot be decoded.
var ErrMalformedReport = errors.New("malformed build report")

// Report is a build stats report, as written by `webpack --json`.
type Report struct {
	Modules []Module `json:"modules,omitempty"`
}

// Module is one entry of a report's module list.
type Module struct {
	Name    *string  `json:"name,omitempty"`
	Modules []Module `json:"modules,omitempty"` // concatenated (scope-hoisted) modules
}

// NamedModule returns a Module with the given name.
func NamedModule(name string) Module {
	return Module{Name: &name}
}

// AllModules returns every module of the report in pre-order, including the
// modules nested inside concatenated ones.
func (r *Report) AllModules() []Module {
	if r == nil {
		return nil
	}
	var out []Module
	var walk func([]Module)
	walk = func(mods []Module) {
		for _, m := range mods {
			out = append(out, m)
			walk(m.Modules)
		}
	}
	walk(r.Modules)
	return out
}

// Asset is an emitted output artifact. ExistsAt, when it holds a string, is
// the absolute path of the source file the asset was copied from.
type Asset struct {
	ExistsAt any `json:"existsAt,omitempty"`
}

// SourcePath returns ExistsAt when it is a string.
func (a Asset) SourcePath() (string, bool) {
	s, ok := a.ExistsAt.(string)
	return s, ok
}

// Compilation is the record of a finished build.
type Compilation struct {
	Context          string           `json:"context"`
	Bail             bool             `json:"bail"`
	FileDependencies []string         `json:"fileDependencies"`
	Assets           map[string]Asset `json:"assets"`
}

// DecodeReport reads a complete JSON report from r.
func DecodeReport(r io.Reader) (*Report, error) {
	var report Report
	if err := decode(r, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// DecodeCompilation reads a complete JSON compilation record from r.
func DecodeCompilation(r io.Reader) (*Compilation, error) {
	var c Compilation
	if err := decode(r, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func decode(r io.Reader, v any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedReport, err)
	}
	return nil
}
