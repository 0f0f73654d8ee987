package resolver

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dbsmedya/deadfiles/internal/build"
)

func TestFromCompilation(t *testing.T) {
	c := &build.Compilation{
		FileDependencies: []string{"/repo/src/a.ts", "/repo/src/b.ts", "/repo/src/a.ts"},
		Assets: map[string]build.Asset{
			"static/logo.png": {ExistsAt: "/repo/static/logo.png"},
			"main.js":         {},
			"copy.txt":        {ExistsAt: "/repo/src/a.ts"},
			"odd.bin":         {ExistsAt: 12},
		},
	}

	used := FromCompilation(c)

	assert.Equal(t, 3, used.Len())
	assert.True(t, used.Has("/repo/src/a.ts"))
	assert.True(t, used.Has("/repo/src/b.ts"))
	assert.True(t, used.Has("/repo/static/logo.png"))
}

func TestFromCompilation_LeavesPathsUntouched(t *testing.T) {
	c := &build.Compilation{
		FileDependencies: []string{"relative/a.ts", "/repo/src/../b.ts"},
	}

	used := FromCompilation(c)

	assert.Equal(t, []string{"relative/a.ts", "/repo/src/../b.ts"}, used.Paths())
}

func TestFromCompilation_Empty(t *testing.T) {
	used := FromCompilation(&build.Compilation{})
	assert.Equal(t, 0, used.Len())
}

func TestFromReport(t *testing.T) {
	cwd := filepath.FromSlash("/repo")
	report := &build.Report{Modules: []build.Module{
		build.NamedModule("./src/a.ts"),
		build.NamedModule("./node_modules/lib/x.js"),
		{},
		build.NamedModule("webpack/runtime/define property getters"),
		build.NamedModule("./~/lodash/index.js"),
		build.NamedModule("./src/a.ts"),
		build.NamedModule("./src/my-node_modules-helper.ts"),
	}}

	used := FromReport(report, cwd, DefaultVendorMarkers)

	assert.Equal(t, []string{
		filepath.Join(cwd, "src", "a.ts"),
		filepath.Join(cwd, "src", "my-node_modules-helper.ts"),
	}, used.Paths())
}

func TestFromReport_ConcatenatedModules(t *testing.T) {
	cwd := filepath.FromSlash("/repo")
	name := "./src/index.ts + 2 modules"
	report := &build.Report{Modules: []build.Module{
		{
			Name: &name,
			Modules: []build.Module{
				build.NamedModule("./src/index.ts"),
				build.NamedModule("./src/util.ts"),
				build.NamedModule("./node_modules/tslib/tslib.es6.js"),
			},
		},
	}}

	used := FromReport(report, cwd, DefaultVendorMarkers)

	assert.Equal(t, []string{
		filepath.Join(cwd, "src", "index.ts"),
		filepath.Join(cwd, "src", "util.ts"),
	}, used.Paths())
}

func TestFromReport_NilModules(t *testing.T) {
	used := FromReport(&build.Report{}, "/repo", DefaultVendorMarkers)
	assert.Equal(t, 0, used.Len())
}

func TestFromReport_CustomMarkers(t *testing.T) {
	report := &build.Report{Modules: []build.Module{
		build.NamedModule("./vendor/a.js"),
		build.NamedModule("./node_modules/b.js"),
	}}

	used := FromReport(report, "/repo", []string{"vendor"})

	assert.Equal(t, []string{filepath.Join("/repo", "node_modules", "b.js")}, used.Paths())
}

func TestHasVendorSegment(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"./node_modules/pkg/index.js", true},
		{"./packages/app/node_modules/pkg/index.js", true},
		{`.\node_modules\pkg\index.js`, true},
		{"./~/pkg/index.js", true},
		{"./src/my-node_modules-helper.ts", false},
		{"./src/node_modules.ts", false},
		{"./src/~backup.ts", false},
		{"./src/index.ts", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasVendorSegment(tt.name, DefaultVendorMarkers))
		})
	}
}
