package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dbsmedya/deadfiles/internal/reporter"
)

func TestExecute(t *testing.T) {
	// Execute() calls os.Exit on error, so only its presence is checked here.
	assert.NotNil(t, Execute)
}

func TestVersionVariables(t *testing.T) {
	assert.NotEmpty(t, Version, "Version should not be empty")
	assert.NotEmpty(t, Commit, "Commit should not be empty")
}

func TestCLIFlagsVariables(t *testing.T) {
	assert.Equal(t, "deadfiles.yaml", cfgFile, "cfgFile should default to deadfiles.yaml")
	assert.Equal(t, "", logLevel)
	assert.Equal(t, "", logFormat)
	assert.Equal(t, "", workDir)
	assert.Equal(t, "", outputFormat)
	assert.False(t, summary)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"generic error", errors.New("boom"), exitFailure},
		{"unused sentinel", ErrUnusedFiles, exitUnused},
		{"wrapped sentinel", fmt.Errorf("check: %w", ErrUnusedFiles), exitUnused},
		{"unused files error", &reporter.UnusedFilesError{Files: []string{"a.js"}}, exitUnused},
		{"wrapped unused files error", fmt.Errorf("build aborted: %w", &reporter.UnusedFilesError{}), exitUnused},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
