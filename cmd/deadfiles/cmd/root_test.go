package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigFile(t *testing.T) {
	originalCfgFile := cfgFile
	defer func() {
		cfgFile = originalCfgFile
	}()

	tests := []struct {
		name     string
		cfgValue string
		want     string
	}{
		{
			name:     "default config file",
			cfgValue: "deadfiles.yaml",
			want:     "deadfiles.yaml",
		},
		{
			name:     "custom config file",
			cfgValue: "/path/to/custom.yaml",
			want:     "/path/to/custom.yaml",
		},
		{
			name:     "config file with spaces",
			cfgValue: "/path/to/my config.yaml",
			want:     "/path/to/my config.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgFile = tt.cfgValue
			assert.Equal(t, tt.want, GetConfigFile())
		})
	}
}

func TestGetCLIOverrides(t *testing.T) {
	originalLogLevel := logLevel
	originalLogFormat := logFormat
	originalWorkDir := workDir
	originalOutputFormat := outputFormat
	originalSummary := summary
	defer func() {
		logLevel = originalLogLevel
		logFormat = originalLogFormat
		workDir = originalWorkDir
		outputFormat = originalOutputFormat
		summary = originalSummary
	}()

	tests := []struct {
		name         string
		logLevel     string
		logFormat    string
		workDir      string
		outputFormat string
		summary      bool
		want         CLIOverrides
	}{
		{
			name: "empty overrides",
			want: CLIOverrides{},
		},
		{
			name:      "logging overrides only",
			logLevel:  "debug",
			logFormat: "json",
			want: CLIOverrides{
				LogLevel:  "debug",
				LogFormat: "json",
			},
		},
		{
			name:         "all overrides",
			logLevel:     "warn",
			logFormat:    "text",
			workDir:      "/srv/app",
			outputFormat: "json",
			summary:      true,
			want: CLIOverrides{
				LogLevel:         "warn",
				LogFormat:        "text",
				WorkingDirectory: "/srv/app",
				OutputFormat:     "json",
				Summary:          true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logLevel = tt.logLevel
			logFormat = tt.logFormat
			workDir = tt.workDir
			outputFormat = tt.outputFormat
			summary = tt.summary
			assert.Equal(t, tt.want, GetCLIOverrides())
		})
	}
}

func TestRootCommandStructure(t *testing.T) {
	assert.Equal(t, "deadfiles", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage)

	for _, name := range []string{"config", "log-level", "log-format", "cwd", "format", "summary"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing flag %s", name)
	}

	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"report", "compilation", "watch", "validate", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestLoadRuntime_ExplicitConfigMustExist(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	_, _, err := executeCommand(t, "", "validate", "--config", missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestLoadRuntime_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "deadfiles.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output:\n  format: xml\n"), 0o644))

	_, _, err := executeCommand(t, "", "validate", "--config", cfgPath, "--cwd", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadRuntime_ConfigFileValues(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"src/a.js": "a",
		"src/b.ts": "b",
	})
	cfgPath := filepath.Join(t.TempDir(), "deadfiles.yaml")
	content := "check:\n" +
		"  patterns:\n" +
		"    - \"src/*.ts\"\n" +
		"  working_directory: " + dir + "\n" +
		"logging:\n" +
		"  level: error\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	stdout, _, err := executeCommand(t, "", "validate", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Working directory: "+dir)
	assert.Contains(t, stdout, "Patterns:          src/*.ts")
	assert.Contains(t, stdout, "Matched files:     1")
}
