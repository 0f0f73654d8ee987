// Package config provides configuration structures and loading for deadfiles.
package config

// DefaultConfigFile is the config file looked up when none is named.
const DefaultConfigFile = "deadfiles.yaml"

// Config represents the complete application configuration.
type Config struct {
	Check   CheckConfig   `yaml:"check" mapstructure:"check"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// CheckConfig controls which files are checked and how unused files are treated.
type CheckConfig struct {
	Patterns         []string `yaml:"patterns" mapstructure:"patterns"`
	FailOnUnused     bool     `yaml:"fail_on_unused" mapstructure:"fail_on_unused"`
	Ignore           []string `yaml:"ignore" mapstructure:"ignore"`
	VendorMarkers    []string `yaml:"vendor_markers" mapstructure:"vendor_markers"`
	Dot              bool     `yaml:"dot" mapstructure:"dot"`
	NoDir            bool     `yaml:"no_dir" mapstructure:"no_dir"`
	WorkingDirectory string   `yaml:"working_directory" mapstructure:"working_directory"` // empty means the process working directory
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	Format  string `yaml:"format" mapstructure:"format"`   // text or json
	Summary bool   `yaml:"summary" mapstructure:"summary"` // print sizes to stderr
	Color   string `yaml:"color" mapstructure:"color"`     // auto, always, never
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Check: CheckConfig{
			Patterns:      []string{"**/*.*"},
			FailOnUnused:  true,
			Ignore:        []string{"node_modules/**/*"},
			VendorMarkers: []string{"node_modules", "~"},
		},
		Output: OutputConfig{
			Format: "text",
			Color:  "auto",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
