package config

import (
	"fmt"
	"strings"

	"github.com/dbsmedya/deadfiles/internal/pattern"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateCheck()...)
	errors = append(errors, c.validateOutput()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateCheck() ValidationErrors {
	var errors ValidationErrors

	if len(c.Check.Patterns) == 0 {
		errors = append(errors, ValidationError{
			Field:   "check.patterns",
			Message: "at least one pattern is required",
		})
	}

	for i, p := range c.Check.Patterns {
		if err := pattern.Validate([]string{p}); err != nil {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("check.patterns[%d]", i),
				Message: err.Error(),
			})
		}
	}

	for i, p := range c.Check.Ignore {
		if err := pattern.Validate([]string{p}); err != nil {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("check.ignore[%d]", i),
				Message: err.Error(),
			})
		}
	}

	for i, m := range c.Check.VendorMarkers {
		if m == "" || strings.ContainsAny(m, `/\`) {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("check.vendor_markers[%d]", i),
				Message: "vendor marker must be a single non-empty path segment",
			})
		}
	}

	return errors
}

func (c *Config) validateOutput() ValidationErrors {
	var errors ValidationErrors

	validFormats := map[string]bool{"text": true, "json": true, "": true}
	if !validFormats[c.Output.Format] {
		errors = append(errors, ValidationError{
			Field:   "output.format",
			Message: "format must be 'text' or 'json'",
		})
	}

	validColors := map[string]bool{"auto": true, "always": true, "never": true, "": true}
	if !validColors[c.Output.Color] {
		errors = append(errors, ValidationError{
			Field:   "output.color",
			Message: "color must be 'auto', 'always', or 'never'",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
