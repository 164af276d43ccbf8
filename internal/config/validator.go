package config

import (
	"fmt"
	"strings"

	"mocotch.dev/mocotch/internal/utils"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config key (e.g., "log.max_size")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Validate checks the configuration and returns every problem found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(c.ProjectsDir) == "" {
		errs = append(errs, ValidationError{Field: "projects_dir", Value: c.ProjectsDir, Message: "must not be empty"})
	}
	if err := utils.ValidateBranchName(c.DefaultBranch); err != nil {
		errs = append(errs, ValidationError{Field: "default_branch", Value: c.DefaultBranch, Message: "must be a valid branch name"})
	}
	if err := utils.ValidateBranchName(c.InitialBranch); err != nil {
		errs = append(errs, ValidationError{Field: "initial_branch", Value: c.InitialBranch, Message: "must be a valid branch name"})
	}

	if c.Log.MaxSize < 1 {
		errs = append(errs, ValidationError{Field: "log.max_size", Value: c.Log.MaxSize, Message: "must be at least 1"})
	}
	if c.Log.MaxBackups < 0 {
		errs = append(errs, ValidationError{Field: "log.max_backups", Value: c.Log.MaxBackups, Message: "must not be negative"})
	}
	if c.Log.MaxAge < 1 {
		errs = append(errs, ValidationError{Field: "log.max_age", Value: c.Log.MaxAge, Message: "must be at least 1"})
	}

	return errs
}
