package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"

	mocerrors "mocotch.dev/mocotch/internal/errors"
)

const (
	// MaxBranchNameByteLength is the maximum length for a branch name. Git refs
	// are limited to 256 bytes and the longest ref a tracked branch gets is
	// "refs/remotes/origin/<name>" (20 bytes of prefix).
	MaxBranchNameByteLength = 236

	// MaxProjectNameLength keeps project directory names portable
	MaxProjectNameLength = 128
)

var (
	// BranchNameReplaceRegex matches characters that are not valid in branch names
	// Valid characters: letters, numbers, -, _, /, .
	BranchNameReplaceRegex = regexp.MustCompile(`[^-_/.a-zA-Z0-9]+`)

	// BranchNameIgnoreRegex matches trailing slashes and dots that should be removed
	BranchNameIgnoreRegex = regexp.MustCompile(`[/.]*$`)

	hyphenRegex = regexp.MustCompile(`-+`)

	// projectNameRegex: a single path element, no leading dot
	projectNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][-_.a-zA-Z0-9]*$`)
)

// SanitizeBranchName sanitizes a branch name by replacing invalid characters
func SanitizeBranchName(name string) string {
	// Remove trailing slashes and dots
	name = BranchNameIgnoreRegex.ReplaceAllString(name, "")

	// Replace invalid characters with hyphens
	name = BranchNameReplaceRegex.ReplaceAllString(name, "-")

	// Remove multiple consecutive hyphens
	name = hyphenRegex.ReplaceAllString(name, "-")

	// Trim leading/trailing hyphens
	name = strings.Trim(name, "-")

	// Limit length
	if len(name) > MaxBranchNameByteLength {
		name = name[:MaxBranchNameByteLength]
		// Trim trailing hyphen if we cut at a hyphen
		name = strings.TrimSuffix(name, "-")
	}

	return name
}

// ValidateBranchName rejects names that would not survive sanitization
// unchanged or that git refuses as a ref name
func ValidateBranchName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: branch name is empty", mocerrors.ErrInvalidName)
	}

	if sanitized := SanitizeBranchName(name); sanitized != name {
		if sanitized == "" {
			return fmt.Errorf("%w: branch name %q", mocerrors.ErrInvalidName, name)
		}
		return fmt.Errorf("%w: branch name %q (try %q)", mocerrors.ErrInvalidName, name, sanitized)
	}

	if err := plumbing.NewBranchReferenceName(name).Validate(); err != nil {
		return fmt.Errorf("%w: branch name %q: %v", mocerrors.ErrInvalidName, name, err)
	}
	return nil
}

// ValidateProjectName ensures name is usable as a single directory below the
// projects root
func ValidateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: project name is empty", mocerrors.ErrInvalidName)
	}
	if len(name) > MaxProjectNameLength {
		return fmt.Errorf("%w: project name longer than %d characters", mocerrors.ErrInvalidName, MaxProjectNameLength)
	}
	if !projectNameRegex.MatchString(name) {
		return fmt.Errorf("%w: project name %q may only contain letters, digits, '-', '_' and '.' and must not start with a dot", mocerrors.ErrInvalidName, name)
	}
	return nil
}
