// Package errors provides sentinel errors and custom error types for mocotch.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrNotBound indicates an operation that requires a bound repository handle
	// was invoked on an unbound one
	ErrNotBound = errors.New("repository handle is not bound")

	// ErrDirtyWorktree indicates the working tree has uncommitted changes
	ErrDirtyWorktree = errors.New("working tree has uncommitted changes")

	// ErrProjectExists indicates that the project directory already exists
	ErrProjectExists = errors.New("project already exists")

	// ErrProjectNotFound indicates that the project directory does not hold a repository
	ErrProjectNotFound = errors.New("project not found")

	// ErrNoRemote indicates that no remote is configured
	ErrNoRemote = errors.New("no remote configured")

	// ErrBranchNotFound indicates that a branch does not exist
	ErrBranchNotFound = errors.New("branch not found")

	// ErrInvalidName indicates a project or branch name that cannot be used
	ErrInvalidName = errors.New("invalid name")

	// ErrPreconditionFailed indicates an operation was refused before the
	// repository was touched
	ErrPreconditionFailed = errors.New("precondition not met")

	// ErrBackendFailed indicates git reported an error; details are in the log
	ErrBackendFailed = errors.New("git operation failed, see log for details")
)

// CheckoutError is returned by branch selection when a checkout could not be
// completed. Callers must treat it as fatal to the enclosing operation.
type CheckoutError struct {
	Branch string
	Path   string
	Err    error
}

func (e *CheckoutError) Error() string {
	return fmt.Sprintf("checkout of branch %s in %s failed: %v", e.Branch, e.Path, e.Err)
}

func (e *CheckoutError) Unwrap() error {
	return e.Err
}

// NewCheckoutError creates a new CheckoutError
func NewCheckoutError(branch, path string, err error) *CheckoutError {
	return &CheckoutError{Branch: branch, Path: path, Err: err}
}

// BackendError represents a failure reported by the version-control backend
type BackendError struct {
	Op     string
	Path   string
	Branch string
	Err    error
}

func (e *BackendError) Error() string {
	msg := fmt.Sprintf("git %s failed", e.Op)
	if e.Branch != "" {
		msg += fmt.Sprintf(" (branch: %s)", e.Branch)
	}
	if e.Path != "" {
		msg += fmt.Sprintf(" in %s", e.Path)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// NewBackendError creates a new BackendError
func NewBackendError(op, path, branch string, err error) *BackendError {
	return &BackendError{
		Op:     op,
		Path:   path,
		Branch: branch,
		Err:    err,
	}
}
