// Package git provides low-level Git operations for project repositories.
//
// It wraps go-git and provides a Go-friendly interface for:
//   - Repository lifecycle (open, init, clone)
//   - Branch management (local branches, remote-tracking branches, checkout)
//   - Recording changes (stage, commit, status, restore)
//   - Remote operations (push, pull)
//
// This package should be the only place where the git backend is used directly.
package git
