package git

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// StageAll stages all changes including untracked files and deletions.
// Paths matched by .gitignore files are not staged.
func (r *Repository) StageAll() error {
	w, err := r.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	// AddOptions.All only honours w.Excludes, not the .gitignore files on disk
	patterns, err := gitignore.ReadPatterns(w.Filesystem, nil)
	if err != nil {
		return fmt.Errorf("failed to read ignore patterns: %w", err)
	}
	w.Excludes = append(w.Excludes, patterns...)

	if err := w.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("failed to stage all changes: %w", err)
	}
	return nil
}

// StageFile stages a single path relative to the repository root
func (r *Repository) StageFile(path string) error {
	w, err := r.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	if _, err := w.Add(path); err != nil {
		return fmt.Errorf("failed to stage %s: %w", path, err)
	}
	return nil
}
