package git

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// RestoreTracked resets the given tracked paths in both the index and the
// working tree to their content at HEAD. Only the listed paths are touched;
// untracked and ignored files are left alone.
func (r *Repository) RestoreTracked(paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	w, err := r.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	err = w.Restore(&git.RestoreOptions{
		Staged:   true,
		Worktree: true,
		Files:    paths,
	})
	if err != nil {
		return fmt.Errorf("failed to restore %d tracked paths: %w", len(paths), err)
	}
	return nil
}
