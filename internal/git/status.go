package git

import (
	"fmt"
	"path"
	"slices"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// WorktreeStatus is a snapshot of the working tree against the index and HEAD
type WorktreeStatus struct {
	// Modified lists tracked paths with staged or unstaged changes,
	// including deletions
	Modified []string
	// Untracked lists paths not under version control (ignored paths excluded)
	Untracked []string
}

// IsClean reports whether there are no tracked changes and no untracked files
func (s WorktreeStatus) IsClean() bool {
	return len(s.Modified) == 0 && len(s.Untracked) == 0
}

// Status computes the working tree status. Paths are relative to the
// repository root and slash separated. go-git reports status as a map, so
// both lists are sorted by path.
func (r *Repository) Status() (WorktreeStatus, error) {
	w, err := r.Worktree()
	if err != nil {
		return WorktreeStatus{}, fmt.Errorf("failed to get worktree: %w", err)
	}

	st, err := w.Status()
	if err != nil {
		return WorktreeStatus{}, fmt.Errorf("failed to get status: %w", err)
	}

	result := WorktreeStatus{
		Modified:  []string{},
		Untracked: []string{},
	}
	for path, fs := range st {
		switch {
		case fs.Worktree == git.Untracked:
			result.Untracked = append(result.Untracked, path)
		case fs.Staging != git.Unmodified || fs.Worktree != git.Unmodified:
			result.Modified = append(result.Modified, path)
		}
	}

	slices.Sort(result.Modified)
	slices.Sort(result.Untracked)
	return result, nil
}

// UntrackedOverwrites returns the untracked paths that checking out target
// would replace: paths target tracks as a file or a directory, and paths
// below a file target tracks.
func (r *Repository) UntrackedOverwrites(target plumbing.Hash, untracked []string) ([]string, error) {
	if len(untracked) == 0 {
		return nil, nil
	}

	commit, err := r.CommitObject(target)
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", ShortHash(target), err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to read tree of %s: %w", ShortHash(target), err)
	}

	var overwritten []string
	for _, p := range untracked {
		if tracksPath(tree, p) {
			overwritten = append(overwritten, p)
		}
	}
	return overwritten, nil
}

func tracksPath(tree *object.Tree, p string) bool {
	if _, err := tree.FindEntry(p); err == nil {
		return true
	}
	for dir := path.Dir(p); dir != "." && dir != "/"; dir = path.Dir(dir) {
		entry, err := tree.FindEntry(dir)
		if err != nil {
			continue
		}
		return entry.Mode != filemode.Dir
	}
	return false
}
