package git

import (
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// CommitOptions contains options for creating a commit
type CommitOptions struct {
	Message string
	Author  Identity
	// When defaults to the current time
	When time.Time
}

// Commit records the index as a new commit on HEAD and returns its hash.
// The author is also used as committer.
func (r *Repository) Commit(opts CommitOptions) (plumbing.Hash, error) {
	w, err := r.Worktree()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to get worktree: %w", err)
	}

	when := opts.When
	if when.IsZero() {
		when = time.Now()
	}
	sig := opts.Author.Signature(when)

	hash, err := w.Commit(opts.Message, &git.CommitOptions{
		Author:    sig,
		Committer: sig,
	})
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to commit: %w", err)
	}
	return hash, nil
}
