package git

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
)

// PullResult represents the result of a pull operation
type PullResult int

const (
	// PullDone indicates the pull was successful
	PullDone PullResult = iota
	// PullUnneeded indicates no pull was needed
	PullUnneeded
	// PullConflict indicates the histories diverged and nothing was merged
	PullConflict
	// PullFailed indicates the pull failed for another reason
	PullFailed
)

func (p PullResult) String() string {
	switch p {
	case PullDone:
		return "done"
	case PullUnneeded:
		return "unneeded"
	case PullConflict:
		return "conflict"
	default:
		return "failed"
	}
}

// PullBranch fetches branchName from remote and fast-forwards the checked out
// branch to it. Diverged histories are reported as PullConflict with
// ErrNonFastForwardUpdate; no merge is attempted.
func (r *Repository) PullBranch(ctx context.Context, remote, branchName string) (PullResult, error) {
	w, err := r.Worktree()
	if err != nil {
		return PullFailed, fmt.Errorf("failed to get worktree: %w", err)
	}

	err = w.PullContext(ctx, &git.PullOptions{
		RemoteName:    remote,
		ReferenceName: plumbing.NewBranchReferenceName(branchName),
		SingleBranch:  true,
	})
	switch {
	case err == nil:
		return PullDone, nil
	case errors.Is(err, git.NoErrAlreadyUpToDate):
		return PullUnneeded, nil
	case errors.Is(err, git.ErrNonFastForwardUpdate):
		return PullConflict, fmt.Errorf("failed to pull %s/%s: %w", remote, branchName, err)
	default:
		return PullFailed, fmt.Errorf("failed to pull %s/%s: %w", remote, branchName, err)
	}
}

// FetchBranch updates refs/remotes/<remote>/<branchName> and returns the
// commit it points at
func (r *Repository) FetchBranch(ctx context.Context, remote, branchName string) (plumbing.Hash, error) {
	refSpec := config.RefSpec(fmt.Sprintf("+refs/heads/%s:refs/remotes/%s/%s", branchName, remote, branchName))
	err := r.FetchContext(ctx, &git.FetchOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{refSpec},
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return plumbing.ZeroHash, fmt.Errorf("failed to fetch %s/%s: %w", remote, branchName, err)
	}
	return r.RemoteBranchHash(remote, branchName)
}

// HasIncoming reports whether target holds commits HEAD does not contain
func (r *Repository) HasIncoming(target plumbing.Hash) (bool, error) {
	head, err := r.Head()
	if err != nil {
		return false, fmt.Errorf("failed to get HEAD: %w", err)
	}
	if head.Hash() == target {
		return false, nil
	}

	incoming, err := r.CommitObject(target)
	if err != nil {
		return false, fmt.Errorf("failed to read commit %s: %w", ShortHash(target), err)
	}
	local, err := r.CommitObject(head.Hash())
	if err != nil {
		return false, fmt.Errorf("failed to read commit %s: %w", ShortHash(head.Hash()), err)
	}
	contained, err := incoming.IsAncestor(local)
	if err != nil {
		return false, fmt.Errorf("failed to compare history: %w", err)
	}
	return !contained, nil
}
