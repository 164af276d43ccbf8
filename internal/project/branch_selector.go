package project

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"

	mocerrors "mocotch.dev/mocotch/internal/errors"
	"mocotch.dev/mocotch/internal/git"
)

// branchState is the checkout decision for the tracked branch, in priority order
type branchState int

const (
	// branchLocal: a local branch exists, check it out as is
	branchLocal branchState = iota
	// branchRemote: origin advertises the branch, create a tracking branch
	branchRemote
	// branchCreate: create the branch from HEAD
	branchCreate
	// branchNone: no commits yet, nothing to check out
	branchNone
)

func (s branchState) String() string {
	switch s {
	case branchLocal:
		return "local"
	case branchRemote:
		return "remote-tracking"
	case branchCreate:
		return "create"
	default:
		return "none"
	}
}

// resolveBranchState decides how the named branch gets checked out
func (h *Handle) resolveBranchState(name string) (branchState, error) {
	exists, err := h.repo.LocalBranchExists(name)
	if err != nil {
		return branchNone, err
	}
	if exists {
		return branchLocal, nil
	}

	hasRemote, err := h.repo.HasRemote(git.DefaultRemote)
	if err != nil {
		return branchNone, err
	}
	if hasRemote {
		remoteBranches, err := h.repo.RemoteTrackingBranches(git.DefaultRemote)
		if err != nil {
			return branchNone, err
		}
		if _, ok := remoteBranches[name]; ok {
			return branchRemote, nil
		}
	}

	hasBranches, err := h.repo.HasBranches()
	if err != nil {
		return branchNone, err
	}
	if hasBranches {
		return branchCreate, nil
	}
	return branchNone, nil
}

// selectBranch makes the tracked branch the checked out one. A non-nil error
// is always a *errors.CheckoutError and means the repository may not be on
// the tracked branch; callers must fail the enclosing operation.
func (h *Handle) selectBranch() error {
	if h.repo == nil {
		return nil
	}
	name := h.branch
	log := h.log.With("op", "checkout", "branch", name)

	if current, err := h.repo.GetCurrentBranch(); err == nil && current == name {
		log.Debug("branch already checked out")
		return nil
	}

	state, err := h.resolveBranchState(name)
	if err != nil {
		log.Error("failed to resolve branch", "error", err)
		return mocerrors.NewCheckoutError(name, h.path, err)
	}
	if state == branchNone {
		log.Info("repository has no commits, checkout deferred")
		return nil
	}

	// go-git moves HEAD before it refuses a dirty worktree and overwrites
	// untracked files the target tracks, so refuse first
	if err := h.checkoutBlocked(state); err != nil {
		log.Error("local changes block checkout", "state", state.String(), "error", err)
		return mocerrors.NewCheckoutError(name, h.path, err)
	}

	switch state {
	case branchLocal:
		err = h.repo.CheckoutBranch(name)
	case branchRemote:
		err = h.repo.CreateTrackingBranch(name, git.DefaultRemote)
	case branchCreate:
		err = h.repo.CreateAndCheckoutBranch(name)
	}
	if err != nil {
		log.Error("branch checkout failed",
			"state", state.String(),
			"failure", git.Classify(err).String(),
			"error", err)
		return mocerrors.NewCheckoutError(name, h.path, err)
	}

	switch state {
	case branchLocal:
		log.Info("checked out branch")
	case branchRemote:
		log.Info("created local branch from remote branch", "remote", git.DefaultRemote)
	case branchCreate:
		log.Info("created new branch")
	}
	return nil
}

// checkoutBlocked returns ErrDirtyWorktree when tracked files are modified or
// when the commit being checked out tracks a path that exists untracked.
// Creating a branch at HEAD leaves the tree alone, so only tracked changes
// count there.
func (h *Handle) checkoutBlocked(state branchState) error {
	st, err := h.repo.Status()
	if err != nil {
		return err
	}
	if len(st.Modified) > 0 {
		return mocerrors.ErrDirtyWorktree
	}

	var target plumbing.Hash
	switch state {
	case branchLocal:
		target, err = h.repo.BranchHash(h.branch)
	case branchRemote:
		target, err = h.repo.RemoteBranchHash(git.DefaultRemote, h.branch)
	default:
		return nil
	}
	if err != nil {
		return err
	}

	overwritten, err := h.repo.UntrackedOverwrites(target, st.Untracked)
	if err != nil {
		return err
	}
	if len(overwritten) > 0 {
		return fmt.Errorf("%w: untracked files would be overwritten: %s",
			mocerrors.ErrDirtyWorktree, strings.Join(overwritten, ", "))
	}
	return nil
}
