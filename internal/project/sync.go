package project

import (
	"context"
	"fmt"
	"strings"

	mocerrors "mocotch.dev/mocotch/internal/errors"
	"mocotch.dev/mocotch/internal/git"
)

// Pull fast-forwards the tracked branch from origin. Without a remote there is
// nothing to pull from and the result is PreconditionFailure. Diverged
// history, conflicts and transport errors are BackendFailure; nothing is
// merged or resolved automatically.
func (h *Handle) Pull(ctx context.Context) Result {
	log := h.log.With("op", "pull", "branch", h.branch)
	if h.repo == nil {
		log.Error("repository handle is not bound")
		return PreconditionFailure
	}
	if !h.HasRemote() {
		log.Error("no remote configured", "remote", git.DefaultRemote)
		return PreconditionFailure
	}

	current, err := h.repo.GetCurrentBranch()
	if err != nil || current != h.branch {
		log.Error("tracked branch is not checked out", "checked_out", current)
		return PreconditionFailure
	}

	if err := h.checkIncoming(ctx); err != nil {
		log.Error("pull refused",
			"failure", git.Classify(err).String(),
			"error", err)
		return BackendFailure
	}

	res, err := h.repo.PullBranch(ctx, git.DefaultRemote, h.branch)
	if err != nil {
		log.Error("pull failed",
			"result", res.String(),
			"failure", git.Classify(err).String(),
			"error", err)
		return BackendFailure
	}

	log.Info("pull succeeded", "result", res.String())
	return Success
}

// checkIncoming fetches the tracked branch and fails when the incoming
// commits would replace untracked files. go-git's fast-forward overwrites
// them silently.
func (h *Handle) checkIncoming(ctx context.Context) error {
	target, err := h.repo.FetchBranch(ctx, git.DefaultRemote, h.branch)
	if err != nil {
		return err
	}
	incoming, err := h.repo.HasIncoming(target)
	if err != nil || !incoming {
		return err
	}

	st, err := h.repo.Status()
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

// Push pushes the tracked branch to the identically named branch on origin
// and sets it as upstream. A project without a remote is purely local and the
// push is a successful no-op. Rejections are not retried.
func (h *Handle) Push(ctx context.Context) Result {
	log := h.log.With("op", "push", "branch", h.branch)
	if h.repo == nil {
		log.Error("repository handle is not bound")
		return PreconditionFailure
	}
	if !h.HasRemote() {
		log.Info("no remote configured, nothing to push")
		return Success
	}

	if err := h.repo.PushBranch(ctx, git.DefaultRemote, h.branch); err != nil {
		log.Error("push failed", "failure", git.Classify(err).String(), "error", err)
		return BackendFailure
	}

	log.Info("push succeeded", "remote", git.DefaultRemote)
	return Success
}
