package project

import (
	"mocotch.dev/mocotch/internal/git"
)

// CommitAll stages every change in the working tree, untracked files
// included, and commits it under the anonymous identity. A clean tree is a
// successful no-op. Panics if the handle is unbound.
func (h *Handle) CommitAll(message string) Result {
	h.mustBeBound("commit")
	log := h.log.With("op", "commit", "branch", h.branch)

	if err := h.repo.StageAll(); err != nil {
		log.Error("failed to stage changes", "error", err)
		return BackendFailure
	}

	st, err := h.repo.Status()
	if err != nil {
		log.Error("failed to inspect worktree", "error", err)
		return BackendFailure
	}
	if st.IsClean() {
		log.Info("nothing to commit")
		return Success
	}

	hash, err := h.repo.Commit(git.CommitOptions{
		Message: message,
		Author:  anonymous,
	})
	if err != nil {
		log.Error("commit failed", "error", err)
		return BackendFailure
	}

	log.Info("commit created", "commit", git.ShortHash(hash), "files", len(st.Modified)+len(st.Untracked))
	return Success
}
