package project

// SwitchBranch makes name the tracked branch and checks it out. A dirty
// working tree (modified or untracked files) is refused, never stashed or
// discarded. If the checkout fails the previous tracked branch is kept.
func (h *Handle) SwitchBranch(name string) Result {
	log := h.log.With("op", "switch", "branch", name)
	if h.repo == nil {
		log.Error("repository handle is not bound")
		return PreconditionFailure
	}

	st, err := h.repo.Status()
	if err != nil {
		log.Error("failed to get status", "error", err)
		return BackendFailure
	}
	if !st.IsClean() {
		log.Error("uncommitted changes present, commit or discard them first",
			"modified", len(st.Modified),
			"untracked", len(st.Untracked))
		return PreconditionFailure
	}

	previous := h.branch
	h.branch = name
	if err := h.selectBranch(); err != nil {
		h.branch = previous
		return BackendFailure
	}

	log.Info("switched branch", "from", previous)
	return Success
}
