package project

// ChangeSet is a snapshot of the working tree. Paths are relative to the
// project root and sorted, since the backend reports status without a
// meaningful order.
type ChangeSet struct {
	Modified  []string
	Untracked []string
}

// HasChanges reports whether any tracked file is modified or any untracked
// file exists
func (c ChangeSet) HasChanges() bool {
	return len(c.Modified) > 0 || len(c.Untracked) > 0
}

func emptyChangeSet() ChangeSet {
	return ChangeSet{Modified: []string{}, Untracked: []string{}}
}

// Status reports modified and untracked paths. It never fails: an unbound
// handle or a backend error yields an empty ChangeSet.
func (h *Handle) Status() ChangeSet {
	if h.repo == nil {
		return emptyChangeSet()
	}

	st, err := h.repo.Status()
	if err != nil {
		h.log.Error("failed to get status", "op", "status", "branch", h.branch, "error", err)
		return emptyChangeSet()
	}

	return ChangeSet{
		Modified:  st.Modified,
		Untracked: st.Untracked,
	}
}
