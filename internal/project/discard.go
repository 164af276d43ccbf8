package project

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// DiscardChanges reverts every tracked file to its committed content and
// deletes every untracked file. The revert is a single backend call; if it
// fails nothing is deleted. Deletion is best effort: all files are attempted
// and any failure makes the result BackendFailure. Files that vanished in the
// meantime are skipped.
func (h *Handle) DiscardChanges() Result {
	log := h.log.With("op", "discard", "branch", h.branch)
	if h.repo == nil {
		return PreconditionFailure
	}

	before, err := h.repo.Status()
	if err != nil {
		log.Error("failed to get status", "error", err)
		return BackendFailure
	}

	if err := h.repo.RestoreTracked(before.Modified); err != nil {
		log.Error("failed to revert tracked files", "files", len(before.Modified), "error", err)
		return BackendFailure
	}

	after, err := h.repo.Status()
	if err != nil {
		log.Error("failed to get status", "error", err)
		return BackendFailure
	}

	result := Success
	for _, rel := range after.Untracked {
		err := os.Remove(filepath.Join(h.path, filepath.FromSlash(rel)))
		switch {
		case err == nil:
			log.Info("deleted untracked file", "file", rel)
		case errors.Is(err, fs.ErrNotExist):
		default:
			log.Error("failed to delete untracked file", "file", rel, "error", err)
			result = BackendFailure
		}
	}

	if result.OK() {
		log.Info("all changes discarded", "reverted", len(before.Modified))
	}
	return result
}
