package git

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
)

// PushBranch pushes refs/heads/<branchName> to the identically named branch on
// remote and records remote as its upstream if none is set yet.
// An already up-to-date remote is not an error.
func (r *Repository) PushBranch(ctx context.Context, remote, branchName string) error {
	refSpec := config.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", branchName, branchName))
	if err := refSpec.Validate(); err != nil {
		return fmt.Errorf("invalid refspec for branch %s: %w", branchName, err)
	}

	err := r.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{refSpec},
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to push branch %s: %w", branchName, err)
	}

	return r.SetUpstream(branchName, remote)
}
