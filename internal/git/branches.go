package git

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
)

// LocalBranchExists checks whether refs/heads/<name> exists
func (r *Repository) LocalBranchExists(name string) (bool, error) {
	_, err := r.Reference(plumbing.NewBranchReferenceName(name), false)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("failed to look up branch %s: %w", name, err)
}

// RemoteTrackingBranches returns the set of branch names the given remote
// advertises through local remote-tracking refs (refs/remotes/<remote>/*).
// The symbolic <remote>/HEAD ref is not included.
func (r *Repository) RemoteTrackingBranches(remote string) (map[string]struct{}, error) {
	refs, err := r.References()
	if err != nil {
		return nil, fmt.Errorf("failed to list references: %w", err)
	}
	defer refs.Close()

	prefix := remote + "/"
	branches := make(map[string]struct{})
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if !ref.Name().IsRemote() {
			return nil
		}
		short := ref.Name().Short()
		if !strings.HasPrefix(short, prefix) {
			return nil
		}
		name := strings.TrimPrefix(short, prefix)
		if name == "HEAD" {
			return nil
		}
		branches[name] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate references: %w", err)
	}

	return branches, nil
}

// CheckoutBranch checks out an existing local branch
func (r *Repository) CheckoutBranch(name string) error {
	w, err := r.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	err = w.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
	})
	if err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", name, err)
	}
	return nil
}

// CreateAndCheckoutBranch creates a new branch at HEAD and checks it out
func (r *Repository) CreateAndCheckoutBranch(name string) error {
	w, err := r.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	err = w.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Create: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create and checkout branch %s: %w", name, err)
	}
	return nil
}

// CreateTrackingBranch creates a local branch at <remote>/<name>, checks it
// out and records <remote> as its upstream.
func (r *Repository) CreateTrackingBranch(name, remote string) error {
	remoteRef, err := r.Reference(plumbing.NewRemoteReferenceName(remote, name), true)
	if err != nil {
		return fmt.Errorf("failed to resolve %s/%s: %w", remote, name, err)
	}

	w, err := r.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	err = w.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Hash:   remoteRef.Hash(),
		Create: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create branch %s from %s/%s: %w", name, remote, name, err)
	}

	return r.SetUpstream(name, remote)
}

// SetUpstream records remote/name as the upstream of the local branch name,
// unless an upstream is already configured.
func (r *Repository) SetUpstream(name, remote string) error {
	cfg, err := r.Config()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	if b, ok := cfg.Branches[name]; ok && b.Remote != "" {
		return nil
	}

	cfg.Branches[name] = &config.Branch{
		Name:   name,
		Remote: remote,
		Merge:  plumbing.NewBranchReferenceName(name),
	}
	if err := r.SetConfig(cfg); err != nil {
		return fmt.Errorf("failed to set upstream of %s: %w", name, err)
	}
	return nil
}

// Upstream returns the configured upstream remote of a local branch
func (r *Repository) Upstream(name string) (string, bool) {
	cfg, err := r.Config()
	if err != nil {
		return "", false
	}
	b, ok := cfg.Branches[name]
	if !ok || b.Remote == "" {
		return "", false
	}
	return b.Remote, true
}

// BranchHash returns the commit refs/heads/<name> points at
func (r *Repository) BranchHash(name string) (plumbing.Hash, error) {
	ref, err := r.Reference(plumbing.NewBranchReferenceName(name), true)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to resolve branch %s: %w", name, err)
	}
	return ref.Hash(), nil
}

// RemoteBranchHash returns the commit refs/remotes/<remote>/<name> points at
func (r *Repository) RemoteBranchHash(remote, name string) (plumbing.Hash, error) {
	ref, err := r.Reference(plumbing.NewRemoteReferenceName(remote, name), true)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to resolve %s/%s: %w", remote, name, err)
	}
	return ref.Hash(), nil
}
