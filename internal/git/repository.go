package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// DefaultRemote is the only remote name the backend works with
const DefaultRemote = "origin"

// Repository wraps a go-git repository bound to one working tree
type Repository struct {
	*git.Repository
}

// OpenRepository opens the git repository rooted exactly at path.
// Unlike discovery, a repository in a parent directory is never used.
// Returns ErrRepositoryNotExists when path holds no repository.
func OpenRepository(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := git.PlainOpenWithOptions(absPath, &git.PlainOpenOptions{
		DetectDotGit: false,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, ErrRepositoryNotExists
		}
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	return &Repository{Repository: repo}, nil
}

// InitRepository creates the directory (including parents) and initializes an
// empty repository whose HEAD points at initialBranch.
func InitRepository(path, initialBranch string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	if err := os.MkdirAll(absPath, 0750); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	repo, err := git.PlainInitWithOptions(absPath, &git.PlainInitOptions{
		InitOptions: git.InitOptions{
			DefaultBranch: plumbing.NewBranchReferenceName(initialBranch),
		},
		Bare: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init repository: %w", err)
	}

	return &Repository{Repository: repo}, nil
}

// CloneRepository clones url into path. The path must not exist yet.
func CloneRepository(ctx context.Context, path, url string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := git.PlainCloneContext(ctx, absPath, false, &git.CloneOptions{
		URL:        url,
		RemoteName: DefaultRemote,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to clone %s: %w", url, err)
	}

	return &Repository{Repository: repo}, nil
}

// GetBranchNames returns all local branch names
func (r *Repository) GetBranchNames() ([]string, error) {
	branches, err := r.Branches()
	if err != nil {
		return nil, fmt.Errorf("failed to get branches: %w", err)
	}

	var names []string
	err = branches.ForEach(func(ref *plumbing.Reference) error {
		if ref.Name().IsBranch() {
			names = append(names, ref.Name().Short())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate branches: %w", err)
	}

	return names, nil
}

// HasBranches reports whether at least one local branch exists, which is the
// case once the repository has a commit.
func (r *Repository) HasBranches() (bool, error) {
	names, err := r.GetBranchNames()
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// GetCurrentBranch returns the current branch name
func (r *Repository) GetCurrentBranch() (string, error) {
	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	if !head.Name().IsBranch() {
		return "", fmt.Errorf("HEAD is not on a branch")
	}

	return head.Name().Short(), nil
}

// HeadShortHash returns the abbreviated hash of the commit at HEAD
func (r *Repository) HeadShortHash() (string, error) {
	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	return ShortHash(head.Hash()), nil
}

// CommitCount returns the number of commits reachable from HEAD
func (r *Repository) CommitCount() (int, error) {
	head, err := r.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get HEAD: %w", err)
	}

	iter, err := r.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return 0, fmt.Errorf("failed to read log: %w", err)
	}
	defer iter.Close()

	count := 0
	err = iter.ForEach(func(*object.Commit) error {
		count++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to walk log: %w", err)
	}
	return count, nil
}

// ShortHash abbreviates a commit hash for display
func ShortHash(h plumbing.Hash) string {
	s := h.String()
	if len(s) > 7 {
		return s[:7]
	}
	return s
}
