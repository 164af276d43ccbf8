package testhelpers

import (
	"os/exec"
	"path/filepath"
	"testing"
)

// Scene is a temporary workspace for one test: a directory projects are
// created in, plus bare remotes and seed repositories next to it.
type Scene struct {
	Dir string
	t   *testing.T
}

// NewScene creates a new scene. Cleanup is handled by t.TempDir.
func NewScene(t *testing.T) *Scene {
	t.Helper()
	return &Scene{Dir: t.TempDir(), t: t}
}

// ProjectPath returns the path a project with the given name lives at.
// Nothing is created.
func (s *Scene) ProjectPath(name string) string {
	return filepath.Join(s.Dir, "projects", name)
}

// Remote is a bare repository acting as origin, plus the seed clone used
// to publish commits into it.
type Remote struct {
	Dir  string
	Seed *GitRepo
}

// NewRemote creates a bare repository with a main branch holding one commit.
func (s *Scene) NewRemote(name string) *Remote {
	s.t.Helper()

	bareDir := filepath.Join(s.Dir, "remotes", name+".git")
	cmd := exec.Command("git", "init", "--bare", "-b", "main", bareDir)
	cmd.Env = gitEnv()
	if output, err := cmd.CombinedOutput(); err != nil {
		s.t.Fatalf("Failed to create bare repo: %v: %s", err, output)
	}

	seed, err := NewGitRepo(filepath.Join(s.Dir, "seeds", name))
	if err != nil {
		s.t.Fatalf("Failed to create seed repo: %v", err)
	}
	if err := seed.AddRemote("origin", bareDir); err != nil {
		s.t.Fatalf("Failed to add remote: %v", err)
	}
	if err := seed.CreateChangeAndCommit("README.md", "seed\n"); err != nil {
		s.t.Fatalf("Failed to seed commit: %v", err)
	}
	if err := seed.PushBranch("origin", "main"); err != nil {
		s.t.Fatalf("Failed to push main: %v", err)
	}

	return &Remote{Dir: bareDir, Seed: seed}
}

// PublishBranch creates branch in the seed from main, commits file with
// content on it and pushes it to the remote.
func (r *Remote) PublishBranch(t *testing.T, branch, file, content string) {
	t.Helper()
	if err := r.Seed.CheckoutBranch("main"); err != nil {
		t.Fatalf("Failed to checkout main: %v", err)
	}
	if err := r.Seed.CreateAndCheckoutBranch(branch); err != nil {
		t.Fatalf("Failed to create branch %s: %v", branch, err)
	}
	r.commitAndPush(t, branch, file, content)
}

// Commit commits file with content on a branch the remote already has and
// pushes it. The seed is fast-forwarded first so commits pushed by others
// are kept.
func (r *Remote) Commit(t *testing.T, branch, file, content string) {
	t.Helper()
	if err := r.Seed.CheckoutBranch(branch); err != nil {
		t.Fatalf("Failed to checkout %s: %v", branch, err)
	}
	if err := r.Seed.RunGitCommand("pull", "--ff-only", "origin", branch); err != nil {
		t.Fatalf("Failed to update %s: %v", branch, err)
	}
	r.commitAndPush(t, branch, file, content)
}

func (r *Remote) commitAndPush(t *testing.T, branch, file, content string) {
	t.Helper()
	if err := r.Seed.CreateChangeAndCommit(file, content); err != nil {
		t.Fatalf("Failed to commit on %s: %v", branch, err)
	}
	if err := r.Seed.PushBranch("origin", branch); err != nil {
		t.Fatalf("Failed to push %s: %v", branch, err)
	}
}

// BranchRevision returns the SHA the remote holds for branch.
func (r *Remote) BranchRevision(t *testing.T, branch string) string {
	t.Helper()
	sha, err := OpenGitRepo(r.Dir).GetRevision("refs/heads/" + branch)
	if err != nil {
		t.Fatalf("Failed to resolve %s on remote: %v", branch, err)
	}
	return sha
}
