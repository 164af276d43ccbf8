package project_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"mocotch.dev/mocotch/internal/project"
	"mocotch.dev/mocotch/testhelpers"
)

func TestGameFileLifecycle(t *testing.T) {
	t.Parallel()

	h, path := newProject(t, "develop")

	testhelpers.WriteFile(t, path, "game.json", `{"v":1}`)
	require.Equal(t, project.Success, h.CommitAll("update"))

	st := h.Status()
	require.False(t, st.HasChanges())
	require.Empty(t, st.Modified)
	require.Empty(t, st.Untracked)

	testhelpers.WriteFile(t, path, "game.json", `{"v":2}`)
	st = h.Status()
	require.True(t, st.HasChanges())
	require.Equal(t, []string{"game.json"}, st.Modified)
	require.Empty(t, st.Untracked)
}

func TestCommitAll(t *testing.T) {
	t.Parallel()

	t.Run("second commit without changes is a no-op", func(t *testing.T) {
		t.Parallel()
		h, path := newProject(t, "develop")
		testhelpers.WriteFile(t, path, "a.txt", "one\n")

		require.Equal(t, project.Success, h.CommitAll("first"))
		require.Equal(t, 2, h.CommitCount())
		head, _ := h.HeadCommit()

		require.Equal(t, project.Success, h.CommitAll("second"))
		require.Equal(t, 2, h.CommitCount())
		again, _ := h.HeadCommit()
		require.Equal(t, head, again)
	})

	t.Run("stages untracked files in nested directories", func(t *testing.T) {
		t.Parallel()
		h, path := newProject(t, "develop")
		testhelpers.WriteFile(t, path, "levels/one.json", "{}")
		testhelpers.WriteFile(t, path, "a.txt", "one\n")
		require.Equal(t, project.Success, h.CommitAll("add"))

		testhelpers.WriteFile(t, path, "a.txt", "changed\n")
		testhelpers.WriteFile(t, path, "levels/two.json", "{}")
		st := h.Status()
		require.Equal(t, []string{"a.txt"}, st.Modified)
		require.Equal(t, []string{"levels/two.json"}, st.Untracked)

		require.Equal(t, project.Success, h.CommitAll("more"))
		require.False(t, h.Status().HasChanges())
		require.Equal(t, 3, h.CommitCount())
	})

	t.Run("ignored files stay out of commits", func(t *testing.T) {
		t.Parallel()
		h, path := newProject(t, "develop")
		testhelpers.WriteFile(t, path, ".gitignore", "*.tmp\n")
		testhelpers.WriteFile(t, path, "cache.tmp", "scratch")
		require.Equal(t, project.Success, h.CommitAll("ignore"))

		repo := testhelpers.OpenGitRepo(path)
		files, err := repo.RunGitCommandAndGetOutput("ls-files")
		require.NoError(t, err)
		require.NotContains(t, files, "cache.tmp")
		require.FileExists(t, path+"/cache.tmp")
	})

	t.Run("stages deleted files", func(t *testing.T) {
		t.Parallel()
		h, path := newProject(t, "develop")
		testhelpers.WriteFile(t, path, "levels/one.json", "{}")
		testhelpers.WriteFile(t, path, "a.txt", "one\n")
		require.Equal(t, project.Success, h.CommitAll("add"))

		require.NoError(t, os.Remove(filepath.Join(path, "levels", "one.json")))
		require.Equal(t, []string{"levels/one.json"}, h.Status().Modified)

		require.Equal(t, project.Success, h.CommitAll("remove level"))
		require.False(t, h.Status().HasChanges())
		require.Equal(t, 3, h.CommitCount())

		files, err := testhelpers.OpenGitRepo(path).RunGitCommandAndGetOutput("ls-files")
		require.NoError(t, err)
		require.NotContains(t, files, "levels/one.json")
		require.Contains(t, files, "a.txt")
	})

	t.Run("commits are anonymous", func(t *testing.T) {
		t.Parallel()
		h, path := newProject(t, "develop")
		testhelpers.WriteFile(t, path, "a.txt", "one\n")
		require.Equal(t, project.Success, h.CommitAll("update"))

		author, err := testhelpers.OpenGitRepo(path).RunGitCommandAndGetOutput("log", "-1", "--format=%an <%ae>|%cn|%s")
		require.NoError(t, err)
		require.Equal(t, "anonymous <anonymous@localhost>|anonymous|update", author)
	})
}

func TestDiscardChanges(t *testing.T) {
	t.Parallel()

	t.Run("reverts tracked files and deletes untracked ones", func(t *testing.T) {
		t.Parallel()
		h, path := newProject(t, "develop")
		testhelpers.WriteFile(t, path, "t.txt", "committed\n")
		require.Equal(t, project.Success, h.CommitAll("add t"))

		testhelpers.WriteFile(t, path, "t.txt", "changed\n")
		testhelpers.WriteFile(t, path, "f.txt", "scratch\n")
		testhelpers.WriteFile(t, path, "sub/g.txt", "scratch\n")

		require.Equal(t, project.Success, h.DiscardChanges())

		st := h.Status()
		require.Empty(t, st.Modified)
		require.Empty(t, st.Untracked)
		testhelpers.ExpectNoFile(t, path, "f.txt")
		testhelpers.ExpectNoFile(t, path, "sub/g.txt")
		testhelpers.ExpectFileContent(t, path, "t.txt", "committed\n")
		require.Equal(t, 2, h.CommitCount())
	})

	t.Run("restores deleted tracked files", func(t *testing.T) {
		t.Parallel()
		h, path := newProject(t, "develop")
		testhelpers.WriteFile(t, path, "levels/one.json", `{"id":1}`)
		require.Equal(t, project.Success, h.CommitAll("add level"))

		require.NoError(t, os.RemoveAll(filepath.Join(path, "levels")))
		require.Equal(t, []string{"levels/one.json"}, h.Status().Modified)

		require.Equal(t, project.Success, h.DiscardChanges())
		require.False(t, h.Status().HasChanges())
		testhelpers.ExpectFileContent(t, path, "levels/one.json", `{"id":1}`)
		require.Equal(t, 2, h.CommitCount())
	})

	t.Run("clean tree is a no-op", func(t *testing.T) {
		t.Parallel()
		h, _ := newProject(t, "develop")
		require.Equal(t, project.Success, h.DiscardChanges())
		require.Equal(t, 1, h.CommitCount())
	})

	t.Run("ignored files are kept", func(t *testing.T) {
		t.Parallel()
		h, path := newProject(t, "develop")
		testhelpers.WriteFile(t, path, ".gitignore", "*.tmp\n")
		require.Equal(t, project.Success, h.CommitAll("ignore"))
		testhelpers.WriteFile(t, path, "cache.tmp", "keep")
		testhelpers.WriteFile(t, path, "f.txt", "drop")

		require.Equal(t, project.Success, h.DiscardChanges())
		testhelpers.ExpectFileContent(t, path, "cache.tmp", "keep")
		testhelpers.ExpectNoFile(t, path, "f.txt")
	})
}

func TestSwitchBranch(t *testing.T) {
	t.Parallel()

	t.Run("dirty tree is refused", func(t *testing.T) {
		t.Parallel()
		h, path := newProject(t, "develop")
		testhelpers.WriteFile(t, path, project.PlaceholderFile, "dirty")

		require.Equal(t, project.PreconditionFailure, h.SwitchBranch("feature"))
		require.Equal(t, "develop", h.CurrentBranch())
		require.Equal(t, "develop", h.Branch())
		testhelpers.ExpectFileContent(t, path, project.PlaceholderFile, "dirty")
	})

	t.Run("untracked files are refused", func(t *testing.T) {
		t.Parallel()
		h, path := newProject(t, "develop")
		testhelpers.WriteFile(t, path, "new.txt", "x")

		require.Equal(t, project.PreconditionFailure, h.SwitchBranch("feature"))
		require.Equal(t, "develop", h.CurrentBranch())
	})

	t.Run("clean tree switches and creates the branch", func(t *testing.T) {
		t.Parallel()
		h, path := newProject(t, "develop")

		require.Equal(t, project.Success, h.SwitchBranch("feature"))
		require.Equal(t, "feature", h.CurrentBranch())
		require.Equal(t, "feature", h.Branch())
		testhelpers.ExpectBranches(t, testhelpers.OpenGitRepo(path), []string{"develop", "feature", "main"})
	})

	t.Run("switching back restores branch content", func(t *testing.T) {
		t.Parallel()
		h, path := newProject(t, "develop")
		require.Equal(t, project.Success, h.SwitchBranch("feature"))
		testhelpers.WriteFile(t, path, "feature.txt", "f\n")
		require.Equal(t, project.Success, h.CommitAll("feature work"))

		require.Equal(t, project.Success, h.SwitchBranch("develop"))
		require.Equal(t, "develop", h.CurrentBranch())
		testhelpers.ExpectNoFile(t, path, "feature.txt")

		require.Equal(t, project.Success, h.SwitchBranch("feature"))
		testhelpers.ExpectFileContent(t, path, "feature.txt", "f\n")
	})

	t.Run("current branch is a no-op", func(t *testing.T) {
		t.Parallel()
		h, _ := newProject(t, "develop")
		require.Equal(t, project.Success, h.SwitchBranch("develop"))
		require.Equal(t, "develop", h.CurrentBranch())
	})
}

func TestPushAndPull(t *testing.T) {
	t.Parallel()

	t.Run("push without remote is a no-op", func(t *testing.T) {
		t.Parallel()
		h, _ := newProject(t, "develop")
		require.False(t, h.HasRemote())
		require.Equal(t, project.Success, h.Push(context.Background()))
	})

	t.Run("pull without remote is refused", func(t *testing.T) {
		t.Parallel()
		h, _ := newProject(t, "develop")
		require.Equal(t, project.PreconditionFailure, h.Pull(context.Background()))
	})

	t.Run("push publishes the tracked branch", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t)
		remote := scene.NewRemote("origin")
		h := project.New(scene.ProjectPath("proj1"), "develop")
		require.Equal(t, project.Success, h.Clone(context.Background(), remote.Dir))

		testhelpers.WriteFile(t, h.Path(), "game.json", `{"v":1}`)
		require.Equal(t, project.Success, h.CommitAll("update"))
		require.Equal(t, project.Success, h.Push(context.Background()))

		local, err := testhelpers.OpenGitRepo(h.Path()).GetRevision("HEAD")
		require.NoError(t, err)
		require.Equal(t, local, remote.BranchRevision(t, "develop"))

		// nothing new to push
		require.Equal(t, project.Success, h.Push(context.Background()))
	})

	t.Run("push to a remote added later", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t)
		remote := scene.NewRemote("origin")
		h := project.New(scene.ProjectPath("proj1"), "develop")
		require.Equal(t, project.Success, h.InitOrOpen())
		require.Equal(t, project.Success, h.SetRemote(remote.Dir))

		require.Equal(t, project.Success, h.Push(context.Background()))
		local, err := testhelpers.OpenGitRepo(h.Path()).GetRevision("HEAD")
		require.NoError(t, err)
		require.Equal(t, local, remote.BranchRevision(t, "develop"))
	})

	t.Run("pull fast-forwards the tracked branch", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t)
		remote := scene.NewRemote("origin")
		remote.PublishBranch(t, "develop", "game.json", `{"v":1}`)
		h := project.New(scene.ProjectPath("proj1"), "develop")
		require.Equal(t, project.Success, h.Clone(context.Background(), remote.Dir))

		remote.Commit(t, "develop", "game.json", `{"v":2}`)
		require.Equal(t, project.Success, h.Pull(context.Background()))
		testhelpers.ExpectFileContent(t, h.Path(), "game.json", `{"v":2}`)

		// already up to date
		require.Equal(t, project.Success, h.Pull(context.Background()))
	})

	t.Run("diverged history is a backend failure", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t)
		remote := scene.NewRemote("origin")
		remote.PublishBranch(t, "develop", "game.json", `{"v":1}`)
		h := project.New(scene.ProjectPath("proj1"), "develop")
		require.Equal(t, project.Success, h.Clone(context.Background(), remote.Dir))

		remote.Commit(t, "develop", "remote.txt", "remote\n")
		testhelpers.WriteFile(t, h.Path(), "local.txt", "local\n")
		require.Equal(t, project.Success, h.CommitAll("local work"))

		require.Equal(t, project.BackendFailure, h.Pull(context.Background()))
		require.Equal(t, project.BackendFailure, h.Push(context.Background()))
		testhelpers.ExpectNoFile(t, h.Path(), "remote.txt")
	})

	t.Run("incoming file never replaces an untracked one", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t)
		remote := scene.NewRemote("origin")
		remote.PublishBranch(t, "develop", "game.json", `{"v":1}`)
		h := project.New(scene.ProjectPath("proj1"), "develop")
		require.Equal(t, project.Success, h.Clone(context.Background(), remote.Dir))
		head, _ := h.HeadCommit()

		remote.Commit(t, "develop", "npc.json", "remote")
		testhelpers.WriteFile(t, h.Path(), "npc.json", "local-unsaved")

		require.Equal(t, project.BackendFailure, h.Pull(context.Background()))
		testhelpers.ExpectFileContent(t, h.Path(), "npc.json", "local-unsaved")
		again, _ := h.HeadCommit()
		require.Equal(t, head, again)

		// once the local file is gone the same pull goes through
		require.NoError(t, os.Remove(filepath.Join(h.Path(), "npc.json")))
		require.Equal(t, project.Success, h.Pull(context.Background()))
		testhelpers.ExpectFileContent(t, h.Path(), "npc.json", "remote")
	})

	t.Run("unrelated untracked files do not block a pull", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t)
		remote := scene.NewRemote("origin")
		remote.PublishBranch(t, "develop", "game.json", `{"v":1}`)
		h := project.New(scene.ProjectPath("proj1"), "develop")
		require.Equal(t, project.Success, h.Clone(context.Background(), remote.Dir))

		remote.Commit(t, "develop", "npc.json", "remote")
		testhelpers.WriteFile(t, h.Path(), "draft.json", "local")

		require.Equal(t, project.Success, h.Pull(context.Background()))
		testhelpers.ExpectFileContent(t, h.Path(), "npc.json", "remote")
		testhelpers.ExpectFileContent(t, h.Path(), "draft.json", "local")
	})
}
