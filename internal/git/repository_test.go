package git_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"mocotch.dev/mocotch/internal/git"
	"mocotch.dev/mocotch/testhelpers"
)

func TestOpenRepository(t *testing.T) {
	t.Parallel()

	t.Run("missing repository", func(t *testing.T) {
		t.Parallel()
		_, err := git.OpenRepository(t.TempDir())
		require.ErrorIs(t, err, git.ErrRepositoryNotExists)
	})

	t.Run("parent repository is not used", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		_, err := testhelpers.NewGitRepo(dir)
		require.NoError(t, err)
		testhelpers.WriteFile(t, dir, "child/file.txt", "x")

		_, err = git.OpenRepository(filepath.Join(dir, "child"))
		require.ErrorIs(t, err, git.ErrRepositoryNotExists)
	})
}

func TestInitRepository(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "a", "b")
	repo, err := git.InitRepository(dir, "trunk")
	require.NoError(t, err)
	require.DirExists(t, filepath.Join(dir, ".git"))

	hasBranches, err := repo.HasBranches()
	require.NoError(t, err)
	require.False(t, hasBranches)

	count, err := repo.CommitCount()
	require.NoError(t, err)
	require.Zero(t, count)

	testhelpers.WriteFile(t, dir, "a.txt", "one\n")
	require.NoError(t, repo.StageFile("a.txt"))
	hash, err := repo.Commit(git.CommitOptions{
		Message: "first",
		Author:  git.Identity{Name: "anonymous", Email: "anonymous@localhost"},
	})
	require.NoError(t, err)

	current, err := repo.GetCurrentBranch()
	require.NoError(t, err)
	require.Equal(t, "trunk", current)

	short, err := repo.HeadShortHash()
	require.NoError(t, err)
	require.Equal(t, git.ShortHash(hash), short)
	require.Len(t, short, 7)
}

func TestStatus(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cli, err := testhelpers.NewGitRepo(dir)
	require.NoError(t, err)
	require.NoError(t, cli.CreateChangeAndCommit("b.txt", "b\n"))
	require.NoError(t, cli.CreateChangeAndCommit("a.txt", "a\n"))
	require.NoError(t, cli.CreateChangeAndCommit(".gitignore", "*.tmp\n"))

	repo, err := git.OpenRepository(dir)
	require.NoError(t, err)

	st, err := repo.Status()
	require.NoError(t, err)
	require.True(t, st.IsClean())

	testhelpers.WriteFile(t, dir, "b.txt", "changed\n")
	testhelpers.WriteFile(t, dir, "a.txt", "changed\n")
	testhelpers.WriteFile(t, dir, "z.txt", "new\n")
	testhelpers.WriteFile(t, dir, "c.txt", "new\n")
	testhelpers.WriteFile(t, dir, "ignored.tmp", "x")

	st, err = repo.Status()
	require.NoError(t, err)
	require.Equal(t, []string{"a.txt", "b.txt"}, st.Modified)
	require.Equal(t, []string{"c.txt", "z.txt"}, st.Untracked)

	require.NoError(t, repo.RestoreTracked(st.Modified))
	st, err = repo.Status()
	require.NoError(t, err)
	require.Empty(t, st.Modified)
	require.Equal(t, []string{"c.txt", "z.txt"}, st.Untracked)
	testhelpers.ExpectFileContent(t, dir, "a.txt", "a\n")
	testhelpers.ExpectFileContent(t, dir, "ignored.tmp", "x")
}

func TestBranches(t *testing.T) {
	t.Parallel()

	scene := testhelpers.NewScene(t)
	remote := scene.NewRemote("origin")
	remote.PublishBranch(t, "develop", "game.json", "{}")

	dir := scene.ProjectPath("proj1")
	repo, err := git.CloneRepository(context.Background(), dir, remote.Dir)
	require.NoError(t, err)

	hasRemote, err := repo.HasRemote(git.DefaultRemote)
	require.NoError(t, err)
	require.True(t, hasRemote)
	url, err := repo.GetRemoteURL(git.DefaultRemote)
	require.NoError(t, err)
	require.Equal(t, remote.Dir, url)

	hasOther, err := repo.HasRemote("upstream")
	require.NoError(t, err)
	require.False(t, hasOther)

	remoteBranches, err := repo.RemoteTrackingBranches(git.DefaultRemote)
	require.NoError(t, err)
	require.Equal(t, map[string]struct{}{"main": {}, "develop": {}}, remoteBranches)

	exists, err := repo.LocalBranchExists("develop")
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, repo.CreateTrackingBranch("develop", git.DefaultRemote))
	upstream, ok := repo.Upstream("develop")
	require.True(t, ok)
	require.Equal(t, git.DefaultRemote, upstream)
	testhelpers.ExpectFileContent(t, dir, "game.json", "{}")

	require.NoError(t, repo.CreateAndCheckoutBranch("feature"))
	_, ok = repo.Upstream("feature")
	require.False(t, ok)

	require.NoError(t, repo.PushBranch(context.Background(), git.DefaultRemote, "feature"))
	upstream, ok = repo.Upstream("feature")
	require.True(t, ok)
	require.Equal(t, git.DefaultRemote, upstream)
	require.NotEmpty(t, remote.BranchRevision(t, "feature"))

	// pushing again is not an error
	require.NoError(t, repo.PushBranch(context.Background(), git.DefaultRemote, "feature"))

	require.NoError(t, repo.CheckoutBranch("main"))
	names, err := repo.GetBranchNames()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"main", "develop", "feature"}, names)
}

func TestPullBranch(t *testing.T) {
	t.Parallel()

	scene := testhelpers.NewScene(t)
	remote := scene.NewRemote("origin")
	dir := scene.ProjectPath("proj1")
	repo, err := git.CloneRepository(context.Background(), dir, remote.Dir)
	require.NoError(t, err)

	res, err := repo.PullBranch(context.Background(), git.DefaultRemote, "main")
	require.NoError(t, err)
	require.Equal(t, git.PullUnneeded, res)

	remote.Commit(t, "main", "game.json", "{}")
	res, err = repo.PullBranch(context.Background(), git.DefaultRemote, "main")
	require.NoError(t, err)
	require.Equal(t, git.PullDone, res)
	testhelpers.ExpectFileContent(t, dir, "game.json", "{}")

	remote.Commit(t, "main", "remote.txt", "r")
	testhelpers.WriteFile(t, dir, "local.txt", "l")
	require.NoError(t, repo.StageAll())
	_, err = repo.Commit(git.CommitOptions{Message: "local", Author: git.Identity{Name: "a", Email: "a@b"}})
	require.NoError(t, err)

	res, err = repo.PullBranch(context.Background(), git.DefaultRemote, "main")
	require.Error(t, err)
	require.Equal(t, git.PullConflict, res)
	require.Equal(t, git.FailureDiverged, git.Classify(err))
}

func TestUntrackedOverwrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo, err := git.InitRepository(dir, "main")
	require.NoError(t, err)
	testhelpers.WriteFile(t, dir, "a.txt", "a")
	testhelpers.WriteFile(t, dir, "levels/one.json", "{}")
	require.NoError(t, repo.StageAll())
	hash, err := repo.Commit(git.CommitOptions{Message: "init", Author: git.Identity{Name: "a", Email: "a@b"}})
	require.NoError(t, err)

	overwritten, err := repo.UntrackedOverwrites(hash, nil)
	require.NoError(t, err)
	require.Empty(t, overwritten)

	overwritten, err = repo.UntrackedOverwrites(hash, []string{
		"a.txt",
		"a.txt/nested",
		"b.txt",
		"levels/one.json",
		"levels/two.json",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a.txt", "a.txt/nested", "levels/one.json"}, overwritten)
}

func TestFetchBranch(t *testing.T) {
	t.Parallel()

	scene := testhelpers.NewScene(t)
	remote := scene.NewRemote("origin")
	dir := scene.ProjectPath("proj1")
	repo, err := git.CloneRepository(context.Background(), dir, remote.Dir)
	require.NoError(t, err)

	target, err := repo.FetchBranch(context.Background(), git.DefaultRemote, "main")
	require.NoError(t, err)
	incoming, err := repo.HasIncoming(target)
	require.NoError(t, err)
	require.False(t, incoming)

	remote.Commit(t, "main", "game.json", "{}")
	target, err = repo.FetchBranch(context.Background(), git.DefaultRemote, "main")
	require.NoError(t, err)
	require.Equal(t, remote.BranchRevision(t, "main"), target.String())
	incoming, err = repo.HasIncoming(target)
	require.NoError(t, err)
	require.True(t, incoming)

	// fetching does not touch the working tree
	testhelpers.ExpectNoFile(t, dir, "game.json")

	_, err = repo.FetchBranch(context.Background(), git.DefaultRemote, "missing")
	require.Error(t, err)
}
