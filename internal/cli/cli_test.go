package cli_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"mocotch.dev/mocotch/internal/cli"
	"mocotch.dev/mocotch/testhelpers"
)

// run executes the CLI in-process against projectsDir and returns its output
func run(t *testing.T, projectsDir string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := cli.NewRootCmd("test", "none", "unknown")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--projects-dir", projectsDir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("MOCOTCH_NON_INTERACTIVE", "1")
	return filepath.Join(t.TempDir(), "projects")
}

func TestProjectLifecycle(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, dir, "list")
	require.NoError(t, err)
	require.Contains(t, out, "No projects")

	out, err = run(t, dir, "init", "proj1")
	require.NoError(t, err, out)
	require.Contains(t, out, "Created project")
	require.Contains(t, out, "develop")

	_, err = run(t, dir, "init", "proj1")
	require.ErrorContains(t, err, "project already exists")

	projectDir := filepath.Join(dir, "proj1")
	testhelpers.WriteFile(t, projectDir, "game.json", `{"v":1}`)

	out, err = run(t, dir, "status", "proj1")
	require.NoError(t, err)
	require.Contains(t, out, "game.json")

	out, err = run(t, dir, "commit", "proj1", "-m", "update")
	require.NoError(t, err, out)
	require.Contains(t, out, "Committed and pushed proj1")

	out, err = run(t, dir, "status")
	require.NoError(t, err)
	require.Contains(t, out, "clean")

	testhelpers.WriteFile(t, projectDir, "game.json", `{"v":2}`)
	_, err = run(t, dir, "switch", "proj1", "feature")
	require.ErrorContains(t, err, "uncommitted changes")

	_, err = run(t, dir, "discard", "proj1")
	require.ErrorContains(t, err, "--yes")

	out, err = run(t, dir, "discard", "proj1", "-y")
	require.NoError(t, err, out)
	testhelpers.ExpectFileContent(t, projectDir, "game.json", `{"v":1}`)

	out, err = run(t, dir, "switch", "proj1", "feature")
	require.NoError(t, err, out)

	out, err = run(t, dir, "branch", "proj1")
	require.NoError(t, err)
	require.Equal(t, "feature\n", out)

	out, err = run(t, dir, "list")
	require.NoError(t, err)
	require.Contains(t, out, "proj1")
	require.Contains(t, out, "feature")
	require.Contains(t, out, "local only")

	out, err = run(t, dir, "--quiet", "list")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestRemoteCommands(t *testing.T) {
	dir := isolate(t)
	scene := testhelpers.NewScene(t)
	remote := scene.NewRemote("origin")
	remote.PublishBranch(t, "develop", "game.json", `{"v":1}`)

	out, err := run(t, dir, "clone", "proj1", remote.Dir)
	require.NoError(t, err, out)
	testhelpers.ExpectFileContent(t, filepath.Join(dir, "proj1"), "game.json", `{"v":1}`)

	remote.Commit(t, "develop", "game.json", `{"v":2}`)
	out, err = run(t, dir, "sync", "proj1")
	require.NoError(t, err, out)
	testhelpers.ExpectFileContent(t, filepath.Join(dir, "proj1"), "game.json", `{"v":2}`)

	out, err = run(t, dir, "init", "local")
	require.NoError(t, err, out)
	_, err = run(t, dir, "sync", "local")
	require.ErrorContains(t, err, "no remote configured")

	out, err = run(t, dir, "list")
	require.NoError(t, err)
	require.Contains(t, out, remote.Dir)
	require.Contains(t, out, "tracking origin/develop")

	other := scene.NewRemote("other")
	out, err = run(t, dir, "remote", "local", other.Dir)
	require.NoError(t, err, out)
	out, err = run(t, dir, "push", "local")
	require.NoError(t, err, out)
	require.NotEmpty(t, other.BranchRevision(t, "develop"))
}

func TestInvalidInput(t *testing.T) {
	dir := isolate(t)

	_, err := run(t, dir, "init", "../escape")
	require.ErrorContains(t, err, "invalid name")

	_, err = run(t, dir, "init", "proj1", "-b", "bad branch")
	require.ErrorContains(t, err, "invalid name")

	_, err = run(t, dir, "status", "ghost")
	require.ErrorContains(t, err, "project not found")

	_, err = run(t, dir, "commit", "ghost")
	require.ErrorContains(t, err, "message")
}
