package testhelpers

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// Must is a generic helper function that panics if err is not nil,
// otherwise returns the value. This is useful for test setup code
// where errors are not expected and should halt execution immediately.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectBranches asserts that the repository has exactly the expected local branches.
func ExpectBranches(t *testing.T, repo *GitRepo, expected []string) {
	t.Helper()

	branches, err := repo.GetLocalBranches()
	require.NoError(t, err, "Failed to list branches")

	sort.Strings(branches)
	expected = append([]string(nil), expected...)
	sort.Strings(expected)

	require.Equal(t, expected, branches, "Branches do not match")
}

// ExpectFileContent asserts the content of a file relative to dir.
func ExpectFileContent(t *testing.T, dir, name, expected string) {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err, "Failed to read %s", name)
	require.Equal(t, expected, string(data), "Content of %s does not match", name)
}

// ExpectNoFile asserts that a file relative to dir does not exist.
func ExpectNoFile(t *testing.T, dir, name string) {
	t.Helper()

	_, err := os.Stat(filepath.Join(dir, name))
	require.True(t, os.IsNotExist(err), "Expected %s to be absent", name)
}

// WriteFile writes content to a file relative to dir, creating parents.
func WriteFile(t *testing.T, dir, name, content string) {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}
