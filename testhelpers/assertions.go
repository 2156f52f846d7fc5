// Package testhelpers provides testing utilities for bbt: real git working
// copies with a bare remote, an in-memory release.Repository fake, and
// custom assertions.
package testhelpers

import (
	"sort"
	"strconv"
	"strings"
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

// ExpectBranches asserts that the repository has exactly the expected local branches
func ExpectBranches(t *testing.T, repo *GitRepo, expected []string) {
	t.Helper()
	require.Equal(t, sorted(expected), listRefs(t, repo, "refs/heads/"), "Branches do not match")
}

// ExpectRemoteBranches asserts that origin has exactly the expected branches
func ExpectRemoteBranches(t *testing.T, repo *GitRepo, expected []string) {
	t.Helper()
	require.NoError(t, repo.RunGitCommand("fetch", "--prune", "origin"))
	names := listRefs(t, repo, "refs/remotes/origin/")
	filtered := []string{}
	for _, name := range names {
		if name != "origin/HEAD" {
			filtered = append(filtered, strings.TrimPrefix(name, "origin/"))
		}
	}
	require.Equal(t, sorted(expected), filtered, "Remote branches do not match")
}

// ExpectTags asserts that the repository has exactly the expected tags
func ExpectTags(t *testing.T, repo *GitRepo, expected []string) {
	t.Helper()
	require.Equal(t, sorted(expected), listRefs(t, repo, "refs/tags/"), "Tags do not match")
}

// ExpectCommits asserts that the newest commit subjects of branch match expected
func ExpectCommits(t *testing.T, repo *GitRepo, branch string, expected []string) {
	t.Helper()

	output, err := repo.RunGitCommandAndGetOutput("log", "--topo-order", "--format=%s", "-n", strconv.Itoa(len(expected)), branch)
	require.NoError(t, err, "Failed to get commit messages")
	require.Equal(t, expected, strings.Split(output, "\n"), "Commits do not match")
}

func listRefs(t *testing.T, repo *GitRepo, prefix string) []string {
	t.Helper()

	output, err := repo.RunGitCommandAndGetOutput("for-each-ref", prefix, "--format=%(refname:short)")
	require.NoError(t, err, "Failed to list refs")

	names := []string{}
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	return sorted(names)
}

func sorted(names []string) []string {
	out := append([]string{}, names...)
	sort.Strings(out)
	return out
}
