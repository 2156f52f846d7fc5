package release_test

import (
	"bytes"
	"testing"

	"bbt.dev/bbt/internal/release"
	"bbt.dev/bbt/internal/tui"
	"bbt.dev/bbt/testhelpers"
)

// newManager returns a manager over a fresh fake repository whose root branch
// is "master", with console output captured.
func newManager(t *testing.T) (*release.Manager, *testhelpers.FakeRepository) {
	t.Helper()
	repo := testhelpers.NewFakeRepository("master")
	return newManagerFor(repo), repo
}

func newManagerFor(repo *testhelpers.FakeRepository) *release.Manager {
	return release.NewManager(repo, release.Options{
		Splog: tui.NewSplogWithWriter(&bytes.Buffer{}),
	})
}
