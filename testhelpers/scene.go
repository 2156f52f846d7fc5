package testhelpers

import (
	"path/filepath"
	"testing"
)

// Scene is a test working copy with an "origin" bare remote next to it.
// Everything lives under t.TempDir() and is removed with the test.
type Scene struct {
	Dir       string
	RemoteDir string
	Repo      *GitRepo
}

// SceneSetup is a function type for setting up a scene
type SceneSetup func(*Scene) error

// NewScene creates a working copy on "master" with one commit, pushed to a
// fresh "origin" remote, then runs setup.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	base := t.TempDir()
	dir := filepath.Join(base, "work")

	repo, err := NewGitRepo(dir)
	if err != nil {
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	remoteDir, err := repo.CreateBareRemote("origin")
	if err != nil {
		t.Fatalf("Failed to create remote: %v", err)
	}
	if err := repo.PushBranch("origin", "master"); err != nil {
		t.Fatalf("Failed to push master: %v", err)
	}

	scene := &Scene{
		Dir:       dir,
		RemoteDir: remoteDir,
		Repo:      repo,
	}

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}

	return scene
}
