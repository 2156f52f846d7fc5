package git_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	bbterrors "bbt.dev/bbt/internal/errors"
	"bbt.dev/bbt/internal/git"
	"bbt.dev/bbt/internal/release"
	"bbt.dev/bbt/internal/tui"
	"bbt.dev/bbt/internal/version"
	"bbt.dev/bbt/testhelpers"
)

var _ release.Repository = (*git.Repository)(nil)

func openScene(t *testing.T, setup testhelpers.SceneSetup) (*testhelpers.Scene, *git.Repository) {
	t.Helper()
	scene := testhelpers.NewScene(t, setup)
	repo, err := git.OpenRepository(scene.Dir, "origin")
	require.NoError(t, err)
	return scene, repo
}

func TestOpenRepository(t *testing.T) {
	scene, repo := openScene(t, nil)

	root, err := filepath.EvalSymlinks(scene.Dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(repo.Root())
	require.NoError(t, err)
	require.Equal(t, root, got)
	require.Equal(t, "origin", repo.Remote())

	_, err = git.OpenRepository(t.TempDir(), "")
	require.Error(t, err)
}

func TestQueries(t *testing.T) {
	ctx := context.Background()
	_, repo := openScene(t, func(s *testhelpers.Scene) error {
		if err := s.Repo.AnnotatedTag("1.0.0", "master"); err != nil {
			return err
		}
		for _, tag := range []string{"1.1.0-1", "1.1.0-02", "1.1.0-rc"} {
			if err := s.Repo.Tag(tag, "master"); err != nil {
				return err
			}
		}
		if err := s.Repo.CreateBranch("minor/1.x"); err != nil {
			return err
		}
		return s.Repo.PushBranch("origin", "minor/1.x")
	})

	local, err := repo.LocalBranches(ctx, "minor/1.x")
	require.NoError(t, err)
	require.Equal(t, []string{"minor/1.x"}, local)

	local, err = repo.LocalBranches(ctx, "minor/2.x")
	require.NoError(t, err)
	require.Empty(t, local)

	remote, err := repo.RemoteBranches(ctx, "origin/*")
	require.NoError(t, err)
	require.Equal(t, []string{"origin/master"}, remote)

	remote, err = repo.RemoteBranches(ctx, "origin/minor/1.x")
	require.NoError(t, err)
	require.Equal(t, []string{"origin/minor/1.x"}, remote)

	tags, err := repo.Tags(ctx, "1.1.0-*")
	require.NoError(t, err)
	require.Equal(t, []string{"1.1.0-02", "1.1.0-1", "1.1.0-rc"}, tags)

	tags, err = repo.Tags(ctx, "1.0.0")
	require.NoError(t, err)
	require.Equal(t, []string{"1.0.0"}, tags)
}

func TestMergeBaseAndAncestry(t *testing.T) {
	ctx := context.Background()
	scene, repo := openScene(t, func(s *testhelpers.Scene) error {
		if err := s.Repo.AnnotatedTag("1.0.0", "master"); err != nil {
			return err
		}
		if err := s.Repo.CreateAndCheckoutBranch("feature"); err != nil {
			return err
		}
		if err := s.Repo.CreateChangeAndCommit("feature work", "feature"); err != nil {
			return err
		}
		if err := s.Repo.CheckoutBranch("master"); err != nil {
			return err
		}
		return s.Repo.CreateChangeAndCommit("master work", "master")
	})

	fork, err := scene.Repo.GetRevision("1.0.0")
	require.NoError(t, err)

	base, err := repo.MergeBase(ctx, "feature", "master")
	require.NoError(t, err)
	require.Equal(t, fork, base)

	ok, err := repo.IsAncestor(ctx, "1.0.0", "feature")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.IsAncestor(ctx, "master", "feature")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = repo.IsAncestor(ctx, "feature", "feature")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = repo.MergeBase(ctx, "feature", "does-not-exist")
	require.Error(t, err)
}

func TestMergeBaseUnrelatedHistories(t *testing.T) {
	ctx := context.Background()
	_, repo := openScene(t, func(s *testhelpers.Scene) error {
		if err := s.Repo.RunGitCommand("checkout", "--orphan", "orphan"); err != nil {
			return err
		}
		return s.Repo.CreateChangeAndCommit("orphan work", "orphan")
	})

	_, err := repo.MergeBase(ctx, "orphan", "master")
	require.ErrorIs(t, err, bbterrors.ErrNoCommonAncestor)
}

func TestMutations(t *testing.T) {
	ctx := context.Background()
	scene, repo := openScene(t, func(s *testhelpers.Scene) error {
		if err := s.Repo.CreateAndCheckoutBranch("PRJ-1"); err != nil {
			return err
		}
		if err := s.Repo.CreateChangeAndCommit("task work", "task"); err != nil {
			return err
		}
		if err := s.Repo.PushBranch("origin", "PRJ-1"); err != nil {
			return err
		}
		if err := s.Repo.CheckoutBranch("master"); err != nil {
			return err
		}
		return s.Repo.DeleteBranch("PRJ-1")
	})

	require.NoError(t, repo.CreateBranch(ctx, "minor/1.x", "master"))
	require.NoError(t, repo.MergeNoFastForward(ctx, "PRJ-1", "minor/1.x", "PRJ merge tasks PRJ-1"))
	testhelpers.ExpectCommits(t, scene.Repo, "minor/1.x", []string{"PRJ merge tasks PRJ-1", "task work"})

	require.NoError(t, repo.CreateTag(ctx, "1.1.0-1", "minor/1.x"))
	require.NoError(t, repo.DeleteLocalBranch(ctx, "PRJ-1"))
	testhelpers.ExpectBranches(t, scene.Repo, []string{"master", "minor/1.x"})

	require.NoError(t, repo.PushAll(ctx))
	require.NoError(t, repo.PushTags(ctx))
	require.NoError(t, repo.DeleteRemoteBranch(ctx, "PRJ-1"))
	testhelpers.ExpectRemoteBranches(t, scene.Repo, []string{"master", "minor/1.x"})

	remote := &testhelpers.GitRepo{Dir: scene.RemoteDir}
	testhelpers.ExpectTags(t, remote, []string{"1.1.0-1"})
}

func TestMutationFailuresCarryDiagnostics(t *testing.T) {
	ctx := context.Background()
	_, repo := openScene(t, nil)

	err := repo.CreateBranch(ctx, "master", "master")
	require.ErrorIs(t, err, bbterrors.ErrExternalToolFailure)

	var gitErr *bbterrors.GitCommandError
	require.True(t, errors.As(err, &gitErr))
	require.Equal(t, []string{"branch", "master", "master"}, gitErr.Args)
	require.Contains(t, gitErr.Stderr, "already exists")

	err = repo.CreateTag(ctx, "1.0.0", "no-such-ref")
	require.ErrorIs(t, err, bbterrors.ErrExternalToolFailure)
}

func TestReleaseFlowAgainstRealRepository(t *testing.T) {
	ctx := context.Background()
	scene, repo := openScene(t, func(s *testhelpers.Scene) error {
		if err := s.Repo.Tag("1.0.0", "master"); err != nil {
			return err
		}
		// started before the minor line, never updated: safe
		if err := s.Repo.CreateAndCheckoutBranch("PRJ-1"); err != nil {
			return err
		}
		if err := s.Repo.CreateChangeAndCommit("fix for 1.1", "prj1"); err != nil {
			return err
		}
		if err := s.Repo.CheckoutBranch("master"); err != nil {
			return err
		}
		if err := s.Repo.CreateChangeAndCommit("work for 2.0", "master"); err != nil {
			return err
		}
		// started after master moved on: unsafe
		if err := s.Repo.CreateAndCheckoutBranch("PRJ-2"); err != nil {
			return err
		}
		if err := s.Repo.CreateChangeAndCommit("late fix", "prj2"); err != nil {
			return err
		}
		if err := s.Repo.CheckoutBranch("master"); err != nil {
			return err
		}
		for _, b := range []string{"master", "PRJ-1", "PRJ-2"} {
			if err := s.Repo.PushBranch("origin", b); err != nil {
				return err
			}
		}
		return nil
	})

	manager := release.NewManager(repo, release.Options{Splog: tui.NewSplogWithWriter(&bytes.Buffer{})})
	v := version.MustParse("1.1.0")

	require.NoError(t, manager.CheckReleasable(ctx, v))

	stable, err := manager.EnsureStableBranch(ctx, v)
	require.NoError(t, err)
	require.Equal(t, "minor/1.x", stable)

	tagged, err := scene.Repo.GetRevision("1.0.0")
	require.NoError(t, err)
	tip, err := scene.Repo.GetRevision("minor/1.x")
	require.NoError(t, err)
	require.Equal(t, tagged, tip)

	require.NoError(t, manager.CheckMergeSafety(ctx, "PRJ-1", v))
	require.ErrorIs(t, manager.CheckMergeSafety(ctx, "PRJ-2", v), bbterrors.ErrUnsafeMerge)

	rc, err := manager.TagReleaseCandidate(ctx, v, stable)
	require.NoError(t, err)
	require.Equal(t, "1.1.0-1", rc)

	final, err := manager.PromoteToFinal(ctx, v, 1)
	require.NoError(t, err)
	require.Equal(t, "1.1.0", final)
	require.ErrorIs(t, manager.CheckReleasable(ctx, v), bbterrors.ErrAlreadyReleased)
}

func TestCloneChecksOutCandidate(t *testing.T) {
	ctx := context.Background()
	scene, _ := openScene(t, func(s *testhelpers.Scene) error {
		if err := s.Repo.AnnotatedTag("1.0.0-1", "master"); err != nil {
			return err
		}
		if err := s.Repo.CreateChangeAndCommit("after candidate", "later"); err != nil {
			return err
		}
		if err := s.Repo.PushBranch("origin", "master"); err != nil {
			return err
		}
		return s.Repo.RunGitCommand("push", "origin", "--tags")
	})

	dir := filepath.Join(t.TempDir(), "prj-1.0.0-01")
	commit, err := git.Cloner{}.Clone(ctx, scene.RemoteDir, dir, "1.0.0-1")
	require.NoError(t, err)

	want, err := scene.Repo.GetRevision("1.0.0-1")
	require.NoError(t, err)
	require.Equal(t, want, commit)
	head, err := git.HeadCommit(dir)
	require.NoError(t, err)
	require.Equal(t, want, head)

	_, err = os.Stat(filepath.Join(dir, "later_test.txt"))
	require.True(t, os.IsNotExist(err))

	_, err = git.Cloner{}.Clone(ctx, scene.RemoteDir, filepath.Join(t.TempDir(), "x"), "9.9.9-1")
	require.Error(t, err)
}
