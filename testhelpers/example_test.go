package testhelpers_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"bbt.dev/bbt/testhelpers"
)

func TestSceneStartsWithPublishedMaster(t *testing.T) {
	scene := testhelpers.NewScene(t, nil)

	testhelpers.ExpectBranches(t, scene.Repo, []string{"master"})
	testhelpers.ExpectRemoteBranches(t, scene.Repo, []string{"master"})
	testhelpers.ExpectCommits(t, scene.Repo, "master", []string{"initial"})
}

func TestSceneWithSetup(t *testing.T) {
	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		if err := s.Repo.CreateAndCheckoutBranch("feature"); err != nil {
			return err
		}
		if err := s.Repo.CreateChangeAndCommit("feature work", "feature"); err != nil {
			return err
		}
		return s.Repo.Tag("1.0.0-1", "feature")
	})

	testhelpers.ExpectBranches(t, scene.Repo, []string{"feature", "master"})
	testhelpers.ExpectTags(t, scene.Repo, []string{"1.0.0-1"})
	testhelpers.ExpectCommits(t, scene.Repo, "feature", []string{"feature work", "initial"})
}

func TestGitRepoMergeBranch(t *testing.T) {
	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		if err := s.Repo.CreateAndCheckoutBranch("PRJ-1"); err != nil {
			return err
		}
		if err := s.Repo.CreateChangeAndCommit("task work", "task"); err != nil {
			return err
		}
		return s.Repo.MergeBranch("master", "PRJ-1")
	})
	repo := scene.Repo

	branch, err := repo.CurrentBranchName()
	require.NoError(t, err)
	require.Equal(t, "master", branch)

	messages, err := repo.ListCurrentBranchCommitMessages()
	require.NoError(t, err)
	require.Equal(t, "Merge PRJ-1 into master", messages[0])
	require.Contains(t, messages, "task work")

	require.True(t, repo.RefExists("refs/heads/PRJ-1"))
	require.NoError(t, repo.DeleteBranch("PRJ-1"))
	require.False(t, repo.RefExists("refs/heads/PRJ-1"))
}

func TestFakeRepositoryMergeBase(t *testing.T) {
	ctx := context.Background()
	repo := testhelpers.NewFakeRepository("master")
	fork := repo.Tip("master")
	repo.Branch("feature", "master")
	repo.Commit("feature")
	repo.Commit("master")

	base, err := repo.MergeBase(ctx, "feature", "master")
	require.NoError(t, err)
	require.Equal(t, fork, base)

	repo.Merge("master", "feature")
	base, err = repo.MergeBase(ctx, "feature", "master")
	require.NoError(t, err)
	require.Equal(t, repo.Tip("feature"), base)
	require.Empty(t, repo.Mutations)
}

func TestFakeRepositoryMergesRemoteOnlyBranch(t *testing.T) {
	ctx := context.Background()
	repo := testhelpers.NewFakeRepository("master")
	repo.Branch("PRJ-1", "master")
	task := repo.Commit("PRJ-1")
	repo.Publish("master", "PRJ-1")
	repo.DropLocal("PRJ-1")

	require.NoError(t, repo.MergeNoFastForward(ctx, "PRJ-1", "master", "PRJ merge tasks PRJ-1"))
	require.True(t, repo.HasLocalBranch("PRJ-1"))
	require.Equal(t, "master", repo.Head())

	contained, err := repo.IsAncestor(ctx, task, "master")
	require.NoError(t, err)
	require.True(t, contained)

	require.NoError(t, repo.DeleteLocalBranch(ctx, "PRJ-1"))
	require.False(t, repo.HasLocalBranch("PRJ-1"))
	require.True(t, repo.HasRemoteBranch("PRJ-1"))

	err = repo.MergeNoFastForward(ctx, "PRJ-9", "master", "PRJ merge tasks PRJ-9")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown ref PRJ-9")
}
