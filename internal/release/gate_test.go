package release_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	bbterrors "bbt.dev/bbt/internal/errors"
	"bbt.dev/bbt/internal/version"
)

func TestCheckReleasable(t *testing.T) {
	ctx := context.Background()

	t.Run("first release passes with no tags", func(t *testing.T) {
		m, repo := newManager(t)
		require.NoError(t, m.CheckReleasable(ctx, version.MustParse("1.0.0")))
		require.NoError(t, m.CheckReleasable(ctx, version.MustParse("0.1.0")))
		require.Empty(t, repo.Mutations)
	})

	t.Run("rejects released version", func(t *testing.T) {
		m, repo := newManager(t)
		repo.Tag("1.0.0", "master")

		err := m.CheckReleasable(ctx, version.MustParse("1.0.0"))
		require.ErrorIs(t, err, bbterrors.ErrAlreadyReleased)
		require.Contains(t, err.Error(), "1.0.0")
	})

	t.Run("rejects missing predecessor", func(t *testing.T) {
		m, _ := newManager(t)

		err := m.CheckReleasable(ctx, version.MustParse("1.1.0"))
		require.ErrorIs(t, err, bbterrors.ErrPredecessorMissing)
		require.Contains(t, err.Error(), "1.0.0")
	})

	t.Run("passes with released predecessor", func(t *testing.T) {
		m, repo := newManager(t)
		repo.Tag("1.0.0", "master")
		repo.Tag("1.1.0-1", "master")

		require.NoError(t, m.CheckReleasable(ctx, version.MustParse("1.1.0")))
	})

	t.Run("rejects started successor", func(t *testing.T) {
		m, repo := newManager(t)
		repo.Tag("1.0.0", "master")
		repo.Tag("1.2.0-1", "master")

		err := m.CheckReleasable(ctx, version.MustParse("1.1.0"))
		require.ErrorIs(t, err, bbterrors.ErrSuccessorInProgress)
		require.Contains(t, err.Error(), "1.2.0")
	})

	t.Run("successor check ignores final tags", func(t *testing.T) {
		m, repo := newManager(t)
		repo.Tag("1.2.1", "master")
		repo.Tag("1.2.3", "master")
		repo.Tag("1.2.30-1", "master")

		require.NoError(t, m.CheckReleasable(ctx, version.MustParse("1.2.2")))
	})

	t.Run("already released wins over other failures", func(t *testing.T) {
		m, repo := newManager(t)
		repo.Tag("1.1.0", "master")
		repo.Tag("1.2.0-1", "master")

		err := m.CheckReleasable(ctx, version.MustParse("1.1.0"))
		require.ErrorIs(t, err, bbterrors.ErrAlreadyReleased)
	})

	t.Run("predecessor wins over successor", func(t *testing.T) {
		m, repo := newManager(t)
		repo.Tag("1.2.0-1", "master")

		err := m.CheckReleasable(ctx, version.MustParse("1.1.0"))
		require.ErrorIs(t, err, bbterrors.ErrPredecessorMissing)
	})

	t.Run("rejects floor version", func(t *testing.T) {
		m, repo := newManager(t)

		err := m.CheckReleasable(ctx, version.Zero)
		require.ErrorIs(t, err, bbterrors.ErrInvalidVersion)
		require.Zero(t, repo.GraphCalls)
	})
}
