package release

import (
	"context"
	"fmt"

	bbterrors "bbt.dev/bbt/internal/errors"
	"bbt.dev/bbt/internal/version"
)

// CheckReleasable verifies that v can be built: it must not be released yet,
// its predecessor must be released (unless the predecessor is the floor), and
// no release candidate may exist for its successor, which shares the
// stabilization branch. Only tags are queried.
func (m *Manager) CheckReleasable(ctx context.Context, v version.Version) error {
	prev, err := m.arith.Previous(v)
	if err != nil {
		return err
	}
	next, err := m.arith.Next(v)
	if err != nil {
		return err
	}

	m.splog.Debug("Checking version %s before release", v)

	released, err := hasAny(m.repo.Tags(ctx, FinalTag(v)))
	if err != nil {
		return fmt.Errorf("failed to list tags for %s: %w", v, err)
	}
	if released {
		return bbterrors.NewAlreadyReleasedError(v.String())
	}

	if !m.arith.IsFloor(prev) {
		prevReleased, err := hasAny(m.repo.Tags(ctx, FinalTag(prev)))
		if err != nil {
			return fmt.Errorf("failed to list tags for %s: %w", prev, err)
		}
		if !prevReleased {
			return bbterrors.NewPredecessorMissingError(v.String(), prev.String())
		}
	}

	nextStarted, err := hasAny(m.repo.Tags(ctx, candidatePattern(next)))
	if err != nil {
		return fmt.Errorf("failed to list tags for %s: %w", next, err)
	}
	if nextStarted {
		return bbterrors.NewSuccessorInProgressError(v.String(), next.String())
	}

	m.splog.Debug("Version %s can be released", v)
	return nil
}
