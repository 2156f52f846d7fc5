package release

import (
	"context"
	"fmt"

	bbterrors "bbt.dev/bbt/internal/errors"
	"bbt.dev/bbt/internal/version"
)

// CheckMergeSafety decides whether feature can be merged into the
// stabilization branch of v without dragging in commits from other release
// lines.
//
// The merge base of the feature and the branch the stabilization line forked
// from (the root branch for a minor, the minor line for a patch) must already
// be contained in the stabilization branch. Topologies this accepts:
//
//	---1----2------- master        feature started before the minor was cut
//	   \    \_______ minor
//	    \___________ feature
//
//	----1--------- master          feature started on the minor
//	    \_2_______ minor
//	      \_______ feature
//
// and rejects:
//
//	---1----2------- master        feature started after the minor was cut:
//	   \    \_______ feature       commits between 1 and 2 would ride along
//	    \___________ minor
//
//	---1--2--3------- master       master merged into the feature after the
//	   \__|___\______ feature      minor was cut: commits between 2 and 3
//	      \__________ minor        would ride along
//
// A feature that started before the minor and was merged back into master
// afterwards is also rejected even though nothing extra would be merged.
// The check is deliberately conservative.
//
// Majors are built on the root branch itself, so any feature may be merged.
// The repository is not mutated.
func (m *Manager) CheckMergeSafety(ctx context.Context, feature string, v version.Version) error {
	role, err := m.arith.Classify(v)
	if err != nil {
		return err
	}
	if !role.IsStabilized() {
		return nil
	}

	base, err := m.arith.Base(v)
	if err != nil {
		return err
	}
	parentBranch := m.namer.StableBranch(base)
	stableBranch := m.namer.StableBranch(v)

	forkPoint, err := m.repo.MergeBase(ctx, m.namer.RemoteRef(feature), m.namer.RemoteRef(parentBranch))
	if err != nil {
		return fmt.Errorf("failed to find where %s diverged from %s: %w", feature, parentBranch, err)
	}

	contained, err := m.repo.IsAncestor(ctx, forkPoint, stableBranch)
	if err != nil {
		return fmt.Errorf("failed to check ancestry of %s in %s: %w", forkPoint, stableBranch, err)
	}
	if !contained {
		return bbterrors.NewUnsafeMergeError(feature, v.String(), stableBranch)
	}

	m.splog.Debug("Branch %s can be merged into %s (fork point %s)", feature, stableBranch, forkPoint)
	return nil
}
