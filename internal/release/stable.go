package release

import (
	"context"
	"fmt"

	bbterrors "bbt.dev/bbt/internal/errors"
	"bbt.dev/bbt/internal/version"
)

// EnsureStableBranch makes sure the stabilization branch for v exists locally
// and returns its name. An existing local branch is left untouched. Otherwise
// the branch is created from its remote-tracking counterpart when someone has
// already started the line, or from the final tag of the base version when
// the line is new.
func (m *Manager) EnsureStableBranch(ctx context.Context, v version.Version) (string, error) {
	base, err := m.arith.Base(v)
	if err != nil {
		return "", err
	}
	branch := m.namer.StableBranch(v)

	exists, err := hasAny(m.repo.LocalBranches(ctx, branch))
	if err != nil {
		return "", fmt.Errorf("failed to list local branches: %w", err)
	}
	if exists {
		m.splog.Debug("Release branch %s for version %s already exists", branch, v)
		return branch, nil
	}

	remoteBranch := m.namer.RemoteRef(branch)
	onRemote, err := hasAny(m.repo.RemoteBranches(ctx, remoteBranch))
	if err != nil {
		return "", fmt.Errorf("failed to list remote branches: %w", err)
	}

	var startPoint string
	if onRemote {
		startPoint = remoteBranch
		m.splog.Info("Checkout release branch %s for version %s", branch, v)
	} else {
		startPoint = FinalTag(base)
		m.splog.Info("Create release branch %s for version %s from %s", branch, v, startPoint)
	}

	if err := m.repo.CreateBranch(ctx, branch, startPoint); err != nil {
		return "", bbterrors.NewBranchCreationError(branch, startPoint, err)
	}
	return branch, nil
}
