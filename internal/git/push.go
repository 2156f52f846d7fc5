package git

import (
	"context"
	"fmt"
)

// Fetch updates remote-tracking branches and tags, pruning deleted branches
func (r *Repository) Fetch(ctx context.Context) error {
	_, err := r.runner.Run(ctx, "fetch", "--prune", "--tags", r.remote)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", r.remote, err)
	}
	return nil
}

// PushAll pushes every local branch to the remote
func (r *Repository) PushAll(ctx context.Context) error {
	_, err := r.runner.Run(ctx, "push", r.remote, "--all")
	if err != nil {
		return fmt.Errorf("failed to push branches to %s: %w", r.remote, err)
	}
	return nil
}

// PushTags pushes every tag to the remote
func (r *Repository) PushTags(ctx context.Context) error {
	_, err := r.runner.Run(ctx, "push", r.remote, "--tags")
	if err != nil {
		return fmt.Errorf("failed to push tags to %s: %w", r.remote, err)
	}
	return nil
}

// DeleteRemoteBranch deletes a branch on the remote
func (r *Repository) DeleteRemoteBranch(ctx context.Context, name string) error {
	_, err := r.runner.Run(ctx, "push", r.remote, "--delete", name)
	if err != nil {
		return fmt.Errorf("failed to delete %s on %s: %w", name, r.remote, err)
	}
	return nil
}
