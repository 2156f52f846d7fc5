package git

import (
	"context"
	"fmt"
)

// CreateBranch creates a local branch at startPoint. A remote-tracking start
// point makes the new branch track it.
func (r *Repository) CreateBranch(ctx context.Context, name, startPoint string) error {
	_, err := r.runner.Run(ctx, "branch", name, startPoint)
	if err != nil {
		return fmt.Errorf("failed to create branch %s from %s: %w", name, startPoint, err)
	}
	return nil
}

// Checkout checks out a branch. A branch that only exists on the remote gets
// a local tracking branch.
func (r *Repository) Checkout(ctx context.Context, ref string) error {
	_, err := r.runner.Run(ctx, "checkout", ref)
	if err != nil {
		return fmt.Errorf("failed to checkout %s: %w", ref, err)
	}
	return nil
}

// MergeNoFastForward merges from into to with a merge commit, even when a
// fast-forward would be possible. from is checked out first so a task that
// only exists on the remote gets a local branch that can be deleted afterwards.
func (r *Repository) MergeNoFastForward(ctx context.Context, from, to, message string) error {
	if err := r.Checkout(ctx, from); err != nil {
		return err
	}
	if err := r.Checkout(ctx, to); err != nil {
		return err
	}
	_, err := r.runner.Run(ctx, "merge", "--no-ff", from, "-m", message)
	if err != nil {
		return fmt.Errorf("failed to merge %s into %s: %w", from, to, err)
	}
	return nil
}

// CreateTag creates a lightweight tag at atRef
func (r *Repository) CreateTag(ctx context.Context, name, atRef string) error {
	_, err := r.runner.Run(ctx, "tag", name, atRef)
	if err != nil {
		return fmt.Errorf("failed to create tag %s at %s: %w", name, atRef, err)
	}
	return nil
}

// DeleteLocalBranch deletes a fully merged local branch
func (r *Repository) DeleteLocalBranch(ctx context.Context, name string) error {
	_, err := r.runner.Run(ctx, "branch", "-d", name)
	if err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", name, err)
	}
	return nil
}
