package git

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	bbterrors "bbt.dev/bbt/internal/errors"
)

// MergeBase returns the best common ancestor of two refs. Refs may be local
// branches, remote-tracking branches ("origin/x"), tags or commit hashes.
func (r *Repository) MergeBase(_ context.Context, refA, refB string) (string, error) {
	commitA, err := r.resolveCommit(refA)
	if err != nil {
		return "", err
	}
	commitB, err := r.resolveCommit(refB)
	if err != nil {
		return "", err
	}

	bases, err := commitA.MergeBase(commitB)
	if err != nil {
		return "", fmt.Errorf("failed to find merge base of %s and %s: %w", refA, refB, err)
	}
	if len(bases) == 0 {
		return "", bbterrors.NewNoCommonAncestorError(refA, refB)
	}
	return bases[0].Hash.String(), nil
}

// IsAncestor reports whether ref is reachable from the tip of branch
func (r *Repository) IsAncestor(_ context.Context, ref, branch string) (bool, error) {
	ancestor, err := r.resolveCommit(ref)
	if err != nil {
		return false, err
	}
	descendant, err := r.resolveCommit(branch)
	if err != nil {
		return false, err
	}

	// If they're the same, ancestor is an ancestor
	if ancestor.Hash == descendant.Hash {
		return true, nil
	}
	return ancestor.IsAncestor(descendant)
}

// resolveCommit resolves a ref to a commit, peeling annotated tags
func (r *Repository) resolveCommit(ref string) (*object.Commit, error) {
	hash, err := r.resolveRefHash(ref)
	if err != nil {
		return nil, err
	}

	if tag, err := r.repo.TagObject(hash); err == nil {
		commit, err := tag.Commit()
		if err != nil {
			return nil, fmt.Errorf("tag %s does not point to a commit: %w", ref, err)
		}
		return commit, nil
	}

	commit, err := r.repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", ref, err)
	}
	return commit, nil
}

func (r *Repository) resolveRefHash(ref string) (plumbing.Hash, error) {
	candidates := []plumbing.ReferenceName{
		plumbing.ReferenceName(ref),
		plumbing.NewBranchReferenceName(ref),
		plumbing.ReferenceName("refs/remotes/" + ref),
		plumbing.NewTagReferenceName(ref),
	}
	for _, name := range candidates {
		if resolved, err := r.repo.Reference(name, true); err == nil {
			return resolved.Hash(), nil
		}
	}

	// handles SHAs, short SHAs and expressions like HEAD~1
	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err == nil {
		return *hash, nil
	}

	return plumbing.ZeroHash, fmt.Errorf("failed to resolve ref %s: reference not found", ref)
}
