package git

import (
	"context"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Cloner clones a repository and checks out a release candidate
type Cloner struct{}

// Clone clones url into dir, checks out ref (usually a release candidate
// tag) on a detached HEAD and returns the checked out commit. dir must not
// exist or be empty.
func (Cloner) Clone(ctx context.Context, url, dir, ref string) (string, error) {
	repo, err := gogit.PlainCloneContext(ctx, dir, false, &gogit.CloneOptions{
		URL:  url,
		Tags: gogit.AllTags,
	})
	if err != nil {
		return "", fmt.Errorf("failed to clone %s into %s: %w", url, dir, err)
	}

	cloned := &Repository{repo: repo, path: dir, remote: DefaultRemote}
	commit, err := cloned.resolveCommit(ref)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s in clone: %w", ref, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}
	if err := worktree.Checkout(&gogit.CheckoutOptions{Hash: commit.Hash, Force: true}); err != nil {
		return "", fmt.Errorf("failed to checkout %s: %w", ref, err)
	}
	return HeadCommit(dir)
}

// HeadCommit returns the commit hash HEAD of the repository at dir points to
func HeadCommit(dir string) (string, error) {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return "", fmt.Errorf("failed to open repository: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	if head.Type() != plumbing.HashReference {
		return "", fmt.Errorf("HEAD of %s is not resolved", dir)
	}
	return head.Hash().String(), nil
}
