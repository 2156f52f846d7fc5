package release

import "context"

// Graph is the read side of the repository: the minimal set of commit graph
// queries release validation needs. Patterns use glob syntax as accepted by
// `git branch --list` and `git tag -l`.
type Graph interface {
	// LocalBranches returns local branch names matching pattern
	LocalBranches(ctx context.Context, pattern string) ([]string, error)
	// RemoteBranches returns remote-tracking branch names ("origin/x") matching pattern
	RemoteBranches(ctx context.Context, pattern string) ([]string, error)
	// Tags returns tag names matching pattern
	Tags(ctx context.Context, pattern string) ([]string, error)
	// MergeBase returns the best common ancestor of two refs.
	// It fails with errors.ErrNoCommonAncestor when the histories are unrelated.
	MergeBase(ctx context.Context, refA, refB string) (string, error)
	// IsAncestor reports whether ref is reachable from branch
	IsAncestor(ctx context.Context, ref, branch string) (bool, error)
}

// Mutator is the write side of the repository. Every method fails with an
// errors.GitCommandError carrying the tool's diagnostics.
type Mutator interface {
	CreateBranch(ctx context.Context, name, startPoint string) error
	Checkout(ctx context.Context, ref string) error
	MergeNoFastForward(ctx context.Context, from, to, message string) error
	CreateTag(ctx context.Context, name, atRef string) error
	DeleteLocalBranch(ctx context.Context, name string) error
	DeleteRemoteBranch(ctx context.Context, name string) error
	PushAll(ctx context.Context) error
	PushTags(ctx context.Context) error
}

// Repository combines the query and mutation ports
type Repository interface {
	Graph
	Mutator
}
