package git

import (
	"fmt"
	"os"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
)

// DefaultRemote is used when no remote name is configured
const DefaultRemote = "origin"

// Repository is a working copy bbt releases from. Queries read the object
// database with go-git; mutations shell out to git so that hooks, config and
// credentials behave exactly as they do for the operator.
type Repository struct {
	repo   *gogit.Repository
	path   string
	remote string
	runner *CommandRunner
}

// OpenRepository opens the git repository containing path
func OpenRepository(path, remote string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	root := absPath
	if worktree, err := repo.Worktree(); err == nil {
		root = worktree.Filesystem.Root()
	}

	if remote == "" {
		remote = DefaultRemote
	}

	return &Repository{
		repo:   repo,
		path:   root,
		remote: remote,
		runner: NewCommandRunner(root),
	}, nil
}

// FindRepoRoot returns the root directory of the repository containing dir.
// An empty dir means the current working directory.
func FindRepoRoot(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	return worktree.Filesystem.Root(), nil
}

// Root returns the root directory of the working copy
func (r *Repository) Root() string {
	return r.path
}

// Remote returns the name of the remote branches are shared through
func (r *Repository) Remote() string {
	return r.remote
}
