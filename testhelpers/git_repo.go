package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const textFileName = "test.txt"

// GitRepo represents a Git repository for testing purposes
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a new Git repository in dir with "master" as the
// initial branch and an initial commit on it.
func NewGitRepo(dir string) (*GitRepo, error) {
	// Use git -c flags to avoid reading global config
	cmd := exec.Command("git", "-c", "init.defaultBranch=master", "-c", "core.autocrlf=false", "init", dir, "-b", "master")
	cmd.Env = gitEnv()
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to init repo: %w", err)
	}

	repo := &GitRepo{Dir: dir}

	// Configure Git user (required for commits)
	if err := repo.RunGitCommand("config", "user.name", "Test User"); err != nil {
		return nil, err
	}
	if err := repo.RunGitCommand("config", "user.email", "test@example.com"); err != nil {
		return nil, err
	}
	if err := repo.CreateChangeAndCommit("initial", "init"); err != nil {
		return nil, err
	}

	return repo, nil
}

func gitEnv() []string {
	return append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null", "GIT_CONFIG_NOSYSTEM=1")
}

// RunGitCommand executes a git command in the repository directory
func (r *GitRepo) RunGitCommand(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = gitEnv()
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git %s failed: %w\n%s", strings.Join(args, " "), err, output)
	}
	return nil
}

// RunGitCommandAndGetOutput executes a git command and returns its trimmed output
func (r *GitRepo) RunGitCommandAndGetOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = gitEnv()
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(output)), nil
}

// CreateChangeAndCommit writes a file named after prefix and commits it on
// the current branch
func (r *GitRepo) CreateChangeAndCommit(textValue string, prefix string) error {
	fileName := textFileName
	if prefix != "" {
		fileName = prefix + "_" + fileName
	}
	filePath := filepath.Join(r.Dir, fileName)

	if err := os.WriteFile(filePath, []byte(textValue), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := r.RunGitCommand("add", fileName); err != nil {
		return err
	}
	return r.RunGitCommand("commit", "-m", textValue)
}

// CreateBranch creates a branch at the current HEAD without checking it out
func (r *GitRepo) CreateBranch(name string) error {
	return r.RunGitCommand("branch", name)
}

// CreateAndCheckoutBranch creates a branch at the current HEAD and checks it out
func (r *GitRepo) CreateAndCheckoutBranch(name string) error {
	return r.RunGitCommand("checkout", "-b", name)
}

// CheckoutBranch checks out an existing branch
func (r *GitRepo) CheckoutBranch(name string) error {
	return r.RunGitCommand("checkout", name)
}

// MergeBranch merges mergeIn into branch with a merge commit
func (r *GitRepo) MergeBranch(branch, mergeIn string) error {
	if err := r.CheckoutBranch(branch); err != nil {
		return err
	}
	return r.RunGitCommand("merge", "--no-ff", mergeIn, "-m", fmt.Sprintf("Merge %s into %s", mergeIn, branch))
}

// Tag creates a lightweight tag at ref
func (r *GitRepo) Tag(name, ref string) error {
	return r.RunGitCommand("tag", name, ref)
}

// AnnotatedTag creates an annotated tag at ref
func (r *GitRepo) AnnotatedTag(name, ref string) error {
	return r.RunGitCommand("tag", "-a", name, "-m", "release "+name, ref)
}

// CreateBareRemote creates a bare repository next to the working copy and
// registers it as a remote
func (r *GitRepo) CreateBareRemote(name string) (string, error) {
	remoteDir := filepath.Join(filepath.Dir(r.Dir), name+".git")
	cmd := exec.Command("git", "init", "--bare", "-b", "master", remoteDir)
	cmd.Env = gitEnv()
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to create bare remote: %w", err)
	}
	if err := r.RunGitCommand("remote", "add", name, remoteDir); err != nil {
		return "", err
	}
	return remoteDir, nil
}

// PushBranch pushes a branch to a remote
func (r *GitRepo) PushBranch(remote, branch string) error {
	return r.RunGitCommand("push", remote, branch)
}

// DeleteBranch force-deletes a local branch
func (r *GitRepo) DeleteBranch(name string) error {
	return r.RunGitCommand("branch", "-D", name)
}

// GetRevision returns the commit a revision resolves to
func (r *GitRepo) GetRevision(rev string) (string, error) {
	return r.RunGitCommandAndGetOutput("rev-parse", rev+"^{commit}")
}

// CurrentBranchName returns the checked out branch
func (r *GitRepo) CurrentBranchName() (string, error) {
	return r.RunGitCommandAndGetOutput("rev-parse", "--abbrev-ref", "HEAD")
}

// RefExists reports whether a fully qualified ref exists
func (r *GitRepo) RefExists(ref string) bool {
	return r.RunGitCommand("show-ref", "--verify", "--quiet", ref) == nil
}

// ListCurrentBranchCommitMessages returns the subjects of HEAD's history, newest first
func (r *GitRepo) ListCurrentBranchCommitMessages() ([]string, error) {
	output, err := r.RunGitCommandAndGetOutput("log", "--format=%s")
	if err != nil {
		return nil, err
	}
	if output == "" {
		return []string{}, nil
	}
	return strings.Split(output, "\n"), nil
}
