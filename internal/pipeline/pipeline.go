package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	bbterrors "bbt.dev/bbt/internal/errors"
	"bbt.dev/bbt/internal/release"
	"bbt.dev/bbt/internal/tui"
	"bbt.dev/bbt/internal/version"
)

// Options configures a Pipeline
type Options struct {
	// ProjectKey prefixes merge commit messages
	ProjectKey string
	// Splog receives progress messages; defaults to console output
	Splog *tui.Splog
}

// Pipeline runs release operations against one repository
type Pipeline struct {
	repo       release.Repository
	manager    *release.Manager
	projectKey string
	splog      *tui.Splog
	runID      string
}

// New creates a Pipeline. Log records of the run carry a unique run id.
func New(repo release.Repository, manager *release.Manager, opts Options) *Pipeline {
	splog := opts.Splog
	if splog == nil {
		splog = tui.NewSplog()
	}
	runID := uuid.NewString()
	return &Pipeline{
		repo:       repo,
		manager:    manager,
		projectKey: opts.ProjectKey,
		splog:      splog.With("run", runID),
		runID:      runID,
	}
}

// RunID identifies this pipeline run in the log file
func (p *Pipeline) RunID() string {
	return p.runID
}

// MergeTasks merges every task branch into the stabilization branch of the
// requested version.
//
// The version is checked, the stabilization branch ensured and every task
// validated before the first merge, so a rejected request leaves nothing
// half merged. Each merged task's local branch is deleted at once; its remote
// branch is only recorded in the returned Deletions and removed by Push.
// On a git failure the deletions gathered so far are returned with the error.
func (p *Pipeline) MergeTasks(ctx context.Context, req Request) (Deletions, error) {
	var deletions Deletions
	if len(req.Tasks) == 0 {
		return deletions, bbterrors.ErrNoTasks
	}

	if err := p.manager.CheckReleasable(ctx, req.Version); err != nil {
		return deletions, err
	}
	stable, err := p.manager.EnsureStableBranch(ctx, req.Version)
	if err != nil {
		return deletions, err
	}

	for _, task := range req.Tasks {
		if err := p.manager.CheckMergeSafety(ctx, task, req.Version); err != nil {
			return deletions, err
		}
	}

	for _, task := range req.Tasks {
		message := fmt.Sprintf("%s merge tasks %s", p.projectKey, task)
		p.splog.Info("Merging %s into %s", task, stable)
		if err := p.repo.MergeNoFastForward(ctx, task, stable, message); err != nil {
			return deletions, bbterrors.NewStepError(fmt.Sprintf("merge %s into %s", task, stable), err)
		}
		if err := p.repo.DeleteLocalBranch(ctx, task); err != nil {
			return deletions, bbterrors.NewStepError(fmt.Sprintf("delete local branch %s", task), err)
		}
		deletions = deletions.Add(task)
	}

	p.splog.Info("Merged %d task(s) into %s", len(req.Tasks), stable)
	return deletions, nil
}

// ReleaseCandidate tags the tip of the stabilization branch of v as its next
// release candidate
func (p *Pipeline) ReleaseCandidate(ctx context.Context, v version.Version) (string, error) {
	if err := p.manager.CheckReleasable(ctx, v); err != nil {
		return "", err
	}
	stable, err := p.manager.EnsureStableBranch(ctx, v)
	if err != nil {
		return "", err
	}
	tag, err := p.manager.TagReleaseCandidate(ctx, v, stable)
	if err != nil {
		return "", bbterrors.NewStepError(fmt.Sprintf("tag release candidate of %s", v), err)
	}
	return tag, nil
}

// Release tags the chosen release candidate of v as the final release
func (p *Pipeline) Release(ctx context.Context, v version.Version, build Build) (string, error) {
	n, err := p.resolveBuild(ctx, v, build)
	if err != nil {
		return "", err
	}
	return p.manager.PromoteToFinal(ctx, v, n)
}

// Push sends branches and tags to the remote, then deletes the pending
// remote branches. The deletions that were not carried out are returned, so
// a failed push can be retried by the operator without losing them.
func (p *Pipeline) Push(ctx context.Context, deletions Deletions) (Deletions, error) {
	if err := p.repo.PushAll(ctx); err != nil {
		return deletions, bbterrors.NewStepError("push branches", err)
	}
	if err := p.repo.PushTags(ctx); err != nil {
		return deletions, bbterrors.NewStepError("push tags", err)
	}

	pending := deletions.Branches()
	for i, branch := range pending {
		if err := p.repo.DeleteRemoteBranch(ctx, branch); err != nil {
			return NewDeletions(pending[i:]...), bbterrors.NewStepError(fmt.Sprintf("delete remote branch %s", branch), err)
		}
		p.splog.Debug("Deleted remote branch %s", branch)
	}
	p.splog.Info("Pushed branches and tags")
	return Deletions{}, nil
}

// resolveBuild turns a build identifier into an existing candidate ordinal
func (p *Pipeline) resolveBuild(ctx context.Context, v version.Version, build Build) (int, error) {
	if !build.IsLatest() {
		return build.Ordinal, nil
	}
	last, err := p.manager.LastBuildOrdinal(ctx, v)
	if err != nil {
		return 0, err
	}
	if last == 0 {
		return 0, &bbterrors.ReleaseError{
			Kind:    bbterrors.ErrCandidateMissing,
			Version: v.String(),
			Message: fmt.Sprintf("no release candidates for version %s", v),
		}
	}
	return last, nil
}
