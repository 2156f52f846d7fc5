package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"bbt.dev/bbt/internal/archive"
	bbterrors "bbt.dev/bbt/internal/errors"
	"bbt.dev/bbt/internal/git"
	"bbt.dev/bbt/internal/tui"
	"bbt.dev/bbt/internal/upload"
)

// Cloner clones a repository, checks out ref and returns the checked out commit
type Cloner interface {
	Clone(ctx context.Context, url, dir, ref string) (string, error)
}

// ConfirmFunc asks the operator a yes/no question
type ConfirmFunc func(prompt string, defaultYes bool) (bool, error)

// BuildOptions configures Build
type BuildOptions struct {
	// Repository is the clone URL of the project
	Repository string
	// TempDir holds the work directory and the archive
	TempDir string
	// Command is run in the clone with PACKAGE set; empty skips the build step
	Command string
	// Interactive asks before removing a stale work directory and before
	// running the command
	Interactive bool
	// Terminate stops after the build command, skipping archive and upload
	Terminate bool
	// NoCleanup keeps the work directory and the archive
	NoCleanup bool

	Cloner   Cloner
	Executor Executor
	// Uploader receives the archive; nil skips the upload
	Uploader upload.Uploader
	Confirm  ConfirmFunc
}

// BuildResult describes a finished build
type BuildResult struct {
	Package  string
	Tag      string
	Commit   string
	WorkDir  string
	Archive  string
	Location string
	// Aborted is set when the operator declined to replace the work directory
	// or to run the build command
	Aborted bool
	// Terminated is set when the run stopped after the build command
	Terminated bool
}

func (o *BuildOptions) applyDefaults() {
	if o.Cloner == nil {
		o.Cloner = git.Cloner{}
	}
	if o.Executor == nil {
		o.Executor = NewShellExecutor()
	}
	if o.Confirm == nil {
		o.Confirm = tui.PromptConfirm
	}
	if o.TempDir == "" {
		o.TempDir = os.TempDir()
	}
}

// PackageName names the build of candidate n of version
func (p *Pipeline) PackageName(version string, n int) string {
	return fmt.Sprintf("%s-%s-%02d", p.projectKey, version, n)
}

// Build checks out a release candidate into a fresh work directory, runs the
// build command, packs the result into <package>.tgz and uploads it under
// <project>/.
func (p *Pipeline) Build(ctx context.Context, req Request, opts BuildOptions) (result BuildResult, err error) {
	opts.applyDefaults()
	if opts.Repository == "" {
		return result, errors.New("no repository to clone: set repository in the configuration")
	}

	v := req.Version
	n, err := p.resolveBuild(ctx, v, req.Build)
	if err != nil {
		return result, err
	}
	tag, err := p.manager.CandidateTag(ctx, v, n)
	if err != nil {
		return result, err
	}

	result.Package = p.PackageName(v.String(), n)
	result.Tag = tag
	result.WorkDir = filepath.Join(opts.TempDir, result.Package)

	ok, err := p.clearWorkDir(result.WorkDir, opts)
	if err != nil {
		return result, err
	}
	if !ok {
		p.splog.Warn("Keeping %s, build aborted", result.WorkDir)
		result.Aborted = true
		return result, nil
	}

	if err := os.MkdirAll(opts.TempDir, 0750); err != nil {
		return result, fmt.Errorf("failed to create %s: %w", opts.TempDir, err)
	}
	defer func() {
		if opts.NoCleanup || result.Aborted {
			return
		}
		if rmErr := p.cleanup(result); rmErr != nil && err == nil {
			err = rmErr
		}
	}()

	p.splog.Info("Checking out %s into %s", tag, result.WorkDir)
	commit, err := opts.Cloner.Clone(ctx, opts.Repository, result.WorkDir, tag)
	if err != nil {
		return result, bbterrors.NewStepError("clone "+opts.Repository, err)
	}
	result.Commit = commit
	p.splog.Debug("Checked out %s at %s", tag, commit)

	ran, err := p.runCommand(ctx, result, opts)
	if err != nil {
		return result, err
	}
	if !ran {
		p.splog.Warn("Keeping %s, build aborted", result.WorkDir)
		result.Aborted = true
		return result, nil
	}
	if opts.Terminate {
		p.splog.Info("Stopping after the build command")
		result.Terminated = true
		return result, nil
	}

	result.Archive = filepath.Join(opts.TempDir, result.Package+".tgz")
	p.splog.Info("Archiving %s", result.Archive)
	if err := archive.TarGz(ctx, result.Archive, opts.TempDir, result.Package); err != nil {
		return result, bbterrors.NewStepError("archive "+result.Package, err)
	}

	if opts.Uploader == nil {
		p.splog.Warn("No upload_url configured, skipping upload of %s", result.Archive)
		return result, nil
	}
	location, err := opts.Uploader.Upload(ctx, result.Archive, p.projectKey+"/"+result.Package+".tgz")
	if err != nil {
		return result, bbterrors.NewStepError("upload "+result.Archive, err)
	}
	result.Location = location
	p.splog.Info("Uploaded %s", location)
	return result, nil
}

// clearWorkDir removes a leftover work directory. It returns false when the
// operator wants to keep it.
func (p *Pipeline) clearWorkDir(dir string, opts BuildOptions) (bool, error) {
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return true, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to inspect %s: %w", dir, err)
	}

	if opts.Interactive {
		remove, err := opts.Confirm(fmt.Sprintf("%s already exists. Remove it?", dir), true)
		if err != nil {
			return false, err
		}
		if !remove {
			return false, nil
		}
	}
	p.splog.Debug("Removing %s", dir)
	if err := os.RemoveAll(dir); err != nil {
		return false, fmt.Errorf("failed to remove %s: %w", dir, err)
	}
	return true, nil
}

// runCommand runs the build command in the clone. It returns false when the
// operator declined to run it.
func (p *Pipeline) runCommand(ctx context.Context, result BuildResult, opts BuildOptions) (bool, error) {
	if opts.Command == "" {
		return true, nil
	}
	if opts.Interactive {
		run, err := opts.Confirm(fmt.Sprintf("Execute %q in %s?", opts.Command, result.WorkDir), true)
		if err != nil {
			return false, err
		}
		if !run {
			return false, nil
		}
	}
	p.splog.Info("Running %s", opts.Command)
	env := []string{"PACKAGE=" + result.Package}
	if err := opts.Executor.Execute(ctx, result.WorkDir, opts.Command, env); err != nil {
		return false, bbterrors.NewStepError("build "+result.Package, err)
	}
	return true, nil
}

func (p *Pipeline) cleanup(result BuildResult) error {
	if err := os.RemoveAll(result.WorkDir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", result.WorkDir, err)
	}
	if result.Archive != "" {
		if err := os.Remove(result.Archive); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", result.Archive, err)
		}
	}
	return nil
}
