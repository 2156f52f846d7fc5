// Package errors provides sentinel errors and custom error types for bbt.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for release validation and git failures
var (
	// ErrInvalidVersion indicates a malformed version or one at or below the floor version
	ErrInvalidVersion = errors.New("invalid version")

	// ErrAlreadyReleased indicates that a final tag already exists for the version
	ErrAlreadyReleased = errors.New("version already released")

	// ErrPredecessorMissing indicates that the previous version was never released
	ErrPredecessorMissing = errors.New("previous version not released")

	// ErrSuccessorInProgress indicates that release candidates exist for the next version
	ErrSuccessorInProgress = errors.New("next version already started")

	// ErrUnsafeMerge indicates that merging a branch would bring unrelated commits along
	ErrUnsafeMerge = errors.New("unsafe merge")

	// ErrBranchCreationFailed indicates that a stabilization branch could not be created
	ErrBranchCreationFailed = errors.New("branch creation failed")

	// ErrNoCommonAncestor indicates that two refs share no history
	ErrNoCommonAncestor = errors.New("no common ancestor")

	// ErrExternalToolFailure indicates that an underlying git command failed
	ErrExternalToolFailure = errors.New("external tool failure")

	// ErrCandidateMissing indicates that no release candidate tag exists for a build
	ErrCandidateMissing = errors.New("release candidate not found")

	// ErrNoTasks indicates that a merge was requested without task branches
	ErrNoTasks = errors.New("no tasks requested")
)

// VersionError represents an error when a version string or value is not usable
type VersionError struct {
	Version string
	Reason  string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("invalid version number %s: %s", e.Version, e.Reason)
}

// Is returns true if the target error is ErrInvalidVersion
func (e *VersionError) Is(target error) bool {
	return target == ErrInvalidVersion
}

// NewVersionError creates a new VersionError
func NewVersionError(version, reason string) *VersionError {
	return &VersionError{Version: version, Reason: reason}
}

// ReleaseError represents a rejected release request. Kind is one of the
// release sentinels (ErrAlreadyReleased, ErrPredecessorMissing, ...).
type ReleaseError struct {
	Kind    error
	Version string
	Message string
}

func (e *ReleaseError) Error() string {
	return e.Message
}

// Is returns true if the target error is the release error's kind
func (e *ReleaseError) Is(target error) bool {
	return target == e.Kind
}

// NewAlreadyReleasedError creates a ReleaseError for a version that has a final tag
func NewAlreadyReleasedError(version string) *ReleaseError {
	return &ReleaseError{
		Kind:    ErrAlreadyReleased,
		Version: version,
		Message: fmt.Sprintf("cannot add features to %s version because it has already been released", version),
	}
}

// NewPredecessorMissingError creates a ReleaseError for a version whose predecessor is unreleased
func NewPredecessorMissingError(version, previous string) *ReleaseError {
	return &ReleaseError{
		Kind:    ErrPredecessorMissing,
		Version: version,
		Message: fmt.Sprintf("cannot create %s release because previous %s release does not exist", version, previous),
	}
}

// NewSuccessorInProgressError creates a ReleaseError for a version whose successor has started
func NewSuccessorInProgressError(version, next string) *ReleaseError {
	return &ReleaseError{
		Kind:    ErrSuccessorInProgress,
		Version: version,
		Message: fmt.Sprintf("cannot create %s release because %s release already started", version, next),
	}
}

// NewCandidateMissingError creates a ReleaseError for a build that was never tagged
func NewCandidateMissingError(version string, build int) *ReleaseError {
	return &ReleaseError{
		Kind:    ErrCandidateMissing,
		Version: version,
		Message: fmt.Sprintf("no release candidate %d for version %s", build, version),
	}
}

// UnsafeMergeError represents a feature branch that cannot be merged into a stabilization branch
type UnsafeMergeError struct {
	Feature string
	Version string
	Stable  string
}

func (e *UnsafeMergeError) Error() string {
	return fmt.Sprintf("cannot merge %[1]s to %[2]s because unexpected commits can be merged too. "+
		"You can rebase %[1]s on the beginning of %[3]s or create a new branch originated from %[3]s "+
		"and cherry-pick the necessary commits to it", e.Feature, e.Version, e.Stable)
}

// Is returns true if the target error is ErrUnsafeMerge
func (e *UnsafeMergeError) Is(target error) bool {
	return target == ErrUnsafeMerge
}

// NewUnsafeMergeError creates a new UnsafeMergeError
func NewUnsafeMergeError(feature, version, stable string) *UnsafeMergeError {
	return &UnsafeMergeError{Feature: feature, Version: version, Stable: stable}
}

// BranchCreationError represents a failure to create a stabilization branch
type BranchCreationError struct {
	BranchName string
	StartPoint string
	Err        error
}

func (e *BranchCreationError) Error() string {
	return fmt.Sprintf("failed to create branch %s from %s: %v", e.BranchName, e.StartPoint, e.Err)
}

// Is returns true if the target error is ErrBranchCreationFailed
func (e *BranchCreationError) Is(target error) bool {
	return target == ErrBranchCreationFailed
}

func (e *BranchCreationError) Unwrap() error {
	return e.Err
}

// NewBranchCreationError creates a new BranchCreationError
func NewBranchCreationError(branchName, startPoint string, err error) *BranchCreationError {
	return &BranchCreationError{BranchName: branchName, StartPoint: startPoint, Err: err}
}

// NoCommonAncestorError represents two refs without a merge base
type NoCommonAncestorError struct {
	RefA string
	RefB string
}

func (e *NoCommonAncestorError) Error() string {
	return fmt.Sprintf("no merge base found between %s and %s", e.RefA, e.RefB)
}

// Is returns true if the target error is ErrNoCommonAncestor
func (e *NoCommonAncestorError) Is(target error) bool {
	return target == ErrNoCommonAncestor
}

// NewNoCommonAncestorError creates a new NoCommonAncestorError
func NewNoCommonAncestorError(refA, refB string) *NoCommonAncestorError {
	return &NoCommonAncestorError{RefA: refA, RefB: refB}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

// Is returns true if the target error is ErrExternalToolFailure
func (e *GitCommandError) Is(target error) bool {
	return target == ErrExternalToolFailure
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}

// StepError names the pipeline step that failed. Steps already completed are
// not rolled back; the operator inspects the repository and repairs it.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// NewStepError creates a new StepError
func NewStepError(step string, err error) *StepError {
	return &StepError{Step: step, Err: err}
}
