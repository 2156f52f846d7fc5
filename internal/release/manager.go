// Package release implements the release state machine: which branch a
// version is built on, whether a version may be released, whether a task
// branch may be merged into a stabilization branch, and how release tags are
// named and created.
package release

import (
	"bbt.dev/bbt/internal/tui"
	"bbt.dev/bbt/internal/version"
)

// Options configures a Manager
type Options struct {
	// Floor is the version below which nothing can be released
	Floor version.Version
	// RootBranch is the branch major releases are built from
	RootBranch string
	// Remote is the name of the shared remote
	Remote string
	// Splog receives progress messages; defaults to console output
	Splog *tui.Splog
}

// Manager runs release validation and branch/tag bookkeeping against a repository
type Manager struct {
	repo  Repository
	arith version.Arithmetic
	namer Namer
	splog *tui.Splog
}

// NewManager creates a Manager operating on repo
func NewManager(repo Repository, opts Options) *Manager {
	splog := opts.Splog
	if splog == nil {
		splog = tui.NewSplog()
	}
	return &Manager{
		repo:  repo,
		arith: version.NewArithmetic(opts.Floor),
		namer: NewNamer(opts.RootBranch, opts.Remote),
		splog: splog,
	}
}

// Arithmetic returns the version arithmetic bound to the manager's floor
func (m *Manager) Arithmetic() version.Arithmetic {
	return m.arith
}

// Namer returns the manager's branch namer
func (m *Manager) Namer() Namer {
	return m.namer
}

// StableBranch returns the stabilization branch for v. Versions at or below
// the floor have no branch and fail with an InvalidVersion error.
func (m *Manager) StableBranch(v version.Version) (string, error) {
	if _, err := m.arith.Classify(v); err != nil {
		return "", err
	}
	return m.namer.StableBranch(v), nil
}

// hasAny reports whether the query returned at least one name
func hasAny(names []string, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}
