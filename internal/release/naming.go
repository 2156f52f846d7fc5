package release

import (
	"fmt"

	"bbt.dev/bbt/internal/version"
)

// DefaultRootBranch is the branch major releases are built from
const DefaultRootBranch = "master"

// DefaultRemote is the remote stabilization branches are shared through
const DefaultRemote = "origin"

// Namer derives branch and ref names for versions
type Namer struct {
	Root   string
	Remote string
}

// NewNamer creates a Namer, falling back to the default root and remote names
func NewNamer(root, remote string) Namer {
	if root == "" {
		root = DefaultRootBranch
	}
	if remote == "" {
		remote = DefaultRemote
	}
	return Namer{Root: root, Remote: remote}
}

// StableBranch returns the stabilization branch a version is built on.
// All minors of a major share "minor/<major>.x"; all patches of a minor share
// "minor/<major>.<minor>.x"; majors are built on the root branch.
func (n Namer) StableBranch(v version.Version) string {
	switch v.Role() {
	case version.RoleMinor:
		return fmt.Sprintf("minor/%d.x", v.Major)
	case version.RolePatch:
		return fmt.Sprintf("minor/%d.%d.x", v.Major, v.Minor)
	default:
		return n.Root
	}
}

// RemoteRef returns the remote-tracking ref name of a branch
func (n Namer) RemoteRef(branch string) string {
	return n.Remote + "/" + branch
}
