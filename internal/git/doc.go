// Package git provides the git side of bbt.
//
// It implements release.Repository on top of a working copy:
//   - Commit graph queries (branches, tags, merge bases, ancestry) through go-git
//   - Mutations (branch, checkout, merge, tag, push, delete) through the git CLI
//   - Cloning a release candidate for a build
//
// This package should be the only place where direct git commands are executed.
package git
