// Package version implements the three-component release versions bbt works
// with and the arithmetic that drives branch topology: previous, next and
// base versions, and the major/minor/patch role of a version.
package version

import (
	"fmt"
	"math"

	"github.com/Masterminds/semver/v3"

	bbterrors "bbt.dev/bbt/internal/errors"
)

// Version is a MAJOR.MINOR.PATCH release version, ordered lexicographically.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Zero is the default floor version.
var Zero = Version{}

// New creates a version from its components
func New(major, minor, patch int) (Version, error) {
	if major < 0 || minor < 0 || patch < 0 {
		return Version{}, bbterrors.NewVersionError(
			fmt.Sprintf("%d.%d.%d", major, minor, patch), "components must be non-negative")
	}
	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

// Parse parses a strict MAJOR.MINOR.PATCH string. Prerelease and build
// metadata suffixes are rejected: in bbt "1.2.0-03" is a tag, not a version.
func Parse(s string) (Version, error) {
	sv, err := semver.StrictNewVersion(s)
	if err != nil {
		return Version{}, bbterrors.NewVersionError(s, err.Error())
	}
	if sv.Prerelease() != "" || sv.Metadata() != "" {
		return Version{}, bbterrors.NewVersionError(s, "prerelease and metadata suffixes are not allowed")
	}
	if sv.Major() > math.MaxInt32 || sv.Minor() > math.MaxInt32 || sv.Patch() > math.MaxInt32 {
		return Version{}, bbterrors.NewVersionError(s, "component out of range")
	}
	return Version{Major: int(sv.Major()), Minor: int(sv.Minor()), Patch: int(sv.Patch())}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or 1 when v is lower than, equal to or greater than o
func (v Version) Compare(o Version) int {
	switch {
	case v.Major != o.Major:
		return cmpInt(v.Major, o.Major)
	case v.Minor != o.Minor:
		return cmpInt(v.Minor, o.Minor)
	default:
		return cmpInt(v.Patch, o.Patch)
	}
}

// Less reports whether v sorts before o
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

// Role returns the release role of the version. It is not floor-checked;
// use Arithmetic.Classify for releasable versions.
func (v Version) Role() Role {
	switch {
	case v.Patch > 0:
		return RolePatch
	case v.Minor > 0:
		return RoleMinor
	default:
		return RoleMajor
	}
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
