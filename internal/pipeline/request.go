// Package pipeline coordinates release runs: merging task branches into a
// stabilization branch, tagging candidates and releases, pushing, and
// building, archiving and uploading a candidate. Every step runs
// sequentially; the first failure aborts the run.
package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"bbt.dev/bbt/internal/version"
)

// Latest selects the most recent release candidate
const Latest = "latest"

// Build identifies a release candidate build: a positive ordinal or the latest one
type Build struct {
	Ordinal int
}

// IsLatest reports whether the build selects the latest candidate
func (b Build) IsLatest() bool {
	return b.Ordinal == 0
}

func (b Build) String() string {
	if b.IsLatest() {
		return Latest
	}
	return strconv.Itoa(b.Ordinal)
}

// LatestBuild selects the most recent release candidate
func LatestBuild() Build {
	return Build{}
}

// ParseBuild parses a build identifier: "latest" (or empty) or a positive
// number, zero padding allowed ("03").
func ParseBuild(s string) (Build, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, Latest) {
		return LatestBuild(), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return Build{}, fmt.Errorf("invalid build %q: must be %q or a positive number", s, Latest)
	}
	return Build{Ordinal: n}, nil
}

// Request is one invocation of the pipeline
type Request struct {
	Version version.Version
	Build   Build
	Tasks   []string
}
