package release

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	bbterrors "bbt.dev/bbt/internal/errors"
	"bbt.dev/bbt/internal/version"
)

// RCTag returns the release candidate tag for build n of v, e.g. "1.2.0-3"
func RCTag(v version.Version, n int) string {
	return fmt.Sprintf("%s-%d", v, n)
}

// FinalTag returns the final release tag of v
func FinalTag(v version.Version) string {
	return v.String()
}

func candidatePrefix(v version.Version) string {
	return v.String() + "-"
}

func candidatePattern(v version.Version) string {
	return candidatePrefix(v) + "*"
}

// candidateOrdinals maps build ordinals of v to the tag carrying them.
// Tags whose suffix is not a plain decimal number are ignored.
func (m *Manager) candidateOrdinals(ctx context.Context, v version.Version) (map[int]string, error) {
	tags, err := m.repo.Tags(ctx, candidatePattern(v))
	if err != nil {
		return nil, fmt.Errorf("failed to list release candidates of %s: %w", v, err)
	}

	prefix := candidatePrefix(v)
	ordinals := make(map[int]string, len(tags))
	for _, tag := range tags {
		suffix, ok := strings.CutPrefix(tag, prefix)
		if !ok || !isDigits(suffix) {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		ordinals[n] = tag
	}
	return ordinals, nil
}

// LastBuildOrdinal returns the highest release candidate ordinal of v, or 0
func (m *Manager) LastBuildOrdinal(ctx context.Context, v version.Version) (int, error) {
	ordinals, err := m.candidateOrdinals(ctx, v)
	if err != nil {
		return 0, err
	}
	last := 0
	for n := range ordinals {
		if n > last {
			last = n
		}
	}
	return last, nil
}

// NextBuildOrdinal returns the ordinal the next release candidate of v gets
func (m *Manager) NextBuildOrdinal(ctx context.Context, v version.Version) (int, error) {
	last, err := m.LastBuildOrdinal(ctx, v)
	if err != nil {
		return 0, err
	}
	return last + 1, nil
}

// CandidateTag resolves the existing tag of build n of v. Zero-padded tags
// created by older tooling ("1.2.0-03") resolve for n = 3.
func (m *Manager) CandidateTag(ctx context.Context, v version.Version, n int) (string, error) {
	ordinals, err := m.candidateOrdinals(ctx, v)
	if err != nil {
		return "", err
	}
	tag, ok := ordinals[n]
	if !ok {
		return "", bbterrors.NewCandidateMissingError(v.String(), n)
	}
	return tag, nil
}

// TagReleaseCandidate tags ref as the next release candidate of v and
// returns the new tag.
func (m *Manager) TagReleaseCandidate(ctx context.Context, v version.Version, ref string) (string, error) {
	n, err := m.NextBuildOrdinal(ctx, v)
	if err != nil {
		return "", err
	}
	tag := RCTag(v, n)
	if err := m.repo.CreateTag(ctx, tag, ref); err != nil {
		return "", fmt.Errorf("failed to tag release candidate %s: %w", tag, err)
	}
	m.splog.Info("Tagged release candidate %s at %s", tag, ref)
	return tag, nil
}

// PromoteToFinal creates the final tag of v on the commit of build n
func (m *Manager) PromoteToFinal(ctx context.Context, v version.Version, n int) (string, error) {
	final := FinalTag(v)
	released, err := hasAny(m.repo.Tags(ctx, final))
	if err != nil {
		return "", fmt.Errorf("failed to list tags for %s: %w", v, err)
	}
	if released {
		return "", bbterrors.NewAlreadyReleasedError(v.String())
	}

	candidate, err := m.CandidateTag(ctx, v, n)
	if err != nil {
		return "", err
	}
	if err := m.repo.CreateTag(ctx, final, candidate); err != nil {
		return "", fmt.Errorf("failed to tag release %s: %w", final, err)
	}
	m.splog.Info("Released %s from %s", final, candidate)
	return final, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
