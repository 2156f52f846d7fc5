package testhelpers

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	bbterrors "bbt.dev/bbt/internal/errors"
)

// Mutation operation names recorded by FakeRepository
const (
	OpCreateBranch       = "create-branch"
	OpCheckout           = "checkout"
	OpMerge              = "merge"
	OpCreateTag          = "create-tag"
	OpDeleteLocalBranch  = "delete-local-branch"
	OpDeleteRemoteBranch = "delete-remote-branch"
	OpPushAll            = "push-all"
	OpPushTags           = "push-tags"
)

// Mutation is one recorded write to a FakeRepository
type Mutation struct {
	Op   string
	Args []string
}

// FakeRepository is an in-memory commit graph implementing release.Repository.
// Commits are identified by short generated ids ("c1", "c2", ...). Setup
// helpers (Commit, Branch, Merge, Publish, Tag) do not record mutations;
// only the port methods do.
type FakeRepository struct {
	remote     string
	parents    map[string][]string
	local      map[string]string
	remotes    map[string]string
	tags       map[string]string
	pushedTags map[string]bool
	head       string
	nextID     int
	failures   map[string]error
	Mutations  []Mutation
	TagQueries []string
	GraphCalls int
}

// NewFakeRepository creates a repository with a root commit on branch root
func NewFakeRepository(root string) *FakeRepository {
	r := &FakeRepository{
		remote:     "origin",
		parents:    map[string][]string{},
		local:      map[string]string{},
		remotes:    map[string]string{},
		tags:       map[string]string{},
		pushedTags: map[string]bool{},
		failures:   map[string]error{},
	}
	r.local[root] = r.newCommit()
	r.head = root
	return r
}

func (r *FakeRepository) newCommit(parents ...string) string {
	r.nextID++
	id := fmt.Sprintf("c%d", r.nextID)
	r.parents[id] = parents
	return id
}

// FailOn makes every subsequent call of op return err
func (r *FakeRepository) FailOn(op string, err error) {
	r.failures[op] = err
}

func (r *FakeRepository) record(op string, args ...string) error {
	if err, ok := r.failures[op]; ok {
		return bbterrors.NewGitCommandError("git", append([]string{op}, args...), "", err.Error(), err)
	}
	r.Mutations = append(r.Mutations, Mutation{Op: op, Args: args})
	return nil
}

// MutationsOf returns the recorded mutations with the given op
func (r *FakeRepository) MutationsOf(op string) []Mutation {
	var out []Mutation
	for _, m := range r.Mutations {
		if m.Op == op {
			out = append(out, m)
		}
	}
	return out
}

// Commit adds a commit on top of branch and returns its id
func (r *FakeRepository) Commit(branch string) string {
	tip, ok := r.local[branch]
	if !ok {
		panic("unknown branch " + branch)
	}
	id := r.newCommit(tip)
	r.local[branch] = id
	return id
}

// Branch creates a local branch at ref
func (r *FakeRepository) Branch(name, ref string) {
	r.local[name] = r.mustResolve(ref)
}

// Orphan creates a branch with a parentless commit
func (r *FakeRepository) Orphan(name string) string {
	id := r.newCommit()
	r.local[name] = id
	return id
}

// DropLocal removes a local branch, leaving any remote-tracking branch in place
func (r *FakeRepository) DropLocal(name string) {
	delete(r.local, name)
}

// Merge creates a merge commit of from into into
func (r *FakeRepository) Merge(into, from string) string {
	id := r.newCommit(r.mustResolve(into), r.mustResolve(from))
	r.local[into] = id
	return id
}

// Publish makes origin/<branch> point at the local branch tip
func (r *FakeRepository) Publish(branches ...string) {
	for _, b := range branches {
		r.remotes[r.remote+"/"+b] = r.mustResolve(b)
	}
}

// Tag creates a tag at ref
func (r *FakeRepository) Tag(name, ref string) {
	r.tags[name] = r.mustResolve(ref)
}

// HasLocalBranch reports whether a local branch exists
func (r *FakeRepository) HasLocalBranch(name string) bool {
	_, ok := r.local[name]
	return ok
}

// HasRemoteBranch reports whether origin/<name> exists
func (r *FakeRepository) HasRemoteBranch(name string) bool {
	_, ok := r.remotes[r.remote+"/"+name]
	return ok
}

// TagTarget returns the commit a tag points to
func (r *FakeRepository) TagTarget(name string) (string, bool) {
	id, ok := r.tags[name]
	return id, ok
}

// TagPushed reports whether a tag was sent with PushTags
func (r *FakeRepository) TagPushed(name string) bool {
	return r.pushedTags[name]
}

// Tip returns the commit a ref resolves to
func (r *FakeRepository) Tip(ref string) string {
	return r.mustResolve(ref)
}

// Head returns the checked out ref
func (r *FakeRepository) Head() string {
	return r.head
}

func (r *FakeRepository) resolve(ref string) (string, bool) {
	if id, ok := r.local[ref]; ok {
		return id, true
	}
	if id, ok := r.remotes[ref]; ok {
		return id, true
	}
	if id, ok := r.tags[ref]; ok {
		return id, true
	}
	if _, ok := r.parents[ref]; ok {
		return ref, true
	}
	return "", false
}

func (r *FakeRepository) mustResolve(ref string) string {
	id, ok := r.resolve(ref)
	if !ok {
		panic("unknown ref " + ref)
	}
	return id
}

func (r *FakeRepository) ancestors(id string) map[string]bool {
	seen := map[string]bool{}
	stack := []string{id}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[c] {
			continue
		}
		seen[c] = true
		stack = append(stack, r.parents[c]...)
	}
	return seen
}

func match(names map[string]string, pattern string) []string {
	var out []string
	for name := range names {
		if ok, _ := path.Match(pattern, name); ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// LocalBranches implements release.Graph
func (r *FakeRepository) LocalBranches(_ context.Context, pattern string) ([]string, error) {
	r.GraphCalls++
	return match(r.local, pattern), nil
}

// RemoteBranches implements release.Graph
func (r *FakeRepository) RemoteBranches(_ context.Context, pattern string) ([]string, error) {
	r.GraphCalls++
	return match(r.remotes, pattern), nil
}

// Tags implements release.Graph
func (r *FakeRepository) Tags(_ context.Context, pattern string) ([]string, error) {
	r.GraphCalls++
	r.TagQueries = append(r.TagQueries, pattern)
	return match(r.tags, pattern), nil
}

// MergeBase implements release.Graph
func (r *FakeRepository) MergeBase(_ context.Context, refA, refB string) (string, error) {
	r.GraphCalls++
	a, ok := r.resolve(refA)
	if !ok {
		return "", bbterrors.NewGitCommandError("git", []string{"merge-base", refA, refB}, "", "unknown ref "+refA, nil)
	}
	b, ok := r.resolve(refB)
	if !ok {
		return "", bbterrors.NewGitCommandError("git", []string{"merge-base", refA, refB}, "", "unknown ref "+refB, nil)
	}

	ofA := r.ancestors(a)
	ofB := r.ancestors(b)
	var common []string
	for c := range ofA {
		if ofB[c] {
			common = append(common, c)
		}
	}
	sort.Strings(common)

	// best common ancestors are those that no other common ancestor descends from
	for _, candidate := range common {
		best := true
		for _, other := range common {
			if other != candidate && r.ancestors(other)[candidate] {
				best = false
				break
			}
		}
		if best {
			return candidate, nil
		}
	}
	return "", bbterrors.NewNoCommonAncestorError(refA, refB)
}

// IsAncestor implements release.Graph
func (r *FakeRepository) IsAncestor(_ context.Context, ref, branch string) (bool, error) {
	r.GraphCalls++
	id, ok := r.resolve(ref)
	if !ok {
		return false, bbterrors.NewGitCommandError("git", []string{"merge-base", "--is-ancestor", ref, branch}, "", "unknown ref "+ref, nil)
	}
	tip, ok := r.resolve(branch)
	if !ok {
		return false, bbterrors.NewGitCommandError("git", []string{"merge-base", "--is-ancestor", ref, branch}, "", "unknown ref "+branch, nil)
	}
	return r.ancestors(tip)[id], nil
}

// CreateBranch implements release.Mutator
func (r *FakeRepository) CreateBranch(_ context.Context, name, startPoint string) error {
	if err := r.record(OpCreateBranch, name, startPoint); err != nil {
		return err
	}
	if _, exists := r.local[name]; exists {
		return bbterrors.NewGitCommandError("git", []string{"branch", name, startPoint}, "", "branch already exists", nil)
	}
	id, ok := r.resolve(startPoint)
	if !ok {
		return bbterrors.NewGitCommandError("git", []string{"branch", name, startPoint}, "", "not a valid object name: "+startPoint, nil)
	}
	r.local[name] = id
	return nil
}

// Checkout implements release.Mutator
func (r *FakeRepository) Checkout(_ context.Context, ref string) error {
	if err := r.record(OpCheckout, ref); err != nil {
		return err
	}
	if _, ok := r.resolve(ref); !ok {
		return bbterrors.NewGitCommandError("git", []string{"checkout", ref}, "", "pathspec did not match", nil)
	}
	r.head = ref
	return nil
}

// MergeNoFastForward implements release.Mutator
func (r *FakeRepository) MergeNoFastForward(_ context.Context, from, to, message string) error {
	if err := r.record(OpMerge, from, to, message); err != nil {
		return err
	}
	if _, ok := r.local[to]; !ok {
		return bbterrors.NewGitCommandError("git", []string{"merge", "--no-ff", from}, "", "unknown branch "+to, nil)
	}
	// checking out a remote-only branch creates its local tracking branch
	if _, ok := r.local[from]; !ok {
		if id, ok := r.remotes[r.remote+"/"+from]; ok {
			r.local[from] = id
		}
	}
	if _, ok := r.resolve(from); !ok {
		return bbterrors.NewGitCommandError("git", []string{"merge", "--no-ff", from}, "", "unknown ref "+from, nil)
	}
	r.Merge(to, from)
	r.head = to
	return nil
}

// CreateTag implements release.Mutator
func (r *FakeRepository) CreateTag(_ context.Context, name, atRef string) error {
	if err := r.record(OpCreateTag, name, atRef); err != nil {
		return err
	}
	if _, exists := r.tags[name]; exists {
		return bbterrors.NewGitCommandError("git", []string{"tag", name, atRef}, "", "tag '"+name+"' already exists", nil)
	}
	id, ok := r.resolve(atRef)
	if !ok {
		return bbterrors.NewGitCommandError("git", []string{"tag", name, atRef}, "", "not a valid object name: "+atRef, nil)
	}
	r.tags[name] = id
	return nil
}

// DeleteLocalBranch implements release.Mutator
func (r *FakeRepository) DeleteLocalBranch(_ context.Context, name string) error {
	if err := r.record(OpDeleteLocalBranch, name); err != nil {
		return err
	}
	if _, ok := r.local[name]; !ok {
		return bbterrors.NewGitCommandError("git", []string{"branch", "-d", name}, "", "branch '"+name+"' not found", nil)
	}
	delete(r.local, name)
	return nil
}

// DeleteRemoteBranch implements release.Mutator
func (r *FakeRepository) DeleteRemoteBranch(_ context.Context, name string) error {
	if err := r.record(OpDeleteRemoteBranch, name); err != nil {
		return err
	}
	key := r.remote + "/" + name
	if _, ok := r.remotes[key]; !ok {
		return bbterrors.NewGitCommandError("git", []string{"push", r.remote, "--delete", name}, "", "remote ref does not exist", nil)
	}
	delete(r.remotes, key)
	return nil
}

// PushAll implements release.Mutator
func (r *FakeRepository) PushAll(context.Context) error {
	if err := r.record(OpPushAll); err != nil {
		return err
	}
	for name, id := range r.local {
		r.remotes[r.remote+"/"+name] = id
	}
	return nil
}

// PushTags implements release.Mutator
func (r *FakeRepository) PushTags(context.Context) error {
	if err := r.record(OpPushTags); err != nil {
		return err
	}
	for name := range r.tags {
		r.pushedTags[name] = true
	}
	return nil
}

// String renders the branches and tags, handy in failure messages
func (r *FakeRepository) String() string {
	var b strings.Builder
	for _, name := range sortedKeys(r.local) {
		fmt.Fprintf(&b, "%s=%s ", name, r.local[name])
	}
	for _, name := range sortedKeys(r.tags) {
		fmt.Fprintf(&b, "tag:%s=%s ", name, r.tags[name])
	}
	return strings.TrimSpace(b.String())
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
