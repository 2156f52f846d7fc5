package pipeline

// Deletions accumulates remote branches to delete on the next push. It is a
// value: Add and Merge return a new set and never modify the receiver.
type Deletions struct {
	branches []string
}

// NewDeletions creates a set holding branches
func NewDeletions(branches ...string) Deletions {
	return Deletions{}.Add(branches...)
}

// Add returns the set with branches appended, skipping ones already present
func (d Deletions) Add(branches ...string) Deletions {
	out := Deletions{branches: append([]string(nil), d.branches...)}
	for _, b := range branches {
		if b != "" && !out.Contains(b) {
			out.branches = append(out.branches, b)
		}
	}
	return out
}

// Merge returns the union of both sets, keeping first-seen order
func (d Deletions) Merge(other Deletions) Deletions {
	return d.Add(other.branches...)
}

// Contains reports whether branch is pending deletion
func (d Deletions) Contains(branch string) bool {
	for _, b := range d.branches {
		if b == branch {
			return true
		}
	}
	return false
}

// Branches returns the pending branches in the order they were added
func (d Deletions) Branches() []string {
	return append([]string(nil), d.branches...)
}

// Len returns the number of pending branches
func (d Deletions) Len() int {
	return len(d.branches)
}
