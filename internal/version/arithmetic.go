package version

import (
	"fmt"

	bbterrors "bbt.dev/bbt/internal/errors"
)

// Arithmetic computes version transitions relative to a floor version.
// Every operation requires its argument to be strictly greater than the floor.
type Arithmetic struct {
	floor Version
}

// NewArithmetic creates an Arithmetic with the given floor ("big bang") version
func NewArithmetic(floor Version) Arithmetic {
	return Arithmetic{floor: floor}
}

// Floor returns the floor version
func (a Arithmetic) Floor() Version {
	return a.floor
}

// IsFloor reports whether v is the floor version
func (a Arithmetic) IsFloor(v Version) bool {
	return v.Compare(a.floor) == 0
}

// Previous decrements the lowest-order non-zero component.
// 1.0.0 -> 0.0.0, 1.1.0 -> 1.0.0, 1.2.1 -> 1.2.0, 1.2.2 -> 1.2.1
func (a Arithmetic) Previous(v Version) (Version, error) {
	return a.apply(v, func(n int) int { return n - 1 })
}

// Next increments the lowest-order non-zero component in place.
// 1.0.0 -> 2.0.0, 1.1.0 -> 1.2.0, 1.2.1 -> 1.2.2
func (a Arithmetic) Next(v Version) (Version, error) {
	return a.apply(v, func(n int) int { return n + 1 })
}

// Base zeroes the lowest-order non-zero component, giving the version the
// release line of v originated from.
// 1.0.0 -> 0.0.0, 1.0.2 -> 1.0.0, 1.2.0 -> 1.0.0, 2.1.3 -> 2.1.0
func (a Arithmetic) Base(v Version) (Version, error) {
	return a.apply(v, func(int) int { return 0 })
}

// Classify returns the role of v
func (a Arithmetic) Classify(v Version) (Role, error) {
	if err := a.check(v); err != nil {
		return RoleMajor, err
	}
	return v.Role(), nil
}

func (a Arithmetic) check(v Version) error {
	if v.Compare(a.floor) <= 0 {
		return bbterrors.NewVersionError(v.String(), fmt.Sprintf("must be greater than %s", a.floor))
	}
	return nil
}

func (a Arithmetic) apply(v Version, op func(int) int) (Version, error) {
	if err := a.check(v); err != nil {
		return Version{}, err
	}
	// lowest-order non-zero component first
	components := []*int{&v.Patch, &v.Minor, &v.Major}
	for _, c := range components {
		if *c > 0 {
			*c = op(*c)
			break
		}
	}
	return v, nil
}
