package version

// Role classifies a version by its lowest non-zero component
type Role int

const (
	// RoleMajor is a X.0.0 release, built on the root branch
	RoleMajor Role = iota
	// RoleMinor is a X.Y.0 release, built on the major's minor line
	RoleMinor
	// RolePatch is a X.Y.Z release, built on the minor's patch line
	RolePatch
)

func (r Role) String() string {
	switch r {
	case RoleMajor:
		return "major"
	case RoleMinor:
		return "minor"
	case RolePatch:
		return "patch"
	default:
		return "unknown"
	}
}

// IsStabilized reports whether releases of this role live on a dedicated
// stabilization branch rather than on the root branch.
func (r Role) IsStabilized() bool {
	return r == RoleMinor || r == RolePatch
}
