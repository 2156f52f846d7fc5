package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bbterrors "bbt.dev/bbt/internal/errors"
	"bbt.dev/bbt/internal/version"
)

func TestArithmetic(t *testing.T) {
	arith := version.NewArithmetic(version.Zero)

	tests := []struct {
		in       string
		previous string
		next     string
		base     string
		role     version.Role
	}{
		{"1.0.0", "0.0.0", "2.0.0", "0.0.0", version.RoleMajor},
		{"1.1.0", "1.0.0", "1.2.0", "1.0.0", version.RoleMinor},
		{"1.2.0", "1.1.0", "1.3.0", "1.0.0", version.RoleMinor},
		{"1.2.1", "1.2.0", "1.2.2", "1.2.0", version.RolePatch},
		{"1.2.2", "1.2.1", "1.2.3", "1.2.0", version.RolePatch},
		{"1.0.2", "1.0.1", "1.0.3", "1.0.0", version.RolePatch},
		{"2.1.3", "2.1.2", "2.1.4", "2.1.0", version.RolePatch},
		{"0.1.0", "0.0.0", "0.2.0", "0.0.0", version.RoleMinor},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v := version.MustParse(tt.in)

			prev, err := arith.Previous(v)
			require.NoError(t, err)
			assert.Equal(t, tt.previous, prev.String())

			next, err := arith.Next(v)
			require.NoError(t, err)
			assert.Equal(t, tt.next, next.String())

			base, err := arith.Base(v)
			require.NoError(t, err)
			assert.Equal(t, tt.base, base.String())

			role, err := arith.Classify(v)
			require.NoError(t, err)
			assert.Equal(t, tt.role, role)
		})
	}
}

func TestArithmetic_RejectsFloor(t *testing.T) {
	t.Run("default floor", func(t *testing.T) {
		arith := version.NewArithmetic(version.Zero)
		_, err := arith.Previous(version.Zero)
		require.ErrorIs(t, err, bbterrors.ErrInvalidVersion)
		_, err = arith.Next(version.Zero)
		require.ErrorIs(t, err, bbterrors.ErrInvalidVersion)
		_, err = arith.Base(version.Zero)
		require.ErrorIs(t, err, bbterrors.ErrInvalidVersion)
		_, err = arith.Classify(version.Zero)
		require.ErrorIs(t, err, bbterrors.ErrInvalidVersion)
	})

	t.Run("custom floor", func(t *testing.T) {
		arith := version.NewArithmetic(version.MustParse("1.5.0"))
		require.True(t, arith.IsFloor(version.MustParse("1.5.0")))

		_, err := arith.Next(version.MustParse("1.5.0"))
		require.ErrorIs(t, err, bbterrors.ErrInvalidVersion)
		_, err = arith.Next(version.MustParse("1.4.9"))
		require.ErrorIs(t, err, bbterrors.ErrInvalidVersion)

		prev, err := arith.Previous(version.MustParse("1.5.1"))
		require.NoError(t, err)
		require.True(t, arith.IsFloor(prev))
	})
}

func TestArithmetic_Laws(t *testing.T) {
	arith := version.NewArithmetic(version.Zero)

	for major := 0; major <= 3; major++ {
		for minor := 0; minor <= 3; minor++ {
			for patch := 0; patch <= 3; patch++ {
				v, err := version.New(major, minor, patch)
				require.NoError(t, err)
				if v == version.Zero {
					continue
				}

				base, err := arith.Base(v)
				require.NoError(t, err)
				assert.NotEqual(t, version.RolePatch, base.Role(), "base of %s must not be a patch", v)

				if base != version.Zero {
					again, err := arith.Base(base)
					require.NoError(t, err)
					assert.NotEqual(t, version.RolePatch, again.Role())
				}

				next, err := arith.Next(v)
				require.NoError(t, err)
				prev, err := arith.Previous(next)
				require.NoError(t, err)
				assert.Equal(t, v, prev, "previous(next(%s))", v)
			}
		}
	}
}
