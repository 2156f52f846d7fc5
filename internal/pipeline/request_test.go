package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBuild(t *testing.T) {
	tests := []struct {
		in      string
		want    Build
		wantErr bool
	}{
		{in: "", want: LatestBuild()},
		{in: "latest", want: LatestBuild()},
		{in: "LATEST", want: LatestBuild()},
		{in: "3", want: Build{Ordinal: 3}},
		{in: "03", want: Build{Ordinal: 3}},
		{in: " 12 ", want: Build{Ordinal: 12}},
		{in: "0", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "rc1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBuild(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestBuildString(t *testing.T) {
	require.Equal(t, "latest", LatestBuild().String())
	require.Equal(t, "7", Build{Ordinal: 7}.String())
	require.True(t, LatestBuild().IsLatest())
	require.False(t, Build{Ordinal: 1}.IsLatest())
}
