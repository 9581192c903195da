package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsVersionGreaterOrEqualThan(t *testing.T) {
	tests := []struct {
		version string
		target  string
		want    bool
	}{
		{"1.2.0", "1.1.9", true},
		{"1.2.0", "1.2.0", true},
		{"1.2.0", "1.2.1", false},
		{"0.10.0", "0.9.0", true},
		{"2.0.0", "10.0.0", false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, IsVersionGreaterOrEqualThan(tt.version, tt.target),
			"%s >= %s", tt.version, tt.target)
	}
}

func TestString(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	t.Cleanup(func() {
		Version, GitCommit = origVersion, origCommit
	})

	Version, GitCommit = "1.0.0", "unknown"
	require.Equal(t, "1.0.0", String())
	require.Equal(t, "Version=1.0.0", StringFull())

	GitCommit = "0123456789abcdef"
	require.Equal(t, "1.0.0-01234567", String())
	require.Equal(t, "Version=1.0.0 Commit=01234567", StringFull())
}

func TestGetCurrentVersion(t *testing.T) {
	require.Equal(t, DevVersion, GetCurrentVersion("dev"))
	require.Equal(t, DevVersion, GetCurrentVersion("demo"))
	require.Equal(t, Version, GetCurrentVersion("prod"))
}
