package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withBuildInfo(t *testing.T, v, commit, date string) {
	t.Helper()
	oldV, oldC, oldD := Version, GitCommit, BuildDate
	SetBuildInfo(v, commit, date)
	t.Cleanup(func() { SetBuildInfo(oldV, oldC, oldD) })
}

func TestGetInfo(t *testing.T) {
	withBuildInfo(t, "0.3.1-beta.1+42.abc", "abcdef0123456", "2026-01-02")

	info, err := GetInfo()
	require.NoError(t, err)
	assert.Equal(t, "0.3.1-beta.1+42.abc", info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
	assert.Equal(t, "0.3.1", GetBaseVersion())
	assert.True(t, IsPrerelease())
	assert.False(t, IsDevelopment())
	assert.Equal(t, "abcdef0", ShortCommit())
}

func TestGetInfo_Invalid(t *testing.T) {
	withBuildInfo(t, "not-a-version", "unknown", "unknown")

	_, err := GetInfo()
	assert.Error(t, err)
	assert.Error(t, ValidateVersion())
	assert.Equal(t, "nush vnot-a-version (invalid version)", GetFormattedVersion())
}

func TestGetFormattedVersion(t *testing.T) {
	tests := []struct {
		name   string
		commit string
		date   string
		want   string
	}{
		{"development", "unknown", "unknown", "nush v1.2.3"},
		{"release", "0123456789", "2026-10-19", "nush v1.2.3, commit 0123456, built 2026-10-19"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withBuildInfo(t, "1.2.3", tt.commit, tt.date)
			assert.Equal(t, tt.want, GetFormattedVersion())
		})
	}
}

func TestCompareVersions(t *testing.T) {
	cmp, err := CompareVersions("0.1.0", "0.2.0")
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	_, err = CompareVersions("x", "0.2.0")
	assert.Error(t, err)
}

func TestSatisfiesConstraint(t *testing.T) {
	withBuildInfo(t, "0.4.0", "unknown", "unknown")

	ok, err := SatisfiesConstraint(">= 0.1, < 1.0")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = SatisfiesConstraint("~~bad")
	assert.Error(t, err)
}
