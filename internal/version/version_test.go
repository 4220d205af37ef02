package version

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestGet_UsesOverrides(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate })

	Version = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"

	info := Get()
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "abc123def456", info.GitCommit)
	assert.Equal(t, "2024-01-15T10:30:00Z", info.BuildDate)
}

func TestColored(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })

	for _, v := range []string{"0.1.0-dev", "1.2.3", "1.0.0-beta.1", "1.2.3-rc.1+build.123", "dev"} {
		assert.Equal(t, v, Colored(v))
	}

	color.NoColor = false
	assert.Contains(t, Colored("1.2.3-dev"), "\x1b[")
	assert.Contains(t, Colored("1.2.3-dev"), "-dev")
}

func TestShortCommit(t *testing.T) {
	assert.Equal(t, "1234567890ab", ShortCommit("1234567890abcdef1234567890abcdef12345678"))
	assert.Equal(t, "abc", ShortCommit("abc"))
}
