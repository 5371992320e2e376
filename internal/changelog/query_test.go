package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRelease(t *testing.T) {
	cl, err := Parse(sampleDoc)
	require.NoError(t, err)

	rel, err := cl.GetRelease("v1.2.0")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", rel.Date)

	_, err = cl.GetRelease("v9.9.9")
	var nf *VersionNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "v9.9.9", nf.Version)
}

func TestUnreleasedAndLatest(t *testing.T) {
	cl, err := Parse(sampleDoc)
	require.NoError(t, err)

	require.NotNil(t, cl.Unreleased())
	assert.True(t, cl.Unreleased().IsUnreleased())

	latest := cl.LatestRelease()
	require.NotNil(t, latest)
	assert.Equal(t, "v1.2.0", latest.Version)

	assert.Equal(t, []string{"Unreleased", "v1.2.0"}, cl.Versions())
}

func TestUnreleased_Absent(t *testing.T) {
	cl, err := Parse("# Changelog\n\n## [v1.0.0](x) - 2024-01-01\n")
	require.NoError(t, err)
	assert.Nil(t, cl.Unreleased())
}

func TestSectionLookup(t *testing.T) {
	cl, err := Parse(sampleDoc)
	require.NoError(t, err)

	rel := cl.Unreleased()
	require.NotNil(t, rel.Section("Bug Fixes"))
	assert.Nil(t, rel.Section("Improvements"))
}
