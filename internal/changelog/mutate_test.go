package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddEntry(t *testing.T) {
	repo := "https://github.com/dhenkel/clog"

	t.Run("existing section keeps newest first", func(t *testing.T) {
		cl, err := Parse(sampleDoc)
		require.NoError(t, err)

		cl.AddEntry("Features", NewEntry("lint", 125, PullRequestLink(repo, 125), "Add watch mode."))

		entries := cl.Unreleased().Section("Features").Entries
		require.Len(t, entries, 2)
		assert.Equal(t, 125, entries[0].PRNumber)
		assert.Equal(t, 120, entries[1].PRNumber)
	})

	t.Run("older entry inserted below", func(t *testing.T) {
		cl, err := Parse(sampleDoc)
		require.NoError(t, err)

		cl.AddEntry("Features", NewEntry("lint", 100, PullRequestLink(repo, 100), "Backfilled change."))

		entries := cl.Unreleased().Section("Features").Entries
		require.Len(t, entries, 2)
		assert.Equal(t, []int{120, 100}, []int{entries[0].PRNumber, entries[1].PRNumber})
	})

	t.Run("creates section on demand", func(t *testing.T) {
		cl, err := Parse(sampleDoc)
		require.NoError(t, err)

		cl.AddEntry("Improvements", NewEntry("docs", 130, PullRequestLink(repo, 130), "Clarify usage."))

		sect := cl.Unreleased().Section("Improvements")
		require.NotNil(t, sect)
		assert.Equal(t, "### Improvements", sect.Line)
		require.Len(t, sect.Entries, 1)
		assert.Equal(t,
			"- (docs) [#130](https://github.com/dhenkel/clog/pull/130) Clarify usage.",
			sect.Entries[0].Line,
		)
	})

	t.Run("creates unreleased bucket on demand", func(t *testing.T) {
		cl, err := Parse("# Changelog\n\n## [v1.0.0](x) - 2024-01-01\n")
		require.NoError(t, err)

		cl.AddEntry("Features", NewEntry("cli", 7, PullRequestLink(repo, 7), "Add thing."))

		require.Len(t, cl.Releases, 2)
		assert.True(t, cl.Releases[0].IsUnreleased())
		assert.Equal(t, "## Unreleased", cl.Releases[0].Line)
		assert.Equal(t, "v1.0.0", cl.Releases[1].Version)
	})
}

func TestClone_Independent(t *testing.T) {
	cl, err := Parse(sampleDoc)
	require.NoError(t, err)

	cp := cl.Clone()
	cp.AddEntry("Features", NewEntry("cli", 999, "link", "Mutation on the copy."))
	cp.Releases[1].Date = "1999-01-01"
	cp.Header[0] = "changed"

	assert.Equal(t, 1, len(cl.Unreleased().Section("Features").Entries))
	assert.Equal(t, "2024-03-01", cl.Releases[1].Date)
	assert.Equal(t, "<!--", cl.Header[0])
}
