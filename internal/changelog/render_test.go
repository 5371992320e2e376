package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_RoundTrip(t *testing.T) {
	tests := map[string]string{
		"canonical document":  sampleDoc,
		"minimal":             "# Changelog\n\n## Unreleased\n",
		"intro paragraph":     "# Changelog\n\nAll notable changes are documented here.\n\n## Unreleased\n\n### Features\n\n- (cli) [#1](https://github.com/dhenkel/clog/pull/1) Add thing.\n",
		"header comment only": "<!-- maintained by hand -->\n\n# Changelog\n\n## Unreleased\n",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			cl, err := Parse(doc)
			require.NoError(t, err)
			assert.Equal(t, doc, Render(cl))
		})
	}
}

func TestRender_LegacyTailVerbatim(t *testing.T) {
	doc := "# Changelog\n\n## Unreleased\n\n## [v0.1.0](x) - 2019-01-01\n\nmessy old * content\n  indented too\n"
	cl, err := ParseWithOptions(doc, Options{LegacyVersion: "v0.1.0"})
	require.NoError(t, err)
	assert.Equal(t, doc, Render(cl))
}

func TestRender_EscapeAboveEntry(t *testing.T) {
	cl, err := Parse(sampleDoc)
	require.NoError(t, err)

	out := Render(cl)
	assert.Contains(t, out, "<!-- clog-disable-next-line -->\n- (lint) [#118]")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t,
		"- (cli) [#12](https://github.com/dhenkel/clog/pull/12) Add lint command.",
		FormatEntryLine("cli", 12, "https://github.com/dhenkel/clog/pull/12", "Add lint command."),
	)
	assert.Equal(t,
		"## [v1.2.0](https://github.com/dhenkel/clog/releases/tag/v1.2.0) - 2024-03-01",
		FormatReleaseHeading("v1.2.0", "https://github.com/dhenkel/clog/releases/tag/v1.2.0", "2024-03-01"),
	)
	assert.Equal(t, "## Unreleased", FormatUnreleasedHeading())
	assert.Equal(t, "### Bug Fixes", FormatChangeTypeHeading("Bug Fixes"))
	assert.Equal(t, "https://github.com/dhenkel/clog/pull/7", PullRequestLink("https://github.com/dhenkel/clog/", 7))
	assert.Equal(t, "https://github.com/dhenkel/clog/releases/tag/v1.0.0", ReleaseTagLink("https://github.com/dhenkel/clog", "v1.0.0"))
}
