package fix

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhenkel/clog/internal/changelog"
	"github.com/dhenkel/clog/internal/lint"
	"github.com/dhenkel/clog/internal/rules"
)

const repo = "https://github.com/dhenkel/clog"

func testRules(t *testing.T, sortEntries bool) *rules.Set {
	t.Helper()
	rs, err := rules.New(rules.Params{
		TargetRepo: repo,
		Categories: []string{"cli", "lint", "config"},
		ChangeTypes: []rules.ChangeType{
			{Long: "Features", Short: "feat"},
			{Long: "Bug Fixes", Short: "fix"},
		},
		Spellings:   map[string]string{"CLI": `cli`},
		SortEntries: sortEntries,
	})
	require.NoError(t, err)
	return rs
}

func run(t *testing.T, rs *rules.Set, text string) (string, []lint.Diagnostic) {
	t.Helper()
	cl, err := changelog.Parse(text)
	require.NoError(t, err)
	diags := lint.Lint(cl, rs, lint.Options{})
	fixed := Fix(cl, rs, diags)
	return changelog.Render(fixed), diags
}

func doc(bodyLines ...string) string {
	lines := []string{"# Changelog", "", "## Unreleased", "", "### Features", ""}
	lines = append(lines, bodyLines...)
	return strings.Join(lines, "\n") + "\n"
}

func TestFix_CanonicalizesEntries(t *testing.T) {
	tests := map[string]struct {
		in   string
		want string
	}{
		"category lowercased": {
			in:   "- (CLI) [#12](" + repo + "/pull/12) Add thing.",
			want: "- (cli) [#12](" + repo + "/pull/12) Add thing.",
		},
		"whitespace normalized": {
			in:   "-  (cli)[#12](" + repo + "/pull/12)  Add thing.",
			want: "- (cli) [#12](" + repo + "/pull/12) Add thing.",
		},
		"link rewritten": {
			in:   "- (cli) [#12](https://github.com/other/repo/pull/12) Add thing.",
			want: "- (cli) [#12](" + repo + "/pull/12) Add thing.",
		},
		"backslash dropped": {
			in:   `- (cli) [\#12](` + repo + `/pull/12) Add thing.`,
			want: "- (cli) [#12](" + repo + "/pull/12) Add thing.",
		},
		"description capitalized and dotted": {
			in:   "- (cli) [#12](" + repo + "/pull/12) add thing",
			want: "- (cli) [#12](" + repo + "/pull/12) Add thing.",
		},
		"spelling corrected": {
			in:   "- (cli) [#12](" + repo + "/pull/12) Polish the cli output.",
			want: "- (cli) [#12](" + repo + "/pull/12) Polish the CLI output.",
		},
		"code span untouched": {
			in:   "- (cli) [#12](" + repo + "/pull/12) Keep `cli` name",
			want: "- (cli) [#12](" + repo + "/pull/12) Keep `cli` name.",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rs := testRules(t, false)
			got, diags := run(t, rs, doc(tt.in))
			require.NotEmpty(t, diags)
			assert.Contains(t, got, tt.want+"\n")
			assert.NotContains(t, got, tt.in+"\n")
		})
	}
}

func TestFix_Idempotent(t *testing.T) {
	rs := testRules(t, false)
	in := doc(
		"-  (CLI)[#12](https://example.com/x)  polish the cli output",
		"- (lint) [#11]("+repo+"/pull/11) Fine already.",
	)

	once, diags := run(t, rs, in)
	require.NotEmpty(t, diags)

	again, diags2 := run(t, rs, once)
	assert.Empty(t, diags2)
	assert.Equal(t, once, again)
}

func TestFix_LeavesErrorsAlone(t *testing.T) {
	rs := testRules(t, false)
	in := doc("- (web) [#12](" + repo + "/pull/12) add thing")

	got, diags := run(t, rs, in)
	require.True(t, lint.HasErrors(diags))
	// Description fixed, unknown category untouched.
	assert.Contains(t, got, "- (web) [#12]("+repo+"/pull/12) Add thing.\n")
}

func TestFix_EscapedEntryUntouched(t *testing.T) {
	rs := testRules(t, false)
	line := "- (WEB) [#12](https://example.com/x)  kept verbatim"
	in := doc("<!-- clog-disable-next-line -->", line)

	got, diags := run(t, rs, in)
	assert.Empty(t, diags)
	assert.Contains(t, got, "<!-- clog-disable-next-line -->\n"+line+"\n")
}

func TestFix_ChangeTypeHeading(t *testing.T) {
	rs := testRules(t, false)
	in := "# Changelog\n\n## Unreleased\n\n### bug fixes\n\n- (cli) [#1](" + repo + "/pull/1) Add thing.\n"

	got, _ := run(t, rs, in)
	assert.Contains(t, got, "### Bug Fixes\n")
	assert.NotContains(t, got, "### bug fixes\n")
}

func TestFix_ReleaseLink(t *testing.T) {
	rs := testRules(t, false)
	in := "# Changelog\n\n## [v1.0.0](" + repo + "/releases/v1.0.0) - 2024-01-01\n"

	got, _ := run(t, rs, in)
	assert.Contains(t, got, "## [v1.0.0]("+repo+"/releases/tag/v1.0.0) - 2024-01-01\n")
}

func TestFix_SortEntries(t *testing.T) {
	in := doc(
		"- (cli) [#10]("+repo+"/pull/10) Oldest.",
		"- (cli) [#30]("+repo+"/pull/30) Newest.",
		"- (cli) [#20]("+repo+"/pull/20) Middle.",
	)

	t.Run("disabled keeps order", func(t *testing.T) {
		got, _ := run(t, testRules(t, false), in)
		assert.Equal(t, in, got)
	})

	t.Run("enabled sorts newest first", func(t *testing.T) {
		got, _ := run(t, testRules(t, true), in)
		i10 := strings.Index(got, "#10")
		i20 := strings.Index(got, "#20")
		i30 := strings.Index(got, "#30")
		assert.True(t, i30 < i20 && i20 < i10, "entries not sorted: %s", got)
	})
}

func TestDiff(t *testing.T) {
	t.Run("identical yields empty", func(t *testing.T) {
		out, err := Diff("CHANGELOG.md", "a\n", "a\n")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("changed lines rendered", func(t *testing.T) {
		out, err := Diff("CHANGELOG.md", "a\nb\n", "a\nc\n")
		require.NoError(t, err)
		assert.Contains(t, out, "-b")
		assert.Contains(t, out, "+c")
		assert.Contains(t, out, "CHANGELOG.md")
	})
}
