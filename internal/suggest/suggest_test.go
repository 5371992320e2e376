package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhenkel/clog/internal/rules"
)

func testRules(t *testing.T) *rules.Set {
	t.Helper()
	rs, err := rules.New(rules.Params{
		TargetRepo: "https://github.com/dhenkel/clog",
		Categories: []string{"cli", "lint"},
		ChangeTypes: []rules.ChangeType{
			{Long: "Features", Short: "feat"},
			{Long: "Bug Fixes", Short: "fix"},
		},
		Spellings: map[string]string{"CLI": `cli`},
	})
	require.NoError(t, err)
	return rs
}

func TestSuggestionEntry(t *testing.T) {
	s := Suggestion{Category: "cli", ChangeType: "fix", Title: "Handle empty input."}

	e, ct, err := s.Entry(testRules(t), 42)
	require.NoError(t, err)
	assert.Equal(t, "Bug Fixes", ct.Long)
	assert.Equal(t,
		"- (cli) [#42](https://github.com/dhenkel/clog/pull/42) Handle empty input.",
		e.Line,
	)
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		s       Suggestion
		wantErr string
	}{
		"clean suggestion": {
			s: Suggestion{Category: "cli", ChangeType: "Features", Title: "Add watch mode."},
		},
		"short change type accepted": {
			s: Suggestion{Category: "lint", ChangeType: "fix", Title: "Handle empty input."},
		},
		"unknown change type": {
			s:       Suggestion{Category: "cli", ChangeType: "chore", Title: "Tidy up."},
			wantErr: "not configured",
		},
		"unknown category": {
			s:       Suggestion{Category: "web", ChangeType: "feat", Title: "Add thing."},
			wantErr: "invalid category",
		},
		"uncapitalized title": {
			s:       Suggestion{Category: "cli", ChangeType: "feat", Title: "add thing."},
			wantErr: "capital letter",
		},
		"missing dot": {
			s:       Suggestion{Category: "cli", ChangeType: "feat", Title: "Add thing"},
			wantErr: "end with a dot",
		},
		"misspelling rejected": {
			s:       Suggestion{Category: "cli", ChangeType: "feat", Title: "Rework the cli flags."},
			wantErr: "CLI",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := Validate(testRules(t), tt.s, 42)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
