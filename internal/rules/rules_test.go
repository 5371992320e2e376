package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() Params {
	return Params{
		TargetRepo: "https://github.com/dhenkel/clog",
		Categories: []string{"cli", "lint", "config"},
		ChangeTypes: []ChangeType{
			{Long: "Features", Short: "feat"},
			{Long: "Improvements", Short: "imp"},
			{Long: "Bug Fixes", Short: "fix"},
		},
		Spellings: map[string]string{
			"CLI": `cli`,
			"API": `ap[li]`,
		},
	}
}

func TestNew(t *testing.T) {
	tests := map[string]struct {
		mutate  func(*Params)
		wantErr string
	}{
		"valid": {mutate: func(p *Params) {}},
		"valid with legacy version": {
			mutate: func(p *Params) { p.LegacyVersion = "v0.4.0" },
		},
		"trailing slash stripped": {
			mutate: func(p *Params) { p.TargetRepo = "https://github.com/dhenkel/clog/" },
		},
		"not a github url": {
			mutate:  func(p *Params) { p.TargetRepo = "https://gitlab.com/x/y" },
			wantErr: "not a GitHub repository URL",
		},
		"empty target repo": {
			mutate:  func(p *Params) { p.TargetRepo = "" },
			wantErr: "not a GitHub repository URL",
		},
		"bad legacy version": {
			mutate:  func(p *Params) { p.LegacyVersion = "0.4" },
			wantErr: "legacy version",
		},
		"uppercase category": {
			mutate:  func(p *Params) { p.Categories = []string{"CLI"} },
			wantErr: "must be lowercase",
		},
		"no change types": {
			mutate:  func(p *Params) { p.ChangeTypes = nil },
			wantErr: "at least one change type",
		},
		"duplicate change type": {
			mutate: func(p *Params) {
				p.ChangeTypes = append(p.ChangeTypes, ChangeType{Long: "Features", Short: "f2"})
			},
			wantErr: "duplicate change type",
		},
		"bad spelling pattern": {
			mutate:  func(p *Params) { p.Spellings = map[string]string{"API": `ap[`} },
			wantErr: "spelling pattern",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			s, err := New(p)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "https://github.com/dhenkel/clog", s.TargetRepo())
		})
	}
}

func TestSetLookups(t *testing.T) {
	s, err := New(validParams())
	require.NoError(t, err)

	assert.True(t, s.HasCategory("cli"))
	assert.False(t, s.HasCategory("CLI"))
	assert.False(t, s.HasCategory("web"))
	assert.Equal(t, []string{"cli", "config", "lint"}, s.Categories())

	ct, ok := s.ChangeTypeByLong("Bug Fixes")
	require.True(t, ok)
	assert.Equal(t, "fix", ct.Short)

	ct, ok = s.ChangeTypeByShort("feat")
	require.True(t, ok)
	assert.Equal(t, "Features", ct.Long)

	_, ok = s.ChangeTypeByLong("bug fixes")
	assert.False(t, ok)

	ct, ok = s.MatchChangeType("bug fixes")
	require.True(t, ok)
	assert.Equal(t, "Bug Fixes", ct.Long)

	ct, ok = s.MatchChangeType("FIX")
	require.True(t, ok)
	assert.Equal(t, "Bug Fixes", ct.Long)

	_, ok = s.MatchChangeType("chore")
	assert.False(t, ok)
}

func TestSpellingsCompiled(t *testing.T) {
	s, err := New(validParams())
	require.NoError(t, err)

	sp := s.Spellings()
	require.Len(t, sp, 2)
	// Deterministic order by correct form.
	assert.Equal(t, "API", sp[0].Correct)
	assert.Equal(t, "CLI", sp[1].Correct)
	assert.True(t, sp[1].Pattern.MatchString("Cli"))
	assert.True(t, sp[1].Pattern.MatchString("CLI"))
}
