package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes into dir for the duration of the test, restoring the previous
// working directory on cleanup. Equivalent to t.Chdir, which requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadWithOptions(LoadOptions{
		ProjectConfigPath: filepath.Join(t.TempDir(), "nope.yml"),
		SkipWarnings:      true,
	})
	require.NoError(t, err)

	assert.Equal(t, "", cfg.TargetRepo)
	assert.Equal(t, "CHANGELOG.md", cfg.ChangelogPath)
	require.Len(t, cfg.ChangeTypes, 3)
	assert.Equal(t, ChangeTypeConfig{Long: "Features", Short: "feat"}, cfg.ChangeTypes[0])
	assert.Equal(t, "cli", cfg.ExpectedSpellings["CLI"])
}

func TestLoad_ProjectYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clog.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
target_repo: https://github.com/dhenkel/clog
categories:
  - cli
  - lint
change_types:
  - long: Features
    short: feat
sort_entries: true
`), 0o644))

	cfg, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipWarnings: true})
	require.NoError(t, err)

	assert.Equal(t, "https://github.com/dhenkel/clog", cfg.TargetRepo)
	assert.Equal(t, []string{"cli", "lint"}, cfg.Categories)
	require.Len(t, cfg.ChangeTypes, 1)
	assert.True(t, cfg.SortEntries)
	// Defaults still fill unset keys.
	assert.Equal(t, "CHANGELOG.md", cfg.ChangelogPath)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CLOG_TARGET_REPO", "https://github.com/env/wins")

	cfg, err := LoadWithOptions(LoadOptions{
		ProjectConfigPath: filepath.Join(t.TempDir(), "nope.yml"),
		SkipWarnings:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/env/wins", cfg.TargetRepo)
}

func TestLoad_LegacyJSONWarns(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(LegacyProjectConfigPath(), []byte(`{
  "target_repo": "https://github.com/dhenkel/clog",
  "categories": ["cli"]
}`), 0o644))

	var warnings bytes.Buffer
	cfg, err := LoadWithOptions(LoadOptions{WarningWriter: &warnings})
	require.NoError(t, err)

	assert.Equal(t, "https://github.com/dhenkel/clog", cfg.TargetRepo)
	assert.Contains(t, warnings.String(), "deprecated JSON config")
}

func TestRules(t *testing.T) {
	cfg, err := LoadWithOptions(LoadOptions{
		ProjectConfigPath: filepath.Join(t.TempDir(), "nope.yml"),
		SkipWarnings:      true,
	})
	require.NoError(t, err)

	t.Run("no target repo", func(t *testing.T) {
		_, err := cfg.Rules()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "clog init")
	})

	t.Run("compiles", func(t *testing.T) {
		cfg.TargetRepo = "https://github.com/dhenkel/clog"
		cfg.Categories = []string{"cli"}
		rs, err := cfg.Rules()
		require.NoError(t, err)
		assert.True(t, rs.HasCategory("cli"))
		_, ok := rs.ChangeTypeByShort("fix")
		assert.True(t, ok)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := &Configuration{
		TargetRepo:        "https://github.com/dhenkel/clog",
		ChangelogPath:     "CHANGELOG.md",
		Categories:        []string{"cli"},
		ChangeTypes:       []ChangeTypeConfig{{Long: "Features", Short: "feat"}},
		ExpectedSpellings: map[string]string{"CLI": "cli"},
		GitHubToken:       "must-not-be-written",
	}

	path := filepath.Join(t.TempDir(), "clog.yml")
	require.NoError(t, Save(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "must-not-be-written")

	loaded, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipWarnings: true})
	require.NoError(t, err)
	assert.Equal(t, cfg.TargetRepo, loaded.TargetRepo)
	assert.Equal(t, cfg.Categories, loaded.Categories)
	assert.Equal(t, cfg.ChangeTypes, loaded.ChangeTypes)
}

func TestMigrateProject(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(LegacyProjectConfigPath(), []byte(`{
  "target_repo": "https://github.com/dhenkel/clog",
  "categories": ["cli"],
  "change_types": [{"long": "Features", "short": "feat"}]
}`), 0o644))

	from, to, err := MigrateProject()
	require.NoError(t, err)
	assert.Equal(t, ".clconfig.json", from)
	assert.Equal(t, ".clog.yml", to)
	assert.NoFileExists(t, from)
	assert.FileExists(t, to)

	cfg, err := LoadWithOptions(LoadOptions{SkipWarnings: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"cli"}, cfg.Categories)
	require.Len(t, cfg.ChangeTypes, 1)
	assert.Equal(t, "feat", cfg.ChangeTypes[0].Short)
}

func TestMigrateProject_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(LegacyProjectConfigPath(), []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(ProjectConfigPath(), []byte(`{}`), 0o644))

	_, _, err := MigrateProject()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
