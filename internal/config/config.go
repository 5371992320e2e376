// Package config provides hierarchical configuration management for clog
// using koanf. Configuration is loaded with priority: environment variables >
// project config (.clog.yml) > user config (~/.config/clog/config.yml) >
// defaults. The legacy JSON project config (.clconfig.json) is still read,
// with a migration warning.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/dhenkel/clog/internal/rules"
)

// ChangeTypeConfig is one allowed section with its short input key.
type ChangeTypeConfig struct {
	Long  string `koanf:"long" yaml:"long" json:"long"`
	Short string `koanf:"short" yaml:"short" json:"short"`
}

// Configuration is the clog tool configuration.
type Configuration struct {
	// TargetRepo is the https GitHub URL entry and release links must point
	// at. Can be set via the CLOG_TARGET_REPO env var.
	TargetRepo string `koanf:"target_repo" yaml:"target_repo" json:"target_repo"`

	// ChangelogPath is the changelog file relative to the working directory.
	ChangelogPath string `koanf:"changelog_path" yaml:"changelog_path" json:"changelog_path"`

	// Categories are the allowed entry categories, lowercase.
	Categories []string `koanf:"categories" yaml:"categories" json:"categories"`

	// ChangeTypes are the allowed sections in canonical document order.
	ChangeTypes []ChangeTypeConfig `koanf:"change_types" yaml:"change_types" json:"change_types"`

	// ExpectedSpellings maps the correct form to a case-insensitive pattern
	// matching its misspellings.
	ExpectedSpellings map[string]string `koanf:"expected_spellings" yaml:"expected_spellings" json:"expected_spellings"`

	// LegacyVersion marks the boundary below which history predates the
	// tool and is exempt from linting. Empty disables the boundary.
	LegacyVersion string `koanf:"legacy_version" yaml:"legacy_version,omitempty" json:"legacy_version,omitempty"`

	// SortEntries enables the fixer's newest-PR-first entry sort.
	SortEntries bool `koanf:"sort_entries" yaml:"sort_entries" json:"sort_entries"`

	// GitHubToken authenticates open PR lookups. Usually set via the
	// CLOG_GITHUB_TOKEN env var rather than a config file.
	GitHubToken string `koanf:"github_token" yaml:"-" json:"-"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .clog.yml).
	ProjectConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr).
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings.
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults.
func Load() (*Configuration, error) {
	return LoadWithOptions(LoadOptions{})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := opts.WarningWriter
	if warningWriter == nil {
		warningWriter = os.Stderr
	}

	for key, value := range Defaults() {
		k.Set(key, value)
	}

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}
	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("CLOG_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.GitHubToken == "" {
		cfg.GitHubToken = os.Getenv("GITHUB_TOKEN")
	}
	return &cfg, nil
}

func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil {
		return nil
	}
	if !fileExists(path) {
		return nil
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading user config %s: %w", path, err)
	}
	return nil
}

func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	yamlPath := ProjectConfigPath()
	if customPath != "" {
		yamlPath = customPath
	}
	legacyPath := LegacyProjectConfigPath()

	switch {
	case fileExists(yamlPath):
		if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading project config %s: %w", yamlPath, err)
		}
		if fileExists(legacyPath) && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: legacy JSON config found at %s (ignored, using %s)\n", legacyPath, yamlPath)
			fmt.Fprintf(warningWriter, "  Run 'clog config migrate' to remove the legacy file.\n\n")
		}
	case fileExists(legacyPath):
		if err := k.Load(file.Provider(legacyPath), json.Parser()); err != nil {
			return fmt.Errorf("loading legacy project config %s: %w", legacyPath, err)
		}
		if !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: using deprecated JSON config at %s\n", legacyPath)
			fmt.Fprintf(warningWriter, "  Run 'clog config migrate' to migrate to YAML format.\n\n")
		}
	}
	return nil
}

// envTransform maps CLOG_TARGET_REPO to target_repo. All keys are flat, so
// underscores are kept as-is.
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "CLOG_"))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Rules compiles the configuration into the immutable rule set, validating
// it in the process.
func (c *Configuration) Rules() (*rules.Set, error) {
	if c.TargetRepo == "" {
		return nil, fmt.Errorf("no target repository configured, run 'clog init' or 'clog config set target-repo <url>'")
	}

	cts := make([]rules.ChangeType, 0, len(c.ChangeTypes))
	for _, ct := range c.ChangeTypes {
		cts = append(cts, rules.ChangeType{Long: ct.Long, Short: ct.Short})
	}

	return rules.New(rules.Params{
		TargetRepo:    c.TargetRepo,
		Categories:    c.Categories,
		ChangeTypes:   cts,
		Spellings:     c.ExpectedSpellings,
		LegacyVersion: c.LegacyVersion,
		SortEntries:   c.SortEntries,
	})
}
