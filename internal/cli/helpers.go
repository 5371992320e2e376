package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhenkel/clog/internal/changelog"
	"github.com/dhenkel/clog/internal/config"
	clierrors "github.com/dhenkel/clog/internal/errors"
	"github.com/dhenkel/clog/internal/rules"
)

// loadConfig reads the layered configuration, honoring the --config flag.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadWithOptions(config.LoadOptions{ProjectConfigPath: path})
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.Configuration)
	}
	return cfg, nil
}

// loadRules loads configuration and compiles the rule set.
func loadRules(cmd *cobra.Command) (*config.Configuration, *rules.Set, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	rs, err := cfg.Rules()
	if err != nil {
		return nil, nil, clierrors.Wrap(err, clierrors.Configuration,
			"run 'clog init' to create a project config",
			"or edit .clog.yml by hand")
	}
	return cfg, rs, nil
}

// changelogPath resolves the changelog file from the --changelog flag or the
// configuration.
func changelogPath(cmd *cobra.Command, cfg *config.Configuration) string {
	if path, _ := cmd.Flags().GetString("changelog"); path != "" {
		return path
	}
	return cfg.ChangelogPath
}

// readChangelog parses the changelog file with the rule set's legacy
// boundary applied. It returns the raw text alongside the model so callers
// can diff against it.
func readChangelog(path string, rs *rules.Set) (*changelog.Changelog, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", clierrors.NewDocumentError(
				fmt.Sprintf("changelog %s does not exist", path),
				"run 'clog init' to create one")
		}
		return nil, "", clierrors.Wrap(err, clierrors.Runtime)
	}

	text := string(data)
	cl, err := changelog.ParseWithOptions(text, changelog.Options{LegacyVersion: rs.LegacyVersion()})
	if err != nil {
		return nil, "", clierrors.WrapWithMessage(err, clierrors.Document,
			fmt.Sprintf("parsing %s", path))
	}
	return cl, text, nil
}

// writeChangelog renders the model back to the file.
func writeChangelog(path string, cl *changelog.Changelog) error {
	if err := os.WriteFile(path, []byte(changelog.Render(cl)), 0o644); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime,
			fmt.Sprintf("writing %s", path))
	}
	return nil
}
