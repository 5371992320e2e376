package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhenkel/clog/internal/changelog"
	"github.com/dhenkel/clog/internal/config"
	clierrors "github.com/dhenkel/clog/internal/errors"
	"github.com/dhenkel/clog/internal/git"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up clog in the current repository",
	Long: `Init writes a .clog.yml project config and, when missing, a changelog
skeleton. The target repository is taken from the git origin remote unless
--target-repo is given.

When a changelog already exists its categories and change types seed the
config, so linting starts from a state the document satisfies.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("target-repo", "", "GitHub repository URL (default from git origin)")
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := config.ProjectConfigPath()
	if _, err := os.Stat(configPath); err == nil {
		return clierrors.NewConfigError(
			configPath+" already exists",
			"edit it with the 'clog config' subcommands")
	}
	if _, err := os.Stat(config.LegacyProjectConfigPath()); err == nil {
		return clierrors.NewConfigError(
			"found a legacy "+config.LegacyProjectConfigPath(),
			"run 'clog config migrate' instead of init")
	}

	targetRepo, _ := cmd.Flags().GetString("target-repo")
	if targetRepo == "" {
		if url, err := git.OriginURL("."); err == nil {
			targetRepo = url
		}
	}

	out := cmd.OutOrStdout()

	changelogFile := "CHANGELOG.md"
	if path, _ := cmd.Flags().GetString("changelog"); path != "" {
		changelogFile = path
	}

	if data, err := os.ReadFile(changelogFile); err == nil {
		// Seed the config from the existing document.
		cl, parseErr := changelog.Parse(string(data))
		if parseErr != nil {
			return clierrors.WrapWithMessage(parseErr, clierrors.Document,
				fmt.Sprintf("parsing %s", changelogFile))
		}

		cfg, err := config.LoadWithOptions(config.LoadOptions{})
		if err != nil {
			return clierrors.Wrap(err, clierrors.Configuration)
		}
		cfg.TargetRepo = targetRepo
		cfg.ChangelogPath = changelogFile
		cfg.DeriveFromChangelog(cl)

		if err := config.Save(cfg, configPath); err != nil {
			return clierrors.Wrap(err, clierrors.Runtime)
		}
		fmt.Fprintf(out, "wrote %s, derived from %s\n", configPath, changelogFile)
	} else {
		if err := os.WriteFile(configPath, []byte(config.DefaultConfigTemplate(targetRepo)), 0o644); err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Runtime, "writing "+configPath)
		}
		if err := os.WriteFile(changelogFile, []byte(changelogSkeleton()), 0o644); err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Runtime, "writing "+changelogFile)
		}
		fmt.Fprintf(out, "wrote %s and %s\n", configPath, changelogFile)
	}

	if targetRepo == "" {
		fmt.Fprintln(out, "no git origin found, set the repository with 'clog config set target-repo <url>'")
	}
	return nil
}

func changelogSkeleton() string {
	var b strings.Builder
	b.WriteString("<!-- markdownlint-disable MD013 -->\n\n")
	b.WriteString("# Changelog\n\n")
	b.WriteString(changelog.FormatUnreleasedHeading())
	b.WriteString("\n")
	return b.String()
}
