package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dhenkel/clog/internal/changelog"
	"github.com/dhenkel/clog/internal/config"
	clierrors "github.com/dhenkel/clog/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and edit the project configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Show prints the configuration after layering environment variables over
the project and user config files.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return clierrors.Wrap(err, clierrors.Runtime)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Convert a legacy .clconfig.json to .clog.yml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := config.MigrateProject()
		if err != nil {
			return clierrors.Wrap(err, clierrors.Configuration)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "migrated %s to %s\n", from, to)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a scalar configuration value",
	Long: `Set updates one value in the project config file. Supported keys:
target-repo, changelog-path, legacy-version, sort-entries.`,
	Example: `  clog config set target-repo https://github.com/owner/repo
  clog config set sort-entries true`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editProjectConfig(cmd, func(cfg *config.Configuration) error {
			key, value := args[0], args[1]
			switch key {
			case "target-repo":
				return cfg.SetTargetRepo(value)
			case "changelog-path":
				cfg.ChangelogPath = value
				return nil
			case "legacy-version":
				if value != "" && !changelog.IsVersion(value) {
					return fmt.Errorf("%q is not a valid version", value)
				}
				cfg.LegacyVersion = value
				return nil
			case "sort-entries":
				b, err := strconv.ParseBool(value)
				if err != nil {
					return fmt.Errorf("%q is not a boolean", value)
				}
				cfg.SortEntries = b
				return nil
			default:
				return fmt.Errorf("unknown key %q (expected target-repo, changelog-path, legacy-version or sort-entries)", key)
			}
		})
	},
}

var configCategoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Edit the allowed entry categories",
}

var configChangeTypeCmd = &cobra.Command{
	Use:   "change-type",
	Short: "Edit the allowed change type sections",
}

var configSpellingCmd = &cobra.Command{
	Use:   "spelling",
	Short: "Edit the expected spellings",
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configMigrateCmd, configSetCmd,
		configCategoryCmd, configChangeTypeCmd, configSpellingCmd)

	configCategoryCmd.AddCommand(
		&cobra.Command{
			Use:   "add <name>",
			Short: "Allow a category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return editProjectConfig(cmd, func(cfg *config.Configuration) error {
					return cfg.AddCategory(args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "remove <name>",
			Short: "Disallow a category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return editProjectConfig(cmd, func(cfg *config.Configuration) error {
					return cfg.RemoveCategory(args[0])
				})
			},
		},
	)

	configChangeTypeCmd.AddCommand(
		&cobra.Command{
			Use:   "add <long> [short]",
			Short: "Allow a change type section",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				short := ""
				if len(args) == 2 {
					short = args[1]
				}
				return editProjectConfig(cmd, func(cfg *config.Configuration) error {
					return cfg.AddChangeType(args[0], short)
				})
			},
		},
		&cobra.Command{
			Use:   "remove <long>",
			Short: "Disallow a change type section",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return editProjectConfig(cmd, func(cfg *config.Configuration) error {
					return cfg.RemoveChangeType(args[0])
				})
			},
		},
	)

	configSpellingCmd.AddCommand(
		&cobra.Command{
			Use:   "set <correct> <pattern>",
			Short: "Add or replace a spelling correction",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return editProjectConfig(cmd, func(cfg *config.Configuration) error {
					return cfg.SetSpelling(args[0], args[1])
				})
			},
		},
		&cobra.Command{
			Use:   "remove <correct>",
			Short: "Drop a spelling correction",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return editProjectConfig(cmd, func(cfg *config.Configuration) error {
					return cfg.RemoveSpelling(args[0])
				})
			},
		},
	)
}

// editProjectConfig applies a mutation to the project config file only, so
// layered values from the environment or the user config never get baked into
// the project file.
func editProjectConfig(cmd *cobra.Command, mutate func(*config.Configuration) error) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.ProjectConfigPath()
	}

	var cfg config.Configuration
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Configuration, "parsing "+path)
		}
	case errors.Is(err, fs.ErrNotExist):
		return clierrors.NewConfigError(
			path+" does not exist",
			"run 'clog init' to create it")
	default:
		return clierrors.Wrap(err, clierrors.Runtime)
	}

	if err := mutate(&cfg); err != nil {
		return clierrors.Wrap(err, clierrors.Argument)
	}
	if err := config.Save(&cfg, path); err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", path)
	return nil
}
