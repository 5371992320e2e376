package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhenkel/clog/internal/changelog"
	clierrors "github.com/dhenkel/clog/internal/errors"
)

var getCmd = &cobra.Command{
	Use:   "get <version>",
	Short: "Print the entries of a single release",
	Long: `Get prints one release of the changelog, identified by its version string
or by "unreleased".`,
	Example: `  clog get v1.2.0
  clog get unreleased`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	cfg, rs, err := loadRules(cmd)
	if err != nil {
		return err
	}

	cl, _, err := readChangelog(changelogPath(cmd, cfg), rs)
	if err != nil {
		return err
	}

	version := args[0]
	if strings.EqualFold(version, changelog.UnreleasedVersion) {
		version = changelog.UnreleasedVersion
	}

	rel, err := cl.GetRelease(version)
	if err != nil {
		remediation := "no releases found"
		if versions := cl.Versions(); len(versions) > 0 {
			remediation = "available: " + strings.Join(versions, ", ")
		}
		return clierrors.NewArgumentError(err.Error(), remediation)
	}

	fmt.Fprint(cmd.OutOrStdout(), renderRelease(rel))
	return nil
}

// renderRelease formats one release in the canonical body layout.
func renderRelease(rel *changelog.Release) string {
	var b strings.Builder
	b.WriteString(rel.Line)
	b.WriteString("\n")
	for _, sect := range rel.Sections {
		b.WriteString("\n")
		b.WriteString(sect.Line)
		b.WriteString("\n\n")
		for _, e := range sect.Entries {
			if e.Escape != nil {
				b.WriteString(e.Escape.Line)
				b.WriteString("\n")
			}
			b.WriteString(e.Line)
			b.WriteString("\n")
		}
	}
	return b.String()
}
