package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhenkel/clog/internal/changelog"
	clierrors "github.com/dhenkel/clog/internal/errors"
	"github.com/dhenkel/clog/internal/release"
)

var releaseCmd = &cobra.Command{
	Use:   "release [version]",
	Short: "Turn the Unreleased section into a tagged release",
	Long: `Release stamps the Unreleased section with a version, a release link and a
date, then starts a fresh empty Unreleased section on top.

The version is given explicitly or derived from the latest release with
--major, --minor or --patch. Adding --rc cuts the first candidate of the
bumped version; --rc alone continues the candidate series, or starts one on
the next patch.`,
	Example: `  clog release v1.2.0
  clog release --minor
  clog release --minor --rc
  clog release v2.0.0-rc1 --date 2026-09-01`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRelease,
}

func init() {
	rootCmd.AddCommand(releaseCmd)

	releaseCmd.Flags().Bool("major", false, "bump the major version of the latest release")
	releaseCmd.Flags().Bool("minor", false, "bump the minor version of the latest release")
	releaseCmd.Flags().Bool("patch", false, "bump the patch version of the latest release")
	releaseCmd.Flags().Bool("rc", false, "cut a release candidate of the bumped version")
	releaseCmd.Flags().String("date", "", "release date (default today, format 2006-01-02)")
}

func runRelease(cmd *cobra.Command, args []string) error {
	cfg, rs, err := loadRules(cmd)
	if err != nil {
		return err
	}
	path := changelogPath(cmd, cfg)

	cl, _, err := readChangelog(path, rs)
	if err != nil {
		return err
	}

	version, err := releaseVersion(cmd, args, cl)
	if err != nil {
		return err
	}

	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	cut, err := release.Cut(cl, rs, version, date)
	if err != nil {
		switch {
		case errors.Is(err, release.ErrEmptyUnreleased):
			return clierrors.NewDocumentError(
				"the Unreleased section has no entries to release",
				"add entries with 'clog add' first")
		case errors.Is(err, release.ErrVersionOrder):
			return clierrors.NewArgumentError(err.Error())
		default:
			return clierrors.Wrap(err, clierrors.Argument)
		}
	}

	if err := writeChangelog(path, cut); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "released %s in %s\n", version, path)
	return nil
}

// releaseVersion resolves the target version from the positional argument or
// the bump flags. --rc combines with a component flag (first candidate of
// that bump) or stands alone (continue the candidate series, or start one on
// the next patch).
func releaseVersion(cmd *cobra.Command, args []string, cl *changelog.Changelog) (string, error) {
	const usage = "clog release [version] [--major|--minor|--patch] [--rc]"

	component := changelog.BumpKind(-1)
	for flag, k := range map[string]changelog.BumpKind{
		"major": changelog.BumpMajor,
		"minor": changelog.BumpMinor,
		"patch": changelog.BumpPatch,
	} {
		if set, _ := cmd.Flags().GetBool(flag); !set {
			continue
		}
		if component != changelog.BumpKind(-1) {
			return "", clierrors.NewArgumentErrorWithUsage(
				"give at most one of --major, --minor and --patch", usage)
		}
		component = k
	}
	rc, _ := cmd.Flags().GetBool("rc")

	if len(args) == 1 {
		if component != changelog.BumpKind(-1) || rc {
			return "", clierrors.NewArgumentErrorWithUsage(
				"give either an explicit version or bump flags, not both", usage)
		}
		if !changelog.IsVersion(args[0]) {
			return "", clierrors.NewArgumentError(
				fmt.Sprintf("%q is not a valid version", args[0]),
				"expected the form vX.Y.Z or vX.Y.Z-rcN")
		}
		return args[0], nil
	}

	if component == changelog.BumpKind(-1) && !rc {
		return "", clierrors.NewArgumentErrorWithUsage(
			"a version or a bump flag is required", usage)
	}

	kind := component
	if component == changelog.BumpKind(-1) {
		kind = changelog.BumpRC
	}
	next, err := release.NextVersion(cl, kind)
	if err != nil {
		return "", clierrors.Wrap(err, clierrors.Document)
	}
	if rc && kind != changelog.BumpRC {
		v, parseErr := changelog.ParseVersion(next)
		if parseErr != nil {
			return "", clierrors.Wrap(parseErr, clierrors.Runtime)
		}
		v.RC = 1
		next = v.String()
	}
	return next, nil
}
