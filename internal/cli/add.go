package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/dhenkel/clog/internal/changelog"
	clierrors "github.com/dhenkel/clog/internal/errors"
	"github.com/dhenkel/clog/internal/github"
	"github.com/dhenkel/clog/internal/lint"
	"github.com/dhenkel/clog/internal/rules"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an entry to the Unreleased section",
	Long: `Add inserts a canonically formatted entry into the Unreleased section,
creating the section and the change type bucket when missing. Missing fields
are prompted for on a terminal; in scripts pass them as flags.

The PR number prompt is pre-filled with the highest open pull request of the
target repository plus one when a lookup succeeds.`,
	Example: `  clog add
  clog add --type Features --category cli --pr 142 --desc "Add lint --watch mode."`,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().String("type", "", "change type (long or short form)")
	addCmd.Flags().String("category", "", "entry category")
	addCmd.Flags().Int("pr", 0, "pull request number")
	addCmd.Flags().String("desc", "", "entry description")
	addCmd.Flags().Bool("skip-remote", false, "skip the open pull request lookup")
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, rs, err := loadRules(cmd)
	if err != nil {
		return err
	}
	path := changelogPath(cmd, cfg)

	cl, _, err := readChangelog(path, rs)
	if err != nil {
		return err
	}

	interactive := isInteractive()
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	typeName, _ := cmd.Flags().GetString("type")
	category, _ := cmd.Flags().GetString("category")
	pr, _ := cmd.Flags().GetInt("pr")
	desc, _ := cmd.Flags().GetString("desc")
	skipRemote, _ := cmd.Flags().GetBool("skip-remote")

	ct, err := resolveChangeType(rs, typeName, interactive, in, out)
	if err != nil {
		return err
	}
	if category, err = resolveCategory(rs, category, interactive, in, out); err != nil {
		return err
	}
	if pr == 0 {
		if pr, err = resolvePRNumber(cmd, rs, cfg.GitHubToken, interactive, skipRemote, in, out); err != nil {
			return err
		}
	}
	if desc, err = resolveDescription(desc, interactive, in, out); err != nil {
		return err
	}

	entry := changelog.NewEntry(category, pr, changelog.PullRequestLink(rs.TargetRepo(), pr), desc)
	if err := validateEntry(rs, ct, entry); err != nil {
		return err
	}

	cl = cl.Clone()
	cl.AddEntry(ct.Long, entry)
	if err := writeChangelog(path, cl); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s added to %s under %s\n", entry.Line, path, ct.Long)
	return nil
}

func resolveChangeType(rs *rules.Set, name string, interactive bool, in *bufio.Reader, out io.Writer) (rules.ChangeType, error) {
	if name == "" {
		if !interactive {
			return rules.ChangeType{}, clierrors.NewArgumentErrorWithUsage(
				"--type is required when not running on a terminal",
				"clog add --type <change type> --category <category> --pr <number> --desc <text>")
		}
		for i, ct := range rs.ChangeTypes() {
			fmt.Fprintf(out, "  %d) %s (%s)\n", i+1, ct.Long, ct.Short)
		}
		answer, err := prompt(in, out, "Change type")
		if err != nil {
			return rules.ChangeType{}, err
		}
		if idx, convErr := strconv.Atoi(answer); convErr == nil {
			types := rs.ChangeTypes()
			if idx < 1 || idx > len(types) {
				return rules.ChangeType{}, clierrors.NewArgumentError(
					fmt.Sprintf("change type selection %d is out of range", idx))
			}
			return types[idx-1], nil
		}
		name = answer
	}

	ct, ok := rs.MatchChangeType(name)
	if !ok {
		return rules.ChangeType{}, clierrors.NewArgumentError(
			fmt.Sprintf("unknown change type %q", name),
			"known change types: "+joinChangeTypes(rs))
	}
	return ct, nil
}

func resolveCategory(rs *rules.Set, category string, interactive bool, in *bufio.Reader, out io.Writer) (string, error) {
	if category == "" {
		if !interactive {
			return "", clierrors.NewArgumentError("--category is required when not running on a terminal")
		}
		var err error
		category, err = prompt(in, out, fmt.Sprintf("Category (%s)", strings.Join(rs.Categories(), ", ")))
		if err != nil {
			return "", err
		}
	}

	category = strings.ToLower(strings.TrimSpace(category))
	if !rs.HasCategory(category) {
		return "", clierrors.NewArgumentError(
			fmt.Sprintf("unknown category %q", category),
			"known categories: "+strings.Join(rs.Categories(), ", "),
			"add it with 'clog config category add <name>'")
	}
	return category, nil
}

func resolvePRNumber(cmd *cobra.Command, rs *rules.Set, token string, interactive, skipRemote bool, in *bufio.Reader, out io.Writer) (int, error) {
	if !interactive {
		return 0, clierrors.NewArgumentError("--pr is required when not running on a terminal")
	}

	suggestion := 0
	if !skipRemote {
		s := spinner.New(spinner.CharSets[spinnerCharSet()], 100*time.Millisecond,
			spinner.WithWriter(cmd.ErrOrStderr()), spinner.WithSuffix(" looking up open pull requests"))
		s.Start()
		set := fetchOpenPRs(cmd.Context(), rs, token)
		s.Stop()
		if max := github.OpenPRSet(set).Max(); max > 0 {
			suggestion = max
		}
	}

	label := "PR number"
	if suggestion > 0 {
		label = fmt.Sprintf("PR number [%d]", suggestion)
	}
	answer, err := prompt(in, out, label)
	if err != nil {
		return 0, err
	}
	if answer == "" && suggestion > 0 {
		return suggestion, nil
	}

	pr, err := strconv.Atoi(answer)
	if err != nil || pr <= 0 {
		return 0, clierrors.NewArgumentError(fmt.Sprintf("%q is not a valid PR number", answer))
	}
	return pr, nil
}

func resolveDescription(desc string, interactive bool, in *bufio.Reader, out io.Writer) (string, error) {
	if desc != "" {
		return desc, nil
	}
	if !interactive {
		return "", clierrors.NewArgumentError("--desc is required when not running on a terminal")
	}
	return prompt(in, out, "Description")
}

// validateEntry lints the new entry in isolation before it touches the file.
func validateEntry(rs *rules.Set, ct rules.ChangeType, e changelog.Entry) error {
	doc := &changelog.Changelog{Title: "# Changelog"}
	doc.AddEntry(ct.Long, e)

	for _, d := range lint.Lint(doc, rs, lint.Options{}) {
		if d.Severity == lint.SeverityNote {
			continue
		}
		return clierrors.NewArgumentError("entry fails lint: " + d.Message)
	}
	return nil
}

func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprintf(out, "%s: ", label)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", clierrors.WrapWithMessage(err, clierrors.Runtime, "reading input")
	}
	return strings.TrimSpace(line), nil
}

func joinChangeTypes(rs *rules.Set) string {
	parts := make([]string, 0, len(rs.ChangeTypes()))
	for _, ct := range rs.ChangeTypes() {
		parts = append(parts, fmt.Sprintf("%s (%s)", ct.Long, ct.Short))
	}
	return strings.Join(parts, ", ")
}
