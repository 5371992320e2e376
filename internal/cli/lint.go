package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dhenkel/clog/internal/changelog"
	clierrors "github.com/dhenkel/clog/internal/errors"
	"github.com/dhenkel/clog/internal/fix"
	"github.com/dhenkel/clog/internal/github"
	"github.com/dhenkel/clog/internal/lint"
	"github.com/dhenkel/clog/internal/rules"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check the changelog against the configured rules",
	Long: `Lint parses the changelog and reports rule violations with their line
numbers. Fixable findings can be rewritten in place with --fix; --diff shows
the rewrite without applying it.

When a GitHub token is available the open pull requests of the target
repository are fetched once per run to verify duplicate-PR escapes.`,
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().Bool("fix", false, "rewrite fixable violations in place")
	lintCmd.Flags().Bool("diff", false, "with --fix, print a unified diff instead of writing")
	lintCmd.Flags().Bool("watch", false, "re-lint whenever the changelog changes")
	lintCmd.Flags().Bool("skip-remote", false, "skip the open pull request lookup")
}

func runLint(cmd *cobra.Command, args []string) error {
	cfg, rs, err := loadRules(cmd)
	if err != nil {
		return err
	}
	path := changelogPath(cmd, cfg)

	applyFix, _ := cmd.Flags().GetBool("fix")
	showDiff, _ := cmd.Flags().GetBool("diff")
	watch, _ := cmd.Flags().GetBool("watch")
	skipRemote, _ := cmd.Flags().GetBool("skip-remote")

	if showDiff && !applyFix {
		return clierrors.NewArgumentErrorWithUsage(
			"--diff requires --fix", "clog lint --fix --diff")
	}
	if watch && applyFix {
		return clierrors.NewArgumentError("--watch cannot be combined with --fix")
	}

	var openPRs lint.OpenPRSet
	if !skipRemote {
		openPRs = fetchOpenPRs(cmd.Context(), rs, cfg.GitHubToken)
	}

	if watch {
		return watchLint(cmd, path, rs, openPRs)
	}
	return lintOnce(cmd, path, rs, openPRs, applyFix, showDiff)
}

func lintOnce(cmd *cobra.Command, path string, rs *rules.Set, openPRs lint.OpenPRSet, applyFix, showDiff bool) error {
	cl, text, err := readChangelog(path, rs)
	if err != nil {
		return withExitCode(ExitProblemsFound, err)
	}

	diags := lint.Lint(cl, rs, lint.Options{OpenPRs: openPRs})

	if applyFix && len(diags) > 0 {
		fixed := fix.Fix(cl, rs, diags)
		fixedText := changelog.Render(fixed)

		if showDiff {
			diff, err := fix.Diff(path, text, fixedText)
			if err != nil {
				return clierrors.Wrap(err, clierrors.Runtime)
			}
			fmt.Fprint(cmd.OutOrStdout(), diff)
		} else if fixedText != text {
			if err := os.WriteFile(path, []byte(fixedText), 0o644); err != nil {
				return clierrors.WrapWithMessage(err, clierrors.Runtime, "writing fixed changelog")
			}
		}

		// Report what remains after fixing.
		diags = lint.Lint(fixed, rs, lint.Options{OpenPRs: openPRs})
	}

	printDiagnostics(cmd.OutOrStdout(), path, diags)

	if lint.HasErrors(diags) || (!applyFix && lint.OnlyFixable(diags)) {
		return withExitCode(ExitProblemsFound, errors.New(""))
	}
	return nil
}

// fetchOpenPRs resolves the open PR set, degrading to nil (check skipped)
// on any failure.
func fetchOpenPRs(ctx context.Context, rs *rules.Set, token string) lint.OpenPRSet {
	ctx, cancel := context.WithTimeout(ctx, github.DefaultTimeout)
	defer cancel()

	set, err := github.NewClient(token).OpenPRs(ctx, rs.TargetRepo())
	if err != nil {
		return nil
	}
	return lint.OpenPRSet(set)
}

// watchLint re-lints on every write to the changelog until interrupted.
func watchLint(cmd *cobra.Command, path string, rs *rules.Set, openPRs lint.OpenPRSet) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	defer watcher.Close()

	// Watch the directory: editors replace files on save, which drops a
	// watch registered on the file itself.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "watching "+dir)
	}

	relint := func() {
		cl, _, err := readChangelog(path, rs)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
			return
		}
		printDiagnostics(cmd.OutOrStdout(), path, lint.Lint(cl, rs, lint.Options{OpenPRs: openPRs}))
	}
	relint()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Debounce: editors fire several events per save.
		var timer *time.Timer
		pending := make(chan struct{}, 1)
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(200*time.Millisecond, func() {
					select {
					case pending <- struct{}{}:
					default:
					}
				})
			case <-pending:
				relint()
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	return nil
}
