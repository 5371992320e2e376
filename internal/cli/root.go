// Package cli implements the clog command line interface. Commands are
// registered on the package-level rootCmd from their file's init function;
// Execute runs the tree and maps failures to exit codes.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	clierrors "github.com/dhenkel/clog/internal/errors"
)

var rootCmd = &cobra.Command{
	Use:   "clog",
	Short: "Keep-a-Changelog maintenance for GitHub projects",
	Long: `clog parses, lints, fixes and releases CHANGELOG.md files that follow
the Keep a Changelog layout with categorized, PR-linked entries.

Configuration is read from .clog.yml in the working directory, the user
config (~/.config/clog/config.yml) and CLOG_* environment variables.`,
	Example: `  clog lint                 # report rule violations
  clog lint --fix           # rewrite fixable violations
  clog add                  # add an entry to the Unreleased section
  clog release v1.2.0       # cut a release from Unreleased`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "project config file (default .clog.yml)")
	rootCmd.PersistentFlags().String("changelog", "", "changelog file (default from config)")
}

// codedError carries a specific exit code through cobra.
type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &codedError{code: code, err: err}
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	if coded, ok := err.(*codedError); ok {
		err = coded.err
		if cliErr := clierrors.AsCLIError(err); cliErr != nil {
			fmt.Fprint(os.Stderr, clierrors.FormatError(cliErr))
		} else if err.Error() != "" {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return coded.code
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		fmt.Fprint(os.Stderr, clierrors.FormatError(cliErr))
		return exitCodeForCategory(cliErr.Category)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return ExitRuntimeError
}

func exitCodeForCategory(c clierrors.ErrorCategory) int {
	switch c {
	case clierrors.Argument:
		return ExitInvalidArguments
	case clierrors.Configuration:
		return ExitConfigurationError
	case clierrors.Document:
		return ExitProblemsFound
	default:
		return ExitRuntimeError
	}
}
