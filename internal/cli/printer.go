package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/dhenkel/clog/internal/lint"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold).SprintFunc()
	fixableColor = color.New(color.FgYellow, color.Bold).SprintFunc()
	noteColor    = color.New(color.FgCyan).SprintFunc()
	lineColor    = color.New(color.Faint).SprintfFunc()
	okColor      = color.New(color.FgGreen, color.Bold).SprintFunc()
)

func severityLabel(s lint.Severity) string {
	switch s {
	case lint.SeverityError:
		return errorColor("error")
	case lint.SeverityFixable:
		return fixableColor("fixable")
	default:
		return noteColor("note")
	}
}

// printDiagnostics writes the findings for one file plus a summary line.
func printDiagnostics(w io.Writer, path string, diags []lint.Diagnostic) {
	counts := map[lint.Severity]int{}
	for _, d := range diags {
		counts[d.Severity]++
		fmt.Fprintf(w, "%s %s %s (%s)\n",
			lineColor("%s:%d:", path, d.Line),
			severityLabel(d.Severity),
			d.Message,
			d.Rule,
		)
	}

	violations := counts[lint.SeverityError] + counts[lint.SeverityFixable]
	switch {
	case violations == 0:
		fmt.Fprintf(w, "%s %s passes all checks\n", okColor("ok"), path)
	default:
		fmt.Fprintf(w, "%d problem(s) found in %s (%d fixable)\n",
			violations, path, counts[lint.SeverityFixable])
	}
}
