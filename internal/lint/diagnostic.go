package lint

import (
	"fmt"
	"sort"
)

// Severity classifies a diagnostic.
type Severity int

const (
	// SeverityError marks a violation the fixer cannot resolve.
	SeverityError Severity = iota
	// SeverityFixable marks a violation with a mechanical canonical form.
	SeverityFixable
	// SeverityNote marks informational output, currently only degradation of
	// the open PR cross-check.
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityFixable:
		return "fixable"
	case SeverityNote:
		return "note"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Rule identifiers, stable across releases so escapes and tooling can rely
// on them.
const (
	RuleCategory            = "category"
	RuleChangeType          = "change-type"
	RuleWhitespace          = "whitespace"
	RulePRLink              = "pr-link"
	RuleDescription         = "description"
	RuleSpelling            = "spelling"
	RuleDuplicatePR         = "duplicate-pr"
	RuleDuplicateRelease    = "duplicate-release"
	RuleDuplicateChangeType = "duplicate-change-type"
	RuleReleaseOrder        = "release-order"
	RuleReleaseDate         = "release-date"
	RuleReleaseLink         = "release-link"
	RuleEscapeScope         = "escape-scope"
	RuleOpenPRLookup        = "open-pr-lookup"
)

// Diagnostic is one finding against the document.
type Diagnostic struct {
	// Line is the 1-based source line the finding points at.
	Line int
	// Rule is the stable rule identifier.
	Rule string
	// Severity is error, fixable or note.
	Severity Severity
	// Message is the human-readable description.
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: [%s] %s: %s", d.Line, d.Severity, d.Rule, d.Message)
}

// HasErrors reports whether any diagnostic has error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// OnlyFixable reports whether the diagnostics are non-empty and every
// violation in them is mechanically fixable (notes do not count as
// violations).
func OnlyFixable(diags []Diagnostic) bool {
	fixable := 0
	for _, d := range diags {
		switch d.Severity {
		case SeverityError:
			return false
		case SeverityFixable:
			fixable++
		}
	}
	return fixable > 0
}

func sortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Line != diags[j].Line {
			return diags[i].Line < diags[j].Line
		}
		return diags[i].Rule < diags[j].Rule
	})
}
