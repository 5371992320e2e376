// Package suggest defines the contract for machine-generated changelog
// entries. A Generator proposes an entry from a change diff; Validate runs
// the proposal through the linter before it may be written to the document.
package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/dhenkel/clog/internal/changelog"
	"github.com/dhenkel/clog/internal/lint"
	"github.com/dhenkel/clog/internal/rules"
)

// Suggestion is a proposed changelog entry.
type Suggestion struct {
	// Category must be one of the configured categories.
	Category string
	// ChangeType names the target section, long or short form.
	ChangeType string
	// Title is the proposed entry description.
	Title string
	// PRDescription carries the generator's longer rationale, usable as a
	// pull request body. Not part of the changelog entry itself.
	PRDescription string
}

// Generator proposes a changelog entry for a set of changes.
type Generator interface {
	Suggest(ctx context.Context, diff string, rs *rules.Set) (Suggestion, error)
}

// Entry resolves the suggestion into a canonical entry and its target change
// type.
func (s Suggestion) Entry(rs *rules.Set, pr int) (changelog.Entry, rules.ChangeType, error) {
	ct, ok := rs.MatchChangeType(s.ChangeType)
	if !ok {
		return changelog.Entry{}, rules.ChangeType{}, fmt.Errorf("suggested change type %q is not configured", s.ChangeType)
	}
	link := changelog.PullRequestLink(rs.TargetRepo(), pr)
	return changelog.NewEntry(s.Category, pr, link, s.Title), ct, nil
}

// Validate renders the suggestion as an entry and lints it in isolation.
// Any violation, fixable or not, rejects the suggestion: generated entries
// must be clean as proposed.
func Validate(rs *rules.Set, s Suggestion, pr int) error {
	e, ct, err := s.Entry(rs, pr)
	if err != nil {
		return err
	}

	cl := &changelog.Changelog{
		Title: "# Changelog",
		Releases: []changelog.Release{{
			Line:    changelog.FormatUnreleasedHeading(),
			Version: changelog.UnreleasedVersion,
			Sections: []changelog.ChangeTypeSection{{
				Line:    changelog.FormatChangeTypeHeading(ct.Long),
				Name:    ct.Long,
				Entries: []changelog.Entry{e},
			}},
		}},
	}

	var violations []string
	for _, d := range lint.Lint(cl, rs, lint.Options{}) {
		if d.Severity == lint.SeverityNote {
			continue
		}
		violations = append(violations, d.Message)
	}
	if len(violations) > 0 {
		return fmt.Errorf("suggestion fails linting: %s", strings.Join(violations, "; "))
	}
	return nil
}
