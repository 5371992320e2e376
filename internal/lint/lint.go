// Package lint evaluates a parsed changelog against the configured rule set
// and produces line-addressed diagnostics. Linting is deterministic and side
// effect free; it never mutates the model.
package lint

import (
	"fmt"
	"time"

	"github.com/dhenkel/clog/internal/changelog"
	"github.com/dhenkel/clog/internal/rules"
)

// OpenPRSet is the resolved set of pull request numbers currently open on
// the target repository. A nil set means the lookup was unavailable.
type OpenPRSet map[int]struct{}

// Contains reports membership; the nil set contains nothing.
func (s OpenPRSet) Contains(pr int) bool {
	_, ok := s[pr]
	return ok
}

// Options carries per-run linter inputs that are not part of the rule set.
type Options struct {
	// OpenPRs feeds the duplicate-PR escape eligibility cross-check. When
	// nil the cross-check is skipped and escaped duplicates produce a note
	// instead of being verified.
	OpenPRs OpenPRSet
}

// Lint checks the changelog against the rule set. The returned diagnostics
// are ordered by line number, then rule identifier.
func Lint(cl *changelog.Changelog, rs *rules.Set, opts Options) []Diagnostic {
	l := &linter{cl: cl, rs: rs, opts: opts, seen: make(map[prKey]int)}
	l.run()
	sortDiagnostics(l.diags)
	return l.diags
}

// prKey identifies an entry for duplicate detection.
type prKey struct {
	category string
	pr       int
}

type linter struct {
	cl   *changelog.Changelog
	rs   *rules.Set
	opts Options

	diags []Diagnostic

	// seen maps (category, pr) to the release index of its first occurrence.
	seen map[prKey]int
}

func (l *linter) report(line int, rule string, sev Severity, format string, args ...any) {
	l.diags = append(l.diags, Diagnostic{
		Line:     line,
		Rule:     rule,
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (l *linter) run() {
	l.checkDanglingEscapes()
	l.checkReleaseSequence()

	for i := range l.cl.Releases {
		l.checkRelease(i, &l.cl.Releases[i])
	}
}

// checkDanglingEscapes flags escape directives that do not sit directly
// above an entry line. The escape-scope rule cannot be escaped.
func (l *linter) checkDanglingEscapes() {
	for _, d := range l.cl.Dangling {
		l.report(d.Escape.LineNumber, RuleEscapeScope, SeverityError,
			"escape directive must sit directly above an entry, found %s", d.Followed)
	}
}

// checkReleaseSequence enforces Unreleased-first ordering, strictly
// descending versions and unique release headings.
func (l *linter) checkReleaseSequence() {
	var prev *changelog.Release

	for i := range l.cl.Releases {
		rel := &l.cl.Releases[i]
		if rel.IsUnreleased() {
			if i != 0 {
				l.report(rel.LineNumber, RuleReleaseOrder, SeverityError,
					"Unreleased section must be the first section")
			}
			continue
		}

		if prev != nil && !prev.IsUnreleased() {
			pv, perr := changelog.ParseVersion(prev.Version)
			cv, cerr := changelog.ParseVersion(rel.Version)
			if perr == nil && cerr == nil {
				switch pv.Compare(cv) {
				case 0:
					l.report(rel.LineNumber, RuleDuplicateRelease, SeverityError,
						"duplicate release %s", rel.Version)
				case -1:
					l.report(rel.LineNumber, RuleReleaseOrder, SeverityError,
						"release %s must come before %s, versions must be descending",
						rel.Version, prev.Version)
				}
			}
		}
		prev = rel
	}
}

func (l *linter) checkRelease(idx int, rel *changelog.Release) {
	if !rel.IsUnreleased() {
		l.checkReleaseHeading(rel)
	}

	seenTypes := make(map[string]struct{}, len(rel.Sections))
	for s := range rel.Sections {
		sect := &rel.Sections[s]
		l.checkChangeTypeHeading(sect)

		if ct, ok := l.rs.MatchChangeType(sect.Name); ok {
			if _, dup := seenTypes[ct.Long]; dup {
				l.report(sect.LineNumber, RuleDuplicateChangeType, SeverityError,
					"duplicate change type %q in release %s", ct.Long, rel.Version)
			}
			seenTypes[ct.Long] = struct{}{}
		}

		for e := range sect.Entries {
			l.checkEntry(idx, &sect.Entries[e])
		}
	}
}

func (l *linter) checkReleaseHeading(rel *changelog.Release) {
	if rel.Date != "" {
		if _, err := time.Parse("2006-01-02", rel.Date); err != nil {
			l.report(rel.LineNumber, RuleReleaseDate, SeverityError,
				"release date %q is not a valid calendar date", rel.Date)
		}
	}

	want := changelog.ReleaseTagLink(l.rs.TargetRepo(), rel.Version)
	if rel.Link != want {
		l.report(rel.LineNumber, RuleReleaseLink, SeverityFixable,
			"release link should be %q, got %q", want, rel.Link)
	}
}

func (l *linter) checkChangeTypeHeading(sect *changelog.ChangeTypeSection) {
	ct, ok := l.rs.MatchChangeType(sect.Name)
	if !ok {
		l.report(sect.LineNumber, RuleChangeType, SeverityError,
			"invalid change type %q, allowed: %s", sect.Name, changeTypeNames(l.rs))
		return
	}
	if sect.Name != ct.Long {
		l.report(sect.LineNumber, RuleChangeType, SeverityFixable,
			"change type should be written %q, got %q", ct.Long, sect.Name)
	}
}

// checkEntry runs the per-entry rules, honoring the entry's escape.
func (l *linter) checkEntry(relIdx int, e *changelog.Entry) {
	escaped := e.Escape != nil && e.Escape.Kind == changelog.EscapeFullLine

	if !escaped {
		l.checkCategory(e)
		l.checkWhitespace(e)
		l.checkPRLink(e)
		l.checkDescription(e)
	}

	l.checkDuplicatePR(relIdx, e, escaped)
}

// checkDuplicatePR tracks (category, pr) pairs across the whole document.
// Same-release duplicates are always an error; a duplicate in a later
// release is suppressible with the duplicate-pr escape, subject to the open
// PR eligibility cross-check.
func (l *linter) checkDuplicatePR(relIdx int, e *changelog.Entry, fullLineEscape bool) {
	key := prKey{category: e.Category, pr: e.PRNumber}
	firstRel, dup := l.seen[key]
	if !dup {
		l.seen[key] = relIdx
		return
	}

	if fullLineEscape {
		return
	}

	if firstRel == relIdx {
		l.report(e.LineNumber, RuleDuplicatePR, SeverityError,
			"duplicate PR #%d in category %q within the same release", e.PRNumber, e.Category)
		return
	}

	if e.Escape != nil && e.Escape.Kind == changelog.EscapeDuplicatePR {
		if l.opts.OpenPRs == nil {
			l.report(e.Escape.LineNumber, RuleOpenPRLookup, SeverityNote,
				"open PR cross-check skipped for #%d: no lookup available", e.PRNumber)
			return
		}
		if l.opts.OpenPRs.Contains(e.PRNumber) {
			return
		}
		l.report(e.LineNumber, RuleDuplicatePR, SeverityError,
			"duplicate PR #%d in category %q: escape not applicable, PR is not open", e.PRNumber, e.Category)
		return
	}

	l.report(e.LineNumber, RuleDuplicatePR, SeverityError,
		"duplicate PR #%d in category %q, already listed under release %s",
		e.PRNumber, e.Category, l.cl.Releases[firstRel].Version)
}

func changeTypeNames(rs *rules.Set) string {
	names := ""
	for i, ct := range rs.ChangeTypes() {
		if i > 0 {
			names += ", "
		}
		names += ct.Long
	}
	return names
}
