// Package fix rewrites fixable lint findings into their canonical form. The
// fixer only ever touches elements the linter flagged, so escaped entries and
// clean lines pass through byte-for-byte.
package fix

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhenkel/clog/internal/changelog"
	"github.com/dhenkel/clog/internal/lint"
	"github.com/dhenkel/clog/internal/rules"
)

// Fix returns a copy of the changelog with every fixable diagnostic applied.
// Error and note diagnostics are left alone. Running Fix on its own output
// is a no-op: the canonical forms it writes satisfy the rules they fix.
func Fix(cl *changelog.Changelog, rs *rules.Set, diags []lint.Diagnostic) *changelog.Changelog {
	out := cl.Clone()
	byLine := fixableByLine(diags)

	for r := range out.Releases {
		rel := &out.Releases[r]
		if byLine[rel.LineNumber][lint.RuleReleaseLink] {
			fixReleaseHeading(rel, rs)
		}

		for s := range rel.Sections {
			sect := &rel.Sections[s]
			if byLine[sect.LineNumber][lint.RuleChangeType] {
				fixChangeTypeHeading(sect, rs)
			}
			for e := range sect.Entries {
				if flagged := byLine[sect.Entries[e].LineNumber]; len(flagged) > 0 {
					fixEntry(&sect.Entries[e], rs, flagged)
				}
			}
			if rs.SortEntries() {
				sortEntries(sect)
			}
		}
	}

	return out
}

func fixableByLine(diags []lint.Diagnostic) map[int]map[string]bool {
	byLine := make(map[int]map[string]bool)
	for _, d := range diags {
		if d.Severity != lint.SeverityFixable {
			continue
		}
		if byLine[d.Line] == nil {
			byLine[d.Line] = make(map[string]bool)
		}
		byLine[d.Line][d.Rule] = true
	}
	return byLine
}

func fixReleaseHeading(rel *changelog.Release, rs *rules.Set) {
	rel.Link = changelog.ReleaseTagLink(rs.TargetRepo(), rel.Version)
	rel.Line = changelog.FormatReleaseHeading(rel.Version, rel.Link, rel.Date)
}

func fixChangeTypeHeading(sect *changelog.ChangeTypeSection, rs *rules.Set) {
	ct, ok := rs.MatchChangeType(sect.Name)
	if !ok {
		return
	}
	sect.Name = ct.Long
	sect.Line = changelog.FormatChangeTypeHeading(ct.Long)
}

// fixEntry rebuilds the entry line canonically, applying only the flagged
// rules to its fields. Unflagged aspects keep their parsed values, so an
// entry with an unfixable category error still gets its description fixed
// without the category being touched.
func fixEntry(e *changelog.Entry, rs *rules.Set, flagged map[string]bool) {
	if flagged[lint.RuleCategory] {
		e.Category = strings.ToLower(e.Category)
	}
	if flagged[lint.RulePRLink] {
		e.Link = changelog.PullRequestLink(rs.TargetRepo(), e.PRNumber)
		e.BackslashBeforeHash = false
	}
	if flagged[lint.RuleDescription] {
		e.Description = fixDescription(e.Description)
	}
	if flagged[lint.RuleSpelling] {
		e.Description = lint.ApplySpellings(rs, e.Description)
	}

	e.Whitespace = changelog.CanonicalWhitespace
	e.Line = changelog.FormatEntryLine(e.Category, e.PRNumber, e.Link, e.Description)
}

func fixDescription(desc string) string {
	if r, size := utf8.DecodeRuneInString(desc); r != utf8.RuneError && unicode.IsLetter(r) && !unicode.IsUpper(r) {
		desc = string(unicode.ToUpper(r)) + desc[size:]
	}
	if !strings.HasSuffix(desc, ".") {
		desc += "."
	}
	return desc
}

// sortEntries orders a section's entries newest PR first without breaking
// escape attachment, which travels with the entry.
func sortEntries(sect *changelog.ChangeTypeSection) {
	sort.SliceStable(sect.Entries, func(i, j int) bool {
		return sect.Entries[i].PRNumber > sect.Entries[j].PRNumber
	})
}
