package lint

import (
	"sort"
	"strings"
	"unicode"

	"github.com/dhenkel/clog/internal/changelog"
	"github.com/dhenkel/clog/internal/rules"
)

func (l *linter) checkCategory(e *changelog.Entry) {
	if l.rs.HasCategory(e.Category) {
		return
	}
	if lower := strings.ToLower(e.Category); l.rs.HasCategory(lower) {
		l.report(e.LineNumber, RuleCategory, SeverityFixable,
			"category should be lowercase: %q", e.Category)
		return
	}
	l.report(e.LineNumber, RuleCategory, SeverityError,
		"invalid category %q, allowed: %s", e.Category, strings.Join(l.rs.Categories(), ", "))
}

func (l *linter) checkWhitespace(e *changelog.Entry) {
	if e.Whitespace != changelog.CanonicalWhitespace {
		l.report(e.LineNumber, RuleWhitespace, SeverityFixable,
			"entry whitespace deviates from '- (category) [#123](link) Description.'")
	}
}

func (l *linter) checkPRLink(e *changelog.Entry) {
	if e.BackslashBeforeHash {
		l.report(e.LineNumber, RulePRLink, SeverityFixable,
			"link text must not escape the hash sign")
	}

	want := changelog.PullRequestLink(l.rs.TargetRepo(), e.PRNumber)
	if e.Link != want {
		l.report(e.LineNumber, RulePRLink, SeverityFixable,
			"PR link should be %q, got %q", want, e.Link)
	}
}

func (l *linter) checkDescription(e *changelog.Entry) {
	desc := e.Description

	if first := firstRune(desc); first != 0 && unicode.IsLetter(first) && !unicode.IsUpper(first) {
		l.report(e.LineNumber, RuleDescription, SeverityFixable,
			"description should start with a capital letter: %q", desc)
	}
	if !strings.HasSuffix(desc, ".") {
		l.report(e.LineNumber, RuleDescription, SeverityFixable,
			"description should end with a dot: %q", desc)
	}

	l.checkSpelling(e)
}

// checkSpelling applies the configured corrections to the description,
// skipping matches inside backtick code spans and matches embedded in larger
// words.
func (l *linter) checkSpelling(e *changelog.Entry) {
	for _, m := range findMisspellings(l.rs, e.Description) {
		l.report(e.LineNumber, RuleSpelling, SeverityFixable,
			"%q should be written %q", e.Description[m.from:m.to], m.correct)
	}
}

type misspelling struct {
	from, to int
	correct  string
}

// findMisspellings locates correction matches outside code spans and not
// embedded in larger words, ordered by position.
func findMisspellings(rs *rules.Set, text string) []misspelling {
	code := codeSpanMask(text)

	var out []misspelling
	for _, sp := range rs.Spellings() {
		for _, loc := range sp.Pattern.FindAllStringIndex(text, -1) {
			if text[loc[0]:loc[1]] == sp.Correct {
				continue
			}
			if inMask(code, loc[0], loc[1]) || embeddedInWord(text, loc[0], loc[1]) {
				continue
			}
			out = append(out, misspelling{from: loc[0], to: loc[1], correct: sp.Correct})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].from < out[j].from })
	return out
}

// ApplySpellings rewrites every misspelling to its correct form, honoring
// the same code-span and embedded-word exclusions as the spelling rule.
func ApplySpellings(rs *rules.Set, text string) string {
	ms := findMisspellings(rs, text)
	for i := len(ms) - 1; i >= 0; i-- {
		m := ms[i]
		text = text[:m.from] + m.correct + text[m.to:]
	}
	return text
}

// codeSpanMask marks the byte ranges of s enclosed in backticks.
func codeSpanMask(s string) []bool {
	mask := make([]bool, len(s))
	inSpan := false
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '`' {
			continue
		}
		if !inSpan {
			inSpan = true
			start = i
			continue
		}
		for j := start; j <= i; j++ {
			mask[j] = true
		}
		inSpan = false
	}
	return mask
}

func inMask(mask []bool, from, to int) bool {
	for i := from; i < to && i < len(mask); i++ {
		if mask[i] {
			return true
		}
	}
	return false
}

// embeddedInWord reports whether the match at [from,to) is part of a larger
// word, e.g. "clier" containing "cli".
func embeddedInWord(s string, from, to int) bool {
	if from > 0 && isWordByte(s[from-1]) {
		return true
	}
	if to < len(s) && isWordByte(s[to]) {
		return true
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
