package changelog

import (
	"regexp"
	"strings"
)

// Escape directives are single-line HTML comments placed directly above the
// entry they apply to:
//
//	<!-- clog-disable-next-line -->
//	<!-- clog-disable-next-line-duplicate-pr: backport of #412 -->
//
// The text after the optional colon is a free-form justification.
var (
	duplicatePREscapePattern = regexp.MustCompile(
		`^<!--\s*clog-disable-next-line-duplicate-pr(?::\s*(?P<reason>.*?))?\s*-->$`,
	)
	fullLineEscapePattern = regexp.MustCompile(
		`^<!--\s*clog-disable-next-line(?::\s*(?P<reason>.*?))?\s*-->$`,
	)
)

// ParseEscape checks the given comment line for an escape directive.
// The duplicate-PR pattern is checked first since the full-line pattern is a
// prefix of it.
func ParseEscape(line string) (Escape, bool) {
	trimmed := strings.TrimSpace(line)

	if m := duplicatePREscapePattern.FindStringSubmatch(trimmed); m != nil {
		return Escape{
			Kind:   EscapeDuplicatePR,
			Reason: m[duplicatePREscapePattern.SubexpIndex("reason")],
			Line:   line,
		}, true
	}

	if m := fullLineEscapePattern.FindStringSubmatch(trimmed); m != nil {
		return Escape{
			Kind:   EscapeFullLine,
			Reason: m[fullLineEscapePattern.SubexpIndex("reason")],
			Line:   line,
		}, true
	}

	return Escape{}, false
}
