package changelog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParseError reports structurally malformed changelog content. It is fatal
// to the run: no partial model is returned alongside it.
type ParseError struct {
	// Line is the 1-based source line the error was found on.
	Line int
	// Reason is a human-readable description of what is malformed.
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Options controls structural parsing.
type Options struct {
	// LegacyVersion marks the boundary below which releases predate the
	// tool. From the first release heading at or below this version the
	// remainder of the document is captured verbatim and exempt from
	// linting. Empty disables the boundary.
	LegacyVersion string
}

var (
	releaseHeadingPrefix    = regexp.MustCompile(`^\s*##\s`)
	changeTypeHeadingPrefix = regexp.MustCompile(`^\s*###\s`)

	unreleasedPattern = regexp.MustCompile(`(?i)^\s*##\s*unreleased\s*$`)
	releasePattern    = regexp.MustCompile(
		`(?i)^\s*##\s*\[(?P<version>v\d+\.\d+\.\d+(-rc\d+)?)\]` +
			`(\((?P<link>[^)]*)\))?\s*-\s*(?P<date>\d{4}-\d{2}-\d{2})\s*$`,
	)
	changeTypePattern = regexp.MustCompile(`^\s*###\s*(?P<name>[a-zA-Z0-9\- ]+?)\s*$`)
	entryPattern      = regexp.MustCompile(
		`^(?P<ws0>\s*)-(?P<ws1>\s*)\((?P<category>[a-zA-Z0-9\-]+)\)` +
			`(?P<ws2>\s*)\[(?P<bs>\\)?#(?P<pr>\d+)\]` +
			`(?P<ws3>\s*)\((?P<link>[^)]*)\)(?P<ws4>\s*)(?P<desc>.+)$`,
	)
)

// Parse converts raw Markdown text into a Changelog model using default
// options. Parsing is purely structural: rule evaluation (categories, links,
// spellings, ordering) is the linter's job.
func Parse(text string) (*Changelog, error) {
	return ParseWithOptions(text, Options{})
}

// ParseWithOptions parses the changelog with explicit options. It fails fast
// with a *ParseError on the first structurally malformed line; downstream
// linting assumes structural validity.
func ParseWithOptions(text string, opts Options) (*Changelog, error) {
	p := &parser{opts: opts, cl: &Changelog{}, relIdx: -1, sectIdx: -1}

	lines := strings.Split(text, "\n")
	// A trailing newline yields one empty trailing element; drop it so line
	// accounting matches the document.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	for i, line := range lines {
		if p.legacy {
			p.cl.Legacy = append(p.cl.Legacy, line)
			continue
		}
		if err := p.feed(i+1, line); err != nil {
			return nil, err
		}
	}
	p.flushPending("end of file")

	return p.cl, nil
}

type parser struct {
	opts Options
	cl   *Changelog

	sawTitle  bool
	inComment bool
	legacy    bool

	// pending is an escape directive awaiting its entry line.
	pending *Escape

	// relIdx and sectIdx address the release/section currently being
	// filled; -1 means none. Indices are used instead of pointers because
	// appends may reallocate the backing arrays.
	relIdx  int
	sectIdx int
}

// appendVerbatim stores a preamble line in the span it belongs to. Lines
// before the title go to Header, lines after it to Intro.
func (p *parser) appendVerbatim(line string) {
	if p.sawTitle {
		p.cl.Intro = append(p.cl.Intro, line)
	} else {
		p.cl.Header = append(p.cl.Header, line)
	}
}

func (p *parser) curRelease() *Release {
	if p.relIdx < 0 {
		return nil
	}
	return &p.cl.Releases[p.relIdx]
}

func (p *parser) curSection() *ChangeTypeSection {
	rel := p.curRelease()
	if rel == nil || p.sectIdx < 0 {
		return nil
	}
	return &rel.Sections[p.sectIdx]
}

// feed consumes one source line.
func (p *parser) feed(lineNo int, line string) error {
	trimmed := strings.TrimSpace(line)

	// Multi-line HTML comments belong to the header blob; single-line
	// comments carrying an escape directive attach to the next entry.
	if p.inComment {
		p.appendVerbatim(line)
		if strings.Contains(trimmed, "-->") {
			p.inComment = false
		}
		return nil
	}
	if strings.HasPrefix(trimmed, "<!--") {
		if esc, ok := ParseEscape(line); ok {
			p.flushPending("another escape directive")
			esc.LineNumber = lineNo
			p.pending = &esc
			return nil
		}
		p.appendVerbatim(line)
		if !strings.Contains(trimmed, "-->") {
			p.inComment = true
		}
		return nil
	}

	switch {
	case releaseHeadingPrefix.MatchString(line) && !changeTypeHeadingPrefix.MatchString(line):
		return p.feedRelease(lineNo, line)
	case changeTypeHeadingPrefix.MatchString(line):
		return p.feedChangeType(lineNo, line)
	case strings.HasPrefix(trimmed, "-"):
		return p.feedEntry(lineNo, line)
	case trimmed == "":
		p.flushPending("a blank line")
		// Preamble blanks are kept verbatim; blanks inside the release body
		// are dropped and regenerated by the canonical renderer.
		if p.curRelease() == nil {
			p.appendVerbatim("")
		}
		return nil
	case strings.HasPrefix(trimmed, "# "):
		p.flushPending("a heading")
		if p.sawTitle {
			return &ParseError{Line: lineNo, Reason: "unexpected second top-level heading"}
		}
		p.sawTitle = true
		p.cl.Title = line
		return nil
	default:
		return p.feedProse(lineNo, line)
	}
}

func (p *parser) feedRelease(lineNo int, line string) error {
	p.flushPending("a release heading")

	rel, err := parseReleaseHeading(lineNo, line)
	if err != nil {
		return err
	}

	if p.isLegacy(rel) {
		// The legacy heading and everything below it is opaque pre-tool
		// history, carried through verbatim.
		p.legacy = true
		p.cl.Legacy = append(p.cl.Legacy, line)
		return nil
	}

	p.cl.Releases = append(p.cl.Releases, rel)
	p.relIdx = len(p.cl.Releases) - 1
	p.sectIdx = -1
	return nil
}

// isLegacy reports whether the release sits at or below the configured
// legacy boundary.
func (p *parser) isLegacy(rel Release) bool {
	if p.opts.LegacyVersion == "" || rel.IsUnreleased() {
		return false
	}

	boundary, err := ParseVersion(p.opts.LegacyVersion)
	if err != nil {
		return false
	}
	v, err := ParseVersion(rel.Version)
	if err != nil {
		return false
	}
	return !v.GreaterThan(boundary)
}

func (p *parser) feedChangeType(lineNo int, line string) error {
	p.flushPending("a change type heading")

	m := changeTypePattern.FindStringSubmatch(line)
	if m == nil {
		return &ParseError{Line: lineNo, Reason: fmt.Sprintf("malformed change type heading: %q", line)}
	}
	rel := p.curRelease()
	if rel == nil {
		return &ParseError{Line: lineNo, Reason: "change type heading before any release heading"}
	}

	rel.Sections = append(rel.Sections, ChangeTypeSection{
		Line:       line,
		LineNumber: lineNo,
		Name:       m[changeTypePattern.SubexpIndex("name")],
	})
	p.sectIdx = len(rel.Sections) - 1
	return nil
}

func (p *parser) feedEntry(lineNo int, line string) error {
	m := entryPattern.FindStringSubmatch(line)
	if m == nil {
		p.flushPending("a malformed entry line")
		return &ParseError{
			Line:   lineNo,
			Reason: fmt.Sprintf("malformed entry, expected '- (category) [#123](link) Description.': %q", line),
		}
	}
	sect := p.curSection()
	if sect == nil {
		return &ParseError{Line: lineNo, Reason: "entry before any change type heading"}
	}

	pr, err := strconv.Atoi(m[entryPattern.SubexpIndex("pr")])
	if err != nil {
		return &ParseError{Line: lineNo, Reason: fmt.Sprintf("invalid PR number in entry: %q", line)}
	}

	entry := Entry{
		Line:                line,
		LineNumber:          lineNo,
		Category:            m[entryPattern.SubexpIndex("category")],
		PRNumber:            pr,
		BackslashBeforeHash: m[entryPattern.SubexpIndex("bs")] != "",
		Link:                m[entryPattern.SubexpIndex("link")],
		Description:         m[entryPattern.SubexpIndex("desc")],
		Whitespace: [5]string{
			m[entryPattern.SubexpIndex("ws0")],
			m[entryPattern.SubexpIndex("ws1")],
			m[entryPattern.SubexpIndex("ws2")],
			m[entryPattern.SubexpIndex("ws3")],
			m[entryPattern.SubexpIndex("ws4")],
		},
		Escape: p.pending,
	}
	p.pending = nil

	sect.Entries = append(sect.Entries, entry)
	return nil
}

func (p *parser) feedProse(lineNo int, line string) error {
	// Free prose is only valid in the preamble, between the title and the
	// first release heading. The header blob carries it through rendering.
	if p.curRelease() != nil {
		return &ParseError{Line: lineNo, Reason: fmt.Sprintf("unexpected content between releases: %q", line)}
	}
	p.flushPending("free text")
	p.appendVerbatim(line)
	return nil
}

// flushPending demotes an unconsumed escape directive to a dangling escape.
func (p *parser) flushPending(followed string) {
	if p.pending == nil {
		return
	}
	p.cl.Dangling = append(p.cl.Dangling, DanglingEscape{Escape: *p.pending, Followed: followed})
	p.pending = nil
}

// parseReleaseHeading recognizes the two valid release heading shapes.
func parseReleaseHeading(lineNo int, line string) (Release, error) {
	if unreleasedPattern.MatchString(line) {
		return Release{
			Line:       line,
			LineNumber: lineNo,
			Version:    UnreleasedVersion,
		}, nil
	}

	m := releasePattern.FindStringSubmatch(line)
	if m == nil {
		return Release{}, &ParseError{
			Line:   lineNo,
			Reason: fmt.Sprintf("malformed release heading, expected '## [vX.Y.Z](link) - YYYY-MM-DD': %q", line),
		}
	}

	return Release{
		Line:       line,
		LineNumber: lineNo,
		Version:    m[releasePattern.SubexpIndex("version")],
		Link:       m[releasePattern.SubexpIndex("link")],
		Date:       m[releasePattern.SubexpIndex("date")],
	}, nil
}
