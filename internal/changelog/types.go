package changelog

// UnreleasedVersion is the version identifier of the mutable release bucket
// that accumulates entries before a version is cut.
const UnreleasedVersion = "Unreleased"

// Changelog is the in-memory representation of a CHANGELOG.md document.
// It holds the ordered releases (newest first) plus the spans of the source
// document that are opaque to the linter: the header blob before the title
// heading and the legacy tail below the configured legacy version. Both are
// preserved byte-for-byte through parse/render round trips.
type Changelog struct {
	// Header holds the verbatim lines before the top-level title heading,
	// typically an HTML comment block with editing instructions.
	Header []string
	// Title is the verbatim top-level heading line (usually "# Changelog").
	Title string
	// Intro holds the verbatim lines between the title and the first release
	// heading, such as a "All notable changes..." paragraph.
	Intro []string
	// Releases are ordered as found in the source, newest first.
	Releases []Release
	// Legacy holds the verbatim lines from the first legacy release heading
	// to the end of the document. Legacy history predates the tool and is
	// exempt from linting.
	Legacy []string
	// Dangling holds escape directives that were not immediately followed
	// by an entry line; the linter reports them as escape-scope violations.
	Dangling []DanglingEscape
}

// Release is one "## ..." section of the changelog: either the Unreleased
// bucket or a tagged version with its release date.
type Release struct {
	// Line is the verbatim heading line from the source.
	Line string
	// LineNumber is the 1-based source line of the heading.
	LineNumber int
	// Version is "Unreleased" or a vX.Y.Z(-rcN) version string.
	Version string
	// Date is the release date as written (empty for Unreleased).
	Date string
	// Link is the release URL as written (empty when missing).
	Link string
	// Sections groups the release's entries by change type.
	Sections []ChangeTypeSection
}

// ChangeTypeSection is one "### ..." group of entries within a release,
// named after a change type such as "Features" or "Bug Fixes".
type ChangeTypeSection struct {
	// Line is the verbatim heading line from the source.
	Line string
	// LineNumber is the 1-based source line of the heading.
	LineNumber int
	// Name is the change type name as written.
	Name string
	// Entries are in source order; the linter never reorders them.
	Entries []Entry
}

// Entry is a single changelog line of the form
// "- (category) [#123](https://.../pull/123) Description.".
type Entry struct {
	// Line is the verbatim entry line from the source.
	Line string
	// LineNumber is the 1-based source line of the entry.
	LineNumber int
	// Category tags the affected subsystem, e.g. "cli" or "lint".
	Category string
	// PRNumber is the pull request id from the markdown link text.
	PRNumber int
	// BackslashBeforeHash records a "\#" escape inside the link text,
	// which renders badly and is flagged by the linter.
	BackslashBeforeHash bool
	// Link is the pull request URL as written.
	Link string
	// Description is the free-text change description.
	Description string
	// Whitespace holds the five captured whitespace runs of the entry shape
	// (before dash, dash-category, category-link, inside link, link-description).
	Whitespace [5]string
	// Escape is the directive attached from the immediately preceding
	// comment line, or nil.
	Escape *Escape
}

// EscapeKind discriminates the supported inline escape directives.
type EscapeKind int

const (
	// EscapeFullLine disables every check for the following entry except
	// the escape-scope rule itself.
	EscapeFullLine EscapeKind = iota
	// EscapeDuplicatePR disables only the duplicate-PR check for the
	// following entry.
	EscapeDuplicatePR
)

// Escape is an inline directive suppressing lint checks for the entry on the
// following line. Escapes are valid on entry lines only; an escape followed
// by anything else is a structural violation surfaced by the linter.
type Escape struct {
	Kind EscapeKind
	// Reason is the optional free-text justification after the colon.
	Reason string
	// Line is the verbatim comment line carrying the directive.
	Line string
	// LineNumber is the 1-based source line of the directive.
	LineNumber int
}

// DanglingEscape is an escape directive whose following line is not an entry
// (blank line, heading, or EOF).
type DanglingEscape struct {
	Escape Escape
	// Followed describes what came after the directive, for diagnostics.
	Followed string
}

// IsUnreleased reports whether the release is the Unreleased bucket.
func (r *Release) IsUnreleased() bool {
	return r.Version == UnreleasedVersion
}

// EntryCount returns the number of entries across all sections.
func (r *Release) EntryCount() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Entries)
	}
	return n
}
