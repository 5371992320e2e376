package changelog

import (
	"fmt"
	"strings"
)

// Render serializes the model back to Markdown. It is the inverse of the
// parser: every element re-emits its verbatim source line, so unchanged
// regions are byte-stable. The fixer swaps those lines for canonical ones
// before rendering.
//
// Blank-line layout is normalized to the canonical form (one blank line
// between blocks, one after each change type heading), which is also the
// layout the parser accepts without diagnostics.
func Render(cl *Changelog) string {
	var sb strings.Builder

	for _, line := range cl.Header {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	if cl.Title != "" {
		sb.WriteString(cl.Title)
		sb.WriteString("\n")
	}

	// The blank line separating the intro from the first release heading is
	// supplied by the release block, so trailing blanks are dropped here.
	intro := cl.Intro
	for len(intro) > 0 && intro[len(intro)-1] == "" {
		intro = intro[:len(intro)-1]
	}
	for _, line := range intro {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	for i := range cl.Releases {
		renderRelease(&sb, &cl.Releases[i])
	}

	if len(cl.Legacy) > 0 {
		sb.WriteString("\n")
		for _, line := range cl.Legacy {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func renderRelease(sb *strings.Builder, rel *Release) {
	sb.WriteString("\n")
	sb.WriteString(rel.Line)
	sb.WriteString("\n")

	for i := range rel.Sections {
		renderSection(sb, &rel.Sections[i])
	}
}

func renderSection(sb *strings.Builder, sect *ChangeTypeSection) {
	sb.WriteString("\n")
	sb.WriteString(sect.Line)
	sb.WriteString("\n\n")

	for i := range sect.Entries {
		e := &sect.Entries[i]
		if e.Escape != nil {
			sb.WriteString(e.Escape.Line)
			sb.WriteString("\n")
		}
		sb.WriteString(e.Line)
		sb.WriteString("\n")
	}
}

// FormatEntryLine builds the canonical entry line from its parts.
func FormatEntryLine(category string, pr int, link, description string) string {
	return fmt.Sprintf("- (%s) [#%d](%s) %s", category, pr, link, description)
}

// FormatReleaseHeading builds the canonical heading for a tagged release.
func FormatReleaseHeading(version, link, date string) string {
	return fmt.Sprintf("## [%s](%s) - %s", version, link, date)
}

// FormatUnreleasedHeading returns the canonical Unreleased heading.
func FormatUnreleasedHeading() string {
	return "## " + UnreleasedVersion
}

// FormatChangeTypeHeading builds the canonical change type heading.
func FormatChangeTypeHeading(name string) string {
	return "### " + name
}

// PullRequestLink builds the canonical PR link for the target repository.
func PullRequestLink(targetRepo string, pr int) string {
	return fmt.Sprintf("%s/pull/%d", strings.TrimSuffix(targetRepo, "/"), pr)
}

// ReleaseTagLink builds the canonical release link for the target repository.
func ReleaseTagLink(targetRepo, version string) string {
	return fmt.Sprintf("%s/releases/tag/%s", strings.TrimSuffix(targetRepo, "/"), version)
}
