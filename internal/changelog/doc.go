// Package changelog holds the document model for CHANGELOG.md files and the
// structural parser and renderer that convert between Markdown text and the
// model. Parsing recognizes shape only; whether the parsed values satisfy the
// project's conventions is decided by the lint package.
package changelog
