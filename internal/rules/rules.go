// Package rules holds the immutable rule set the linter, fixer and release
// transition evaluate against. A Set is built once from validated
// configuration; nothing revalidates or mutates it mid-run.
package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dhenkel/clog/internal/changelog"
)

// ChangeType pairs the long section heading with the short key used in
// commit-message style input, e.g. {"Bug Fixes", "fix"}.
type ChangeType struct {
	Long  string
	Short string
}

// Spelling is one compiled correction: text matching Pattern should be
// written as Correct.
type Spelling struct {
	Correct string
	Pattern *regexp.Regexp
}

// Params carries the raw values a Set is built from.
type Params struct {
	// TargetRepo is the https GitHub URL entries and release links must
	// point at.
	TargetRepo string
	// Categories are the allowed entry categories, lowercase.
	Categories []string
	// ChangeTypes are the allowed sections, in canonical document order.
	ChangeTypes []ChangeType
	// Spellings maps the correct form to a regular expression matching the
	// misspellings (compiled case-insensitively).
	Spellings map[string]string
	// LegacyVersion optionally marks the boundary below which history is
	// exempt from linting.
	LegacyVersion string
	// SortEntries enables the fixer's newest-PR-first entry sort.
	SortEntries bool
}

// Set is the compiled, immutable rule snapshot.
type Set struct {
	targetRepo    string
	legacyVersion string
	sortEntries   bool

	categories map[string]struct{}
	ordered    []string

	changeTypes []ChangeType
	byLong      map[string]ChangeType
	byShort     map[string]ChangeType

	spellings []Spelling
}

var targetRepoPattern = regexp.MustCompile(`^https://github\.com/[\w.\-]+/[\w.\-]+/?$`)

// New compiles a rule set, validating the target repository URL, the legacy
// version and every spelling pattern up front.
func New(p Params) (*Set, error) {
	if !targetRepoPattern.MatchString(p.TargetRepo) {
		return nil, fmt.Errorf("target repository %q is not a GitHub repository URL", p.TargetRepo)
	}
	if p.LegacyVersion != "" {
		if _, err := changelog.ParseVersion(p.LegacyVersion); err != nil {
			return nil, fmt.Errorf("legacy version: %w", err)
		}
	}
	if len(p.ChangeTypes) == 0 {
		return nil, fmt.Errorf("at least one change type is required")
	}

	s := &Set{
		targetRepo:    strings.TrimSuffix(p.TargetRepo, "/"),
		legacyVersion: p.LegacyVersion,
		sortEntries:   p.SortEntries,
		categories:    make(map[string]struct{}, len(p.Categories)),
		changeTypes:   append([]ChangeType(nil), p.ChangeTypes...),
		byLong:        make(map[string]ChangeType, len(p.ChangeTypes)),
		byShort:       make(map[string]ChangeType, len(p.ChangeTypes)),
	}

	for _, c := range p.Categories {
		if c != strings.ToLower(c) {
			return nil, fmt.Errorf("category %q must be lowercase", c)
		}
		s.categories[c] = struct{}{}
	}
	s.ordered = make([]string, 0, len(s.categories))
	for c := range s.categories {
		s.ordered = append(s.ordered, c)
	}
	sort.Strings(s.ordered)

	for _, ct := range s.changeTypes {
		if _, dup := s.byLong[ct.Long]; dup {
			return nil, fmt.Errorf("duplicate change type %q", ct.Long)
		}
		if _, dup := s.byShort[ct.Short]; ct.Short != "" && dup {
			return nil, fmt.Errorf("duplicate change type key %q", ct.Short)
		}
		s.byLong[ct.Long] = ct
		if ct.Short != "" {
			s.byShort[ct.Short] = ct
		}
	}

	corrects := make([]string, 0, len(p.Spellings))
	for correct := range p.Spellings {
		corrects = append(corrects, correct)
	}
	sort.Strings(corrects)
	for _, correct := range corrects {
		re, err := regexp.Compile(`(?i)` + p.Spellings[correct])
		if err != nil {
			return nil, fmt.Errorf("spelling pattern for %q: %w", correct, err)
		}
		s.spellings = append(s.spellings, Spelling{Correct: correct, Pattern: re})
	}

	return s, nil
}

// TargetRepo returns the repository URL without a trailing slash.
func (s *Set) TargetRepo() string { return s.targetRepo }

// LegacyVersion returns the configured legacy boundary, or "".
func (s *Set) LegacyVersion() string { return s.legacyVersion }

// SortEntries reports whether the fixer should sort entries by PR number.
func (s *Set) SortEntries() bool { return s.sortEntries }

// HasCategory reports whether the category is allowed.
func (s *Set) HasCategory(c string) bool {
	_, ok := s.categories[c]
	return ok
}

// Categories lists the allowed categories in sorted order.
func (s *Set) Categories() []string {
	return append([]string(nil), s.ordered...)
}

// ChangeTypes lists the allowed change types in canonical document order.
func (s *Set) ChangeTypes() []ChangeType {
	return append([]ChangeType(nil), s.changeTypes...)
}

// ChangeTypeByLong resolves a section heading name.
func (s *Set) ChangeTypeByLong(long string) (ChangeType, bool) {
	ct, ok := s.byLong[long]
	return ct, ok
}

// ChangeTypeByShort resolves a short key such as "fix".
func (s *Set) ChangeTypeByShort(short string) (ChangeType, bool) {
	ct, ok := s.byShort[short]
	return ct, ok
}

// MatchChangeType resolves a name that may be either the long heading or the
// short key, case-insensitively.
func (s *Set) MatchChangeType(name string) (ChangeType, bool) {
	for _, ct := range s.changeTypes {
		if strings.EqualFold(ct.Long, name) || strings.EqualFold(ct.Short, name) {
			return ct, true
		}
	}
	return ChangeType{}, false
}

// Spellings returns the compiled corrections in deterministic order.
func (s *Set) Spellings() []Spelling {
	return append([]Spelling(nil), s.spellings...)
}
