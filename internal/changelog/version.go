package changelog

import (
	"fmt"
	"regexp"
	"strconv"
)

// Version is the ordered key parsed from a release heading's version string.
// Release candidates order below the final release of the same triple.
type Version struct {
	Major int
	Minor int
	Patch int
	// RC is the release candidate number, or zero for final releases.
	RC int
}

var versionPattern = regexp.MustCompile(
	`^v(?P<major>\d+)\.(?P<minor>\d+)\.(?P<patch>\d+)(-rc(?P<rc>\d+))?$`,
)

// ParseVersion parses a vMAJOR.MINOR.PATCH(-rcN) version string.
func ParseVersion(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("version %q does not follow semantic versioning (vX.Y.Z or vX.Y.Z-rcN)", s)
	}

	v := Version{}
	v.Major, _ = strconv.Atoi(m[versionPattern.SubexpIndex("major")])
	v.Minor, _ = strconv.Atoi(m[versionPattern.SubexpIndex("minor")])
	v.Patch, _ = strconv.Atoi(m[versionPattern.SubexpIndex("patch")])
	if rc := m[versionPattern.SubexpIndex("rc")]; rc != "" {
		v.RC, _ = strconv.Atoi(rc)
	}
	return v, nil
}

// IsVersion reports whether s parses as a release version.
func IsVersion(s string) bool {
	_, err := ParseVersion(s)
	return err == nil
}

// Compare returns -1, 0 or 1 ordering v against other. A final release
// compares greater than any release candidate of the same triple.
func (v Version) Compare(other Version) int {
	if c := cmp(v.Major, other.Major); c != 0 {
		return c
	}
	if c := cmp(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := cmp(v.Patch, other.Patch); c != 0 {
		return c
	}

	switch {
	case v.RC == other.RC:
		return 0
	case v.RC == 0:
		return 1
	case other.RC == 0:
		return -1
	default:
		return cmp(v.RC, other.RC)
	}
}

// GreaterThan reports whether v orders strictly after other.
func (v Version) GreaterThan(other Version) bool {
	return v.Compare(other) > 0
}

// String renders the canonical version string.
func (v Version) String() string {
	if v.RC > 0 {
		return fmt.Sprintf("v%d.%d.%d-rc%d", v.Major, v.Minor, v.Patch, v.RC)
	}
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// BumpKind selects which component Bump increments.
type BumpKind int

const (
	BumpMajor BumpKind = iota
	BumpMinor
	BumpPatch
	BumpRC
)

// Bump returns the next version for the given release kind. An rc bump on a
// candidate increments its counter; on a final release it starts the
// candidate series of the next patch, so the result always orders after the
// version it bumps. Component bumps clear the counter.
func (v Version) Bump(kind BumpKind) Version {
	switch kind {
	case BumpMajor:
		return Version{Major: v.Major + 1}
	case BumpMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	case BumpPatch:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	case BumpRC:
		if v.RC > 0 {
			return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch, RC: v.RC + 1}
		}
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1, RC: 1}
	default:
		return v
	}
}

func cmp(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
