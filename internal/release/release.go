// Package release implements cutting a release: the Unreleased section is
// stamped with a version and date and a fresh empty Unreleased section takes
// its place.
package release

import (
	"errors"
	"fmt"
	"time"

	"github.com/dhenkel/clog/internal/changelog"
	"github.com/dhenkel/clog/internal/rules"
)

var (
	// ErrEmptyUnreleased is returned when there is nothing to release.
	ErrEmptyUnreleased = errors.New("unreleased section is empty")
	// ErrVersionOrder is returned when the requested version does not order
	// strictly after every existing release.
	ErrVersionOrder = errors.New("version must be greater than the latest release")
)

// Cut stamps the Unreleased section as the given version and returns the
// resulting document. The input model is never mutated.
func Cut(cl *changelog.Changelog, rs *rules.Set, version, date string) (*changelog.Changelog, error) {
	v, err := changelog.ParseVersion(version)
	if err != nil {
		return nil, err
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("release date %q must be YYYY-MM-DD", date)
	}

	unreleased := cl.Unreleased()
	if unreleased == nil || unreleased.EntryCount() == 0 {
		return nil, ErrEmptyUnreleased
	}

	if latest := cl.LatestRelease(); latest != nil {
		lv, err := changelog.ParseVersion(latest.Version)
		if err != nil {
			return nil, fmt.Errorf("latest release heading: %w", err)
		}
		if !v.GreaterThan(lv) {
			return nil, fmt.Errorf("%w: %s does not order after %s", ErrVersionOrder, version, latest.Version)
		}
	}

	out := cl.Clone()
	rel := out.Unreleased()
	rel.Version = version
	rel.Date = date
	rel.Link = changelog.ReleaseTagLink(rs.TargetRepo(), version)
	rel.Line = changelog.FormatReleaseHeading(version, rel.Link, date)

	out.Releases = append([]changelog.Release{{
		Line:    changelog.FormatUnreleasedHeading(),
		Version: changelog.UnreleasedVersion,
	}}, out.Releases...)

	return out, nil
}

// NextVersion suggests the version a release cut should use when none is
// given explicitly, bumping the latest release. Without any prior release
// the first version is v0.1.0 (or v0.1.0-rc1 for an rc bump). The suggestion
// always orders after the latest release, so Cut accepts it.
func NextVersion(cl *changelog.Changelog, kind changelog.BumpKind) (string, error) {
	latest := cl.LatestRelease()
	if latest == nil {
		v := changelog.Version{Minor: 1}
		if kind == changelog.BumpRC {
			v.RC = 1
		}
		return v.String(), nil
	}
	lv, err := changelog.ParseVersion(latest.Version)
	if err != nil {
		return "", fmt.Errorf("latest release heading: %w", err)
	}
	return lv.Bump(kind).String(), nil
}
