package changelog

import "fmt"

// VersionNotFoundError reports a lookup for a release that the changelog does
// not contain.
type VersionNotFoundError struct {
	Version string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %q not found in changelog", e.Version)
}

// GetRelease returns the release with the given version string.
func (cl *Changelog) GetRelease(version string) (*Release, error) {
	for i := range cl.Releases {
		if cl.Releases[i].Version == version {
			return &cl.Releases[i], nil
		}
	}
	return nil, &VersionNotFoundError{Version: version}
}

// Unreleased returns the Unreleased bucket, or nil when the changelog has
// none.
func (cl *Changelog) Unreleased() *Release {
	for i := range cl.Releases {
		if cl.Releases[i].IsUnreleased() {
			return &cl.Releases[i]
		}
	}
	return nil
}

// LatestRelease returns the newest tagged release, skipping the Unreleased
// bucket. Nil when the changelog has no tagged releases.
func (cl *Changelog) LatestRelease() *Release {
	for i := range cl.Releases {
		if !cl.Releases[i].IsUnreleased() {
			return &cl.Releases[i]
		}
	}
	return nil
}

// Versions lists the release version strings in document order.
func (cl *Changelog) Versions() []string {
	out := make([]string, 0, len(cl.Releases))
	for i := range cl.Releases {
		out = append(out, cl.Releases[i].Version)
	}
	return out
}

// Section returns the change type section with the given name, or nil.
func (r *Release) Section(name string) *ChangeTypeSection {
	for i := range r.Sections {
		if r.Sections[i].Name == name {
			return &r.Sections[i]
		}
	}
	return nil
}
