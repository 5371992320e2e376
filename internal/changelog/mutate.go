package changelog

// CanonicalWhitespace is the expected run of whitespace groups for a
// well-formed entry line.
var CanonicalWhitespace = [5]string{"", " ", " ", "", " "}

// NewEntry builds a canonically formatted entry.
func NewEntry(category string, pr int, link, description string) Entry {
	return Entry{
		Line:        FormatEntryLine(category, pr, link, description),
		Category:    category,
		PRNumber:    pr,
		Link:        link,
		Description: description,
		Whitespace:  CanonicalWhitespace,
	}
}

// AddEntry inserts an entry into the named change type section of the
// Unreleased bucket. The bucket and the section are created on demand; within
// the section the entry is placed before the first entry with a lower PR
// number, keeping newest-first order without disturbing existing lines.
func (cl *Changelog) AddEntry(changeTypeName string, e Entry) {
	rel := cl.Unreleased()
	if rel == nil {
		cl.Releases = append([]Release{{
			Line:    FormatUnreleasedHeading(),
			Version: UnreleasedVersion,
		}}, cl.Releases...)
		rel = &cl.Releases[0]
	}

	sect := rel.Section(changeTypeName)
	if sect == nil {
		rel.Sections = append(rel.Sections, ChangeTypeSection{
			Line: FormatChangeTypeHeading(changeTypeName),
			Name: changeTypeName,
		})
		sect = &rel.Sections[len(rel.Sections)-1]
	}

	at := len(sect.Entries)
	for i := range sect.Entries {
		if sect.Entries[i].PRNumber < e.PRNumber {
			at = i
			break
		}
	}
	sect.Entries = append(sect.Entries, Entry{})
	copy(sect.Entries[at+1:], sect.Entries[at:])
	sect.Entries[at] = e
}

// Clone returns a deep copy of the changelog. Mutating transitions operate on
// clones so callers keep the original model intact.
func (cl *Changelog) Clone() *Changelog {
	out := &Changelog{
		Header:   append([]string(nil), cl.Header...),
		Title:    cl.Title,
		Intro:    append([]string(nil), cl.Intro...),
		Releases: make([]Release, len(cl.Releases)),
		Legacy:   append([]string(nil), cl.Legacy...),
		Dangling: append([]DanglingEscape(nil), cl.Dangling...),
	}
	for i := range cl.Releases {
		out.Releases[i] = cl.Releases[i].clone()
	}
	return out
}

func (r Release) clone() Release {
	out := r
	out.Sections = make([]ChangeTypeSection, len(r.Sections))
	for i := range r.Sections {
		out.Sections[i] = r.Sections[i].clone()
	}
	return out
}

func (s ChangeTypeSection) clone() ChangeTypeSection {
	out := s
	out.Entries = make([]Entry, len(s.Entries))
	for i := range s.Entries {
		out.Entries[i] = s.Entries[i]
		if esc := s.Entries[i].Escape; esc != nil {
			cp := *esc
			out.Entries[i].Escape = &cp
		}
	}
	return out
}
