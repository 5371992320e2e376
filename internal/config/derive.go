package config

import (
	"sort"
	"strings"

	"github.com/dhenkel/clog/internal/changelog"
)

// DeriveFromChangelog seeds categories and change types from an existing
// document, so init on a repository with history produces a config its
// changelog already satisfies. Derived change types keep their document
// order; known defaults contribute their short keys.
func (c *Configuration) DeriveFromChangelog(cl *changelog.Changelog) {
	shortKeys := map[string]string{}
	for _, ct := range c.ChangeTypes {
		shortKeys[ct.Long] = ct.Short
	}

	categories := map[string]struct{}{}
	var types []ChangeTypeConfig
	seenTypes := map[string]struct{}{}

	for _, rel := range cl.Releases {
		for _, sect := range rel.Sections {
			if _, ok := seenTypes[sect.Name]; !ok {
				seenTypes[sect.Name] = struct{}{}
				types = append(types, ChangeTypeConfig{
					Long:  sect.Name,
					Short: shortKeys[sect.Name],
				})
			}
			for _, e := range sect.Entries {
				categories[strings.ToLower(e.Category)] = struct{}{}
			}
		}
	}

	if len(types) > 0 {
		c.ChangeTypes = types
	}
	if len(categories) > 0 {
		c.Categories = make([]string, 0, len(categories))
		for cat := range categories {
			c.Categories = append(c.Categories, cat)
		}
		sort.Strings(c.Categories)
	}
}
