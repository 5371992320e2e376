package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var githubURLPattern = regexp.MustCompile(`^https://github\.com/[\w.\-]+/[\w.\-]+/?$`)

// Save writes the configuration as YAML to the given path.
func Save(cfg *Configuration, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// SetTargetRepo validates and sets the target repository URL.
func (c *Configuration) SetTargetRepo(url string) error {
	if !githubURLPattern.MatchString(url) {
		return fmt.Errorf("%q is not a GitHub repository URL (expected https://github.com/owner/repo)", url)
	}
	c.TargetRepo = strings.TrimSuffix(url, "/")
	return nil
}

// AddCategory adds an allowed category, keeping the list sorted.
func (c *Configuration) AddCategory(category string) error {
	if category == "" || category != strings.ToLower(category) {
		return fmt.Errorf("category %q must be non-empty and lowercase", category)
	}
	for _, existing := range c.Categories {
		if existing == category {
			return fmt.Errorf("category %q already configured", category)
		}
	}
	c.Categories = append(c.Categories, category)
	sort.Strings(c.Categories)
	return nil
}

// RemoveCategory removes an allowed category.
func (c *Configuration) RemoveCategory(category string) error {
	for i, existing := range c.Categories {
		if existing == category {
			c.Categories = append(c.Categories[:i], c.Categories[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("category %q not configured", category)
}

// AddChangeType appends an allowed change type.
func (c *Configuration) AddChangeType(long, short string) error {
	if long == "" {
		return fmt.Errorf("change type name must not be empty")
	}
	for _, ct := range c.ChangeTypes {
		if ct.Long == long {
			return fmt.Errorf("change type %q already configured", long)
		}
		if short != "" && ct.Short == short {
			return fmt.Errorf("change type key %q already used by %q", short, ct.Long)
		}
	}
	c.ChangeTypes = append(c.ChangeTypes, ChangeTypeConfig{Long: long, Short: short})
	return nil
}

// RemoveChangeType removes a change type by its long name.
func (c *Configuration) RemoveChangeType(long string) error {
	for i, ct := range c.ChangeTypes {
		if ct.Long == long {
			c.ChangeTypes = append(c.ChangeTypes[:i], c.ChangeTypes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("change type %q not configured", long)
}

// SetSpelling adds or replaces a spelling correction.
func (c *Configuration) SetSpelling(correct, pattern string) error {
	if correct == "" || pattern == "" {
		return fmt.Errorf("spelling requires a correct form and a pattern")
	}
	if _, err := regexp.Compile(`(?i)` + pattern); err != nil {
		return fmt.Errorf("spelling pattern %q: %w", pattern, err)
	}
	if c.ExpectedSpellings == nil {
		c.ExpectedSpellings = make(map[string]string)
	}
	c.ExpectedSpellings[correct] = pattern
	return nil
}

// RemoveSpelling drops a spelling correction.
func (c *Configuration) RemoveSpelling(correct string) error {
	if _, ok := c.ExpectedSpellings[correct]; !ok {
		return fmt.Errorf("no spelling configured for %q", correct)
	}
	delete(c.ExpectedSpellings, correct)
	return nil
}
