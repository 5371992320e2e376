package config

// Defaults returns the default configuration values.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"target_repo":    "",
		"changelog_path": "CHANGELOG.md",
		"categories":     []string{},
		"change_types": []map[string]interface{}{
			{"long": "Features", "short": "feat"},
			{"long": "Improvements", "short": "imp"},
			{"long": "Bug Fixes", "short": "fix"},
		},
		// expected_spellings: correct form -> pattern matched
		// case-insensitively against entry descriptions.
		"expected_spellings": map[string]string{
			"API":  `api`,
			"CI":   `ci`,
			"CLI":  `cli`,
			"gRPC": `grpc`,
			"ABI":  `abi`,
		},
		"legacy_version": "",
		"sort_entries":   false,
	}
}

// DefaultConfigTemplate is the commented config written by 'clog init'.
func DefaultConfigTemplate(targetRepo string) string {
	return `# clog configuration
# See 'clog config -h' for commands that edit this file.

# GitHub repository entry and release links must point at.
target_repo: ` + targetRepo + `

# Changelog file, relative to the repository root.
changelog_path: CHANGELOG.md

# Allowed entry categories (lowercase). Empty means every entry fails
# the category check until you add some.
categories: []

# Allowed sections, in the order releases should list them.
change_types:
  - long: Features
    short: feat
  - long: Improvements
    short: imp
  - long: Bug Fixes
    short: fix

# Correct form -> pattern matched case-insensitively in descriptions.
expected_spellings:
  API: api
  CI: ci
  CLI: cli
  gRPC: grpc
  ABI: abi

# Releases at or below this version are exempt from linting.
# legacy_version: v0.1.0

# Sort entries within a section by PR number, newest first, on fix.
sort_entries: false
`
}
