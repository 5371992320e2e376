package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file, following
// the XDG Base Directory Specification (e.g. ~/.config/clog/config.yml on
// Linux).
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "clog", "config.yml"), nil
}

// ProjectConfigPath returns the project-level config file, relative to the
// current directory.
func ProjectConfigPath() string {
	return ".clog.yml"
}

// LegacyProjectConfigPath returns the deprecated JSON project config file.
func LegacyProjectConfigPath() string {
	return ".clconfig.json"
}
