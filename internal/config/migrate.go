package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// MigrateProject converts the legacy JSON project config to YAML and removes
// the JSON file. It returns the paths involved.
func MigrateProject() (from, to string, err error) {
	from = LegacyProjectConfigPath()
	to = ProjectConfigPath()

	data, err := os.ReadFile(from)
	if err != nil {
		return from, to, fmt.Errorf("reading legacy config: %w", err)
	}

	var cfg Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return from, to, fmt.Errorf("parsing legacy config %s: %w", from, err)
	}

	if fileExists(to) {
		return from, to, fmt.Errorf("%s already exists, remove %s manually", to, from)
	}
	if err := Save(&cfg, to); err != nil {
		return from, to, err
	}
	if err := os.Remove(from); err != nil {
		return from, to, fmt.Errorf("removing legacy config: %w", err)
	}
	return from, to, nil
}
