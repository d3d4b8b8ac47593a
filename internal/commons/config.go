package commons

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"brutus/internal/config"
)

// LoadConfigFile reads a YAML config file. Binaries fall back to
// config.Load (environment variables) when no file is given.
func LoadConfigFile(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}
