package main

import (
	"fmt"

	"github.com/phrazzld/tickler/internal/config"
)

// loadConfig loads configuration from path, or from ./config.yaml and the
// environment when path is empty.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
