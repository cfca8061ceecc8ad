// Package file loads pipeline configuration from a TOML file.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/nishiki-labs/proposalcraft/internal/core/domain"
)

// DefaultPath returns the default config file location,
// ~/.proposalcraft/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".proposalcraft", "config.toml"), nil
}

// Load reads the TOML config at path, fills unset fields with defaults and
// validates the result. A missing file is not an error: every default
// applies and the pipeline runs fully offline.
func Load(path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return domain.Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path in TOML form, creating the directory if
// needed. Used to seed an editable config file on first run.
func Save(path string, cfg domain.Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
