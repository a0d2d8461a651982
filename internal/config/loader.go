package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// PathEnv names the variable that points at the YAML config file.
const PathEnv = "CONFIG_PATH"

const defaultPath = "./config.yaml"

// Load is LoadFile with the path taken from CONFIG_PATH.
func Load() (*Config, error) {
	return LoadFile(os.Getenv(PathEnv))
}

// LoadFile reads path, overlays the environment and env-default tags
// (ENV > YAML > defaults), then validates. An empty path falls back to
// ./config.yaml when present and to the environment alone when not. A
// non-empty path that cannot be read is an error.
func LoadFile(path string) (*Config, error) {
	var cfg Config
	if err := read(path, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func read(path string, cfg *Config) error {
	if path == "" {
		_, err := os.Stat(defaultPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			if err := cleanenv.ReadEnv(cfg); err != nil {
				return fmt.Errorf("config: read env: %w", err)
			}
			return nil
		case err != nil:
			return fmt.Errorf("config: stat %s: %w", defaultPath, err)
		}
		path = defaultPath
	}

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("config: file %s: %w", path, err)
	}
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	return nil
}
