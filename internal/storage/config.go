package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pelletier/go-toml/v2"
	"github.com/vidyasagar/tango/internal/recent"
)

// Config holds tango user configuration.
type Config struct {
	Theme          string `toml:"theme"`
	Store          string `toml:"store"` // "sqlite", "file" or "memory"
	StorageKey     string `toml:"storage_key"`
	Capacity       int    `toml:"capacity"`
	SearchEndpoint string `toml:"search_endpoint"`
	QueryParam     string `toml:"query_param"`
	ResultSelector string `toml:"result_selector"`
	path           string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Theme:          "default",
		Store:          StoreSQLite,
		StorageKey:     recent.DefaultKey,
		Capacity:       recent.DefaultCapacity,
		SearchEndpoint: "http://localhost:8080/search",
		QueryParam:     "query",
		ResultSelector: ".result",
	}
}

// LoadConfig loads configuration from the standard config directory,
// writing the defaults there on first run.
func LoadConfig() (*Config, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	return LoadConfigFrom(filepath.Join(dir, "config.toml"))
}

// LoadConfigFrom loads configuration from path. Missing fields keep their
// default values; a missing file is created with the defaults.
func LoadConfigFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := cfg.Save(); err != nil {
				return nil, err
			}
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.path = path
	return &cfg, nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	if c.path == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		c.path = filepath.Join(dir, "config.toml")
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(c.path, data, 0o644)
}

// DataDir returns the data directory for persistent storage.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	var dir string
	switch runtime.GOOS {
	case "darwin":
		dir = filepath.Join(home, "Library", "Application Support", "tango")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			dir = filepath.Join(appData, "tango")
		} else {
			dir = filepath.Join(home, ".tango")
		}
	default: // Linux, BSD, etc.
		xdgData := os.Getenv("XDG_DATA_HOME")
		if xdgData != "" {
			dir = filepath.Join(xdgData, "tango")
		} else {
			dir = filepath.Join(home, ".local", "share", "tango")
		}
	}

	return dir, nil
}

func configDir() (string, error) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		return DataDir()
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig != "" {
		return filepath.Join(xdgConfig, "tango"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}
	return filepath.Join(home, ".config", "tango"), nil
}
