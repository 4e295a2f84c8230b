package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/netrunnerdb/cardlint/internal/card"
)

const (
	PackDir   = "pack"
	SetDir    = "set"
	SchemaDir = "schema"
)

// Config represents the application configuration
type Config struct {
	BasePath             string   `toml:"base_path"`
	PackDir              string   `toml:"pack_dir"`
	SchemaDir            string   `toml:"schema_dir"`
	Verbosity            int      `toml:"verbosity"`
	RotationPolicy       string   `toml:"rotation_policy"`
	LogFile              string   `toml:"log_file"`
	ConsistentAttributes []string `toml:"consistent_attributes"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		RotationPolicy:       "record",
		ConsistentAttributes: slices.Clone(card.PrintingAttributes),
	}
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "cardlint", "config.toml")
}

// LoadConfig loads the config file at path. A missing file yields the
// defaults; it is not created.
func LoadConfig(path string) (*Config, error) {
	config := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	if err := config.check(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

func (c *Config) check() error {
	switch c.RotationPolicy {
	case "record", "abort":
	default:
		return fmt.Errorf("rotation_policy must be \"record\" or \"abort\", got %q", c.RotationPolicy)
	}
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity must not be negative")
	}
	return nil
}

// CreateDefaultConfig writes the default config file at path
func CreateDefaultConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("config file already exists: %s", path)
	}
	config := Default()
	if err := Save(path, config); err != nil {
		return nil, err
	}
	return config, nil
}

// Save encodes config to path, creating the directory if needed.
func Save(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

// SetBasePath sets the default repository path in the config
func SetBasePath(path, basePath string) error {
	config, err := LoadConfig(path)
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(basePath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("repository not found: %s", basePath)
	}
	config.BasePath = abs

	return Save(path, config)
}

// ResolveBasePath returns the configured base path, falling back to the
// current directory.
func (c *Config) ResolveBasePath() (string, error) {
	if c.BasePath != "" {
		return c.BasePath, nil
	}
	return os.Getwd()
}

// ResolvePackPath returns the pack (or legacy set) directory.
func (c *Config) ResolvePackPath(basePath string, legacy bool) string {
	if c.PackDir != "" {
		if filepath.IsAbs(c.PackDir) {
			return c.PackDir
		}
		return filepath.Join(basePath, c.PackDir)
	}
	if legacy {
		return filepath.Join(basePath, SetDir)
	}
	return filepath.Join(basePath, PackDir)
}

// ResolveSchemaPath returns the schema directory.
func (c *Config) ResolveSchemaPath(basePath string) string {
	if c.SchemaDir != "" {
		if filepath.IsAbs(c.SchemaDir) {
			return c.SchemaDir
		}
		return filepath.Join(basePath, c.SchemaDir)
	}
	return filepath.Join(basePath, SchemaDir)
}
