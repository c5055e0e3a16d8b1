package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// AppName names the config directory and default file names
const AppName = "addressbook"

// Config holds the application configuration
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
	Server   ServerConfig   `toml:"server"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path   string `toml:"path"`
	Driver string `toml:"driver"` // "sqlite3" (cgo) or "sqlite" (pure Go)
}

// LogConfig controls the slog logger
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "text" or "json"
	File   string `toml:"file"`
}

// ServerConfig holds settings for the REST API
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Dir returns the directory holding the config file and default database
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", AppName)
}

// Path returns the standard config file location
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:   filepath.Join(Dir(), AppName+".db"),
			Driver: "sqlite3",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8888",
		},
	}
}

// Load loads configuration from the standard location
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom loads configuration from a specific path.
// A missing file yields the defaults.
func LoadFrom(configPath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parsing config file: unknown key %q", undecoded[0].String())
	}

	cfg.Database.Path = ExpandPath(cfg.Database.Path)
	cfg.Log.File = ExpandPath(cfg.Log.File)

	return cfg, nil
}

// ExpandPath expands a leading ~ to the home directory
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}

// Validate checks that config values are usable
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return errors.New("config: database.path cannot be empty")
	}
	switch c.Database.Driver {
	case "sqlite3", "sqlite":
	default:
		return fmt.Errorf("config: database.driver must be \"sqlite3\" or \"sqlite\", got %q", c.Database.Driver)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("config: log.format must be \"text\" or \"json\", got %q", c.Log.Format)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log.level %q", c.Log.Level)
	}
	return nil
}

// Save saves the configuration to the standard location
func (c *Config) Save() error {
	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return c.SaveTo(Path())
}

// SaveTo saves the configuration to a specific path
func (c *Config) SaveTo(configPath string) error {
	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	return nil
}
