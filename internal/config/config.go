package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/xolan/jot/internal/osutil"
)

const (
	// AppName is the application name used for the config directory
	AppName = "jot"
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
	// DefaultTimeFormat is the Go layout used to display entry timestamps
	DefaultTimeFormat = "2006-01-02 15:04"
	// DefaultTheme is the bubbletint theme used by the browser and list output
	DefaultTheme = "dracula"
)

// Config represents the application configuration
type Config struct {
	// StoragePath overrides the journal location. Empty means the default
	// journal.csv next to the config file. A leading ~ is expanded.
	StoragePath string `toml:"storage_path"`
	// Timezone is the IANA zone used to display entries and to interpret
	// --from/--to dates ("Local" for the system zone)
	Timezone string `toml:"timezone"`
	// TimeFormat is the Go time layout used when listing entries
	TimeFormat string `toml:"time_format"`
	// Theme is the bubbletint theme id
	Theme string `toml:"theme"`
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() Config {
	return Config{
		StoragePath: "",
		Timezone:    "Local",
		TimeFormat:  DefaultTimeFormat,
		Theme:       DefaultTheme,
	}
}

// GetConfigPath returns the path to the config file, creating the config
// directory if it doesn't exist.
func GetConfigPath() (string, error) {
	dir, err := osutil.AppDir(AppName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFile), nil
}

// Load reads and validates the config file at path.
// Keys missing from the file keep their default values; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("unknown config key(s): %s", strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config file at path, or returns DefaultConfig when
// the file does not exist.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	return Load(path)
}

// Save writes cfg to path as TOML, replacing any existing file.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	tmpFile := path + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}
	return os.Rename(tmpFile, path)
}

// Validate checks the config values and fills empty ones with defaults.
func (c *Config) Validate() error {
	c.Timezone = strings.TrimSpace(c.Timezone)
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if _, err := loadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}

	if strings.TrimSpace(c.TimeFormat) == "" {
		c.TimeFormat = DefaultTimeFormat
	}

	c.Theme = NormalizeTheme(c.Theme)

	c.StoragePath = strings.TrimSpace(c.StoragePath)
	return nil
}

// NormalizeTheme returns the theme id stored for name: trimmed, lower-cased,
// and DefaultTheme when blank.
func NormalizeTheme(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultTheme
	}
	return name
}

// Location returns the configured display zone, falling back to time.Local
// if the zone cannot be loaded.
func (c Config) Location() *time.Location {
	loc, err := loadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

// GenerateSampleConfig returns a commented config file listing every key
// with its default value.
func GenerateSampleConfig() string {
	d := DefaultConfig()
	return fmt.Sprintf(`# jot configuration
# Uncomment and edit the settings you want to change.

# Journal file (default: journal.csv next to this file)
# storage_path = "~/notes/journal.csv"

# Timezone used to display entries and to read --from/--to dates
# timezone = %q

# Go time layout used when listing entries
# time_format = %q

# Color theme (see "jot browse", press t to cycle)
# theme = %q
`, d.Timezone, d.TimeFormat, d.Theme)
}
