package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xolan/jot/internal/osutil"
)

// Helper to create a temporary config file
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}
	return tmpFile
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.StoragePath != "" {
		t.Errorf("DefaultConfig().StoragePath = %q, expected empty", cfg.StoragePath)
	}
	if cfg.Timezone != "Local" {
		t.Errorf("DefaultConfig().Timezone = %q, expected %q", cfg.Timezone, "Local")
	}
	if cfg.TimeFormat != DefaultTimeFormat {
		t.Errorf("DefaultConfig().TimeFormat = %q, expected %q", cfg.TimeFormat, DefaultTimeFormat)
	}
	if cfg.Theme != DefaultTheme {
		t.Errorf("DefaultConfig().Theme = %q, expected %q", cfg.Theme, DefaultTheme)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	tests := []struct {
		name                string
		configContent       string
		expectedStoragePath string
		expectedTimezone    string
		expectedTimeFormat  string
		expectedTheme       string
	}{
		{
			name: "all fields set",
			configContent: `storage_path = "~/notes/journal.csv"
timezone = "America/New_York"
time_format = "15:04"
theme = "nord"`,
			expectedStoragePath: "~/notes/journal.csv",
			expectedTimezone:    "America/New_York",
			expectedTimeFormat:  "15:04",
			expectedTheme:       "nord",
		},
		{
			name:               "only timezone",
			configContent:      `timezone = "Europe/London"`,
			expectedTimezone:   "Europe/London",
			expectedTimeFormat: DefaultTimeFormat,
			expectedTheme:      DefaultTheme,
		},
		{
			name:               "theme is normalized",
			configContent:      `theme = "  Nord "`,
			expectedTimezone:   "Local",
			expectedTimeFormat: DefaultTimeFormat,
			expectedTheme:      "nord",
		},
		{
			name: "empty values fall back to defaults",
			configContent: `timezone = ""
time_format = "   "
theme = ""`,
			expectedTimezone:   "Local",
			expectedTimeFormat: DefaultTimeFormat,
			expectedTheme:      DefaultTheme,
		},
		{
			name:               "empty file",
			configContent:      "",
			expectedTimezone:   "Local",
			expectedTimeFormat: DefaultTimeFormat,
			expectedTheme:      DefaultTheme,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := createTempConfigFile(t, tt.configContent)

			cfg, err := Load(tmpFile)
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}

			if cfg.StoragePath != tt.expectedStoragePath {
				t.Errorf("StoragePath = %q, expected %q", cfg.StoragePath, tt.expectedStoragePath)
			}
			if cfg.Timezone != tt.expectedTimezone {
				t.Errorf("Timezone = %q, expected %q", cfg.Timezone, tt.expectedTimezone)
			}
			if cfg.TimeFormat != tt.expectedTimeFormat {
				t.Errorf("TimeFormat = %q, expected %q", cfg.TimeFormat, tt.expectedTimeFormat)
			}
			if cfg.Theme != tt.expectedTheme {
				t.Errorf("Theme = %q, expected %q", cfg.Theme, tt.expectedTheme)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does_not_exist.toml"))
	if err == nil {
		t.Error("Load() should return error for non-existent file")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
	}{
		{"malformed TOML", `timezone = "Local`},
		{"invalid syntax", `this is not valid TOML at all`},
		{"missing quotes", `timezone = Local`},
		{"wrong type", `timezone = 5`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := createTempConfigFile(t, tt.configContent)

			_, err := Load(tmpFile)
			if err == nil {
				t.Fatal("Load() should return error for invalid TOML")
			}
			if !strings.Contains(err.Error(), "failed to parse config file") {
				t.Errorf("Error message should mention parsing failure, got: %v", err)
			}
		})
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	tmpFile := createTempConfigFile(t, `timezone = "Local"
week_start_day = "monday"`)

	_, err := Load(tmpFile)
	if err == nil {
		t.Fatal("Load() should return error for unknown keys")
	}
	if !strings.Contains(err.Error(), "week_start_day") {
		t.Errorf("Error should name the unknown key, got: %v", err)
	}
}

func TestLoad_InvalidTimezone(t *testing.T) {
	for _, tz := range []string{"Invalid/Timezone", "Mars/Olympus", "not_a_timezone"} {
		t.Run(tz, func(t *testing.T) {
			tmpFile := createTempConfigFile(t, `timezone = "`+tz+`"`)

			_, err := Load(tmpFile)
			if err == nil {
				t.Fatalf("Load() should return error for invalid timezone: %q", tz)
			}
			if !strings.Contains(err.Error(), "invalid timezone") {
				t.Errorf("Error should contain %q, got: %v", "invalid timezone", err)
			}
		})
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "does_not_exist.toml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() returned unexpected error for non-existent file: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadOrDefault() = %+v, expected defaults %+v", cfg, DefaultConfig())
	}
}

func TestLoadOrDefault_ExistingInvalidFile(t *testing.T) {
	tmpFile := createTempConfigFile(t, `timezone = "Mars/Olympus"`)

	if _, err := LoadOrDefault(tmpFile); err == nil {
		t.Error("LoadOrDefault() should return error for invalid config file")
	}
}

func TestLoadOrDefault_StatError(t *testing.T) {
	parentDir := filepath.Join(t.TempDir(), "parent")
	if err := os.Mkdir(parentDir, 0755); err != nil {
		t.Fatalf("Failed to create parent directory: %v", err)
	}
	configPath := filepath.Join(parentDir, "config.toml")

	if err := os.Chmod(parentDir, 0000); err != nil {
		t.Skipf("Cannot change directory permissions: %v", err)
	}
	defer func() { _ = os.Chmod(parentDir, 0755) }()

	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	if _, err := LoadOrDefault(configPath); err == nil {
		t.Error("LoadOrDefault() should return error when os.Stat fails with permission error")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Config{
		StoragePath: "~/journal.csv",
		Timezone:    "UTC",
		TimeFormat:  "15:04",
		Theme:       "Nord",
	}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	cfg.Theme = "nord"
	if loaded != cfg {
		t.Errorf("Load() = %+v, expected %+v", loaded, cfg)
	}
}

func TestSave_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	cfg.Timezone = "Mars/Olympus"

	if err := Save(path, cfg); err == nil {
		t.Fatal("Save() should reject an invalid timezone")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Save() should not write an invalid config")
	}
}

func TestLocation(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Location() != time.Local {
		t.Errorf("Location() = %v, expected time.Local", cfg.Location())
	}

	cfg.Timezone = "UTC"
	if cfg.Location().String() != "UTC" {
		t.Errorf("Location() = %v, expected UTC", cfg.Location())
	}

	cfg.Timezone = "Mars/Olympus"
	if cfg.Location() != time.Local {
		t.Errorf("Location() with invalid zone = %v, expected time.Local fallback", cfg.Location())
	}
}

func TestGenerateSampleConfig(t *testing.T) {
	content := GenerateSampleConfig()

	for _, key := range []string{"# storage_path", "# timezone", "# time_format", "# theme"} {
		if !strings.Contains(content, key) {
			t.Errorf("GenerateSampleConfig() should contain commented %q", key)
		}
	}

	// Uncommenting every line must produce a valid config.
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "# ") && strings.Contains(line, " = ") {
			lines = append(lines, strings.TrimPrefix(line, "# "))
		}
	}
	tmpFile := createTempConfigFile(t, strings.Join(lines, "\n"))
	if _, err := Load(tmpFile); err != nil {
		t.Errorf("uncommented sample config failed to load: %v", err)
	}
}

func TestGetConfigPath(t *testing.T) {
	defer osutil.ResetProvider()
	tmpDir := t.TempDir()
	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) { return tmpDir, nil },
		mkdirAllFn:      os.MkdirAll,
	})

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() returned error: %v", err)
	}
	expected := filepath.Join(tmpDir, AppName, ConfigFile)
	if path != expected {
		t.Errorf("GetConfigPath() = %q, expected %q", path, expected)
	}
}

func TestGetConfigPath_UserConfigDirError(t *testing.T) {
	defer osutil.ResetProvider()
	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) { return "", os.ErrPermission },
	})

	if _, err := GetConfigPath(); err == nil {
		t.Error("GetConfigPath() should return error when UserConfigDir fails")
	}
}

func TestGetConfigPath_MkdirAllError(t *testing.T) {
	defer osutil.ResetProvider()
	tmpDir := t.TempDir()
	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) { return tmpDir, nil },
		mkdirAllFn:      func(string, os.FileMode) error { return os.ErrPermission },
	})

	if _, err := GetConfigPath(); err == nil {
		t.Error("GetConfigPath() should return error when MkdirAll fails")
	}
}

// mockPathProvider is a test helper for mocking osutil.PathProvider
type mockPathProvider struct {
	userConfigDirFn func() (string, error)
	mkdirAllFn      func(path string, perm os.FileMode) error
}

func (m *mockPathProvider) UserConfigDir() (string, error) {
	if m.userConfigDirFn != nil {
		return m.userConfigDirFn()
	}
	return "", nil
}

func (m *mockPathProvider) UserHomeDir() (string, error) {
	return "", os.ErrNotExist
}

func (m *mockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	if m.mkdirAllFn != nil {
		return m.mkdirAllFn(path, perm)
	}
	return nil
}

func TestNormalizeTheme(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"nord", "nord"},
		{"  Tokyo_Night ", "tokyo_night"},
		{"", DefaultTheme},
		{"   ", DefaultTheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTheme(tt.name); got != tt.expected {
				t.Errorf("NormalizeTheme(%q) = %q, expected %q", tt.name, got, tt.expected)
			}
		})
	}
}
