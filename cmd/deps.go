package cmd

import (
	"io"
	"os"

	"github.com/xolan/jot/internal/config"
	"github.com/xolan/jot/internal/storage"
)

// Deps holds external dependencies for CLI commands, enabling testability.
type Deps struct {
	Stdout      io.Writer
	Stderr      io.Writer
	Stdin       io.Reader
	Exit        func(code int)
	StoragePath func() (string, error)
	ConfigPath  func() (string, error)
	Config      config.Config
}

// DefaultDeps returns the default production dependencies with the built-in
// configuration. LoadConfig replaces it with the user's config file.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Stdin:       os.Stdin,
		Exit:        os.Exit,
		StoragePath: storage.GetStoragePath,
		ConfigPath:  config.GetConfigPath,
		Config:      config.DefaultConfig(),
	}
}

// deps is the global dependencies instance used by commands.
// In production, this is DefaultDeps(). Tests can replace it.
var deps = DefaultDeps()

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	deps = DefaultDeps()
}

// LoadConfig reads the config file (if any) into deps and points
// StoragePath at the configured journal.
func LoadConfig() error {
	configPath, err := deps.ConfigPath()
	if err != nil {
		return err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	deps.Config = cfg
	deps.StoragePath = func() (string, error) {
		return storage.ResolveStoragePath(cfg)
	}
	return nil
}
