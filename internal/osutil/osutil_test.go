package osutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// MockPathProvider is a PathProvider whose calls can be overridden per test.
type MockPathProvider struct {
	UserConfigDirFn func() (string, error)
	UserHomeDirFn   func() (string, error)
	MkdirAllFn      func(path string, perm os.FileMode) error
}

func (m *MockPathProvider) UserConfigDir() (string, error) {
	if m.UserConfigDirFn != nil {
		return m.UserConfigDirFn()
	}
	return "", nil
}

func (m *MockPathProvider) UserHomeDir() (string, error) {
	if m.UserHomeDirFn != nil {
		return m.UserHomeDirFn()
	}
	return "", nil
}

func (m *MockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	if m.MkdirAllFn != nil {
		return m.MkdirAllFn(path, perm)
	}
	return nil
}

func TestDefaultPathProvider_MkdirAll(t *testing.T) {
	p := DefaultPathProvider{}
	testDir := filepath.Join(t.TempDir(), "test", "nested", "dir")

	if err := p.MkdirAll(testDir, 0755); err != nil {
		t.Fatalf("MkdirAll returned error: %v", err)
	}

	info, err := os.Stat(testDir)
	if err != nil {
		t.Fatalf("Directory was not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("Created path is not a directory")
	}
}

func TestAppDir(t *testing.T) {
	defer ResetProvider()
	tmpDir := t.TempDir()

	SetProvider(&MockPathProvider{
		UserConfigDirFn: func() (string, error) { return tmpDir, nil },
		MkdirAllFn:      os.MkdirAll,
	})

	dir, err := AppDir("jot")
	if err != nil {
		t.Fatalf("AppDir() returned error: %v", err)
	}
	if dir != filepath.Join(tmpDir, "jot") {
		t.Errorf("AppDir() = %q, expected %q", dir, filepath.Join(tmpDir, "jot"))
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("AppDir() did not create directory: %v", err)
	}
}

func TestAppDir_Errors(t *testing.T) {
	defer ResetProvider()

	SetProvider(&MockPathProvider{
		UserConfigDirFn: func() (string, error) { return "", os.ErrPermission },
	})
	if _, err := AppDir("jot"); !errors.Is(err, os.ErrPermission) {
		t.Errorf("AppDir() error = %v, expected os.ErrPermission", err)
	}

	SetProvider(&MockPathProvider{
		UserConfigDirFn: func() (string, error) { return t.TempDir(), nil },
		MkdirAllFn:      func(string, os.FileMode) error { return os.ErrPermission },
	})
	if _, err := AppDir("jot"); !errors.Is(err, os.ErrPermission) {
		t.Errorf("AppDir() error = %v, expected os.ErrPermission", err)
	}
}

func TestExpandHome(t *testing.T) {
	defer ResetProvider()
	SetProvider(&MockPathProvider{
		UserHomeDirFn: func() (string, error) { return "/home/alice", nil },
	})

	tests := []struct {
		input    string
		expected string
	}{
		{"~", "/home/alice"},
		{"~/notes/journal.csv", "/home/alice/notes/journal.csv"},
		{"/var/lib/jot.csv", "/var/lib/jot.csv"},
		{"relative/journal.csv", "relative/journal.csv"},
		{"~bob/journal.csv", "~bob/journal.csv"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ExpandHome(tt.input)
			if err != nil {
				t.Fatalf("ExpandHome(%q) returned error: %v", tt.input, err)
			}
			if got != filepath.FromSlash(tt.expected) {
				t.Errorf("ExpandHome(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExpandHome_Error(t *testing.T) {
	defer ResetProvider()
	SetProvider(&MockPathProvider{
		UserHomeDirFn: func() (string, error) { return "", errors.New("no home") },
	})

	if _, err := ExpandHome("~/x"); err == nil {
		t.Error("ExpandHome() should fail when the home directory is unknown")
	}
}
