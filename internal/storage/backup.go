package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	// BackupSuffix is the file extension for backup files
	BackupSuffix = ".bak"
	// MaxBackupCount is the maximum number of backup files to keep
	MaxBackupCount = 3
)

// BackupInfo describes an existing backup file.
type BackupInfo struct {
	Number int    // 1 is the most recent backup
	Path   string // Full path to the backup file
}

// GetBackupPath returns the path of backup n for the given journal:
// journal.csv.bak.N, where lower numbers are more recent.
func GetBackupPath(journalPath string, n int) string {
	return fmt.Sprintf("%s%s.%d", journalPath, BackupSuffix, n)
}

// rotateBackups shifts .bak.1 -> .bak.2 -> .bak.3, dropping the oldest.
// Missing backups are skipped.
func rotateBackups(journalPath string) error {
	if err := os.Remove(GetBackupPath(journalPath, MaxBackupCount)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	for i := MaxBackupCount - 1; i >= 1; i-- {
		err := os.Rename(GetBackupPath(journalPath, i), GetBackupPath(journalPath, i+1))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	return nil
}

// CreateBackup rotates existing backups and copies the journal to .bak.1.
// It does nothing if the journal doesn't exist.
func CreateBackup(journalPath string) error {
	if _, err := os.Stat(journalPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	if err := rotateBackups(journalPath); err != nil {
		return err
	}

	return copyFile(journalPath, GetBackupPath(journalPath, 1))
}

// ListBackups returns the existing backups of the journal, most recent first.
func ListBackups(journalPath string) ([]BackupInfo, error) {
	var backups []BackupInfo

	for i := 1; i <= MaxBackupCount; i++ {
		path := GetBackupPath(journalPath, i)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		backups = append(backups, BackupInfo{Number: i, Path: path})
	}

	return backups, nil
}

// RestoreBackup copies backup n over the journal. The current journal is
// backed up first, so the restored backup moves to .bak.(n+1) when n < 3.
func RestoreBackup(journalPath string, n int) error {
	if n < 1 || n > MaxBackupCount {
		return fmt.Errorf("invalid backup number %d, must be between 1 and %d", n, MaxBackupCount)
	}

	backupPath := GetBackupPath(journalPath, n)
	if _, err := os.Stat(backupPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("backup %d does not exist", n)
		}
		return err
	}

	// Read the backup before rotation renames it.
	tmpPath := journalPath + ".restore"
	if err := copyFile(backupPath, tmpPath); err != nil {
		return err
	}

	if err := CreateBackup(journalPath); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, journalPath)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
