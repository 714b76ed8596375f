package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xolan/jot/internal/entry"
	"github.com/xolan/jot/internal/storage"
)

// writeSource creates an import file holding content.
func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write source: %v", err)
	}
	return path
}

func TestDecodeRecords(t *testing.T) {
	entries, err := decodeRecords(strings.NewReader(rowBuild + "\n" + rowGroc + ",extra\n"))
	if err != nil {
		t.Fatalf("decodeRecords() returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].Message() != "groceries" {
		t.Errorf("Message() = %q, expected %q", entries[1].Message(), "groceries")
	}
}

func TestDecodeRecords_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		record int
		kind   error
	}{
		{"bad timestamp", rowBuild + "\n" + rowBadTime + "\n", 2, entry.ErrTimestampParse},
		{"too few fields", `2024-01-15T10:30:00Z,"work"` + "\n", 1, entry.ErrMalformedRecord},
		{"broken quoting", `2024-01-15T10:30:00Z,"a"x,"b"` + "\n", 1, entry.ErrMalformedRecord},
		{"tag not JSON", rowBuild + "\n" + rowGroc + "\n" + `2024-01-17T09:15:00Z,work,"x"` + "\n", 3, entry.ErrFieldDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeRecords(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("decodeRecords() should fail")
			}
			var ie *importError
			if !errors.As(err, &ie) {
				t.Fatalf("error %v is not an *importError", err)
			}
			if ie.Record != tt.record {
				t.Errorf("Record = %d, expected %d", ie.Record, tt.record)
			}
			if !errors.Is(err, tt.kind) {
				t.Errorf("error %v should match %v", err, tt.kind)
			}
		})
	}
}

func TestImportEntries_Success(t *testing.T) {
	storagePath := writeJournal(t, rowBuild)
	d, stdout, stderr := testDeps(t, storagePath)
	exitCode := useDeps(t, d)

	importEntries(writeSource(t, rowGroc+"\n"+rowReview+"\n"), false)

	if *exitCode != -1 {
		t.Fatalf("Exit(%d) called, stderr: %s", *exitCode, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Imported 2 entries") {
		t.Errorf("stdout = %q", stdout.String())
	}

	entries, err := storage.ReadEntries(storagePath)
	if err != nil {
		t.Fatalf("ReadEntries() returned error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[2].Message() != "did code review" {
		t.Errorf("last entry = %q, expected imported entries to be appended", entries[2].Message())
	}

	if got := readFile(t, storage.GetBackupPath(storagePath, 1)); got != rowBuild+"\n" {
		t.Errorf("backup = %q, expected the journal before import", got)
	}
}

func TestImportEntries_Stdin(t *testing.T) {
	storagePath := filepath.Join(t.TempDir(), storage.JournalFile)
	d, stdout, _ := testDeps(t, storagePath)
	d.Stdin = strings.NewReader(rowGroc + "\n")
	useDeps(t, d)

	importEntries("-", false)

	if !strings.Contains(stdout.String(), "Imported 1 entry") {
		t.Errorf("stdout = %q", stdout.String())
	}
	entries, err := storage.ReadEntries(storagePath)
	if err != nil || len(entries) != 1 {
		t.Errorf("ReadEntries() = %d entries, %v; expected 1 entry", len(entries), err)
	}
}

func TestImportEntries_AbortsOnBadRecord(t *testing.T) {
	storagePath := writeJournal(t, rowBuild)
	d, stdout, stderr := testDeps(t, storagePath)
	exitCode := useDeps(t, d)

	importEntries(writeSource(t, rowGroc+"\n"+rowBadTime+"\n"+rowReview+"\n"), false)

	if *exitCode != 1 {
		t.Errorf("exit code = %d, expected 1", *exitCode)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout should be empty, got %q", stdout.String())
	}
	for _, want := range []string{"nothing was written", "Record 2 has a timestamp error"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("stderr should contain %q, got: %s", want, stderr.String())
		}
	}
	if got := readFile(t, storagePath); got != rowBuild+"\n" {
		t.Errorf("journal changed to %q", got)
	}
	if backups, _ := storage.ListBackups(storagePath); len(backups) != 0 {
		t.Errorf("no backup should be made for an aborted import, got %+v", backups)
	}
}

func TestImportEntries_DryRun(t *testing.T) {
	storagePath := filepath.Join(t.TempDir(), storage.JournalFile)
	d, stdout, _ := testDeps(t, storagePath)
	useDeps(t, d)

	importEntries(writeSource(t, rowGroc+"\n"+rowReview+"\n"), true)

	if !strings.Contains(stdout.String(), "2 entries would be imported") {
		t.Errorf("stdout = %q", stdout.String())
	}
	if _, err := os.Stat(storagePath); !os.IsNotExist(err) {
		t.Error("dry run should not create the journal")
	}
}

func TestImportEntries_EmptySource(t *testing.T) {
	d, stdout, _ := testDeps(t, filepath.Join(t.TempDir(), storage.JournalFile))
	exitCode := useDeps(t, d)

	importEntries(writeSource(t, ""), false)

	if *exitCode != -1 {
		t.Errorf("Exit(%d) called for an empty source", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Nothing to import") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestImportEntries_MissingSource(t *testing.T) {
	d, _, stderr := testDeps(t, filepath.Join(t.TempDir(), storage.JournalFile))
	exitCode := useDeps(t, d)

	importEntries(filepath.Join(t.TempDir(), "nope.csv"), false)

	if *exitCode != 1 {
		t.Errorf("exit code = %d, expected 1", *exitCode)
	}
	if !strings.Contains(stderr.String(), "Failed to open import file") {
		t.Errorf("stderr = %q", stderr.String())
	}
}
