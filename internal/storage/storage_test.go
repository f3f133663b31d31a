package storage

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestWriteAtomic_ReadOptional_Roundtrip(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "history")

	if err := WriteAtomic(path, []byte("1\t5,42\t/tmp\n")); err != nil {
		t.Fatalf("WriteAtomic failed: %v", err)
	}

	data, ok, err := ReadOptional(path)
	if err != nil {
		t.Fatalf("ReadOptional failed: %v", err)
	}
	if !ok {
		t.Fatal("ReadOptional reported missing file")
	}
	if string(data) != "1\t5,42\t/tmp\n" {
		t.Errorf("roundtrip mismatch: got %q", data)
	}
}

func TestReadOptional_NotFound(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nonexistent")

	data, ok, err := ReadOptional(path)
	if err != nil {
		t.Fatalf("expected nil error for missing file, got %v", err)
	}
	if ok || data != nil {
		t.Errorf("ReadOptional() = (%q, %v), want (nil, false)", data, ok)
	}
}

func TestReadOptional_OtherError(t *testing.T) {
	t.Parallel()

	// Reading a directory is an I/O error, not "not found"
	_, _, err := ReadOptional(t.TempDir())
	if err == nil {
		t.Fatal("expected error when reading a directory, got nil")
	}
}

func TestWriteAtomic_CreatesDirectory(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "a", "b", "history")

	if err := WriteAtomic(path, []byte("x")); err != nil {
		t.Fatalf("WriteAtomic failed to create directories: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to be created: %v", err)
	}
}

func TestWriteAtomic_NoTempLeftBehind(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "history")

	if err := WriteAtomic(path, []byte("v1")); err != nil {
		t.Fatalf("WriteAtomic failed: %v", err)
	}
	if err := WriteAtomic(path, []byte("v2")); err != nil {
		t.Fatalf("WriteAtomic overwrite failed: %v", err)
	}

	if _, err := os.Stat(TempPath(path)); err == nil {
		t.Error("temp file should not exist after successful write")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "v2" {
		t.Errorf("expected v2, got %q", data)
	}
}

func TestTempPath_ProcessUnique(t *testing.T) {
	t.Parallel()

	got := TempPath("/home/u/.cdh/history")
	want := "/home/u/.cdh/history." + strconv.Itoa(os.Getpid()) + ".tmp"
	if got != want {
		t.Errorf("TempPath() = %q, want %q", got, want)
	}
}

func TestDataDir(t *testing.T) {
	t.Parallel()

	dir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir() error: %v", err)
	}
	if filepath.Base(dir) != DirName {
		t.Errorf("DataDir() = %q, want base dir %s", dir, DirName)
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("DataDir() = %q, want absolute path", dir)
	}
}

