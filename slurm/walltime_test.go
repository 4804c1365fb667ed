package slurm

import (
	"os"
	"path/filepath"
	"testing"
)

func writeWallTime(t *testing.T, dir string, cpuCount int, content string) {
	err := os.WriteFile(filepath.Join(dir, WallTimeFileName(cpuCount)), []byte(content), 0644)
	if err != nil {
		t.Fatalf("Cannot write fixture: %q", err)
	}
}

func TestReadWallTime(t *testing.T) {
	dir := t.TempDir()
	writeWallTime(t, dir, 2, "Elapsed time: 7200 seconds\n")
	hours, err := ReadWallTime(dir, 2)
	if err != nil {
		t.Fatalf("ReadWallTime returned error %q", err)
	}
	if hours != 2 {
		t.Fatalf("ReadWallTime = %v, want 2", hours)
	}

	writeWallTime(t, dir, 4, "Elapsed time: 1800 seconds\n")
	hours, err = ReadWallTime(dir, 4)
	if err != nil || hours != 0.5 {
		t.Fatalf("ReadWallTime = %v %q, want 0.5", hours, err)
	}
}

func TestReadWallTimeMissing(t *testing.T) {
	hours, err := ReadWallTime(t.TempDir(), 8)
	if err != nil {
		t.Fatalf("Missing record must not be an error, got %q", err)
	}
	if hours != 0 {
		t.Fatalf("Missing record must yield zero hours, got %v", hours)
	}
}

func TestReadWallTimeMalformed(t *testing.T) {
	dir := t.TempDir()
	writeWallTime(t, dir, 16, "the job went badly\n")
	if _, err := ReadWallTime(dir, 16); err == nil {
		t.Fatalf("No error for unparseable record")
	}

	writeWallTime(t, dir, 32, "oops\n")
	if _, err := ReadWallTime(dir, 32); err == nil {
		t.Fatalf("No error for truncated record")
	}
}
