package logfinder

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFindLogFile(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, LogFileName)
	if err := os.WriteFile(logFile, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := FindLogFile(dir)
	if err != nil {
		t.Fatalf("FindLogFile() error = %v", err)
	}
	if filepath.Base(got) != LogFileName {
		t.Errorf("FindLogFile() = %v, want basename %v", got, LogFileName)
	}
}

func TestFindLogFile_Missing(t *testing.T) {
	dir := t.TempDir()

	_, err := FindLogFile(dir)
	if err == nil {
		t.Error("FindLogFile() expected error for directory without log")
	}
	if !errors.Is(err, ErrNoLogFile) {
		t.Errorf("FindLogFile() error = %v, want %v", err, ErrNoLogFile)
	}
}

func TestFindLogDir_EnvVar(t *testing.T) {
	dir := t.TempDir()

	oldVal := os.Getenv(EnvLogDir)
	os.Setenv(EnvLogDir, dir)
	defer os.Setenv(EnvLogDir, oldVal)

	got, err := FindLogDir("")
	if err != nil {
		t.Fatalf("FindLogDir() error = %v", err)
	}
	// t.TempDir may live behind a symlink (macOS), so compare resolved paths.
	want, _ := filepath.EvalSymlinks(dir)
	if got != want {
		t.Errorf("FindLogDir() = %v, want %v", got, want)
	}
}

func TestFindLogDir_Explicit(t *testing.T) {
	dir := t.TempDir()

	// Explicit should take priority over env.
	oldVal := os.Getenv(EnvLogDir)
	os.Setenv(EnvLogDir, "/some/other/path")
	defer os.Setenv(EnvLogDir, oldVal)

	got, err := FindLogDir(dir)
	if err != nil {
		t.Fatalf("FindLogDir() error = %v", err)
	}
	want, _ := filepath.EvalSymlinks(dir)
	if got != want {
		t.Errorf("FindLogDir() = %v, want %v", got, want)
	}
}

func TestFindLogDir_ExplicitInvalid(t *testing.T) {
	_, err := FindLogDir("/nonexistent/path")
	if err == nil {
		t.Error("FindLogDir() expected error for invalid explicit path")
	}
	if !errors.Is(err, ErrLogDirNotFound) {
		t.Errorf("FindLogDir() error = %v, want %v", err, ErrLogDirNotFound)
	}
}

func TestFindLogDir_EnvVarInvalid(t *testing.T) {
	oldVal := os.Getenv(EnvLogDir)
	os.Setenv(EnvLogDir, "/nonexistent/path")
	defer os.Setenv(EnvLogDir, oldVal)

	_, err := FindLogDir("")
	if err == nil {
		t.Error("FindLogDir() expected error for invalid env var path")
	}
	if !errors.Is(err, ErrLogDirNotFound) {
		t.Errorf("FindLogDir() error = %v, want %v", err, ErrLogDirNotFound)
	}
}

func TestResolveLogDir_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if resolveLogDir(path) != "" {
		t.Error("resolveLogDir() accepted a regular file")
	}
}
