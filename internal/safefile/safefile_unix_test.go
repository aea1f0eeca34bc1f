//go:build !windows

package safefile

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
)

// A named pipe must be rejected before open: reading one blocks until a
// writer shows up, which would hang log processing forever.
func TestOpenRegular_NamedPipe(t *testing.T) {
	pipe := filepath.Join(t.TempDir(), "encounter.pipe")
	if err := syscall.Mkfifo(pipe, 0o600); err != nil {
		t.Fatalf("mkfifo: %v", err)
	}

	f, _, err := OpenRegular(pipe)
	if err == nil {
		f.Close()
		t.Fatal("OpenRegular() accepted a named pipe")
	}
	if !errors.Is(err, ErrNotRegularFile) {
		t.Errorf("OpenRegular() error = %v, want ErrNotRegularFile", err)
	}
}

func TestOpenRegular_SymlinkToNamedPipe(t *testing.T) {
	dir := t.TempDir()
	pipe := filepath.Join(dir, "encounter.pipe")
	if err := syscall.Mkfifo(pipe, 0o600); err != nil {
		t.Fatalf("mkfifo: %v", err)
	}
	link := filepath.Join(dir, "Encounter.log")
	if err := os.Symlink(pipe, link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	if f, _, err := OpenRegular(link); !errors.Is(err, ErrNotRegularFile) {
		if err == nil {
			f.Close()
		}
		t.Errorf("OpenRegular() error = %v, want ErrNotRegularFile", err)
	}
}
