// Package safefile provides hardened file opening for user-supplied paths
// (encounter logs, refdata overrides).
package safefile

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNotRegularFile is returned for symlinks, FIFOs, devices, sockets, and
// directories. Special files can block reads forever or bypass size checks.
var ErrNotRegularFile = errors.New("not a regular file")

// ErrTooLarge is returned by ReadLimited when the file exceeds the cap.
var ErrTooLarge = errors.New("file too large")

// OpenRegular opens path and verifies it is a regular file. The path is
// lstat-ed first to reject symlinks, then the open descriptor is stat-ed
// again so a swap between the two calls is still caught.
//
// The caller must close the returned file.
func OpenRegular(path string) (*os.File, os.FileInfo, error) {
	linkInfo, err := os.Lstat(path)
	if err != nil {
		return nil, nil, err
	}
	if !linkInfo.Mode().IsRegular() {
		return nil, nil, ErrNotRegularFile
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, nil, ErrNotRegularFile
	}
	return f, info, nil
}

// ReadLimited reads a regular file whole, enforcing a byte cap both on the
// stat-ed size and during the read itself.
func ReadLimited(path string, maxBytes int64) ([]byte, error) {
	f, info, err := OpenRegular(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if info.Size() > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, info.Size(), maxBytes)
	}
	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrTooLarge, maxBytes)
	}
	return data, nil
}
