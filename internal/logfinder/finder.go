// Package logfinder locates the game's encounter log directory and file.
package logfinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnvLogDir is the environment variable overriding the log directory.
const EnvLogDir = "ENCLOG_LOGDIR"

// LogFileName is the fixed file name the game client writes to.
const LogFileName = "Encounter.log"

// Sentinel errors.
var (
	ErrLogDirNotFound = errors.New("log directory not found")
	ErrNoLogFile      = errors.New("no encounter log file found")
)

// DefaultLogDirs returns candidate log directories in priority order.
// The game writes to Documents/Elder Scrolls Online/live/Logs; under Proton
// the documents folder lives inside the Steam compatdata prefix.
func DefaultLogDirs() []string {
	var dirs []string

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	dirs = append(dirs,
		filepath.Join(home, "Documents", "Elder Scrolls Online", "live", "Logs"),
	)

	// Proton prefix used by the Steam release.
	dirs = append(dirs, filepath.Join(home,
		".steam", "steam", "steamapps", "compatdata", "306130", "pfx",
		"drive_c", "users", "steamuser", "Documents",
		"Elder Scrolls Online", "live", "Logs",
	))

	if userProfile := os.Getenv("USERPROFILE"); userProfile != "" {
		dirs = append(dirs,
			filepath.Join(userProfile, "Documents", "Elder Scrolls Online", "live", "Logs"),
		)
	}
	return dirs
}

// FindLogDir returns the encounter log directory.
//
// Priority:
//  1. explicit (if non-empty)
//  2. ENCLOG_LOGDIR environment variable
//  3. Auto-detect from DefaultLogDirs()
func FindLogDir(explicit string) (string, error) {
	if explicit != "" {
		if resolved := resolveLogDir(explicit); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: specified directory is invalid", ErrLogDirNotFound)
	}

	if envDir := os.Getenv(EnvLogDir); envDir != "" {
		if resolved := resolveLogDir(envDir); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: %s points to an invalid directory", ErrLogDirNotFound, EnvLogDir)
	}

	for _, dir := range DefaultLogDirs() {
		if resolved := resolveLogDir(dir); resolved != "" {
			return resolved, nil
		}
	}
	return "", ErrLogDirNotFound
}

// FindLogFile returns the full path of the encounter log, using FindLogDir's
// resolution rules for the directory.
func FindLogFile(explicitDir string) (string, error) {
	dir, err := FindLogDir(explicitDir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, LogFileName)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w in %s", ErrNoLogFile, dir)
	}
	return path, nil
}

// resolveLogDir validates a candidate directory and resolves symlinks for
// consistency. Empty string means invalid.
func resolveLogDir(dir string) string {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return ""
	}
	info, err := os.Stat(resolved)
	if err != nil || !info.IsDir() {
		return ""
	}
	return resolved
}
