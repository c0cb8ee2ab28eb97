package config

import (
	"os"
	"path/filepath"
	"strings"
)

const appDirName = "lotteryletter"

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	// First expand tilde if present
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	// Then expand environment variables
	return os.ExpandEnv(path)
}

// DefaultConfigDir returns the directory holding the config file,
// database, and rendered newsletters.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return appDirName
	}
	return filepath.Join(home, ".config", appDirName)
}

// DefaultDatabasePath returns the SQLite database location.
func DefaultDatabasePath() string {
	return filepath.Join(DefaultConfigDir(), "lottery.db")
}

// DefaultOutputDir returns where rendered newsletters are written.
func DefaultOutputDir() string {
	return filepath.Join(DefaultConfigDir(), "newsletters")
}
