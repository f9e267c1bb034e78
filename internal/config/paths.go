// Package config handles settings loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// GlobalDirName is the name of the per-user settings directory.
	GlobalDirName = ".lighthouse-tray"

	// ConfigFileName is the settings file inside GlobalDirName.
	ConfigFileName = "config.yaml"
)

// GlobalDir returns the path to the settings directory (~/.lighthouse-tray/).
func GlobalDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalDirName), nil
}

// DefaultConfigFile returns the path to ~/.lighthouse-tray/config.yaml.
func DefaultConfigFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// EnsureGlobalDir creates the settings directory if it doesn't exist.
func EnsureGlobalDir() error {
	dir, err := GlobalDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
