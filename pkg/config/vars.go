package config

import (
	"path/filepath"
)

// AppName is used in generating file system paths.
var AppName = "purr"

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/purr by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// StoreDir returns the directory path for the repo registry database.
// Returns ~/.local/share/purr by default.
func StoreDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/purr/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(StoreDir(homeDir), "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/purr/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// StoreFilePath returns the full path to the repo registry database.
// Returns ~/.local/share/purr/purr.db by default.
func StoreFilePath(homeDir string) string {
	return filepath.Join(StoreDir(homeDir), "purr.db")
}
