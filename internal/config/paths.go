// Package config provides configuration management for nativedialog.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Paths holds all the path configurations for nativedialog.
type Paths struct {
	// ConfigDir is the directory for configuration files (~/.config/nativedialog)
	ConfigDir string

	// DataDir is the directory for data files (~/.local/share/nativedialog)
	DataDir string
}

// DefaultPaths returns the default paths based on XDG Base Directory spec.
// On Windows, it uses %APPDATA% instead.
func DefaultPaths() *Paths {
	home := homeDir()

	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(home, "AppData", "Local")
		}

		return &Paths{
			ConfigDir: filepath.Join(appData, "nativedialog"),
			DataDir:   filepath.Join(localAppData, "nativedialog"),
		}
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	return &Paths{
		ConfigDir: filepath.Join(configHome, "nativedialog"),
		DataDir:   filepath.Join(dataHome, "nativedialog"),
	}
}

// ConfigFile returns the path to the main configuration file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// LogDir returns the path to the log directory.
func (p *Paths) LogDir() string {
	return filepath.Join(p.DataDir, "logs")
}

// LogFile returns the default log file path.
func (p *Paths) LogFile() string {
	return filepath.Join(p.LogDir(), "nativedialog.log")
}

// EnsureDirectories creates the config directory. The log directory is
// created by the logger when a log file is first opened.
func (p *Paths) EnsureDirectories() error {
	return os.MkdirAll(p.ConfigDir, 0755)
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		if runtime.GOOS == "windows" {
			return os.Getenv("USERPROFILE")
		}
		return os.Getenv("HOME")
	}
	return home
}
