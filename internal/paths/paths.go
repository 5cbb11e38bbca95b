// Package paths resolves configuration and data directory locations for the
// catalog CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultDataDirName is the CWD-relative data directory used when nothing
// else names one.
const DefaultDataDirName = ".catalog-db"

// ConfigFileName is the file read from the configuration directory.
const ConfigFileName = "config.yaml"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "CATALOG_CONFIG_DIR"
	EnvDataDir   = "CATALOG_DATA_DIR"
)

// appDirName is the directory created under platform config and data roots.
const appDirName = "catalog"

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/catalog (fallback ~/.config/catalog)
// macOS:   ~/Library/Application Support/catalog
// Windows: %APPDATA%/catalog
func DefaultConfigDir() (string, error) {
	return platformAppDir("XDG_CONFIG_HOME", ".config")
}

// platformAppDir resolves the app directory under an XDG root on Linux and
// under os.UserConfigDir elsewhere. homeRel is the Linux fallback relative
// to the home directory when xdgEnv is unset.
func platformAppDir(xdgEnv string, homeRel ...string) (string, error) {
	if platformDir.goos != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}
	if xdg := os.Getenv(xdgEnv); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{home}, homeRel...)
	return filepath.Join(append(parts, appDirName)...), nil
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > CATALOG_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configYAMLValue > CATALOG_DATA_DIR env > $(CWD)/.catalog-db.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	for _, candidate := range []string{flag, configYAMLValue, os.Getenv(EnvDataDir)} {
		if candidate != "" {
			return filepath.Abs(candidate)
		}
	}
	return filepath.Abs(DefaultDataDirName)
}

// ConfigFile returns the path of config.yaml inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}
