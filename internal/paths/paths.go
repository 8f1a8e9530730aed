// Package paths resolves where leadboard keeps its config.yaml and its lead
// data, and reports which layer supplied each location.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName is the directory created under the platform config and data
// roots.
const appDirName = "leadboard"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "LEADBOARD_CONFIG_DIR"
	EnvDataDir   = "LEADBOARD_DATA_DIR"
)

// Source names the layer a resolved directory came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceConfig  Source = "config"
	SourceEnv     Source = "env"
	SourceDefault Source = "default"
)

// Location is a resolved absolute directory and the layer that supplied it.
type Location struct {
	Dir    string
	Source Source
}

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific directory holding
// config.yaml.
//
// Linux:   $XDG_CONFIG_HOME/leadboard (fallback ~/.config/leadboard)
// macOS:   ~/Library/Application Support/leadboard
// Windows: %APPDATA%/leadboard
func DefaultConfigDir() (string, error) {
	return platformRoot("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform-specific directory holding the lead
// data: mini_crm_leads_v1.json for the file backend, leadboard.db for
// sqlite.
//
// Linux:   $XDG_DATA_HOME/leadboard (fallback ~/.local/share/leadboard)
// macOS:   ~/Library/Application Support/leadboard
// Windows: %APPDATA%/leadboard
func DefaultDataDir() (string, error) {
	return platformRoot("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// platformRoot joins appDirName onto the XDG variable xdgEnv on linux, or
// onto homeFallback under the home directory when it is unset. Other
// platforms use os.UserConfigDir for both config and data.
func platformRoot(xdgEnv, homeFallback string) (string, error) {
	if runtime.GOOS != "linux" {
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
	return filepath.Join(home, homeFallback, appDirName), nil
}

// ResolveConfigDir follows flag > LEADBOARD_CONFIG_DIR > DefaultConfigDir().
func ResolveConfigDir(flag string) (Location, error) {
	return resolve([]layer{
		{flag, SourceFlag},
		{os.Getenv(EnvConfigDir), SourceEnv},
	}, DefaultConfigDir)
}

// ResolveDataDir follows flag > config.yaml data_dir > LEADBOARD_DATA_DIR >
// DefaultDataDir(). The env var ranks below config.yaml so a config file
// pinned to one data directory is not redirected by the environment.
func ResolveDataDir(flag, configValue string) (Location, error) {
	return resolve([]layer{
		{flag, SourceFlag},
		{configValue, SourceConfig},
		{os.Getenv(EnvDataDir), SourceEnv},
	}, DefaultDataDir)
}

type layer struct {
	value  string
	source Source
}

// resolve returns the first non-empty layer made absolute, or the platform
// default.
func resolve(layers []layer, fallback func() (string, error)) (Location, error) {
	for _, l := range layers {
		if l.value == "" {
			continue
		}
		dir, err := filepath.Abs(l.value)
		if err != nil {
			return Location{}, err
		}
		return Location{Dir: dir, Source: l.source}, nil
	}
	dir, err := fallback()
	if err != nil {
		return Location{}, err
	}
	return Location{Dir: dir, Source: SourceDefault}, nil
}
