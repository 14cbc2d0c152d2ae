package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "snmpdash"

// GetConfigDir returns the platform-specific config directory.
// Unix: $XDG_CONFIG_HOME/snmpdash or ~/.config/snmpdash
// Windows: %APPDATA%\snmpdash
func GetConfigDir() (string, error) {
	return platformDir("APPDATA", "Roaming", "XDG_CONFIG_HOME", ".config")
}

// GetDataDir returns the platform-specific data directory.
// Unix: $XDG_DATA_HOME/snmpdash or ~/.local/share/snmpdash
// Windows: %LOCALAPPDATA%\snmpdash
func GetDataDir() (string, error) {
	return platformDir("LOCALAPPDATA", "Local", "XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func platformDir(winEnv, winSub, xdgEnv, homeSub string) (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv(winEnv)
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", winSub)
		}
	default:
		base = os.Getenv(xdgEnv)
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			base = filepath.Join(home, homeSub)
		}
	}
	return filepath.Join(base, appName), nil
}

// GetConfigPath returns the path of config.toml.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// GetLogPath returns the default debug log location.
func GetLogPath() (string, error) {
	dir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName+".log"), nil
}

// EnsureDirs creates the config and data directories if they don't exist.
func EnsureDirs() error {
	for _, fn := range []func() (string, error){GetConfigDir, GetDataDir} {
		dir, err := fn()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}
	return nil
}
