package config

import (
	"errors"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds user preferences. Polling interval, alert thresholds and the
// backend URL are fixed and deliberately absent here.
type Config struct {
	Theme      string `toml:"theme"`
	ListenAddr string `toml:"listen_addr"`
	ReportDir  string `toml:"report_dir"`
	LogFile    string `toml:"log_file"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme:      "solarized-dark",
		ListenAddr: "127.0.0.1:8080",
		ReportDir:  ".",
		LogFile:    "",
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultConfig().ListenAddr
	}
	return cfg, nil
}

func SaveConfig(cfg *Config, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// LogPath returns the configured log file or the default one in the data dir.
func (c *Config) LogPath() (string, error) {
	if c.LogFile != "" {
		return c.LogFile, nil
	}
	return GetLogPath()
}
