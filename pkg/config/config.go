// Package config loads the sm83alu TOML configuration.
package config

import (
	"errors"
	"io/fs"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Log    LogConfig    `toml:"log"`
	Verify VerifyConfig `toml:"verify"`
	Trace  TraceConfig  `toml:"trace"`
}

type LogConfig struct {
	Level string   `toml:"level"`
	Debug []string `toml:"debug"` // module names, or "all"
}

type VerifyConfig struct {
	Workers int    `toml:"workers"` // 0 means runtime.NumCPU()
	Golden  string `toml:"golden"`  // report to compare digests against
}

type TraceConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info"},
		Verify: VerifyConfig{Workers: runtime.NumCPU()},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	_, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), err
	}
	if cfg.Verify.Workers <= 0 {
		cfg.Verify.Workers = runtime.NumCPU()
	}
	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}
