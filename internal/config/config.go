// Package config resolves runtime settings from defaults, the TOML config
// file, a .env file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the resolved settings.
type Config struct {
	DBPath   string `env:"TIMESDRILL_DB"`
	Profile  string `env:"TIMESDRILL_PROFILE"`
	LogLevel string `env:"TIMESDRILL_LOG_LEVEL"`
	LogFile  string `env:"TIMESDRILL_LOG_FILE"`
	// Seed fixes the exercise selector's random source. Zero seeds from
	// the clock.
	Seed uint64 `env:"TIMESDRILL_SEED"`
}

// FileConfig represents the TOML configuration file. Unset keys leave the
// defaults alone.
type FileConfig struct {
	DB       *string        `toml:"db"`
	Profile  *string        `toml:"profile"`
	Log      LogConfig      `toml:"log"`
	Practice PracticeConfig `toml:"practice"`
}

// LogConfig maps the [log] table.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// PracticeConfig maps the [practice] table.
type PracticeConfig struct {
	Seed *uint64 `toml:"seed"`
}

// Sources names the files Load reads. Empty fields are skipped.
type Sources struct {
	ConfigFile string
	DotEnvFile string
}

// DefaultSources returns the XDG config file and a .env in the working
// directory.
func DefaultSources() Sources {
	return Sources{ConfigFile: DefaultConfigPath(), DotEnvFile: ".env"}
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DBPath:   DefaultDBPath(),
		Profile:  "default",
		LogLevel: "info",
		LogFile:  DefaultLogPath(),
	}
}

// Load resolves the configuration from src. Missing files are not errors.
func Load(src Sources) (Config, error) {
	cfg := Default()

	if src.ConfigFile != "" {
		fc, err := LoadFile(src.ConfigFile)
		if err != nil {
			return Config{}, err
		}
		fc.apply(&cfg)
	}

	environ := env.ToMap(os.Environ())
	if src.DotEnvFile != "" {
		dot, err := godotenv.Read(src.DotEnvFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read %s: %w", src.DotEnvFile, err)
		}
		for k, v := range dot {
			if environ[k] == "" {
				environ[k] = v
			}
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// LoadFile reads a TOML config from path. A missing file yields an empty
// FileConfig.
func LoadFile(path string) (FileConfig, error) {
	var fc FileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return fc, nil
}

func (fc FileConfig) apply(cfg *Config) {
	if fc.DB != nil {
		cfg.DBPath = *fc.DB
	}
	if fc.Profile != nil {
		cfg.Profile = *fc.Profile
	}
	if fc.Log.Level != nil {
		cfg.LogLevel = *fc.Log.Level
	}
	if fc.Log.File != nil {
		cfg.LogFile = *fc.Log.File
	}
	if fc.Practice.Seed != nil {
		cfg.Seed = *fc.Practice.Seed
	}
}
