package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment can't
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TIMESDRILL_DB", "TIMESDRILL_PROFILE", "TIMESDRILL_LOG_LEVEL", "TIMESDRILL_LOG_FILE", "TIMESDRILL_SEED"} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestDefault(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")

	cfg := Default()
	assert.Equal(t, filepath.Join("/data", "timesdrill", "timesdrill.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join("/state", "timesdrill", "timesdrill.log"), cfg.LogFile)
	assert.Equal(t, "default", cfg.Profile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Zero(t, cfg.Seed)
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	assert.Equal(t, filepath.Join("/cfg", "timesdrill", "config.toml"), DefaultConfigPath())
}

func TestLoad_MissingFiles(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Load(Sources{
		ConfigFile: filepath.Join(dir, "nope.toml"),
		DotEnvFile: filepath.Join(dir, "nope.env"),
	})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileThenDotEnvThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfgFile := writeFile(t, dir, "config.toml", `
db = "/tmp/from-file.db"
profile = "mia"

[log]
level = "debug"

[practice]
seed = 7
`)
	dotEnv := writeFile(t, dir, ".env", "TIMESDRILL_PROFILE=leo\nTIMESDRILL_LOG_LEVEL=warn\n")
	t.Setenv("TIMESDRILL_LOG_LEVEL", "error")

	cfg, err := Load(Sources{ConfigFile: cfgFile, DotEnvFile: dotEnv})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/from-file.db", cfg.DBPath)
	assert.Equal(t, "leo", cfg.Profile, ".env overrides the file")
	assert.Equal(t, "error", cfg.LogLevel, "environment overrides .env")
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, DefaultLogPath(), cfg.LogFile)
}

func TestLoad_BadTOML(t *testing.T) {
	clearEnv(t)
	cfgFile := writeFile(t, t.TempDir(), "config.toml", "profile = \n")

	_, err := Load(Sources{ConfigFile: cfgFile})
	assert.ErrorContains(t, err, "decode config")
}

func TestLoad_BadEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TIMESDRILL_SEED", "not-a-number")

	_, err := Load(Sources{})
	assert.ErrorContains(t, err, "parse env:")
}
