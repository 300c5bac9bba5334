package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	wd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, wd, cfg.Root)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 9090, cfg.AdminPort)
	assert.False(t, cfg.ConfineToRoot)
	assert.False(t, cfg.Watch)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Flags(t *testing.T) {
	t.Setenv(EnvRootDir, "")
	chdir(t, t.TempDir())

	cfg, err := Load([]string{"-root", "/srv/data", "-port", "8181", "-admin-port", "0", "-confine", "-log-level", "DEBUG"})
	require.NoError(t, err)

	assert.Equal(t, "/srv/data", cfg.Root)
	assert.Equal(t, 8181, cfg.Port)
	assert.Equal(t, 0, cfg.AdminPort)
	assert.True(t, cfg.ConfineToRoot)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Empty(t, cfg.GetConfigFilePath())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(
		"root: /from/file\nport: 7000\nwatch: true\nlog:\n  level: warn\n"), 0o644))
	t.Setenv(EnvRootDir, "/from/env")
	t.Setenv(EnvPort, "7100")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultConfigFile, cfg.GetConfigFilePath())
	assert.Equal(t, "/from/env", cfg.Root)
	assert.Equal(t, 7100, cfg.Port)
	assert.True(t, cfg.Watch)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format, "defaults survive partial sections")
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(EnvRootDir, "/from/env")

	cfg, err := Load([]string{"-r", "/from/flag"})
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", cfg.Root)
}

func TestLoad_ExplicitConfigMissing(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := Load([]string{"-config", "nope.yaml"})
	assert.Error(t, err)
}

func TestLoad_InvalidEnvPort(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(EnvPort, "eighty")
	_, err := Load(nil)
	assert.ErrorContains(t, err, EnvPort)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty root", func(c *Config) { c.Root = "" }},
		{"port out of range", func(c *Config) { c.Port = 70000 }},
		{"admin port collides", func(c *Config) { c.AdminPort = c.Port }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
		{"extension without dot", func(c *Config) { c.MarkdownExtensions = []string{"md"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestIsExcluded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Exclude = []string{".git", "*.swp"}

	assert.True(t, cfg.IsExcluded("/path/to/.git"))
	assert.True(t, cfg.IsExcluded("/path/to/.notes.swp"))
	assert.False(t, cfg.IsExcluded("/path/to/README.md"))
}

func TestIsMarkdownFile(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.IsMarkdownFile("docs/README.md"))
	assert.True(t, cfg.IsMarkdownFile("docs/GUIDE.MARKDOWN"))
	assert.False(t, cfg.IsMarkdownFile("docs/foo1.txt"))
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
