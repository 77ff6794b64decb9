package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/atomicstack/thesaurus/internal/app"
)

// parse runs args through a command carrying Flags and returns the resolved
// configuration.
func parse(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	var (
		cfg    Config
		cfgErr error
	)
	cmd := &cli.Command{
		Name:  "thesaurus",
		Flags: Flags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, cfgErr = FromCommand(cmd)
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"thesaurus"}, args...)))
	return cfg, cfgErr
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestFromCommandDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := parse(t)
	require.NoError(t, err)

	assert.True(t, cfg.App.ShowFooter)
	assert.True(t, cfg.App.SpellingFix)
	assert.Equal(t, app.ProviderAuto, cfg.App.Suggest.Provider)
	assert.Equal(t, defaultCacheSize, cfg.App.Dictionary.CacheSize)
	assert.Equal(t, defaultHTTPTimeout, cfg.App.Dictionary.Timeout)
	assert.True(t, cfg.App.Dictionary.Retry)
	assert.Equal(t, defaultLogFile, cfg.Logging.FilePath)
	assert.Equal(t, defaultLogLevel, cfg.Logging.Level)
	assert.Empty(t, cfg.App.Word)
	assert.Equal(t, "unset", cfg.Flags[flagSerpAPIKey])
}

func TestFromCommandWordArgs(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := parse(t, "ice", "cream")
	require.NoError(t, err)
	assert.Equal(t, "ice cream", cfg.App.Word)
	assert.Equal(t, []string{"ice", "cream"}, cfg.Args)
}

func TestFromCommandFileAndFlagPrecedence(t *testing.T) {
	path := writeConfig(t, `
dictionary:
  base_url: http://localhost:9999/entries
  timeout: 3s
  cache_size: 0
  retry: false
suggest:
  provider: wordlist
  wordlist: /tmp/words
  max_distance: 3
ui:
  width: 70
  footer: false
  spelling_fix: false
  lookup_timeout: 15s
log:
  file: /tmp/thesaurus-test.log
  level: debug
`)

	cfg, err := parse(t, "--config", path, "--width", "90", "--suggest", "none")
	require.NoError(t, err)

	assert.Equal(t, path, cfg.ConfigPath)
	assert.Equal(t, "http://localhost:9999/entries", cfg.App.Dictionary.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.App.Dictionary.Timeout)
	assert.Equal(t, 0, cfg.App.Dictionary.CacheSize)
	assert.False(t, cfg.App.Dictionary.Retry)
	assert.Equal(t, app.ProviderNone, cfg.App.Suggest.Provider)
	assert.Equal(t, "/tmp/words", cfg.App.Suggest.Wordlist)
	assert.Equal(t, 3, cfg.App.Suggest.MaxDistance)
	assert.Equal(t, 90, cfg.App.Width)
	assert.False(t, cfg.App.ShowFooter)
	assert.False(t, cfg.App.SpellingFix)
	assert.Equal(t, 15*time.Second, cfg.App.LookupTimeout)
	assert.Equal(t, "/tmp/thesaurus-test.log", cfg.Logging.FilePath)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestFromCommandEnvSources(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(envHeight, "20")
	t.Setenv(envSerpAPIKeyAlt, "secret")

	cfg, err := parse(t)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.App.Height)
	assert.Equal(t, "secret", cfg.App.Suggest.SerpAPIKey)
	assert.Equal(t, "set", cfg.Flags[flagSerpAPIKey])
}

func TestFromCommandMissingExplicitConfig(t *testing.T) {
	_, err := parse(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config file")
}

func TestFromCommandRejectsInvalidValues(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := parse(t, "--suggest", "serpapi")
	assert.ErrorContains(t, err, "serpapi key")

	_, err = parse(t, "--cache-size=-1")
	assert.ErrorContains(t, err, "cache_size")
}

func TestLoad(t *testing.T) {
	t.Parallel()

	file, err := Load("", true)
	require.NoError(t, err)
	assert.Equal(t, File{}, file)

	missing := filepath.Join(t.TempDir(), "missing.yaml")
	_, err = Load(missing, false)
	require.NoError(t, err)
	_, err = Load(missing, true)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := writeConfig(t, "ui: [")
	_, err = Load(bad, false)
	assert.ErrorContains(t, err, "parse config file")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() Config {
		return Config{App: app.Config{Suggest: app.SuggestConfig{Provider: app.ProviderAuto}}}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"negative width", func(c *Config) { c.App.Width = -1 }, false},
		{"negative height", func(c *Config) { c.App.Height = -1 }, false},
		{"negative timeout", func(c *Config) { c.App.Dictionary.Timeout = -time.Second }, false},
		{"negative distance", func(c *Config) { c.App.Suggest.MaxDistance = -2 }, false},
		{"unknown provider", func(c *Config) { c.App.Suggest.Provider = "bing" }, false},
		{"serpapi with key", func(c *Config) {
			c.App.Suggest.Provider = app.ProviderSerpAPI
			c.App.Suggest.SerpAPIKey = "k"
		}, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
