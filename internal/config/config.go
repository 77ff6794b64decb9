package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/atomicstack/thesaurus/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App        app.Config
	Logging    Logging
	ConfigPath string
	Flags      map[string]string
	Args       []string
}

type Logging struct {
	FilePath string
	Level    string
	Trace    bool
}

// File is the on-disk YAML configuration. Every field is optional.
type File struct {
	Dictionary DictionarySection `yaml:"dictionary"`
	Suggest    SuggestSection    `yaml:"suggest"`
	UI         UISection         `yaml:"ui"`
	Log        LogSection        `yaml:"log"`
}

type DictionarySection struct {
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	CacheSize   *int          `yaml:"cache_size"`
	Retry       *bool         `yaml:"retry"`
	MinInterval time.Duration `yaml:"min_interval"`
}

type SuggestSection struct {
	Provider    string        `yaml:"provider"`
	SerpAPIKey  string        `yaml:"serpapi_key"`
	SerpAPIURL  string        `yaml:"serpapi_url"`
	Wordlist    string        `yaml:"wordlist"`
	MaxDistance int           `yaml:"max_distance"`
	Timeout     time.Duration `yaml:"timeout"`
}

type UISection struct {
	Width         int           `yaml:"width"`
	Height        int           `yaml:"height"`
	Footer        *bool         `yaml:"footer"`
	SpellingFix   *bool         `yaml:"spelling_fix"`
	LookupTimeout time.Duration `yaml:"lookup_timeout"`
}

type LogSection struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
	Trace bool   `yaml:"trace"`
}

const (
	flagConfig        = "config"
	flagLogFile       = "log-file"
	flagLogLevel      = "log-level"
	flagTrace         = "trace"
	flagWidth         = "width"
	flagHeight        = "height"
	flagFooter        = "footer"
	flagSpellingFix   = "spelling-fix"
	flagDictionaryURL = "dictionary-url"
	flagCacheSize     = "cache-size"
	flagSuggest       = "suggest"
	flagSerpAPIKey    = "serpapi-key"
	flagWordlist      = "wordlist"
)

const (
	envConfig        = "THESAURUS_CONFIG"
	envLogFile       = "THESAURUS_LOG_FILE"
	envLogLevel      = "THESAURUS_LOG_LEVEL"
	envTrace         = "THESAURUS_TRACE"
	envWidth         = "THESAURUS_WIDTH"
	envHeight        = "THESAURUS_HEIGHT"
	envFooter        = "THESAURUS_FOOTER"
	envSpellingFix   = "THESAURUS_SPELLING_FIX"
	envDictionaryURL = "THESAURUS_DICTIONARY_URL"
	envCacheSize     = "THESAURUS_CACHE_SIZE"
	envSuggest       = "THESAURUS_SUGGEST"
	envSerpAPIKey    = "THESAURUS_SERPAPI_KEY"
	envSerpAPIKeyAlt = "SERPAPI_API_KEY"
	envWordlist      = "THESAURUS_WORDLIST"
)

const (
	defaultLogFile     = "thesaurus.log"
	defaultLogLevel    = "info"
	defaultCacheSize   = 128
	defaultHTTPTimeout = 10 * time.Second
)

// DefaultConfigPath returns the config file location under XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "thesaurus", "config.yaml")
}

// Flags returns the command-line flags understood by FromCommand. Each flag
// can also be set through its THESAURUS_* environment variable.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagConfig,
			Aliases: []string{"c"},
			Usage:   "path to config file",
			Sources: cli.EnvVars(envConfig),
			Value:   DefaultConfigPath(),
		},
		&cli.StringFlag{
			Name:    flagLogFile,
			Usage:   "path to the log file",
			Sources: cli.EnvVars(envLogFile),
		},
		&cli.StringFlag{
			Name:    flagLogLevel,
			Usage:   "log level (debug, info, warn, error)",
			Sources: cli.EnvVars(envLogLevel),
		},
		&cli.BoolFlag{
			Name:    flagTrace,
			Usage:   "enable verbose JSON trace logging",
			Sources: cli.EnvVars(envTrace),
		},
		&cli.IntFlag{
			Name:    flagWidth,
			Usage:   "desired viewport width in cells (0 uses terminal width)",
			Sources: cli.EnvVars(envWidth),
		},
		&cli.IntFlag{
			Name:    flagHeight,
			Usage:   "desired viewport height in rows (0 uses terminal height)",
			Sources: cli.EnvVars(envHeight),
		},
		&cli.BoolFlag{
			Name:    flagFooter,
			Usage:   "show the key hint footer",
			Sources: cli.EnvVars(envFooter),
			Value:   true,
		},
		&cli.BoolFlag{
			Name:    flagSpellingFix,
			Usage:   "ask for a spelling suggestion when a word is not found",
			Sources: cli.EnvVars(envSpellingFix),
			Value:   true,
		},
		&cli.StringFlag{
			Name:    flagDictionaryURL,
			Usage:   "dictionary API base URL",
			Sources: cli.EnvVars(envDictionaryURL),
		},
		&cli.IntFlag{
			Name:    flagCacheSize,
			Usage:   "number of lookups kept in memory (0 disables the cache)",
			Sources: cli.EnvVars(envCacheSize),
		},
		&cli.StringFlag{
			Name:    flagSuggest,
			Usage:   "spelling suggestion provider (auto, serpapi, wordlist, none)",
			Sources: cli.EnvVars(envSuggest),
		},
		&cli.StringFlag{
			Name:    flagSerpAPIKey,
			Usage:   "SerpApi key used for spelling suggestions",
			Sources: cli.EnvVars(envSerpAPIKey, envSerpAPIKeyAlt),
		},
		&cli.StringFlag{
			Name:    flagWordlist,
			Usage:   "word list used for offline spelling suggestions",
			Sources: cli.EnvVars(envWordlist),
		},
	}
}

// Load reads the YAML file at path. A missing file yields an empty File
// unless required is set.
func Load(path string, required bool) (File, error) {
	var file File
	if strings.TrimSpace(path) == "" {
		return file, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return file, nil
		}
		return file, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("parse config file: %w", err)
	}
	return file, nil
}

// FromCommand builds the runtime configuration from parsed flags, their
// environment sources and the optional config file. Flags win over the file.
func FromCommand(cmd *cli.Command) (Config, error) {
	path := cmd.String(flagConfig)
	file, err := Load(path, cmd.IsSet(flagConfig))
	if err != nil {
		return Config{}, err
	}

	if cmd.IsSet(flagLogFile) {
		file.Log.File = cmd.String(flagLogFile)
	}
	if cmd.IsSet(flagLogLevel) {
		file.Log.Level = cmd.String(flagLogLevel)
	}
	if cmd.IsSet(flagTrace) {
		file.Log.Trace = cmd.Bool(flagTrace)
	}
	if cmd.IsSet(flagWidth) {
		file.UI.Width = int(cmd.Int(flagWidth))
	}
	if cmd.IsSet(flagHeight) {
		file.UI.Height = int(cmd.Int(flagHeight))
	}
	if cmd.IsSet(flagFooter) {
		v := cmd.Bool(flagFooter)
		file.UI.Footer = &v
	}
	if cmd.IsSet(flagSpellingFix) {
		v := cmd.Bool(flagSpellingFix)
		file.UI.SpellingFix = &v
	}
	if cmd.IsSet(flagDictionaryURL) {
		file.Dictionary.BaseURL = cmd.String(flagDictionaryURL)
	}
	if cmd.IsSet(flagCacheSize) {
		v := int(cmd.Int(flagCacheSize))
		file.Dictionary.CacheSize = &v
	}
	if cmd.IsSet(flagSuggest) {
		file.Suggest.Provider = cmd.String(flagSuggest)
	}
	if cmd.IsSet(flagSerpAPIKey) {
		file.Suggest.SerpAPIKey = cmd.String(flagSerpAPIKey)
	}
	if cmd.IsSet(flagWordlist) {
		file.Suggest.Wordlist = cmd.String(flagWordlist)
	}

	cfg := file.resolve()
	cfg.ConfigPath = path
	cfg.App.Word = strings.Join(cmd.Args().Slice(), " ")
	cfg.Args = append([]string(nil), cmd.Args().Slice()...)
	cfg.Flags = flagSnapshot(cfg)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// resolve applies defaults to every unset value.
func (f File) resolve() Config {
	footer := true
	if f.UI.Footer != nil {
		footer = *f.UI.Footer
	}
	spellingFix := true
	if f.UI.SpellingFix != nil {
		spellingFix = *f.UI.SpellingFix
	}
	retry := true
	if f.Dictionary.Retry != nil {
		retry = *f.Dictionary.Retry
	}
	cacheSize := defaultCacheSize
	if f.Dictionary.CacheSize != nil {
		cacheSize = *f.Dictionary.CacheSize
	}
	dictTimeout := f.Dictionary.Timeout
	if dictTimeout == 0 {
		dictTimeout = defaultHTTPTimeout
	}
	suggestTimeout := f.Suggest.Timeout
	if suggestTimeout == 0 {
		suggestTimeout = defaultHTTPTimeout
	}
	provider := strings.ToLower(strings.TrimSpace(f.Suggest.Provider))
	if provider == "" {
		provider = app.ProviderAuto
	}
	logFile := f.Log.File
	if strings.TrimSpace(logFile) == "" {
		logFile = defaultLogFile
	}
	logLevel := f.Log.Level
	if strings.TrimSpace(logLevel) == "" {
		logLevel = defaultLogLevel
	}

	return Config{
		App: app.Config{
			Width:         f.UI.Width,
			Height:        f.UI.Height,
			ShowFooter:    footer,
			SpellingFix:   spellingFix,
			LookupTimeout: f.UI.LookupTimeout,
			Dictionary: app.DictionaryConfig{
				BaseURL:     strings.TrimSpace(f.Dictionary.BaseURL),
				Timeout:     dictTimeout,
				CacheSize:   cacheSize,
				Retry:       retry,
				MinInterval: f.Dictionary.MinInterval,
			},
			Suggest: app.SuggestConfig{
				Provider:    provider,
				SerpAPIKey:  strings.TrimSpace(f.Suggest.SerpAPIKey),
				SerpAPIURL:  strings.TrimSpace(f.Suggest.SerpAPIURL),
				Wordlist:    strings.TrimSpace(f.Suggest.Wordlist),
				MaxDistance: f.Suggest.MaxDistance,
				Timeout:     suggestTimeout,
			},
		},
		Logging: Logging{
			FilePath: logFile,
			Level:    logLevel,
			Trace:    f.Log.Trace,
		},
	}
}

func flagSnapshot(cfg Config) map[string]string {
	key := "unset"
	if cfg.App.Suggest.SerpAPIKey != "" {
		key = "set"
	}
	return map[string]string{
		flagConfig:        cfg.ConfigPath,
		flagWidth:         strconv.Itoa(cfg.App.Width),
		flagHeight:        strconv.Itoa(cfg.App.Height),
		flagFooter:        strconv.FormatBool(cfg.App.ShowFooter),
		flagSpellingFix:   strconv.FormatBool(cfg.App.SpellingFix),
		flagDictionaryURL: cfg.App.Dictionary.BaseURL,
		flagCacheSize:     strconv.Itoa(cfg.App.Dictionary.CacheSize),
		flagSuggest:       cfg.App.Suggest.Provider,
		flagSerpAPIKey:    key,
		flagWordlist:      cfg.App.Suggest.Wordlist,
		flagLogLevel:      cfg.Logging.Level,
	}
}

// Validate ensures the resolved configuration is usable.
func Validate(cfg Config) error {
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	if cfg.App.Dictionary.CacheSize < 0 {
		return fmt.Errorf("dictionary.cache_size must be >= 0 (got %d)", cfg.App.Dictionary.CacheSize)
	}
	if cfg.App.Dictionary.Timeout < 0 || cfg.App.Suggest.Timeout < 0 || cfg.App.LookupTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	if cfg.App.Suggest.MaxDistance < 0 {
		return fmt.Errorf("suggest.max_distance must be >= 0 (got %d)", cfg.App.Suggest.MaxDistance)
	}
	switch cfg.App.Suggest.Provider {
	case app.ProviderAuto, app.ProviderWordlist, app.ProviderNone:
	case app.ProviderSerpAPI:
		if cfg.App.Suggest.SerpAPIKey == "" {
			return errors.New("suggest provider serpapi requires a serpapi key")
		}
	default:
		return fmt.Errorf("unknown suggest provider %q", cfg.App.Suggest.Provider)
	}
	return nil
}
