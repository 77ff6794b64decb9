package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/atomicstack/thesaurus/internal/dictionary"
	"github.com/atomicstack/thesaurus/internal/logging"
	"github.com/atomicstack/thesaurus/internal/lookup"
	"github.com/atomicstack/thesaurus/internal/suggest"
	"github.com/atomicstack/thesaurus/internal/ui"
)

// Spelling suggestion providers.
const (
	ProviderAuto     = "auto"
	ProviderSerpAPI  = "serpapi"
	ProviderWordlist = "wordlist"
	ProviderNone     = "none"
)

// Config describes user-provided application options.
type Config struct {
	Width         int
	Height        int
	ShowFooter    bool
	SpellingFix   bool
	LookupTimeout time.Duration
	Word          string
	Dictionary    DictionaryConfig
	Suggest       SuggestConfig
}

// DictionaryConfig configures the dictionary API client.
type DictionaryConfig struct {
	BaseURL     string
	Timeout     time.Duration
	CacheSize   int
	Retry       bool
	MinInterval time.Duration
}

// SuggestConfig selects and configures the spelling suggestion provider.
type SuggestConfig struct {
	Provider    string
	SerpAPIKey  string
	SerpAPIURL  string
	Wordlist    string
	MaxDistance int
	Timeout     time.Duration
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	pipeline, err := NewPipeline(cfg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := ui.NewModel(ui.Config{
		Width:       cfg.Width,
		Height:      cfg.Height,
		ShowFooter:  cfg.ShowFooter,
		SpellingFix: cfg.SpellingFix,
		Word:        cfg.Word,
		Looker:      pipeline,
		Context:     ctx,
	})
	program := tea.NewProgram(model)
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// NewPipeline wires the dictionary client, its cache and the configured
// speller into a lookup pipeline.
func NewPipeline(cfg Config) (*lookup.Pipeline, error) {
	dict, err := newDictionary(cfg.Dictionary)
	if err != nil {
		return nil, err
	}
	speller, err := newSpeller(cfg.Suggest)
	if err != nil {
		return nil, err
	}
	return lookup.New(dict, speller, lookup.WithTimeout(cfg.LookupTimeout)), nil
}

func newDictionary(cfg DictionaryConfig) (lookup.Dictionary, error) {
	client := dictionary.NewClient(
		dictionary.WithBaseURL(cfg.BaseURL),
		dictionary.WithTimeout(cfg.Timeout),
		dictionary.WithRetry(cfg.Retry, dictionary.DefaultRetryDelay),
		dictionary.WithMinInterval(cfg.MinInterval),
		dictionary.WithLogger(logging.Logger()),
	)
	if cfg.CacheSize <= 0 {
		return client, nil
	}
	cached, err := dictionary.NewCached(client, cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("dictionary cache: %w", err)
	}
	return cached, nil
}

// newSpeller returns nil when no provider is usable, which disables the
// suggestion step.
func newSpeller(cfg SuggestConfig) (lookup.Speller, error) {
	switch cfg.Provider {
	case ProviderNone:
		return nil, nil
	case ProviderSerpAPI:
		if cfg.SerpAPIKey == "" {
			return nil, suggest.ErrNoAPIKey
		}
		return suggest.NewSerpAPI(cfg.SerpAPIKey, cfg.SerpAPIURL, cfg.Timeout, logging.Logger()), nil
	case ProviderWordlist:
		words, err := suggest.LoadWordlist(wordlistPath(cfg), cfg.MaxDistance)
		if err != nil {
			return nil, fmt.Errorf("load word list: %w", err)
		}
		return words, nil
	case ProviderAuto, "":
		return autoSpeller(cfg), nil
	default:
		return nil, fmt.Errorf("unknown suggest provider %q", cfg.Provider)
	}
}

// autoSpeller prefers SerpApi when a key is configured and falls back to the
// local word list when it can be read.
func autoSpeller(cfg SuggestConfig) lookup.Speller {
	var chain suggest.Chain
	if cfg.SerpAPIKey != "" {
		chain = append(chain, suggest.NewSerpAPI(cfg.SerpAPIKey, cfg.SerpAPIURL, cfg.Timeout, logging.Logger()))
	}
	if words, err := suggest.LoadWordlist(wordlistPath(cfg), cfg.MaxDistance); err == nil {
		chain = append(chain, words)
	} else {
		l := logging.Logger()
		l.Warn().Err(err).Str("path", wordlistPath(cfg)).Msg("word list unavailable")
	}
	switch len(chain) {
	case 0:
		return nil
	case 1:
		return chain[0]
	default:
		return chain
	}
}

func wordlistPath(cfg SuggestConfig) string {
	if cfg.Wordlist == "" {
		return suggest.DefaultWordlistPath
	}
	return cfg.Wordlist
}
