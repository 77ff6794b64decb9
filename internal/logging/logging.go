package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

const (
	defaultLogFile = "thesaurus.log"
	defaultLevel   = "info"
)

var (
	mu           sync.RWMutex
	traceEnabled bool
	logger       = zerolog.Nop()
	closeFile    = func() {}
)

// Configure points the shared logger at path, appending JSON lines. Empty
// values fall back to the default file and level. Directories are created
// automatically when missing.
func Configure(path, level string) error {
	if strings.TrimSpace(path) == "" {
		path = defaultLogFile
	}
	if strings.TrimSpace(level) == "" {
		level = defaultLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	l := zerolog.New(f).
		With().
		Timestamp().
		Logger().
		Level(lvl)

	mu.Lock()
	prev := closeFile
	logger = l
	closeFile = func() { _ = f.Close() }
	mu.Unlock()
	prev()
	return nil
}

// Close releases the log file and silences the shared logger.
func Close() {
	mu.Lock()
	prev := closeFile
	logger = zerolog.Nop()
	closeFile = func() {}
	mu.Unlock()
	prev()
}

// Logger returns the shared logger for components that log on their own.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether Trace writes anything.
func TraceEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return traceEnabled
}

// Error records err at error level.
func Error(err error) {
	if err == nil {
		return
	}
	l := Logger()
	l.Error().Err(err).Msg("error")
}

// Trace appends a structured entry when tracing is enabled.
func Trace(event string, payload map[string]interface{}) {
	mu.RLock()
	enabled := traceEnabled
	l := logger
	mu.RUnlock()
	if !enabled {
		return
	}
	ev := l.WithLevel(zerolog.NoLevel).Str("event", event)
	if len(payload) > 0 {
		ev = ev.Interface("payload", payload)
	}
	ev.Msg("trace")
}
