// Package logger holds the process-wide zerolog logger. Call Init once in
// main; components take their own child logger through Component.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls how Init builds the logger.
type Options struct {
	// Level is a zerolog level name ("warning" is accepted for warn).
	// Unknown or empty values fall back to info.
	Level string
	// Pretty switches from JSON lines to zerolog's console writer.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
	// Service is stamped on every entry as "service" when set.
	Service string
}

var (
	mu    sync.Mutex
	root  zerolog.Logger
	ready bool
)

// Init builds the root logger on the first call and returns it. Later calls
// return the existing logger unchanged.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if ready {
		return root
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lvl := parseLevel(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	fields := zerolog.New(out).Level(lvl).With().Timestamp()
	if opts.Service != "" {
		fields = fields.Str("service", opts.Service)
	}
	root = fields.Logger()
	ready = true
	return root
}

// Get returns the root logger. It panics before Init.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !ready {
		panic("logger: Get() called before Init()")
	}
	return root
}

// Component returns a child of the root logger tagged with "component".
func Component(name string) zerolog.Logger {
	return Get().With().Str("component", name).Logger()
}

// Reset discards the root logger so tests can call Init again.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	root = zerolog.Logger{}
	ready = false
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
