// Package logging provides config-driven categorized logging for jsonsplit.
// Every category is a named child of one zap root logger; categories switched
// off in the config get a no-op logger. Call Initialize once at startup.
package logging

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"jsonsplit/internal/config"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot   Category = "boot"   // Startup, flag and config resolution
	CategoryConfig Category = "config" // Config load/save
	CategoryCount  Category = "count"  // Line counting pass
	CategorySplit  Category = "split"  // Writing pass
)

// Logger wraps a sugared zap logger with printf-style helpers.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
}

var (
	root     = zap.NewNop()
	runID    string
	settings config.LoggingConfig
	mu       sync.RWMutex
)

// Initialize builds the root logger from cfg and tags it with a fresh run id.
// verbose forces debug level regardless of cfg.Level.
func Initialize(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	l, err := Build(cfg, verbose)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()[:8]
	l = l.With(zap.String("run_id", id))

	mu.Lock()
	root = l
	runID = id
	settings = cfg
	mu.Unlock()

	return l, nil
}

// Build turns a LoggingConfig into a zap logger without touching package state.
func Build(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Sampling = nil
	zc.DisableStacktrace = true

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	switch cfg.Format {
	case "", "console":
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	case "json":
		zc.Encoding = "json"
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	out := "stderr"
	if cfg.File != "" {
		out = cfg.File
	}
	zc.OutputPaths = []string{out}
	zc.ErrorOutputPaths = []string{"stderr"}

	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l, nil
}

// Root returns the current root logger.
func Root() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

// RunID returns the id attached to every entry of the current run.
func RunID() string {
	mu.RLock()
	defer mu.RUnlock()
	return runID
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return settings.IsCategoryEnabled(string(category))
}

// Get returns a logger for the given category.
// Returns a no-op logger if the category is disabled.
func Get(category Category) *Logger {
	if !IsCategoryEnabled(category) {
		return &Logger{category: category, sugar: zap.NewNop().Sugar()}
	}
	return &Logger{category: category, sugar: Root().Named(string(category)).Sugar()}
}

// Sync flushes the root logger. Errors from syncing stderr are ignored.
func Sync() {
	_ = Root().Sync()
}

// Reset restores the no-op root logger and default settings.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	root = zap.NewNop()
	runID = ""
	settings = config.LoggingConfig{}
}

// With returns a child logger carrying a structured field.
func (l *Logger) With(key string, value interface{}) *Logger {
	return &Logger{category: l.category, sugar: l.sugar.With(key, value)}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Boot logs to the boot category.
func Boot(format string, args ...interface{}) {
	Get(CategoryBoot).Info(format, args...)
}

// BootDebug logs debug to the boot category.
func BootDebug(format string, args ...interface{}) {
	Get(CategoryBoot).Debug(format, args...)
}

// Timer helps measure operation duration
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return &Timer{
		category: category,
		op:       operation,
		start:    time.Now(),
	}
}

// Stop ends the timer and logs the duration
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	return elapsed
}

// StopWithInfo ends the timer and logs at info level
func (t *Timer) StopWithInfo() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Info("%s completed in %v", t.op, elapsed)
	return elapsed
}
