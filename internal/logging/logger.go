// Package logging provides category-based file logging for karat.
// Logs are written per category under <karat home>/logs/ and are a
// no-op unless debug mode is enabled, so normal TUI sessions stay silent.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category names a log stream.
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup, config resolution
	CategoryAPI     Category = "api"     // HTTP calls to the CRM backend
	CategorySession Category = "session" // Token persistence, login/logout
	CategoryView    Category = "view"    // Page fetch/filter lifecycle
	CategoryExport  Category = "export"  // CSV/JSON export and import runs
)

var (
	mu      sync.RWMutex
	loggers = make(map[Category]*zap.SugaredLogger)
	logsDir string
	enabled bool
	level   = zapcore.InfoLevel
	nop     = zap.NewNop().Sugar()
)

// Initialize sets up the logging directory. Call once at startup.
// With debug disabled every logger is a no-op.
func Initialize(home string, debug bool, levelName string) error {
	mu.Lock()
	defer mu.Unlock()

	enabled = debug
	if parsed, err := zapcore.ParseLevel(levelName); err == nil {
		level = parsed
	} else {
		level = zapcore.InfoLevel
	}

	if !enabled {
		return nil
	}
	if home == "" {
		return fmt.Errorf("karat home path required")
	}

	logsDir = filepath.Join(home, "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}
	return nil
}

// IsDebugMode reports whether file logging is active.
func IsDebugMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Get returns (or creates) the logger for a category. Returns a no-op
// logger when debug mode is off or the log file cannot be opened.
func Get(category Category) *zap.SugaredLogger {
	mu.RLock()
	if !enabled || logsDir == "" {
		mu.RUnlock()
		return nop
	}
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}

	// Dated file names keep rotation a matter of deleting old files.
	name := fmt.Sprintf("%s_%s.log", time.Now().Format("2006-01-02"), category)
	file, err := os.OpenFile(filepath.Join(logsDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] could not open log file for %s: %v\n", category, err)
		return nop
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(file), level)
	l := zap.New(core).Sugar().Named(string(category))
	loggers[category] = l
	return l
}

// CloseAll flushes every open logger. Call at shutdown.
func CloseAll() {
	mu.Lock()
	defer mu.Unlock()
	for _, l := range loggers {
		_ = l.Sync()
	}
	loggers = make(map[Category]*zap.SugaredLogger)
}

// Convenience functions, one set per category. No-ops when disabled.

func Boot(format string, args ...interface{})      { Get(CategoryBoot).Infof(format, args...) }
func BootError(format string, args ...interface{}) { Get(CategoryBoot).Errorf(format, args...) }

func API(format string, args ...interface{})      { Get(CategoryAPI).Infof(format, args...) }
func APIDebug(format string, args ...interface{}) { Get(CategoryAPI).Debugf(format, args...) }
func APIWarn(format string, args ...interface{})  { Get(CategoryAPI).Warnf(format, args...) }
func APIError(format string, args ...interface{}) { Get(CategoryAPI).Errorf(format, args...) }

func Session(format string, args ...interface{})      { Get(CategorySession).Infof(format, args...) }
func SessionError(format string, args ...interface{}) { Get(CategorySession).Errorf(format, args...) }

func View(format string, args ...interface{})      { Get(CategoryView).Infof(format, args...) }
func ViewDebug(format string, args ...interface{}) { Get(CategoryView).Debugf(format, args...) }
func ViewError(format string, args ...interface{}) { Get(CategoryView).Errorf(format, args...) }

func Export(format string, args ...interface{})      { Get(CategoryExport).Infof(format, args...) }
func ExportError(format string, args ...interface{}) { Get(CategoryExport).Errorf(format, args...) }
