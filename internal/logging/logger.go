// Package logging provides categorized logging for the EduGlobal core.
// Each subsystem logs under its own category so persistence noise can be
// separated from API traffic when debugging. Before Initialize is called
// every logger is a silent no-op, which keeps library consumers quiet by
// default.
package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/subsystem.
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup and configuration
	CategorySession Category = "session" // Session store mutations
	CategoryStore   Category = "store"   // Durable slot reads/writes
	CategoryAPI     Category = "api"     // Gemini API calls
	CategoryChat    Category = "chat"    // Turn orchestration and streaming
)

// Logger is a category-scoped printf-style logger.
type Logger struct {
	sugar *zap.SugaredLogger
}

var (
	mu      sync.RWMutex
	root    = zap.NewNop().Sugar()
	loggers = make(map[Category]*Logger)
)

// Initialize builds the shared zap core. With debug enabled the development
// config is used at debug level; otherwise the production config applies.
func Initialize(debug bool) error {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	root = logger.Sugar()
	loggers = make(map[Category]*Logger)
	return nil
}

// Get returns the logger for a category, creating it on first use.
func Get(cat Category) *Logger {
	mu.RLock()
	l, ok := loggers[cat]
	mu.RUnlock()
	if ok {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[cat]; ok {
		return l
	}
	l = &Logger{sugar: root.With("cat", string(cat))}
	loggers[cat] = l
	return l
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

// Convenience helpers matching the common call sites.

func SessionDebug(format string, args ...interface{}) { Get(CategorySession).Debug(format, args...) }
func StoreError(format string, args ...interface{})   { Get(CategoryStore).Error(format, args...) }
func APIDebug(format string, args ...interface{})     { Get(CategoryAPI).Debug(format, args...) }
func APIError(format string, args ...interface{})     { Get(CategoryAPI).Error(format, args...) }
func ChatDebug(format string, args ...interface{})    { Get(CategoryChat).Debug(format, args...) }
func ChatWarn(format string, args ...interface{})     { Get(CategoryChat).Warn(format, args...) }
