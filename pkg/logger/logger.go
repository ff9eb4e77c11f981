package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Leveled process logger for the paper service. The package-level helpers
// write through a zerolog.Logger so request handlers can derive child loggers
// from the same sink (see Middleware).

var (
	mu     sync.RWMutex
	logger zerolog.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	level  zerolog.Level  = zerolog.InfoLevel
)

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Call early during startup. Default level is Info.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn", "warning":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	case "fatal":
		level = zerolog.FatalLevel
	default:
		level = zerolog.InfoLevel
	}
}

func shouldLog(l zerolog.Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= level
}

func write(l zerolog.Level, format string, v ...interface{}) {
	if !shouldLog(l) {
		return
	}
	mu.RLock()
	lg := logger
	mu.RUnlock()
	lg.WithLevel(l).Msgf(format, v...)
}

// Logger returns the process logger filtered at the configured level.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger.Level(level)
}

func Debugf(format string, v ...interface{}) { write(zerolog.DebugLevel, format, v...) }
func Infof(format string, v ...interface{})  { write(zerolog.InfoLevel, format, v...) }
func Warnf(format string, v ...interface{})  { write(zerolog.WarnLevel, format, v...) }
func Errorf(format string, v ...interface{}) { write(zerolog.ErrorLevel, format, v...) }

func Fatalf(format string, v ...interface{}) {
	mu.RLock()
	lg := logger
	mu.RUnlock()
	lg.WithLevel(zerolog.FatalLevel).Msgf(format, v...)
	os.Exit(1)
}

// Println kept for brief messages (maps to Info)
func Println(v ...interface{}) {
	write(zerolog.InfoLevel, "%s", strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

func Debug(v string) { Debugf("%s", v) }
func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	switch level {
	case zerolog.DebugLevel:
		return "debug"
	case zerolog.WarnLevel:
		return "warn"
	case zerolog.ErrorLevel:
		return "error"
	case zerolog.FatalLevel:
		return "fatal"
	}
	return "info"
}
