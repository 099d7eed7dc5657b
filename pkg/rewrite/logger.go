package rewrite

import (
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	globalLogger     *log.Logger
	globalLoggerMu   sync.Mutex
	globalLoggerOnce sync.Once
)

func initGlobalLogger() {
	globalLoggerOnce.Do(func() {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "rewrite",
		})
		logger.SetLevel(parseLogLevel(GetGlobalConfig().LogLevel))
		globalLogger = logger
	})
}

func parseLogLevel(levelStr string) log.Level {
	level, err := log.ParseLevel(levelStr)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// GetLogger returns the package logger.
func GetLogger() *log.Logger {
	initGlobalLogger()
	globalLoggerMu.Lock()
	defer globalLoggerMu.Unlock()
	return globalLogger
}

// SetLogger replaces the package logger.
func SetLogger(logger *log.Logger) {
	initGlobalLogger()
	globalLoggerMu.Lock()
	defer globalLoggerMu.Unlock()
	globalLogger = logger
}

// UpdateLoggerFromConfig re-applies the configured log level to the
// package logger.
func UpdateLoggerFromConfig() {
	GetLogger().SetLevel(parseLogLevel(GetGlobalConfig().LogLevel))
}
