// =============================================================================
// HSN/SAC Validator - Logging
// =============================================================================
//
// Package logging builds the zap logger shared by the CLI commands.
//
// Logs go to stderr so report output on stdout stays machine-readable.
// Levels are coloured only when stderr is a terminal; piped or redirected
// logs get plain "WARN", "ERROR" and so on.
//
// =============================================================================
package logging

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing to stderr at the given level
// ("debug", "info", "warn", "error"). verbose forces debug.
func New(level string, verbose bool) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.Development = false
	config.DisableStacktrace = true
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.EncodeLevel = levelEncoder(os.Stderr.Fd())

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// levelEncoder picks coloured level names for a terminal and plain ones
// otherwise.
func levelEncoder(fd uintptr) zapcore.LevelEncoder {
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return zapcore.CapitalColorLevelEncoder
	}
	return zapcore.CapitalLevelEncoder
}

// ParseLevel converts a configured level name into a zap level.
// An empty name means info.
func ParseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}
