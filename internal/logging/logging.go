// Package logging builds the zap logger used by mdalert commands.
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelEnv selects the log level when --verbose is not given.
const LevelEnv = "MDALERT_LOG_LEVEL"

// New returns a console logger writing to stderr. Verbose forces debug level;
// otherwise the level comes from MDALERT_LOG_LEVEL. With neither set logging
// is off and commands report problems through their own output.
func New(verbose bool) (*zap.Logger, error) {
	env := os.Getenv(LevelEnv)
	switch {
	case verbose:
		return config(zapcore.DebugLevel).Build()
	case env != "":
		return config(ParseLevel(env)).Build()
	default:
		return zap.NewNop(), nil
	}
}

func config(level zapcore.Level) zap.Config {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	enc.TimeKey = ""

	return zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       level == zapcore.DebugLevel,
		DisableStacktrace: true,
		Encoding:          "console",
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		EncoderConfig:     enc,
	}
}

// ParseLevel maps a level name to a zap level. Unknown names map to warn.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToUpper(level) {
	case "TRACE", "DEBUG":
		return zapcore.DebugLevel
	case "INFO":
		return zapcore.InfoLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}
