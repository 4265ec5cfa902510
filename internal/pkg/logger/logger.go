// Package logger builds the zap logger shared by every process.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a development logger when env is "development", a JSON
// production logger otherwise. An unparsable level falls back to info.
func New(env, level string) *zap.Logger {
	var cfg zap.Config
	if env == "development" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid LOG_LEVEL %q, defaulting to info\n", level)
		cfg.Level.SetLevel(zapcore.InfoLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build logger: %v, falling back to production defaults\n", err)
		l, _ = zap.NewProduction()
	}
	return l
}
