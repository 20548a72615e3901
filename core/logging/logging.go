// Package logging provides per-package zap loggers.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvFormat is the environment variable that selects log encoding.
// "console" selects human readable lines; anything else selects JSON.
const EnvFormat = EnvPrefix + "_FORMAT"

func newEncoder(format string) zapcore.Encoder {
	if format == "console" {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
		return zapcore.NewConsoleEncoder(cfg)
	}
	return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
}

var root = zap.New(zapcore.NewCore(newEncoder(os.Getenv(EnvFormat)), zapcore.Lock(os.Stderr), zap.DebugLevel))

// Named creates a named logger without package level filtering.
func Named(pkg string) *zap.Logger {
	return root.Named(pkg)
}

// New creates a logger filtered by the package log level.
// Each package declares it next to the package doc comment:
//  var logger = logging.New("Foo")
func New(pkg string) *zap.Logger {
	return Named(pkg).WithOptions(zap.IncreaseLevel(pkgLevel(pkg)))
}

// Sync flushes buffered log entries.
func Sync() {
	_ = root.Sync()
}
