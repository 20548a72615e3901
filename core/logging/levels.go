package logging

import (
	"os"
	"sync"
	"unicode"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix is the prefix of environment variables that configure log levels.
// EnvPrefix+"_"+pkg sets the level of one package; EnvPrefix alone sets the default.
const EnvPrefix = "PARHIST_LOG"

var (
	levelsMutex sync.Mutex
	levels      = map[string]zap.AtomicLevel{}
)

// ParseLevel converts a level name to a zap level.
//
// Only the first letter is significant, in either case:
// V/D for debug, I for info, W for warning, E for error, F/N for fatal only.
// Anything else, including the empty string, means info.
func ParseLevel(input string) zapcore.Level {
	if input == "" {
		return zap.InfoLevel
	}
	switch unicode.ToUpper(rune(input[0])) {
	case 'V', 'D':
		return zap.DebugLevel
	case 'W':
		return zap.WarnLevel
	case 'E':
		return zap.ErrorLevel
	case 'F', 'N':
		return zap.DPanicLevel
	}
	return zap.InfoLevel
}

// SetLevel changes the level of a package logger.
// If pkg is empty, every package logger created so far is changed.
func SetLevel(pkg, input string) {
	lvl := ParseLevel(input)
	if pkg != "" {
		pkgLevel(pkg).SetLevel(lvl)
		return
	}

	levelsMutex.Lock()
	defer levelsMutex.Unlock()
	for _, al := range levels {
		al.SetLevel(lvl)
	}
}

func pkgLevel(pkg string) zap.AtomicLevel {
	levelsMutex.Lock()
	defer levelsMutex.Unlock()
	al, ok := levels[pkg]
	if !ok {
		al = zap.NewAtomicLevelAt(ParseLevel(envLevel(pkg)))
		levels[pkg] = al
	}
	return al
}

func envLevel(pkg string) string {
	if v, ok := os.LookupEnv(EnvPrefix + "_" + pkg); ok {
		return v
	}
	return os.Getenv(EnvPrefix)
}
