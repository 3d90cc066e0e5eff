// Package applog wraps zerolog behind the narrow logging interface the
// rest of this module depends on, plus the one piece of behavior the
// source adds on top of a plain logger: auto-adjusting the active level
// once a WARNING or above has actually fired.
package applog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/unicode"

	"github.com/Nikque/Edaxbook-findmismatch-error-check/book"
)

// Level names recognized by config, mapped onto zerolog's own levels.
const (
	LevelDebug   = "DEBUG"
	LevelInfo    = "INFO"
	LevelWarning = "WARNING"
	LevelError   = "ERROR"
	LevelNone    = "NONE"
)

// ParseLevel maps one of the closed level names to a zerolog.Level, with
// false as its second result if name isn't one of them. It never uses reflection - the
// level set is closed and small enough that explicit matching is
// clearer than a struct tag dance.
func ParseLevel(name string) (zerolog.Level, bool) {
	switch name {
	case LevelDebug:
		return zerolog.DebugLevel, true
	case LevelInfo:
		return zerolog.InfoLevel, true
	case LevelWarning:
		return zerolog.WarnLevel, true
	case LevelError:
		return zerolog.ErrorLevel, true
	case LevelNone:
		return zerolog.Disabled, true
	default:
		return zerolog.Disabled, false
	}
}

// Logger adapts a zerolog.Logger to book.Sink (also used by diagnostic
// and traverse), and implements the config-driven auto-adjust-level
// behavior: once a WARNING or above is actually emitted, if autoAdjust
// is set, the logger's level is promoted to adjustedLevel for the
// remainder of the run.
type Logger struct {
	zl            zerolog.Logger
	autoAdjust    bool
	adjustedLevel zerolog.Level
	adjusted      bool
}

var _ book.Sink = (*Logger)(nil)

// New builds a debug-log file sink (append mode, created if absent) at
// path, at the given starting level, with the given auto-adjust policy.
// The file is prefixed with a UTF-8 BOM on its first write, matching the
// mismatch emitter's convention for the same kind of append-only text file.
func New(path string, level zerolog.Level, autoAdjust bool, adjustedLevel zerolog.Level) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	var out io.Writer = f
	if info.Size() == 0 {
		out = unicode.UTF8BOM.NewEncoder().Writer(f)
	}
	writer := zerolog.ConsoleWriter{Out: out, NoColor: true}
	zl := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	return &Logger{zl: zl, autoAdjust: autoAdjust, adjustedLevel: adjustedLevel}, nil
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.zl.Debug().Msgf(format, args...)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.zl.Info().Msgf(format, args...)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.zl.Warn().Msgf(format, args...)
	l.promote(zerolog.WarnLevel)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.zl.Error().Msgf(format, args...)
	l.promote(zerolog.ErrorLevel)
}

// promote raises the active level to adjustedLevel the first time a
// message at level actually clears the current level filter, when
// auto-adjust is enabled - mirroring the source's own guard, which
// only evaluates the promotion at all when the message's own level
// passed `level >= log_level`, and only promotes when doing so would
// actually loosen the filter (`log_level > adjusted_level`). A Warnf
// call made while the active level is ERROR, for instance, returns here
// without promoting: the source would never have logged that message
// either.
func (l *Logger) promote(level zerolog.Level) {
	if !l.autoAdjust || l.adjusted {
		return
	}
	current := l.zl.GetLevel()
	if level < current {
		return
	}
	if l.adjustedLevel >= current {
		return
	}
	l.adjusted = true
	l.zl = l.zl.Level(l.adjustedLevel)
}
