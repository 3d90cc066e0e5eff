package applog

import (
	"path/filepath"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

func TestParseLevelKnownNames(t *testing.T) {
	is := is.New(t)
	lvl, ok := ParseLevel(LevelDebug)
	is.True(ok)
	is.Equal(lvl, zerolog.DebugLevel)

	lvl, ok = ParseLevel(LevelNone)
	is.True(ok)
	is.Equal(lvl, zerolog.Disabled)
}

func TestParseLevelUnknownName(t *testing.T) {
	is := is.New(t)
	_, ok := ParseLevel("VERBOSE")
	is.True(!ok)
}

func TestLoggerPromotesOnQualifyingError(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "debug.log")
	logger, err := New(path, zerolog.ErrorLevel, true, zerolog.InfoLevel)
	is.NoErr(err)
	is.Equal(logger.zl.GetLevel(), zerolog.ErrorLevel)

	logger.Debugf("should be suppressed before promotion")
	logger.Errorf("triggering promotion")
	is.Equal(logger.zl.GetLevel(), zerolog.InfoLevel)
}

func TestLoggerDoesNotPromoteOnFilteredWarning(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "debug.log")
	logger, err := New(path, zerolog.ErrorLevel, true, zerolog.InfoLevel)
	is.NoErr(err)

	// At ERROR level a WARNING is filtered out before it's ever logged,
	// so it must not trigger a promotion either.
	logger.Warnf("never actually logged at this level")
	is.Equal(logger.zl.GetLevel(), zerolog.ErrorLevel)
}

func TestLoggerDoesNotPromoteWhenAdjustedLevelIsNotLooser(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "debug.log")
	logger, err := New(path, zerolog.InfoLevel, true, zerolog.WarnLevel)
	is.NoErr(err)

	// The message clears the INFO filter, but WARNING is stricter than
	// INFO, so promoting would tighten, not loosen, the active level.
	logger.Errorf("qualifies but adjusted_level is not looser")
	is.Equal(logger.zl.GetLevel(), zerolog.InfoLevel)
}

func TestLoggerDoesNotAdjustWhenDisabled(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "debug.log")
	logger, err := New(path, zerolog.ErrorLevel, false, zerolog.InfoLevel)
	is.NoErr(err)

	logger.Warnf("should not promote")
	is.Equal(logger.zl.GetLevel(), zerolog.ErrorLevel)
}
