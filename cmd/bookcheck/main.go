// Command bookcheck loads an opening book, walks it from the standard
// reversi opening, and reports every position where the configured
// consistency rule is violated - or, in mode 5, looks up a handful of
// positions by hex key pair for manual inspection.
package main

import (
	"fmt"
	"os"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/Nikque/Edaxbook-findmismatch-error-check/applog"
	"github.com/Nikque/Edaxbook-findmismatch-error-check/book"
	"github.com/Nikque/Edaxbook-findmismatch-error-check/cache"
	"github.com/Nikque/Edaxbook-findmismatch-error-check/config"
	"github.com/Nikque/Edaxbook-findmismatch-error-check/diagnostic"
	"github.com/Nikque/Edaxbook-findmismatch-error-check/emit"
	"github.com/Nikque/Edaxbook-findmismatch-error-check/rules"
	"github.com/Nikque/Edaxbook-findmismatch-error-check/traverse"
)

const configPath = "config.ini"

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("fatal error")
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	startLevel, _ := applog.ParseLevel(cfg.LogLevel)
	adjustedLevel, _ := applog.ParseLevel(cfg.AdjustedLevel)
	sink, err := applog.New(cfg.DebugLogPath, startLevel, cfg.AutoAdjustLevel, adjustedLevel)
	if err != nil {
		return fmt.Errorf("opening debug log: %w", err)
	}

	log.Info().Uint64("total_system_memory_bytes", memory.TotalMemory()).Msg("starting bookcheck")

	store, err := cache.Load(cfg.BookPath, func(path string) (*book.Store, error) {
		return loadBook(path, sink)
	})
	if err != nil {
		return fmt.Errorf("loading book: %w", err)
	}

	switch cfg.Mode {
	case 1, 2, 3, 4:
		mode := rules.Mode(cfg.Mode)
		writer := emit.NewWriter(cfg.OutputPath)
		traverseProgress := func(processed int) {
			fmt.Printf("\r%d links or leaf processed", processed)
		}
		stats, err := traverse.Run(store, mode, writer, sink, traverseProgress)
		fmt.Println()
		if err != nil {
			return fmt.Errorf("traversal: %w", err)
		}
		log.Info().
			Int("positions_visited", stats.PositionsVisited).
			Int("mismatches_found", stats.MismatchesFound).
			Msg("traversal finished")
		return nil
	case 5:
		f, err := os.Open(cfg.SpecifiedPositionsPath)
		if err != nil {
			return fmt.Errorf("opening specified positions file: %w", err)
		}
		defer f.Close()
		return diagnostic.Run(store, f, sink)
	default:
		return fmt.Errorf("invalid mode %d, must be between 1 and 5", cfg.Mode)
	}
}

func loadBook(path string, sink book.Sink) (*book.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	progress := func(loaded int) {
		fmt.Printf("\r%d positions loaded", loaded)
	}
	store, err := book.Load(f, info.Size(), sink, progress)
	fmt.Println()
	return store, err
}
