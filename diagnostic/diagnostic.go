// Package diagnostic implements the mode 5 tool: read whitespace-
// separated hex (my, opp) pairs from a file, one pair per line, and log
// whatever the book holds for each.
package diagnostic

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Nikque/Edaxbook-findmismatch-error-check/book"
)

// Sink is the logging interface this package depends on.
type Sink = book.Sink

// Run reads one "<my-hex> <opp-hex>" pair per line from r and, for each,
// logs the matching book position's debug string if found, or a
// not-found line otherwise. Both branches log at ERROR level - this
// mirrors the source's choice to use its most visible log level for a
// tool that is itself only ever run interactively for debugging, not an
// actual error condition.
func Run(store *book.Store, r io.Reader, sink Sink) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) != 2 {
			sink.Errorf("diagnostic: invalid line format: %q", line)
			continue
		}
		my, err := strconv.ParseUint(fields[0], 16, 64)
		if err != nil {
			sink.Errorf("diagnostic: error parsing hex values: %q - %v", line, err)
			continue
		}
		opp, err := strconv.ParseUint(fields[1], 16, 64)
		if err != nil {
			sink.Errorf("diagnostic: error parsing hex values: %q - %v", line, err)
			continue
		}

		position, found := store.Get(book.Key{My: my, Opp: opp})
		if found {
			sink.Errorf("Position found - My stones: %s, Opponent stones: %s\n%s",
				fields[0], fields[1], position.DebugString())
		} else {
			sink.Errorf("Position not found - My stones: %s, Opponent stones: %s", fields[0], fields[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("diagnostic: reading input: %w", err)
	}
	return nil
}
