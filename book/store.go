package book

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Nikque/Edaxbook-findmismatch-error-check/board"
)

// headerSize is the number of opaque bytes at the start of a book file,
// skipped on load.
const headerSize = 42

// avgEntrySize is the empirically measured average on-disk size of one
// book entry, used only to size the store's initial bucket count; it is
// not exact (entries vary in size with their link count) but close
// enough to avoid rehashing during load.
const avgEntrySize = 44.0720

// loadFactor is the reservation headroom applied on top of the estimated
// entry count.
const loadFactor = 1.10

// EstimateEntries returns the expected number of book entries for a file
// of the given size, used to pre-size the store before streaming it in.
func EstimateEntries(fileSize int64) int {
	return int(float64(fileSize) / avgEntrySize * loadFactor)
}

// Sink receives the same four log levels the book's config recognizes.
// Core packages depend on this narrow interface, not on a concrete
// logging library, so they stay testable without one.
type Sink interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type nopSink struct{}

func (nopSink) Debugf(string, ...interface{}) {}
func (nopSink) Infof(string, ...interface{})  {}
func (nopSink) Warnf(string, ...interface{})  {}
func (nopSink) Errorf(string, ...interface{}) {}

// NopSink is a Sink that discards everything, useful in tests.
var NopSink Sink = nopSink{}

// Store is the in-memory book: a map from canonical (my, opp) to
// Position, built once at load time and mutated afterwards only through
// its two visited-flag setters.
type Store struct {
	positions map[Key]*Position
}

// NewStore returns an empty store with no pre-sizing; prefer Load for a
// book file, which pre-sizes from the file's length.
func NewStore() *Store {
	return &Store{positions: make(map[Key]*Position)}
}

// ProgressFunc is called periodically during Load with the number of
// entries read so far. It exists so callers can drive a console spinner
// without Load itself knowing about a terminal.
type ProgressFunc func(loaded int)

// Load streams entries out of r (a raw book file, already positioned at
// byte 0) into a freshly pre-sized Store. fileSize drives the bucket
// reservation; it is normally the book file's length on disk.
//
// Each entry's raw eval is validated to fit in an int8's range
// ([-127, 127]); a violation is a load error and aborts the load (the
// source treats this as fatal because a corrupt book makes every
// downstream comparison meaningless).
func Load(r io.Reader, fileSize int64, sink Sink, progress ProgressFunc) (*Store, error) {
	if sink == nil {
		sink = NopSink
	}
	br := bufio.NewReaderSize(r, 1<<20)

	if _, err := io.CopyN(io.Discard, br, headerSize); err != nil {
		wrapped := fmt.Errorf("book: reading header: %w", err)
		sink.Errorf("%v", wrapped)
		return nil, wrapped
	}

	estimated := EstimateEntries(fileSize)
	sink.Debugf("estimated book entries: %d (load factor %.2f)", estimated, loadFactor)

	store := &Store{positions: make(map[Key]*Position, estimated)}

	loaded := 0
	for {
		entry, err := readEntry(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			sink.Errorf("book: loading entry %d: %v", loaded, err)
			return nil, err
		}
		store.positions[Key{My: entry.My, Opp: entry.Opp}] = entry
		loaded++
		if progress != nil && loaded%100000 == 0 {
			progress(loaded)
		}
	}
	if progress != nil {
		progress(loaded)
	}
	sink.Infof("loaded %d book positions", loaded)
	return store, nil
}

func readEntry(r *bufio.Reader) (*Position, error) {
	var my, opp uint64
	if err := binary.Read(r, binary.LittleEndian, &my); err != nil {
		return nil, ioErr(err)
	}
	if err := binary.Read(r, binary.LittleEndian, &opp); err != nil {
		return nil, ioErr(err)
	}
	if _, err := io.CopyN(io.Discard, r, 16); err != nil { // win/draw/loss/line counts
		return nil, ioErr(err)
	}
	var rawEval int16
	if err := binary.Read(r, binary.LittleEndian, &rawEval); err != nil {
		return nil, ioErr(err)
	}
	if rawEval < -127 || rawEval > 127 {
		return nil, fmt.Errorf("book: eval %d out of int8 range", rawEval)
	}
	if _, err := io.CopyN(io.Discard, r, 4); err != nil { // min/max value
		return nil, ioErr(err)
	}
	var nLinks uint8
	if err := binary.Read(r, binary.LittleEndian, &nLinks); err != nil {
		return nil, ioErr(err)
	}
	if _, err := io.CopyN(io.Discard, r, 1); err != nil { // level
		return nil, ioErr(err)
	}

	links := make([]Link, nLinks)
	for i := range links {
		var linkEval int8
		var linkMove uint8
		if err := binary.Read(r, binary.LittleEndian, &linkEval); err != nil {
			return nil, ioErr(err)
		}
		if err := binary.Read(r, binary.LittleEndian, &linkMove); err != nil {
			return nil, ioErr(err)
		}
		links[i] = Link{Move: board.RotateMove180(linkMove), Eval: linkEval}
	}

	var leafEval int8
	var leafMove uint8
	if err := binary.Read(r, binary.LittleEndian, &leafEval); err != nil {
		return nil, ioErr(err)
	}
	if err := binary.Read(r, binary.LittleEndian, &leafMove); err != nil {
		return nil, ioErr(err)
	}

	return &Position{
		My:    my,
		Opp:   opp,
		Links: links,
		Leaf:  Leaf{Move: board.RotateMove180(leafMove), Eval: leafEval},
		Eval:  int8(rawEval),
	}, nil
}

// ioErr normalizes a mid-entry io.ErrUnexpectedEOF (a truncated file)
// into io.EOF so Load's loop treats "file ended partway through an
// entry" and "file ended exactly on an entry boundary" the same way the
// source's fread-based loop does.
func ioErr(err error) error {
	if err == io.ErrUnexpectedEOF {
		return io.EOF
	}
	return err
}

// Put inserts or replaces the entry for p's own key. It exists for
// tests that build small stores without going through Load.
func (s *Store) Put(p *Position) {
	s.positions[p.Key()] = p
}

// Get performs a read-only lookup by canonical key.
func (s *Store) Get(key Key) (*Position, bool) {
	p, ok := s.positions[key]
	return p, ok
}

// Len reports how many positions the store holds.
func (s *Store) Len() int {
	return len(s.positions)
}

// MarkVisited finds the entry at key and marks the first link whose move
// equals move as visited; failing that, marks the leaf visited if its
// move matches. It reports whether anything was updated. This is the
// book-global, cross-frame visited write that traverse's walk makes - the
// only mutation that persists across the whole run.
func (s *Store) MarkVisited(key Key, move uint8) bool {
	p, ok := s.positions[key]
	if !ok {
		return false
	}
	for i := range p.Links {
		if p.Links[i].Move == move {
			p.Links[i].Visited = true
			return true
		}
	}
	if p.Leaf.Move == move {
		p.Leaf.Visited = true
		return true
	}
	return false
}
