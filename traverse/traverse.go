// Package traverse walks the opening book depth-first from the standard
// reversi opening, running a consistency rule on every (parent, move,
// child) triple it visits and reporting rule violations to an emitter.
package traverse

import (
	"fmt"
	"time"

	"github.com/Nikque/Edaxbook-findmismatch-error-check/board"
	"github.com/Nikque/Edaxbook-findmismatch-error-check/book"
	"github.com/Nikque/Edaxbook-findmismatch-error-check/rules"
)

// RootMy and RootOpp are the standard reversi opening position, the
// fixed starting point of every run.
const (
	RootMy  = uint64(0x0000000810000000)
	RootOpp = uint64(0x0000001008000000)
)

// Sink is the narrow logging interface traverse depends on; book.Sink
// satisfies the same shape, so callers can pass one sink through both.
type Sink = book.Sink

// Emitter is what the emit package's Writer provides: the two line-
// production paths traverse's consistency check can trigger.
type Emitter interface {
	Mode1(kifu string, leafMove uint8) error
	Thresholded(kifu string, child *book.Position, result rules.Result) error
}

// Stats accumulates counters over a full run, for a final summary log
// line; it has no effect on traversal behavior.
type Stats struct {
	PositionsVisited int
	MovesSynthesized int
	MismatchesFound  int
	ChildrenNotFound int
}

// ProgressFunc is called periodically during Run with the number of
// links/leaves processed so far, mirroring book.ProgressFunc's shape for
// the load phase; callers not interested in a progress line pass nil.
type ProgressFunc func(processed int)

// Run starts a depth-first traversal from the fixed root and returns
// once the root frame has exhausted its moves. The run's wall-clock
// duration is logged at WARNING on completion - not INFO. Like any
// WARNING message, it is filtered out when the log level is ERROR or
// NONE.
func Run(store *book.Store, mode rules.Mode, emitter Emitter, sink Sink, progress ProgressFunc) (Stats, error) {
	if sink == nil {
		sink = book.NopSink
	}
	stats := &Stats{}
	start := time.Now()

	root, found := denormalizedLookup(store, RootMy, RootOpp)
	if !found {
		sink.Errorf("traverse: root position not found in book")
		return *stats, fmt.Errorf("traverse: root position not found in book")
	}

	if err := walk(store, mode, emitter, sink, progress, root, "", stats); err != nil {
		return *stats, err
	}
	sink.Infof("traversal complete: %d positions, %d moves, %d mismatches, %d children not found",
		stats.PositionsVisited, stats.MovesSynthesized, stats.MismatchesFound, stats.ChildrenNotFound)
	sink.Warnf("traversal took %s", time.Since(start))
	return *stats, nil
}

// denormalizedLookup normalizes (my, opp), looks the canonical entry up
// in store, and - if found - reconstructs a Position whose (my, opp) are
// the caller's raw, unnormalized pair and whose links/leaf/eval are the
// stored entry's, with every move transformed back into the raw frame.
func denormalizedLookup(store *book.Store, my, opp uint64) (*book.Position, bool) {
	normMy, normOpp, tag := board.Normalize(my, opp)
	stored, ok := store.Get(book.Key{My: normMy, Opp: normOpp})
	if !ok {
		return nil, false
	}
	links := make([]book.Link, len(stored.Links))
	for i, l := range stored.Links {
		links[i] = book.Link{
			Move:    board.InvertTagOnMove(l.Move, tag),
			Eval:    l.Eval,
			Visited: l.Visited,
		}
	}
	leaf := book.Leaf{
		Move:    board.InvertTagOnMove(stored.Leaf.Move, tag),
		Eval:    stored.Leaf.Eval,
		Visited: stored.Leaf.Visited,
	}
	return &book.Position{My: my, Opp: opp, Links: links, Leaf: leaf, Eval: stored.Eval}, true
}

// selection is one eligible (move, isLeaf) pair pulled off current by
// nextSelection, consumed one at a time by walk's loop.
type selection struct {
	move   uint8
	isLeaf bool
}

// nextSelection returns the next eligible move out of current per the
// iteration policy - links in stored order first, skipping visited
// ones, then the leaf, skipping it when visited, when its move is
// EndOfGame, or when it is the empty-leaf sentinel - or false if none
// remain.
func nextSelection(current *book.Position) (selection, bool) {
	for i := range current.Links {
		if !current.Links[i].Visited {
			return selection{move: current.Links[i].Move, isLeaf: false}, true
		}
	}
	if !current.Leaf.Visited && current.Leaf.Move != book.EndOfGame && !current.LeafIsAbsent() {
		return selection{move: current.Leaf.Move, isLeaf: true}, true
	}
	return selection{}, false
}

func markFrameVisited(current *book.Position, sel selection) {
	if sel.isLeaf {
		current.Leaf.Visited = true
		return
	}
	for i := range current.Links {
		if current.Links[i].Move == sel.move && !current.Links[i].Visited {
			current.Links[i].Visited = true
			return
		}
	}
}

func walk(store *book.Store, mode rules.Mode, emitter Emitter, sink Sink, progress ProgressFunc, current *book.Position, kifu string, stats *Stats) error {
	stats.PositionsVisited++

	kifu = stripTrailingPass(kifu)

	frame := current.Copy()

	for {
		sel, ok := nextSelection(&frame)
		if !ok {
			return nil
		}
		markFrameVisited(&frame, sel)
		stats.MovesSynthesized++
		if progress != nil && stats.MovesSynthesized%100000 == 0 {
			progress(stats.MovesSynthesized)
		}

		childRaw, newKifuFragment, err := book.Synthesize(current, sel.move)
		if err != nil {
			sink.Errorf("traverse: synthesizing move %d: %v", sel.move, err)
			continue
		}
		newKifu := kifu + newKifuFragment

		parentNormMy, parentNormOpp, parentTag := board.Normalize(current.My, current.Opp)
		parentNormKey := book.Key{My: parentNormMy, Opp: parentNormOpp}
		if _, ok := store.Get(parentNormKey); !ok {
			sink.Errorf("traverse: normalized parent not found in book for move %d", sel.move)
			return fmt.Errorf("traverse: normalized parent position not found in book")
		}
		normalizedMove, err := board.ApplyTagToMove(sel.move, parentTag)
		if err != nil {
			sink.Errorf("traverse: normalizing move %d: %v", sel.move, err)
			return fmt.Errorf("traverse: normalizing move %d: %w", sel.move, err)
		}
		store.MarkVisited(parentNormKey, normalizedMove)

		childDenorm, found := denormalizedLookup(store, childRaw.My, childRaw.Opp)
		if !found {
			stats.ChildrenNotFound++
			sink.Debugf("traverse: child not found for move %d from kifu %q", sel.move, kifu)
			continue
		}

		result := rules.Check(mode, current, sel.move, childDenorm)
		if result.Mismatch {
			stats.MismatchesFound++
			if err := reportMismatch(mode, emitter, newKifu, childDenorm, result); err != nil {
				sink.Errorf("traverse: emitting mismatch: %v", err)
			}
		}

		if err := walk(store, mode, emitter, sink, progress, childDenorm, newKifu, stats); err != nil {
			return err
		}
	}
}

func reportMismatch(mode rules.Mode, emitter Emitter, kifu string, child *book.Position, result rules.Result) error {
	if mode == rules.Mode1 {
		return emitter.Mode1(kifu, child.Leaf.Move)
	}
	return emitter.Thresholded(kifu, child, result)
}

func stripTrailingPass(kifu string) string {
	const suffix = "Pass"
	if len(kifu) >= len(suffix) && kifu[len(kifu)-len(suffix):] == suffix {
		return kifu[:len(kifu)-len(suffix)]
	}
	return kifu
}
