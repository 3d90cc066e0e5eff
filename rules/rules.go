// Package rules implements the four consistency checks traversal runs on
// every (parent, move, child) triple it visits, and the threshold
// arithmetic the emitter needs to decide which lines a mismatch produces.
package rules

import "github.com/Nikque/Edaxbook-findmismatch-error-check/book"

// Mode selects which consistency relation traversal checks. Mode 5 (the
// hex-lookup diagnostic) is not a traversal mode and has no Result, so it
// is not a value of this type; config validates it separately.
type Mode int

const (
	Mode1 Mode = 1
	Mode2 Mode = 2
	Mode3 Mode = 3
	Mode4 Mode = 4
)

// Valid reports whether m is one of the four traversal modes.
func (m Mode) Valid() bool {
	return m >= Mode1 && m <= Mode4
}

// Result carries everything the emitter needs once a mode's check has
// run, whether or not it flagged a mismatch.
type Result struct {
	Mismatch  bool
	Threshold int8
	IsGreater bool
}

// Check evaluates mode's relation for one (parent, move, child) triple.
//
// child is the denormalized successor position (its links/leaf already
// rewritten back into the parent's coordinate frame). parent is the
// frame's current, unnormalized position, and move is the unnormalized
// outgoing move that reached child.
func Check(mode Mode, parent *book.Position, move uint8, child *book.Position) Result {
	maxChildMoveEval := child.MaxChildMoveEval()
	parentEvalForMove, _ := parent.EvalForMove(move)

	switch mode {
	case Mode1:
		return checkMode1(child)
	case Mode2:
		return checkThresholded(child.Eval != maxChildMoveEval, negate(child.Eval), maxChildMoveEval > child.Eval)
	case Mode3:
		return checkThresholded(parentEvalForMove != negate(child.Eval), negate(parentEvalForMove), negate(child.Eval) > parentEvalForMove)
	case Mode4:
		return checkThresholded(parentEvalForMove != negate(maxChildMoveEval), negate(parentEvalForMove), negate(maxChildMoveEval) > parentEvalForMove)
	default:
		return Result{}
	}
}

// checkMode1 flags a mismatch when child has at least one link and its
// leaf evaluation strictly beats the best link. Mode 1 has no threshold
// or is_greater notion - the emitter branches on mode before touching
// those fields.
func checkMode1(child *book.Position) Result {
	if len(child.Links) == 0 {
		return Result{}
	}
	best := int8(-64)
	for _, l := range child.Links {
		if l.Eval > best {
			best = l.Eval
		}
	}
	return Result{Mismatch: child.Leaf.Eval > best}
}

func checkThresholded(mismatch bool, threshold int8, isGreater bool) Result {
	return Result{Mismatch: mismatch, Threshold: threshold, IsGreater: isGreater}
}

func negate(e int8) int8 {
	if e == -128 {
		return 127
	}
	return -e
}
