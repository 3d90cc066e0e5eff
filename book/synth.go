package book

import (
	"fmt"

	"github.com/Nikque/Edaxbook-findmismatch-error-check/board"
)

// PassMove and EndOfGame are the two sentinel move values a traversal
// frame can see alongside the normal 0..63 range: 64 means "the side to
// move passed", 65 marks a terminal node and is never a legal argument
// to Synthesize.
const (
	PassMove  = 64
	EndOfGame = 65
)

// Synthesize derives the successor position reached by playing move out
// of current, along with the kifu fragment that move contributes and the
// negated evaluation the successor inherits from current's own eval.
//
// Pass (move == PassMove) swaps sides without touching the bitboards and
// contributes the literal "Pass" to the kifu. Any other move in 0..63
// flips the outflanked discs per board.FlipAll and contributes its
// algebraic coordinate. EndOfGame is never a legal move to synthesize
// from and is a programmer error if it reaches here.
func Synthesize(current *Position, move uint8) (successor Position, kifuFragment string, err error) {
	switch {
	case move == PassMove:
		successor = Position{
			My:   current.Opp,
			Opp:  current.My,
			Eval: negate(current.Eval),
		}
		return successor, "Pass", nil
	case move == EndOfGame:
		return Position{}, "", fmt.Errorf("book: cannot synthesize past end of game")
	case move > 63:
		return Position{}, "", fmt.Errorf("book: move %d is out of range", move)
	}

	bit := uint64(1) << board.MoveToBitIndex(move)
	flipped := board.FlipAll(current.My, current.Opp, bit)
	successor = Position{
		My:   current.Opp ^ flipped,
		Opp:  current.My | bit | flipped,
		Eval: negate(current.Eval),
	}
	return successor, board.AlgebraicMove(move), nil
}

func negate(e int8) int8 {
	if e == -128 {
		// -128 has no positive int8 counterpart; the source never
		// produces it since evals are validated to [-127, 127] on load.
		return 127
	}
	return -e
}
