package rules

import (
	"testing"

	"github.com/Nikque/Edaxbook-findmismatch-error-check/book"
	"github.com/matryer/is"
)

func TestMode1FlagsLeafExceedingLinks(t *testing.T) {
	is := is.New(t)
	child := &book.Position{
		Links: []book.Link{{Move: 1, Eval: -4}, {Move: 2, Eval: -2}},
		Leaf:  book.Leaf{Move: 3, Eval: 1},
	}
	result := Check(Mode1, &book.Position{}, 0, child)
	is.True(result.Mismatch)
}

func TestMode1NoMismatchWhenLeafDoesNotExceed(t *testing.T) {
	is := is.New(t)
	child := &book.Position{
		Links: []book.Link{{Move: 1, Eval: 4}},
		Leaf:  book.Leaf{Move: 3, Eval: 1},
	}
	result := Check(Mode1, &book.Position{}, 0, child)
	is.True(!result.Mismatch)
}

func TestMode1NoMismatchWithoutLinks(t *testing.T) {
	is := is.New(t)
	child := &book.Position{Leaf: book.Leaf{Move: 3, Eval: 100}}
	result := Check(Mode1, &book.Position{}, 0, child)
	is.True(!result.Mismatch)
}

func TestMode2SelfConsistency(t *testing.T) {
	is := is.New(t)
	child := &book.Position{
		Eval:  1,
		Links: []book.Link{{Move: 1, Eval: -4}, {Move: 2, Eval: 2}},
	}
	result := Check(Mode2, &book.Position{}, 0, child)
	is.True(result.Mismatch)
	is.Equal(result.Threshold, int8(-1))
	is.True(result.IsGreater)
}

func TestMode2Consistent(t *testing.T) {
	is := is.New(t)
	child := &book.Position{
		Eval:  2,
		Links: []book.Link{{Move: 1, Eval: -4}, {Move: 2, Eval: 2}},
	}
	result := Check(Mode2, &book.Position{}, 0, child)
	is.True(!result.Mismatch)
}

func TestMode3Negamax(t *testing.T) {
	is := is.New(t)
	parent := &book.Position{Links: []book.Link{{Move: 5, Eval: 2}}}
	child := &book.Position{Eval: 1}
	result := Check(Mode3, parent, 5, child)
	is.True(result.Mismatch)
	is.Equal(result.Threshold, int8(-2))
}

func TestMode3ConsistentTwoPly(t *testing.T) {
	is := is.New(t)
	parent := &book.Position{Links: []book.Link{{Move: 5, Eval: 2}}}
	child := &book.Position{Eval: -2}
	result := Check(Mode3, parent, 5, child)
	is.True(!result.Mismatch)
}

func TestMode4UsesMaxChildMoveEval(t *testing.T) {
	is := is.New(t)
	parent := &book.Position{Links: []book.Link{{Move: 5, Eval: 2}}}
	child := &book.Position{Eval: -9, Links: []book.Link{{Move: 1, Eval: 3}}}
	result := Check(Mode4, parent, 5, child)
	is.True(result.Mismatch)
	is.Equal(result.Threshold, int8(-2))
	// -max_child_move_eval is -3, which does not beat the parent's 2; a
	// check on child.Eval (-(-9) = 9 > 2) would have said the opposite.
	is.True(!result.IsGreater)
}

func TestModeValidity(t *testing.T) {
	is := is.New(t)
	is.True(Mode1.Valid())
	is.True(Mode4.Valid())
	is.True(!Mode(5).Valid())
	is.True(!Mode(0).Valid())
}
