package board

import "strconv"

// AlgebraicMove renders an internal move index (0..63) as its two-
// character algebraic coordinate, e.g. 0 -> "a1". Pass and None are not
// valid inputs; callers special-case those before reaching here, since
// a kifu represents a pass with the literal string "Pass" and never
// encodes None at all.
func AlgebraicMove(move uint8) string {
	col := byte('a' + move%8)
	row := int(move/8) + 1
	return string([]byte{col}) + strconv.Itoa(row)
}
