package board

import "fmt"

// Tag names one of the eight D4 symmetry transforms applied to a
// bitboard pair (and, via ApplyTagToMove/InvertTagOnMove, to a move
// index) on the way to or from a book-canonical position.
type Tag uint8

const (
	TagIdentity Tag = iota
	TagRotate90
	TagRotate180
	TagRotate270
	TagFlipVertical
	TagFlipHorizontal
	TagFlipDiagA1H8
	TagFlipDiagA8H1
)

func (t Tag) String() string {
	switch t {
	case TagIdentity:
		return "identity"
	case TagRotate90:
		return "rotate_90"
	case TagRotate180:
		return "rotate_180"
	case TagRotate270:
		return "rotate_270"
	case TagFlipVertical:
		return "flip_vertical"
	case TagFlipHorizontal:
		return "flip_horizontal"
	case TagFlipDiagA1H8:
		return "flip_diag_a1h8"
	case TagFlipDiagA8H1:
		return "flip_diag_a8h1"
	default:
		return "unknown"
	}
}

// deltaSwap is the standard bit-permutation building block: swap, across
// every pair of bits mask/Delta apart, under mask.
func deltaSwap(x, mask uint64, delta uint) uint64 {
	t := (x ^ (x >> delta)) & mask
	return x ^ t ^ (t << delta)
}

// FlipHorizontal mirrors the board left-right (reverses each rank).
func FlipHorizontal(x uint64) uint64 {
	x = deltaSwap(x, 0x0f0f0f0f0f0f0f0f, 4)
	x = deltaSwap(x, 0x3333333333333333, 2)
	x = deltaSwap(x, 0x5555555555555555, 1)
	return x
}

// FlipVertical mirrors the board top-bottom (reverses the file order).
func FlipVertical(x uint64) uint64 {
	x = deltaSwap(x, 0x00ff00ff00ff00ff, 8)
	x = deltaSwap(x, 0x0000ffff0000ffff, 16)
	x = deltaSwap(x, 0x00000000ffffffff, 32)
	return x
}

// FlipDiagA1H8 transposes the board across the a1-h8 diagonal.
func FlipDiagA1H8(x uint64) uint64 {
	x = deltaSwap(x, 0x00aa00aa00aa00aa, 7)
	x = deltaSwap(x, 0x0000cccc0000cccc, 14)
	x = deltaSwap(x, 0x00000000f0f0f0f0, 28)
	return x
}

// FlipDiagA8H1 transposes the board across the a8-h1 diagonal.
func FlipDiagA8H1(x uint64) uint64 {
	x = deltaSwap(x, 0x0055005500550055, 9)
	x = deltaSwap(x, 0x0000333300003333, 18)
	x = deltaSwap(x, 0x000000000f0f0f0f, 36)
	return x
}

// Rotate90 rotates the board 90 degrees clockwise.
func Rotate90(x uint64) uint64 { return FlipHorizontal(FlipDiagA1H8(x)) }

// Rotate270 rotates the board 270 degrees clockwise (90 counterclockwise).
func Rotate270(x uint64) uint64 { return FlipVertical(FlipDiagA1H8(x)) }

// Rotate180 rotates the board 180 degrees.
func Rotate180(x uint64) uint64 { return FlipVertical(FlipHorizontal(x)) }

func transform(tag Tag, x uint64) uint64 {
	switch tag {
	case TagIdentity:
		return x
	case TagRotate90:
		return Rotate90(x)
	case TagRotate180:
		return Rotate180(x)
	case TagRotate270:
		return Rotate270(x)
	case TagFlipVertical:
		return FlipVertical(x)
	case TagFlipHorizontal:
		return FlipHorizontal(x)
	case TagFlipDiagA1H8:
		return FlipDiagA1H8(x)
	case TagFlipDiagA8H1:
		return FlipDiagA8H1(x)
	default:
		return x
	}
}

// allTags fixes the iteration order Normalize checks candidates in. Ties
// with a strictly smaller non-identity candidate are broken by this
// order rather than by hash-map iteration order as in the original tool;
// identity still wins any tie against a non-identity transform, per
// spec.
var allTags = [8]Tag{
	TagIdentity, TagRotate90, TagRotate180, TagRotate270,
	TagFlipVertical, TagFlipHorizontal, TagFlipDiagA1H8, TagFlipDiagA8H1,
}

// Normalize returns the lexicographically smallest of the eight D4
// images of (my, opp), comparing as the tuple (my, opp), and the tag of
// the transform that produced it. Ties prefer identity, then whichever
// non-identity transform is encountered first in allTags.
func Normalize(my, opp uint64) (nmy, nopp uint64, tag Tag) {
	nmy, nopp, tag = my, opp, TagIdentity
	for _, t := range allTags[1:] {
		tmy, topp := transform(t, my), transform(t, opp)
		if tmy < nmy || (tmy == nmy && topp < nopp) {
			nmy, nopp, tag = tmy, topp, t
		}
	}
	return
}

func rotateMove90(m int) int  { return (m%8)*8 + (7 - m/8) }
func rotateMove270(m int) int { return (7-m%8)*8 + m/8 }
func flipMoveVertical(m int) int   { return (7-m/8)*8 + m%8 }
func flipMoveHorizontal(m int) int { return (m/8)*8 + (7 - m%8) }
func flipMoveDiagA1H8(m int) int   { return (m%8)*8 + m/8 }
func flipMoveDiagA8H1(m int) int   { return (7-m%8)*8 + (7 - m/8) }

// RotateMove180 is the 180-degree move-index transform, m' = 63-m. It is
// exported because the book loader applies it to every on-disk move
// value to convert the file's move convention into the one used
// internally (see MoveToBitIndex's doc comment). Pass and None pass
// through unchanged.
func RotateMove180(move uint8) uint8 {
	if move >= 64 {
		return move
	}
	return 63 - move
}

func applyMoveTransform(tag Tag, m int) int {
	switch tag {
	case TagIdentity:
		return m
	case TagRotate90:
		return rotateMove90(m)
	case TagRotate180:
		return int(RotateMove180(uint8(m)))
	case TagRotate270:
		return rotateMove270(m)
	case TagFlipVertical:
		return flipMoveVertical(m)
	case TagFlipHorizontal:
		return flipMoveHorizontal(m)
	case TagFlipDiagA1H8:
		return flipMoveDiagA1H8(m)
	case TagFlipDiagA8H1:
		return flipMoveDiagA8H1(m)
	default:
		return m
	}
}

// inverseTag returns the tag whose transform undoes tag. Rotate90 and
// Rotate270 are each other's inverse; every other tag, identity
// included, is self-inverse.
func inverseTag(tag Tag) Tag {
	switch tag {
	case TagRotate90:
		return TagRotate270
	case TagRotate270:
		return TagRotate90
	default:
		return tag
	}
}

// ApplyTagToMove maps a move index through tag's move-index transform.
// Pass maps to itself under every transform. None reaching here is the
// structural invariant violation spec.md calls "move==65 reached at
// normalize time" - callers must report it through their own Sink and
// treat it as fatal rather than letting it surface as a panic.
func ApplyTagToMove(move uint8, tag Tag) (uint8, error) {
	if move == Pass {
		return Pass, nil
	}
	if move == None {
		return 0, fmt.Errorf("board: ApplyTagToMove called with None")
	}
	return uint8(applyMoveTransform(tag, int(move))), nil
}

// InvertTagOnMove maps a move index through the inverse of tag's
// move-index transform, to recover an unnormalized move from one
// expressed in a normalized position's frame. Pass and None both pass
// through unchanged; None occurs here legitimately (an absent leaf
// denormalizes to itself).
func InvertTagOnMove(move uint8, tag Tag) uint8 {
	if move == Pass || move == None {
		return move
	}
	return uint8(applyMoveTransform(inverseTag(tag), int(move)))
}
