// Package emit writes mismatch lines found during traversal to an
// append-only, BOM-prefixed UTF-8 file, one game-record kifu per line.
package emit

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/text/encoding/unicode"

	"github.com/Nikque/Edaxbook-findmismatch-error-check/board"
	"github.com/Nikque/Edaxbook-findmismatch-error-check/book"
	"github.com/Nikque/Edaxbook-findmismatch-error-check/rules"
)

// bomEncoding is the UTF-8 byte order mark the source prefixes the
// mismatch file with on its very first write.
var bomEncoding = unicode.UTF8BOM

// Writer appends mismatch lines to a file, writing the BOM exactly once
// regardless of how many Writer instances touch the file across a run -
// the check is "does the file have nonzero size yet", matching the
// source's open-append-and-check-tell pattern.
type Writer struct {
	path string
	mu   sync.Mutex
}

// NewWriter returns a Writer that appends to path, creating it (with a
// BOM) if it doesn't exist.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Emit opens the output file in append mode, writes the BOM if the file
// is currently empty, writes line with a trailing newline, and closes
// the file. Each call is independently safe to interleave with others on
// the same Writer.
func (w *Writer) Emit(line string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("emit: opening %s: %w", w.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("emit: stat %s: %w", w.path, err)
	}
	var out io.Writer = f
	if info.Size() == 0 {
		out = bomEncoding.NewEncoder().Writer(f)
	}
	if _, err := io.WriteString(out, line+"\n"); err != nil {
		return fmt.Errorf("emit: writing line to %s: %w", w.path, err)
	}
	return nil
}

// Mode1 emits the kifu extended with the leaf move that violated the
// rule, per §4.7's mode 1 branch.
func (w *Writer) Mode1(kifu string, leafMove uint8) error {
	return w.Emit(kifu + board.AlgebraicMove(leafMove))
}

// Thresholded emits the mode 2/3/4 lines for one mismatching child: if
// result.IsGreater, one line per link beating the threshold plus the
// leaf if it beats it too; otherwise exactly one line, for whichever
// single child move (preferring a link over the leaf) equals the
// child's max_child_move_eval.
func (w *Writer) Thresholded(kifu string, child *book.Position, result rules.Result) error {
	if result.IsGreater {
		for _, l := range child.Links {
			if l.Eval > result.Threshold {
				if err := w.Emit(kifu + board.AlgebraicMove(l.Move)); err != nil {
					return err
				}
			}
		}
		if child.Leaf.Eval > result.Threshold {
			if err := w.Emit(kifu + board.AlgebraicMove(child.Leaf.Move)); err != nil {
				return err
			}
		}
		return nil
	}

	target := child.MaxChildMoveEval()
	for _, l := range child.Links {
		if l.Eval == target {
			return w.Emit(kifu + board.AlgebraicMove(l.Move))
		}
	}
	if child.Leaf.Eval == target {
		return w.Emit(kifu + board.AlgebraicMove(child.Leaf.Move))
	}
	return nil
}
