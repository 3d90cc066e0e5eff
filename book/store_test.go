package book

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/matryer/is"
)

func writeEntry(buf *bytes.Buffer, my, opp uint64, eval int16, links []Link, leafEval int8, leafMove uint8) {
	binary.Write(buf, binary.LittleEndian, my)
	binary.Write(buf, binary.LittleEndian, opp)
	buf.Write(make([]byte, 16))
	binary.Write(buf, binary.LittleEndian, eval)
	buf.Write(make([]byte, 4))
	binary.Write(buf, binary.LittleEndian, uint8(len(links)))
	buf.Write(make([]byte, 1))
	for _, l := range links {
		binary.Write(buf, binary.LittleEndian, l.Eval)
		// the loader applies RotateMove180 on read, so the raw on-disk
		// move must be the rotated form of the move we expect back out.
		binary.Write(buf, binary.LittleEndian, uint8(63-l.Move))
	}
	binary.Write(buf, binary.LittleEndian, leafEval)
	binary.Write(buf, binary.LittleEndian, uint8(63-leafMove))
}

func TestLoadSingleEntry(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	buf.Write(make([]byte, headerSize))
	writeEntry(&buf, 0x1, 0x2, 10, []Link{{Move: 5, Eval: 3}, {Move: 6, Eval: -1}}, 7, 8)

	store, err := Load(&buf, int64(buf.Len()), NopSink, nil)
	is.NoErr(err)
	is.Equal(store.Len(), 1)

	p, ok := store.Get(Key{My: 0x1, Opp: 0x2})
	is.True(ok)
	is.Equal(p.Eval, int8(10))
	is.Equal(len(p.Links), 2)
	is.Equal(p.Links[0].Move, uint8(5))
	is.Equal(p.Links[1].Move, uint8(6))
	is.Equal(p.Leaf.Move, uint8(8))
	is.Equal(p.Leaf.Eval, int8(7))
}

func TestLoadMultipleEntries(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	buf.Write(make([]byte, headerSize))
	writeEntry(&buf, 0x1, 0x2, 10, nil, 0, 8)
	writeEntry(&buf, 0x3, 0x4, -20, []Link{{Move: 1, Eval: 1}}, 0, 8)

	store, err := Load(&buf, int64(buf.Len()), NopSink, nil)
	is.NoErr(err)
	is.Equal(store.Len(), 2)
}

func TestLoadRejectsOutOfRangeEval(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	buf.Write(make([]byte, headerSize))
	writeEntry(&buf, 0x1, 0x2, 200, nil, 0, 0)

	_, err := Load(&buf, int64(buf.Len()), NopSink, nil)
	is.True(err != nil)
}

func TestMarkVisitedLinkThenLeaf(t *testing.T) {
	is := is.New(t)
	store := NewStore()
	key := Key{My: 0x1, Opp: 0x2}
	store.positions[key] = &Position{
		My: 0x1, Opp: 0x2,
		Links: []Link{{Move: 5, Eval: 3}},
		Leaf:  Leaf{Move: 8, Eval: 7},
	}

	is.True(store.MarkVisited(key, 5))
	p, _ := store.Get(key)
	is.True(p.Links[0].Visited)

	is.True(store.MarkVisited(key, 8))
	is.True(p.Leaf.Visited)

	is.True(!store.MarkVisited(key, 40))
	is.True(!store.MarkVisited(Key{My: 99, Opp: 99}, 5))
}

func TestEstimateEntries(t *testing.T) {
	is := is.New(t)
	is.True(EstimateEntries(44072000) > 900000)
}
