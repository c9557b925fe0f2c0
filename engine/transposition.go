package engine

import (
	"math/bits"

	"github.com/daystram/sparring/board"
)

type EntryType uint8

const (
	EntryTypeUnknown EntryType = iota
	EntryTypeExact
	EntryTypeLowerBound
	EntryTypeUpperBound
)

const DefaultHashTableSize = 1 << 20 // number of entries

// TranspositionTable caches search results keyed by position hash and side to move.
// Capacity is fixed; a slot keeps the deeper of two colliding entries.
type TranspositionTable struct {
	table    []entry
	size     uint64
	maskHash uint64

	// stats
	hits   int
	misses int
	writes int
}

type entry struct {
	typ   EntryType
	mv    board.Move
	score int32
	depth uint8
	key   uint64
}

// NewTranspositionTable allocates a table of size entries, rounded up to a power of two.
func NewTranspositionTable(size uint64) *TranspositionTable {
	if size == 0 {
		size = DefaultHashTableSize
	}
	if size&(size-1) != 0 {
		size = 1 << bits.Len64(size)
	}
	return &TranspositionTable{
		table:    make([]entry, size),
		size:     size,
		maskHash: size - 1,
	}
}

func (t *TranspositionTable) Set(key uint64, typ EntryType, mv board.Move, score int32, depth uint8) {
	e := &t.table[key&t.maskHash]
	if e.typ != EntryTypeUnknown && e.key != key && e.depth > depth {
		return
	}
	t.writes++
	*e = entry{
		typ:   typ,
		mv:    mv,
		score: score,
		depth: depth,
		key:   key,
	}
}

func (t *TranspositionTable) Get(key uint64) (EntryType, board.Move, int32, uint8, bool) {
	e := t.table[key&t.maskHash]
	if e.typ == EntryTypeUnknown || e.key != key {
		t.misses++
		return EntryTypeUnknown, board.Move{}, 0, 0, false
	}
	t.hits++
	return e.typ, e.mv, e.score, e.depth, true
}

func (t *TranspositionTable) Size() uint64 {
	return t.size
}

func (t *TranspositionTable) Clear() {
	clear(t.table)
	t.ResetStats()
}

func (t *TranspositionTable) ResetStats() {
	t.hits = 0
	t.misses = 0
	t.writes = 0
}

func (t *TranspositionTable) Stats() (int, int, int) {
	return t.hits, t.misses, t.writes
}
