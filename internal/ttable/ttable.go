// Package ttable is the search package's transposition table: a
// concurrent, fingerprint-keyed cache of prior search results. Grounded
// on the teacher's internal/engine/transposition.go Entry shape
// (depth/score/bound/best-move) and AdjustScoreFromTT/AdjustScoreToTT
// mate-ply handling, but backed by dgraph-io/ristretto/v2 instead of an
// unsynchronized flat array, since the parallel root search (§4.6) needs
// a table that many goroutines can probe and store into concurrently.
package ttable

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/ristretto/v2"

	"github.com/jatayl/checkers/internal/board"
)

// Bound classifies how Score relates to the (alpha, beta) window that was
// open when the entry was stored.
type Bound uint8

const (
	Exact Bound = iota
	Lower
	Upper
)

// Entry is one stored search result.
type Entry struct {
	Depth int
	Score int32
	Bound Bound
	Best  board.Move
}

// Table is a concurrent transposition table.
type Table struct {
	cache *ristretto.Cache[uint64, Entry]
}

// New creates a table sized for roughly maxEntries resident entries.
// Cost is counted as 1 per entry, matching the teacher's fixed-size
// flat-array table sized by entry count rather than byte size.
func New(maxEntries int64) (*Table, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[uint64, Entry]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Table{cache: cache}, nil
}

// Close releases the table's background resources.
func (t *Table) Close() { t.cache.Close() }

// Key fingerprints a position as the xxhash of its canonical encoding:
// the three occupancy masks as little-endian uint32s, then the turn
// byte (§4.5).
func Key(p board.Position) uint64 {
	var buf [13]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(p.Black))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(p.White))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(p.Kings))
	buf[12] = byte(p.Turn)
	return xxhash.Sum64(buf[:])
}

// Probe looks up key and tightens (alpha, beta) per the standard
// alpha-beta transposition rule. usable reports whether depth is deep
// enough that the stored score can be returned immediately without
// re-searching; when usable is true, score is the value to return.
func (t *Table) Probe(key uint64, depth int, alpha, beta int32) (entry Entry, found bool, usable bool, score int32) {
	entry, found = t.cache.Get(key)
	if !found || entry.Depth < depth {
		return entry, found, false, 0
	}
	switch entry.Bound {
	case Exact:
		return entry, true, true, entry.Score
	case Lower:
		if entry.Score > alpha {
			alpha = entry.Score
		}
	case Upper:
		if entry.Score < beta {
			beta = entry.Score
		}
	}
	if alpha >= beta {
		return entry, true, true, entry.Score
	}
	return entry, true, false, 0
}

// Store records a search result, overwriting any prior entry for key.
func (t *Table) Store(key uint64, e Entry) {
	t.cache.Set(key, e, 1)
}
