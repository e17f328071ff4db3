//
// Euclid - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2024 The Euclid developers
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package transpositiontable implements a transposition table (cache)
// data structure and functionality for a chess engine search.
// The TtTable class is not thread safe and needs to be synchronized
// externally if used from multiple threads.
package transpositiontable

import (
	"math"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/euclidchess/euclid/internal/logging"
	"github.com/euclidchess/euclid/internal/position"
	. "github.com/euclidchess/euclid/internal/types"
)

var out = message.NewPrinter(language.English)

// MaxSizeInMB is the maximal memory usage of the tt
const MaxSizeInMB = 65_536

// TtTable is a direct mapped transposition table. The number of
// entries is a power of two so the index of a key is its lower
// bits. Replacement is depth-preferred: a slot is overwritten when
// it is empty, holds a different key or holds an entry of the same
// or lower depth for the same key. Create with NewTtTable().
type TtTable struct {
	log                *logging.Logger
	data               []TtEntry
	sizeInByte         uint64
	hashKeyMask        uint64
	maxNumberOfEntries uint64
	numberOfEntries    uint64
}

// NewTtTable creates a new TtTable with the given number of MBytes
// as a maximum of memory usage. The actual size will be the number
// of entries fitting into this size rounded down to a power of 2.
func NewTtTable(sizeInMByte int) *TtTable {
	tt := &TtTable{
		log: myLogging.GetLog(),
	}
	tt.Resize(sizeInMByte)
	return tt
}

// Resize resizes the tt table. All entries will be cleared.
func (tt *TtTable) Resize(sizeInMByte int) {
	if sizeInMByte > MaxSizeInMB {
		tt.log.Error(out.Sprintf("Requested size for TT of %d MB reduced to max of %d MB", sizeInMByte, MaxSizeInMB))
		sizeInMByte = MaxSizeInMB
	}
	if sizeInMByte <= 0 {
		sizeInMByte = 0
	}
	tt.sizeInByte = uint64(sizeInMByte) * MB
	if tt.sizeInByte == 0 {
		tt.maxNumberOfEntries = 0
		tt.hashKeyMask = 0
	} else {
		tt.maxNumberOfEntries = 1 << uint64(math.Floor(math.Log2(float64(tt.sizeInByte/TtEntrySize))))
		tt.hashKeyMask = tt.maxNumberOfEntries - 1
	}
	tt.sizeInByte = tt.maxNumberOfEntries * TtEntrySize
	tt.data = make([]TtEntry, tt.maxNumberOfEntries)
	tt.Clear()
	tt.log.Debug(out.Sprintf("TT Size %d MByte, Capacity %d entries (Requested were %d MBytes)",
		tt.sizeInByte/MB, tt.maxNumberOfEntries, sizeInMByte))
}

// Clear empties all slots of the tt
func (tt *TtTable) Clear() {
	for i := range tt.data {
		tt.data[i] = TtEntry{Depth: -1}
	}
	tt.numberOfEntries = 0
}

// Probe returns a pointer to the corresponding tt entry iff the
// slot's key equals the given key and the slot is in use.
// Otherwise nil is returned.
func (tt *TtTable) Probe(key position.Key) *TtEntry {
	if tt.maxNumberOfEntries == 0 {
		return nil
	}
	e := &tt.data[tt.hash(key)]
	if e.Key == key && e.Depth >= 0 {
		return e
	}
	return nil
}

// Put stores a search result into the tt. Depth-preferred
// replacement: the slot is overwritten when it is empty, holds a
// different key or holds an entry of the same or lower depth for the
// same key. Scores must be stored mate-distance normalized by the caller.
func (tt *TtTable) Put(key position.Key, move Move, depth int16, score Value, bound Bound) {
	if tt.maxNumberOfEntries == 0 {
		return
	}
	e := &tt.data[tt.hash(key)]
	if e.Depth < 0 {
		tt.numberOfEntries++
	} else if e.Key == key && depth < e.Depth {
		// deeper entry for the same position wins
		return
	}
	e.Key = key
	e.move = uint16(move.MoveOf())
	e.Depth = depth
	e.Score = int16(score)
	e.Type = bound
}

// Len returns the number of non-empty entries in the tt
func (tt *TtTable) Len() uint64 {
	return tt.numberOfEntries
}

// Capacity returns the maximum number of entries of the tt
func (tt *TtTable) Capacity() uint64 {
	return tt.maxNumberOfEntries
}

// Hashfull returns how full the tt is in permill
func (tt *TtTable) Hashfull() int {
	if tt.maxNumberOfEntries == 0 {
		return 0
	}
	return int(1000 * tt.numberOfEntries / tt.maxNumberOfEntries)
}

// String returns a string representation of the tt state
func (tt *TtTable) String() string {
	return out.Sprintf("TT: size %d MB capacity %d entries used %d entries (%d permill)",
		tt.sizeInByte/MB, tt.maxNumberOfEntries, tt.numberOfEntries, tt.Hashfull())
}

// hash returns the index of the key in the table
func (tt *TtTable) hash(key position.Key) uint64 {
	return uint64(key) & tt.hashKeyMask
}
