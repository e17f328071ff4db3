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

package search

import (
	"github.com/euclidchess/euclid/internal/position"
	. "github.com/euclidchess/euclid/internal/types"
)

// evalCacheSize is the fixed number of entries of the evaluation
// cache (a power of two)
const evalCacheSize = 1 << 18

// evalCacheEntry caches the side-to-move evaluation of a position.
// The generation stamp invalidates entries of earlier searches
// without clearing the table.
type evalCacheEntry struct {
	key   position.Key
	value Value
	gen   uint32
}

// evalCache is a direct mapped, generation tagged cache for static
// evaluations. It is cleared between searches by bumping the
// generation stamp.
type evalCache struct {
	entries []evalCacheEntry
	gen     uint32
}

func newEvalCache() *evalCache {
	return &evalCache{
		entries: make([]evalCacheEntry, evalCacheSize),
		gen:     1,
	}
}

// nextGeneration invalidates all cached entries
func (c *evalCache) nextGeneration() {
	c.gen++
}

func (c *evalCache) probe(key position.Key) (Value, bool) {
	e := &c.entries[uint64(key)&(evalCacheSize-1)]
	if e.key == key && e.gen == c.gen {
		return e.value, true
	}
	return 0, false
}

func (c *evalCache) store(key position.Key, value Value) {
	e := &c.entries[uint64(key)&(evalCacheSize-1)]
	e.key = key
	e.value = value
	e.gen = c.gen
}
