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

package transpositiontable

import (
	"github.com/euclidchess/euclid/internal/position"
	. "github.com/euclidchess/euclid/internal/types"
)

// Bound tags the meaning of a stored score.
//  BoundExact - exact score of the node
//  BoundLower - beta cut, the score is a lower bound
//  BoundUpper - alpha fail, the score is an upper bound
type Bound uint8

// Bound constants
const (
	BoundExact Bound = 0
	BoundLower Bound = 1
	BoundUpper Bound = 2
)

// String returns a short representation of the bound
func (b Bound) String() string {
	switch b {
	case BoundLower:
		return "lower"
	case BoundUpper:
		return "upper"
	}
	return "exact"
}

// TtEntry is the data structure for each entry in the transposition
// table. Each entry has 16 bytes. An empty slot has Depth == -1.
type TtEntry struct {
	Key   position.Key // 64-bit zobrist key
	move  uint16       // 16-bit move part of a Move
	Depth int16        // remaining search depth, -1 = empty slot
	Score int16        // mate-distance normalized score
	Type  Bound        // bound type of the score
}

// TtEntrySize is the size in bytes of one TtEntry
const TtEntrySize = 16

// Move returns the stored best move of the entry
func (e *TtEntry) Move() Move {
	return Move(e.move)
}
