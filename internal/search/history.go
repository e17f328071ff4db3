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
	. "github.com/euclidchess/euclid/internal/types"
)

// historyLimit triggers the halving decay when any history entry
// exceeds it
const historyLimit int64 = 1 << 20

// History is the history heuristic table: a counter per
// (side, from, to) for quiet moves which caused beta cutoffs.
type History struct {
	Count [ColorLength][SqLength][SqLength]int64
}

// NewHistory creates a new empty history table
func NewHistory() *History {
	return &History{}
}

// Update adds the depth dependent bonus (ply+1)^2 to the counter of
// the move. When any entry exceeds the limit all entries are halved
// so recent cutoffs keep outweighing old ones.
func (h *History) Update(c Color, from Square, to Square, ply int) {
	bonus := int64(ply+1) * int64(ply+1)
	h.Count[c][from][to] += bonus
	if h.Count[c][from][to] > historyLimit {
		h.decay()
	}
}

// Get returns the history score for the move
func (h *History) Get(c Color, from Square, to Square) int64 {
	return h.Count[c][from][to]
}

func (h *History) decay() {
	for c := 0; c < ColorLength; c++ {
		for from := 0; from < SqLength; from++ {
			for to := 0; to < SqLength; to++ {
				h.Count[c][from][to] >>= 1
			}
		}
	}
}
