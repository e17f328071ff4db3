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
	"fmt"
	"time"

	"github.com/euclidchess/euclid/internal/moveslice"
	. "github.com/euclidchess/euclid/internal/types"
)

// Result holds the result of a search: the best move found, its
// value from the side-to-move point of view, the number of visited
// nodes, the depth of the last fully completed iteration and the
// principal variation.
type Result struct {
	BestMove   Move
	BestValue  Value
	Depth      int
	Nodes      uint64
	Pv         moveslice.MoveSlice
	SearchTime time.Duration
}

// String returns a string representation of the search result
func (r *Result) String() string {
	return fmt.Sprintf("best move = %s value = %s depth = %d nodes = %d time = %s pv = %s",
		r.BestMove.StringUci(), r.BestValue.String(), r.Depth, r.Nodes, r.SearchTime, r.Pv.StringUci())
}
