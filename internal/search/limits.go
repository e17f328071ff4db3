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
	"time"

	"github.com/euclidchess/euclid/internal/util"
)

// Limits is a data structure to hold all information about how a
// search shall be controlled: depth and node budgets, a fixed move
// time or a remaining-time control and an optional external
// cancellation flag.
type Limits struct {
	// maximum iterative deepening depth, 0 = no depth limit
	Depth int

	// node budget - the search never observes more nodes, 0 = off
	Nodes uint64

	// fixed time per move
	MoveTime time.Duration

	// remaining time control
	WhiteTime time.Duration
	BlackTime time.Duration
	WhiteInc  time.Duration
	BlackInc  time.Duration
	MovesToGo int

	// run until stopped regardless of time
	Infinite bool

	// optional external cancellation flag
	Stop *util.AtomicBool
}

// NewSearchLimits creates a new empty Limits instance and returns a
// pointer to it
func NewSearchLimits() *Limits {
	return &Limits{}
}

// TimeControl returns true when the search is bound by a wall clock
func (sl *Limits) TimeControl() bool {
	if sl.Infinite {
		return false
	}
	return sl.MoveTime > 0 || sl.WhiteTime > 0 || sl.BlackTime > 0
}
