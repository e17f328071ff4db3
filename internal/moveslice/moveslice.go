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

// Package moveslice provides a data structure for an ordered list of
// chess moves with a fixed capacity. The underlying array is allocated
// once and never grows.
package moveslice

import (
	"sort"
	"strings"

	. "github.com/euclidchess/euclid/internal/types"
)

// MoveSlice is an ordered list of moves. Create with NewMoveSlice().
type MoveSlice []Move

// NewMoveSlice creates a new move slice with the given capacity
// and a length of zero.
func NewMoveSlice(cap int) *MoveSlice {
	moves := make(MoveSlice, 0, cap)
	return &moves
}

// Len returns the number of moves currently stored in the slice
func (ms *MoveSlice) Len() int {
	return len(*ms)
}

// Cap returns the capacity of the slice
func (ms *MoveSlice) Cap() int {
	return cap(*ms)
}

// PushBack appends a move to the end of the slice. Moves beyond the
// fixed capacity are dropped.
func (ms *MoveSlice) PushBack(m Move) {
	if len(*ms) >= cap(*ms) {
		return
	}
	*ms = append(*ms, m)
}

// PopBack removes and returns the last move of the slice.
// Returns MoveNone on an empty slice.
func (ms *MoveSlice) PopBack() Move {
	if len(*ms) == 0 {
		return MoveNone
	}
	m := (*ms)[len(*ms)-1]
	*ms = (*ms)[:len(*ms)-1]
	return m
}

// At returns the move at index i. It is the caller's responsibility
// to ensure the index is within the slice's length.
func (ms *MoveSlice) At(i int) Move {
	return (*ms)[i]
}

// Set writes the move at index i
func (ms *MoveSlice) Set(i int, m Move) {
	(*ms)[i] = m
}

// Clear resets the length of the slice to zero keeping the
// underlying array
func (ms *MoveSlice) Clear() {
	*ms = (*ms)[:0]
}

// Clone returns a copy of the move slice
func (ms *MoveSlice) Clone() *MoveSlice {
	dest := make(MoveSlice, len(*ms), cap(*ms))
	copy(dest, *ms)
	return &dest
}

// FilterCopy copies all moves into dest for which the given func
// returns true. Dest will be cleared first.
func (ms *MoveSlice) FilterCopy(dest *MoveSlice, f func(index int) bool) {
	dest.Clear()
	for i, m := range *ms {
		if f(i) {
			dest.PushBack(m)
		}
	}
}

// ForEach calls the given func with the index of each element
func (ms *MoveSlice) ForEach(f func(index int)) {
	for i := range *ms {
		f(i)
	}
}

// Sort sorts the moves from highest sort value to lowest.
// The sort is stable so the generation order of equally valued
// moves is preserved which keeps move ordering deterministic.
func (ms *MoveSlice) Sort() {
	sort.SliceStable(*ms, func(i, j int) bool {
		return (*ms)[i].ValueOf() > (*ms)[j].ValueOf()
	})
}

// String returns a string representation of the slice
func (ms *MoveSlice) String() string {
	var os strings.Builder
	for i, m := range *ms {
		if i > 0 {
			os.WriteString(", ")
		}
		os.WriteString(m.String())
	}
	return os.String()
}

// StringUci returns the moves in uci notation separated by spaces
func (ms *MoveSlice) StringUci() string {
	var os strings.Builder
	for i, m := range *ms {
		if i > 0 {
			os.WriteString(" ")
		}
		os.WriteString(m.StringUci())
	}
	return os.String()
}
