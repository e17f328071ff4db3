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

package moveslice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/euclidchess/euclid/internal/types"
)

func TestPushPop(t *testing.T) {
	ms := NewMoveSlice(MaxMoves)
	assert.Equal(t, 0, ms.Len())
	assert.Equal(t, MaxMoves, ms.Cap())

	m1 := CreateMove(SqE2, SqE4, Normal, PtNone)
	m2 := CreateMove(SqD2, SqD4, Normal, PtNone)
	ms.PushBack(m1)
	ms.PushBack(m2)
	assert.Equal(t, 2, ms.Len())
	assert.Equal(t, m1, ms.At(0))
	assert.Equal(t, m2, ms.PopBack())
	assert.Equal(t, 1, ms.Len())

	ms.Clear()
	assert.Equal(t, 0, ms.Len())
	assert.Equal(t, MoveNone, ms.PopBack())
}

func TestCapacityBound(t *testing.T) {
	// the list never grows beyond its fixed capacity
	ms := NewMoveSlice(4)
	for i := 0; i < 10; i++ {
		ms.PushBack(CreateMove(SqE2, SqE4, Normal, PtNone))
	}
	assert.Equal(t, 4, ms.Len())
	assert.Equal(t, 4, ms.Cap())
}

func TestSortStable(t *testing.T) {
	ms := NewMoveSlice(8)
	low := CreateMove(SqA2, SqA3, Normal, PtNone).SetValue(10)
	highA := CreateMove(SqE2, SqE4, Normal, PtNone).SetValue(100)
	highB := CreateMove(SqD2, SqD4, Normal, PtNone).SetValue(100)
	ms.PushBack(low)
	ms.PushBack(highA)
	ms.PushBack(highB)
	ms.Sort()
	// sorted by value descending, equal values keep insertion order
	assert.Equal(t, highA, ms.At(0))
	assert.Equal(t, highB, ms.At(1))
	assert.Equal(t, low, ms.At(2))
}

func TestStringUci(t *testing.T) {
	ms := NewMoveSlice(4)
	ms.PushBack(CreateMove(SqE2, SqE4, Normal, PtNone))
	ms.PushBack(CreateMove(SqE7, SqE8, Promotion, Queen))
	assert.Equal(t, "e2e4 e7e8q", ms.StringUci())
}
