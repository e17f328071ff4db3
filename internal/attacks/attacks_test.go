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

package attacks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/euclidchess/euclid/internal/types"
)

func TestKnightTargets(t *testing.T) {
	// corner knight has 2 targets, central knight 8
	assert.Equal(t, 2, len(KnightTargets[SqA1]))
	assert.ElementsMatch(t, []Square{SqB3, SqC2}, KnightTargets[SqA1])
	assert.Equal(t, 8, len(KnightTargets[SqE4]))
	assert.Contains(t, KnightTargets[SqE4], SqD6)
	assert.Contains(t, KnightTargets[SqE4], SqF2)
}

func TestKingTargets(t *testing.T) {
	assert.Equal(t, 3, len(KingTargets[SqA1]))
	assert.Equal(t, 8, len(KingTargets[SqE4]))
	assert.Equal(t, 5, len(KingTargets[SqE1]))
}

func TestRays(t *testing.T) {
	// a1 ray north is the whole a-file up to a8
	assert.Equal(t, []Square{SqA2, SqA3, SqA4, SqA5, SqA6, SqA7, SqA8}, Rays[DirN][SqA1])
	// a1 has no rays west, south or southwest
	assert.Empty(t, Rays[DirW][SqA1])
	assert.Empty(t, Rays[DirS][SqA1])
	assert.Empty(t, Rays[DirSW][SqA1])
	// the northeast ray from a1 is the long diagonal
	assert.Equal(t, []Square{SqB2, SqC3, SqD4, SqE5, SqF6, SqG7, SqH8}, Rays[DirNE][SqA1])
	// rays are ordered from the square outward
	assert.Equal(t, SqE5, Rays[DirN][SqE4][0])
}

func TestPawnTargets(t *testing.T) {
	// white pawn on e4 attacks d5 and f5
	assert.ElementsMatch(t, []Square{SqD5, SqF5}, PawnTargets[White][SqE4])
	// black pawn on e4 attacks d3 and f3
	assert.ElementsMatch(t, []Square{SqD3, SqF3}, PawnTargets[Black][SqE4])
	// no wrap around on the edge files
	assert.Equal(t, []Square{SqB5}, PawnTargets[White][SqA4])
	assert.Equal(t, []Square{SqG3}, PawnTargets[Black][SqH4])
	// no targets beyond the last rank
	assert.Empty(t, PawnTargets[White][SqE8])
	assert.Empty(t, PawnTargets[Black][SqE1])
}
