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

package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/euclidchess/euclid/internal/position"
)

const kiwipeteFen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func TestPerftStartPosition(t *testing.T) {
	expected := []uint64{20, 400, 8_902, 197_281}
	pt := NewPerft()
	for depth := 1; depth <= len(expected); depth++ {
		nodes := pt.StartPerft(position.StartFen, depth, true)
		assert.Equal(t, expected[depth-1], nodes, "perft depth %d", depth)
	}
}

func TestPerftKiwipete(t *testing.T) {
	expected := []uint64{48, 2_039, 97_862}
	pt := NewPerft()
	for depth := 1; depth <= len(expected); depth++ {
		nodes := pt.StartPerft(kiwipeteFen, depth, true)
		assert.Equal(t, expected[depth-1], nodes, "perft depth %d", depth)
	}
}

func TestPerftKiwipeteDeep(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	pt := NewPerft()
	assert.Equal(t, uint64(4_085_603), pt.StartPerft(kiwipeteFen, 4, true))
}
