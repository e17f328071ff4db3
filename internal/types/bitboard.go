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

package types

import (
	"math/bits"
	"strings"
)

// Bitboard is a set of squares as a 64-bit word. Bit 0 is square a1,
// bit 63 is square h8.
type Bitboard uint64

// BbZero is an empty bitboard
const BbZero Bitboard = 0

// Bb returns a bitboard with only the bit of the given square set
func (sq Square) Bb() Bitboard {
	return Bitboard(1) << sq
}

// Has tests if the square's bit is set in the bitboard
func (b Bitboard) Has(sq Square) bool {
	return b&sq.Bb() != 0
}

// PushSquare sets the square's bit in the bitboard
func (b *Bitboard) PushSquare(sq Square) Bitboard {
	*b |= sq.Bb()
	return *b
}

// PopSquare clears the square's bit in the bitboard
func (b *Bitboard) PopSquare(sq Square) Bitboard {
	*b &^= sq.Bb()
	return *b
}

// PopCount returns the number of set bits
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// Lsb returns the least significant set square of the bitboard or
// SqNone when the bitboard is empty.
func (b Bitboard) Lsb() Square {
	if b == 0 {
		return SqNone
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLsb returns the least significant set square and removes it
// from the bitboard. Returns SqNone for an empty bitboard.
func (b *Bitboard) PopLsb() Square {
	if *b == 0 {
		return SqNone
	}
	sq := Square(bits.TrailingZeros64(uint64(*b)))
	*b &= *b - 1
	return sq
}

// String returns a visual 8x8 matrix of the bitboard with rank 8 on top
func (b Bitboard) String() string {
	var os strings.Builder
	for r := Rank8 + 1; r > Rank1; r-- {
		for f := FileA; f <= FileH; f++ {
			if b.Has(SquareOf(f, r-1)) {
				os.WriteString("1 ")
			} else {
				os.WriteString(". ")
			}
		}
		os.WriteString("\n")
	}
	return os.String()
}
