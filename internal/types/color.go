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

// Color represents the two chess colors
//  White Color = 0
//  Black Color = 1
type Color uint8

// Color constants
const (
	White       Color = 0
	Black       Color = 1
	ColorLength int   = 2
)

// Flip returns the opposite color
func (c Color) Flip() Color {
	return c ^ 1
}

// IsValid checks if c is a valid color
func (c Color) IsValid() bool {
	return c < 2
}

// MoveDirection returns the direction a pawn of this color moves in
func (c Color) MoveDirection() Direction {
	if c == White {
		return North
	}
	return South
}

// PromotionRank returns the rank on which pawns of this color promote
func (c Color) PromotionRank() Rank {
	if c == White {
		return Rank8
	}
	return Rank1
}

// PawnStartRank returns the rank on which pawns of this color start
// and from which they may advance two squares
func (c Color) PawnStartRank() Rank {
	if c == White {
		return Rank2
	}
	return Rank7
}

// String returns the fen compatible color letter ("w" or "b")
func (c Color) String() string {
	if c == White {
		return "w"
	}
	return "b"
}
