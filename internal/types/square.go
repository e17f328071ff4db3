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

// Square represents exactly one square on a chess board.
//  SqA1   Square = 0
//  SqH8   Square = 63
//  SqNone Square = 64
// File of a square is sq & 7, rank of a square is sq >> 3.
type Square uint8

//noinspection GoUnusedConst
const (
	SqA1 Square = iota
	SqB1
	SqC1
	SqD1
	SqE1
	SqF1
	SqG1
	SqH1
	SqA2
	SqB2
	SqC2
	SqD2
	SqE2
	SqF2
	SqG2
	SqH2
	SqA3
	SqB3
	SqC3
	SqD3
	SqE3
	SqF3
	SqG3
	SqH3
	SqA4
	SqB4
	SqC4
	SqD4
	SqE4
	SqF4
	SqG4
	SqH4
	SqA5
	SqB5
	SqC5
	SqD5
	SqE5
	SqF5
	SqG5
	SqH5
	SqA6
	SqB6
	SqC6
	SqD6
	SqE6
	SqF6
	SqG6
	SqH6
	SqA7
	SqB7
	SqC7
	SqD7
	SqE7
	SqF7
	SqG7
	SqH7
	SqA8
	SqB8
	SqC8
	SqD8
	SqE8
	SqF8
	SqG8
	SqH8
	SqNone
	SqLength int = 64
)

// SquareOf returns the square of the given file and rank
func SquareOf(f File, r Rank) Square {
	return Square(uint8(r)<<3 | uint8(f))
}

// IsValid checks if the square is a valid square on the board
func (sq Square) IsValid() bool {
	return sq < SqNone
}

// FileOf returns the file of the square
func (sq Square) FileOf() File {
	return File(sq & 7)
}

// RankOf returns the rank of the square
func (sq Square) RankOf() Rank {
	return Rank(sq >> 3)
}

// To returns the square reached when moving in the given direction.
// Returns SqNone when the target would leave the board. Horizontal
// wrap arounds (e.g. h-file to a-file) are detected via the file
// distance of source and target.
func (sq Square) To(d Direction) Square {
	if !sq.IsValid() {
		return SqNone
	}
	t := int(sq) + int(d)
	if t < 0 || t >= SqLength {
		return SqNone
	}
	// a move of one step may never change the file by more than one
	fd := int(sq.FileOf()) - int(Square(t).FileOf())
	if fd < -1 || fd > 1 {
		return SqNone
	}
	return Square(t)
}

// MakeSquare returns the Square for the given algebraic notation
// (e.g. "e4"). Invalid input returns SqNone.
func MakeSquare(s string) Square {
	if len(s) != 2 {
		return SqNone
	}
	f := s[0] - 'a'
	r := s[1] - '1'
	if f > 7 || r > 7 {
		return SqNone
	}
	return SquareOf(File(f), Rank(r))
}

// String returns the algebraic notation of the square (e.g. "e4")
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return sq.FileOf().String() + sq.RankOf().String()
}
