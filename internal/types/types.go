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

// Package types contains the basic data types used throughout the engine:
// squares, files, ranks, colors, pieces, castling rights, directions,
// bitboards, values and the packed move representation.
package types

const (
	// MaxDepth is the maximum search depth the engine will ever reach
	MaxDepth = 128

	// MaxMoves is the maximum number of moves the engine can handle
	// in a single position. No known position has more than 218
	// pseudo legal moves.
	MaxMoves = 256

	// KB = 1.024 bytes
	KB uint64 = 1024

	// MB = KB * KB
	MB = KB * KB
)
