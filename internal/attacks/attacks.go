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

// Package attacks holds the precomputed target tables for all piece
// movements: knight and king destination lists, the ordered ray
// squares for the eight sliding directions and the pawn attack
// squares per color. The tables are built once at startup and are
// never mutated afterwards.
package attacks

import (
	. "github.com/euclidchess/euclid/internal/types"
)

// Direction indices into Rays. The first four are the orthogonals
// (rook movement), the last four the diagonals (bishop movement).
const (
	DirN = iota
	DirE
	DirS
	DirW
	DirNE
	DirSE
	DirSW
	DirNW
	DirLength
)

var (
	// KnightTargets holds for each square the list of squares a
	// knight can jump to
	KnightTargets [SqLength][]Square

	// KingTargets holds for each square the list of adjacent squares
	KingTargets [SqLength][]Square

	// Rays holds for each direction and square the ordered sequence
	// of squares up to the edge of the board. The first blocker on a
	// ray terminates slider movement.
	Rays [DirLength][SqLength][]Square

	// PawnTargets holds for each color and square the squares a pawn
	// of that color attacks (captures to)
	PawnTargets [ColorLength][SqLength][]Square

	// pre computed deltas per ray direction index
	rayDeltas = [DirLength][2]int{
		{0, 1},   // N
		{1, 0},   // E
		{0, -1},  // S
		{-1, 0},  // W
		{1, 1},   // NE
		{1, -1},  // SE
		{-1, -1}, // SW
		{-1, 1},  // NW
	}

	knightDeltas = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
)

func init() {
	initTargetTables()
}

func initTargetTables() {
	for s := SqA1; s <= SqH8; s++ {
		f0 := int(s.FileOf())
		r0 := int(s.RankOf())

		// knight jumps
		for _, d := range knightDeltas {
			f, r := f0+d[0], r0+d[1]
			if f < 0 || f > 7 || r < 0 || r > 7 {
				continue
			}
			KnightTargets[s] = append(KnightTargets[s], SquareOf(File(f), Rank(r)))
		}

		// king neighbors
		for df := -1; df <= 1; df++ {
			for dr := -1; dr <= 1; dr++ {
				if df == 0 && dr == 0 {
					continue
				}
				f, r := f0+df, r0+dr
				if f < 0 || f > 7 || r < 0 || r > 7 {
					continue
				}
				KingTargets[s] = append(KingTargets[s], SquareOf(File(f), Rank(r)))
			}
		}

		// sliding rays up to the edge
		for dir := DirN; dir < DirLength; dir++ {
			df, dr := rayDeltas[dir][0], rayDeltas[dir][1]
			f, r := f0+df, r0+dr
			for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
				Rays[dir][s] = append(Rays[dir][s], SquareOf(File(f), Rank(r)))
				f += df
				r += dr
			}
		}

		// pawn captures - file aware to avoid wrap arounds
		if r0 < 7 {
			if f0 > 0 {
				PawnTargets[White][s] = append(PawnTargets[White][s], SquareOf(File(f0-1), Rank(r0+1)))
			}
			if f0 < 7 {
				PawnTargets[White][s] = append(PawnTargets[White][s], SquareOf(File(f0+1), Rank(r0+1)))
			}
		}
		if r0 > 0 {
			if f0 > 0 {
				PawnTargets[Black][s] = append(PawnTargets[Black][s], SquareOf(File(f0-1), Rank(r0-1)))
			}
			if f0 < 7 {
				PawnTargets[Black][s] = append(PawnTargets[Black][s], SquareOf(File(f0+1), Rank(r0-1)))
			}
		}
	}
}
