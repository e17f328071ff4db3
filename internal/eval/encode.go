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

package eval

import (
	"github.com/euclidchess/euclid/internal/position"
	. "github.com/euclidchess/euclid/internal/types"
)

// Feature encoding layout:
//  - 12 * 64 binary piece planes: P,N,B,R,Q,K for White then Black,
//    plane index is plane*64 + square (a1 = 0 .. h8 = 63)
//  - 1 side to move flag (1 = White, 0 = Black)
//  - 4 castling bits [K,Q,k,q]
//  - 8 en passant file one-hot bits [a..h], all zero without an
//    en passant target
const (
	pieceFeatures = 12 * 64

	// FeatureDim is the fixed length of the dense feature vector
	FeatureDim = pieceFeatures + 1 + 4 + 8 // 781
)

// Encode returns the dense feature vector of length FeatureDim for
// the given position.
func Encode(p *position.Position) []float32 {
	x := make([]float32, FeatureDim)

	// 12x64 piece planes
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			plane := int(c)*6 + int(pt)
			bb := p.PiecesBb(c, pt)
			for bb != 0 {
				sq := bb.PopLsb()
				x[plane*64+int(sq)] = 1
			}
		}
	}

	off := pieceFeatures

	// side to move
	if p.NextPlayer() == White {
		x[off] = 1
	}
	off++

	// castling rights [K,Q,k,q]
	cr := p.CastlingRights()
	if cr.Has(CastlingWhiteOO) {
		x[off] = 1
	}
	if cr.Has(CastlingWhiteOOO) {
		x[off+1] = 1
	}
	if cr.Has(CastlingBlackOO) {
		x[off+2] = 1
	}
	if cr.Has(CastlingBlackOOO) {
		x[off+3] = 1
	}
	off += 4

	// en passant file one-hot
	if ep := p.GetEnPassantSquare(); ep != SqNone {
		x[off+int(ep.FileOf())] = 1
	}

	return x
}
