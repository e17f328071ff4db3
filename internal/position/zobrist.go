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

package position

import (
	. "github.com/euclidchess/euclid/internal/types"
)

// zobristSeed is the fixed seed for the deterministic generation of
// the zobrist random words. Changing it invalidates every stored
// hash (transposition tables, datasets).
const zobristSeed uint64 = 0x9E3779B97F4A7C15

// zobristTables holds all random words for the incremental position
// hash:
//  - one word per (color, piece type, square)
//  - one word per castling right bit (K, Q, k, q)
//  - one word per en passant file a-h
//  - one word for the side to move (in when Black is to move)
type zobristTables struct {
	pieces     [ColorLength][PtLength][SqLength]Key
	castling   [CastlingRightsLength]Key
	epFile     [8]Key
	sideToMove Key
}

var zobristBase zobristTables

func init() {
	initZobrist()
}

// splitmix64 is the mix function used to generate a deterministic
// but well distributed sequence of random words from the seed.
func splitmix64(x *uint64) uint64 {
	*x += 0x9e3779b97f4a7c15
	z := *x
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func initZobrist() {
	x := zobristSeed
	for c := 0; c < ColorLength; c++ {
		for pt := 0; pt < PtLength; pt++ {
			for sq := 0; sq < SqLength; sq++ {
				zobristBase.pieces[c][pt][sq] = Key(splitmix64(&x))
			}
		}
	}
	for i := range zobristBase.castling {
		zobristBase.castling[i] = Key(splitmix64(&x))
	}
	for i := range zobristBase.epFile {
		zobristBase.epFile[i] = Key(splitmix64(&x))
	}
	zobristBase.sideToMove = Key(splitmix64(&x))
}

// zobristCastling returns the combined key of all castling right
// bits set in cr. XORing the combined keys of the previous and the
// new rights updates the hash for any rights change.
func zobristCastling(cr CastlingRights) Key {
	var k Key
	if cr.Has(CastlingWhiteOO) {
		k ^= zobristBase.castling[0]
	}
	if cr.Has(CastlingWhiteOOO) {
		k ^= zobristBase.castling[1]
	}
	if cr.Has(CastlingBlackOO) {
		k ^= zobristBase.castling[2]
	}
	if cr.Has(CastlingBlackOOO) {
		k ^= zobristBase.castling[3]
	}
	return k
}
