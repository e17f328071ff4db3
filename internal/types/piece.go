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

import "strings"

// Piece combines a Color and a PieceType into one value.
// Can be used with masks:
//  White Piece is a value with piece & 0b1000 == 0 (WhitePawn is 0)
//  Black Piece is a value with piece & 0b1000 == 0b1000
//  PieceNone   = 0b1111
type Piece uint8

// Piece constants
const (
	WhitePawn   Piece = 0
	WhiteKnight Piece = 1
	WhiteBishop Piece = 2
	WhiteRook   Piece = 3
	WhiteQueen  Piece = 4
	WhiteKing   Piece = 5
	BlackPawn   Piece = 8
	BlackKnight Piece = 9
	BlackBishop Piece = 10
	BlackRook   Piece = 11
	BlackQueen  Piece = 12
	BlackKing   Piece = 13
	PieceNone   Piece = 15
	PieceLength int   = 16
)

// MakePiece creates the piece given by color and piece type
func MakePiece(c Color, pt PieceType) Piece {
	return Piece(uint8(c)<<3 | uint8(pt))
}

// ColorOf returns the color of the given piece
func (p Piece) ColorOf() Color {
	return Color(p >> 3)
}

// TypeOf returns the piece type of the given piece
func (p Piece) TypeOf() PieceType {
	return PieceType(p & 7)
}

// ValueOf returns the material value of the piece type of this piece
func (p Piece) ValueOf() Value {
	return p.TypeOf().ValueOf()
}

// array of fen letters for pieces - index is the piece value
var pieceToString = "PNBRQK--pnbrqk--"

// String returns the fen letter of the piece (e.g. P, n, K, q)
func (p Piece) String() string {
	if p == PieceNone {
		return "-"
	}
	return string(pieceToString[p])
}

// PieceFromChar returns the Piece corresponding to the given fen
// character. If s contains not exactly one character or if the
// character is invalid this will return PieceNone.
func PieceFromChar(s string) Piece {
	if len(s) != 1 || s == "-" {
		return PieceNone
	}
	index := strings.Index(pieceToString, s)
	if index == -1 {
		return PieceNone
	}
	return Piece(index)
}
