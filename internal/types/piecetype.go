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

// PieceType is a set of constants for the six chess piece kinds
//  Pawn     PieceType = 0
//  Knight   PieceType = 1
//  Bishop   PieceType = 2
//  Rook     PieceType = 3
//  Queen    PieceType = 4
//  King     PieceType = 5
//  PtNone   PieceType = 6
type PieceType uint8

// PieceType constants
const (
	Pawn     PieceType = 0
	Knight   PieceType = 1
	Bishop   PieceType = 2
	Rook     PieceType = 3
	Queen    PieceType = 4
	King     PieceType = 5
	PtNone   PieceType = 6
	PtLength int       = 6
)

// pieceTypeValue holds the conventional material value in centipawns
// for each piece type. The king has no material value as checkmate
// is handled by the search. Sized 8 so the type part of any Piece
// value (3 bits) is a safe index.
var pieceTypeValue = [8]Value{100, 320, 330, 500, 900, 0, 0, 0}

// ValueOf returns the material value in centipawns for this piece type
func (pt PieceType) ValueOf() Value {
	return pieceTypeValue[pt]
}

// IsValid checks if pt is one of the six piece kinds
func (pt PieceType) IsValid() bool {
	return pt < PtNone
}

var ptToString = "pnbrqk-"

// Char returns the lower case letter for the piece type (as used
// in uci promotion notation)
func (pt PieceType) Char() string {
	return string(ptToString[pt])
}

// PieceTypeFromChar returns the PieceType for the given lower case
// letter or PtNone if the letter is unknown.
func PieceTypeFromChar(s string) PieceType {
	if len(s) != 1 {
		return PtNone
	}
	index := strings.Index(ptToString[:6], s)
	if index == -1 {
		return PtNone
	}
	return PieceType(index)
}
