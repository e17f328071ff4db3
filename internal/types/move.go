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
	"fmt"
	"strings"
)

// MoveType classifies a move. Quiet moves, captures and double pawn
// pushes share the Normal type - they are distinguished by looking
// at the position the move is applied to.
//  Normal    MoveType = 0
//  Promotion MoveType = 1
//  EnPassant MoveType = 2
//  Castling  MoveType = 3
type MoveType uint8

// MoveType constants
const (
	Normal    MoveType = 0
	Promotion MoveType = 1
	EnPassant MoveType = 2
	Castling  MoveType = 3
)

// IsValid checks mt against the four defined move types
func (mt MoveType) IsValid() bool {
	return mt < 4
}

// Move is a 32-bit packed move representation.
// 16 bits encode the move itself, the upper 16 bits hold a sort
// value used for move ordering.
//  BITMAP 32-bit
//  |-value ------------------------|-Move -------------------------|
//                                  |                     1 1 1 1 1 1  to
//                                  |         1 1 1 1 1 1              from
//                                  |     1 1                          promotion piece type (pt-1 => 0-3)
//                                  | 1 1                              move type
//  1 1 1 1 1 1 1 1 1 1 1 1 1 1 1 1 |                                  move sort value
type Move uint32

// MoveNone is the empty non valid move
const MoveNone Move = 0

const (
	fromShift     uint = 6
	promTypeShift uint = 12
	typeShift     uint = 14
	valueShift    uint = 16

	squareMask   Move = 0x3F
	toMask            = squareMask
	fromMask          = squareMask << fromShift
	promTypeMask Move = 3 << promTypeShift
	moveTypeMask Move = 3 << typeShift
	moveMask     Move = 0xFFFF
	valueMask    Move = 0xFFFF << valueShift
)

// CreateMove returns an encoded Move instance.
// The promotion type will be reduced to 2 bits (Knight..Queen).
func CreateMove(from Square, to Square, t MoveType, promType PieceType) Move {
	if promType < Knight || promType > Queen {
		promType = Knight
	}
	return Move(to) |
		Move(from)<<fromShift |
		Move(promType-Knight)<<promTypeShift |
		Move(t)<<typeShift
}

// CreateMoveValue returns an encoded Move instance including a sort value
func CreateMoveValue(from Square, to Square, t MoveType, promType PieceType, value Value) Move {
	return CreateMove(from, to, t, promType).SetValue(value)
}

// From returns the from-square of the move
func (m Move) From() Square {
	return Square((m & fromMask) >> fromShift)
}

// To returns the to-square of the move
func (m Move) To() Square {
	return Square(m & toMask)
}

// MoveType returns the type of the move
func (m Move) MoveType() MoveType {
	return MoveType((m & moveTypeMask) >> typeShift)
}

// PromotionType returns the piece type a pawn promotes to. Only
// meaningful when the move type is Promotion.
func (m Move) PromotionType() PieceType {
	return PieceType((m&promTypeMask)>>promTypeShift) + Knight
}

// MoveOf returns the move without its sort value (lower 16 bits)
func (m Move) MoveOf() Move {
	return m & moveMask
}

// ValueOf returns the sort value encoded into the move
func (m Move) ValueOf() Value {
	return Value(int((m&valueMask)>>valueShift) + int(ValueNA))
}

// SetValue encodes the given sort value into the upper 16 bits of
// the move. The value is shifted into a positive range for storage.
// The arithmetic runs in int as the span of the value range exceeds
// 16 bits.
func (m Move) SetValue(v Value) Move {
	if m == MoveNone {
		return m
	}
	return m&moveMask | Move(int(v)-int(ValueNA))<<valueShift
}

// IsValid checks if the move has valid squares and move type.
// MoveNone is not a valid move in this sense.
func (m Move) IsValid() bool {
	return m != MoveNone &&
		m.From().IsValid() &&
		m.To().IsValid() &&
		m.PromotionType().IsValid() &&
		m.MoveType().IsValid()
}

// StringUci returns the move in uci protocol format, e.g. "e2e4"
// or "e7e8q" for promotions.
func (m Move) StringUci() string {
	if m == MoveNone {
		return "0000"
	}
	var os strings.Builder
	os.WriteString(m.From().String())
	os.WriteString(m.To().String())
	if m.MoveType() == Promotion {
		os.WriteString(m.PromotionType().Char())
	}
	return os.String()
}

// String returns a detailed string representation of a move
func (m Move) String() string {
	if m == MoveNone {
		return "Move: { MoveNone }"
	}
	return fmt.Sprintf("Move: { %-5s  type:%d  prom:%s  value:%d }",
		m.StringUci(), m.MoveType(), m.PromotionType().Char(), m.ValueOf())
}
