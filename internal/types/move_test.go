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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateMove(t *testing.T) {
	m := CreateMove(SqE2, SqE4, Normal, PtNone)
	assert.Equal(t, SqE2, m.From())
	assert.Equal(t, SqE4, m.To())
	assert.Equal(t, Normal, m.MoveType())
	assert.Equal(t, "e2e4", m.StringUci())

	m = CreateMove(SqE7, SqE8, Promotion, Queen)
	assert.Equal(t, Queen, m.PromotionType())
	assert.Equal(t, "e7e8q", m.StringUci())

	m = CreateMove(SqA7, SqB8, Promotion, Knight)
	assert.Equal(t, Knight, m.PromotionType())
	assert.Equal(t, "a7b8n", m.StringUci())

	m = CreateMove(SqE1, SqG1, Castling, PtNone)
	assert.Equal(t, Castling, m.MoveType())
	assert.Equal(t, "e1g1", m.StringUci())
}

func TestMoveValue(t *testing.T) {
	m := CreateMove(SqE2, SqE4, Normal, PtNone)
	assert.Equal(t, ValueNA, m.ValueOf())

	m2 := m.SetValue(Value(999))
	assert.Equal(t, Value(999), m2.ValueOf())
	assert.Equal(t, m, m2.MoveOf())

	m3 := m.SetValue(ValueMax)
	assert.Equal(t, ValueMax, m3.ValueOf())
	m4 := m.SetValue(ValueMin)
	assert.Equal(t, ValueMin, m4.ValueOf())
}

func TestMoveNone(t *testing.T) {
	assert.False(t, MoveNone.IsValid())
	assert.Equal(t, "0000", MoveNone.StringUci())
	assert.Equal(t, MoveNone, MoveNone.SetValue(100))
}

func TestSquares(t *testing.T) {
	assert.Equal(t, Square(0), SqA1)
	assert.Equal(t, Square(63), SqH8)
	assert.Equal(t, FileE, SqE4.FileOf())
	assert.Equal(t, Rank4, SqE4.RankOf())
	assert.Equal(t, SqE4, MakeSquare("e4"))
	assert.Equal(t, SqNone, MakeSquare("i9"))
	assert.Equal(t, "e4", SqE4.String())
	assert.Equal(t, SqE5, SqE4.To(North))
	assert.Equal(t, SqNone, SqH4.To(East))
	assert.Equal(t, SqNone, SqA1.To(Southwest))
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "cp 0", ValueDraw.String())
	assert.Equal(t, "cp 100", Value(100).String())
	assert.Equal(t, "mate 1", (ValueCheckMate - 1).String())
	assert.Equal(t, "mate 2", (ValueCheckMate - 3).String())
	assert.True(t, (ValueCheckMate - 100).IsCheckMateValue())
	assert.False(t, Value(100).IsCheckMateValue())
}
