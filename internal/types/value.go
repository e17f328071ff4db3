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
	"strconv"
)

// Value represents the positional value of a chess position in
// centipawns or a mate distance value.
type Value int16

// Value constants. Mate values are biased by the distance to the
// mate in plies so that quicker mates score higher. ValueInf is
// never stored in the transposition table.
const (
	ValueDraw               Value = 0
	ValueInf                Value = 30000
	ValueMin                Value = -ValueInf
	ValueMax                Value = ValueInf
	ValueCheckMate          Value = 29000
	ValueCheckMateThreshold Value = ValueCheckMate - 1000
	ValueNA                 Value = -ValueInf - 2000

	// ValueEvalClip bounds the output of evaluation backends
	ValueEvalClip Value = 3000
)

// IsValid checks if the value is within the engine's value bounds
func (v Value) IsValid() bool {
	return v >= ValueMin && v <= ValueMax
}

// IsCheckMateValue returns true if the value is a mate distance value
func (v Value) IsCheckMateValue() bool {
	return v > ValueCheckMateThreshold || v < -ValueCheckMateThreshold
}

// String returns a string representation in uci score format,
// either "cp <value>" or "mate <moves>".
func (v Value) String() string {
	if v.IsCheckMateValue() {
		var moves int
		if v > 0 {
			moves = (int(ValueCheckMate-v) + 1) / 2
		} else {
			moves = -(int(ValueCheckMate+v) + 1) / 2
		}
		return fmt.Sprintf("mate %d", moves)
	}
	return "cp " + strconv.Itoa(int(v))
}
