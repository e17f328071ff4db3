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

package selfplay

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/euclidchess/euclid/internal/config"
	myLogging "github.com/euclidchess/euclid/internal/logging"
	"github.com/euclidchess/euclid/internal/position"
	"github.com/euclidchess/euclid/internal/search"
)

func TestMain(m *testing.M) {
	config.Setup()
	myLogging.GetTestLog()
	os.Exit(m.Run())
}

func TestPlyCapIsDraw(t *testing.T) {
	sp := NewSelfplay()
	p := position.NewPosition()
	limits := search.NewSearchLimits()
	limits.Depth = 1

	report := sp.Play(p, 4, *limits)
	assert.Equal(t, Draw, report.Outcome)
	assert.Equal(t, "max plies reached", report.Reason)
	assert.Equal(t, 4, report.Plies)
	assert.Equal(t, 4, report.Moves.Len())
	assert.True(t, report.Nodes > 0)

	// the start position must not be modified
	assert.Equal(t, position.StartFen, p.StringFen())
}

func TestImmediateMate(t *testing.T) {
	sp := NewSelfplay()
	// black is already mated - no move is played
	p := position.NewPosition("4R1k1/5ppp/8/8/8/8/8/7K b - - 0 1")
	report := sp.Play(p, 10, *search.NewSearchLimits())
	assert.Equal(t, WhiteWin, report.Outcome)
	assert.Equal(t, "checkmate", report.Reason)
	assert.Equal(t, 0, report.Plies)
}

func TestImmediateStalemate(t *testing.T) {
	sp := NewSelfplay()
	// black to move is stalemated (classic corner stalemate)
	p := position.NewPosition("7k/5Q2/8/8/8/8/8/6K1 b - - 0 1")
	report := sp.Play(p, 10, *search.NewSearchLimits())
	assert.Equal(t, Draw, report.Outcome)
	assert.Equal(t, "stalemate", report.Reason)
}

func TestRuleDrawShortCircuit(t *testing.T) {
	sp := NewSelfplay()
	// insufficient material ends the game before any search
	p := position.NewPosition("4k3/8/8/8/8/8/8/2B1K3 w - - 0 1")
	report := sp.Play(p, 10, *search.NewSearchLimits())
	assert.Equal(t, Draw, report.Outcome)
	assert.Equal(t, 0, report.Plies)
	assert.Equal(t, uint64(0), report.Nodes)
}

func TestMateGetsPlayed(t *testing.T) {
	sp := NewSelfplay()
	// white mates in one - the game should end 1-0 after one ply
	p := position.NewPosition("6k1/5ppp/8/8/8/8/8/4R2K w - - 0 1")
	limits := search.NewSearchLimits()
	limits.Depth = 3
	report := sp.Play(p, 10, *limits)
	assert.Equal(t, WhiteWin, report.Outcome)
	assert.Equal(t, "checkmate", report.Reason)
	assert.Equal(t, 1, report.Plies)
	assert.Equal(t, "e1e8", report.Moves.At(0).StringUci())
}
