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

package search

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/euclidchess/euclid/internal/config"
	myLogging "github.com/euclidchess/euclid/internal/logging"
	"github.com/euclidchess/euclid/internal/movegen"
	"github.com/euclidchess/euclid/internal/position"
	"github.com/euclidchess/euclid/internal/transpositiontable"
	. "github.com/euclidchess/euclid/internal/types"
	"github.com/euclidchess/euclid/internal/util"
)

func TestMain(m *testing.M) {
	config.Setup()
	myLogging.GetTestLog()
	os.Exit(m.Run())
}

func TestSearchStartPosition(t *testing.T) {
	s := NewSearch()
	p := position.NewPosition()
	limits := NewSearchLimits()
	limits.Depth = 4

	result := s.Search(p, *limits)

	// the best move is a legal move and the pv is not empty
	mg := movegen.NewMoveGen()
	assert.True(t, mg.ValidateMove(p, result.BestMove), "best move %s not legal", result.BestMove.StringUci())
	assert.Equal(t, 4, result.Depth)
	assert.True(t, result.Pv.Len() > 0)
	assert.Equal(t, result.BestMove, result.Pv.At(0))
	assert.True(t, result.Nodes > 0)

	// the position is restored after the search
	assert.Equal(t, position.StartFen, p.StringFen())
}

func TestSearchInsufficientMaterial(t *testing.T) {
	// K+B vs K is a rule draw
	s := NewSearch()
	p := position.NewPosition("4k3/8/8/8/8/8/8/2B1K3 w - - 0 1")
	require.True(t, p.HasInsufficientMaterial())
	limits := NewSearchLimits()
	limits.Depth = 4
	result := s.Search(p, *limits)
	assert.Equal(t, ValueDraw, result.BestValue)
}

func TestSearchFiftyMoveDraw(t *testing.T) {
	// the halfmove clock has reached 100 - draw despite the extra rook
	s := NewSearch()
	p := position.NewPosition("7k/8/8/8/8/8/8/R3K3 w - - 100 1")
	limits := NewSearchLimits()
	limits.Depth = 4
	result := s.Search(p, *limits)
	assert.Equal(t, ValueDraw, result.BestValue)
}

func TestSearchFindsMateInOne(t *testing.T) {
	s := NewSearch()
	p := position.NewPosition("6k1/5ppp/8/8/8/8/8/4R2K w - - 0 1")
	limits := NewSearchLimits()
	limits.Depth = 3
	result := s.Search(p, *limits)
	assert.Equal(t, "e1e8", result.BestMove.StringUci())
	assert.Equal(t, ValueCheckMate-1, result.BestValue)
}

func TestSearchMatedPosition(t *testing.T) {
	// back rank mate - the side to move has no legal move and is in check
	s := NewSearch()
	p := position.NewPosition("4R1k1/5ppp/8/8/8/8/8/7K b - - 0 1")
	limits := NewSearchLimits()
	limits.Depth = 3
	result := s.Search(p, *limits)
	assert.Equal(t, -ValueCheckMate, result.BestValue)
	assert.Equal(t, MoveNone, result.BestMove)
}

func TestSearchNodeBudget(t *testing.T) {
	s := NewSearch()
	p := position.NewPosition()
	limits := NewSearchLimits()
	limits.Depth = 8
	limits.Nodes = 500

	result := s.Search(p, *limits)
	assert.True(t, result.Nodes <= 500, "node budget exceeded: %d", result.Nodes)
}

func TestSearchPreStopped(t *testing.T) {
	s := NewSearch()
	p := position.NewPosition()
	stop := &util.AtomicBool{}
	stop.Set(true)
	limits := NewSearchLimits()
	limits.Depth = 8
	limits.Stop = stop

	result := s.Search(p, *limits)
	assert.Equal(t, 0, result.Depth)
	assert.Equal(t, uint64(0), result.Nodes)
}

func TestSearchDeterminism(t *testing.T) {
	s := NewSearch()
	p := position.NewPosition("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	limits := NewSearchLimits()
	limits.Depth = 4

	first := s.Search(p, *limits)
	// identical inputs includes identical cache state
	s.NewGame()
	second := s.Search(p, *limits)

	assert.Equal(t, first.BestMove, second.BestMove)
	assert.Equal(t, first.BestValue, second.BestValue)
	assert.Equal(t, first.Depth, second.Depth)
	assert.Equal(t, first.Nodes, second.Nodes)
	assert.Equal(t, first.Pv, second.Pv)
}

func TestSearchTTRootEntry(t *testing.T) {
	s := NewSearch()
	p := position.NewPosition()
	limits := NewSearchLimits()
	limits.Depth = 4

	result := s.Search(p, *limits)

	e := s.tt.Probe(p.ZobristKey())
	require.NotNil(t, e)
	assert.Equal(t, transpositiontable.BoundExact, e.Type)
	assert.Equal(t, result.BestMove, e.Move())
	assert.Equal(t, result.BestValue, valueFromTT(Value(e.Score), 0))
}

func TestSearchStopWhileRunning(t *testing.T) {
	s := NewSearch()
	p := position.NewPosition()
	limits := NewSearchLimits()
	limits.Infinite = true
	limits.Depth = MaxDepth

	s.StartSearch(*p, *limits)
	assert.True(t, s.IsSearching())
	time.Sleep(50 * time.Millisecond)
	s.StopSearch()
	assert.False(t, s.IsSearching())

	r := s.LastSearchResult()
	require.NotNil(t, r)
	// the best completed iteration provides a legal move
	mg := movegen.NewMoveGen()
	assert.True(t, mg.ValidateMove(p, r.BestMove))
}

func TestSearchMoveTime(t *testing.T) {
	s := NewSearch()
	p := position.NewPosition()
	limits := NewSearchLimits()
	limits.MoveTime = 200 * time.Millisecond

	start := time.Now()
	result := s.Search(p, *limits)
	elapsed := time.Since(start)

	assert.True(t, result.Depth >= 1)
	assert.True(t, elapsed < 2*time.Second, "search took far too long: %s", elapsed)
}

func TestMateDistanceNormalization(t *testing.T) {
	// mate scores are stored relative to the node, not the root
	v := ValueCheckMate - 5
	assert.Equal(t, ValueCheckMate-2, valueToTT(v, 3))
	assert.Equal(t, v, valueFromTT(valueToTT(v, 3), 3))

	v = -(ValueCheckMate - 5)
	assert.Equal(t, -(ValueCheckMate - 2), valueToTT(v, 3))
	assert.Equal(t, v, valueFromTT(valueToTT(v, 3), 3))

	// non mate scores are unchanged
	assert.Equal(t, Value(123), valueToTT(123, 10))
	assert.Equal(t, Value(-123), valueFromTT(-123, 10))
}

func TestKillerStorage(t *testing.T) {
	s := NewSearch()
	m1 := CreateMove(SqE2, SqE4, Normal, PtNone)
	m2 := CreateMove(SqD2, SqD4, Normal, PtNone)

	s.storeKiller(3, m1)
	assert.Equal(t, m1, s.killers[3][0])

	// no duplicate
	s.storeKiller(3, m1)
	assert.Equal(t, m1, s.killers[3][0])
	assert.Equal(t, MoveNone, s.killers[3][1])

	// shift
	s.storeKiller(3, m2)
	assert.Equal(t, m2, s.killers[3][0])
	assert.Equal(t, m1, s.killers[3][1])
}

func TestHistoryDecay(t *testing.T) {
	h := NewHistory()
	h.Count[White][SqE2][SqE4] = historyLimit
	h.Update(White, SqE2, SqE4, 3)
	// the update pushed the entry over the limit and triggered the
	// halving decay
	assert.True(t, h.Get(White, SqE2, SqE4) <= historyLimit)
	assert.True(t, h.Get(White, SqE2, SqE4) > 0)
}

func TestEvalCacheGenerations(t *testing.T) {
	c := newEvalCache()
	key := position.Key(12345)
	c.store(key, 77)
	v, ok := c.probe(key)
	assert.True(t, ok)
	assert.Equal(t, Value(77), v)

	// bumping the generation invalidates the entry
	c.nextGeneration()
	_, ok = c.probe(key)
	assert.False(t, ok)
}
