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

// Package search implements the search of the chess engine: an
// iterative deepening alpha-beta search with aspiration windows,
// transposition table, quiescence search, null move pruning, late
// move reductions, principal variation search, check extension,
// futility pruning, internal iterative deepening, killer and history
// move ordering and a generation tagged evaluation cache.
//
// The search runs single threaded. The only concurrency contract is
// the cooperative cancellation flag which can be set from another
// goroutine and is polled periodically.
package search

import (
	"context"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/sync/semaphore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/euclidchess/euclid/internal/config"
	"github.com/euclidchess/euclid/internal/eval"
	myLogging "github.com/euclidchess/euclid/internal/logging"
	"github.com/euclidchess/euclid/internal/movegen"
	"github.com/euclidchess/euclid/internal/moveslice"
	"github.com/euclidchess/euclid/internal/position"
	"github.com/euclidchess/euclid/internal/transpositiontable"
	. "github.com/euclidchess/euclid/internal/types"
	"github.com/euclidchess/euclid/internal/util"
)

var out = message.NewPrinter(language.English)

// scoredMove pairs a move with its ordering score. Scores do not
// fit into the 16-bit sort value of a move because history counters
// grow beyond it.
type scoredMove struct {
	move  Move
	score int64
}

// Search represents the data structure for a chess engine search.
// It owns the transposition table, the evaluation cache and the
// history heuristics for the lifetime of a game. Create a new
// instance with NewSearch().
type Search struct {
	log *logging.Logger

	initSemaphore *semaphore.Weighted
	isRunning     *semaphore.Weighted

	tt        *transpositiontable.TtTable
	eval      *eval.Evaluator
	evalCache *evalCache
	history   *History

	// current search state
	stopFlag     util.AtomicBool
	limits       *Limits
	startTime    time.Time
	deadline     time.Time
	hasDeadline  bool
	nodesVisited uint64

	// the key history stack is pushed/popped in lockstep with
	// do/undo and carries the current key at the back for the
	// threefold repetition detection
	keyHistory []position.Key

	mg       [MaxDepth + 2]*movegen.Movegen
	pv       [MaxDepth + 2]*moveslice.MoveSlice
	moveList [MaxDepth + 2][]scoredMove
	killers  [MaxDepth + 2][2]Move

	// async search state
	currentPosition  *position.Position
	currentLimits    Limits
	lastSearchResult *Result
	hasResult        bool
}

// NewSearch creates a new Search instance with the transposition
// table sized from the configuration and the default evaluator
// (or the configured model backend).
func NewSearch() *Search {
	config.Setup()
	s := &Search{
		log:           myLogging.GetLog(),
		initSemaphore: semaphore.NewWeighted(1),
		isRunning:     semaphore.NewWeighted(1),
		eval:          eval.NewEvaluator(),
		evalCache:     newEvalCache(),
		history:       NewHistory(),
		keyHistory:    make([]position.Key, 0, MaxMoves),
	}
	if config.Settings.Search.UseTT {
		s.tt = transpositiontable.NewTtTable(config.Settings.Search.TTSize)
	} else {
		s.tt = transpositiontable.NewTtTable(0)
	}
	if config.Settings.Eval.UseModel && config.Settings.Eval.ModelPath != "" {
		if err := s.eval.LoadModel(config.Settings.Eval.ModelPath); err != nil {
			s.log.Warningf("Could not load eval model, continuing with default evaluator: %s", err)
		}
	}
	for i := range s.mg {
		s.mg[i] = movegen.NewMoveGen()
		s.pv[i] = moveslice.NewMoveSlice(MaxDepth + 1)
		s.moveList[i] = make([]scoredMove, 0, MaxMoves)
	}
	return s
}

// NewGame resets the search state to be ready for a different game.
// The transposition table, the evaluation cache, the history tables
// and the cancellation flag are cleared.
func (s *Search) NewGame() {
	s.StopSearch()
	s.tt.Clear()
	s.evalCache.nextGeneration()
	s.history = NewHistory()
	s.stopFlag.Set(false)
}

// Evaluator returns the evaluator of this search so a caller (the
// uci option handler) can register a different backend.
func (s *Search) Evaluator() *eval.Evaluator {
	return s.eval
}

// NodesVisited returns the number of nodes visited in the last
// search
func (s *Search) NodesVisited() uint64 {
	return s.nodesVisited
}

// Search runs a search on the given position with the given limits
// synchronously and returns the result. The position is mutated
// during the search and restored before returning.
//
// Two sequential calls with identical inputs and identical cache
// state produce identical results.
func (s *Search) Search(p *position.Position, sl Limits) Result {
	s.limits = &sl

	// a pre-set cancellation flag yields an empty result
	if sl.Stop != nil && sl.Stop.Get() {
		return Result{BestMove: MoveNone, BestValue: ValueNA}
	}

	// init search run
	s.stopFlag.Set(false)
	s.startTime = time.Now()
	s.nodesVisited = 0
	s.hasDeadline = false
	if sl.TimeControl() {
		s.deadline = s.startTime.Add(s.timeSlice(p, &sl))
		s.hasDeadline = true
	}
	s.evalCache.nextGeneration()
	for i := range s.killers {
		s.killers[i][0] = MoveNone
		s.killers[i][1] = MoveNone
	}
	s.keyHistory = s.keyHistory[:0]
	s.keyHistory = append(s.keyHistory, p.ZobristKey())

	result := s.iterativeDeepening(p)
	result.Nodes = s.nodesVisited
	result.SearchTime = time.Since(s.startTime)

	s.log.Debug(out.Sprintf("Search finished after %s: depth %d nodes %d (%d nps) best %s",
		result.SearchTime, result.Depth, result.Nodes,
		util.Nps(result.Nodes, result.SearchTime), result.BestMove.StringUci()))

	return result
}

// StartSearch starts the search on the given position with the
// given search limits in a separate goroutine. The search can be
// stopped with StopSearch(). Search status can be checked with
// IsSearching(). This takes a copy of the position and the limits.
func (s *Search) StartSearch(p position.Position, sl Limits) {
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	s.currentPosition = &p
	s.currentLimits = sl
	go s.run(&p, sl)
	// wait until the search is running before returning to caller
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	s.initSemaphore.Release(1)
}

// StopSearch stops a running search as quickly as possible. This
// will wait for the search to be stopped before returning.
func (s *Search) StopSearch() {
	s.stopFlag.Set(true)
	s.WaitWhileSearching()
}

// IsSearching checks if a search is running
func (s *Search) IsSearching() bool {
	if !s.isRunning.TryAcquire(1) {
		return true
	}
	s.isRunning.Release(1)
	return false
}

// WaitWhileSearching blocks until a running search has stopped
func (s *Search) WaitWhileSearching() {
	_ = s.isRunning.Acquire(context.TODO(), 1)
	s.isRunning.Release(1)
}

// LastSearchResult returns the result of the last search or nil
// if no search has produced a result yet
func (s *Search) LastSearchResult() *Result {
	if !s.hasResult {
		return nil
	}
	return s.lastSearchResult
}

// run is called by StartSearch in a separate goroutine
func (s *Search) run(p *position.Position, sl Limits) {
	if !s.isRunning.TryAcquire(1) {
		s.log.Error("Search already running")
		s.initSemaphore.Release(1)
		return
	}
	defer s.isRunning.Release(1)

	// signal the caller waiting in StartSearch
	s.initSemaphore.Release(1)

	result := s.Search(p, sl)
	s.lastSearchResult = &result
	s.hasResult = true
}

// //////////////////////////////////////////////////////
// Private
// //////////////////////////////////////////////////////

// iterativeDeepening runs the iterative deepening loop: depths
// 1, 2, ... until a limit triggers. From depth 2 on an aspiration
// window around the previous score is used. Only fully completed
// iterations are committed to the result.
func (s *Search) iterativeDeepening(p *position.Position) Result {
	result := Result{BestMove: MoveNone, BestValue: ValueNA}

	// a position which already is a rule draw is not searched
	if position.IsRuleDraw(p, s.keyHistory) {
		result.BestValue = ValueDraw
		rootMoves := s.mg[0].GenerateLegalMoves(p, movegen.GenAll)
		if rootMoves.Len() > 0 {
			result.BestMove = rootMoves.At(0)
		}
		return result
	}

	// check if there are legal moves - if not it's mate or stalemate
	rootMoves := s.mg[0].GenerateLegalMoves(p, movegen.GenAll)
	if rootMoves.Len() == 0 {
		if p.HasCheck() {
			result.BestValue = -ValueCheckMate
		} else {
			result.BestValue = ValueDraw
		}
		return result
	}

	// fall back to the first legal move so the search never returns
	// an empty best move when it gets cancelled early
	result.BestMove = rootMoves.At(0)

	maxDepth := MaxDepth
	if s.limits.Depth > 0 {
		maxDepth = s.limits.Depth
	}

	bestValue := ValueNA
	for depth := 1; depth <= maxDepth; depth++ {
		var value Value
		if config.Settings.Search.UseAspiration && depth >= 2 &&
			bestValue != ValueNA && !bestValue.IsCheckMateValue() {
			value = s.aspirationSearch(p, depth, bestValue)
		} else {
			value = s.rootSearch(p, depth, ValueMin, ValueMax)
		}

		// ongoing return values of a cancelled iteration are
		// discarded in favor of the last fully completed iteration
		if s.stopConditions() {
			break
		}

		bestValue = value
		result.BestValue = value
		result.Depth = depth
		if s.pv[0].Len() > 0 {
			result.BestMove = s.pv[0].At(0)
			result.Pv = *s.pv[0].Clone()
		}
	}
	return result
}

// aspirationSearch searches with a narrow window around the score
// of the previous iteration. On a fail low/high the window is
// widened geometrically and the search repeated.
func (s *Search) aspirationSearch(p *position.Position, depth int, prev Value) Value {
	delta := Value(50 + 10*depth)
	alpha := maxValue(prev-delta, ValueMin)
	beta := minValue(prev+delta, ValueMax)
	for {
		value := s.rootSearch(p, depth, alpha, beta)
		if s.stopConditions() {
			return value
		}
		switch {
		case value <= alpha: // fail low
			delta *= 2
			alpha = maxValue(value-delta, ValueMin)
		case value >= beta: // fail high
			delta *= 2
			beta = minValue(value+delta, ValueMax)
		default:
			return value
		}
		if delta > 1000 {
			alpha = ValueMin
			beta = ValueMax
		}
	}
}

// timeSlice derives the time budget for this move. A fixed move
// time wins when set. Otherwise the remaining time is divided over
// the expected number of moves plus a part of the increment and
// clamped to sensible bounds.
func (s *Search) timeSlice(p *position.Position, sl *Limits) time.Duration {
	if sl.MoveTime > 0 {
		return sl.MoveTime
	}
	var myTime, myInc time.Duration
	if p.NextPlayer() == White {
		myTime, myInc = sl.WhiteTime, sl.WhiteInc
	} else {
		myTime, myInc = sl.BlackTime, sl.BlackInc
	}
	movesToGo := util.Max(sl.MovesToGo, 30)
	slice := myTime/time.Duration(movesToGo) + 3*myInc/4
	if slice < 20*time.Millisecond {
		slice = 20 * time.Millisecond
	}
	if max := myTime - 30*time.Millisecond; max > 0 && slice > max {
		slice = max
	}
	return slice
}

// checkStop is the in-tree limit poll. The node budget is checked
// on every node so a budget of N is a hard guarantee. The external
// flag and the wall clock are polled every 16K nodes.
func (s *Search) checkStop() bool {
	if s.stopFlag.Get() {
		return true
	}
	if s.limits.Nodes > 0 && s.nodesVisited >= s.limits.Nodes {
		s.stopFlag.Set(true)
		return true
	}
	if s.nodesVisited&0x3FFF == 0 {
		if s.limits.Stop != nil && s.limits.Stop.Get() {
			s.stopFlag.Set(true)
			return true
		}
		if s.hasDeadline && time.Now().After(s.deadline) {
			s.stopFlag.Set(true)
			return true
		}
	}
	return false
}

// stopConditions checks all limits unconditionally. Used between
// iterations and at the root.
func (s *Search) stopConditions() bool {
	if s.stopFlag.Get() {
		return true
	}
	if s.limits.Stop != nil && s.limits.Stop.Get() {
		s.stopFlag.Set(true)
		return true
	}
	if s.limits.Nodes > 0 && s.nodesVisited >= s.limits.Nodes {
		s.stopFlag.Set(true)
		return true
	}
	if s.hasDeadline && time.Now().After(s.deadline) {
		s.stopFlag.Set(true)
		return true
	}
	return false
}

func maxValue(a Value, b Value) Value {
	if a > b {
		return a
	}
	return b
}

func minValue(a Value, b Value) Value {
	if a < b {
		return a
	}
	return b
}
