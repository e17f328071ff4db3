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
	"sort"

	"github.com/euclidchess/euclid/internal/config"
	"github.com/euclidchess/euclid/internal/movegen"
	"github.com/euclidchess/euclid/internal/moveslice"
	"github.com/euclidchess/euclid/internal/position"
	"github.com/euclidchess/euclid/internal/transpositiontable"
	. "github.com/euclidchess/euclid/internal/types"
)

// move ordering score bases - far apart so the move classes never
// overlap (history counters stay below 2^21)
const (
	scoreTTMove    int64 = 1 << 40
	scorePromotion int64 = 1 << 36
	scoreCapture   int64 = 1 << 32
	scoreKiller1   int64 = 1 << 30
	scoreKiller2   int64 = 1<<30 - 1
)

// futilityMargin is the margin for the depth 1 futility pruning
const futilityMargin Value = 200

// rootSearch iterates all root moves at the given depth with the
// given window. The first move is searched with the full window,
// later moves with a zero window and a re-search on improvement
// (principal variation search).
func (s *Search) rootSearch(p *position.Position, depth int, alpha Value, beta Value) Value {
	s.nodesVisited++
	origAlpha := alpha

	ttMove := MoveNone
	if config.Settings.Search.UseTTMove {
		if e := s.tt.Probe(p.ZobristKey()); e != nil {
			ttMove = e.Move()
		}
	}

	s.pv[0].Clear()
	moves := s.orderMoves(p, 0, ttMove, movegen.GenAll)

	bestValue := ValueNA
	bestMove := MoveNone
	movesSearched := 0

	for i := range moves {
		m := moves[i].move
		undo := p.DoMove(m)
		if !p.WasLegalMove() {
			p.UndoMove(m, undo)
			continue
		}
		s.keyHistory = append(s.keyHistory, p.ZobristKey())

		newDepth := depth - 1
		var value Value
		if !config.Settings.Search.UsePVS || movesSearched == 0 {
			value = -s.searchOrQuiesce(p, newDepth, 1, -beta, -alpha, true, true)
		} else {
			value = -s.searchOrQuiesce(p, newDepth, 1, -alpha-1, -alpha, false, true)
			if value > alpha && !s.stopFlag.Get() {
				value = -s.searchOrQuiesce(p, newDepth, 1, -beta, -alpha, true, true)
			}
		}
		movesSearched++

		s.keyHistory = s.keyHistory[:len(s.keyHistory)-1]
		p.UndoMove(m, undo)

		if s.stopFlag.Get() {
			return ValueNA
		}

		if value > bestValue {
			bestValue = value
			bestMove = m
			if value > alpha {
				savePV(m, s.pv[1], s.pv[0])
				if value >= beta {
					s.storeTT(p, depth, 0, m, bestValue, transpositiontable.BoundLower)
					return bestValue
				}
				alpha = value
			}
		}
	}

	bound := transpositiontable.BoundUpper
	if bestValue > origAlpha {
		bound = transpositiontable.BoundExact
	}
	s.storeTT(p, depth, 0, bestMove, bestValue, bound)
	return bestValue
}

// searchOrQuiesce dispatches to the normal search for a remaining
// depth > 0 and to the quiescence search otherwise.
func (s *Search) searchOrQuiesce(p *position.Position, depth int, ply int, alpha Value, beta Value, isPV bool, doNull bool) Value {
	if depth > 0 {
		return s.search(p, depth, ply, alpha, beta, isPV, doNull)
	}
	return s.qsearch(p, ply, alpha, beta)
}

// search is the negamax alpha-beta search with fail-soft semantics
// for all plies after the root.
func (s *Search) search(p *position.Position, depth int, ply int, alpha Value, beta Value, isPV bool, doNull bool) Value {
	// poll limits
	if s.checkStop() {
		return ValueNA
	}
	s.nodesVisited++
	s.pv[ply].Clear()

	// rule draws: 50-move rule, threefold repetition over the key
	// history, insufficient material
	if position.IsRuleDraw(p, s.keyHistory) {
		return ValueDraw
	}

	if ply >= MaxDepth {
		return s.evaluate(p)
	}

	// mate distance pruning - a shorter mate has been found already
	if config.Settings.Search.UseMDP {
		alpha = maxValue(alpha, -ValueCheckMate+Value(ply))
		beta = minValue(beta, ValueCheckMate-Value(ply))
		if alpha >= beta {
			return alpha
		}
	}

	us := p.NextPlayer()
	hasCheck := p.HasCheck()
	origAlpha := alpha
	ttMove := MoveNone

	// TT probe: on a key match remember the stored move as ordering
	// hint and cut when the stored depth covers the remaining depth
	// and the bound allows it
	if config.Settings.Search.UseTT {
		if e := s.tt.Probe(p.ZobristKey()); e != nil {
			if config.Settings.Search.UseTTMove {
				ttMove = e.Move()
			}
			if config.Settings.Search.UseTTValue && int(e.Depth) >= depth {
				ttValue := valueFromTT(Value(e.Score), ply)
				cut := false
				switch e.Type {
				case transpositiontable.BoundExact:
					cut = true
				case transpositiontable.BoundLower:
					cut = ttValue >= beta
				case transpositiontable.BoundUpper:
					cut = ttValue <= alpha
				}
				if cut {
					return ttValue
				}
			}
		}
	}

	// null move pruning: giving the opponent a free move and still
	// being above beta means the position is very likely to fail
	// high anyway. Skipped in PV nodes, in check and when a side
	// has only pawns and king (zugzwang).
	if config.Settings.Search.UseNullMove &&
		doNull && !isPV && !hasCheck && depth >= 3 &&
		p.HasNonPawnMaterial(us) && p.HasNonPawnMaterial(us.Flip()) {
		r := 2 + depth/4
		newDepth := depth - 1 - r
		if newDepth < 0 {
			newDepth = 0
		}
		undo := p.DoNullMove()
		s.keyHistory = append(s.keyHistory, p.ZobristKey())
		nValue := -s.searchOrQuiesce(p, newDepth, ply+1, -beta, -beta+1, false, false)
		s.keyHistory = s.keyHistory[:len(s.keyHistory)-1]
		p.UndoNullMove(undo)
		if s.stopFlag.Get() {
			return ValueNA
		}
		if nValue >= beta {
			s.storeTT(p, depth, ply, ttMove, nValue, transpositiontable.BoundLower)
			return nValue
		}
	}

	// internal iterative deepening: seed an ordering hint from a
	// reduced search when no TT move is available
	if config.Settings.Search.UseIID &&
		config.Settings.Search.UseTT &&
		ttMove == MoveNone && depth >= 3 {
		s.search(p, depth-2, ply, alpha, beta, isPV, true)
		if s.stopFlag.Get() {
			return ValueNA
		}
		if e := s.tt.Probe(p.ZobristKey()); e != nil {
			ttMove = e.Move()
		}
		s.pv[ply].Clear()
	}

	// static eval is only needed for the depth 1 futility pruning
	var staticEval Value
	useFutility := config.Settings.Search.UseFutility && depth == 1 && !hasCheck
	if useFutility {
		staticEval = s.evaluate(p)
	}

	moves := s.orderMoves(p, ply, ttMove, movegen.GenAll)

	bestValue := ValueNA
	bestMove := MoveNone
	movesSearched := 0

	for i := range moves {
		m := moves[i].move
		quiet := !p.IsCapturingMove(m) && m.MoveType() != Promotion

		// futility pruning: at depth 1 a quiet move whose static
		// eval plus margin cannot raise alpha is skipped. Never
		// prunes before the first searched move so mate and
		// stalemate detection stay correct.
		if useFutility && quiet && movesSearched > 0 &&
			staticEval+futilityMargin <= alpha {
			if staticEval > bestValue {
				bestValue = staticEval
			}
			continue
		}

		undo := p.DoMove(m)
		if !p.WasLegalMove() {
			p.UndoMove(m, undo)
			continue
		}
		s.keyHistory = append(s.keyHistory, p.ZobristKey())

		givesCheck := p.HasCheck()
		extension := 0
		if config.Settings.Search.UseCheckExt && givesCheck && depth >= 2 {
			extension = 1
		}
		newDepth := depth - 1 + extension

		var value Value
		if !config.Settings.Search.UsePVS || movesSearched == 0 {
			// the first move is searched with the full window at
			// full depth
			value = -s.searchOrQuiesce(p, newDepth, ply+1, -beta, -alpha, isPV, true)
		} else {
			// late move reduction for late quiet non-TT non-check
			// non-promotion moves
			lmrDepth := newDepth
			if config.Settings.Search.UseLmr &&
				depth >= 3 && movesSearched >= 4 &&
				quiet && !givesCheck && extension == 0 &&
				m.MoveOf() != ttMove.MoveOf() {
				lmrDepth--
			}
			// zero window search, re-search at full depth with the
			// full window when it improves alpha
			value = -s.searchOrQuiesce(p, lmrDepth, ply+1, -alpha-1, -alpha, false, true)
			if value > alpha && !s.stopFlag.Get() {
				value = -s.searchOrQuiesce(p, newDepth, ply+1, -beta, -alpha, true, true)
			}
		}
		movesSearched++

		s.keyHistory = s.keyHistory[:len(s.keyHistory)-1]
		p.UndoMove(m, undo)

		if s.stopFlag.Get() {
			return ValueNA
		}

		if value > bestValue {
			bestValue = value
			bestMove = m
			if value > alpha {
				savePV(m, s.pv[ply+1], s.pv[ply])
				if value >= beta {
					// quiet non-promotion moves causing a cutoff
					// update killers and history
					if quiet {
						if config.Settings.Search.UseKiller {
							s.storeKiller(ply, m)
						}
						if config.Settings.Search.UseHistory {
							s.history.Update(us, m.From(), m.To(), ply)
						}
					}
					s.storeTT(p, depth, ply, m, bestValue, transpositiontable.BoundLower)
					return bestValue
				}
				alpha = value
			}
		}
	}

	// no legal move: mate when in check (quicker mates score
	// higher), stalemate otherwise
	if movesSearched == 0 {
		if hasCheck {
			bestValue = -(ValueCheckMate - Value(ply))
		} else {
			bestValue = ValueDraw
		}
		s.storeTT(p, depth, ply, MoveNone, bestValue, transpositiontable.BoundExact)
		return bestValue
	}

	bound := transpositiontable.BoundUpper
	if bestValue > origAlpha {
		bound = transpositiontable.BoundExact
	}
	s.storeTT(p, depth, ply, bestMove, bestValue, bound)
	return bestValue
}

// qsearch resolves tactical sequences at the horizon. When in check
// all legal evasions are searched without a stand-pat. Otherwise
// the static evaluation is a lower bound (stand pat) and only
// captures, en passant and promotions are searched.
func (s *Search) qsearch(p *position.Position, ply int, alpha Value, beta Value) Value {
	if s.checkStop() {
		return ValueNA
	}
	s.nodesVisited++
	s.pv[ply].Clear()

	if !config.Settings.Search.UseQuiescence || ply >= MaxDepth {
		return s.evaluate(p)
	}

	if position.IsRuleDraw(p, s.keyHistory) {
		return ValueDraw
	}

	hasCheck := p.HasCheck()
	bestValue := ValueNA

	if !hasCheck {
		standPat := s.evaluate(p)
		if config.Settings.Search.UseQSStandpat {
			if standPat >= beta {
				return standPat
			}
			if standPat > alpha {
				alpha = standPat
			}
		}
		bestValue = standPat
	}

	mode := movegen.GenNonQuiet
	if hasCheck {
		mode = movegen.GenAll
	}
	moves := s.qOrderMoves(p, ply, mode)
	movesSearched := 0

	for i := range moves {
		m := moves[i].move
		undo := p.DoMove(m)
		if !p.WasLegalMove() {
			p.UndoMove(m, undo)
			continue
		}
		s.keyHistory = append(s.keyHistory, p.ZobristKey())

		value := -s.qsearch(p, ply+1, -beta, -alpha)
		movesSearched++

		s.keyHistory = s.keyHistory[:len(s.keyHistory)-1]
		p.UndoMove(m, undo)

		if s.stopFlag.Get() {
			return ValueNA
		}

		if value > bestValue {
			bestValue = value
			if value > alpha {
				savePV(m, s.pv[ply+1], s.pv[ply])
				if value >= beta {
					return bestValue
				}
				alpha = value
			}
		}
	}

	// no legal evasion while in check is mate
	if hasCheck && movesSearched == 0 {
		return -(ValueCheckMate - Value(ply))
	}

	return bestValue
}

// evaluate returns the side-to-move evaluation of the position
// using the generation tagged evaluation cache.
func (s *Search) evaluate(p *position.Position) Value {
	if config.Settings.Search.UseEvalCache {
		if v, ok := s.evalCache.probe(p.ZobristKey()); ok {
			return v
		}
	}
	// the evaluator is white-positive - negate for Black to move
	v := s.eval.Evaluate(p)
	if p.NextPlayer() == Black {
		v = -v
	}
	if config.Settings.Search.UseEvalCache {
		s.evalCache.store(p.ZobristKey(), v)
	}
	return v
}

// orderMoves generates the pseudo legal moves for the node and
// orders them: TT move first, non-capture promotions next, captures
// by MVV*16-LVA plus promotion bonus, then the two killers of the
// ply, then by history score. The sort is stable so ordering is
// deterministic.
func (s *Search) orderMoves(p *position.Position, ply int, ttMove Move, mode movegen.GenMode) []scoredMove {
	gen := s.mg[ply].GeneratePseudoLegalMoves(p, mode)
	us := p.NextPlayer()
	list := s.moveList[ply][:0]
	for i := 0; i < gen.Len(); i++ {
		m := gen.At(i)
		capture := p.IsCapturingMove(m)
		var score int64
		switch {
		case ttMove != MoveNone && m.MoveOf() == ttMove.MoveOf():
			score = scoreTTMove
		case m.MoveType() == Promotion && !capture:
			score = scorePromotion + int64(m.PromotionType().ValueOf())
		case capture:
			score = scoreCapture + s.mvvLva(p, m)
		case m == s.killers[ply][0]:
			score = scoreKiller1
		case m == s.killers[ply][1]:
			score = scoreKiller2
		default:
			score = s.history.Get(us, m.From(), m.To())
		}
		list = append(list, scoredMove{move: m, score: score})
	}
	s.moveList[ply] = list
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].score > list[j].score
	})
	return list
}

// qOrderMoves orders the quiescence moves by capture value minus
// attacker value plus promotion bonus. Quiet evasions (only
// generated while in check) are ordered by history.
func (s *Search) qOrderMoves(p *position.Position, ply int, mode movegen.GenMode) []scoredMove {
	gen := s.mg[ply].GeneratePseudoLegalMoves(p, mode)
	us := p.NextPlayer()
	list := s.moveList[ply][:0]
	for i := 0; i < gen.Len(); i++ {
		m := gen.At(i)
		var score int64
		if p.IsCapturingMove(m) || m.MoveType() == Promotion {
			score = scoreCapture + s.captureValue(p, m)
		} else {
			score = s.history.Get(us, m.From(), m.To())
		}
		list = append(list, scoredMove{move: m, score: score})
	}
	s.moveList[ply] = list
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].score > list[j].score
	})
	return list
}

// mvvLva scores a capture: most valuable victim times 16 minus
// least valuable attacker, plus the promotion piece value for
// capture promotions.
func (s *Search) mvvLva(p *position.Position, m Move) int64 {
	victim := Pawn // en passant captures a pawn
	if target := p.GetPiece(m.To()); target != PieceNone {
		victim = target.TypeOf()
	}
	score := int64(victim.ValueOf())*16 - int64(p.GetPiece(m.From()).ValueOf())
	if m.MoveType() == Promotion {
		score += int64(m.PromotionType().ValueOf())
	}
	return score
}

// captureValue scores a quiescence move: victim value minus
// attacker value plus promotion bonus.
func (s *Search) captureValue(p *position.Position, m Move) int64 {
	var victim int64
	if m.MoveType() == EnPassant {
		victim = int64(Pawn.ValueOf())
	} else if target := p.GetPiece(m.To()); target != PieceNone {
		victim = int64(target.ValueOf())
	}
	score := victim - int64(p.GetPiece(m.From()).ValueOf())
	if m.MoveType() == Promotion {
		score += int64(m.PromotionType().ValueOf())
	}
	return score
}

// storeKiller stores a move which caused a beta cutoff in its ply.
// The previous first killer is shifted, duplicates are not stored.
func (s *Search) storeKiller(ply int, m Move) {
	if s.killers[ply][0] != m {
		s.killers[ply][1] = s.killers[ply][0]
		s.killers[ply][0] = m
	}
}

// storeTT stores a search result in the transposition table with
// the score normalized by the mate distance. No stores happen after
// the cancellation flag has been observed.
func (s *Search) storeTT(p *position.Position, depth int, ply int, move Move, value Value, bound transpositiontable.Bound) {
	if !config.Settings.Search.UseTT || s.stopFlag.Get() {
		return
	}
	if !value.IsValid() {
		return
	}
	s.tt.Put(p.ZobristKey(), move, int16(depth), valueToTT(value, ply), bound)
}

// savePV builds the pv of the node: the move followed by the child pv
func savePV(m Move, src *moveslice.MoveSlice, dest *moveslice.MoveSlice) {
	dest.Clear()
	dest.PushBack(m)
	for i := 0; i < src.Len(); i++ {
		dest.PushBack(src.At(i))
	}
}

// valueToTT normalizes mate scores to the distance from the current
// ply when storing so an entry stays reusable at any ply.
func valueToTT(value Value, ply int) Value {
	if value > ValueCheckMateThreshold {
		return value + Value(ply)
	}
	if value < -ValueCheckMateThreshold {
		return value - Value(ply)
	}
	return value
}

// valueFromTT converts a stored mate distance score back to a ply
// relative score when loading.
func valueFromTT(value Value, ply int) Value {
	if value > ValueCheckMateThreshold {
		return value - Value(ply)
	}
	if value < -ValueCheckMateThreshold {
		return value + Value(ply)
	}
	return value
}
