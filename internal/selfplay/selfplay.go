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

// Package selfplay lets the engine play games against itself by
// repeatedly invoking the search. Used for engine testing and for
// dataset generation.
package selfplay

import (
	"time"

	"github.com/op/go-logging"

	myLogging "github.com/euclidchess/euclid/internal/logging"
	"github.com/euclidchess/euclid/internal/movegen"
	"github.com/euclidchess/euclid/internal/moveslice"
	"github.com/euclidchess/euclid/internal/position"
	"github.com/euclidchess/euclid/internal/search"
	. "github.com/euclidchess/euclid/internal/types"
)

// Outcome classifies the end of a selfplay game
type Outcome int

// Outcome constants
const (
	WhiteWin Outcome = iota
	BlackWin
	Draw
	Aborted
)

// String returns a readable outcome
func (o Outcome) String() string {
	switch o {
	case WhiteWin:
		return "1-0"
	case BlackWin:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	}
	return "aborted"
}

// GameReport holds the result of one selfplay game
type GameReport struct {
	Outcome  Outcome
	Reason   string
	Plies    int
	Moves    moveslice.MoveSlice
	Nodes    uint64
	Duration time.Duration
}

// Selfplay drives games of the engine against itself. Each instance
// owns its own search (with its own transposition table) so several
// instances can play games concurrently.
type Selfplay struct {
	log    *logging.Logger
	search *search.Search
	mg     *movegen.Movegen
}

// NewSelfplay creates a new selfplay driver
func NewSelfplay() *Selfplay {
	return &Selfplay{
		log:    myLogging.GetLog(),
		search: search.NewSearch(),
		mg:     movegen.NewMoveGen(),
	}
}

// Play plays one game from the given start position until a rule
// draw, mate, stalemate or the ply cap is reached. Each ply the
// search selects the move. A null or illegal best move from the
// search falls back to the first legal move. Hitting the ply cap
// classifies the game as a draw (dataset semantics).
func (sp *Selfplay) Play(start *position.Position, maxPlies int, limits search.Limits) GameReport {
	report := GameReport{Outcome: Aborted, Moves: *moveslice.NewMoveSlice(maxPlies)}
	startTime := time.Now()

	// every game starts from a clean search state so games are
	// reproducible independent of what was played before
	sp.search.NewGame()

	p := *start

	// key history for the threefold detection - the current key is
	// always at the back
	history := make([]position.Key, 0, maxPlies+1)
	history = append(history, p.ZobristKey())

	// a sensible deterministic control knob when no limit is given
	if limits.Depth == 0 && limits.Nodes == 0 && limits.MoveTime == 0 &&
		limits.WhiteTime == 0 && limits.BlackTime == 0 {
		limits.Depth = 2
	}

	done := false
	for ply := 0; ply < maxPlies && !done; ply++ {
		switch {
		case position.IsRuleDraw(&p, history):
			report.Outcome = Draw
			report.Reason = "rule draw (50-move, repetition, or insufficient material)"
			done = true

		case !sp.mg.HasLegalMove(&p):
			if p.HasCheck() {
				// side to move is mated - the other side wins
				if p.NextPlayer() == White {
					report.Outcome = BlackWin
				} else {
					report.Outcome = WhiteWin
				}
				report.Reason = "checkmate"
			} else {
				report.Outcome = Draw
				report.Reason = "stalemate"
			}
			done = true

		default:
			r := sp.search.Search(&p, limits)
			report.Nodes += r.Nodes

			m := r.BestMove
			if m == MoveNone || !sp.mg.ValidateMove(&p, m) {
				// defend against a null or illegal best move
				legal := sp.mg.GenerateLegalMoves(&p, movegen.GenAll)
				if legal.Len() == 0 {
					report.Reason = "no legal move selectable"
					done = true
					break
				}
				m = legal.At(0)
			}

			p.DoMove(m)
			report.Moves.PushBack(m)
			history = append(history, p.ZobristKey())
		}
	}

	report.Plies = report.Moves.Len()
	report.Duration = time.Since(startTime)

	// hitting the ply cap counts as a draw so dataset generation
	// still gets labels for long games
	if !done {
		report.Outcome = Draw
		report.Reason = "max plies reached"
	}
	return report
}
