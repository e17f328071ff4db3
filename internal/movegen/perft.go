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

package movegen

import (
	"time"

	"github.com/euclidchess/euclid/internal/position"
	"github.com/euclidchess/euclid/internal/util"
)

// Perft is the node count correctness harness. It enumerates and
// counts all legal leaf positions at a given depth using the same
// make/unmake code paths as the search.
type Perft struct {
	Nodes uint64

	stopFlag bool
	mg       []*Movegen
}

// NewPerft creates a new Perft instance
func NewPerft() *Perft {
	return &Perft{}
}

// Stop can be used to stop a running perft test
func (pt *Perft) Stop() {
	pt.stopFlag = true
}

// StartPerft runs a perft test on the given fen to the given depth.
// Returns the number of leaf nodes.
func (pt *Perft) StartPerft(fen string, depth int, verbose bool) uint64 {
	pt.stopFlag = false
	pt.Nodes = 0

	p, err := position.NewPositionFen(fen)
	if err != nil {
		if log != nil {
			log.Errorf("perft: invalid fen: %s", err)
		}
		return 0
	}

	// one move generator per depth level
	pt.mg = make([]*Movegen, depth+1)
	for i := 0; i <= depth; i++ {
		pt.mg[i] = NewMoveGen()
	}

	start := time.Now()
	pt.Nodes = pt.perft(p, depth)
	elapsed := time.Since(start)

	if verbose && log != nil {
		log.Infof("Perft depth %d: %s nodes in %s (%s nps)",
			depth, util.FormatNodes(pt.Nodes), elapsed, util.FormatNodes(util.Nps(pt.Nodes, elapsed)))
	}
	return pt.Nodes
}

func (pt *Perft) perft(p *position.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	moves := pt.mg[depth].GeneratePseudoLegalMoves(p, GenAll)
	for i := 0; i < moves.Len(); i++ {
		if pt.stopFlag {
			return nodes
		}
		m := moves.At(i)
		undo := p.DoMove(m)
		if p.WasLegalMove() {
			nodes += pt.perft(p, depth-1)
		}
		p.UndoMove(m, undo)
	}
	return nodes
}
