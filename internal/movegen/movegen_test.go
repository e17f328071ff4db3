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
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/euclidchess/euclid/internal/config"
	myLogging "github.com/euclidchess/euclid/internal/logging"
	"github.com/euclidchess/euclid/internal/position"
	. "github.com/euclidchess/euclid/internal/types"
)

func TestMain(m *testing.M) {
	config.Setup()
	log = myLogging.GetTestLog()
	os.Exit(m.Run())
}

func TestStartPositionMoves(t *testing.T) {
	mg := NewMoveGen()
	p := position.NewPosition()
	pseudo := mg.GeneratePseudoLegalMoves(p, GenAll)
	assert.Equal(t, 20, pseudo.Len())
	legal := mg.GenerateLegalMoves(p, GenAll)
	assert.Equal(t, 20, legal.Len())
	assert.True(t, mg.HasLegalMove(p))
}

func TestKiwipeteMoves(t *testing.T) {
	mg := NewMoveGen()
	p := position.NewPosition("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	legal := mg.GenerateLegalMoves(p, GenAll)
	assert.Equal(t, 48, legal.Len())
}

func TestCheckEvasions(t *testing.T) {
	mg := NewMoveGen()
	// White in check from the rook on e2: Kxe2, Kd1, Kf1
	p := position.NewPosition("4k3/8/8/8/8/8/4r3/4K3 w - - 0 1")
	legal := mg.GenerateLegalMoves(p, GenAll)
	assert.Equal(t, 3, legal.Len())
}

func TestPinnedPawn(t *testing.T) {
	mg := NewMoveGen()
	// the d2 pawn is pinned diagonally by the bishop on b4 - only
	// the four king moves are legal
	p := position.NewPosition("4k3/8/8/8/1b6/8/3P4/4K3 w - - 0 1")
	legal := mg.GenerateLegalMoves(p, GenAll)
	assert.Equal(t, 4, legal.Len())
	for i := 0; i < legal.Len(); i++ {
		assert.Equal(t, SqE1, legal.At(i).From())
	}
}

func TestPromotions(t *testing.T) {
	mg := NewMoveGen()
	// quiet promotion on b8 and capture promotion on c8 - four
	// promotion pieces each
	p := position.NewPosition("2r5/1P6/8/8/7k/8/8/4K3 w - - 0 1")
	pseudo := mg.GeneratePseudoLegalMoves(p, GenAll)
	promotions := 0
	targets := map[Square]int{}
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.At(i)
		if m.MoveType() == Promotion {
			promotions++
			targets[m.To()]++
		}
	}
	assert.Equal(t, 8, promotions)
	assert.Equal(t, 4, targets[SqB8])
	assert.Equal(t, 4, targets[SqC8])

	// promotions are generated in the non-quiet mode as well
	nonQuiet := mg.GeneratePseudoLegalMoves(p, GenNonQuiet)
	promotions = 0
	for i := 0; i < nonQuiet.Len(); i++ {
		if nonQuiet.At(i).MoveType() == Promotion {
			promotions++
		}
	}
	assert.Equal(t, 8, promotions)
}

func TestEnPassantGeneration(t *testing.T) {
	mg := NewMoveGen()
	p := position.NewPosition("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	pseudo := mg.GeneratePseudoLegalMoves(p, GenAll)
	eps := 0
	for i := 0; i < pseudo.Len(); i++ {
		if pseudo.At(i).MoveType() == EnPassant {
			eps++
			assert.Equal(t, SqE5, pseudo.At(i).From())
			assert.Equal(t, SqF6, pseudo.At(i).To())
		}
	}
	assert.Equal(t, 1, eps)
}

func TestNoKingCaptureGenerated(t *testing.T) {
	mg := NewMoveGen()
	// the black king on d5 is in the pawn's capture range but no
	// generated move may target it
	p := position.NewPosition("8/8/8/3k4/4P3/8/3N4/3QK3 w - - 0 1")
	pseudo := mg.GeneratePseudoLegalMoves(p, GenAll)
	for i := 0; i < pseudo.Len(); i++ {
		assert.NotEqual(t, SqD5, pseudo.At(i).To(), "move %s targets the enemy king", pseudo.At(i).StringUci())
	}
}

func TestCastlingGeneration(t *testing.T) {
	mg := NewMoveGen()

	// both castles available
	p := position.NewPosition("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	count := castleCount(mg, p)
	assert.Equal(t, 2, count)

	// blocked long castle
	p = position.NewPosition("r3k2r/8/8/8/8/8/8/RN2K2R w KQkq - 0 1")
	assert.Equal(t, 1, castleCount(mg, p))

	// king in check - no castling
	p = position.NewPosition("r3k2r/8/8/8/8/8/4r3/R3K2R w KQkq - 0 1")
	assert.Equal(t, 0, castleCount(mg, p))

	// crossing square attacked - no short castle
	p = position.NewPosition("r3k2r/8/8/8/8/8/5r2/R3K2R w KQkq - 0 1")
	assert.Equal(t, 1, castleCount(mg, p))

	// no rights - no castling
	p = position.NewPosition("r3k2r/8/8/8/8/8/8/R3K2R w - - 0 1")
	assert.Equal(t, 0, castleCount(mg, p))
}

func castleCount(mg *Movegen, p *position.Position) int {
	pseudo := mg.GeneratePseudoLegalMoves(p, GenAll)
	count := 0
	for i := 0; i < pseudo.Len(); i++ {
		if pseudo.At(i).MoveType() == Castling {
			count++
		}
	}
	return count
}

func TestGetMoveFromUci(t *testing.T) {
	mg := NewMoveGen()
	p := position.NewPosition()

	m := mg.GetMoveFromUci(p, "e2e4")
	require.NotEqual(t, MoveNone, m)
	assert.Equal(t, SqE2, m.From())
	assert.Equal(t, SqE4, m.To())

	assert.Equal(t, MoveNone, mg.GetMoveFromUci(p, "e2e5"))
	assert.Equal(t, MoveNone, mg.GetMoveFromUci(p, "xxxx"))
	assert.Equal(t, MoveNone, mg.GetMoveFromUci(p, ""))

	// promotion parse - encode then parse yields the original move
	p = position.NewPosition("2r5/1P6/8/8/7k/8/8/4K3 w - - 0 1")
	m = mg.GetMoveFromUci(p, "b7b8q")
	require.NotEqual(t, MoveNone, m)
	assert.Equal(t, Promotion, m.MoveType())
	assert.Equal(t, Queen, m.PromotionType())
	assert.Equal(t, m, mg.GetMoveFromUci(p, m.StringUci()))

	m = mg.GetMoveFromUci(p, "b7c8n")
	require.NotEqual(t, MoveNone, m)
	assert.Equal(t, Knight, m.PromotionType())

	// a promotion without the promotion letter does not match
	assert.Equal(t, MoveNone, mg.GetMoveFromUci(p, "b7b8"))
}
