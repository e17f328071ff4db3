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

// Package movegen contains the pseudo legal move generation for all
// piece kinds including castling, en passant and pawn promotion, the
// legality filter and the perft test harness.
package movegen

import (
	"github.com/op/go-logging"

	"github.com/euclidchess/euclid/internal/attacks"
	myLogging "github.com/euclidchess/euclid/internal/logging"
	"github.com/euclidchess/euclid/internal/moveslice"
	"github.com/euclidchess/euclid/internal/position"
	. "github.com/euclidchess/euclid/internal/types"
)

var log *logging.Logger

// GenMode generation modes for the move generation
type GenMode int

// GenMode constants. GenNonQuiet generates only captures, en passant
// and promotions (for the quiescence search).
const (
	GenAll      GenMode = 0
	GenNonQuiet GenMode = 1
)

// order in which promotion moves are generated
var promotionTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

// Movegen is a data structure for generating moves on a position.
// The generated move lists are reused between calls to avoid
// allocations. Create with NewMoveGen().
type Movegen struct {
	pseudoLegalMoves *moveslice.MoveSlice
	legalMoves       *moveslice.MoveSlice
}

// NewMoveGen creates a new instance of a move generator
func NewMoveGen() *Movegen {
	if log == nil {
		log = myLogging.GetLog()
	}
	return &Movegen{
		pseudoLegalMoves: moveslice.NewMoveSlice(MaxMoves),
		legalMoves:       moveslice.NewMoveSlice(MaxMoves),
	}
}

// GeneratePseudoLegalMoves generates moves for the next player
// ignoring self check. Does not check if the king is left in check
// or passes an attacked square when castling. The output is
// deterministic for a given position. Generated moves never target
// an enemy king.
func (mg *Movegen) GeneratePseudoLegalMoves(p *position.Position, mode GenMode) *moveslice.MoveSlice {
	mg.pseudoLegalMoves.Clear()
	mg.generatePawnMoves(p, mode, mg.pseudoLegalMoves)
	mg.generateKnightMoves(p, mode, mg.pseudoLegalMoves)
	mg.generateKingMoves(p, mode, mg.pseudoLegalMoves)
	mg.generateSliderMoves(p, mode, mg.pseudoLegalMoves)
	if mode == GenAll {
		mg.generateCastling(p, mg.pseudoLegalMoves)
	}
	return mg.pseudoLegalMoves
}

// GenerateLegalMoves generates all legal moves for the next player.
// Uses GeneratePseudoLegalMoves and filters out moves leaving the
// mover's king in check.
func (mg *Movegen) GenerateLegalMoves(p *position.Position, mode GenMode) *moveslice.MoveSlice {
	mg.GeneratePseudoLegalMoves(p, mode)
	mg.legalMoves.Clear()
	for i := 0; i < mg.pseudoLegalMoves.Len(); i++ {
		m := mg.pseudoLegalMoves.At(i)
		undo := p.DoMove(m)
		if p.WasLegalMove() {
			mg.legalMoves.PushBack(m)
		}
		p.UndoMove(m, undo)
	}
	return mg.legalMoves
}

// HasLegalMove determines if the next player has at least one legal
// move on the position.
func (mg *Movegen) HasLegalMove(p *position.Position) bool {
	return mg.GenerateLegalMoves(p, GenAll).Len() > 0
}

// GetMoveFromUci parses a move in uci notation (e.g. e2e4, e7e8q)
// and matches it against the pseudo legal moves of the position.
// Returns MoveNone if no matching move exists.
func (mg *Movegen) GetMoveFromUci(p *position.Position, uciMove string) Move {
	if len(uciMove) < 4 || len(uciMove) > 5 {
		return MoveNone
	}
	from := MakeSquare(uciMove[0:2])
	to := MakeSquare(uciMove[2:4])
	if from == SqNone || to == SqNone {
		return MoveNone
	}
	promType := PtNone
	if len(uciMove) == 5 {
		promType = PieceTypeFromChar(uciMove[4:5])
		if promType == PtNone || promType == Pawn || promType == King {
			return MoveNone
		}
	}
	// a move exists iff from, to and promotion match a generated move
	moves := mg.GeneratePseudoLegalMoves(p, GenAll)
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.From() != from || m.To() != to {
			continue
		}
		if m.MoveType() == Promotion {
			if m.PromotionType() == promType {
				return m
			}
			continue
		}
		if promType == PtNone {
			return m
		}
	}
	return MoveNone
}

// ValidateMove tests if the given move is a legal move on the
// position.
func (mg *Movegen) ValidateMove(p *position.Position, m Move) bool {
	if m == MoveNone {
		return false
	}
	moves := mg.GenerateLegalMoves(p, GenAll)
	for i := 0; i < moves.Len(); i++ {
		if moves.At(i).MoveOf() == m.MoveOf() {
			return true
		}
	}
	return false
}

// //////////////////////////////////////////////////////
// Private
// //////////////////////////////////////////////////////

func (mg *Movegen) generatePawnMoves(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	us := p.NextPlayer()
	them := us.Flip()
	myPawns := p.PiecesBb(us, Pawn)
	occupied := p.OccupiedAll()
	epSquare := p.GetEnPassantSquare()

	for myPawns != 0 {
		from := myPawns.PopLsb()

		// captures incl. en passant and capture promotions
		for _, to := range attacks.PawnTargets[us][from] {
			target := p.GetPiece(to)
			if target != PieceNone && target.ColorOf() == them && target.TypeOf() != King {
				if to.RankOf() == us.PromotionRank() {
					for _, pt := range promotionTypes {
						ml.PushBack(CreateMove(from, to, Promotion, pt))
					}
				} else {
					ml.PushBack(CreateMove(from, to, Normal, PtNone))
				}
			} else if to == epSquare {
				ml.PushBack(CreateMove(from, to, EnPassant, PtNone))
			}
		}

		// pushes
		to := from.To(us.MoveDirection())
		if to == SqNone || occupied.Has(to) {
			continue
		}
		if to.RankOf() == us.PromotionRank() {
			// promotion pushes are generated in both modes
			for _, pt := range promotionTypes {
				ml.PushBack(CreateMove(from, to, Promotion, pt))
			}
			continue
		}
		if mode == GenAll {
			ml.PushBack(CreateMove(from, to, Normal, PtNone))
			// double push only from the start rank when both the
			// intermediate and the destination square are empty
			if from.RankOf() == us.PawnStartRank() {
				to2 := to.To(us.MoveDirection())
				if to2 != SqNone && !occupied.Has(to2) {
					ml.PushBack(CreateMove(from, to2, Normal, PtNone))
				}
			}
		}
	}
}

func (mg *Movegen) generateKnightMoves(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	us := p.NextPlayer()
	myKnights := p.PiecesBb(us, Knight)
	for myKnights != 0 {
		from := myKnights.PopLsb()
		mg.generateTargetListMoves(p, mode, from, attacks.KnightTargets[from], ml)
	}
}

func (mg *Movegen) generateKingMoves(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	us := p.NextPlayer()
	from := p.KingSquare(us)
	mg.generateTargetListMoves(p, mode, from, attacks.KingTargets[from], ml)
}

// generateTargetListMoves emits quiet moves and captures for a
// precomputed target list (knight and king moves). A king is never
// a capture target.
func (mg *Movegen) generateTargetListMoves(p *position.Position, mode GenMode, from Square, targets []Square, ml *moveslice.MoveSlice) {
	us := p.NextPlayer()
	for _, to := range targets {
		target := p.GetPiece(to)
		if target == PieceNone {
			if mode == GenAll {
				ml.PushBack(CreateMove(from, to, Normal, PtNone))
			}
		} else if target.ColorOf() != us && target.TypeOf() != King {
			ml.PushBack(CreateMove(from, to, Normal, PtNone))
		}
	}
}

func (mg *Movegen) generateSliderMoves(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	us := p.NextPlayer()
	mg.generateRayMoves(p, mode, p.PiecesBb(us, Bishop), attacks.DirNE, attacks.DirNW, ml)
	mg.generateRayMoves(p, mode, p.PiecesBb(us, Rook), attacks.DirN, attacks.DirW, ml)
	mg.generateRayMoves(p, mode, p.PiecesBb(us, Queen), attacks.DirN, attacks.DirNW, ml)
}

// generateRayMoves walks each ray of the given direction range.
// Squares are emitted as quiet moves until a non empty square is
// encountered. An enemy non king piece on that square is emitted as
// a single capture, the ray then terminates.
func (mg *Movegen) generateRayMoves(p *position.Position, mode GenMode, pieces Bitboard, dirFrom int, dirTo int, ml *moveslice.MoveSlice) {
	us := p.NextPlayer()
	for pieces != 0 {
		from := pieces.PopLsb()
		for dir := dirFrom; dir <= dirTo; dir++ {
			for _, to := range attacks.Rays[dir][from] {
				target := p.GetPiece(to)
				if target == PieceNone {
					if mode == GenAll {
						ml.PushBack(CreateMove(from, to, Normal, PtNone))
					}
					continue
				}
				if target.ColorOf() != us && target.TypeOf() != King {
					ml.PushBack(CreateMove(from, to, Normal, PtNone))
				}
				break
			}
		}
	}
}

// generateCastling emits short and long castling when the right is
// still available, king and rook are on their canonical squares,
// all intermediate squares are empty, the king is not in check and
// the two squares the king crosses are not attacked by the opponent.
func (mg *Movegen) generateCastling(p *position.Position, ml *moveslice.MoveSlice) {
	us := p.NextPlayer()
	them := us.Flip()
	occupied := p.OccupiedAll()

	if us == White {
		if p.CastlingRights().Has(CastlingWhiteOO) &&
			p.GetPiece(SqE1) == WhiteKing && p.GetPiece(SqH1) == WhiteRook &&
			!occupied.Has(SqF1) && !occupied.Has(SqG1) &&
			!p.IsAttacked(SqE1, them) && !p.IsAttacked(SqF1, them) && !p.IsAttacked(SqG1, them) {
			ml.PushBack(CreateMove(SqE1, SqG1, Castling, PtNone))
		}
		if p.CastlingRights().Has(CastlingWhiteOOO) &&
			p.GetPiece(SqE1) == WhiteKing && p.GetPiece(SqA1) == WhiteRook &&
			!occupied.Has(SqD1) && !occupied.Has(SqC1) && !occupied.Has(SqB1) &&
			!p.IsAttacked(SqE1, them) && !p.IsAttacked(SqD1, them) && !p.IsAttacked(SqC1, them) {
			ml.PushBack(CreateMove(SqE1, SqC1, Castling, PtNone))
		}
	} else {
		if p.CastlingRights().Has(CastlingBlackOO) &&
			p.GetPiece(SqE8) == BlackKing && p.GetPiece(SqH8) == BlackRook &&
			!occupied.Has(SqF8) && !occupied.Has(SqG8) &&
			!p.IsAttacked(SqE8, them) && !p.IsAttacked(SqF8, them) && !p.IsAttacked(SqG8, them) {
			ml.PushBack(CreateMove(SqE8, SqG8, Castling, PtNone))
		}
		if p.CastlingRights().Has(CastlingBlackOOO) &&
			p.GetPiece(SqE8) == BlackKing && p.GetPiece(SqA8) == BlackRook &&
			!occupied.Has(SqD8) && !occupied.Has(SqC8) && !occupied.Has(SqB8) &&
			!p.IsAttacked(SqE8, them) && !p.IsAttacked(SqD8, them) && !p.IsAttacked(SqC8, them) {
			ml.PushBack(CreateMove(SqE8, SqC8, Castling, PtNone))
		}
	}
}
