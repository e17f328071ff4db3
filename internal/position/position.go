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

// Package position represents the chess board and its position.
// It uses an 8x8 piece board and bitboards, zobrist keys for
// transposition tables and provides the reversible make/unmake of
// moves including null moves.
//
// Create a new instance with NewPosition() with no parameters to get
// the chess start position.
package position

import (
	"strings"

	"github.com/op/go-logging"

	"github.com/euclidchess/euclid/internal/assert"
	"github.com/euclidchess/euclid/internal/attacks"
	myLogging "github.com/euclidchess/euclid/internal/logging"
	. "github.com/euclidchess/euclid/internal/types"
)

var log *logging.Logger

// StartFen is a string with the fen position for a standard chess game
const StartFen string = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Key is used for zobrist keys in chess positions.
// Zobrist keys need all 64 bits for distribution.
type Key uint64

// Position represents the chess board and its state: piece
// placement, side to move, castling rights, en passant target and
// the halfmove/fullmove clocks. The zobrist key is updated
// incrementally by every mutation.
//
// Needs to be created with NewPosition() or NewPositionFen(fen).
type Position struct {
	// The zobrist key to use as a hash key in transposition tables.
	// Will be updated incrementally every time one of the state
	// variables changes.
	zobristKey Key

	// board state
	board           [SqLength]Piece
	piecesBb        [ColorLength][PtLength]Bitboard
	occupiedBb      [ColorLength]Bitboard
	kingSquare      [ColorLength]Square
	nextPlayer      Color
	castlingRights  CastlingRights
	enPassantSquare Square
	halfMoveClock   int
	fullMoveNumber  int
}

// UndoRecord holds the minimal state to reverse a move on the
// position it was applied to. One record is kept per recursion
// level of the search so no allocations happen during make/unmake.
type UndoRecord struct {
	Mover             Color
	MovedType         PieceType
	CapturedType      PieceType
	CapturedSq        Square
	PrevEnPassant     Square
	PrevCastling      CastlingRights
	PrevHalfMoveClock int
	PrevFullMoveNum   int
	PrevKey           Key
}

// castlingRightsBySquare maps the squares whose touch invalidates
// castling rights to the rights they invalidate.
var castlingRightsBySquare = [SqLength]CastlingRights{}

func init() {
	castlingRightsBySquare[SqE1] = CastlingWhite
	castlingRightsBySquare[SqH1] = CastlingWhiteOO
	castlingRightsBySquare[SqA1] = CastlingWhiteOOO
	castlingRightsBySquare[SqE8] = CastlingBlack
	castlingRightsBySquare[SqH8] = CastlingBlackOO
	castlingRightsBySquare[SqA8] = CastlingBlackOOO
}

// NewPosition creates a new position.
// When called without an argument the position will have the start
// position. When a fen string is given it will create a position
// based on this fen. Additional fens/strings are ignored.
func NewPosition(fen ...string) *Position {
	if len(fen) == 0 {
		p, _ := NewPositionFen(StartFen)
		return p
	}
	p, _ := NewPositionFen(fen[0])
	return p
}

// NewPositionFen creates a new position with the given fen string
// as board position.
// It returns nil and an error if the fen was invalid.
func NewPositionFen(fen string) (*Position, error) {
	if log == nil {
		log = myLogging.GetLog()
	}
	p := &Position{}
	if e := p.setupBoard(fen); e != nil {
		log.Errorf("fen for position setup not valid and position can't be created: %s", e)
		return nil, e
	}
	return p, nil
}

// DoMove commits a move to the board and returns the undo record
// needed to reverse it. Due to performance there is no check if this
// move is legal on the current position. Legal check needs to be
// done beforehand or after in case of pseudo legal moves.
func (p *Position) DoMove(m Move) UndoRecord {
	fromSq := m.From()
	toSq := m.To()
	fromPc := p.board[fromSq]
	myColor := fromPc.ColorOf()

	if assert.DEBUG {
		assert.Assert(m.IsValid(), "Position DoMove: Invalid move %s", m.String())
		assert.Assert(fromPc != PieceNone, "Position DoMove: No piece on %s for move %s", fromSq.String(), m.StringUci())
		assert.Assert(myColor == p.nextPlayer, "Position DoMove: Piece to move does not belong to next player")
		assert.Assert(p.board[toSq].TypeOf() != King, "Position DoMove: King cannot be captured")
	}

	undo := UndoRecord{
		Mover:             myColor,
		MovedType:         fromPc.TypeOf(),
		CapturedType:      PtNone,
		CapturedSq:        SqNone,
		PrevEnPassant:     p.enPassantSquare,
		PrevCastling:      p.castlingRights,
		PrevHalfMoveClock: p.halfMoveClock,
		PrevFullMoveNum:   p.fullMoveNumber,
		PrevKey:           p.zobristKey,
	}

	switch m.MoveType() {
	case Normal:
		p.doNormalMove(&undo, fromSq, toSq, fromPc, myColor)
	case Promotion:
		p.doPromotionMove(&undo, m, fromSq, toSq, myColor)
	case EnPassant:
		p.doEnPassantMove(&undo, fromSq, toSq, myColor)
	case Castling:
		p.doCastlingMove(fromSq, toSq, myColor)
	}

	if myColor == Black {
		p.fullMoveNumber++
	}
	p.nextPlayer = p.nextPlayer.Flip()
	p.zobristKey ^= zobristBase.sideToMove

	return undo
}

// UndoMove reverses the given move using the undo record returned
// by the corresponding DoMove call. Afterwards every position field
// including the zobrist key is bit identical to the state before
// the move.
func (p *Position) UndoMove(m Move, undo UndoRecord) {
	p.nextPlayer = undo.Mover

	switch m.MoveType() {
	case Normal:
		p.movePiece(m.To(), m.From())
		if undo.CapturedType != PtNone {
			p.putPiece(MakePiece(undo.Mover.Flip(), undo.CapturedType), undo.CapturedSq)
		}
	case Promotion:
		p.removePiece(m.To())
		p.putPiece(MakePiece(undo.Mover, Pawn), m.From())
		if undo.CapturedType != PtNone {
			p.putPiece(MakePiece(undo.Mover.Flip(), undo.CapturedType), undo.CapturedSq)
		}
	case EnPassant:
		p.movePiece(m.To(), m.From())
		p.putPiece(MakePiece(undo.Mover.Flip(), Pawn), undo.CapturedSq)
	case Castling:
		p.movePiece(m.To(), m.From()) // king
		switch m.To() {
		case SqG1:
			p.movePiece(SqF1, SqH1)
		case SqC1:
			p.movePiece(SqD1, SqA1)
		case SqG8:
			p.movePiece(SqF8, SqH8)
		case SqC8:
			p.movePiece(SqD8, SqA8)
		}
	}

	p.castlingRights = undo.PrevCastling
	p.enPassantSquare = undo.PrevEnPassant
	p.halfMoveClock = undo.PrevHalfMoveClock
	p.fullMoveNumber = undo.PrevFullMoveNum
	p.zobristKey = undo.PrevKey
}

// DoNullMove is used in null move pruning. The position is basically
// unchanged but the en passant target is cleared and the side to
// move changes. Clocks are preserved.
func (p *Position) DoNullMove() UndoRecord {
	undo := UndoRecord{
		Mover:             p.nextPlayer,
		MovedType:         PtNone,
		CapturedType:      PtNone,
		CapturedSq:        SqNone,
		PrevEnPassant:     p.enPassantSquare,
		PrevCastling:      p.castlingRights,
		PrevHalfMoveClock: p.halfMoveClock,
		PrevFullMoveNum:   p.fullMoveNumber,
		PrevKey:           p.zobristKey,
	}
	p.clearEnPassant()
	p.nextPlayer = p.nextPlayer.Flip()
	p.zobristKey ^= zobristBase.sideToMove
	return undo
}

// UndoNullMove restores the state of the position to before the
// DoNullMove call.
func (p *Position) UndoNullMove(undo UndoRecord) {
	p.nextPlayer = undo.Mover
	p.enPassantSquare = undo.PrevEnPassant
	p.zobristKey = undo.PrevKey
}

// IsAttacked checks if the given square is attacked by a piece of
// the given color. The checks are independent per attacker kind:
// knight sources, king adjacency, pawn sources, the four diagonals
// for bishop/queen and the four orthogonals for rook/queen where
// the first blocker on a ray terminates it.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	// knights
	for _, s := range attacks.KnightTargets[sq] {
		if p.board[s] == MakePiece(by, Knight) {
			return true
		}
	}
	// king
	for _, s := range attacks.KingTargets[sq] {
		if p.board[s] == MakePiece(by, King) {
			return true
		}
	}
	// pawns - the squares from which a pawn of color by captures to
	// sq are the pawn targets of sq for the opposite color
	for _, s := range attacks.PawnTargets[by.Flip()][sq] {
		if p.board[s] == MakePiece(by, Pawn) {
			return true
		}
	}
	// diagonals - bishop or queen
	for dir := attacks.DirNE; dir <= attacks.DirNW; dir++ {
		for _, s := range attacks.Rays[dir][sq] {
			pc := p.board[s]
			if pc == PieceNone {
				continue
			}
			if pc.ColorOf() == by && (pc.TypeOf() == Bishop || pc.TypeOf() == Queen) {
				return true
			}
			break
		}
	}
	// orthogonals - rook or queen
	for dir := attacks.DirN; dir <= attacks.DirW; dir++ {
		for _, s := range attacks.Rays[dir][sq] {
			pc := p.board[s]
			if pc == PieceNone {
				continue
			}
			if pc.ColorOf() == by && (pc.TypeOf() == Rook || pc.TypeOf() == Queen) {
				return true
			}
			break
		}
	}
	return false
}

// InCheck returns true if the king of the given side is attacked
// by the opposite color.
func (p *Position) InCheck(side Color) bool {
	return p.IsAttacked(p.kingSquare[side], side.Flip())
}

// HasCheck returns true if the next player is threatened by a check
func (p *Position) HasCheck() bool {
	return p.InCheck(p.nextPlayer)
}

// WasLegalMove tests if the last applied move was legal, i.e. the
// mover's king is not attacked by the side now to move.
func (p *Position) WasLegalMove() bool {
	return !p.InCheck(p.nextPlayer.Flip())
}

// IsCapturingMove determines if a move on this position is a
// capturing move incl. en passant.
func (p *Position) IsCapturingMove(m Move) bool {
	return p.occupiedBb[p.nextPlayer.Flip()].Has(m.To()) || m.MoveType() == EnPassant
}

// HasNonPawnMaterial returns true when the given side has at least
// one piece which is neither a pawn nor the king. Precondition for
// null move pruning.
func (p *Position) HasNonPawnMaterial(c Color) bool {
	return p.piecesBb[c][Knight]|p.piecesBb[c][Bishop]|p.piecesBb[c][Rook]|p.piecesBb[c][Queen] != 0
}

// HasInsufficientMaterial returns true if no side has enough
// material to force a mate:
//  - K vs K
//  - K + minor vs K
//  - K + N + N vs K
//  - K + B vs K + B with both bishops on the same square color
func (p *Position) HasInsufficientMaterial() bool {
	for c := White; c <= Black; c++ {
		if p.piecesBb[c][Pawn]|p.piecesBb[c][Rook]|p.piecesBb[c][Queen] != 0 {
			return false
		}
	}
	wKnights := p.piecesBb[White][Knight].PopCount()
	wBishops := p.piecesBb[White][Bishop].PopCount()
	bKnights := p.piecesBb[Black][Knight].PopCount()
	bBishops := p.piecesBb[Black][Bishop].PopCount()
	wMinor := wKnights + wBishops
	bMinor := bKnights + bBishops

	// K vs K and K + minor vs K
	if wMinor+bMinor <= 1 {
		return true
	}
	// K + N + N vs K
	if wKnights == 2 && wBishops == 0 && bMinor == 0 {
		return true
	}
	if bKnights == 2 && bBishops == 0 && wMinor == 0 {
		return true
	}
	// K + B vs K + B with same colored bishops
	if wBishops == 1 && wKnights == 0 && bBishops == 1 && bKnights == 0 {
		ws := p.piecesBb[White][Bishop].Lsb()
		bs := p.piecesBb[Black][Bishop].Lsb()
		if (int(ws.FileOf())+int(ws.RankOf()))&1 == (int(bs.FileOf())+int(bs.RankOf()))&1 {
			return true
		}
	}
	return false
}

// IsRuleDraw combines the three rule draws: the 50-move rule (100
// halfmoves), threefold repetition over the given key history (the
// current key is expected at the back of the history) and
// insufficient material.
func IsRuleDraw(p *Position, history []Key) bool {
	if p.halfMoveClock >= 100 {
		return true
	}
	if len(history) > 0 {
		key := history[len(history)-1]
		count := 0
		for _, k := range history {
			if k == key {
				count++
			}
		}
		if count >= 3 {
			return true
		}
	}
	return p.HasInsufficientMaterial()
}

// String returns a string representing the position instance. This
// includes the fen and a board matrix.
func (p *Position) String() string {
	var os strings.Builder
	os.WriteString(p.StringFen())
	os.WriteString("\n")
	os.WriteString(p.StringBoard())
	return os.String()
}

// StringBoard returns a visual matrix of the board and pieces
func (p *Position) StringBoard() string {
	var os strings.Builder
	os.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := Rank8 + 1; r > Rank1; r-- {
		for f := FileA; f <= FileH; f++ {
			os.WriteString("| ")
			pc := p.board[SquareOf(f, r-1)]
			if pc == PieceNone {
				os.WriteString("  ")
			} else {
				os.WriteString(pc.String() + " ")
			}
		}
		os.WriteString("|\n+---+---+---+---+---+---+---+---+\n")
	}
	return os.String()
}

// //////////////////////////////////////////////////////
// Private
// //////////////////////////////////////////////////////

func (p *Position) doNormalMove(undo *UndoRecord, fromSq Square, toSq Square, fromPc Piece, myColor Color) {
	// if we still have castling rights and the move touches castling
	// squares then invalidate the corresponding right
	if p.castlingRights != CastlingNone {
		cr := castlingRightsBySquare[fromSq] | castlingRightsBySquare[toSq]
		if cr != CastlingNone {
			p.zobristKey ^= zobristCastling(p.castlingRights)
			p.castlingRights.Remove(cr)
			p.zobristKey ^= zobristCastling(p.castlingRights)
		}
	}
	p.clearEnPassant()
	targetPc := p.board[toSq]
	if targetPc != PieceNone { // capture
		undo.CapturedType = targetPc.TypeOf()
		undo.CapturedSq = toSq
		p.removePiece(toSq)
		p.halfMoveClock = 0
	} else if fromPc.TypeOf() == Pawn {
		p.halfMoveClock = 0
		// double push - set en passant target to the skipped square
		if int(toSq)-int(fromSq) == 2*int(North) || int(toSq)-int(fromSq) == 2*int(South) {
			p.enPassantSquare = Square((int(fromSq) + int(toSq)) / 2)
			p.zobristKey ^= zobristBase.epFile[p.enPassantSquare.FileOf()]
		}
	} else {
		p.halfMoveClock++
	}
	p.movePiece(fromSq, toSq)
}

func (p *Position) doPromotionMove(undo *UndoRecord, m Move, fromSq Square, toSq Square, myColor Color) {
	targetPc := p.board[toSq]
	if targetPc != PieceNone { // capture
		undo.CapturedType = targetPc.TypeOf()
		undo.CapturedSq = toSq
		p.removePiece(toSq)
	}
	// a promotion capture onto a rook corner invalidates that right
	if p.castlingRights != CastlingNone {
		cr := castlingRightsBySquare[fromSq] | castlingRightsBySquare[toSq]
		if cr != CastlingNone {
			p.zobristKey ^= zobristCastling(p.castlingRights)
			p.castlingRights.Remove(cr)
			p.zobristKey ^= zobristCastling(p.castlingRights)
		}
	}
	p.removePiece(fromSq)
	p.putPiece(MakePiece(myColor, m.PromotionType()), toSq)
	p.clearEnPassant()
	p.halfMoveClock = 0
}

func (p *Position) doEnPassantMove(undo *UndoRecord, fromSq Square, toSq Square, myColor Color) {
	capSq := toSq.To(myColor.Flip().MoveDirection())
	if assert.DEBUG {
		assert.Assert(p.enPassantSquare != SqNone, "Position DoMove: EnPassant move type without en passant")
		assert.Assert(p.board[capSq] == MakePiece(myColor.Flip(), Pawn), "Position DoMove: Captured en passant piece invalid")
	}
	undo.CapturedType = Pawn
	undo.CapturedSq = capSq
	p.removePiece(capSq)
	p.movePiece(fromSq, toSq)
	p.clearEnPassant()
	p.halfMoveClock = 0
}

func (p *Position) doCastlingMove(fromSq Square, toSq Square, myColor Color) {
	p.movePiece(fromSq, toSq) // king
	switch toSq {
	case SqG1:
		p.movePiece(SqH1, SqF1)
	case SqC1:
		p.movePiece(SqA1, SqD1)
	case SqG8:
		p.movePiece(SqH8, SqF8)
	case SqC8:
		p.movePiece(SqA8, SqD8)
	}
	p.zobristKey ^= zobristCastling(p.castlingRights)
	if myColor == White {
		p.castlingRights.Remove(CastlingWhite)
	} else {
		p.castlingRights.Remove(CastlingBlack)
	}
	p.zobristKey ^= zobristCastling(p.castlingRights)
	p.clearEnPassant()
	p.halfMoveClock++
}

func (p *Position) movePiece(fromSq Square, toSq Square) {
	p.putPiece(p.removePiece(fromSq), toSq)
}

func (p *Position) putPiece(piece Piece, square Square) {
	color := piece.ColorOf()
	pieceType := piece.TypeOf()

	if assert.DEBUG {
		assert.Assert(p.board[square] == PieceNone, "tried to put piece on an occupied square: %s", square.String())
	}

	p.board[square] = piece
	if pieceType == King {
		p.kingSquare[color] = square
	}
	p.piecesBb[color][pieceType].PushSquare(square)
	p.occupiedBb[color].PushSquare(square)
	p.zobristKey ^= zobristBase.pieces[color][pieceType][square]
}

func (p *Position) removePiece(square Square) Piece {
	removed := p.board[square]
	color := removed.ColorOf()
	pieceType := removed.TypeOf()

	if assert.DEBUG {
		assert.Assert(removed != PieceNone, "tried to remove piece from an empty square: %s", square.String())
	}

	p.board[square] = PieceNone
	p.piecesBb[color][pieceType].PopSquare(square)
	p.occupiedBb[color].PopSquare(square)
	p.zobristKey ^= zobristBase.pieces[color][pieceType][square]
	return removed
}

func (p *Position) clearEnPassant() {
	if p.enPassantSquare != SqNone {
		p.zobristKey ^= zobristBase.epFile[p.enPassantSquare.FileOf()]
		p.enPassantSquare = SqNone
	}
}

// //////////////////////////////////////////////////////
// Getters
// //////////////////////////////////////////////////////

// ZobristKey returns the current zobrist key for this position
func (p *Position) ZobristKey() Key {
	return p.zobristKey
}

// NextPlayer returns the next player as Color for the position
func (p *Position) NextPlayer() Color {
	return p.nextPlayer
}

// GetPiece returns the piece on the given square. Empty squares
// return PieceNone.
func (p *Position) GetPiece(sq Square) Piece {
	return p.board[sq]
}

// PiecesBb returns the bitboard for the given piece type of the given color
func (p *Position) PiecesBb(c Color, pt PieceType) Bitboard {
	return p.piecesBb[c][pt]
}

// OccupiedAll returns a bitboard of all pieces currently on the board
func (p *Position) OccupiedAll() Bitboard {
	return p.occupiedBb[White] | p.occupiedBb[Black]
}

// OccupiedBb returns a bitboard of all pieces of color c
func (p *Position) OccupiedBb(c Color) Bitboard {
	return p.occupiedBb[c]
}

// GetEnPassantSquare returns the en passant square or SqNone if not set
func (p *Position) GetEnPassantSquare() Square {
	return p.enPassantSquare
}

// CastlingRights returns the castling rights of the position
func (p *Position) CastlingRights() CastlingRights {
	return p.castlingRights
}

// KingSquare returns the current square of the king of color c
func (p *Position) KingSquare(c Color) Square {
	return p.kingSquare[c]
}

// HalfMoveClock returns the position's half move clock
func (p *Position) HalfMoveClock() int {
	return p.halfMoveClock
}

// FullMoveNumber returns the position's full move number
func (p *Position) FullMoveNumber() int {
	return p.fullMoveNumber
}

// RecomputedKey computes the zobrist key of the position from
// scratch by XORing the piece keys of all occupied squares, the
// castling bit keys, the en passant file key and the side to move
// key. Used to verify the incremental key in tests.
func (p *Position) RecomputedKey() Key {
	var k Key
	for sq := SqA1; sq <= SqH8; sq++ {
		pc := p.board[sq]
		if pc == PieceNone {
			continue
		}
		k ^= zobristBase.pieces[pc.ColorOf()][pc.TypeOf()][sq]
	}
	k ^= zobristCastling(p.castlingRights)
	if p.enPassantSquare != SqNone {
		k ^= zobristBase.epFile[p.enPassantSquare.FileOf()]
	}
	if p.nextPlayer == Black {
		k ^= zobristBase.sideToMove
	}
	return k
}
