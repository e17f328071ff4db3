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

package position

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	. "github.com/euclidchess/euclid/internal/types"
)

// ErrInvalidFen is the base error for all fen decoding failures
var ErrInvalidFen = errors.New("invalid fen")

// regex for the first part of a fen (position of pieces)
var regexFenPos = regexp.MustCompile("^[0-8pPnNbBrRqQkK/]+$")

// regex for the next player color in a fen
var regexWorB = regexp.MustCompile("^[wb]$")

// regex for the castling rights in a fen
var regexCastlingRights = regexp.MustCompile("^(K?Q?k?q?|-)$")

// regex for the en passant square in a fen
var regexEnPassant = regexp.MustCompile("^([a-h][36]|-)$")

// setupBoard sets up a board based on a fen. This is basically the
// only way to get a valid Position instance. A fen needs all six
// fields. On error the position is not changed.
func (p *Position) setupBoard(fen string) error {
	fenParts := strings.Fields(strings.TrimSpace(fen))
	if len(fenParts) != 6 {
		return fmt.Errorf("%w: six fields required, got %d", ErrInvalidFen, len(fenParts))
	}

	// build into a fresh position so the receiver stays untouched
	// when any field is malformed
	var tmp Position
	tmp.enPassantSquare = SqNone

	// piece placement - fen starts at a8 and runs to h1 with / as
	// rank separator
	if !regexFenPos.MatchString(fenParts[0]) {
		return fmt.Errorf("%w: piece placement contains invalid characters", ErrInvalidFen)
	}
	ranks := strings.Split(fenParts[0], "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: piece placement requires 8 ranks", ErrInvalidFen)
	}
	for i, rankStr := range ranks {
		r := Rank8 - Rank(i)
		f := FileA
		for _, c := range rankStr {
			if c >= '1' && c <= '8' {
				f += File(c - '0')
				continue
			}
			if f > FileH {
				return fmt.Errorf("%w: too many squares in rank %s", ErrInvalidFen, r.String())
			}
			piece := PieceFromChar(string(c))
			if piece == PieceNone {
				return fmt.Errorf("%w: invalid piece character %q", ErrInvalidFen, string(c))
			}
			tmp.putPiece(piece, SquareOf(f, r))
			f++
		}
		if f != FileNone {
			return fmt.Errorf("%w: rank %s does not describe 8 squares", ErrInvalidFen, r.String())
		}
	}

	// next player
	if !regexWorB.MatchString(fenParts[1]) {
		return fmt.Errorf("%w: invalid active color %q", ErrInvalidFen, fenParts[1])
	}
	if fenParts[1] == "b" {
		tmp.nextPlayer = Black
		tmp.zobristKey ^= zobristBase.sideToMove
	}

	// castling rights
	if !regexCastlingRights.MatchString(fenParts[2]) {
		return fmt.Errorf("%w: invalid castling rights %q", ErrInvalidFen, fenParts[2])
	}
	if fenParts[2] != "-" {
		for _, c := range fenParts[2] {
			switch c {
			case 'K':
				tmp.castlingRights.Add(CastlingWhiteOO)
			case 'Q':
				tmp.castlingRights.Add(CastlingWhiteOOO)
			case 'k':
				tmp.castlingRights.Add(CastlingBlackOO)
			case 'q':
				tmp.castlingRights.Add(CastlingBlackOOO)
			}
		}
		tmp.zobristKey ^= zobristCastling(tmp.castlingRights)
	}

	// en passant square
	if !regexEnPassant.MatchString(fenParts[3]) {
		return fmt.Errorf("%w: invalid en passant square %q", ErrInvalidFen, fenParts[3])
	}
	if fenParts[3] != "-" {
		tmp.enPassantSquare = MakeSquare(fenParts[3])
		tmp.zobristKey ^= zobristBase.epFile[tmp.enPassantSquare.FileOf()]
	}

	// half move clock
	halfMoves, err := strconv.Atoi(fenParts[4])
	if err != nil || halfMoves < 0 {
		return fmt.Errorf("%w: invalid halfmove clock %q", ErrInvalidFen, fenParts[4])
	}
	tmp.halfMoveClock = halfMoves

	// full move number
	fullMoves, err := strconv.Atoi(fenParts[5])
	if err != nil || fullMoves < 1 {
		return fmt.Errorf("%w: invalid fullmove number %q", ErrInvalidFen, fenParts[5])
	}
	tmp.fullMoveNumber = fullMoves

	*p = tmp
	return nil
}

// StringFen returns a string with the fen of the current position
func (p *Position) StringFen() string {
	var fen strings.Builder
	// pieces - starting at a8 running to h1
	for i := 0; i < 8; i++ {
		r := Rank8 - Rank(i)
		emptySquares := 0
		for f := FileA; f <= FileH; f++ {
			pc := p.board[SquareOf(f, r)]
			if pc == PieceNone {
				emptySquares++
			} else {
				if emptySquares > 0 {
					fen.WriteString(strconv.Itoa(emptySquares))
					emptySquares = 0
				}
				fen.WriteString(pc.String())
			}
		}
		if emptySquares > 0 {
			fen.WriteString(strconv.Itoa(emptySquares))
		}
		if r > Rank1 {
			fen.WriteString("/")
		}
	}
	// next player
	fen.WriteString(" ")
	fen.WriteString(p.nextPlayer.String())
	// castling
	fen.WriteString(" ")
	fen.WriteString(p.castlingRights.String())
	// en passant
	fen.WriteString(" ")
	fen.WriteString(p.enPassantSquare.String())
	// half move clock
	fen.WriteString(" ")
	fen.WriteString(strconv.Itoa(p.halfMoveClock))
	// full move number
	fen.WriteString(" ")
	fen.WriteString(strconv.Itoa(p.fullMoveNumber))
	return fen.String()
}
