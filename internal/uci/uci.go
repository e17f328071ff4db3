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

// Package uci implements the UCI protocol to handle the
// communication between a chess user interface and the engine.
package uci

import (
	"bufio"
	"bytes"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/op/go-logging"

	myLogging "github.com/euclidchess/euclid/internal/logging"
	"github.com/euclidchess/euclid/internal/movegen"
	"github.com/euclidchess/euclid/internal/position"
	"github.com/euclidchess/euclid/internal/search"
	. "github.com/euclidchess/euclid/internal/types"
	"github.com/euclidchess/euclid/internal/version"
)

var log *logging.Logger

// UciHandler handles all communication with the chess ui via UCI
// and controls options and the search.
// Create an instance with NewUciHandler().
type UciHandler struct {
	InIo       *bufio.Scanner
	OutIo      *bufio.Writer
	outLock    sync.Mutex
	myMoveGen  *movegen.Movegen
	mySearch   *search.Search
	myPosition *position.Position
	myPerft    *movegen.Perft
	uciLog     *logging.Logger
}

// NewUciHandler creates a new UciHandler instance.
// Input/output io can be replaced by changing the instance's
// InIo and OutIo members.
func NewUciHandler() *UciHandler {
	if log == nil {
		log = myLogging.GetLog()
	}
	return &UciHandler{
		InIo:       bufio.NewScanner(os.Stdin),
		OutIo:      bufio.NewWriter(os.Stdout),
		myMoveGen:  movegen.NewMoveGen(),
		mySearch:   search.NewSearch(),
		myPosition: position.NewPosition(),
		myPerft:    movegen.NewPerft(),
		uciLog:     myLogging.GetUciLog(),
	}
}

// Search exposes the search of the handler (mostly for tests)
func (u *UciHandler) Search() *search.Search {
	return u.mySearch
}

// Loop starts the main loop to receive commands through the input
// stream (pipe or user) until "quit" or the stream closes.
func (u *UciHandler) Loop() {
	for u.InIo.Scan() {
		cmd := strings.TrimSpace(u.InIo.Text())
		if cmd == "" {
			continue
		}
		u.uciLog.Debugf("<< %s", cmd)
		if !u.handleReceivedCommand(cmd) {
			break
		}
	}
	u.mySearch.StopSearch()
}

// Command handles a single line of the UCI protocol and returns
// the uci response as a string. Mostly useful for unit testing.
func (u *UciHandler) Command(cmd string) string {
	u.outLock.Lock()
	tmp := u.OutIo
	buffer := new(bytes.Buffer)
	u.OutIo = bufio.NewWriter(buffer)
	u.outLock.Unlock()

	u.handleReceivedCommand(cmd)

	u.outLock.Lock()
	_ = u.OutIo.Flush()
	u.OutIo = tmp
	u.outLock.Unlock()
	return buffer.String()
}

// handleReceivedCommand dispatches one protocol line.
// Returns false when the loop shall terminate.
func (u *UciHandler) handleReceivedCommand(cmd string) bool {
	tokens := strings.Fields(cmd)
	if len(tokens) == 0 {
		return true
	}
	switch tokens[0] {
	case "uci":
		u.uciCommand()
	case "isready":
		u.send("readyok")
	case "setoption":
		u.setOptionCommand(tokens)
	case "ucinewgame":
		u.mySearch.NewGame()
	case "position":
		u.positionCommand(tokens)
	case "go":
		u.goCommand(tokens)
	case "stop":
		u.mySearch.StopSearch()
	case "perft":
		u.perftCommand(tokens)
	case "quit":
		return false
	default:
		log.Warningf("Unknown uci command: %s", cmd)
	}
	return true
}

func (u *UciHandler) uciCommand() {
	u.send("id name Euclid " + version.Version)
	u.send("id author The Euclid developers")
	u.send("option name EvalModel type string default")
	u.send("uciok")
}

// setOptionCommand parses "setoption name <Name> [value <Value>]".
// The only supported option is EvalModel: a path to a neural model
// file. An empty value resets to the default evaluator. A model
// which fails to load leaves the engine with its current evaluator.
func (u *UciHandler) setOptionCommand(tokens []string) {
	name := ""
	value := ""
	i := 1
	if i < len(tokens) && tokens[i] == "name" {
		i++
		var nameParts []string
		for i < len(tokens) && tokens[i] != "value" {
			nameParts = append(nameParts, tokens[i])
			i++
		}
		name = strings.Join(nameParts, " ")
	}
	if i < len(tokens) && tokens[i] == "value" {
		value = strings.Join(tokens[i+1:], " ")
	}
	switch name {
	case "EvalModel":
		if value == "" {
			u.mySearch.Evaluator().ClearBackend()
			return
		}
		if err := u.mySearch.Evaluator().LoadModel(value); err != nil {
			log.Warningf("EvalModel not loaded: %s", err)
			u.send("info string EvalModel not loaded, keeping current evaluator")
		}
	default:
		log.Warningf("Unknown option: %s", name)
	}
}

// positionCommand parses "position startpos|fen <fen> [moves ...]".
// Moves are applied until the first illegal move which does not
// fail the whole command.
func (u *UciHandler) positionCommand(tokens []string) {
	if len(tokens) < 2 {
		return
	}
	i := 1
	switch tokens[i] {
	case "startpos":
		u.myPosition = position.NewPosition()
		i++
	case "fen":
		i++
		var fenParts []string
		for i < len(tokens) && tokens[i] != "moves" {
			fenParts = append(fenParts, tokens[i])
			i++
		}
		p, err := position.NewPositionFen(strings.Join(fenParts, " "))
		if err != nil {
			log.Warningf("position command with invalid fen: %s", err)
			return
		}
		u.myPosition = p
	default:
		return
	}
	if i < len(tokens) && tokens[i] == "moves" {
		for _, moveStr := range tokens[i+1:] {
			m := u.myMoveGen.GetMoveFromUci(u.myPosition, moveStr)
			if m == MoveNone {
				log.Warningf("position command: unknown move %s - ignoring rest", moveStr)
				break
			}
			undo := u.myPosition.DoMove(m)
			if !u.myPosition.WasLegalMove() {
				// stop applying at the first illegal move
				u.myPosition.UndoMove(m, undo)
				log.Warningf("position command: illegal move %s - ignoring rest", moveStr)
				break
			}
		}
	}
}

// goCommand parses the search limits and starts the search
func (u *UciHandler) goCommand(tokens []string) {
	if u.mySearch.IsSearching() {
		u.send("info string search already running")
		return
	}
	limits := search.NewSearchLimits()
	readInt := func(i *int) int {
		if *i+1 < len(tokens) {
			*i++
			if v, err := strconv.Atoi(tokens[*i]); err == nil {
				return v
			}
		}
		return 0
	}
	for i := 1; i < len(tokens); i++ {
		switch tokens[i] {
		case "depth":
			limits.Depth = readInt(&i)
		case "nodes":
			limits.Nodes = uint64(readInt(&i))
		case "movetime":
			limits.MoveTime = time.Duration(readInt(&i)) * time.Millisecond
		case "wtime":
			limits.WhiteTime = time.Duration(readInt(&i)) * time.Millisecond
		case "btime":
			limits.BlackTime = time.Duration(readInt(&i)) * time.Millisecond
		case "winc":
			limits.WhiteInc = time.Duration(readInt(&i)) * time.Millisecond
		case "binc":
			limits.BlackInc = time.Duration(readInt(&i)) * time.Millisecond
		case "movestogo":
			limits.MovesToGo = readInt(&i)
		case "infinite":
			limits.Infinite = true
		}
	}
	u.mySearch.StartSearch(*u.myPosition, *limits)
	go u.sendResultWhenFinished()
}

// sendResultWhenFinished waits for the running search and sends the
// best move to the gui
func (u *UciHandler) sendResultWhenFinished() {
	u.mySearch.WaitWhileSearching()
	r := u.mySearch.LastSearchResult()
	if r == nil {
		return
	}
	if r.Pv.Len() > 0 {
		u.send("info depth " + strconv.Itoa(r.Depth) +
			" score " + r.BestValue.String() +
			" nodes " + strconv.FormatUint(r.Nodes, 10) +
			" pv " + r.Pv.StringUci())
	}
	u.send("bestmove " + r.BestMove.StringUci())
}

// perftCommand runs a perft on the current position (an extension
// to the protocol useful for debugging)
func (u *UciHandler) perftCommand(tokens []string) {
	depth := 4
	if len(tokens) > 1 {
		if v, err := strconv.Atoi(tokens[1]); err == nil {
			depth = v
		}
	}
	nodes := u.myPerft.StartPerft(u.myPosition.StringFen(), depth, true)
	u.send("info string perft depth " + strconv.Itoa(depth) + " nodes " + strconv.FormatUint(nodes, 10))
}

func (u *UciHandler) send(s string) {
	u.uciLog.Debugf(">> %s", s)
	u.outLock.Lock()
	_, _ = u.OutIo.WriteString(s + "\n")
	_ = u.OutIo.Flush()
	u.outLock.Unlock()
}
