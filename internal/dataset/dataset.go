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

// Package dataset writes binary training datasets from selfplay
// games: one record of (zobrist key, win/draw/loss label, feature
// vector) per visited position.
//
// File format (all integers little endian):
//  header, 32 bytes:
//   8 bytes  magic "EUCLIDDS"
//   4 bytes  version
//   4 bytes  feature dimension (781)
//   8 bytes  record count (patched at the end of the write)
//   4 bytes  flags (bit 0: labels are win/draw/loss 1/0/-1)
//   4 bytes  reserved
//  record:
//   8 bytes  zobrist key
//   4 bytes  float32 label (side-to-move point of view)
//   feature dimension * 4 bytes float32 features
package dataset

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/euclidchess/euclid/internal/eval"
	"github.com/euclidchess/euclid/internal/position"
	"github.com/euclidchess/euclid/internal/search"
	"github.com/euclidchess/euclid/internal/selfplay"
	. "github.com/euclidchess/euclid/internal/types"
)

// file format constants
const (
	Magic        = "EUCLIDDS"
	Version      = 1
	FlagLabelWDL = 1
	HeaderSize   = 32
)

// Config controls the dataset generation
type Config struct {
	// number of selfplay games to play
	Games int

	// ply cap per game - hitting it classifies the game as draw
	MaxPlies int

	// include positions of aborted games (labeled 0)
	IncludeAborted bool

	// number of games played concurrently. Every worker owns its
	// own search so the games themselves stay deterministic.
	// 0 or 1 plays sequentially.
	Workers int
}

// Stats reports what a dataset write produced
type Stats struct {
	Games     uint64
	Records   uint64
	WhiteWins uint64
	BlackWins uint64
	Draws     uint64
	Aborted   uint64
}

// WriteSelfplayDataset plays the configured number of selfplay
// games from the given start position and writes one record per
// visited position (including the terminal one) to the given path.
// The partial file is removed when the write fails.
func WriteSelfplayDataset(path string, start *position.Position, cfg Config, limits search.Limits) (Stats, error) {
	var stats Stats

	reports, err := playGames(start, cfg, limits)
	if err != nil {
		return stats, err
	}

	f, err := os.Create(path)
	if err != nil {
		return stats, fmt.Errorf("dataset %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	// header with a zero record count - patched at the end
	if err := writeHeader(w, 0); err != nil {
		_ = os.Remove(path)
		return stats, fmt.Errorf("dataset %s: %w", path, err)
	}

	var recordCount uint64
	stats.Games = uint64(len(reports))
	for _, report := range reports {
		switch report.Outcome {
		case selfplay.WhiteWin:
			stats.WhiteWins++
		case selfplay.BlackWin:
			stats.BlackWins++
		case selfplay.Draw:
			stats.Draws++
		case selfplay.Aborted:
			stats.Aborted++
		}
		if report.Outcome == selfplay.Aborted && !cfg.IncludeAborted {
			continue
		}

		// reconstruct the positions from the move list and emit one
		// record per position - N moves produce N+1 records
		p := *start
		for ply := 0; ; ply++ {
			if err := writeRecord(w, &p, report.Outcome); err != nil {
				_ = os.Remove(path)
				return stats, fmt.Errorf("dataset %s: %w", path, err)
			}
			recordCount++
			stats.Records++
			if ply >= report.Moves.Len() {
				break
			}
			p.DoMove(report.Moves.At(ply))
		}
	}

	if err := w.Flush(); err != nil {
		_ = os.Remove(path)
		return stats, fmt.Errorf("dataset %s: %w", path, err)
	}

	// patch the record count into the header
	if _, err := f.Seek(0, 0); err != nil {
		_ = os.Remove(path)
		return stats, fmt.Errorf("dataset %s: %w", path, err)
	}
	hw := bufio.NewWriter(f)
	if err := writeHeader(hw, recordCount); err != nil {
		_ = os.Remove(path)
		return stats, fmt.Errorf("dataset %s: %w", path, err)
	}
	if err := hw.Flush(); err != nil {
		_ = os.Remove(path)
		return stats, fmt.Errorf("dataset %s: %w", path, err)
	}
	return stats, nil
}

// playGames plays the configured games, fanned out over the
// configured number of workers. The result order is by game index
// so the dataset content does not depend on scheduling.
func playGames(start *position.Position, cfg Config, limits search.Limits) ([]selfplay.GameReport, error) {
	games := cfg.Games
	if games <= 0 {
		games = 1
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > games {
		workers = games
	}

	reports := make([]selfplay.GameReport, games)

	if workers == 1 {
		sp := selfplay.NewSelfplay()
		for g := 0; g < games; g++ {
			reports[g] = sp.Play(start, cfg.MaxPlies, limits)
		}
		return reports, nil
	}

	var eg errgroup.Group
	next := make(chan int, games)
	for g := 0; g < games; g++ {
		next <- g
	}
	close(next)
	for w := 0; w < workers; w++ {
		eg.Go(func() error {
			sp := selfplay.NewSelfplay()
			for g := range next {
				reports[g] = sp.Play(start, cfg.MaxPlies, limits)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// labelFor returns the win/draw/loss label of a position from the
// game outcome per the side to move of the position: draw = 0,
// otherwise +1 if the side to move won the game, else -1.
func labelFor(outcome selfplay.Outcome, stm Color) float32 {
	switch outcome {
	case selfplay.WhiteWin:
		if stm == White {
			return 1
		}
		return -1
	case selfplay.BlackWin:
		if stm == Black {
			return 1
		}
		return -1
	}
	return 0
}

func writeHeader(w *bufio.Writer, recordCount uint64) error {
	if _, err := w.WriteString(Magic); err != nil {
		return err
	}
	if err := writeU32(w, Version); err != nil {
		return err
	}
	if err := writeU32(w, eval.FeatureDim); err != nil {
		return err
	}
	if err := writeU64(w, recordCount); err != nil {
		return err
	}
	if err := writeU32(w, FlagLabelWDL); err != nil {
		return err
	}
	return writeU32(w, 0) // reserved
}

func writeRecord(w *bufio.Writer, p *position.Position, outcome selfplay.Outcome) error {
	if err := writeU64(w, uint64(p.ZobristKey())); err != nil {
		return err
	}
	if err := writeF32(w, labelFor(outcome, p.NextPlayer())); err != nil {
		return err
	}
	for _, v := range eval.Encode(p) {
		if err := writeF32(w, v); err != nil {
			return err
		}
	}
	return nil
}

func writeU32(w *bufio.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func writeU64(w *bufio.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func writeF32(w *bufio.Writer, v float32) error {
	return writeU32(w, math.Float32bits(v))
}
