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

package dataset

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/euclidchess/euclid/internal/config"
	"github.com/euclidchess/euclid/internal/eval"
	myLogging "github.com/euclidchess/euclid/internal/logging"
	"github.com/euclidchess/euclid/internal/position"
	"github.com/euclidchess/euclid/internal/search"
	"github.com/euclidchess/euclid/internal/selfplay"
)

func TestMain(m *testing.M) {
	config.Setup()
	myLogging.GetTestLog()
	os.Exit(m.Run())
}

func TestWriteSelfplayDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.bin")

	p := position.NewPosition()
	cfg := Config{Games: 1, MaxPlies: 1}
	limits := search.NewSearchLimits()
	limits.Depth = 1

	stats, err := WriteSelfplayDataset(path, p, cfg, *limits)
	require.NoError(t, err)

	// one game hitting the ply cap immediately counts as a draw and
	// produces two records (start position + terminal position)
	assert.Equal(t, uint64(1), stats.Games)
	assert.Equal(t, uint64(1), stats.Draws)
	assert.Equal(t, uint64(0), stats.Aborted)
	assert.Equal(t, uint64(2), stats.Records)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	recordSize := 8 + 4 + eval.FeatureDim*4
	require.Equal(t, HeaderSize+2*recordSize, len(data))

	// header
	assert.Equal(t, []byte(Magic), data[0:8])
	assert.Equal(t, uint32(Version), binary.LittleEndian.Uint32(data[8:12]))
	assert.Equal(t, uint32(eval.FeatureDim), binary.LittleEndian.Uint32(data[12:16]))
	assert.Equal(t, uint64(2), binary.LittleEndian.Uint64(data[16:24]))
	assert.Equal(t, uint32(FlagLabelWDL), binary.LittleEndian.Uint32(data[24:28]))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(data[28:32]))

	// first record is the start position with a draw label
	record := data[HeaderSize:]
	assert.Equal(t, uint64(p.ZobristKey()), binary.LittleEndian.Uint64(record[0:8]))
	label := math.Float32frombits(binary.LittleEndian.Uint32(record[8:12]))
	assert.Equal(t, float32(0), label)

	// the feature vector of the first record matches the encoder
	features := eval.Encode(p)
	for i, want := range features {
		got := math.Float32frombits(binary.LittleEndian.Uint32(record[12+4*i : 16+4*i]))
		assert.Equal(t, want, got, "feature %d differs", i)
	}
}

func TestLabelPov(t *testing.T) {
	// labels are from the point of view of the side to move
	assert.Equal(t, float32(1), labelFor(selfplay.WhiteWin, position.NewPosition().NextPlayer()))
	p := position.NewPosition("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1")
	assert.Equal(t, float32(-1), labelFor(selfplay.WhiteWin, p.NextPlayer()))
	assert.Equal(t, float32(1), labelFor(selfplay.BlackWin, p.NextPlayer()))
	assert.Equal(t, float32(0), labelFor(selfplay.Draw, p.NextPlayer()))
}

func TestDatasetMateLabels(t *testing.T) {
	// a mate in one game: white wins, labels alternate +1/-1 from
	// the white and black positions
	path := filepath.Join(t.TempDir(), "mate.bin")
	p := position.NewPosition("6k1/5ppp/8/8/8/8/8/4R2K w - - 0 1")
	cfg := Config{Games: 1, MaxPlies: 10}
	limits := search.NewSearchLimits()
	limits.Depth = 3

	stats, err := WriteSelfplayDataset(path, p, cfg, *limits)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stats.WhiteWins)
	// one move played - two records
	assert.Equal(t, uint64(2), stats.Records)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	recordSize := 8 + 4 + eval.FeatureDim*4

	// record 0: white to move and white won -> +1
	label0 := math.Float32frombits(binary.LittleEndian.Uint32(data[HeaderSize+8 : HeaderSize+12]))
	assert.Equal(t, float32(1), label0)
	// record 1: black to move and white won -> -1
	off := HeaderSize + recordSize
	label1 := math.Float32frombits(binary.LittleEndian.Uint32(data[off+8 : off+12]))
	assert.Equal(t, float32(-1), label1)
}

func TestDatasetWorkers(t *testing.T) {
	// fanned out generation produces the same file as sequential
	// generation because games are deterministic and ordered
	dir := t.TempDir()
	p := position.NewPosition()
	limits := search.NewSearchLimits()
	limits.Depth = 1
	cfgSeq := Config{Games: 2, MaxPlies: 2, Workers: 1}
	cfgPar := Config{Games: 2, MaxPlies: 2, Workers: 2}

	seqPath := filepath.Join(dir, "seq.bin")
	parPath := filepath.Join(dir, "par.bin")
	_, err := WriteSelfplayDataset(seqPath, p, cfgSeq, *limits)
	require.NoError(t, err)
	_, err = WriteSelfplayDataset(parPath, p, cfgPar, *limits)
	require.NoError(t, err)

	seq, err := os.ReadFile(seqPath)
	require.NoError(t, err)
	par, err := os.ReadFile(parPath)
	require.NoError(t, err)
	assert.Equal(t, seq, par)
}

func TestDatasetWriteError(t *testing.T) {
	// an unwritable path surfaces a typed error carrying the path
	p := position.NewPosition()
	cfg := Config{Games: 1, MaxPlies: 1}
	limits := search.NewSearchLimits()
	limits.Depth = 1
	_, err := WriteSelfplayDataset("/nonexistent-dir/ds.bin", p, cfg, *limits)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/nonexistent-dir/ds.bin")
}
