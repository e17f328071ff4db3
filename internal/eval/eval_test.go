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

package eval

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/euclidchess/euclid/internal/config"
	"github.com/euclidchess/euclid/internal/position"
	. "github.com/euclidchess/euclid/internal/types"
)

func TestMain(m *testing.M) {
	config.Setup()
	os.Exit(m.Run())
}

func TestMaterialEvaluation(t *testing.T) {
	e := NewEvaluator()

	// the start position is balanced
	assert.Equal(t, Value(0), e.Evaluate(position.NewPosition()))

	// white is a rook up
	p := position.NewPosition("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	assert.Equal(t, Value(500), e.Evaluate(p))

	// the evaluation is white-positive regardless of the side to move
	p = position.NewPosition("4k3/8/8/8/8/8/8/R3K3 b - - 0 1")
	assert.Equal(t, Value(500), e.Evaluate(p))

	// black is a queen and a knight up
	p = position.NewPosition("3qk1n1/8/8/8/8/8/8/4K3 w - - 0 1")
	assert.Equal(t, Value(-1220), e.Evaluate(p))
}

func TestEncode(t *testing.T) {
	p := position.NewPosition()
	x := Encode(p)
	require.Equal(t, FeatureDim, len(x))

	// white pawn plane (0) - rank 2 set
	for f := 0; f < 8; f++ {
		assert.Equal(t, float32(1), x[0*64+8+f])
	}
	// white king plane (5) - e1
	assert.Equal(t, float32(1), x[5*64+int(SqE1)])
	// black king plane (11) - e8
	assert.Equal(t, float32(1), x[11*64+int(SqE8)])
	// black pawn plane (6) - rank 7 set
	assert.Equal(t, float32(1), x[6*64+int(SqA7)])

	// side to move flag - white
	assert.Equal(t, float32(1), x[768])
	// all four castling bits
	assert.Equal(t, float32(1), x[769])
	assert.Equal(t, float32(1), x[770])
	assert.Equal(t, float32(1), x[771])
	assert.Equal(t, float32(1), x[772])
	// no en passant file
	for i := 773; i < 781; i++ {
		assert.Equal(t, float32(0), x[i])
	}

	// black to move with en passant on the e-file
	p = position.NewPosition("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	x = Encode(p)
	assert.Equal(t, float32(0), x[768])
	assert.Equal(t, float32(1), x[773+4])
}

// constModel returns the text of a 781-2-1 network which outputs
// the constant bias value 42 for any input.
func constModel() string {
	var sb strings.Builder
	sb.WriteString("EUCLID_MLP 1\n")
	sb.WriteString("sizes 3 781 2 1\n")
	sb.WriteString("hidden ReLU\n")
	sb.WriteString("output None\n")
	sb.WriteString("layer 0\nW")
	for i := 0; i < 781*2; i++ {
		sb.WriteString(" 0")
	}
	sb.WriteString("\nB 0 0\n")
	sb.WriteString("layer 1\nW 0 0\nB 42\n")
	return sb.String()
}

func TestNetworkLoad(t *testing.T) {
	net := &Network{}
	require.NoError(t, net.Load(strings.NewReader(constModel())))
	assert.Equal(t, 781, net.InputDim())
	assert.Equal(t, 1, net.OutputDim())
	assert.Equal(t, 2, len(net.Layers))

	x := make([]float32, 781)
	assert.Equal(t, float32(42), net.ForwardScalar(x))
	x[0] = 1
	assert.Equal(t, float32(42), net.ForwardScalar(x))
}

func TestNetworkForward(t *testing.T) {
	// a 2-2-1 net computed by hand
	net := NewNetwork([]int{2, 2, 1}, ActReLU, ActNone)
	// layer 0: out0 = relu(1*x0 - 1*x1), out1 = relu(x1 + 1)
	net.Layers[0].W = []float32{1, -1, 0, 1}
	net.Layers[0].B = []float32{0, 1}
	// layer 1: y = 2*h0 + 3*h1 - 4
	net.Layers[1].W = []float32{2, 3}
	net.Layers[1].B = []float32{-4}

	y := net.ForwardScalar([]float32{3, 1})
	// h0 = relu(3-1) = 2, h1 = relu(1+1) = 2, y = 4 + 6 - 4 = 6
	assert.Equal(t, float32(6), y)

	y = net.ForwardScalar([]float32{0, 5})
	// h0 = relu(-5) = 0, h1 = relu(6) = 6, y = 0 + 18 - 4 = 14
	assert.Equal(t, float32(14), y)
}

func TestNetworkSaveLoadRoundTrip(t *testing.T) {
	net := NewNetwork([]int{2, 2, 1}, ActTanh, ActNone)
	net.Layers[0].W = []float32{0.5, -0.25, 1, 2}
	net.Layers[0].B = []float32{0.125, -1}
	net.Layers[1].W = []float32{3, -0.5}
	net.Layers[1].B = []float32{0.75}

	var sb strings.Builder
	require.NoError(t, net.Save(&sb))

	loaded := &Network{}
	require.NoError(t, loaded.Load(strings.NewReader(sb.String())))
	assert.Equal(t, net.Layers, loaded.Layers)
	assert.Equal(t, net.Hidden, loaded.Hidden)
	assert.Equal(t, net.Output, loaded.Output)
}

func TestNetworkLoadErrors(t *testing.T) {
	bad := []string{
		"",
		"WRONG_MAGIC 1\nsizes 2 781 1\n",
		"EUCLID_MLP 2\nsizes 2 781 1\n",
		"EUCLID_MLP 1\nsizes 1 781\n",
		"EUCLID_MLP 1\nsizes 2 781 1\nhidden Bogus\noutput None\n",
		"EUCLID_MLP 1\nsizes 2 2 1\nhidden ReLU\noutput None\nlayer 0\nW 1\nB 1\n", // too few weights
	}
	for _, s := range bad {
		net := &Network{}
		assert.Error(t, net.Load(strings.NewReader(s)), "model %q should fail", s)
	}
}

func TestNetworkBackendPov(t *testing.T) {
	// network output is side-to-move centipawns - the backend
	// converts to white-positive
	net := &Network{}
	require.NoError(t, net.Load(strings.NewReader(constModel())))

	white := position.NewPosition()
	assert.Equal(t, Value(42), net.Evaluate(white))

	black := position.NewPosition("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1")
	assert.Equal(t, Value(-42), net.Evaluate(black))
}

func TestBackendClip(t *testing.T) {
	// a constant output above the clip bound saturates at 3000
	model := strings.Replace(constModel(), "B 42", "B 100000", 1)
	net := &Network{}
	require.NoError(t, net.Load(strings.NewReader(model)))
	assert.Equal(t, ValueEvalClip, net.Evaluate(position.NewPosition()))
}

func TestLoadModelDimensionMismatch(t *testing.T) {
	// a model with the wrong input dimension is rejected and the
	// evaluator keeps the default backend
	f, err := os.CreateTemp("", "euclid_model_*.txt")
	require.NoError(t, err)
	defer os.Remove(f.Name())
	_, err = f.WriteString("EUCLID_MLP 1\nsizes 2 10 1\nhidden ReLU\noutput None\nlayer 0\nW 0 0 0 0 0 0 0 0 0 0\nB 0\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	e := NewEvaluator()
	err = e.LoadModel(f.Name())
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "dimensions"))
	assert.Equal(t, "material", e.Backend().Name())
}

func TestLoadModelOk(t *testing.T) {
	f, err := os.CreateTemp("", "euclid_model_*.txt")
	require.NoError(t, err)
	defer os.Remove(f.Name())
	_, err = f.WriteString(constModel())
	require.NoError(t, err)
	require.NoError(t, f.Close())

	e := NewEvaluator()
	require.NoError(t, e.LoadModel(f.Name()))
	assert.Equal(t, "network", e.Backend().Name())
	assert.Equal(t, Value(42), e.Evaluate(position.NewPosition()))

	e.ClearBackend()
	assert.Equal(t, "material", e.Backend().Name())
}
