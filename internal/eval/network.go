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
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/euclidchess/euclid/internal/position"
	. "github.com/euclidchess/euclid/internal/types"
)

// Errors of the model file decoding
var (
	ErrInvalidModel   = errors.New("invalid model file")
	ErrModelDimension = errors.New("model dimensions do not match feature encoding")
)

// modelMagic and modelVersion identify the text model file format
const (
	modelMagic   = "EUCLID_MLP"
	modelVersion = 1
)

// Activation of a network layer
type Activation uint8

// Activation constants
const (
	ActNone Activation = 0
	ActReLU Activation = 1
	ActTanh Activation = 2
)

func parseActivation(s string) (Activation, error) {
	switch s {
	case "None", "Linear":
		return ActNone, nil
	case "ReLU":
		return ActReLU, nil
	case "Tanh":
		return ActTanh, nil
	}
	return ActNone, fmt.Errorf("%w: unknown activation %q", ErrInvalidModel, s)
}

func (a Activation) String() string {
	switch a {
	case ActReLU:
		return "ReLU"
	case ActTanh:
		return "Tanh"
	}
	return "None"
}

// Layer is one dense layer of the network. Weights are stored
// row-major by output neuron: W[o*In+i].
type Layer struct {
	In  int
	Out int
	W   []float32
	B   []float32
}

// Network is a dense feedforward net usable as evaluation backend.
// The input is the fixed FeatureDim feature vector, the scalar
// output is interpreted as side-to-move centipawns.
type Network struct {
	Layers []Layer
	Hidden Activation
	Output Activation
}

// NewNetwork creates a zero initialized network with the given
// layer sizes (including input and output size).
func NewNetwork(sizes []int, hidden Activation, output Activation) *Network {
	net := &Network{Hidden: hidden, Output: output}
	for i := 0; i+1 < len(sizes); i++ {
		l := Layer{In: sizes[i], Out: sizes[i+1]}
		l.W = make([]float32, l.In*l.Out)
		l.B = make([]float32, l.Out)
		net.Layers = append(net.Layers, l)
	}
	return net
}

// InputDim returns the input dimension of the network
func (n *Network) InputDim() int {
	if len(n.Layers) == 0 {
		return 0
	}
	return n.Layers[0].In
}

// OutputDim returns the output dimension of the network
func (n *Network) OutputDim() int {
	if len(n.Layers) == 0 {
		return 0
	}
	return n.Layers[len(n.Layers)-1].Out
}

func applyActivation(v float32, a Activation) float32 {
	switch a {
	case ActReLU:
		if v < 0 {
			return 0
		}
		return v
	case ActTanh:
		return float32(math.Tanh(float64(v)))
	}
	return v
}

// Forward runs the network on the given input vector and returns
// the output vector.
func (n *Network) Forward(x []float32) []float32 {
	cur := make([]float32, len(x))
	copy(cur, x)
	for li := range n.Layers {
		l := &n.Layers[li]
		act := n.Hidden
		if li == len(n.Layers)-1 {
			act = n.Output
		}
		next := make([]float32, l.Out)
		for o := 0; o < l.Out; o++ {
			acc := l.B[o]
			row := o * l.In
			for i := 0; i < l.In; i++ {
				acc += l.W[row+i] * cur[i]
			}
			next[o] = applyActivation(acc, act)
		}
		cur = next
	}
	return cur
}

// ForwardScalar runs the network and returns the single output.
// Requires OutputDim() == 1.
func (n *Network) ForwardScalar(x []float32) float32 {
	return n.Forward(x)[0]
}

// Name returns the backend name
func (n *Network) Name() string {
	return "network"
}

// Evaluate implements the Backend interface. The raw network output
// is side-to-move centipawns which is rounded, saturating-clipped
// and converted to white-positive.
func (n *Network) Evaluate(p *position.Position) Value {
	y := n.ForwardScalar(Encode(p))
	cp := int(math.Round(float64(y)))
	if cp > int(ValueEvalClip) {
		cp = int(ValueEvalClip)
	} else if cp < -int(ValueEvalClip) {
		cp = -int(ValueEvalClip)
	}
	if p.NextPlayer() == Black {
		cp = -cp
	}
	return Value(cp)
}

// Save writes the network in the text model format
func (n *Network) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s %d\n", modelMagic, modelVersion)
	fmt.Fprintf(bw, "sizes %d", len(n.Layers)+1)
	if len(n.Layers) > 0 {
		fmt.Fprintf(bw, " %d", n.Layers[0].In)
		for _, l := range n.Layers {
			fmt.Fprintf(bw, " %d", l.Out)
		}
	}
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "hidden %s\n", n.Hidden)
	fmt.Fprintf(bw, "output %s\n", n.Output)
	for li, l := range n.Layers {
		fmt.Fprintf(bw, "layer %d\n", li)
		fmt.Fprint(bw, "W")
		for _, v := range l.W {
			fmt.Fprintf(bw, " %g", v)
		}
		fmt.Fprintln(bw)
		fmt.Fprint(bw, "B")
		for _, v := range l.B {
			fmt.Fprintf(bw, " %g", v)
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// Load reads a network from the text model format:
//  EUCLID_MLP 1
//  sizes N s0 s1 ... s_{N-1}
//  hidden <None|ReLU|Tanh>
//  output <None|ReLU|Tanh>
//  layer 0
//  W w0 w1 ...
//  B b0 b1 ...
//  ...
func (n *Network) Load(r io.Reader) error {
	br := bufio.NewReader(r)

	var magic string
	var version int
	if _, err := fmt.Fscan(br, &magic, &version); err != nil {
		return fmt.Errorf("%w: missing header", ErrInvalidModel)
	}
	if magic != modelMagic || version != modelVersion {
		return fmt.Errorf("%w: bad magic %q version %d", ErrInvalidModel, magic, version)
	}

	var kw string
	var count int
	if _, err := fmt.Fscan(br, &kw, &count); err != nil || kw != "sizes" || count < 2 {
		return fmt.Errorf("%w: bad sizes header", ErrInvalidModel)
	}
	sizes := make([]int, count)
	for i := range sizes {
		if _, err := fmt.Fscan(br, &sizes[i]); err != nil || sizes[i] <= 0 {
			return fmt.Errorf("%w: bad layer size", ErrInvalidModel)
		}
	}

	var hiddenKw, hiddenStr, outputKw, outputStr string
	if _, err := fmt.Fscan(br, &hiddenKw, &hiddenStr); err != nil || hiddenKw != "hidden" {
		return fmt.Errorf("%w: missing hidden activation", ErrInvalidModel)
	}
	if _, err := fmt.Fscan(br, &outputKw, &outputStr); err != nil || outputKw != "output" {
		return fmt.Errorf("%w: missing output activation", ErrInvalidModel)
	}
	hidden, err := parseActivation(hiddenStr)
	if err != nil {
		return err
	}
	output, err := parseActivation(outputStr)
	if err != nil {
		return err
	}

	net := NewNetwork(sizes, hidden, output)
	for li := range net.Layers {
		var layerKw string
		var layerIdx int
		if _, err := fmt.Fscan(br, &layerKw, &layerIdx); err != nil || layerKw != "layer" || layerIdx != li {
			return fmt.Errorf("%w: bad layer header %d", ErrInvalidModel, li)
		}
		var wKw string
		if _, err := fmt.Fscan(br, &wKw); err != nil || wKw != "W" {
			return fmt.Errorf("%w: missing weights of layer %d", ErrInvalidModel, li)
		}
		l := &net.Layers[li]
		for k := range l.W {
			if _, err := fmt.Fscan(br, &l.W[k]); err != nil {
				return fmt.Errorf("%w: bad weight in layer %d", ErrInvalidModel, li)
			}
		}
		var bKw string
		if _, err := fmt.Fscan(br, &bKw); err != nil || bKw != "B" {
			return fmt.Errorf("%w: missing biases of layer %d", ErrInvalidModel, li)
		}
		for k := range l.B {
			if _, err := fmt.Fscan(br, &l.B[k]); err != nil {
				return fmt.Errorf("%w: bad bias in layer %d", ErrInvalidModel, li)
			}
		}
	}

	*n = *net
	return nil
}
