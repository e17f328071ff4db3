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

// Package eval contains the static evaluation of chess positions.
// The default evaluator is a pure material count. A learned backend
// (a dense feedforward net loaded from a model file) can be
// registered and replaces the default without any other changes.
// All evaluations returned by this package are white-positive
// centipawns.
package eval

import (
	"fmt"
	"os"

	"github.com/op/go-logging"

	myLogging "github.com/euclidchess/euclid/internal/logging"
	"github.com/euclidchess/euclid/internal/position"
	. "github.com/euclidchess/euclid/internal/types"
)

var log *logging.Logger

// Backend is a registerable evaluation callable. Implementations
// return white-positive centipawns and are responsible for any
// clipping and point-of-view conversion themselves.
type Backend interface {
	// Evaluate returns white-positive centipawns for the position
	Evaluate(p *position.Position) Value

	// Name returns a short name of the backend for logging
	Name() string
}

// Evaluator evaluates positions through the currently registered
// backend. Create with NewEvaluator() to get the default material
// evaluator.
type Evaluator struct {
	backend Backend
}

// NewEvaluator creates a new Evaluator with the default material
// backend.
func NewEvaluator() *Evaluator {
	if log == nil {
		log = myLogging.GetLog()
	}
	return &Evaluator{backend: Material{}}
}

// Evaluate returns the white-positive centipawn evaluation of the
// position from the registered backend.
func (e *Evaluator) Evaluate(p *position.Position) Value {
	return e.backend.Evaluate(p)
}

// Backend returns the currently registered backend
func (e *Evaluator) Backend() Backend {
	return e.backend
}

// SetBackend registers the given backend replacing the current one
func (e *Evaluator) SetBackend(b Backend) {
	e.backend = b
	log.Infof("Evaluation backend set to %s", b.Name())
}

// ClearBackend resets the evaluator to the default material backend
func (e *Evaluator) ClearBackend() {
	e.backend = Material{}
	log.Info("Evaluation backend reset to material")
}

// LoadModel loads a neural model file and registers it as the
// evaluation backend. A model whose dimensions do not match the
// feature encoding is rejected and the current backend stays in
// place.
func (e *Evaluator) LoadModel(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("model file %s: %w", path, err)
	}
	defer f.Close()
	net := &Network{}
	if err := net.Load(f); err != nil {
		return fmt.Errorf("model file %s: %w", path, err)
	}
	if net.InputDim() != FeatureDim || net.OutputDim() != 1 {
		return fmt.Errorf("model file %s: %w: input %d output %d",
			path, ErrModelDimension, net.InputDim(), net.OutputDim())
	}
	e.SetBackend(net)
	return nil
}

// Material is the default evaluation backend: the sum of the
// conventional piece values, white-positive. The king has no
// material value.
type Material struct{}

// Name returns the backend name
func (Material) Name() string {
	return "material"
}

// Evaluate returns the material balance in centipawns
func (Material) Evaluate(p *position.Position) Value {
	var score Value
	for pt := Pawn; pt < King; pt++ {
		value := pt.ValueOf()
		score += value * Value(p.PiecesBb(White, pt).PopCount())
		score -= value * Value(p.PiecesBb(Black, pt).PopCount())
	}
	return score
}
