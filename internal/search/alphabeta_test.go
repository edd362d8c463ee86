//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
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

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkoch/gochess/internal/config"
	"github.com/dkoch/gochess/internal/position"
	. "github.com/dkoch/gochess/internal/types"
)

func Test_materialValue(t *testing.T) {
	p, err := position.NewPositionFen("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -")
	assert.NoError(t, err)
	assert.EqualValues(t, 0, materialValue(p))

	// White is missing its queen.
	p, err = position.NewPositionFen("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNB1KBNR w KQkq -")
	assert.NoError(t, err)
	assert.EqualValues(t, -9, materialValue(p))
}

// minMax scores purely on material (spec's terminal-node rule), so it never
// produces a mate-distance value - a position with no legal moves is scored
// exactly like any other terminal node, via the count == 0 branch returning
// materialValue without recursing further.
func Test_minMax_noLegalMoves_returnsMaterialValue(t *testing.T) {
	config.Settings.Search.UseTT = true
	config.Settings.Search.TTSize = 4

	// Black king f1 is mated by the a1 rook and f3 king; black to move has
	// no legal moves even though maxDepth leaves three more plies budgeted.
	p, err := position.NewPositionFen("8/8/8/8/8/5K2/8/R4k2 b - -")
	assert.NoError(t, err)

	w := newWorker(config.Settings.Search.TTSize, 4)
	value := w.minMax(p, 1, 4, ValueMin, ValueMax)
	assert.EqualValues(t, materialValue(p), value)
	assert.False(t, value.IsCheckMateValue())
}

func Test_minMax_isDeterministic(t *testing.T) {
	config.Settings.Search.UseTT = true
	config.Settings.Search.TTSize = 4

	p, err := position.NewPositionFen("r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3")
	assert.NoError(t, err)

	w1 := newWorker(config.Settings.Search.TTSize, 3)
	p1 := *p
	v1 := w1.minMax(&p1, 1, 3, ValueMin, ValueMax)

	w2 := newWorker(config.Settings.Search.TTSize, 3)
	p2 := *p
	v2 := w2.minMax(&p2, 1, 3, ValueMin, ValueMax)

	assert.EqualValues(t, v1, v2)
}
