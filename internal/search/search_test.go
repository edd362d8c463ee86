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
	"os"
	"path"
	"runtime"
	"testing"

	logging2 "github.com/op/go-logging"
	"github.com/stretchr/testify/assert"

	"github.com/dkoch/gochess/internal/config"
	"github.com/dkoch/gochess/internal/logging"
	"github.com/dkoch/gochess/internal/position"
	. "github.com/dkoch/gochess/internal/types"
)

var logTest *logging2.Logger

// make tests run in the projects root directory.
func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "../..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}

// Setup the tests.
func TestMain(m *testing.M) {
	config.Setup()
	logTest = logging.GetTestLog()
	code := m.Run()
	os.Exit(code)
}

func TestStartSearch_singleWorker(t *testing.T) {
	config.Settings.Search.UseTT = true
	config.Settings.Search.TTSize = 4
	config.Settings.Search.WorkerCount = 1

	p, err := position.NewPositionFen("6k1/6pp/8/8/8/8/6PP/R5K1 w - -")
	assert.NoError(t, err)

	search := NewSearch()
	sl := NewSearchLimits()
	sl.Depth = 1
	search.StartSearch(*p, *sl)
	search.WaitWhileSearching()

	result := search.LastSearchResult()
	logTest.Debug(result.String())
	// No capture is possible at depth 1, so every root move keeps the
	// material score at +5 and the first generated move (pawns first,
	// double pushes before single pushes) stays best.
	assert.Equal(t, "g2g4", result.BestMove.StringUci())
}

func TestStartSearch_parallelMatchesSingleWorker(t *testing.T) {
	config.Settings.Search.UseTT = true
	config.Settings.Search.TTSize = 4

	fen := "r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3"

	config.Settings.Search.WorkerCount = 1
	p1, err := position.NewPositionFen(fen)
	assert.NoError(t, err)
	s1 := NewSearch()
	sl1 := NewSearchLimits()
	sl1.Depth = 2
	s1.StartSearch(*p1, *sl1)
	s1.WaitWhileSearching()

	config.Settings.Search.WorkerCount = 4
	p2, err := position.NewPositionFen(fen)
	assert.NoError(t, err)
	s2 := NewSearch()
	sl2 := NewSearchLimits()
	sl2.Depth = 2
	s2.StartSearch(*p2, *sl2)
	s2.WaitWhileSearching()

	// Splitting root moves across workers must not change which move (and
	// score) the search considers best - only the wall-clock to find it.
	assert.Equal(t, s1.LastSearchResult().BestMove, s2.LastSearchResult().BestMove)
	assert.Equal(t, s1.LastSearchResult().BestValue, s2.LastSearchResult().BestValue)
}

func TestMatePosition(t *testing.T) {
	config.Settings.Search.WorkerCount = 1
	search := NewSearch()
	// Black to move, already checkmated (no legal move) by the a1 rook and
	// f3 king. Scoring is material-only even at a mated position, so the
	// result carries no legal move and a plain material score, not a
	// mate-distance value.
	p, _ := position.NewPositionFen("8/8/8/8/8/5K2/8/R4k2 b - -")
	sl := NewSearchLimits()
	sl.Depth = 2
	search.StartSearch(*p, *sl)
	search.WaitWhileSearching()
	result := search.LastSearchResult()
	logTest.Debug(result.String())
	assert.Equal(t, MoveNone, result.BestMove)
	assert.EqualValues(t, 1, search.Statistics().Checkmates)
}

func TestStaleMatePosition(t *testing.T) {
	config.Settings.Search.WorkerCount = 1
	search := NewSearch()
	// Black to move, has no legal move and is not in check.
	p, _ := position.NewPositionFen("7k/5Q2/6K1/8/8/8/8/8 b - -")
	sl := NewSearchLimits()
	sl.Depth = 3
	search.StartSearch(*p, *sl)
	search.WaitWhileSearching()
	result := search.LastSearchResult()
	logTest.Debug(result.String())
	assert.Equal(t, MoveNone, result.BestMove)
	assert.EqualValues(t, 1, search.Statistics().Stalemates)
}

func TestNewGame_clearsHash(t *testing.T) {
	config.Settings.Search.UseTT = true
	config.Settings.Search.TTSize = 4
	config.Settings.Search.WorkerCount = 1

	p, err := position.NewPositionFen("6k1/6pp/8/8/8/8/6PP/R5K1 w - -")
	assert.NoError(t, err)

	search := NewSearch()
	sl := NewSearchLimits()
	sl.Depth = 3
	search.StartSearch(*p, *sl)
	search.WaitWhileSearching()
	assert.True(t, search.worker.tt.Len() > 0)

	search.NewGame()
	assert.EqualValues(t, 0, search.worker.tt.Len())
}
