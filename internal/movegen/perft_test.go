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

package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkoch/gochess/internal/position"
)

// /////////////////////////////////////////////////////////////
// Perft tests from https://www.chessprogramming.org/Perft_Results
// /////////////////////////////////////////////////////////////

func TestStandardPerft(t *testing.T) {
	maxDepth := 5
	var perft Perft
	require := assert.New(t)

	var results = [6][6]uint64{
		// N             Nodes         Captures           EP          Checks           Mates
		{0, 1, 0, 0, 0, 0},
		{1, 20, 0, 0, 0, 0},
		{2, 400, 0, 0, 0, 0},
		{3, 8_902, 34, 0, 12, 0},
		{4, 197_281, 1_576, 0, 469, 8},
		{5, 4_865_609, 82_719, 258, 27_351, 347},
	}

	for i := 1; i <= maxDepth; i++ {
		perft.StartPerft(position.StartFen, i)
		require.Equal(results[i][1], perft.Nodes, "depth %d nodes", i)
		require.Equal(results[i][2], perft.CaptureCounter, "depth %d captures", i)
		require.Equal(results[i][3], perft.EnpassantCounter, "depth %d en passant", i)
		require.Equal(results[i][4], perft.CheckCounter, "depth %d checks", i)
		require.Equal(results[i][5], perft.CheckMateCounter, "depth %d mates", i)
	}
}

func TestKiwipetePerft(t *testing.T) {
	maxDepth := 3
	var perft Perft
	require := assert.New(t)

	var kiwipete = [4][8]uint64{
		// N             Nodes         Captures           EP          Checks           Mates     Castles  Promotions
		{0, 1, 0, 0, 0, 0, 0, 0},
		{1, 48, 8, 0, 0, 0, 2, 0},
		{2, 2_039, 351, 1, 3, 0, 91, 0},
		{3, 97_862, 17_102, 45, 993, 1, 3_162, 0},
	}

	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	for depth := 1; depth <= maxDepth; depth++ {
		perft.StartPerft(fen, depth)
		require.Equal(kiwipete[depth][1], perft.Nodes, "depth %d nodes", depth)
		require.Equal(kiwipete[depth][2], perft.CaptureCounter, "depth %d captures", depth)
		require.Equal(kiwipete[depth][3], perft.EnpassantCounter, "depth %d en passant", depth)
		require.Equal(kiwipete[depth][4], perft.CheckCounter, "depth %d checks", depth)
		require.Equal(kiwipete[depth][5], perft.CheckMateCounter, "depth %d mates", depth)
		require.Equal(kiwipete[depth][6], perft.CastleCounter, "depth %d castles", depth)
		require.Equal(kiwipete[depth][7], perft.PromotionCounter, "depth %d promotions", depth)
	}
}

func TestPos5Perft(t *testing.T) {
	maxDepth := 3
	var perft Perft
	require := assert.New(t)

	var results = [4]uint64{1, 44, 1_486, 62_379}

	fen := "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 0 1"
	for depth := 1; depth <= maxDepth; depth++ {
		perft.StartPerft(fen, depth)
		require.Equal(results[depth], perft.Nodes, "depth %d nodes", depth)
	}
}

// TestStandardPerftDepth6 is the single named depth-6 vector from the
// standard start position - expensive enough (119M nodes) to keep separate
// from TestStandardPerft's depth-1..5 sweep.
func TestStandardPerftDepth6(t *testing.T) {
	var perft Perft
	perft.StartPerft(position.StartFen, 6)
	assert.EqualValues(t, 119_060_324, perft.Nodes)
}

// TestLiteralPerftVectors covers the remaining named scenarios: an
// en-passant edge case, an endgame position, a promotion-heavy position and
// a castling-rich position, each checked against its exact node count.
func TestLiteralPerftVectors(t *testing.T) {
	cases := []struct {
		name  string
		fen   string
		depth int
		nodes uint64
	}{
		{"en passant edge case", "8/8/8/2k5/2pP4/8/B7/4K3 b - d3 0 3", 1, 8},
		{"endgame", "3k4/3p4/8/K1P4r/8/8/8/8 b - - 0 1", 4, 10_138},
		{"promotion heavy", "8/P1k5/K7/8/8/8/8/8 w - - 0 1", 6, 92_683},
		{"castling rich", "r3k2r/1b4bq/8/8/8/8/7B/R3K2R w KQkq - 0 1", 4, 1_274_206},
	}

	for _, c := range cases {
		var perft Perft
		perft.StartPerft(c.fen, c.depth)
		assert.EqualValues(t, c.nodes, perft.Nodes, "%s: depth %d nodes", c.name, c.depth)
	}
}

func TestDivideSumsToNodes(t *testing.T) {
	var perft Perft
	divided := perft.Divide(position.StartFen, 3)
	var sum uint64
	for _, n := range divided {
		sum += n
	}
	assert.Equal(t, uint64(8_902), sum)
	assert.Len(t, divided, 20)
}
