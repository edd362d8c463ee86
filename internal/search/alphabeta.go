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
	"github.com/dkoch/gochess/internal/movegen"
	"github.com/dkoch/gochess/internal/position"
	"github.com/dkoch/gochess/internal/transpositiontable"
	. "github.com/dkoch/gochess/internal/types"
)

// worker owns everything a single line of alpha-beta search touches: its own
// transposition table and one move generator per ply so a parent node's
// legal move buffer survives while a child node fills its own. Workers are
// never shared between goroutines - the parallel root split gives each one
// its own worker, its own cloned position, and its own table.
type worker struct {
	tt           *transpositiontable.TtTable
	mg           []*movegen.Movegen
	nodesVisited uint64
}

func newWorker(ttSizeInMByte int, maxDepth int) *worker {
	mg := make([]*movegen.Movegen, maxDepth+2)
	for i := range mg {
		mg[i] = movegen.NewMoveGen()
	}
	return &worker{
		tt: transpositiontable.NewTtTable(ttSizeInMByte),
		mg: mg,
	}
}

// minMax is the recursive alpha-beta step. depth counts plies already played
// from the root move (the root move itself is made by the caller before
// entering this function at depth 1); maxDepth is the fixed search horizon.
// The maximizing side is derived from the position's own side to move rather
// than threaded down as a separately flipped flag - side to move already
// flips every ply, so deriving it here can never fall out of sync with the
// position, unlike hard-coding it once at the root.
func (w *worker) minMax(pos *position.Position, depth, maxDepth int, alpha, beta Value) Value {
	originalAlpha, originalBeta := alpha, beta
	isMax := pos.NextPlayer() == White
	key := pos.ZobristKey()
	remaining := int8(maxDepth - depth)

	if entry := w.tt.Probe(key); entry != nil && entry.IsMax() == isMax && entry.Depth() >= remaining {
		switch entry.Vtype() {
		case EXACT:
			return entry.Value()
		case BETA:
			if entry.Value() >= beta {
				return entry.Value()
			}
		case ALPHA:
			if entry.Value() <= alpha {
				return entry.Value()
			}
		}
	}

	w.nodesVisited++

	moves := w.mg[depth].GenerateLegalMoves(pos, movegen.GenAll)
	count := moves.Len()

	if depth == maxDepth || count == 0 {
		value := materialValue(pos)
		w.tt.Put(key, MoveNone, remaining, value, EXACT, ValueNA, isMax)
		return value
	}

	var best Value
	if isMax {
		best = ValueMin
		for i := 0; i < count; i++ {
			m := moves.At(i)
			pos.DoMove(m)
			value := w.minMax(pos, depth+1, maxDepth, alpha, beta)
			pos.UndoMove()

			if value > best {
				best = value
			}
			if best > alpha {
				alpha = best
			}
			if beta <= alpha {
				break
			}
		}
	} else {
		best = ValueMax
		for i := 0; i < count; i++ {
			m := moves.At(i)
			pos.DoMove(m)
			value := w.minMax(pos, depth+1, maxDepth, alpha, beta)
			pos.UndoMove()

			if value < best {
				best = value
			}
			if best < beta {
				beta = best
			}
			if beta <= alpha {
				break
			}
		}
	}

	var vtype ValueType
	switch {
	case best <= originalAlpha:
		vtype = ALPHA
	case best >= originalBeta:
		vtype = BETA
	default:
		vtype = EXACT
	}
	w.tt.Put(key, MoveNone, remaining, best, vtype, ValueNA, isMax)

	return best
}

// materialValue uses position.Position.Material's per-piece-type values -
// pawn 1, knight 3, bishop 3, rook 5, queen 9, king 0 - so it is
// just the incrementally tracked material difference, not a recount from
// bitboards.
func materialValue(pos *position.Position) Value {
	return pos.Material(White) - pos.Material(Black)
}
