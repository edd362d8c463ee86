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

// Statistics are extra data and stats not essential for a functioning
// search. Move-ordering and pruning counters (LMR, null-move, aspiration,
// IID, ...) do not apply here - this engine explores every legal
// move at every node with no move ordering.
type Statistics struct {
	NodesVisited uint64

	TTHit  uint64
	TTMiss uint64

	Checkmates uint64
	Stalemates uint64

	CurrentSearchDepth int
}

func (s *Statistics) String() string {
	return out.Sprintf("%+v", *s)
}

// merge folds a worker's transposition table counters into the aggregate
// hit/miss totals reported after a search.
func (s *Statistics) merge(hits, misses uint64) {
	s.TTHit += hits
	s.TTMiss += misses
}

// TODO: once move ordering exists, a killer-move table would cut a
// meaningful fraction of nodes here - no ordering heuristic is implemented yet.
