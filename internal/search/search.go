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

// Package search implements a fixed-depth alpha-beta search with a bucketed
// transposition table and an optional root-parallel split across goroutines.
// It does not implement iterative deepening, opening books, pondering or
// time control - the engine always searches to a fixed depth and returns.
package search

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/sync/semaphore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dkoch/gochess/internal/config"
	myLogging "github.com/dkoch/gochess/internal/logging"
	"github.com/dkoch/gochess/internal/movegen"
	"github.com/dkoch/gochess/internal/moveslice"
	"github.com/dkoch/gochess/internal/position"
	. "github.com/dkoch/gochess/internal/types"
)

var out = message.NewPrinter(language.German)

// Search is the data structure for a chess engine search. Create a new
// instance with NewSearch(); the zero value is not usable.
type Search struct {
	log  *logging.Logger
	slog *logging.Logger

	initSemaphore *semaphore.Weighted
	isRunning     *semaphore.Weighted

	worker *worker

	lastSearchResult *Result
	stopFlag         bool
	startTime        time.Time
	currentPosition  *position.Position
	searchLimits     *Limits
	statistics       Statistics
}

// NewSearch creates a new Search instance ready to accept StartSearch calls.
func NewSearch() *Search {
	return &Search{
		log:           myLogging.GetLog(),
		slog:          myLogging.GetSearchLog(),
		initSemaphore: semaphore.NewWeighted(int64(1)),
		isRunning:     semaphore.NewWeighted(int64(1)),
	}
}

// NewGame stops any running search and clears the transposition table so
// the next search starts on a clean hash.
func (s *Search) NewGame() {
	s.StopSearch()
	if s.worker != nil {
		s.worker.tt.Clear()
	}
}

// StartSearch starts a fixed-depth search on a copy of p with the given
// limits, returning once the search goroutine has finished initializing (not
// once it has finished searching - use WaitWhileSearching or StopSearch for
// that). Search can be polled with IsSearching and stopped with StopSearch.
func (s *Search) StartSearch(p position.Position, sl Limits) {
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	s.currentPosition = &p
	s.searchLimits = &sl
	go s.run(&p, &sl)
	// block until run() has finished setting up and released this semaphore,
	// so StartSearch never returns to the caller mid-initialization
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	s.initSemaphore.Release(1)
}

// StopSearch requests the running search stop as soon as possible and
// blocks until it has. A no-op if no search is running.
func (s *Search) StopSearch() {
	s.stopFlag = true
	s.WaitWhileSearching()
}

// IsSearching reports whether a search is currently running.
func (s *Search) IsSearching() bool {
	if !s.isRunning.TryAcquire(1) {
		return true
	}
	s.isRunning.Release(1)
	return false
}

// WaitWhileSearching blocks until any running search has finished.
func (s *Search) WaitWhileSearching() {
	_ = s.isRunning.Acquire(context.TODO(), 1)
	s.isRunning.Release(1)
}

// ClearHash clears the transposition table. Ignored with a warning while a
// search is running.
func (s *Search) ClearHash() {
	if s.IsSearching() {
		s.log.Warning("Can't clear hash while searching.")
		return
	}
	if s.worker != nil {
		s.worker.tt.Clear()
	}
}

// ResizeCache drops the current worker (and its transposition table) so the
// next search builds a fresh one sized from config.Settings.Search.TTSize.
// Ignored with a warning while a search is running.
func (s *Search) ResizeCache() {
	if s.IsSearching() {
		s.log.Warning("Can't resize hash while searching.")
		return
	}
	s.worker = nil
}

// LastSearchResult returns the result of the most recently finished search,
// or the zero Result if none has finished yet.
func (s *Search) LastSearchResult() Result {
	if s.lastSearchResult == nil {
		return Result{}
	}
	return *s.lastSearchResult
}

// NodesVisited returns the number of nodes visited across all workers during
// the most recent search.
func (s *Search) NodesVisited() uint64 {
	return s.statistics.NodesVisited
}

// Statistics returns a pointer to this search's running statistics.
func (s *Search) Statistics() *Statistics {
	return &s.statistics
}

// run is launched by StartSearch in its own goroutine. It sets up the
// worker (transposition table plus one move generator per ply) if this is
// the first search, runs the root-parallel alpha-beta search, and stores
// the result.
func (s *Search) run(p *position.Position, sl *Limits) {
	if !s.isRunning.TryAcquire(1) {
		s.log.Error("Search already running")
		s.initSemaphore.Release(1)
		return
	}
	defer s.isRunning.Release(1)

	s.stopFlag = false
	s.startTime = time.Now()

	maxDepth := sl.Depth
	if maxDepth <= 0 {
		maxDepth = config.Settings.Search.DefaultDepth
	}

	ttSize := 0
	if config.Settings.Search.UseTT {
		ttSize = config.Settings.Search.TTSize
	}
	if s.worker == nil || len(s.worker.mg) < maxDepth+2 {
		s.worker = newWorker(ttSize, maxDepth)
	}

	// initialization done - let StartSearch return to its caller while the
	// actual search below keeps running
	s.initSemaphore.Release(1)

	rootColor := p.NextPlayer()
	best, value, nodes, hits, misses := s.rootSearch(p, maxDepth, ttSize)

	s.statistics.NodesVisited += nodes
	s.statistics.merge(hits, misses)
	s.statistics.CurrentSearchDepth = maxDepth
	if best == MoveNone {
		if p.HasCheck() {
			s.statistics.Checkmates++
		} else {
			s.statistics.Stalemates++
		}
	}

	elapsed := time.Since(s.startTime)
	result := &Result{
		BestMove:    best,
		BestValue:   value,
		SearchTime:  elapsed,
		SearchDepth: maxDepth,
		Nodes:       nodes,
	}
	s.lastSearchResult = result
	s.slog.Info(out.Sprintf("search finished for %s: %s, %d nodes in %d ms", rootColor.String(), result.String(), nodes, elapsed.Milliseconds()))
}

// scoredMove pairs a root move with the score minMax returned for it.
type scoredMove struct {
	move  Move
	score Value
}

// rootPerspective reorients a raw white_sum-black_sum score into "how good
// is this for the side to move at the root" - White wants the highest raw
// score, Black wants the lowest, so Black's moves are compared on their
// negation. Without this, root move selection would pick White's best
// continuation even when Black is on the move.
func rootPerspective(score Value, sideToMove Color) Value {
	if sideToMove == White {
		return score
	}
	return -score
}

// rootSearch partitions the root's legal moves across config-set worker
// count and returns the move with the best score for the side to move, its
// score, the total nodes visited across all workers, and the aggregate
// transposition table hit/miss counts across all workers.
func (s *Search) rootSearch(p *position.Position, maxDepth, ttSize int) (Move, Value, uint64, uint64, uint64) {
	rootMoves := s.worker.mg[0].GenerateLegalMoves(p, movegen.GenAll)
	count := rootMoves.Len()
	if count == 0 {
		return MoveNone, materialValue(p), 0, 0, 0
	}

	rootColor := p.NextPlayer()

	workerCount := config.Settings.Search.WorkerCount
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > count {
		workerCount = count
	}

	var results []scoredMove
	var nodes, hits, misses uint64
	if workerCount == 1 {
		results, nodes = searchRootChunk(s.worker, p, rootMoves, 0, count, maxDepth, &s.stopFlag)
		hits, misses = s.worker.tt.HitsAndMisses()
	} else {
		results, nodes, hits, misses = s.parallelRootSearch(p, rootMoves, count, maxDepth, ttSize, workerCount)
	}

	if len(results) == 0 {
		return MoveNone, materialValue(p), nodes, hits, misses
	}

	sort.SliceStable(results, func(i, j int) bool {
		return rootPerspective(results[i].score, rootColor) > rootPerspective(results[j].score, rootColor)
	})
	return results[0].move, results[0].score, nodes, hits, misses
}

// parallelRootSearch partitions rootMoves into contiguous chunks, one per
// worker, each with its own cloned position and its own transposition table
// (workers never share a table). The driver blocks only on the join.
func (s *Search) parallelRootSearch(p *position.Position, rootMoves *moveslice.MoveSlice, count, maxDepth, ttSize, workerCount int) ([]scoredMove, uint64, uint64, uint64) {
	type chunkResult struct {
		moves  []scoredMove
		nodes  uint64
		hits   uint64
		misses uint64
	}
	chunkResults := make([]chunkResult, workerCount)

	chunkSize := count / workerCount
	var wg sync.WaitGroup
	start := 0
	for i := 0; i < workerCount; i++ {
		end := start + chunkSize
		if i == workerCount-1 {
			end = count
		}
		if start >= end {
			start = end
			continue
		}
		wg.Add(1)
		go func(i, start, end int) {
			defer wg.Done()
			posClone := *p
			w := newWorker(ttSize, maxDepth)
			moves, nodes := searchRootChunk(w, &posClone, rootMoves, start, end, maxDepth, &s.stopFlag)
			hits, misses := w.tt.HitsAndMisses()
			chunkResults[i] = chunkResult{moves: moves, nodes: nodes, hits: hits, misses: misses}
		}(i, start, end)
		start = end
	}
	wg.Wait()

	var all []scoredMove
	var totalNodes, totalHits, totalMisses uint64
	for _, cr := range chunkResults {
		all = append(all, cr.moves...)
		totalNodes += cr.nodes
		totalHits += cr.hits
		totalMisses += cr.misses
	}
	return all, totalNodes, totalHits, totalMisses
}

// searchRootChunk searches rootMoves[start:end] on p with w's own worker
// state, making and unmaking each move on p in turn. stopFlag is polled
// between root moves so a long search can be cut short between moves; it is
// not polled inside minMax itself.
func searchRootChunk(w *worker, p *position.Position, rootMoves *moveslice.MoveSlice, start, end, maxDepth int, stopFlag *bool) ([]scoredMove, uint64) {
	results := make([]scoredMove, 0, end-start)
	for i := start; i < end; i++ {
		if *stopFlag {
			break
		}
		m := rootMoves.At(i)
		p.DoMove(m)
		score := w.minMax(p, 1, maxDepth, ValueMin, ValueMax)
		p.UndoMove()
		results = append(results, scoredMove{move: m, score: score})
	}
	return results, w.nodesVisited
}
