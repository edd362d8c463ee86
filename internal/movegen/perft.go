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
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dkoch/gochess/internal/position"
	. "github.com/dkoch/gochess/internal/types"
)

var out = message.NewPrinter(language.German)

// Perft counts the leaf nodes reachable from a position to a fixed depth -
// a standard move generator correctness and performance benchmark, since
// the node counts for the standard starting position (and a handful of
// other well known test positions) are published and exact.
type Perft struct {
	Nodes            uint64
	CheckCounter     uint64
	CheckMateCounter uint64
	CaptureCounter   uint64
	EnpassantCounter uint64
	CastleCounter    uint64
	PromotionCounter uint64
	stopFlag         bool
}

// NewPerft creates a new empty Perft instance.
func NewPerft() *Perft {
	return &Perft{}
}

// Stop can be used to abort a perft run started in a goroutine.
func (perft *Perft) Stop() {
	perft.stopFlag = true
}

// StartPerftMulti runs StartPerft for each depth from startDepth to endDepth.
func (perft *Perft) StartPerftMulti(fen string, startDepth, endDepth int) {
	perft.stopFlag = false
	for i := startDepth; i <= endDepth; i++ {
		if perft.stopFlag {
			out.Print("perft multi depth stopped\n")
			return
		}
		perft.StartPerft(fen, i)
	}
}

// StartPerft runs a perft node count to the given depth from the position
// described by fen, printing a summary to stdout.
func (perft *Perft) StartPerft(fen string, depth int) {
	perft.stopFlag = false
	if depth <= 0 {
		depth = 1
	}
	perft.resetCounters()

	posPtr, err := position.NewPositionFen(fen)
	if err != nil {
		out.Printf("perft: invalid fen %q: %v\n", fen, err)
		return
	}
	mgList := make([]*Movegen, depth+1)
	for i := 0; i <= depth; i++ {
		mgList[i] = NewMoveGen()
	}

	out.Printf("Performing PERFT Test for Depth %d\n", depth)
	out.Printf("FEN: %s\n", fen)
	out.Printf("-----------------------------------------\n")

	start := time.Now()
	result := perft.miniMax(depth, posPtr, mgList)
	elapsed := time.Since(start)

	if result == 0 && perft.stopFlag {
		out.Print("perft stopped\n")
		return
	}
	perft.Nodes = result

	out.Printf("Time         : %s\n", elapsed)
	out.Printf("NPS          : %d nps\n", (perft.Nodes*uint64(time.Second.Nanoseconds()))/uint64(elapsed.Nanoseconds()+1))
	out.Printf("Results:\n")
	out.Printf("   Nodes     : %d\n", perft.Nodes)
	out.Printf("   Captures  : %d\n", perft.CaptureCounter)
	out.Printf("   EnPassant : %d\n", perft.EnpassantCounter)
	out.Printf("   Checks    : %d\n", perft.CheckCounter)
	out.Printf("   CheckMates: %d\n", perft.CheckMateCounter)
	out.Printf("   Castles   : %d\n", perft.CastleCounter)
	out.Printf("   Promotions: %d\n", perft.PromotionCounter)
	out.Printf("-----------------------------------------\n")
	out.Printf("Finished PERFT Test for Depth %d\n\n", depth)
}

// Divide prints the perft node count split out per root move - useful to
// diff against a reference engine's divide output and find the exact ply
// where a move generator bug first shows up.
func (perft *Perft) Divide(fen string, depth int) map[string]uint64 {
	perft.stopFlag = false
	if depth <= 0 {
		depth = 1
	}
	posPtr, err := position.NewPositionFen(fen)
	if err != nil {
		out.Printf("perft divide: invalid fen %q: %v\n", fen, err)
		return nil
	}
	mgList := make([]*Movegen, depth+1)
	for i := 0; i <= depth; i++ {
		mgList[i] = NewMoveGen()
	}

	result := make(map[string]uint64)
	moves := mgList[depth].GenerateLegalMoves(posPtr, GenAll)
	for _, move := range *moves {
		posPtr.DoMove(move)
		var nodes uint64
		if depth > 1 {
			nodes = perft.miniMax(depth-1, posPtr, mgList)
		} else {
			nodes = 1
		}
		posPtr.UndoMove()
		result[move.StringUci()] = nodes
		out.Printf("%-6s: %d\n", move.StringUci(), nodes)
	}
	return result
}

func (perft *Perft) miniMax(depth int, p *position.Position, mgList []*Movegen) uint64 {
	totalNodes := uint64(0)
	moves := mgList[depth].GeneratePseudoLegalMoves(p, GenAll)
	for _, move := range *moves {
		if perft.stopFlag {
			return 0
		}
		if depth > 1 {
			p.DoMove(move)
			if p.WasLegalMove() {
				totalNodes += perft.miniMax(depth-1, p, mgList)
			}
			p.UndoMove()
			continue
		}

		kind := move.Kind()
		p.DoMove(move)
		if p.WasLegalMove() {
			totalNodes++
			if kind == EnPassantCapture {
				perft.EnpassantCounter++
				perft.CaptureCounter++
			} else if kind.IsCapture() {
				perft.CaptureCounter++
			}
			if kind.IsCastle() {
				perft.CastleCounter++
			}
			if kind.IsPromotion() {
				perft.PromotionCounter++
			}
			if p.HasCheck() {
				perft.CheckCounter++
				if !mgList[0].HasLegalMove(p) {
					perft.CheckMateCounter++
				}
			}
		}
		p.UndoMove()
	}
	return totalNodes
}

func (perft *Perft) resetCounters() {
	perft.Nodes = 0
	perft.CheckCounter = 0
	perft.CheckMateCounter = 0
	perft.CaptureCounter = 0
	perft.EnpassantCounter = 0
	perft.CastleCounter = 0
	perft.PromotionCounter = 0
}
