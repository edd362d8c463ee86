/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package position

import (
	"os"
	"path"
	"runtime"
	"testing"

	"github.com/op/go-logging"

	"github.com/dkoch/gochess/internal/config"
	myLogging "github.com/dkoch/gochess/internal/logging"
	. "github.com/dkoch/gochess/internal/types"

	"github.com/stretchr/testify/assert"
)

var logTest *logging.Logger

// make tests run in the projects root directory
func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "../..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}

// Setup the tests
func TestMain(m *testing.M) {
	config.Setup()
	logTest = myLogging.GetTestLog()
	code := m.Run()
	os.Exit(code)
}

// move builds a quiet/capturing move for a position, picking the kind
// automatically from whether the destination is occupied.
func move(p *Position, from, to Square) Move {
	kind := Quiet
	if p.GetPiece(to) != PieceNone {
		kind = Capture
	}
	return NewMove(from, to, p.GetPiece(from), kind)
}

func TestPositionCreation(t *testing.T) {
	fen := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	p, err := NewPositionFen(fen)
	assert.NoError(t, err)
	assert.Equal(t, SqA1.Bb()|SqH1.Bb()|SqA8.Bb()|SqH8.Bb(), p.piecesBb[White][Rook]|p.piecesBb[Black][Rook])
	assert.Equal(t, SqB1.Bb()|SqG1.Bb()|SqB8.Bb()|SqG8.Bb(), p.piecesBb[White][Knight]|p.piecesBb[Black][Knight])
	assert.Equal(t, SqC1.Bb()|SqF1.Bb()|SqC8.Bb()|SqF8.Bb(), p.piecesBb[White][Bishop]|p.piecesBb[Black][Bishop])
	assert.Equal(t, SqD1.Bb()|SqD8.Bb(), p.piecesBb[White][Queen]|p.piecesBb[Black][Queen])
	assert.Equal(t, SqE1.Bb()|SqE8.Bb(), p.piecesBb[White][King]|p.piecesBb[Black][King])
	assert.Equal(t, Rank2_Bb|Rank7_Bb, p.piecesBb[White][Pawn]|p.piecesBb[Black][Pawn])
	assert.Equal(t, White, p.nextPlayer)
	assert.Equal(t, CastlingAny, p.castlingRights)
	assert.Equal(t, SqNone, p.enPassantSquare)
	assert.Equal(t, 0, p.halfMoveClock)
	assert.Equal(t, 1, p.nextHalfMoveNumber)
	assert.Equal(t, Value(0), p.material[White]-p.material[Black])
	assert.Equal(t, fen, p.StringFen())

	fen = "r3k2r/1ppn3p/2q1q1n1/4P3/2q1Pp2/6R1/pbp2PPP/1R4K1 b kq e3 0 14"
	p, err = NewPositionFen(fen)
	assert.NoError(t, err)
	assert.Equal(t, Black, p.nextPlayer)
	assert.Equal(t, CastlingBlack, p.castlingRights)
	assert.Equal(t, SqE3, p.enPassantSquare)
	assert.Equal(t, 0, p.halfMoveClock)
	assert.Equal(t, 28, p.nextHalfMoveNumber)
	assert.Equal(t, fen, p.StringFen())
}

func TestPositionCreationInvalidFen(t *testing.T) {
	_, err := NewPositionFen("not a fen at all")
	assert.Error(t, err)
}

func TestPositionEquality(t *testing.T) {
	p1 := NewPosition()
	p2, _ := NewPositionFen(StartFen)
	assert.Equal(t, p1, p2)

	p3, _ := NewPositionFen("r3k2r/1ppn3p/2q1q1n1/4P3/2q1Pp2/6R1/pbp2PPP/1R4K1 b kq e3 0 14")
	assert.NotEqual(t, p1, p3)

	*p3 = *p2
	assert.Equal(t, *p1, *p3)
	p3.castlingRights.Remove(CastlingWhiteOO)
	assert.NotEqual(t, *p1, *p3)
	assert.Equal(t, *p1, *p2)
	p3.castlingRights.Add(CastlingWhiteOO)
	assert.Equal(t, *p1, *p3)
}

func TestPositionDoUndoRoundtrip(t *testing.T) {
	p := NewPosition()
	startZobrist := p.ZobristKey()
	startFen := p.StringFen()

	p.DoMove(NewMove(SqE2, SqE4, WhitePawn, DoublePawnPush))
	p.DoMove(NewMove(SqD7, SqD5, BlackPawn, DoublePawnPush))
	p.DoMove(move(p, SqE4, SqD5))
	p.DoMove(move(p, SqD8, SqD5))
	p.DoMove(move(p, SqB1, SqC3))
	for i := 0; i < 5; i++ {
		p.UndoMove()
	}
	assert.Equal(t, startFen, p.StringFen())
	assert.Equal(t, startZobrist, p.ZobristKey())
}

func TestPositionDoMoveNormalAndCapture(t *testing.T) {
	fen := "r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3 0 1"
	p, _ := NewPositionFen(fen)
	p.DoMove(move(p, SqC4, SqD4))
	assert.Equal(t, "r3k2r/1ppn3p/2q1q1n1/8/3qPp2/B5R1/p1p2PPP/1R4K1 w kq - 1 2", p.StringFen())

	p, _ = NewPositionFen(fen)
	p.DoMove(move(p, SqC4, SqE4))
	assert.Equal(t, "r3k2r/1ppn3p/2q1q1n1/8/4qp2/B5R1/p1p2PPP/1R4K1 w kq - 0 2", p.StringFen())

	fen = "r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 w kq - 0 1"
	p, _ = NewPositionFen(fen)
	p.DoMove(move(p, SqG3, SqG6))
	assert.Equal(t, "r3k2r/1ppn3p/2q1q1R1/8/2q1Pp2/B7/p1p2PPP/1R4K1 b kq - 0 1", p.StringFen())
}

func TestPositionDoUndoCastling(t *testing.T) {
	fen := "r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq - 0 1"
	p, _ := NewPositionFen(fen)
	zk := p.ZobristKey()
	kingside := NewMove(SqE8, SqG8, BlackKing, CastleKingside)
	p.DoMove(kingside)
	assert.Equal(t, "r4rk1/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 w - - 1 2", p.StringFen())
	p.UndoMove()
	assert.Equal(t, fen, p.StringFen())
	assert.Equal(t, zk, p.ZobristKey())

	queenside := NewMove(SqE8, SqC8, BlackKing, CastleQueenside)
	p.DoMove(queenside)
	assert.Equal(t, "2kr3r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 w - - 1 2", p.StringFen())
	p.UndoMove()
	assert.Equal(t, fen, p.StringFen())
}

func TestPositionDoUndoEnPassant(t *testing.T) {
	fen := "r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3 0 1"
	p, _ := NewPositionFen(fen)
	zk := p.ZobristKey()
	ep := NewMove(SqF4, SqE3, BlackPawn, EnPassantCapture)
	p.DoMove(ep)
	assert.Equal(t, "r3k2r/1ppn3p/2q1q1n1/8/2q5/B3p1R1/p1p2PPP/1R4K1 w kq - 0 2", p.StringFen())
	p.UndoMove()
	assert.Equal(t, fen, p.StringFen())
	assert.Equal(t, zk, p.ZobristKey())
}

func TestPositionDoUndoPromotion(t *testing.T) {
	fen := "r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3 0 1"
	p, _ := NewPositionFen(fen)
	zk := p.ZobristKey()
	promo := NewPromotionMove(SqA2, SqA1, BlackPawn, Promotion, Queen)
	p.DoMove(promo)
	assert.Equal(t, "r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/2p2PPP/qR4K1 w kq - 0 2", p.StringFen())
	p.UndoMove()
	assert.Equal(t, fen, p.StringFen())
	assert.Equal(t, zk, p.ZobristKey())

	p, _ = NewPositionFen(fen)
	promoCapture := NewPromotionMove(SqA2, SqB1, BlackPawn, PromotionCapture, Rook)
	p.DoMove(promoCapture)
	assert.Equal(t, "r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/2p2PPP/1r4K1 w kq - 0 2", p.StringFen())
	p.UndoMove()
	assert.Equal(t, fen, p.StringFen())
}

func TestPositionIsAttacked(t *testing.T) {
	fen := "r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/6R1/p1p2PPP/1R4K1 b kq e3"
	p, _ := NewPositionFen(fen)

	// pawns
	assert.True(t, p.IsAttacked(SqG3, White))
	assert.True(t, p.IsAttacked(SqE3, White))
	assert.True(t, p.IsAttacked(SqB1, Black))
	assert.True(t, p.IsAttacked(SqE4, Black))
	assert.True(t, p.IsAttacked(SqE3, Black))

	// knight
	assert.True(t, p.IsAttacked(SqE5, Black))
	assert.True(t, p.IsAttacked(SqF4, Black))
	assert.False(t, p.IsAttacked(SqG1, Black))

	// sliding
	assert.True(t, p.IsAttacked(SqG6, White))
	assert.True(t, p.IsAttacked(SqA5, Black))

	fen = "rnbqkbnr/1ppppppp/8/p7/Q1P5/8/PP1PPPPP/RNB1KBNR b KQkq - 1 2"
	p, _ = NewPositionFen(fen)
	assert.True(t, p.IsAttacked(SqD1, White))
	assert.False(t, p.IsAttacked(SqE1, Black))
	assert.True(t, p.IsAttacked(SqA5, Black))
	assert.False(t, p.IsAttacked(SqA4, Black))
	assert.True(t, p.IsAttacked(SqD7, White))

	// en passant
	fen = "rnbqkbnr/1pp1pppp/p7/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6"
	p, _ = NewPositionFen(fen)
	assert.True(t, p.IsAttacked(SqD5, White))

	fen = "rnbqkbnr/pppp1ppp/8/8/3Pp3/7P/PPP1PPP1/RNBQKBNR b - d3"
	p, _ = NewPositionFen(fen)
	assert.True(t, p.IsAttacked(SqD4, Black))
}

func TestPositionIsLegalMoveCastling(t *testing.T) {
	// no o-o castling / o-o-o is allowed
	fen := "r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3"
	p, _ := NewPositionFen(fen)
	assert.False(t, p.IsLegalMove(NewMove(SqE8, SqG8, BlackKing, CastleKingside)))
	assert.True(t, p.IsLegalMove(NewMove(SqE8, SqC8, BlackKing, CastleQueenside)))

	// in check - no castling at all
	fen = "r3k2r/1ppn3p/2q1qNn1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3"
	p, _ = NewPositionFen(fen)
	assert.False(t, p.IsLegalMove(NewMove(SqE8, SqG8, BlackKing, CastleKingside)))
	assert.False(t, p.IsLegalMove(NewMove(SqE8, SqC8, BlackKing, CastleQueenside)))
}

func TestPositionWasLegalMoveCastling(t *testing.T) {
	fen := "r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3"
	p, _ := NewPositionFen(fen)
	p.DoMove(NewMove(SqE8, SqG8, BlackKing, CastleKingside)) // crosses an attacked square
	assert.False(t, p.WasLegalMove())
	p.UndoMove()
	p.DoMove(NewMove(SqE8, SqC8, BlackKing, CastleQueenside))
	assert.True(t, p.WasLegalMove())
}

func TestPositionHasCheck(t *testing.T) {
	p := NewPosition("4r3/1pn3k1/4p1b1/p1Pp1P1r/3P2NR/1P3B2/3K2P1/4R3 w - -")
	assert.False(t, p.HasCheck())

	p = NewPosition("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq -")
	assert.True(t, p.HasCheck())
	// cached - a second call returns the same result without recomputation
	assert.True(t, p.HasCheck())
}

func TestPositionGivesCheck(t *testing.T) {
	p := NewPosition("4r3/1pn3k1/4p1b1/p1Pp1P1r/3P2NR/1P3B2/3K2P1/4R3 w - -")
	mv := move(p, SqF5, SqF6)
	assert.True(t, p.GivesCheck(mv))

	p = NewPosition("1k3r2/1p1bP3/2p2p1Q/Ppb5/4Rp1P/2q2N1P/5PB1/6K1 w - -")
	mv = NewPromotionMove(SqE7, SqF8, WhitePawn, PromotionCapture, Queen)
	assert.True(t, p.GivesCheck(mv))
}

func TestPositionHasInsufficientMaterial(t *testing.T) {
	p := NewPosition("8/8/4k3/8/8/4K3/8/8 w - -")
	assert.True(t, p.HasInsufficientMaterial())

	p = NewPosition("8/8/4k3/8/8/4KN2/8/8 w - -")
	assert.True(t, p.HasInsufficientMaterial())

	p = NewPosition(StartFen)
	assert.False(t, p.HasInsufficientMaterial())
}

func TestPositionCheckRepetitions(t *testing.T) {
	p := NewPosition()
	assert.False(t, p.CheckRepetitions(2))

	// shuffle knights back and forth three times to trigger a 3-fold repetition
	for i := 0; i < 2; i++ {
		p.DoMove(move(p, SqG1, SqF3))
		p.DoMove(move(p, SqG8, SqF6))
		p.DoMove(move(p, SqF3, SqG1))
		p.DoMove(move(p, SqF6, SqG8))
	}
	assert.True(t, p.CheckRepetitions(2))
}
