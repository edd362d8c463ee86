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

package types

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var initOnce sync.Once

func ensureInit() {
	initOnce.Do(initBb)
}

func TestPushPopHasSquare(t *testing.T) {
	ensureInit()
	b := BbZero
	b.PushSquare(SqE4)
	assert.True(t, b.Has(SqE4))
	assert.False(t, b.Has(SqD4))
	b.PopSquare(SqE4)
	assert.False(t, b.Has(SqE4))
}

func TestFileRankMasks(t *testing.T) {
	ensureInit()
	assert.EqualValues(t, FileA_Bb, FileA.Bb())
	assert.EqualValues(t, Rank8_Bb, Rank8.Bb())
	assert.EqualValues(t, Rank1_Bb, Rank1.Bb())
	assert.True(t, FileA_Bb.Has(SqA8))
	assert.True(t, FileA_Bb.Has(SqA1))
	assert.False(t, FileA_Bb.Has(SqB1))
	assert.True(t, Rank8_Bb.Has(SqA8))
	assert.True(t, Rank8_Bb.Has(SqH8))
	assert.False(t, Rank8_Bb.Has(SqA7))
}

func TestShiftBitboard(t *testing.T) {
	ensureInit()
	e4 := SqE4.Bb()
	assert.EqualValues(t, SqE5.Bb(), ShiftBitboard(e4, North))
	assert.EqualValues(t, SqE3.Bb(), ShiftBitboard(e4, South))
	assert.EqualValues(t, SqF4.Bb(), ShiftBitboard(e4, East))
	assert.EqualValues(t, SqD4.Bb(), ShiftBitboard(e4, West))

	// shifting off the board edge produces an empty bitboard
	h4 := SqH4.Bb()
	assert.EqualValues(t, BbZero, ShiftBitboard(h4, East))
	a4 := SqA4.Bb()
	assert.EqualValues(t, BbZero, ShiftBitboard(a4, West))
	rank8 := Rank8_Bb
	assert.EqualValues(t, BbZero, ShiftBitboard(rank8, North))
}

func TestLsbMsbPopLsb(t *testing.T) {
	ensureInit()
	b := SqA8.Bb() | SqE4.Bb() | SqH1.Bb()
	assert.EqualValues(t, SqA8, b.Lsb())
	assert.EqualValues(t, SqH1, b.Msb())
	assert.EqualValues(t, 3, b.PopCount())

	first := b.PopLsb()
	assert.EqualValues(t, SqA8, first)
	assert.EqualValues(t, 2, b.PopCount())
	assert.False(t, b.Has(SqA8))

	empty := BbZero
	assert.EqualValues(t, SqNone, empty.Lsb())
	assert.EqualValues(t, SqNone, empty.Msb())
	assert.EqualValues(t, SqNone, empty.PopLsb())
}

func TestKingPseudoAttacks(t *testing.T) {
	ensureInit()
	attacks := GetPseudoAttacks(King, SqE4)
	assert.EqualValues(t, 8, attacks.PopCount())
	assert.True(t, attacks.Has(SqE5))
	assert.True(t, attacks.Has(SqD3))

	cornerAttacks := GetPseudoAttacks(King, SqA8)
	assert.EqualValues(t, 3, cornerAttacks.PopCount())
}

func TestKnightPseudoAttacks(t *testing.T) {
	ensureInit()
	attacks := GetPseudoAttacks(Knight, SqE4)
	assert.EqualValues(t, 8, attacks.PopCount())
	assert.True(t, attacks.Has(SqF6))
	assert.True(t, attacks.Has(SqC3))

	cornerAttacks := GetPseudoAttacks(Knight, SqA8)
	assert.EqualValues(t, 2, cornerAttacks.PopCount())
}

func TestPawnAttacks(t *testing.T) {
	ensureInit()
	// White's forward direction is North (toward rank 8), so its pawn
	// attacks from e4 are the northwest/northeast diagonals.
	whiteAttacks := GetPawnAttacks(White, SqE4)
	assert.True(t, whiteAttacks.Has(SqD5))
	assert.True(t, whiteAttacks.Has(SqF5))
	assert.EqualValues(t, 2, whiteAttacks.PopCount())

	blackAttacks := GetPawnAttacks(Black, SqE4)
	assert.True(t, blackAttacks.Has(SqD3))
	assert.True(t, blackAttacks.Has(SqF3))
}

func TestRookMagicAttacksOnEmptyBoard(t *testing.T) {
	ensureInit()
	attacks := GetAttacksBb(Rook, SqA1, BbZero)
	assert.True(t, attacks.Has(SqA8))
	assert.True(t, attacks.Has(SqH1))
	assert.False(t, attacks.Has(SqB2))
}

func TestRookMagicAttacksBlocked(t *testing.T) {
	ensureInit()
	occ := SqA1.Bb() | SqA4.Bb()
	attacks := GetAttacksBb(Rook, SqA1, occ)
	assert.True(t, attacks.Has(SqA4))
	assert.False(t, attacks.Has(SqA5))
	assert.True(t, attacks.Has(SqH1))
}

func TestBishopMagicAttacks(t *testing.T) {
	ensureInit()
	attacks := GetAttacksBb(Bishop, SqD4, BbZero)
	assert.True(t, attacks.Has(SqA1))
	assert.True(t, attacks.Has(SqH8))
	assert.False(t, attacks.Has(SqD5))
}

func TestQueenMagicAttacks(t *testing.T) {
	ensureInit()
	rook := GetAttacksBb(Rook, SqD4, BbZero)
	bishop := GetAttacksBb(Bishop, SqD4, BbZero)
	queen := GetAttacksBb(Queen, SqD4, BbZero)
	assert.EqualValues(t, rook|bishop, queen)
}

func TestCastlingMasks(t *testing.T) {
	ensureInit()
	assert.True(t, KingSideCastleMask(White).Has(SqF1))
	assert.True(t, KingSideCastleMask(White).Has(SqG1))
	assert.True(t, QueenSideCastleMask(White).Has(SqB1))
	assert.True(t, QueenSideCastleMask(White).Has(SqC1))
	assert.True(t, QueenSideCastleMask(White).Has(SqD1))

	assert.EqualValues(t, CastlingWhite, GetCastlingRights(SqE1))
	assert.EqualValues(t, CastlingWhiteOO, GetCastlingRights(SqH1))
	assert.EqualValues(t, CastlingWhiteOOO, GetCastlingRights(SqA1))
	assert.EqualValues(t, CastlingBlack, GetCastlingRights(SqE8))
}
