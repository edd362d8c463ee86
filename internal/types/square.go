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

package types

import "fmt"

// Square represents exactly one square on a chess board. Index 0 is a8 and
// index 63 is h1 - rank 8 is enumerated first and file a is enumerated
// first within each rank. Every shift direction in the move generator is
// derived from this layout and must not be changed independently of it.
type Square uint8

//noinspection GoUnusedConst
const (
	SqA8 Square = iota // 0
	SqB8
	SqC8
	SqD8
	SqE8
	SqF8
	SqG8
	SqH8
	SqA7
	SqB7
	SqC7
	SqD7
	SqE7
	SqF7
	SqG7
	SqH7
	SqA6
	SqB6
	SqC6
	SqD6
	SqE6
	SqF6
	SqG6
	SqH6
	SqA5
	SqB5
	SqC5
	SqD5
	SqE5
	SqF5
	SqG5
	SqH5
	SqA4
	SqB4
	SqC4
	SqD4
	SqE4
	SqF4
	SqG4
	SqH4
	SqA3
	SqB3
	SqC3
	SqD3
	SqE3
	SqF3
	SqG3
	SqH3
	SqA2
	SqB2
	SqC2
	SqD2
	SqE2
	SqF2
	SqG2
	SqH2
	SqA1
	SqB1
	SqC1
	SqD1
	SqE1
	SqF1
	SqG1
	SqH1
	SqNone
	SqLength = SqH1 + 1
)

// Direction is an offset in squares applied when walking the board along
// one of the eight compass directions, or a knight hop.
type Direction int8

//noinspection GoUnusedConst
const (
	North     Direction = -8
	South     Direction = 8
	East      Direction = 1
	West      Direction = -1
	Northeast Direction = North + East
	Northwest Direction = North + West
	Southeast Direction = South + East
	Southwest Direction = South + West
)

// IsValid checks if sq is a valid square on the board.
func (sq Square) IsValid() bool {
	return sq < SqNone
}

// FileOf returns the file the square is on.
func (sq Square) FileOf() File {
	return File(sq % 8)
}

// RankOf returns the rank the square is on, where Rank8 is the top rank
// (the rank enumerated first by the Square index).
func (sq Square) RankOf() Rank {
	return Rank(7 - sq/8)
}

// Bb returns a Bitboard with only this square's bit set.
func (sq Square) Bb() Bitboard {
	return sqBb[sq]
}

// To returns the square reached by moving one step in direction d. The
// caller must check the result with IsValid - stepping off the board
// (or wrapping around a file edge) is only guarded against for the
// directions that care about file wrap (east/west and the diagonals);
// callers combine this with the FILE_NOT_x masks before shifting whole
// bitboards, but for single-square stepping this method also checks file
// wrap explicitly so it is safe to call directly.
func (sq Square) To(d Direction) Square {
	nsq := int(sq) + int(d)
	if nsq < 0 || nsq >= int(SqLength) {
		return SqNone
	}
	// guard against wrapping around the east/west board edge
	switch d {
	case East, Northeast, Southeast:
		if sq.FileOf() == FileH {
			return SqNone
		}
	case West, Northwest, Southwest:
		if sq.FileOf() == FileA {
			return SqNone
		}
	}
	return Square(nsq)
}

// SquareOf builds a Square from a file and a rank.
func SquareOf(f File, r Rank) Square {
	return Square((7-r)*8 + Rank(f))
}

// String returns the algebraic name of the square, e.g. "e4", or "-" for
// SqNone.
func (sq Square) String() string {
	if sq >= SqNone {
		return "-"
	}
	return fmt.Sprintf("%s%s", sq.FileOf().String(), sq.RankOf().String())
}

// MakeSquare parses an algebraic square name ("e4") into a Square.
// Returns SqNone if str is not a valid square name.
func MakeSquare(str string) Square {
	if len(str) != 2 {
		return SqNone
	}
	f := str[0]
	r := str[1]
	if f < 'a' || f > 'h' || r < '1' || r > '8' {
		return SqNone
	}
	return SquareOf(File(f-'a'), Rank(r-'1'))
}
