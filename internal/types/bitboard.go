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
	"fmt"
	"math/bits"
	"strings"
)

// Bitboard is a 64 bit unsigned int with 1 bit for each square on the board.
// Bit index equals Square index: bit 0 is a8, bit 63 is h1.
type Bitboard uint64

// Various constant bitboards. Square index 0 is a8, so the low byte of a
// Bitboard is rank 8, not rank 1 - the opposite of the classic a1=0
// layout. File masks are unaffected since file membership only depends on
// index mod 8.
const (
	BbZero Bitboard = Bitboard(0)
	BbAll  Bitboard = ^BbZero
	BbOne  Bitboard = Bitboard(1)

	FileA_Bb Bitboard = 0x0101010101010101
	FileB_Bb Bitboard = FileA_Bb << 1
	FileC_Bb Bitboard = FileA_Bb << 2
	FileD_Bb Bitboard = FileA_Bb << 3
	FileE_Bb Bitboard = FileA_Bb << 4
	FileF_Bb Bitboard = FileA_Bb << 5
	FileG_Bb Bitboard = FileA_Bb << 6
	FileH_Bb Bitboard = FileA_Bb << 7

	Rank8_Bb Bitboard = 0xFF
	Rank7_Bb Bitboard = Rank8_Bb << (8 * 1)
	Rank6_Bb Bitboard = Rank8_Bb << (8 * 2)
	Rank5_Bb Bitboard = Rank8_Bb << (8 * 3)
	Rank4_Bb Bitboard = Rank8_Bb << (8 * 4)
	Rank3_Bb Bitboard = Rank8_Bb << (8 * 5)
	Rank2_Bb Bitboard = Rank8_Bb << (8 * 6)
	Rank1_Bb Bitboard = Rank8_Bb << (8 * 7)

	CenterFiles   Bitboard = FileD_Bb | FileE_Bb
	CenterRanks   Bitboard = Rank4_Bb | Rank5_Bb
	CenterSquares Bitboard = CenterFiles & CenterRanks
)

// PushSquare sets the corresponding bit of the bitboard for the square.
func PushSquare(b Bitboard, s Square) Bitboard {
	return b | s.Bb()
}

// PushSquare sets the corresponding bit of the bitboard for the square.
func (b *Bitboard) PushSquare(s Square) Bitboard {
	*b |= s.Bb()
	return *b
}

// PopSquare clears the corresponding bit of the bitboard for the square.
func PopSquare(b Bitboard, s Square) Bitboard {
	return b &^ s.Bb()
}

// PopSquare clears the corresponding bit of the bitboard for the square.
func (b *Bitboard) PopSquare(s Square) Bitboard {
	*b = *b &^ s.Bb()
	return *b
}

// Has tests if a square (bit) is set.
func (b Bitboard) Has(s Square) bool {
	return b&sqBb[s] != 0
}

// ShiftBitboard shifts all bits of a bitboard one square in the given
// direction, clearing any bit that would wrap around a file edge. Rank
// edges need no masking - bits simply fall off either end of the 64-bit
// word, which is the desired "no target square" result.
func ShiftBitboard(b Bitboard, d Direction) Bitboard {
	switch d {
	case North:
		return b >> 8
	case South:
		return b << 8
	case East:
		return (b << 1) &^ FileA_Bb
	case West:
		return (b >> 1) &^ FileH_Bb
	case Northeast:
		return (b >> 7) &^ FileA_Bb
	case Northwest:
		return (b >> 9) &^ FileH_Bb
	case Southeast:
		return (b << 9) &^ FileA_Bb
	case Southwest:
		return (b << 7) &^ FileH_Bb
	}
	return b
}

// Lsb returns the least significant set bit as a Square, or SqNone if b is
// empty.
func (b Bitboard) Lsb() Square {
	if b == BbZero {
		return SqNone
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// Msb returns the most significant set bit as a Square, or SqNone if b is
// empty.
func (b Bitboard) Msb() Square {
	if b == BbZero {
		return SqNone
	}
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// PopLsb returns the Lsb square and clears it from the bitboard in place.
func (b *Bitboard) PopLsb() Square {
	if *b == BbZero {
		return SqNone
	}
	lsb := b.Lsb()
	*b &= *b - 1
	return lsb
}

// PopCount returns the number of set bits ("population count") in b -
// equivalently the number of squares set in the bitboard.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// String returns a string representation of the 64 bits.
func (b Bitboard) String() string {
	return fmt.Sprintf("%-0.64b", uint64(b))
}

// StringBoard returns an 8x8 board rendering of the bitboard for logging.
func (b Bitboard) StringBoard() string {
	var os strings.Builder
	os.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := Rank8; ; r-- {
		for f := FileA; f <= FileH; f++ {
			if b.Has(SquareOf(f, r)) {
				os.WriteString("| X ")
			} else {
				os.WriteString("|   ")
			}
		}
		os.WriteString("|\n+---+---+---+---+---+---+---+---+\n")
		if r == Rank1 {
			break
		}
	}
	return os.String()
}

// GetAttacksBb returns a bitboard of all squares attacked by a piece of the
// given type pt (not Pawn) placed on sq, given the current board
// occupancy. Sliding pieces resolve through the magic bitboard tables;
// knight and king ignore occupied and use the precomputed pseudo attacks.
func GetAttacksBb(pt PieceType, sq Square, occupied Bitboard) Bitboard {
	switch pt {
	case Bishop:
		return bishopMagics[sq].Attacks[bishopMagics[sq].index(occupied)]
	case Rook:
		return rookMagics[sq].Attacks[rookMagics[sq].index(occupied)]
	case Queen:
		return bishopMagics[sq].Attacks[bishopMagics[sq].index(occupied)] |
			rookMagics[sq].Attacks[rookMagics[sq].index(occupied)]
	case King, Knight:
		return pseudoAttacks[pt][sq]
	default:
		panic(fmt.Sprintf("GetAttacksBb called with unsupported piece type %s", pt))
	}
}

// GetPseudoAttacks returns the attack bitboard of a piece as if it were
// alone on an empty board - only valid for King and Knight.
func GetPseudoAttacks(pt PieceType, sq Square) Bitboard {
	return pseudoAttacks[pt][sq]
}

// GetPawnAttacks returns the squares a pawn of color c standing on sq
// attacks diagonally.
func GetPawnAttacks(c Color, sq Square) Bitboard {
	return pawnAttacks[c][sq]
}

// KingSideCastleMask returns the squares (excluding the king's origin
// square) that must be empty for kingside castling.
func KingSideCastleMask(c Color) Bitboard {
	return kingSideCastleMask[c]
}

// QueenSideCastleMask returns the squares (excluding the king's origin
// square) that must be empty for queenside castling.
func QueenSideCastleMask(c Color) Bitboard {
	return queenSideCastleMask[c]
}

// GetCastlingRights returns the castling rights that are revoked when a
// piece moves to or from the given square (king or rook origin squares).
func GetCastlingRights(sq Square) CastlingRights {
	return castlingRights[sq]
}

// ////////////////////
// Private

// Internal pre computed square to bitboard array. Initialized by initBb().
var sqBb [SqLength]Bitboard

// Internal pre computed file bitboard array. Initialized by initBb().
var fileBb [8]Bitboard

// Internal pre computed rank bitboard array. Initialized by initBb().
var rankBb [8]Bitboard

// Internal Bb for pawn attacks for each color for each square.
var pawnAttacks [2][SqLength]Bitboard

// Internal Bb for King/Knight pseudo attacks (index by PieceType).
var pseudoAttacks [PtLength][SqLength]Bitboard

// magic bitboards - rook attacks
var (
	rookTable  []Bitboard
	rookMagics [SqLength]Magic
)

// magic bitboards - bishop attacks
var (
	bishopTable  []Bitboard
	bishopMagics [SqLength]Magic
)

// helper masks for castling
var (
	kingSideCastleMask  [2]Bitboard
	queenSideCastleMask [2]Bitboard
	castlingRights      [SqLength]CastlingRights
)

func (sq Square) bitboard() Bitboard {
	return Bitboard(uint64(1) << sq)
}

// initBb pre computes bitboard lookup tables used throughout move
// generation and attack detection. Must run once at program start before
// any other function in this package is called.
func initBb() {
	for sq := Square(0); sq < SqNone; sq++ {
		sqBb[sq] = sq.bitboard()
	}
	for i := FileA; i <= FileH; i++ {
		fileBb[i] = FileA_Bb << i
	}
	for i := Rank8; ; i-- {
		rankBb[i] = Rank8_Bb << (8 * (7 - i))
		if i == Rank1 {
			break
		}
	}

	kingSideCastleMask[White] = sqBb[SqF1] | sqBb[SqG1]
	kingSideCastleMask[Black] = sqBb[SqF8] | sqBb[SqG8]
	queenSideCastleMask[White] = sqBb[SqD1] | sqBb[SqC1] | sqBb[SqB1]
	queenSideCastleMask[Black] = sqBb[SqD8] | sqBb[SqC8] | sqBb[SqB8]
	castlingRights[SqE1] = CastlingWhite
	castlingRights[SqA1] = CastlingWhiteOOO
	castlingRights[SqH1] = CastlingWhiteOO
	castlingRights[SqE8] = CastlingBlack
	castlingRights[SqA8] = CastlingBlackOOO
	castlingRights[SqH8] = CastlingBlackOO

	pseudoAttacksPreCompute()
	initMagicBitboards()
}

// pseudoAttacksPreCompute computes king, knight and pawn attacks on an
// otherwise empty board by walking one step in every direction relevant to
// each piece and discarding steps that would wrap around a file edge.
func pseudoAttacksPreCompute() {
	kingSteps := []Direction{North, South, East, West, Northeast, Northwest, Southeast, Southwest}
	knightSteps := []Direction{
		North + North + East, North + North + West,
		South + South + East, South + South + West,
		East + East + North, East + East + South,
		West + West + North, West + West + South,
	}

	for sq := Square(0); sq < SqNone; sq++ {
		for _, d := range kingSteps {
			if to := sq.To(d); to.IsValid() {
				pseudoAttacks[King][sq] |= sqBb[to]
			}
		}
		for _, d := range knightSteps {
			if to := knightStep(sq, d); to.IsValid() {
				pseudoAttacks[Knight][sq] |= sqBb[to]
			}
		}
		if to := sq.To(Northwest); to.IsValid() {
			pawnAttacks[White][sq] |= sqBb[to]
		}
		if to := sq.To(Northeast); to.IsValid() {
			pawnAttacks[White][sq] |= sqBb[to]
		}
		if to := sq.To(Southwest); to.IsValid() {
			pawnAttacks[Black][sq] |= sqBb[to]
		}
		if to := sq.To(Southeast); to.IsValid() {
			pawnAttacks[Black][sq] |= sqBb[to]
		}
	}
}

// knightStep applies a two-step knight offset, checking file wrap after
// each individual step so an offset never wraps around the board edge.
func knightStep(sq Square, d Direction) Square {
	switch d {
	case North + North + East:
		if s := sq.To(North); s.IsValid() {
			if s = s.To(North); s.IsValid() {
				return s.To(East)
			}
		}
	case North + North + West:
		if s := sq.To(North); s.IsValid() {
			if s = s.To(North); s.IsValid() {
				return s.To(West)
			}
		}
	case South + South + East:
		if s := sq.To(South); s.IsValid() {
			if s = s.To(South); s.IsValid() {
				return s.To(East)
			}
		}
	case South + South + West:
		if s := sq.To(South); s.IsValid() {
			if s = s.To(South); s.IsValid() {
				return s.To(West)
			}
		}
	case East + East + North:
		if s := sq.To(East); s.IsValid() {
			if s = s.To(East); s.IsValid() {
				return s.To(North)
			}
		}
	case East + East + South:
		if s := sq.To(East); s.IsValid() {
			if s = s.To(East); s.IsValid() {
				return s.To(South)
			}
		}
	case West + West + North:
		if s := sq.To(West); s.IsValid() {
			if s = s.To(West); s.IsValid() {
				return s.To(North)
			}
		}
	case West + West + South:
		if s := sq.To(West); s.IsValid() {
			if s = s.To(West); s.IsValid() {
				return s.To(South)
			}
		}
	}
	return SqNone
}

// start calculating the magic bitboards. Taken from Stockfish and
// https://www.chessprogramming.org/Magic_Bitboards.
func initMagicBitboards() {
	rookDirections := [4]Direction{North, East, South, West}
	bishopDirections := [4]Direction{Northeast, Southeast, Southwest, Northwest}

	rookTable = make([]Bitboard, 0x19000)
	bishopTable = make([]Bitboard, 0x1480)

	initMagics(&rookTable, &rookMagics, &rookDirections)
	initMagics(&bishopTable, &bishopMagics, &bishopDirections)
}
