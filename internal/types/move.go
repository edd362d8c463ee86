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

import (
	"fmt"
	"strings"

	"github.com/dkoch/gochess/internal/assert"
)

// MoveKind tags what kind of move a Move encodes. This is richer than a
// plain "quiet vs. capture" split so make/unmake never has to re-derive it
// from board state - double pushes, en passant and both castling sides are
// each their own tag, and promotions carry a capture bit independent of the
// promotion piece type.
type MoveKind uint8

//noinspection GoUnusedConst
const (
	Quiet MoveKind = iota
	Capture
	DoublePawnPush
	EnPassantCapture
	CastleKingside
	CastleQueenside
	Promotion
	PromotionCapture
	MoveKindLength
)

var moveKindToString = [MoveKindLength]string{
	"quiet", "capture", "double-push", "en-passant",
	"O-O", "O-O-O", "promotion", "promotion-capture",
}

// String returns a short label for the move kind.
func (mk MoveKind) String() string {
	if mk >= MoveKindLength {
		return "?"
	}
	return moveKindToString[mk]
}

// IsValid checks if mk is a recognized move kind.
func (mk MoveKind) IsValid() bool {
	return mk < MoveKindLength
}

// IsCapture reports whether the move kind removes an enemy piece, including
// en passant and promotion-with-capture.
func (mk MoveKind) IsCapture() bool {
	return mk == Capture || mk == EnPassantCapture || mk == PromotionCapture
}

// IsPromotion reports whether the move kind promotes a pawn.
func (mk MoveKind) IsPromotion() bool {
	return mk == Promotion || mk == PromotionCapture
}

// IsCastle reports whether the move kind is one of the two castling moves.
func (mk MoveKind) IsCastle() bool {
	return mk == CastleKingside || mk == CastleQueenside
}

// Move is a compact encoding of a chess move as a single machine word:
// origin square, destination square, the piece making the move, the move
// kind tag, and - for promotions - the piece type promoted to.
//  BITMAP 32-bit
//  |                                     2 2 1 1 1 1 1 1 1 1 1 1
//  |                                     1 0 9 8 7 6 5 4 3 2 1 0 9 8 7 6 5 4 3 2 1 0
//  -------------------------------------------------------------------------------
//                                                            1 1 1 1 1 1            to
//                                                1 1 1 1 1 1                        from
//                                        1 1 1 1                                    piece
//                                1 1 1                                             kind
//                        1 1 1                                                     promotion piece type
type Move uint32

// MoveNone is the zero value - an invalid, empty move.
const MoveNone Move = 0

const (
	fromShift Move = 6
	pieceShift     = fromShift + 6
	kindShift      = pieceShift + 4
	promShift      = kindShift + 3

	squareMask Move = 0x3F
	toMask          = squareMask
	fromMask        = squareMask << fromShift
	pieceMask  Move = 0xF << pieceShift
	kindMask   Move = 0x7 << kindShift
	promMask   Move = 0x7 << promShift
)

// NewMove encodes a non-promoting move.
func NewMove(from, to Square, piece Piece, kind MoveKind) Move {
	return Move(to) |
		Move(from)<<fromShift |
		Move(piece)<<pieceShift |
		Move(kind)<<kindShift
}

// NewPromotionMove encodes a promotion (with or without a capture).
func NewPromotionMove(from, to Square, piece Piece, kind MoveKind, promType PieceType) Move {
	if assert.DEBUG {
		assert.Assert(kind.IsPromotion(), "NewPromotionMove called with non-promotion kind %s", kind)
		assert.Assert(promType >= Knight && promType <= Queen, "invalid promotion piece type %s", promType)
	}
	return NewMove(from, to, piece, kind) | Move(promType)<<promShift
}

// From returns the origin square of the move.
func (m Move) From() Square {
	return Square((m & fromMask) >> fromShift)
}

// To returns the destination square of the move.
func (m Move) To() Square {
	return Square(m & toMask)
}

// Piece returns the piece making the move (before promotion is applied).
func (m Move) Piece() Piece {
	return Piece((m & pieceMask) >> pieceShift)
}

// Kind returns the move's MoveKind tag.
func (m Move) Kind() MoveKind {
	return MoveKind((m & kindMask) >> kindShift)
}

// PromotionType returns the piece type promoted to. Only meaningful when
// Kind().IsPromotion() is true.
func (m Move) PromotionType() PieceType {
	return PieceType((m & promMask) >> promShift)
}

// IsValid checks that the move has valid squares, a valid piece, a valid
// kind, and - for promotions - a valid promotion piece type. MoveNone is
// never valid.
func (m Move) IsValid() bool {
	if m == MoveNone {
		return false
	}
	if !m.From().IsValid() || !m.To().IsValid() || !m.Kind().IsValid() {
		return false
	}
	if m.Kind().IsPromotion() {
		pt := m.PromotionType()
		if pt < Knight || pt > Queen {
			return false
		}
	}
	return true
}

// StringUci returns the UCI long algebraic representation of the move,
// e.g. "e2e4" or "e7e8q".
func (m Move) StringUci() string {
	if m == MoveNone {
		return "0000"
	}
	var os strings.Builder
	os.WriteString(m.From().String())
	os.WriteString(m.To().String())
	if m.Kind().IsPromotion() {
		os.WriteString(strings.ToLower(m.PromotionType().Char()))
	}
	return os.String()
}

// String returns a human-readable representation of the move for logging.
func (m Move) String() string {
	if m == MoveNone {
		return "Move{ none }"
	}
	return fmt.Sprintf("Move{ %-5s piece:%s kind:%s }", m.StringUci(), m.Piece().String(), m.Kind().String())
}
