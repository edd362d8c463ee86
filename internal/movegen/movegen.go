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

// Package movegen generates pseudo-legal and legal moves for a position
// using the magic bitboard attack tables from the types package.
package movegen

import (
	"regexp"
	"strings"

	"github.com/op/go-logging"

	myLogging "github.com/dkoch/gochess/internal/logging"
	"github.com/dkoch/gochess/internal/moveslice"
	"github.com/dkoch/gochess/internal/position"
	. "github.com/dkoch/gochess/internal/types"
)

var log *logging.Logger

// Movegen holds reusable move buffers so repeated calls during search do
// not allocate. Create via NewMoveGen() - the zero value is not usable.
type Movegen struct {
	pseudoLegalMoves *moveslice.MoveSlice
	legalMoves       *moveslice.MoveSlice
}

// GenMode selects which subset of moves to generate.
type GenMode int

// Generation modes. Captures and non-captures can be requested independently
// so search can ask for captures only (quiescence-style exploration) without
// paying for quiet move generation.
const (
	GenZero   GenMode = 0b00
	GenCap    GenMode = 0b01
	GenNonCap GenMode = 0b10
	GenAll    GenMode = 0b11
)

// NewMoveGen creates a new move generator with pre-sized move buffers.
func NewMoveGen() *Movegen {
	if log == nil {
		log = myLogging.GetLog()
	}
	return &Movegen{
		pseudoLegalMoves: moveslice.NewMoveSlice(MaxMoves),
		legalMoves:       moveslice.NewMoveSlice(MaxMoves),
	}
}

// GeneratePseudoLegalMoves generates pseudo legal moves for the next player.
// Does not check if the king is left in check or if it passes an attacked
// square while castling - callers must filter with Position.IsLegalMove (or
// use GenerateLegalMoves).
func (mg *Movegen) GeneratePseudoLegalMoves(p *position.Position, mode GenMode) *moveslice.MoveSlice {
	mg.pseudoLegalMoves.Clear()
	generatePawnMoves(p, mode, mg.pseudoLegalMoves)
	generateCastling(p, mode, mg.pseudoLegalMoves)
	generateKingMoves(p, mode, mg.pseudoLegalMoves)
	generatePieceMoves(p, mode, mg.pseudoLegalMoves)
	return mg.pseudoLegalMoves
}

// GenerateLegalMoves generates legal moves for the next player by generating
// pseudo legal moves and filtering out the ones that leave the king in check.
func (mg *Movegen) GenerateLegalMoves(p *position.Position, mode GenMode) *moveslice.MoveSlice {
	mg.legalMoves.Clear()
	mg.GeneratePseudoLegalMoves(p, mode)
	mg.pseudoLegalMoves.FilterCopy(mg.legalMoves, func(i int) bool {
		return p.IsLegalMove(mg.pseudoLegalMoves.At(i))
	})
	return mg.legalMoves
}

// HasLegalMove determines if the position has at least one legal move
// without generating (and filtering) the full move list. Checks the king
// first, then pawns, then the remaining pieces - roughly most likely to
// least likely to produce a legal move early.
func (mg *Movegen) HasLegalMove(p *position.Position) bool {
	nextPlayer := p.NextPlayer()
	nextPlayerBb := p.OccupiedBb(nextPlayer)

	kingSquare := p.KingSquare(nextPlayer)
	kingMoves := GetPseudoAttacks(King, kingSquare) &^ nextPlayerBb
	for kingMoves != 0 {
		toSquare := kingMoves.PopLsb()
		if p.IsLegalMove(NewMove(kingSquare, toSquare, MakePiece(nextPlayer, King), moveKind(p, toSquare))) {
			return true
		}
	}

	myPawns := p.PiecesBb(nextPlayer, Pawn)
	oppPieces := p.OccupiedBb(nextPlayer.Flip())
	occupied := p.OccupiedAll()
	fwd := nextPlayer.MoveDirection()
	back := nextPlayer.Flip().MoveDirection()

	for _, dir := range []Direction{West, East} {
		captures := ShiftBitboard(myPawns, fwd+dir) & oppPieces
		for captures != 0 {
			toSquare := captures.PopLsb()
			fromSquare := toSquare.To(back - dir)
			if p.IsLegalMove(NewMove(fromSquare, toSquare, MakePiece(nextPlayer, Pawn), Capture)) {
				return true
			}
		}
	}

	pushes := ShiftBitboard(myPawns, fwd) &^ occupied
	doublePushes := ShiftBitboard(pushes&nextPlayer.PawnDoubleRank(), fwd) &^ occupied
	for pushes != 0 {
		toSquare := pushes.PopLsb()
		fromSquare := toSquare.To(back)
		if p.IsLegalMove(NewMove(fromSquare, toSquare, MakePiece(nextPlayer, Pawn), Quiet)) {
			return true
		}
	}

	for doublePushes != 0 {
		toSquare := doublePushes.PopLsb()
		fromSquare := toSquare.To(back).To(back)
		if p.IsLegalMove(NewMove(fromSquare, toSquare, MakePiece(nextPlayer, Pawn), DoublePawnPush)) {
			return true
		}
	}

	if enPassantSquare := p.GetEnPassantSquare(); enPassantSquare != SqNone {
		for _, dir := range []Direction{West, East} {
			attacker := ShiftBitboard(enPassantSquare.Bb(), back+dir) & myPawns
			if attacker != 0 {
				fromSquare := attacker.PopLsb()
				toSquare := fromSquare.To(fwd - dir)
				if p.IsLegalMove(NewMove(fromSquare, toSquare, MakePiece(nextPlayer, Pawn), EnPassantCapture)) {
					return true
				}
			}
		}
	}

	for pt := Knight; pt <= Queen; pt++ {
		pieces := p.PiecesBb(nextPlayer, pt)
		for pieces != 0 {
			fromSquare := pieces.PopLsb()
			moves := GetAttacksBb(pt, fromSquare, occupied) &^ nextPlayerBb
			piece := MakePiece(nextPlayer, pt)
			for moves != 0 {
				toSquare := moves.PopLsb()
				if p.IsLegalMove(NewMove(fromSquare, toSquare, piece, moveKind(p, toSquare))) {
					return true
				}
			}
		}
	}

	return false
}

// moveKind returns Capture if toSquare is occupied by the opponent, Quiet
// otherwise. Only valid for non-pawn, non-castling, non-en-passant moves.
func moveKind(p *position.Position, toSquare Square) MoveKind {
	if p.GetPiece(toSquare) != PieceNone {
		return Capture
	}
	return Quiet
}

var regexUciMove = regexp.MustCompile(`([a-h][1-8][a-h][1-8])([NBRQnbrq])?`)

// GetMoveFromUci generates all legal moves and matches the given UCI move
// string against them, returning MoveNone if there is no match.
func (mg *Movegen) GetMoveFromUci(p *position.Position, uciMove string) Move {
	matches := regexUciMove.FindStringSubmatch(uciMove)
	if matches == nil {
		return MoveNone
	}
	movePart := matches[1]
	promotionPart := ""
	if len(matches) == 3 && matches[2] != "" {
		promotionPart = strings.ToLower(matches[2])
	}
	mg.GenerateLegalMoves(p, GenAll)
	for _, m := range *mg.legalMoves {
		if m.StringUci() == movePart+promotionPart {
			return m
		}
	}
	return MoveNone
}

var regexSanMove = regexp.MustCompile(`([NBRQK])?([a-h])?([1-8])?x?([a-h][1-8]|O-O-O|O-O)(=?([NBRQ]))?([!?+#]*)?`)

// GetMoveFromSan generates all legal moves and matches the given SAN move
// string against them, returning MoveNone if there is no match or the match
// is ambiguous.
func (mg *Movegen) GetMoveFromSan(p *position.Position, sanMove string) Move {
	matches := regexSanMove.FindStringSubmatch(sanMove)
	if matches == nil {
		return MoveNone
	}
	pieceType := matches[1]
	disambFile := matches[2]
	disambRank := matches[3]
	toSquare := matches[4]
	promotion := matches[6]

	movesFound := 0
	moveFromSAN := MoveNone

	mg.GenerateLegalMoves(p, GenAll)
	for _, genMove := range *mg.legalMoves {
		if genMove.Kind().IsCastle() {
			var castlingString string
			switch genMove.To() {
			case SqG1, SqG8:
				castlingString = "O-O"
			case SqC1, SqC8:
				castlingString = "O-O-O"
			default:
				log.Errorf("castle move with unexpected destination %s", genMove.To().String())
				continue
			}
			if castlingString == toSquare {
				moveFromSAN = genMove
				movesFound++
			}
			continue
		}

		if genMove.To().String() != toSquare {
			continue
		}

		legalPt := p.GetPiece(genMove.From()).TypeOf()
		legalPtChar := legalPt.Char()
		if (len(pieceType) != 0 && legalPtChar != pieceType) ||
			(len(pieceType) == 0 && legalPt != Pawn) {
			continue
		}
		if len(disambFile) != 0 && genMove.From().FileOf().String() != disambFile {
			continue
		}
		if len(disambRank) != 0 && genMove.From().RankOf().String() != disambRank {
			continue
		}
		if (len(promotion) != 0 && (!genMove.Kind().IsPromotion() || genMove.PromotionType().Char() != promotion)) ||
			(len(promotion) == 0 && genMove.Kind().IsPromotion()) {
			continue
		}

		moveFromSAN = genMove
		movesFound++
	}

	if movesFound > 1 {
		log.Warningf("SAN move %s is ambiguous (%d matches) on %s", sanMove, movesFound, p.StringFen())
		return MoveNone
	} else if movesFound == 0 || !moveFromSAN.IsValid() {
		log.Warningf("SAN move %s not found on position %s", sanMove, p.StringFen())
		return MoveNone
	}
	return moveFromSAN
}

func generatePawnMoves(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	nextPlayer := p.NextPlayer()
	myPawns := p.PiecesBb(nextPlayer, Pawn)
	piece := MakePiece(nextPlayer, Pawn)
	fwd := nextPlayer.MoveDirection()
	back := nextPlayer.Flip().MoveDirection()
	promRank := nextPlayer.PromotionRankBb()

	if mode&GenCap != 0 {
		oppPieces := p.OccupiedBb(nextPlayer.Flip())

		for _, dir := range []Direction{West, East} {
			captures := ShiftBitboard(myPawns, fwd+dir) & oppPieces
			promCaptures := captures & promRank
			for promCaptures != 0 {
				toSquare := promCaptures.PopLsb()
				fromSquare := toSquare.To(back - dir)
				addPromotions(ml, fromSquare, toSquare, piece, PromotionCapture)
			}
			captures &^= promRank
			for captures != 0 {
				toSquare := captures.PopLsb()
				fromSquare := toSquare.To(back - dir)
				ml.PushBack(NewMove(fromSquare, toSquare, piece, Capture))
			}
		}

		if enPassantSquare := p.GetEnPassantSquare(); enPassantSquare != SqNone {
			for _, dir := range []Direction{West, East} {
				attacker := ShiftBitboard(enPassantSquare.Bb(), back+dir) & myPawns
				if attacker != 0 {
					fromSquare := attacker.PopLsb()
					toSquare := fromSquare.To(fwd - dir)
					ml.PushBack(NewMove(fromSquare, toSquare, piece, EnPassantCapture))
				}
			}
		}
	}

	if mode&GenNonCap != 0 {
		occupied := p.OccupiedAll()
		pushes := ShiftBitboard(myPawns, fwd) &^ occupied
		doublePushes := ShiftBitboard(pushes&nextPlayer.PawnDoubleRank(), fwd) &^ occupied

		promPushes := pushes & promRank
		for promPushes != 0 {
			toSquare := promPushes.PopLsb()
			fromSquare := toSquare.To(back)
			addPromotions(ml, fromSquare, toSquare, piece, Promotion)
		}

		for doublePushes != 0 {
			toSquare := doublePushes.PopLsb()
			fromSquare := toSquare.To(back).To(back)
			ml.PushBack(NewMove(fromSquare, toSquare, piece, DoublePawnPush))
		}

		pushes &^= promRank
		for pushes != 0 {
			toSquare := pushes.PopLsb()
			fromSquare := toSquare.To(back)
			ml.PushBack(NewMove(fromSquare, toSquare, piece, Quiet))
		}
	}
}

// addPromotions pushes all four promotion options (queen and the three
// underpromotions) for a single
// from/to pair, tagging the move kind as either Promotion or
// PromotionCapture depending on what the caller observed.
func addPromotions(ml *moveslice.MoveSlice, fromSquare, toSquare Square, piece Piece, kind MoveKind) {
	for _, pt := range [4]PieceType{Queen, Knight, Rook, Bishop} {
		ml.PushBack(NewPromotionMove(fromSquare, toSquare, piece, kind, pt))
	}
}

func generateCastling(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	if mode&GenNonCap == 0 {
		return
	}
	cr := p.CastlingRights()
	if cr == CastlingNone {
		return
	}
	occupied := p.OccupiedAll()
	nextPlayer := p.NextPlayer()

	if nextPlayer == White {
		if cr.Has(CastlingWhiteOO) && KingSideCastleMask(White)&occupied == 0 {
			ml.PushBack(NewMove(SqE1, SqG1, MakePiece(White, King), CastleKingside))
		}
		if cr.Has(CastlingWhiteOOO) && QueenSideCastleMask(White)&occupied == 0 {
			ml.PushBack(NewMove(SqE1, SqC1, MakePiece(White, King), CastleQueenside))
		}
	} else {
		if cr.Has(CastlingBlackOO) && KingSideCastleMask(Black)&occupied == 0 {
			ml.PushBack(NewMove(SqE8, SqG8, MakePiece(Black, King), CastleKingside))
		}
		if cr.Has(CastlingBlackOOO) && QueenSideCastleMask(Black)&occupied == 0 {
			ml.PushBack(NewMove(SqE8, SqC8, MakePiece(Black, King), CastleQueenside))
		}
	}
}

func generateKingMoves(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	nextPlayer := p.NextPlayer()
	piece := MakePiece(nextPlayer, King)
	kingBb := p.PiecesBb(nextPlayer, King)
	fromSquare := kingBb.Lsb()
	pseudoMoves := GetPseudoAttacks(King, fromSquare)

	if mode&GenCap != 0 {
		captures := pseudoMoves & p.OccupiedBb(nextPlayer.Flip())
		for captures != 0 {
			toSquare := captures.PopLsb()
			ml.PushBack(NewMove(fromSquare, toSquare, piece, Capture))
		}
	}
	if mode&GenNonCap != 0 {
		nonCaptures := pseudoMoves &^ p.OccupiedAll()
		for nonCaptures != 0 {
			toSquare := nonCaptures.PopLsb()
			ml.PushBack(NewMove(fromSquare, toSquare, piece, Quiet))
		}
	}
}

// generatePieceMoves generates moves for knights, bishops, rooks and queens
// using the magic bitboard attack tables - sliding pieces already get the
// correct blocked-by-occupancy attack set from GetAttacksBb so there is no
// separate "in between" check needed here.
func generatePieceMoves(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	nextPlayer := p.NextPlayer()
	occupied := p.OccupiedAll()

	for pt := Knight; pt <= Queen; pt++ {
		pieces := p.PiecesBb(nextPlayer, pt)
		piece := MakePiece(nextPlayer, pt)
		for pieces != 0 {
			fromSquare := pieces.PopLsb()
			moves := GetAttacksBb(pt, fromSquare, occupied)

			if mode&GenCap != 0 {
				captures := moves & p.OccupiedBb(nextPlayer.Flip())
				for captures != 0 {
					toSquare := captures.PopLsb()
					ml.PushBack(NewMove(fromSquare, toSquare, piece, Capture))
				}
			}
			if mode&GenNonCap != 0 {
				nonCaptures := moves &^ occupied
				for nonCaptures != 0 {
					toSquare := nonCaptures.PopLsb()
					ml.PushBack(NewMove(fromSquare, toSquare, piece, Quiet))
				}
			}
		}
	}
}
