package bitmg

import (
	"errors"
	"fmt"
)

// ErrEmptyHistory is returned by Unapply when no move is left to undo.
var ErrEmptyHistory = errors.New("bitmg: unapply with empty history")

// castleRule describes one castling option.
type castleRule struct {
	right    CastlingRights
	flag     MoveFlag
	kingFrom Square
	kingTo   Square
	rookFrom Square
	rookTo   Square
	empty    Bitboard // squares between king and rook
	safe     Bitboard // squares the king crosses or lands on
}

var castleRules = [2][2]castleRule{
	White: {
		{WhiteKingside, FlagCastleKing, E1, G1, H1, F1, SquareBB(F1) | SquareBB(G1), SquareBB(F1) | SquareBB(G1)},
		{WhiteQueenside, FlagCastleQueen, E1, C1, A1, D1, SquareBB(B1) | SquareBB(C1) | SquareBB(D1), SquareBB(C1) | SquareBB(D1)},
	},
	Black: {
		{BlackKingside, FlagCastleKing, E8, G8, H8, F8, SquareBB(F8) | SquareBB(G8), SquareBB(F8) | SquareBB(G8)},
		{BlackQueenside, FlagCastleQueen, E8, C8, A8, D8, SquareBB(B8) | SquareBB(C8) | SquareBB(D8), SquareBB(C8) | SquareBB(D8)},
	},
}

func castleRuleFor(c Color, flags MoveFlag) *castleRule {
	if flags&FlagCastleKing != 0 {
		return &castleRules[c][0]
	}
	return &castleRules[c][1]
}

// castleKeep[sq] lists the rights that survive a move touching sq, either
// as origin or destination.
var castleKeep [64]CastlingRights

func init() {
	for sq := range castleKeep {
		castleKeep[sq] = AllCastling
	}
	castleKeep[E1] &^= WhiteKingside | WhiteQueenside
	castleKeep[H1] &^= WhiteKingside
	castleKeep[A1] &^= WhiteQueenside
	castleKeep[E8] &^= BlackKingside | BlackQueenside
	castleKeep[H8] &^= BlackKingside
	castleKeep[A8] &^= BlackQueenside
}

// Apply plays m, which must be legal in p, and records how to undo it.
func (p *Position) Apply(m Move) {
	from, to := m.From, m.To
	moving := p.mailbox[from]
	if debugChecks && (moving == NoPiece || moving.Color() != p.side) {
		panic(fmt.Sprintf("bitmg: apply %v: origin holds %v with %v to move", m, moving, p.side))
	}

	u := undoRecord{
		move:       m,
		captured:   NoPiece,
		capturedSq: NoSquare,
		castling:   p.castling,
		epSquare:   p.epSquare,
		side:       p.side,
		halfmove:   p.halfmove,
		fullmove:   p.fullmove,
		hash:       p.hash,
	}

	if p.epSquare != NoSquare {
		p.hash ^= zobristEnPassant[p.epSquare.File()]
		p.epSquare = NoSquare
	}

	if m.Flags&FlagEnPassant != 0 {
		capSq := to - 8
		if p.side == Black {
			capSq = to + 8
		}
		u.captured, u.capturedSq = p.removePiece(capSq), capSq
	} else if p.mailbox[to] != NoPiece {
		if debugChecks && m.Flags&FlagCapture == 0 {
			panic(fmt.Sprintf("bitmg: apply %v: unflagged capture of %v", m, p.mailbox[to]))
		}
		u.captured, u.capturedSq = p.removePiece(to), to
	}

	p.movePiece(from, to)
	if m.Flags&FlagPromotion != 0 {
		p.removePiece(to)
		p.putPiece(to, MakePiece(p.side, m.Promotion))
	}
	if m.Flags&flagCastle != 0 {
		rule := castleRuleFor(p.side, m.Flags)
		p.movePiece(rule.rookFrom, rule.rookTo)
	}

	if rights := p.castling & castleKeep[from] & castleKeep[to]; rights != p.castling {
		p.hash ^= zobristCastle[p.castling] ^ zobristCastle[rights]
		p.castling = rights
	}

	if m.Flags&FlagDoublePush != 0 {
		p.epSquare = (from + to) / 2
		p.hash ^= zobristEnPassant[p.epSquare.File()]
	}

	if moving.Type() == Pawn || u.captured != NoPiece {
		p.halfmove = 0
	} else {
		p.halfmove++
	}
	if p.side == Black {
		p.fullmove++
	}

	p.side = p.side.Other()
	p.hash ^= zobristSide
	p.history = append(p.history, u)
}

// Unapply reverts the most recent Apply, restoring p bit for bit.
func (p *Position) Unapply() error {
	if len(p.history) == 0 {
		return ErrEmptyHistory
	}
	p.undo()
	return nil
}

// undo is Unapply for callers that know the history is not empty.
func (p *Position) undo() {
	n := len(p.history) - 1
	u := p.history[n]
	p.history = p.history[:n]
	m := u.move

	p.side = u.side
	if m.Flags&flagCastle != 0 {
		rule := castleRuleFor(p.side, m.Flags)
		p.movePiece(rule.rookTo, rule.rookFrom)
	}
	if m.Flags&FlagPromotion != 0 {
		p.removePiece(m.To)
		p.putPiece(m.To, MakePiece(p.side, Pawn))
	}
	p.movePiece(m.To, m.From)
	if u.captured != NoPiece {
		p.putPiece(u.capturedSq, u.captured)
	}

	p.castling = u.castling
	p.epSquare = u.epSquare
	p.halfmove = u.halfmove
	p.fullmove = u.fullmove
	p.hash = u.hash
}

// LastMove returns the most recently applied move.
func (p *Position) LastMove() (Move, bool) {
	if len(p.history) == 0 {
		return Move{}, false
	}
	return p.history[len(p.history)-1].move, true
}
