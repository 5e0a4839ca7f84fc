package bitmg

// genMode selects which targets a generation pass produces.
type genMode uint8

const (
	genAll genMode = iota
	genCaptures
	genQuiets
)

var promotionOrder = [4]PieceType{Queen, Rook, Bishop, Knight}

// GenerateLegalMoves returns every legal move for the side to move in a
// freshly allocated slice.
func (p *Position) GenerateLegalMoves() []Move { return p.GenerateMovesInto(make([]Move, 0, 64)) }

// GenerateMovesInto appends the legal moves to dst[:0] and returns it, so a
// caller can reuse one buffer per ply.
//
// Order is fixed for a given position: pawns, knights, bishops, rooks,
// queens, then king steps and castling, each group by ascending origin.
func (p *Position) GenerateMovesInto(dst []Move) []Move { return p.generate(dst[:0], genAll) }

// GenerateCaptures returns legal captures, en passant and capturing
// promotions included.
func (p *Position) GenerateCaptures() []Move { return p.generate(make([]Move, 0, 32), genCaptures) }

// GenerateQuiets returns legal non-captures: pushes, quiet promotions,
// piece moves to empty squares and castling.
func (p *Position) GenerateQuiets() []Move { return p.generate(make([]Move, 0, 64), genQuiets) }

// HasLegalMoves reports whether the side to move can move at all.
func (p *Position) HasLegalMoves() bool {
	var buf [256]Move
	return len(p.generate(buf[:0], genAll)) > 0
}

// IsCheckmate reports whether the side to move is in check with no move.
func (p *Position) IsCheckmate() bool { return p.InCheck(p.side) && !p.HasLegalMoves() }

// IsStalemate reports whether the side to move is not in check and has no move.
func (p *Position) IsStalemate() bool { return !p.InCheck(p.side) && !p.HasLegalMoves() }

func (p *Position) generate(moves []Move, mode genMode) []Move {
	us, them := p.side, p.side.Other()
	own, opp := p.occupancy[us], p.occupancy[them]
	occ := own | opp
	ksq := p.KingSquare(us)

	var targets Bitboard
	switch mode {
	case genCaptures:
		targets = opp
	case genQuiets:
		targets = ^occ
	default:
		targets = ^own
	}

	checkers := p.attackersTo(ksq, occ) & opp
	if checkers&(checkers-1) == 0 {
		// Zero or one checker: pieces other than the king may move, and in
		// check they must capture the checker or block its ray.
		checkMask := ^Bitboard(0)
		if checkers != 0 {
			c := checkers.LSB()
			checkMask = between[ksq][c] | checkers
		}
		pinned := p.pinned(ksq, us, occ)

		moves = p.genPawnMoves(moves, mode, ksq, checkMask, pinned)
		for pt := Knight; pt <= Queen; pt++ {
			pieces := p.boards[MakePiece(us, pt)]
			for pieces != 0 {
				from := pieces.PopLSB()
				att := pieceAttacks(pt, from, occ) & targets & checkMask
				if pinned.Has(from) {
					att &= line[ksq][from]
				}
				moves = appendTargets(moves, from, att, opp)
			}
		}
	}

	// King steps are tested with the king lifted off the board so a slider
	// checking along the line of retreat still covers the square behind.
	occNoKing := occ &^ SquareBB(ksq)
	for steps := kingAttacks[ksq] & targets; steps != 0; {
		to := steps.PopLSB()
		if !p.attackedBy(to, them, occNoKing) {
			moves = appendTargets(moves, ksq, SquareBB(to), opp)
		}
	}
	if checkers == 0 && mode != genCaptures {
		moves = p.genCastles(moves, occ, true)
	}
	return moves
}

// pinned returns our pieces that are the only blocker between our king and
// an enemy slider.
func (p *Position) pinned(ksq Square, us Color, occ Bitboard) Bitboard {
	them := us.Other()
	queens := p.boards[MakePiece(them, Queen)]
	snipers := RookAttacks(ksq, 0)&(p.boards[MakePiece(them, Rook)]|queens) |
		BishopAttacks(ksq, 0)&(p.boards[MakePiece(them, Bishop)]|queens)
	var pinned Bitboard
	for snipers != 0 {
		s := snipers.PopLSB()
		blockers := between[ksq][s] & occ
		if blockers != 0 && blockers&(blockers-1) == 0 && blockers&p.occupancy[us] != 0 {
			pinned |= blockers
		}
	}
	return pinned
}

func appendTargets(moves []Move, from Square, targets, opp Bitboard) []Move {
	for targets != 0 {
		to := targets.PopLSB()
		flags := FlagQuiet
		if opp.Has(to) {
			flags = FlagCapture
		}
		moves = append(moves, newMove(from, to, flags))
	}
	return moves
}

func appendPromotions(moves []Move, from, to Square, flags MoveFlag) []Move {
	for _, pt := range promotionOrder {
		m := newMove(from, to, flags|FlagPromotion)
		m.Promotion = pt
		moves = append(moves, m)
	}
	return moves
}

func (p *Position) genPawnMoves(moves []Move, mode genMode, ksq Square, checkMask, pinned Bitboard) []Move {
	us, them := p.side, p.side.Other()
	opp := p.occupancy[them]
	occ := p.occupancy[us] | opp

	forward, startRank, lastRank := 8, Rank2, Rank8
	if us == Black {
		forward, startRank, lastRank = -8, Rank7, Rank1
	}

	for pawns := p.boards[MakePiece(us, Pawn)]; pawns != 0; {
		from := pawns.PopLSB()
		allowed := checkMask
		if pinned.Has(from) {
			allowed &= line[ksq][from]
		}

		if mode != genCaptures {
			one := Square(int(from) + forward)
			if !occ.Has(one) {
				if allowed.Has(one) {
					if lastRank.Has(one) {
						moves = appendPromotions(moves, from, one, FlagQuiet)
					} else {
						moves = append(moves, newMove(from, one, FlagQuiet))
					}
				}
				two := Square(int(one) + forward)
				if startRank.Has(from) && !occ.Has(two) && allowed.Has(two) {
					moves = append(moves, newMove(from, two, FlagDoublePush))
				}
			}
		}

		if mode == genQuiets {
			continue
		}
		for caps := pawnAttacks[us][from] & opp & allowed; caps != 0; {
			to := caps.PopLSB()
			if lastRank.Has(to) {
				moves = appendPromotions(moves, from, to, FlagCapture)
			} else {
				moves = append(moves, newMove(from, to, FlagCapture))
			}
		}
		if p.epSquare != NoSquare && pawnAttacks[us][from].Has(p.epSquare) && p.enPassantIsSafe(from, ksq, checkMask) {
			moves = append(moves, newMove(from, p.epSquare, FlagEnPassant))
		}
	}
	return moves
}

// enPassantIsSafe plays the capture on a scratch occupancy. Two pieces leave
// the capturer's rank at once, which pin masks cannot express.
func (p *Position) enPassantIsSafe(from, ksq Square, checkMask Bitboard) bool {
	us, them := p.side, p.side.Other()
	capSq := p.epSquare - 8
	if us == Black {
		capSq = p.epSquare + 8
	}
	if !checkMask.Has(capSq) && !checkMask.Has(p.epSquare) {
		return false
	}
	occ := p.AllOccupancy()&^(SquareBB(from)|SquareBB(capSq)) | SquareBB(p.epSquare)
	queens := p.boards[MakePiece(them, Queen)]
	return RookAttacks(ksq, occ)&(p.boards[MakePiece(them, Rook)]|queens) == 0 &&
		BishopAttacks(ksq, occ)&(p.boards[MakePiece(them, Bishop)]|queens) == 0
}

// genCastles appends castling moves whose rights, empty path and rook are in
// place. When checkSafety is set the king must also not start in, pass
// through or land on an attacked square.
func (p *Position) genCastles(moves []Move, occ Bitboard, checkSafety bool) []Move {
	us, them := p.side, p.side.Other()
	rook := MakePiece(us, Rook)
	for i := range castleRules[us] {
		rule := &castleRules[us][i]
		if !p.castling.Has(rule.right) || occ&rule.empty != 0 ||
			p.mailbox[rule.rookFrom] != rook || p.mailbox[rule.kingFrom] != MakePiece(us, King) {
			continue
		}
		if checkSafety {
			if p.attackedBy(rule.kingFrom, them, occ) {
				continue
			}
			safe := true
			for sq := range rule.safe.Squares() {
				if p.attackedBy(sq, them, occ) {
					safe = false
					break
				}
			}
			if !safe {
				continue
			}
		}
		moves = append(moves, newMove(rule.kingFrom, rule.kingTo, rule.flag))
	}
	return moves
}

// GeneratePseudoMoves returns moves that obey piece movement, blockers,
// castling rights and castling path safety, without checking whether the
// mover's king is left attacked. Filtering them by that test yields exactly
// GenerateLegalMoves.
func (p *Position) GeneratePseudoMoves() []Move {
	us, them := p.side, p.side.Other()
	own, opp := p.occupancy[us], p.occupancy[them]
	occ := own | opp
	moves := make([]Move, 0, 128)

	forward, startRank, lastRank := 8, Rank2, Rank8
	if us == Black {
		forward, startRank, lastRank = -8, Rank7, Rank1
	}
	for pawns := p.boards[MakePiece(us, Pawn)]; pawns != 0; {
		from := pawns.PopLSB()
		one := Square(int(from) + forward)
		if !occ.Has(one) {
			if lastRank.Has(one) {
				moves = appendPromotions(moves, from, one, FlagQuiet)
			} else {
				moves = append(moves, newMove(from, one, FlagQuiet))
			}
			if two := Square(int(one) + forward); startRank.Has(from) && !occ.Has(two) {
				moves = append(moves, newMove(from, two, FlagDoublePush))
			}
		}
		for caps := pawnAttacks[us][from] & opp; caps != 0; {
			to := caps.PopLSB()
			if lastRank.Has(to) {
				moves = appendPromotions(moves, from, to, FlagCapture)
			} else {
				moves = append(moves, newMove(from, to, FlagCapture))
			}
		}
		if p.epSquare != NoSquare && pawnAttacks[us][from].Has(p.epSquare) {
			moves = append(moves, newMove(from, p.epSquare, FlagEnPassant))
		}
	}
	for pt := Knight; pt <= King; pt++ {
		for pieces := p.boards[MakePiece(us, pt)]; pieces != 0; {
			from := pieces.PopLSB()
			moves = appendTargets(moves, from, pieceAttacks(pt, from, occ)&^own, opp)
		}
	}
	return p.genCastles(moves, occ, true)
}

// IsLegal reports whether m is among the legal moves of p.
func (p *Position) IsLegal(m Move) bool {
	for _, lm := range p.GenerateLegalMoves() {
		if lm.From == m.From && lm.To == m.To && lm.Flags == m.Flags && lm.Promotion == m.Promotion {
			return true
		}
	}
	return false
}
