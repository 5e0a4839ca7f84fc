package bitmg

import (
	"errors"
	"fmt"
	"strings"
)

// Position is a board plus the game state not visible in piece placement.
// It is mutated in place by Apply and restored by Unapply; a single
// Position must not be shared between goroutines during a traversal.
type Position struct {
	// boards holds one set per Piece; the twelve sets are disjoint.
	boards [12]Bitboard
	// occupancy caches the union of each side's six boards.
	occupancy [2]Bitboard
	// mailbox mirrors boards for O(1) piece lookup by square.
	mailbox [64]Piece

	side     Color
	castling CastlingRights
	epSquare Square

	halfmove int
	fullmove int
	hash     uint64

	history []undoRecord
}

// undoRecord captures everything Apply overwrites.
type undoRecord struct {
	move       Move
	captured   Piece
	capturedSq Square
	castling   CastlingRights
	epSquare   Square
	side       Color
	halfmove   int
	fullmove   int
	hash       uint64
}

// FENStartPos is the standard initial position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewPosition returns the standard initial position.
func NewPosition() *Position {
	p, err := ParseFEN(FENStartPos)
	if err != nil {
		panic(err)
	}
	return p
}

func emptyPosition() *Position {
	p := &Position{epSquare: NoSquare, fullmove: 1}
	for i := range p.mailbox {
		p.mailbox[i] = NoPiece
	}
	return p
}

// Clone returns an independent deep copy, undo history included.
func (p *Position) Clone() *Position {
	c := *p
	c.history = append([]undoRecord(nil), p.history...)
	return &c
}

// putPiece places pc on an empty square.
func (p *Position) putPiece(sq Square, pc Piece) {
	if debugChecks && p.mailbox[sq] != NoPiece {
		panic(fmt.Sprintf("bitmg: put %v on occupied square %v", pc, sq))
	}
	p.boards[pc].Set(sq)
	p.occupancy[pc.Color()].Set(sq)
	p.mailbox[sq] = pc
	p.hash ^= zobristPiece[pc][sq]
}

// removePiece empties an occupied square and returns what stood there.
func (p *Position) removePiece(sq Square) Piece {
	pc := p.mailbox[sq]
	if debugChecks && pc == NoPiece {
		panic(fmt.Sprintf("bitmg: remove from empty square %v", sq))
	}
	p.boards[pc].Clear(sq)
	p.occupancy[pc.Color()].Clear(sq)
	p.mailbox[sq] = NoPiece
	p.hash ^= zobristPiece[pc][sq]
	return pc
}

// movePiece relocates the piece on from to the empty square to.
func (p *Position) movePiece(from, to Square) {
	pc := p.mailbox[from]
	if debugChecks && (pc == NoPiece || p.mailbox[to] != NoPiece) {
		panic(fmt.Sprintf("bitmg: invalid piece move %v->%v", from, to))
	}
	p.boards[pc].Move(from, to)
	p.occupancy[pc.Color()].Move(from, to)
	p.mailbox[from] = NoPiece
	p.mailbox[to] = pc
	p.hash ^= zobristPiece[pc][from] ^ zobristPiece[pc][to]
}

// PieceAt returns the piece on sq or NoPiece.
func (p *Position) PieceAt(sq Square) Piece { return p.mailbox[sq] }

// Pieces returns the bitboard of one piece kind.
func (p *Position) Pieces(pc Piece) Bitboard { return p.boards[pc] }

// Occupancy returns the squares held by c.
func (p *Position) Occupancy(c Color) Bitboard { return p.occupancy[c] }

// AllOccupancy returns every occupied square.
func (p *Position) AllOccupancy() Bitboard { return p.occupancy[White] | p.occupancy[Black] }

func (p *Position) SideToMove() Color        { return p.side }
func (p *Position) Castling() CastlingRights { return p.castling }
func (p *Position) EnPassant() Square        { return p.epSquare }
func (p *Position) HalfmoveClock() int       { return p.halfmove }
func (p *Position) FullmoveNumber() int      { return p.fullmove }
func (p *Position) Hash() uint64             { return p.hash }

// Ply returns the number of moves applied and not yet unapplied.
func (p *Position) Ply() int { return len(p.history) }

// KingSquare returns the square of c's king, NoSquare if absent.
func (p *Position) KingSquare(c Color) Square { return p.boards[MakePiece(c, King)].LSB() }

// attackersTo returns pieces of both sides attacking sq under occupancy occ.
func (p *Position) attackersTo(sq Square, occ Bitboard) Bitboard {
	b := &p.boards
	diag := b[WhiteBishop] | b[BlackBishop] | b[WhiteQueen] | b[BlackQueen]
	orth := b[WhiteRook] | b[BlackRook] | b[WhiteQueen] | b[BlackQueen]
	return pawnAttacks[Black][sq]&b[WhitePawn] |
		pawnAttacks[White][sq]&b[BlackPawn] |
		knightAttacks[sq]&(b[WhiteKnight]|b[BlackKnight]) |
		kingAttacks[sq]&(b[WhiteKing]|b[BlackKing]) |
		BishopAttacks(sq, occ)&diag |
		RookAttacks(sq, occ)&orth
}

// attackedBy reports whether side by attacks sq under occupancy occ.
func (p *Position) attackedBy(sq Square, by Color, occ Bitboard) bool {
	b := &p.boards
	if pawnAttacks[by.Other()][sq]&b[MakePiece(by, Pawn)] != 0 ||
		knightAttacks[sq]&b[MakePiece(by, Knight)] != 0 ||
		kingAttacks[sq]&b[MakePiece(by, King)] != 0 {
		return true
	}
	queens := b[MakePiece(by, Queen)]
	if BishopAttacks(sq, occ)&(b[MakePiece(by, Bishop)]|queens) != 0 {
		return true
	}
	return RookAttacks(sq, occ)&(b[MakePiece(by, Rook)]|queens) != 0
}

// IsSquareAttacked reports whether side by attacks sq in the current position.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	return p.attackedBy(sq, by, p.AllOccupancy())
}

// Checkers returns the enemy pieces giving check to the side to move.
func (p *Position) Checkers() Bitboard {
	ksq := p.KingSquare(p.side)
	if ksq == NoSquare {
		return 0
	}
	return p.attackersTo(ksq, p.AllOccupancy()) & p.occupancy[p.side.Other()]
}

// InCheck reports whether c's king is attacked.
func (p *Position) InCheck(c Color) bool {
	ksq := p.KingSquare(c)
	return ksq != NoSquare && p.IsSquareAttacked(ksq, c.Other())
}

// Equal reports bit-exact equality of placement and game state. Undo
// history is not compared.
func (p *Position) Equal(o *Position) bool {
	return p.boards == o.boards &&
		p.occupancy == o.occupancy &&
		p.mailbox == o.mailbox &&
		p.side == o.side &&
		p.castling == o.castling &&
		p.epSquare == o.epSquare &&
		p.halfmove == o.halfmove &&
		p.fullmove == o.fullmove &&
		p.hash == o.hash
}

var errCorrupt = errors.New("bitmg: inconsistent position")

// Validate checks the representation invariants: disjoint piece sets,
// caches in sync with them, one king per side and a correct hash.
func (p *Position) Validate() error {
	var seen Bitboard
	var occ [2]Bitboard
	for pc := WhitePawn; pc < NoPiece; pc++ {
		set := p.boards[pc]
		if set&seen != 0 {
			return fmt.Errorf("%w: %v overlaps another piece set", errCorrupt, pc)
		}
		seen |= set
		occ[pc.Color()] |= set
		for sq := range set.Squares() {
			if p.mailbox[sq] != pc {
				return fmt.Errorf("%w: mailbox %v holds %v, bitboard says %v", errCorrupt, sq, p.mailbox[sq], pc)
			}
		}
	}
	if occ != p.occupancy {
		return fmt.Errorf("%w: cached occupancy out of sync", errCorrupt)
	}
	for sq, pc := range p.mailbox {
		if pc != NoPiece && !p.boards[pc].Has(Square(sq)) {
			return fmt.Errorf("%w: mailbox %v holds %v missing from bitboards", errCorrupt, Square(sq), pc)
		}
	}
	for _, c := range []Color{White, Black} {
		if n := p.boards[MakePiece(c, King)].PopCount(); n != 1 {
			return fmt.Errorf("%w: %v has %d kings", errCorrupt, c, n)
		}
	}
	if p.hash != p.ComputeHash() {
		return fmt.Errorf("%w: hash mismatch", errCorrupt)
	}
	return nil
}

// String draws the board with rank 8 on top followed by the FEN.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte('1' + byte(rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			sb.WriteByte(p.mailbox[NewSquare(file, rank)].Char())
			if file < 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	sb.WriteString(p.FEN())
	return sb.String()
}
