package bitmg

import (
	"errors"
	"fmt"
	"strings"
)

// MoveFlag classifies a move. A quiet move has no flags.
type MoveFlag uint8

const (
	FlagCapture MoveFlag = 1 << iota
	FlagDoublePush
	FlagEnPassant
	FlagCastleKing
	FlagCastleQueen
	FlagPromotion

	FlagQuiet  MoveFlag = 0
	flagCastle          = FlagCastleKing | FlagCastleQueen
)

// Move describes a transition; applying it is Position.Apply's job.
type Move struct {
	From      Square
	To        Square
	Promotion PieceType // NoPieceType unless Flags has FlagPromotion
	Flags     MoveFlag
	// Score is reserved for a search layer's move ordering and is never
	// read or written by this package.
	Score int32
}

func newMove(from, to Square, flags MoveFlag) Move {
	return Move{From: from, To: to, Promotion: NoPieceType, Flags: flags}
}

func (m Move) IsCapture() bool   { return m.Flags&(FlagCapture|FlagEnPassant) != 0 }
func (m Move) IsPromotion() bool { return m.Flags&FlagPromotion != 0 }
func (m Move) IsCastle() bool    { return m.Flags&flagCastle != 0 }

var promoChars = [...]byte{Knight: 'n', Bishop: 'b', Rook: 'r', Queen: 'q'}

// String returns coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.IsPromotion() && m.Promotion >= Knight && m.Promotion <= Queen {
		s += string(promoChars[m.Promotion])
	}
	return s
}

// ErrIllegalMove is returned when text does not name a legal move.
var ErrIllegalMove = errors.New("bitmg: illegal move")

// ParseMove resolves coordinate notation against the legal moves of p.
func ParseMove(p *Position, text string) (Move, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if len(text) < 4 || len(text) > 5 {
		return Move{}, fmt.Errorf("%w: %q", ErrIllegalMove, text)
	}
	for _, m := range p.GenerateLegalMoves() {
		if m.String() == text {
			return m, nil
		}
	}
	return Move{}, fmt.Errorf("%w: %q in %s", ErrIllegalMove, text, p.FEN())
}

// Play parses and applies a sequence of coordinate moves, stopping at the
// first one that is not legal.
func (p *Position) Play(moves ...string) error {
	for _, text := range moves {
		m, err := ParseMove(p, text)
		if err != nil {
			return err
		}
		p.Apply(m)
	}
	return nil
}
