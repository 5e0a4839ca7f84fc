package bitmg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFEN wraps every FEN parse failure.
var ErrInvalidFEN = errors.New("bitmg: invalid FEN")

func fenError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidFEN, fmt.Sprintf(format, args...))
}

// ParseFEN builds a Position from Forsyth-Edwards Notation. The clock
// fields are optional and default to "0 1".
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return nil, fenError("want 4 to 6 fields, got %d", len(fields))
	}
	p := emptyPosition()

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fenError("want 8 ranks, got %d", len(ranks))
	}
	for i, row := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(row); j++ {
			ch := row[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			pc := pieceFromChar(ch)
			if pc == NoPiece {
				return nil, fenError("unknown piece %q", ch)
			}
			if file >= 8 {
				return nil, fenError("rank %d overflows", rank+1)
			}
			if pc.Type() == Pawn && (rank == 0 || rank == 7) {
				return nil, fenError("pawn on back rank %d", rank+1)
			}
			p.putPiece(NewSquare(file, rank), pc)
			file++
		}
		if file != 8 {
			return nil, fenError("rank %d has %d files", rank+1, file)
		}
	}
	for _, c := range []Color{White, Black} {
		if n := p.boards[MakePiece(c, King)].PopCount(); n != 1 {
			return nil, fenError("%v has %d kings", c, n)
		}
	}

	switch fields[1] {
	case "w":
		p.side = White
	case "b":
		p.side = Black
		p.hash ^= zobristSide
	default:
		return nil, fenError("side to move %q", fields[1])
	}

	if fields[2] != "-" {
		for j := 0; j < len(fields[2]); j++ {
			idx := strings.IndexByte("KQkq", fields[2][j])
			if idx < 0 {
				return nil, fenError("castling flag %q", fields[2][j])
			}
			p.castling |= 1 << uint(idx)
		}
	}
	p.hash ^= zobristCastle[p.castling]

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fenError("en passant %q", fields[3])
		}
		if (p.side == White && sq.Rank() != 5) || (p.side == Black && sq.Rank() != 2) {
			return nil, fenError("en passant square %v on wrong rank", sq)
		}
		// The pawn that just double-pushed stands past the target. The target
		// and the pawn's start square are empty.
		capSq, origin := sq-8, sq+8
		if p.side == Black {
			capSq, origin = sq+8, sq-8
		}
		if p.mailbox[sq] != NoPiece || p.mailbox[origin] != NoPiece ||
			p.mailbox[capSq] != MakePiece(p.side.Other(), Pawn) {
			return nil, fenError("en passant square %v without a double-pushed pawn", sq)
		}
		p.epSquare = sq
		p.hash ^= zobristEnPassant[sq.File()]
	}

	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return nil, fenError("halfmove clock %q", fields[4])
		}
		p.halfmove = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return nil, fenError("fullmove number %q", fields[5])
		}
		p.fullmove = n
	}
	if p.InCheck(p.side.Other()) {
		return nil, fenError("%v to move can capture the king", p.side)
	}
	return p, nil
}

// MustParseFEN is ParseFEN for known-good input; it panics on error.
func MustParseFEN(fen string) *Position {
	p, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return p
}

// FEN renders the position. ParseFEN(p.FEN()) is Equal to p.
func (p *Position) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.mailbox[NewSquare(file, rank)]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(pc.Char())
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	if p.side == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}
	sb.WriteString(p.castling.String())
	sb.WriteByte(' ')
	sb.WriteString(p.epSquare.String())
	fmt.Fprintf(&sb, " %d %d", p.halfmove, p.fullmove)
	return sb.String()
}
