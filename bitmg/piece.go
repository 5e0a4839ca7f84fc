package bitmg

import "fmt"

// Color is the side owning a piece.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType is a colorless piece kind used for table lookups and promotions.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

// Piece is one of the twelve colored piece kinds. It doubles as the index of
// the piece's bitboard inside a Position.
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NoPiece
)

// MakePiece combines a side and a kind.
func MakePiece(c Color, pt PieceType) Piece {
	if pt >= NoPieceType {
		return NoPiece
	}
	return Piece(uint8(c)*6 + uint8(pt))
}

// Type strips the color. NoPiece yields NoPieceType.
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

// Color reports the owner. NoPiece reports White.
func (p Piece) Color() Color {
	if p >= BlackPawn && p < NoPiece {
		return Black
	}
	return White
}

const pieceChars = "PNBRQKpnbrqk"

// Char returns the FEN letter of the piece, '.' for NoPiece.
func (p Piece) Char() byte {
	if p >= NoPiece {
		return '.'
	}
	return pieceChars[p]
}

func (p Piece) String() string { return string(p.Char()) }

func pieceFromChar(ch byte) Piece {
	for i := 0; i < len(pieceChars); i++ {
		if pieceChars[i] == ch {
			return Piece(i)
		}
	}
	return NoPiece
}

// Square is a board index 0..63 with a1 = 0 and h8 = 63.
type Square uint8

// NoSquare marks an absent square, e.g. no en-passant target.
const NoSquare Square = 64

const (
	A1, B1, C1, D1, E1, F1, G1, H1 Square = 0, 1, 2, 3, 4, 5, 6, 7
	A2, B2, C2, D2, E2, F2, G2, H2 Square = 8, 9, 10, 11, 12, 13, 14, 15
	A7, B7, C7, D7, E7, F7, G7, H7 Square = 48, 49, 50, 51, 52, 53, 54, 55
	A8, B8, C8, D8, E8, F8, G8, H8 Square = 56, 57, 58, 59, 60, 61, 62, 63
)

// NewSquare builds a square from zero-based file and rank.
func NewSquare(file, rank int) Square { return Square(rank*8 + file) }

func (s Square) File() int { return int(s) & 7 }
func (s Square) Rank() int { return int(s) >> 3 }

func (s Square) String() string {
	if s >= NoSquare {
		return "-"
	}
	return string([]byte{'a' + byte(s.File()), '1' + byte(s.Rank())})
}

// ParseSquare reads algebraic coordinates such as "e4".
func ParseSquare(text string) (Square, error) {
	if len(text) != 2 {
		return NoSquare, fmt.Errorf("bitmg: invalid square %q", text)
	}
	f, r := text[0], text[1]
	if f < 'a' || f > 'h' || r < '1' || r > '8' {
		return NoSquare, fmt.Errorf("bitmg: square %q out of range", text)
	}
	return NewSquare(int(f-'a'), int(r-'1')), nil
}

// CastlingRights is a bit set of the four castling permissions.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

// Has reports whether every right in r is present.
func (c CastlingRights) Has(r CastlingRights) bool { return c&r == r }

func (c CastlingRights) String() string {
	if c == NoCastling {
		return "-"
	}
	out := make([]byte, 0, 4)
	for i, ch := range []byte("KQkq") {
		if c&(1<<uint(i)) != 0 {
			out = append(out, ch)
		}
	}
	return string(out)
}
