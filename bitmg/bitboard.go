package bitmg

import (
	"fmt"
	"iter"
	"math/bits"
	"strings"
)

// Bitboard is a set of squares, one bit per square.
type Bitboard uint64

const (
	FileA Bitboard = 0x0101010101010101
	FileH Bitboard = FileA << 7
	Rank1 Bitboard = 0xFF
	Rank2 Bitboard = Rank1 << 8
	Rank4 Bitboard = Rank1 << 24
	Rank5 Bitboard = Rank1 << 32
	Rank7 Bitboard = Rank1 << 48
	Rank8 Bitboard = Rank1 << 56
)

// SquareBB returns the singleton set {s}.
func SquareBB(s Square) Bitboard { return 1 << (s & 63) }

// Has reports whether s is in the set.
func (b Bitboard) Has(s Square) bool { return b&SquareBB(s) != 0 }

// Set adds s. Setting an occupied square is a precondition violation.
func (b *Bitboard) Set(s Square) {
	if debugChecks && b.Has(s) {
		panic(fmt.Sprintf("bitmg: set on occupied square %v", s))
	}
	*b |= SquareBB(s)
}

// Clear removes s. Clearing an empty square is a precondition violation.
func (b *Bitboard) Clear(s Square) {
	if debugChecks && !b.Has(s) {
		panic(fmt.Sprintf("bitmg: clear on empty square %v", s))
	}
	*b &^= SquareBB(s)
}

// Move clears from and sets to in one step.
func (b *Bitboard) Move(from, to Square) {
	if debugChecks && (!b.Has(from) || (from != to && b.Has(to))) {
		panic(fmt.Sprintf("bitmg: invalid bit move %v->%v", from, to))
	}
	*b = *b&^SquareBB(from) | SquareBB(to)
}

// PopCount returns the number of squares in the set.
func (b Bitboard) PopCount() int { return bits.OnesCount64(uint64(b)) }

// LSB returns the lowest square in the set, NoSquare when empty.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// MSB returns the highest square in the set, NoSquare when empty.
func (b Bitboard) MSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// PopLSB removes and returns the lowest square. The set must not be empty.
func (b *Bitboard) PopLSB() Square {
	s := Square(bits.TrailingZeros64(uint64(*b)))
	*b &= *b - 1
	return s
}

// Squares yields the members in ascending order. Each call starts over.
func (b Bitboard) Squares() iter.Seq[Square] {
	return func(yield func(Square) bool) {
		for rest := b; rest != 0; {
			if !yield(rest.PopLSB()) {
				return
			}
		}
	}
}

// String renders an 8x8 grid with rank 8 on top, '1' for members.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			if b.Has(NewSquare(file, rank)) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('.')
			}
		}
		if rank > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
