package bitmg

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaperCounts(t *testing.T) {
	cases := []struct {
		sq            Square
		knight, king  int
		whitePawnCaps int
	}{
		{A1, 2, 3, 1},
		{H1, 2, 3, 1},
		{NewSquare(3, 3), 8, 8, 2}, // d4
		{NewSquare(7, 4), 4, 5, 1}, // h5
		{B2, 4, 8, 2},
	}
	for _, c := range cases {
		assert.Equal(t, c.knight, KnightAttacks(c.sq).PopCount(), "knight %v", c.sq)
		assert.Equal(t, c.king, KingAttacks(c.sq).PopCount(), "king %v", c.sq)
		assert.Equal(t, c.whitePawnCaps, PawnAttacks(White, c.sq).PopCount(), "pawn %v", c.sq)
	}
	assert.Equal(t, SquareBB(NewSquare(1, 2)), PawnAttacks(White, A2))
	assert.Equal(t, SquareBB(NewSquare(6, 5)), PawnAttacks(Black, H7))
}

func TestMagicMatchesRayWalk(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		occ := Bitboard(rnd.Uint64() & rnd.Uint64())
		sq := Square(rnd.Intn(64))
		require.Equal(t, slowAttacks(rookDirs, sq, occ), RookAttacks(sq, occ), "rook %v occ\n%v", sq, occ)
		require.Equal(t, slowAttacks(bishopDirs, sq, occ), BishopAttacks(sq, occ), "bishop %v occ\n%v", sq, occ)
	}
}

func TestSlidersOnEmptyBoard(t *testing.T) {
	for sq := Square(0); sq < 64; sq++ {
		assert.Equal(t, 14, RookAttacks(sq, 0).PopCount(), "rook %v", sq)
	}
	assert.Equal(t, 7, BishopAttacks(A1, 0).PopCount())
	assert.Equal(t, 13, BishopAttacks(NewSquare(3, 3), 0).PopCount())
	assert.Equal(t, 27, QueenAttacks(NewSquare(3, 3), 0).PopCount())
}

func TestSliderStopsOnBlocker(t *testing.T) {
	occ := SquareBB(NewSquare(0, 3)) | SquareBB(D1) // a4, d1
	att := RookAttacks(A1, occ)
	want := SquareBB(A2) | SquareBB(NewSquare(0, 2)) | SquareBB(NewSquare(0, 3)) |
		SquareBB(B1) | SquareBB(C1) | SquareBB(D1)
	assert.Equal(t, want, att)
}

func TestBetweenAndLine(t *testing.T) {
	assert.Equal(t, 6, Between(A1, H8).PopCount())
	assert.Equal(t, 6, Between(H8, A1).PopCount())
	assert.Equal(t, 6, Between(A8, H1).PopCount())
	assert.Equal(t, 6, Between(E1, E8).PopCount())
	assert.Equal(t, Bitboard(0), Between(A1, NewSquare(1, 2)))
	assert.Equal(t, Bitboard(0), Between(E1, F1))
	assert.Equal(t, SquareBB(F1)|SquareBB(G1), Between(E1, H1))

	for a := Square(0); a < 64; a++ {
		for b := Square(0); b < 64; b++ {
			if between[a][b] != between[b][a] {
				t.Fatalf("between not symmetric for %v %v", a, b)
			}
			if between[a][b] != 0 && line[a][b]&between[a][b] != between[a][b] {
				t.Fatalf("line %v %v does not contain between", a, b)
			}
		}
	}
	assert.Equal(t, 8, line[A1][NewSquare(2, 2)].PopCount())
	assert.Equal(t, FileA, line[A1][A8])
}
