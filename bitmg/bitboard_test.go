package bitmg_test

import (
	"testing"

	"chess-movegen/bitmg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitboardSetClearMove(t *testing.T) {
	var b bitmg.Bitboard
	b.Set(bitmg.E2)
	b.Set(bitmg.A8)
	require.True(t, b.Has(bitmg.E2))
	require.Equal(t, 2, b.PopCount())

	b.Move(bitmg.E2, bitmg.E1)
	assert.False(t, b.Has(bitmg.E2))
	assert.True(t, b.Has(bitmg.E1))

	b.Clear(bitmg.A8)
	assert.Equal(t, bitmg.SquareBB(bitmg.E1), b)

	b.Move(bitmg.E1, bitmg.E1)
	assert.Equal(t, bitmg.SquareBB(bitmg.E1), b)
}

func TestBitboardLSBMSB(t *testing.T) {
	b := bitmg.SquareBB(bitmg.C1) | bitmg.SquareBB(bitmg.F7)
	assert.Equal(t, bitmg.C1, b.LSB())
	assert.Equal(t, bitmg.F7, b.MSB())
	assert.Equal(t, bitmg.NoSquare, bitmg.Bitboard(0).LSB())
	assert.Equal(t, bitmg.NoSquare, bitmg.Bitboard(0).MSB())

	assert.Equal(t, bitmg.C1, b.PopLSB())
	assert.Equal(t, bitmg.SquareBB(bitmg.F7), b)
}

func TestBitboardSquaresRestartable(t *testing.T) {
	b := bitmg.Rank2 | bitmg.SquareBB(bitmg.H8)
	var first, second []bitmg.Square
	for sq := range b.Squares() {
		first = append(first, sq)
	}
	for sq := range b.Squares() {
		second = append(second, sq)
	}
	require.Len(t, first, 9)
	assert.Equal(t, first, second)
	assert.Equal(t, bitmg.A2, first[0])
	assert.Equal(t, bitmg.H8, first[8])
	// The receiver is a value; iterating does not drain it.
	assert.Equal(t, 9, b.PopCount())
}

func TestBitboardSquaresEarlyStop(t *testing.T) {
	n := 0
	for range bitmg.Rank1.Squares() {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestBitboardString(t *testing.T) {
	b := bitmg.SquareBB(bitmg.A1) | bitmg.SquareBB(bitmg.H8)
	want := "" +
		".......1\n" +
		"........\n" +
		"........\n" +
		"........\n" +
		"........\n" +
		"........\n" +
		"........\n" +
		"1......."
	assert.Equal(t, want, b.String())
}

func TestSquareParseAndString(t *testing.T) {
	for _, text := range []string{"a1", "e4", "h8", "c6"} {
		sq, err := bitmg.ParseSquare(text)
		require.NoError(t, err, text)
		assert.Equal(t, text, sq.String())
	}
	for _, text := range []string{"", "i1", "a9", "e44"} {
		_, err := bitmg.ParseSquare(text)
		assert.Error(t, err, text)
	}
	assert.Equal(t, "-", bitmg.NoSquare.String())
	assert.Equal(t, bitmg.E2, bitmg.NewSquare(4, 1))
}

func TestPieceEncoding(t *testing.T) {
	for c := bitmg.White; c <= bitmg.Black; c++ {
		for pt := bitmg.Pawn; pt <= bitmg.King; pt++ {
			pc := bitmg.MakePiece(c, pt)
			assert.Equal(t, c, pc.Color())
			assert.Equal(t, pt, pc.Type())
		}
	}
	assert.Equal(t, "N", bitmg.WhiteKnight.String())
	assert.Equal(t, "q", bitmg.BlackQueen.String())
	assert.Equal(t, "KQkq", bitmg.AllCastling.String())
	assert.Equal(t, "-", bitmg.NoCastling.String())
	assert.Equal(t, "Kq", (bitmg.WhiteKingside | bitmg.BlackQueenside).String())
}
