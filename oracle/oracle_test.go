package oracle

import (
	"testing"

	"chess-movegen/bitmg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func TestReferenceDivideStartPosition(t *testing.T) {
	div, err := Divide(bitmg.FENStartPos, 2)
	require.NoError(t, err)
	require.Len(t, div, 20)
	for m, n := range div {
		assert.Equal(t, uint64(20), n, m)
	}
	assert.Contains(t, div, "e2e4")
	assert.Contains(t, div, "g1f3")
}

func TestDivideRejects(t *testing.T) {
	_, err := Divide(bitmg.FENStartPos, 0)
	assert.ErrorIs(t, err, ErrDepth)
	_, err = Divide("not a fen", 1)
	assert.ErrorIs(t, err, bitmg.ErrInvalidFEN)
}

func TestCompare(t *testing.T) {
	want := map[string]uint64{"e2e4": 20, "d2d4": 20, "g1f3": 20}
	got := map[string]uint64{"e2e4": 20, "d2d4": 21, "a2a5": 3}

	r := Compare(want, got)
	assert.False(t, r.Empty())
	assert.Equal(t, map[string]uint64{"g1f3": 20}, r.Missing)
	assert.Equal(t, map[string]uint64{"a2a5": 3}, r.Extra)
	assert.Equal(t, map[string][2]uint64{"d2d4": {20, 21}}, r.Differ)
	assert.Equal(t, "missing g1f3: 20\nextra a2a5: 3\ndiffer d2d4: want 20, got 21", r.String())

	same := Compare(want, want)
	assert.True(t, same.Empty())
	assert.Equal(t, "divide tables match", same.String())
}

func TestVerifyAgainstReference(t *testing.T) {
	fens := []string{
		bitmg.FENStartPos,
		kiwipete,
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range fens {
		r, err := Verify(fen, 2)
		require.NoError(t, err)
		assert.True(t, r.Empty(), "%s\n%v", fen, r)
	}
}

func TestDivideStrings(t *testing.T) {
	p := bitmg.MustParseFEN("1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	div, err := DivideStrings(p, 1)
	require.NoError(t, err)
	assert.Len(t, div, 11)
	for _, m := range []string{"a7a8q", "a7a8n", "a7b8r", "h1g2"} {
		assert.Equal(t, uint64(1), div[m], m)
	}
}
