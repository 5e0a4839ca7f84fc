package bitmg_test

import (
	"strings"
	"testing"

	"chess-movegen/bitmg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEPDSuite(t *testing.T) {
	input := `# comment

rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 ;D1 20 ;D2 400
4k3/8/8/8/8/8/8/4K3 w - - ;D1 5
`
	entries, err := bitmg.ParseEPDSuite(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, bitmg.FENStartPos, entries[0].FEN)
	assert.Equal(t, map[int]uint64{1: 20, 2: 400}, entries[0].Expected)
	assert.Equal(t, 3, entries[0].Line)
	assert.Equal(t, 2, entries[0].MaxDepth())
	assert.Equal(t, "4k3/8/8/8/8/8/8/4K3 w - -", entries[1].FEN)
	assert.Equal(t, uint64(5), entries[1].Expected[1])
}

func TestParseEPDSuiteErrors(t *testing.T) {
	bad := []string{
		"not a fen ;D1 20",
		"4k3/8/8/8/8/8/8/4K3 w - - ;X1 5",
		"4k3/8/8/8/8/8/8/4K3 w - - ;D0 5",
		"4k3/8/8/8/8/8/8/4K3 w - - ;D1 five",
		"4k3/8/8/8/8/8/8/4K3 w - - ;D1",
	}
	for _, line := range bad {
		_, err := bitmg.ParseEPDSuite(strings.NewReader(line))
		assert.Error(t, err, line)
	}
}
