//go:build mgdebug

package bitmg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugPreconditionsPanic(t *testing.T) {
	assert.Panics(t, func() {
		var b Bitboard
		b.Clear(E2)
	}, "clear of unset bit")
	assert.Panics(t, func() {
		b := SquareBB(E2)
		b.Set(E2)
	}, "set of set bit")
	assert.Panics(t, func() {
		p := NewPosition()
		p.Apply(newMove(E2, NewSquare(4, 3), FlagQuiet))
		p.Apply(newMove(E2, NewSquare(4, 2), FlagQuiet)) // e2 is now empty
	}, "apply from empty square")
	assert.Panics(t, func() {
		p := NewPosition()
		p.Apply(newMove(E7, NewSquare(4, 4), FlagDoublePush))
	}, "apply with the wrong side's piece")
}
