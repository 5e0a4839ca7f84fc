package bitmg

import "math/rand"

var (
	zobristPiece     [12][64]uint64
	zobristCastle    [16]uint64
	zobristEnPassant [8]uint64
	zobristSide      uint64 // XORed in when Black is to move
)

func init() {
	// Fixed seed so hashes are stable between runs and usable as cache keys.
	rnd := rand.New(rand.NewSource(0xC0DE))
	for p := range zobristPiece {
		for sq := range zobristPiece[p] {
			zobristPiece[p][sq] = rnd.Uint64()
		}
	}
	for cr := range zobristCastle {
		zobristCastle[cr] = rnd.Uint64()
	}
	for f := range zobristEnPassant {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
}

// ComputeHash rebuilds the Zobrist key from scratch. Hash() must always
// equal it; Validate checks that.
func (p *Position) ComputeHash() uint64 {
	var key uint64
	for sq, pc := range p.mailbox {
		if pc != NoPiece {
			key ^= zobristPiece[pc][sq]
		}
	}
	if p.side == Black {
		key ^= zobristSide
	}
	key ^= zobristCastle[p.castling]
	if p.epSquare != NoSquare {
		key ^= zobristEnPassant[p.epSquare.File()]
	}
	return key
}
