package bitmg

import "math/rand"

// magic maps the relevant blockers of one slider square to a slot in its
// attack table: slot = ((occ & mask) * number) >> shift.
type magic struct {
	mask   Bitboard
	number uint64
	shift  uint8
	table  []Bitboard
}

func (m *magic) attacks(occ Bitboard) Bitboard {
	return m.table[(uint64(occ&m.mask)*m.number)>>m.shift]
}

var (
	bishopMagics [64]magic
	rookMagics   [64]magic
)

// magicSeed keeps the search deterministic, so table layout is identical
// across runs.
const magicSeed = 0x5EED_B17B0A4D

func initMagics() {
	rnd := rand.New(rand.NewSource(magicSeed))
	for sq := Square(0); sq < 64; sq++ {
		bishopMagics[sq] = findMagic(rnd, sq, bishopDirs)
		rookMagics[sq] = findMagic(rnd, sq, rookDirs)
	}
}

// relevantMask drops the last square of each ray: a piece there never
// shortens the ray.
func relevantMask(sq Square, dirs [4]int) Bitboard {
	var mask Bitboard
	for _, d := range dirs {
		ray := rays[d][sq]
		if ray == 0 {
			continue
		}
		if d < dirS {
			ray &^= SquareBB(ray.MSB())
		} else {
			ray &^= SquareBB(ray.LSB())
		}
		mask |= ray
	}
	return mask
}

func findMagic(rnd *rand.Rand, sq Square, dirs [4]int) magic {
	mask := relevantMask(sq, dirs)
	n := mask.PopCount()
	size := 1 << n

	occs := make([]Bitboard, 0, size)
	refs := make([]Bitboard, 0, size)
	// Carry-rippler walk over every subset of mask.
	for occ := Bitboard(0); ; {
		occs = append(occs, occ)
		refs = append(refs, slowAttacks(dirs, sq, occ))
		occ = (occ - mask) & mask
		if occ == 0 {
			break
		}
	}

	table := make([]Bitboard, size)
	epoch := make([]int, size)
	for attempt := 1; ; attempt++ {
		number := rnd.Uint64() & rnd.Uint64() & rnd.Uint64()
		if Bitboard((uint64(mask)*number)&0xFF00000000000000).PopCount() < 6 {
			continue
		}
		m := magic{mask: mask, number: number, shift: uint8(64 - n), table: table}
		ok := true
		for i, occ := range occs {
			slot := (uint64(occ) * number) >> m.shift
			if epoch[slot] != attempt {
				epoch[slot] = attempt
				table[slot] = refs[i]
			} else if table[slot] != refs[i] {
				ok = false
				break
			}
		}
		if ok {
			return m
		}
	}
}
