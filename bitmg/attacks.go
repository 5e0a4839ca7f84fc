package bitmg

// Ray directions. The first four step toward higher square indices, so the
// nearest blocker on those rays is the lowest set bit. d and d+4 are
// opposite.
const (
	dirN = iota
	dirE
	dirNE
	dirNW
	dirS
	dirW
	dirSW
	dirSE
	numDirs
)

var dirSteps = [numDirs][2]int{
	dirN: {0, 1}, dirE: {1, 0}, dirNE: {1, 1}, dirNW: {-1, 1},
	dirS: {0, -1}, dirW: {-1, 0}, dirSW: {-1, -1}, dirSE: {1, -1},
}

var (
	rookDirs   = [4]int{dirN, dirE, dirS, dirW}
	bishopDirs = [4]int{dirNE, dirNW, dirSE, dirSW}
)

var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	// pawnAttacks[c][s] holds the capture targets of a c pawn standing on s.
	pawnAttacks [2][64]Bitboard

	rays [numDirs][64]Bitboard
	// between[a][b] is the set strictly between two aligned squares, else empty.
	between [64][64]Bitboard
	// line[a][b] is the full rank, file or diagonal through two aligned squares.
	line [64][64]Bitboard
)

func init() {
	initLeaperAttacks()
	initRays()
	initMagics()
}

func onBoard(file, rank int) bool { return file >= 0 && file < 8 && rank >= 0 && rank < 8 }

func leaperMask(sq Square, offsets [][2]int) Bitboard {
	var mask Bitboard
	for _, off := range offsets {
		f, r := sq.File()+off[0], sq.Rank()+off[1]
		if onBoard(f, r) {
			mask |= SquareBB(NewSquare(f, r))
		}
	}
	return mask
}

func initLeaperAttacks() {
	knightOffsets := [][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets := [][2]int{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
	for sq := Square(0); sq < 64; sq++ {
		knightAttacks[sq] = leaperMask(sq, knightOffsets)
		kingAttacks[sq] = leaperMask(sq, kingOffsets)
		pawnAttacks[White][sq] = leaperMask(sq, [][2]int{{-1, 1}, {1, 1}})
		pawnAttacks[Black][sq] = leaperMask(sq, [][2]int{{-1, -1}, {1, -1}})
	}
}

func initRays() {
	for sq := Square(0); sq < 64; sq++ {
		for d := 0; d < numDirs; d++ {
			var ray Bitboard
			f, r := sq.File()+dirSteps[d][0], sq.Rank()+dirSteps[d][1]
			for onBoard(f, r) {
				ray |= SquareBB(NewSquare(f, r))
				f, r = f+dirSteps[d][0], r+dirSteps[d][1]
			}
			rays[d][sq] = ray
		}
	}
	for a := Square(0); a < 64; a++ {
		for d := 0; d < numDirs; d++ {
			opposite := (d + 4) % numDirs
			for b := range rays[d][a].Squares() {
				between[a][b] = rays[d][a] & rays[opposite][b]
				line[a][b] = rays[d][a] | rays[opposite][a] | SquareBB(a)
			}
		}
	}
}

// rayAttacks walks one ray from sq and stops on the first blocker, inclusive.
func rayAttacks(d int, sq Square, occ Bitboard) Bitboard {
	ray := rays[d][sq]
	blockers := ray & occ
	if blockers == 0 {
		return ray
	}
	var first Square
	if d < dirS {
		first = blockers.LSB()
	} else {
		first = blockers.MSB()
	}
	return ray &^ rays[d][first]
}

func slowAttacks(dirs [4]int, sq Square, occ Bitboard) Bitboard {
	var att Bitboard
	for _, d := range dirs {
		att |= rayAttacks(d, sq, occ)
	}
	return att
}

// KnightAttacks returns the knight targets from sq.
func KnightAttacks(sq Square) Bitboard { return knightAttacks[sq] }

// KingAttacks returns the king targets from sq.
func KingAttacks(sq Square) Bitboard { return kingAttacks[sq] }

// PawnAttacks returns the capture targets of a c pawn on sq.
func PawnAttacks(c Color, sq Square) Bitboard { return pawnAttacks[c][sq] }

// BishopAttacks returns the diagonal squares reachable from sq given the
// blockers in occ, each ray ending on its first blocker.
func BishopAttacks(sq Square, occ Bitboard) Bitboard { return bishopMagics[sq].attacks(occ) }

// RookAttacks is BishopAttacks for ranks and files.
func RookAttacks(sq Square, occ Bitboard) Bitboard { return rookMagics[sq].attacks(occ) }

// QueenAttacks is the union of rook and bishop attacks.
func QueenAttacks(sq Square, occ Bitboard) Bitboard {
	return bishopMagics[sq].attacks(occ) | rookMagics[sq].attacks(occ)
}

// Between returns the squares strictly between a and b when they share a line.
func Between(a, b Square) Bitboard { return between[a][b] }

func pieceAttacks(pt PieceType, sq Square, occ Bitboard) Bitboard {
	switch pt {
	case Knight:
		return knightAttacks[sq]
	case Bishop:
		return BishopAttacks(sq, occ)
	case Rook:
		return RookAttacks(sq, occ)
	case Queen:
		return QueenAttacks(sq, occ)
	case King:
		return kingAttacks[sq]
	}
	return 0
}
